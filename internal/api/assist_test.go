package api

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"paperdesk/internal/arxiv"
)

const emptyAtomFeed = `<?xml version="1.0" encoding="UTF-8"?>
<feed xmlns="http://www.w3.org/2005/Atom"></feed>`

func TestAssistReadUnknownArxivID(t *testing.T) {
	s, r := newTestServer(t)
	_, token := seedUser(t, s, "alice")

	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		_, _ = w.Write([]byte(emptyAtomFeed))
	}))
	t.Cleanup(ts.Close)
	s.Arxiv = arxiv.NewClient(ts.URL, t.TempDir(), 5*time.Second, zap.NewNop(), nil)

	w := doJSON(t, r, http.MethodPost, "/api/assist/read", token, map[string]string{
		"arxiv_id": "9999.00000",
	})
	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "arxiv id not found", decodeBody[map[string]string](t, w)["error"])
}

func TestAssistReadCorruptPDF(t *testing.T) {
	s, r := newTestServer(t)
	_, token := seedUser(t, s, "alice")

	mux := http.NewServeMux()
	ts := httptest.NewServer(mux)
	t.Cleanup(ts.Close)
	mux.HandleFunc("/api/query", func(w http.ResponseWriter, req *http.Request) {
		feed := fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?>
<feed xmlns="http://www.w3.org/2005/Atom">
  <entry>
    <id>http://arxiv.org/abs/2501.00001v1</id>
    <title>Broken Download</title>
    <published>2025-01-02T00:00:00Z</published>
    <author><name>Alice A</name></author>
    <link href="%s/files/2501.00001" title="pdf" type="application/pdf"/>
  </entry>
</feed>`, ts.URL)
		_, _ = w.Write([]byte(feed))
	})
	mux.HandleFunc("/files/", func(w http.ResponseWriter, req *http.Request) {
		_, _ = w.Write([]byte("this is not a pdf"))
	})
	s.Arxiv = arxiv.NewClient(ts.URL, t.TempDir(), 5*time.Second, zap.NewNop(), nil)

	w := doJSON(t, r, http.MethodPost, "/api/assist/read", token, map[string]string{
		"arxiv_id": "2501.00001",
	})
	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Extraction failed", decodeBody[map[string]string](t, w)["error"])
}

func TestAssistReadRequiresArxivID(t *testing.T) {
	s, r := newTestServer(t)
	_, token := seedUser(t, s, "alice")

	w := doJSON(t, r, http.MethodPost, "/api/assist/read", token, map[string]string{})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
