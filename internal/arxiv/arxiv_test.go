package arxiv

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

const emptyFeed = `<?xml version="1.0" encoding="UTF-8"?>
<feed xmlns="http://www.w3.org/2005/Atom"></feed>`

func atomFeed(pdfURL string) string {
	return fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?>
<feed xmlns="http://www.w3.org/2005/Atom">
  <entry>
    <id>http://arxiv.org/abs/2501.11111v2</id>
    <title>Sample  Paper
 Title</title>
    <published>2025-01-20T18:59:59Z</published>
    <author><name>Alice A</name></author>
    <author><name>Bob B</name></author>
    <link href="%s" title="pdf" type="application/pdf"/>
  </entry>
</feed>`, pdfURL)
}

func TestCleanID(t *testing.T) {
	assert.Equal(t, "2501.11111", CleanID("2501.11111v2"))
	assert.Equal(t, "2501.11111", CleanID("2501.11111"))
	assert.Equal(t, "2501.11111", CleanID("2501.11111v10"))
}

func TestLookup(t *testing.T) {
	mux := http.NewServeMux()
	ts := httptest.NewServer(mux)
	t.Cleanup(ts.Close)
	mux.HandleFunc("/api/query", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "2501.11111v2", r.URL.Query().Get("id_list"))
		_, _ = w.Write([]byte(atomFeed(ts.URL + "/files/2501.11111v2")))
	})

	c := NewClient(ts.URL, t.TempDir(), 5*time.Second, zap.NewNop(), nil)
	meta, err := c.Lookup(context.Background(), "2501.11111v2")
	require.NoError(t, err)
	assert.Equal(t, "2501.11111", meta.ArxivID)
	assert.Equal(t, "Sample Paper Title", meta.Title)
	assert.Equal(t, []string{"Alice A", "Bob B"}, meta.Authors)
	assert.Equal(t, "2025-01-20", meta.Published)
	assert.Equal(t, ts.URL+"/files/2501.11111v2", meta.PDFURL)
}

func TestLookupNotFound(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(emptyFeed))
	}))
	t.Cleanup(ts.Close)

	c := NewClient(ts.URL, t.TempDir(), 5*time.Second, zap.NewNop(), nil)
	_, err := c.Lookup(context.Background(), "9999.00000")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestDownloadCachesByPath(t *testing.T) {
	pdfHits := 0
	mux := http.NewServeMux()
	ts := httptest.NewServer(mux)
	t.Cleanup(ts.Close)
	mux.HandleFunc("/api/query", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(atomFeed(ts.URL + "/files/2501.11111v2")))
	})
	mux.HandleFunc("/files/", func(w http.ResponseWriter, r *http.Request) {
		pdfHits++
		_, _ = w.Write([]byte("%PDF-1.4 fake"))
	})

	dir := t.TempDir()
	c := NewClient(ts.URL, dir, 5*time.Second, zap.NewNop(), nil)

	info, err := c.Download(context.Background(), "2501.11111v2", true)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "2501.11111.pdf"), info.PDFPath)
	assert.Equal(t, 1, pdfHits)
	_, err = os.Stat(info.PDFPath)
	require.NoError(t, err)

	// File already present: second download does not refetch.
	_, err = c.Download(context.Background(), "2501.11111v2", true)
	require.NoError(t, err)
	assert.Equal(t, 1, pdfHits)
}

func TestDownloadWithoutKeep(t *testing.T) {
	mux := http.NewServeMux()
	ts := httptest.NewServer(mux)
	t.Cleanup(ts.Close)
	mux.HandleFunc("/api/query", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(atomFeed(ts.URL + "/files/2501.11111v2")))
	})
	mux.HandleFunc("/files/", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("%PDF-1.4 fake"))
	})

	dir := t.TempDir()
	c := NewClient(ts.URL, dir, 5*time.Second, zap.NewNop(), nil)

	info, err := c.Download(context.Background(), "2501.11111", false)
	require.NoError(t, err)
	assert.Empty(t, info.PDFPath)
	// Metadata still resolves even though the file was discarded.
	assert.Equal(t, "Sample Paper Title", info.Title)
	_, err = os.Stat(filepath.Join(dir, "2501.11111.pdf"))
	assert.True(t, os.IsNotExist(err))
}
