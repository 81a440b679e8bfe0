package api

import (
	"net/http"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestServePDF(t *testing.T) {
	s, r := newTestServer(t)
	_, token := seedUser(t, s, "alice")

	content := []byte("%PDF-1.4 fake body")
	require.NoError(t, os.WriteFile(filepath.Join(s.PDFDir, "2501.00001.pdf"), content, 0o644))

	w := doJSON(t, r, http.MethodGet, "/api/pdf/2501.00001.pdf", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "application/pdf", w.Header().Get("Content-Type"))
	assert.Equal(t, content, w.Body.Bytes())
}

func TestServePDFMissing(t *testing.T) {
	s, r := newTestServer(t)
	_, token := seedUser(t, s, "alice")

	w := doJSON(t, r, http.MethodGet, "/api/pdf/nope.pdf", token, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestServePDFRejectsTraversal(t *testing.T) {
	s, r := newTestServer(t)
	_, token := seedUser(t, s, "alice")

	for _, name := range []string{"..", ".hidden.pdf"} {
		w := doJSON(t, r, http.MethodGet, "/api/pdf/"+name, token, nil)
		assert.Equal(t, http.StatusBadRequest, w.Code, name)
	}

	// An encoded traversal never matches the single-segment route.
	w := doJSON(t, r, http.MethodGet, "/api/pdf/..%2F..%2Fetc%2Fpasswd", token, nil)
	assert.NotEqual(t, http.StatusOK, w.Code)
}
