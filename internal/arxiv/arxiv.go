// Package arxiv resolves paper metadata and PDFs through the arXiv Atom API.
package arxiv

import (
	"context"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"go.uber.org/zap"

	"paperdesk/internal/storage"
)

// ErrNotFound means the identifier has no entry on arXiv.
var ErrNotFound = errors.New("arxiv id not found")

const userAgent = "paperdesk/0.1"

type Metadata struct {
	ArxivID   string   `json:"arxiv_id"`
	Title     string   `json:"title"`
	Authors   []string `json:"authors"`
	PDFURL    string   `json:"pdf_url"`
	Published string   `json:"published"`
}

// DownloadInfo is Metadata plus the local cache path. PDFPath is empty when
// the caller asked not to keep the file.
type DownloadInfo struct {
	Metadata
	PDFPath string `json:"pdf_path"`
}

type Client struct {
	BaseURL string
	Dir     string
	HTTP    *http.Client
	Log     *zap.Logger
	Mirror  *storage.MinioStore
}

func NewClient(baseURL, dir string, timeout time.Duration, log *zap.Logger, mirror *storage.MinioStore) *Client {
	return &Client{
		BaseURL: strings.TrimRight(baseURL, "/"),
		Dir:     dir,
		HTTP:    &http.Client{Timeout: timeout},
		Log:     log,
		Mirror:  mirror,
	}
}

type feed struct {
	Entries []entry `xml:"entry"`
}

type entry struct {
	ID        string        `xml:"id"`
	Title     string        `xml:"title"`
	Published string        `xml:"published"`
	Authors   []entryAuthor `xml:"author"`
	Links     []entryLink   `xml:"link"`
}

type entryAuthor struct {
	Name string `xml:"name"`
}

type entryLink struct {
	Href  string `xml:"href,attr"`
	Title string `xml:"title,attr"`
	Type  string `xml:"type,attr"`
}

// CleanID strips a trailing version marker: everything from the first "v" on.
func CleanID(id string) string {
	if i := strings.Index(id, "v"); i >= 0 {
		return id[:i]
	}
	return id
}

// Lookup fetches bibliographic metadata for one identifier.
func (c *Client) Lookup(ctx context.Context, id string) (Metadata, error) {
	queryURL := c.BaseURL + "/api/query?id_list=" + url.QueryEscape(id)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, queryURL, nil)
	if err != nil {
		return Metadata{}, err
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := c.HTTP.Do(req)
	if err != nil {
		return Metadata{}, fmt.Errorf("arxiv query: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return Metadata{}, fmt.Errorf("arxiv status %d", resp.StatusCode)
	}

	var f feed
	if err := xml.NewDecoder(resp.Body).Decode(&f); err != nil {
		return Metadata{}, fmt.Errorf("decode arxiv feed: %w", err)
	}
	// Unknown ids come back as an empty feed or a stub entry without a title.
	if len(f.Entries) == 0 || strings.TrimSpace(f.Entries[0].Title) == "" {
		return Metadata{}, ErrNotFound
	}
	e := f.Entries[0]

	meta := Metadata{
		ArxivID: CleanID(id),
		Title:   strings.Join(strings.Fields(e.Title), " "),
	}
	for _, a := range e.Authors {
		if name := strings.TrimSpace(a.Name); name != "" {
			meta.Authors = append(meta.Authors, name)
		}
	}
	for _, l := range e.Links {
		if l.Title == "pdf" || l.Type == "application/pdf" {
			meta.PDFURL = l.Href
			break
		}
	}
	if meta.PDFURL == "" {
		meta.PDFURL = "https://arxiv.org/pdf/" + meta.ArxivID
	}
	if t, err := time.Parse(time.RFC3339, e.Published); err == nil {
		meta.Published = t.Format("2006-01-02")
	}
	return meta, nil
}

// Download resolves metadata and ensures the PDF is in the local cache.
// Already-present files are not re-fetched; the check is by path only, a
// corrupted partial file at that path is never repaired. With keep=false the
// file is removed after metadata resolution and PDFPath comes back empty.
func (c *Client) Download(ctx context.Context, id string, keep bool) (DownloadInfo, error) {
	if err := os.MkdirAll(c.Dir, 0o755); err != nil {
		return DownloadInfo{}, fmt.Errorf("create pdf dir: %w", err)
	}

	meta, err := c.Lookup(ctx, id)
	if err != nil {
		return DownloadInfo{}, err
	}

	filename := meta.ArxivID + ".pdf"
	pdfPath := filepath.Join(c.Dir, filename)
	if _, err := os.Stat(pdfPath); os.IsNotExist(err) {
		data, err := c.fetchPDF(ctx, meta.PDFURL)
		if err != nil {
			return DownloadInfo{}, fmt.Errorf("download pdf: %w", err)
		}
		if err := os.WriteFile(pdfPath, data, 0o644); err != nil {
			return DownloadInfo{}, fmt.Errorf("write pdf: %w", err)
		}
		if c.Mirror != nil {
			if err := c.Mirror.PutBytes(ctx, storage.PDFObject(filename), data, "application/pdf"); err != nil {
				c.Log.Warn("pdf mirror upload failed", zap.String("object", filename), zap.Error(err))
			}
		}
	}

	if !keep {
		_ = os.Remove(pdfPath)
		pdfPath = ""
	}
	return DownloadInfo{Metadata: meta, PDFPath: pdfPath}, nil
}

func (c *Client) fetchPDF(ctx context.Context, pdfURL string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, pdfURL, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := c.HTTP.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("pdf status %d", resp.StatusCode)
	}
	return io.ReadAll(resp.Body)
}
