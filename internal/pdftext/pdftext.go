// Package pdftext extracts a bounded page window of text from a local PDF.
package pdftext

import (
	"errors"
	"strings"

	"github.com/ledongthuc/pdf"
)

// ErrNoText covers every failure mode: missing file, unparsable document,
// out-of-range window, empty extraction. Callers only need "no result".
var ErrNoText = errors.New("no extractable text")

// clampRange maps an inclusive 0-based [start, end] request onto a document
// with total pages. end < 0 means "through the last page".
func clampRange(start, end, total int) (int, int, bool) {
	if total <= 0 {
		return 0, 0, false
	}
	if start < 0 {
		start = 0
	}
	if start >= total {
		return 0, 0, false
	}
	if end < 0 || end > total-1 {
		end = total - 1
	}
	if end < start {
		return 0, 0, false
	}
	return start, end, true
}

// ExtractRange returns the text of pages [start, end] joined by newlines.
func ExtractRange(path string, start, end int) (out string, err error) {
	// The pdf library panics on some malformed files.
	defer func() {
		if r := recover(); r != nil {
			out, err = "", ErrNoText
		}
	}()

	f, r, err := pdf.Open(path)
	if err != nil {
		return "", ErrNoText
	}
	defer f.Close()

	first, last, ok := clampRange(start, end, r.NumPage())
	if !ok {
		return "", ErrNoText
	}

	pages := make([]string, 0, last-first+1)
	for i := first; i <= last; i++ {
		p := r.Page(i + 1) // reader pages are 1-based
		if p.V.IsNull() {
			pages = append(pages, "")
			continue
		}
		text, err := p.GetPlainText(nil)
		if err != nil {
			return "", ErrNoText
		}
		pages = append(pages, text)
	}

	out = strings.Join(pages, "\n")
	if strings.TrimSpace(out) == "" {
		return "", ErrNoText
	}
	return out, nil
}
