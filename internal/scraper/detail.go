package scraper

import (
	"bytes"
	"context"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// Detail carries the per-paper fields that only exist on the detail page.
type Detail struct {
	Authors     string
	Abstract    string
	PublishTime string
}

// FetchDetail loads one detail page and extracts authors, abstract and
// publish date. Each field is empty when its section is absent; a network
// error propagates to the caller.
func (f *Fetcher) FetchDetail(ctx context.Context, link string) (Detail, error) {
	body, err := f.FetchPage(ctx, link)
	if err != nil {
		return Detail{}, err
	}
	return parseDetail(body)
}

func parseDetail(markup []byte) (Detail, error) {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(markup))
	if err != nil {
		return Detail{}, err
	}

	var authors []string
	doc.Find("div.relative.flex.flex-wrap.items-center.gap-2.text-base.leading-tight button").Each(func(_ int, sel *goquery.Selection) {
		if name := strings.TrimSpace(sel.Text()); name != "" {
			authors = append(authors, name)
		}
	})

	d := Detail{
		Authors:  strings.Join(authors, "|"),
		Abstract: strings.TrimSpace(doc.Find("p.text-gray-600").Text()),
	}
	// Innermost div whose text mentions the publish date.
	if published := doc.Find(`div:contains("Published")`).Last(); published.Length() > 0 {
		d.PublishTime = strings.Join(strings.Fields(published.Text()), " ")
	}
	return d, nil
}
