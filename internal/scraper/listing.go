package scraper

import (
	"bytes"
	"path"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// Summary is one listing card, enriched in place with detail-page fields
// before it reaches the collector.
type Summary struct {
	ID          string `json:"id"`
	Link        string `json:"link"`
	Title       string `json:"title"`
	LikeNum     int    `json:"like_num"`
	ImgLink     string `json:"img_link"`
	PublishTime string `json:"publish_time"`
	AuthorNum   string `json:"author_num"`
	GithubNum   string `json:"github_num"`
	CommentNum  int    `json:"comment_num"`
	Authors     string `json:"authors"`
	Abstract    string `json:"abstract"`
}

// ParseListing extracts one Summary per card, in document order. Relative
// detail links are made absolute against origin. A card with a malformed
// count or a missing title/link is still emitted; bad counts fall back to
// zero and missing text fields stay empty.
func ParseListing(markup []byte, origin string) ([]Summary, error) {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(markup))
	if err != nil {
		return nil, err
	}

	out := make([]Summary, 0)
	doc.Find("article.relative.flex.flex-col.overflow-hidden.rounded-xl.border").Each(func(_ int, card *goquery.Selection) {
		s := Summary{
			LikeNum:    parseCount(card.Find("div.leading-none").First().Text()),
			AuthorNum:  strings.TrimSpace(card.Find("div.flex.truncate.text-sm").First().Text()),
			GithubNum:  strings.TrimSpace(card.Find("a.flex.translate-y-px.items-center span").First().Text()),
			CommentNum: parseCount(card.Find(`a[slot="anchor"]`).First().Text()),
		}

		anchor := card.Find("h3 a").First()
		if href, ok := anchor.Attr("href"); ok && strings.TrimSpace(href) != "" {
			s.Link = strings.TrimRight(origin, "/") + strings.TrimSpace(href)
			s.ID = path.Base(s.Link)
		}
		s.Title = cleanTitle(anchor.Text())
		s.ImgLink, _ = card.ChildrenFiltered("a").Find("img").First().Attr("src")

		out = append(out, s)
	})
	return out, nil
}

func parseCount(raw string) int {
	n, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		return 0
	}
	return n
}

func cleanTitle(raw string) string {
	raw = strings.ReplaceAll(raw, "\n", "")
	raw = strings.ReplaceAll(raw, "\t", "")
	return strings.TrimSpace(raw)
}
