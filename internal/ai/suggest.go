package ai

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
)

const suggestPrompt = `Roleplay: You are a professional paper recommendation expert. You quickly pick suitable papers for the user's keywords.
Task: Analyze the user's keywords against the provided paper titles and recommend papers:
1. From all titles, select the 10 most suitable papers and give each a suggestion score (0-10). Higher means a better match.
2. Output a JSON array of objects, for example: [{"arxiv_id": "2501.13106", "title": "sample", "suggest_score": 8}]
3. Do not output anything except the JSON array.
4. If the information is insufficient to recommend anything, output an empty array [].
5. The output must be valid, directly parsable JSON.`

// TitleEntry is one stored paper offered to the model for matching.
type TitleEntry struct {
	ID    string
	Title string
}

// Suggestion is one recommended paper as the model names it. Display fields
// are filled in afterwards from the stored listing.
type Suggestion struct {
	ArxivID      string  `json:"arxiv_id"`
	Title        string  `json:"title"`
	SuggestScore float64 `json:"suggest_score"`
}

// Suggest asks the model to score the stored titles against the keywords.
// Parse failures and schema violations retry the whole exchange, up to
// maxAttempts; exhaustion returns ErrExhausted.
func (c *Client) Suggest(ctx context.Context, keywords string, entries []TitleEntry) ([]Suggestion, error) {
	lines := make([]string, 0, len(entries))
	for _, e := range entries {
		lines = append(lines, fmt.Sprintf("arxiv: %s, title: %s", e.ID, e.Title))
	}
	user := fmt.Sprintf("Keywords: %s\nPaper title list:\n%s", keywords, strings.Join(lines, "\n"))

	for attempt := 0; attempt < maxAttempts; attempt++ {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		raw, err := c.ChatJSON(ctx, suggestPrompt, user, 0.2)
		if err != nil {
			continue
		}
		arr := extractJSONArray(StripFences(raw))
		if arr == "" {
			continue
		}
		var out []Suggestion
		if err := json.Unmarshal([]byte(arr), &out); err != nil {
			continue
		}
		if !validSuggestions(out) {
			continue
		}
		return out, nil
	}
	return nil, ErrExhausted
}

func validSuggestions(items []Suggestion) bool {
	if len(items) > 10 {
		return false
	}
	for _, s := range items {
		if s.ArxivID == "" || s.SuggestScore < 0 || s.SuggestScore > 10 {
			return false
		}
	}
	return true
}
