// Package websearch contains the external search provider clients and the
// normalized article shape they all map into.
package websearch

import (
	"context"
	"time"

	"github.com/vestnikmedia/vestnik/internal/lang"
)

// Article is one normalized external search hit. It lives only for the
// duration of a search request and is never persisted.
type Article struct {
	Title       string     `json:"title"`
	Content     string     `json:"content"`
	URL         string     `json:"url"`
	Source      string     `json:"source"`
	PublishedAt *time.Time `json:"publishedDate,omitempty"`
	ImageURL    string     `json:"imageUrl,omitempty"`
	Summary     string     `json:"summary,omitempty"`
	Language    string     `json:"language"`
	Tags        []string   `json:"tags,omitempty"`
}

// Snippet returns the best short text available for display and prompts.
func (a Article) Snippet() string {
	if a.Summary != "" {
		return a.Summary
	}
	return a.Content
}

// Provider talks to one external search API. Implementations return
// transport and parse failures as errors; isolation (empty-list
// conversion, logging, metrics) happens one layer up in the aggregator.
type Provider interface {
	// Name is a stable identifier used for attribution and logging.
	Name() string
	Search(ctx context.Context, query string, language lang.Tag, maxResults int) ([]Article, error)
}
