package search

import (
	"context"
	"log"
	"strings"

	"github.com/vestnikmedia/vestnik/internal/helpers"
	"github.com/vestnikmedia/vestnik/internal/lang"
	"github.com/vestnikmedia/vestnik/internal/telemetry"
	"github.com/vestnikmedia/vestnik/internal/websearch"
)

// Source wraps one raw provider with query rewriting and source
// diversity. Failures never cross its boundary: a broken provider
// degrades to an empty result set so the other sources still count.
type Source struct {
	provider websearch.Provider
	logger   *log.Logger
}

func NewSource(provider websearch.Provider, logger *log.Logger) *Source {
	if logger == nil {
		logger = log.New(log.Writer(), "[SEARCH] ", log.LstdFlags)
	}
	return &Source{provider: provider, logger: logger}
}

func (s *Source) Name() string { return s.provider.Name() }

// search runs the provider with a rewritten query. This is the
// isolation boundary: a failed provider logs, counts and contributes
// nothing.
func (s *Source) search(ctx context.Context, query string, tag lang.Tag, budget int) []websearch.Article {
	rewritten := BuildQuery(query, tag)
	articles, err := s.provider.Search(ctx, rewritten, tag, budget)
	if err != nil {
		telemetry.ProviderRequests.WithLabelValues(s.Name(), "error").Inc()
		s.logger.Printf("provider %s failed for query %q: %v", s.Name(), query, err)
		return nil
	}
	telemetry.ProviderRequests.WithLabelValues(s.Name(), "ok").Inc()
	return articles
}

// SearchNews is the single-provider news search: it over-fetches so the
// diversity pass still has enough material to fill maxResults.
func (s *Source) SearchNews(ctx context.Context, query string, tag lang.Tag, maxResults int) []websearch.Article {
	if maxResults <= 0 {
		return nil
	}
	budget := maxResults * 2
	if budget < 15 {
		budget = 15
	}
	return ensureSourceDiversity(s.search(ctx, query, tag, budget), maxResults)
}

// ensureSourceDiversity picks at most one article per domain first, then
// backfills in original order when that leaves the result short.
func ensureSourceDiversity(articles []websearch.Article, maxResults int) []websearch.Article {
	diverse := make([]websearch.Article, 0, maxResults)
	domains := make(map[string]bool)
	picked := make(map[int]bool)

	for i, a := range articles {
		if len(diverse) >= maxResults {
			break
		}
		domain := helpers.Domain(a.URL)
		if domains[domain] {
			continue
		}
		domains[domain] = true
		picked[i] = true
		diverse = append(diverse, a)
	}

	if len(diverse) < maxResults {
		seen := make(map[string]bool, len(diverse))
		for _, a := range diverse {
			seen[identityKey(a)] = true
		}
		for i, a := range articles {
			if len(diverse) >= maxResults {
				break
			}
			if picked[i] || seen[identityKey(a)] {
				continue
			}
			seen[identityKey(a)] = true
			diverse = append(diverse, a)
		}
	}
	return diverse
}

// identityKey is the dedup identity shared with the aggregator:
// case-insensitive URL plus case-insensitive title.
func identityKey(a websearch.Article) string {
	return strings.ToLower(a.URL) + "\x00" + strings.ToLower(a.Title)
}
