package search

import (
	"context"
	"log"
	"sort"
	"sync"
	"time"

	"github.com/vestnikmedia/vestnik/internal/helpers"
	"github.com/vestnikmedia/vestnik/internal/lang"
	"github.com/vestnikmedia/vestnik/internal/websearch"
)

const snippetLimit = 200

// Aggregator fans one logical search out to every registered source
// concurrently and merges the answers into a single deduplicated,
// recency-ordered list.
type Aggregator struct {
	sources []*Source
	timeout time.Duration
	logger  *log.Logger
}

func NewAggregator(sources []*Source, providerTimeout time.Duration, logger *log.Logger) *Aggregator {
	if providerTimeout <= 0 {
		providerTimeout = 8 * time.Second
	}
	if logger == nil {
		logger = log.New(log.Writer(), "[SEARCH] ", log.LstdFlags)
	}
	return &Aggregator{sources: sources, timeout: providerTimeout, logger: logger}
}

// SearchAllSources queries every source in parallel. Each source gets its
// own deadline and an indexed result slot, so a slow or failing provider
// neither blocks the others nor perturbs the merge order.
func (a *Aggregator) SearchAllSources(ctx context.Context, query string, tag lang.Tag, maxResults int) []websearch.Article {
	if maxResults <= 0 || len(a.sources) == 0 {
		return nil
	}
	perSource := maxResults * 2
	if perSource < 10 {
		perSource = 10
	}

	// Slots are indexed by registration order so concurrent completion
	// order cannot influence the final ordering.
	results := make([][]websearch.Article, len(a.sources))
	var wg sync.WaitGroup
	for i, src := range a.sources {
		wg.Add(1)
		go func(i int, src *Source) {
			defer wg.Done()
			sctx, cancel := context.WithTimeout(ctx, a.timeout)
			defer cancel()
			results[i] = src.search(sctx, query, tag, perSource)
		}(i, src)
	}
	wg.Wait()

	seen := make(map[string]bool)
	var merged []websearch.Article
	for _, list := range results {
		for _, art := range list {
			key := identityKey(art)
			if seen[key] {
				continue
			}
			seen[key] = true
			merged = append(merged, art)
		}
	}
	a.logger.Printf("aggregated %d unique articles for query %q across %d sources", len(merged), query, len(a.sources))

	sort.SliceStable(merged, func(i, j int) bool {
		return publishedAt(merged[i]).After(publishedAt(merged[j]))
	})
	if len(merged) > maxResults {
		merged = merged[:maxResults]
	}
	for i := range merged {
		merged[i].Summary = helpers.Truncate(merged[i].Snippet(), snippetLimit)
	}
	return merged
}

// publishedAt treats a missing timestamp as the zero time, which sorts
// after every dated article.
func publishedAt(a websearch.Article) time.Time {
	if a.PublishedAt != nil {
		return *a.PublishedAt
	}
	return time.Time{}
}
