package search

import (
	"context"
	"fmt"
	"log"
	"strconv"
	"strings"

	"github.com/vestnikmedia/vestnik/internal/lang"
	"github.com/vestnikmedia/vestnik/internal/llm"
	"github.com/vestnikmedia/vestnik/internal/telemetry"
	"github.com/vestnikmedia/vestnik/internal/websearch"
)

// Ranker reorders a result list by relevance using the language model.
// It degrades to the input order: no ranking failure ever loses an
// article or surfaces an error.
type Ranker struct {
	llm    llm.Provider
	logger *log.Logger
}

func NewRanker(provider llm.Provider, logger *log.Logger) *Ranker {
	if logger == nil {
		logger = log.New(log.Writer(), "[RANK] ", log.LstdFlags)
	}
	return &Ranker{llm: provider, logger: logger}
}

// Rank asks the model for a comma-separated permutation of 1-based
// indexes. Out-of-range and duplicate indexes are dropped, unparseable
// tokens skipped, and any article the model never mentioned is appended
// in its original position, so the output is always a permutation of the
// input.
func (r *Ranker) Rank(ctx context.Context, articles []websearch.Article, query string, tag lang.Tag) []websearch.Article {
	if len(articles) < 2 || r.llm == nil {
		return articles
	}
	pack := lang.For(tag)

	var listing strings.Builder
	for i, a := range articles {
		fmt.Fprintf(&listing, "%d. %s - %s\n", i+1, a.Title, a.Snippet())
	}
	prompt := fmt.Sprintf(pack.Messages.RankPrompt, query, listing.String())

	response, err := r.llm.Complete(ctx, prompt)
	if err != nil {
		telemetry.LLMRequests.WithLabelValues("rank", "error").Inc()
		r.logger.Printf("ranking failed, keeping original order: %v", err)
		return articles
	}
	telemetry.LLMRequests.WithLabelValues("rank", "ok").Inc()

	ranked := make([]websearch.Article, 0, len(articles))
	used := make([]bool, len(articles))
	for _, token := range strings.Split(response, ",") {
		n, err := strconv.Atoi(strings.TrimSpace(token))
		if err != nil || n < 1 || n > len(articles) || used[n-1] {
			continue
		}
		used[n-1] = true
		ranked = append(ranked, articles[n-1])
	}
	for i, a := range articles {
		if !used[i] {
			ranked = append(ranked, a)
		}
	}
	return ranked
}
