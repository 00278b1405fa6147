package search

import (
	"context"
	"log"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/vestnikmedia/vestnik/internal/corpus"
	"github.com/vestnikmedia/vestnik/internal/helpers"
	"github.com/vestnikmedia/vestnik/internal/lang"
	"github.com/vestnikmedia/vestnik/internal/telemetry"
	"github.com/vestnikmedia/vestnik/internal/websearch"
)

const localContentLimit = 500

// LocalSearcher is the read contract of the site's own article store.
type LocalSearcher interface {
	FindPublished(ctx context.Context, f corpus.Filter) ([]corpus.Article, error)
}

// ExternalSearcher abstracts the provider fan-out.
type ExternalSearcher interface {
	SearchAllSources(ctx context.Context, query string, tag lang.Tag, maxResults int) []websearch.Article
}

// ArticleRanker reorders external results by relevance to the query.
type ArticleRanker interface {
	Rank(ctx context.Context, articles []websearch.Article, query string, tag lang.Tag) []websearch.Article
}

// LocalArticle is the response shape for a site article, with the body
// cut down to a preview.
type LocalArticle struct {
	ID            int64     `json:"id"`
	Title         string    `json:"title"`
	Content       string    `json:"content"`
	CategoryName  string    `json:"categoryName"`
	AuthorName    string    `json:"authorName"`
	PublishedDate time.Time `json:"publishedDate"`
	Language      string    `json:"language"`
}

// Result is the combined answer of one hybrid search.
type Result struct {
	Query            string              `json:"query"`
	Language         string              `json:"language"`
	LocalArticles    []LocalArticle      `json:"localArticles"`
	ExternalArticles []websearch.Article `json:"externalArticles"`
	TotalResults     int                 `json:"totalResults"`
	Timestamp        time.Time           `json:"timestamp"`
	IsError          bool                `json:"isError"`
	ErrorMessage     string              `json:"errorMessage,omitempty"`
}

// Hybrid combines the local article store with the external provider
// fan-out and LLM re-ranking into one search surface.
type Hybrid struct {
	local       LocalSearcher
	external    ExternalSearcher
	ranker      ArticleRanker
	maxExternal int
	maxLocal    int
	logger      *log.Logger
}

func NewHybrid(local LocalSearcher, external ExternalSearcher, ranker ArticleRanker, maxExternal, maxLocal int, logger *log.Logger) *Hybrid {
	if maxExternal <= 0 {
		maxExternal = 10
	}
	if maxLocal <= 0 {
		maxLocal = 50
	}
	if logger == nil {
		logger = log.New(log.Writer(), "[HYBRID] ", log.LstdFlags)
	}
	return &Hybrid{
		local:       local,
		external:    external,
		ranker:      ranker,
		maxExternal: maxExternal,
		maxLocal:    maxLocal,
		logger:      logger,
	}
}

// Search runs local and external search for one query. A local store
// failure produces an error-flagged result with a localized message;
// external providers degrade silently inside the aggregator.
func (h *Hybrid) Search(ctx context.Context, query, language string, maxResults int) Result {
	timer := prometheus.NewTimer(telemetry.SearchDuration)
	defer timer.ObserveDuration()

	tag := lang.Normalize(language)
	if maxResults <= 0 || maxResults > h.maxExternal {
		maxResults = h.maxExternal
	}
	result := Result{
		Query:            query,
		Language:         string(tag),
		LocalArticles:    []LocalArticle{},
		ExternalArticles: []websearch.Article{},
		Timestamp:        time.Now().UTC(),
	}

	locals, err := h.local.FindPublished(ctx, corpus.Filter{Query: query, Limit: h.maxLocal})
	if err != nil {
		h.logger.Printf("local search failed for query %q: %v", query, err)
		result.IsError = true
		result.ErrorMessage = lang.For(tag).Messages.GenericError
		return result
	}
	if query != "" {
		locals = corpus.RankByQuery(locals, query)
	}
	for _, a := range locals {
		result.LocalArticles = append(result.LocalArticles, LocalArticle{
			ID:            a.ID,
			Title:         a.Title,
			Content:       helpers.Truncate(a.Body, localContentLimit),
			CategoryName:  a.CategoryName,
			AuthorName:    a.AuthorName,
			PublishedDate: a.CreatedAt,
			Language:      string(tag),
		})
	}

	external := h.external.SearchAllSources(ctx, query, tag, maxResults)
	if ranked := h.ranker.Rank(ctx, external, query, tag); ranked != nil {
		result.ExternalArticles = ranked
	}
	result.TotalResults = len(result.LocalArticles) + len(result.ExternalArticles)
	return result
}
