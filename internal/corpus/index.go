package corpus

import (
	"strconv"
	"strings"

	"github.com/blevesearch/bleve"
)

// RankByQuery reorders articles by full-text relevance to the query using
// a throwaway in-memory index. The candidate sets here are small (the SQL
// filter already ran), so indexing per request is cheap. Articles the
// index does not match keep their recency order and go last. Any index
// failure falls back to the input order.
func RankByQuery(articles []Article, query string) []Article {
	if len(articles) < 2 || strings.TrimSpace(query) == "" {
		return articles
	}
	idx, err := bleve.NewMemOnly(bleve.NewIndexMapping())
	if err != nil {
		return articles
	}
	defer idx.Close()

	byID := make(map[string]Article, len(articles))
	for _, a := range articles {
		id := strconv.FormatInt(a.ID, 10)
		byID[id] = a
		doc := struct {
			Title string
			Body  string
		}{a.Title, a.Body}
		if err := idx.Index(id, doc); err != nil {
			return articles
		}
	}

	req := bleve.NewSearchRequestOptions(bleve.NewMatchQuery(query), len(articles), 0, false)
	res, err := idx.Search(req)
	if err != nil {
		return articles
	}

	seen := make(map[string]bool, len(res.Hits))
	ordered := make([]Article, 0, len(articles))
	for _, hit := range res.Hits {
		if a, ok := byID[hit.ID]; ok && !seen[hit.ID] {
			ordered = append(ordered, a)
			seen[hit.ID] = true
		}
	}
	for _, a := range articles {
		if !seen[strconv.FormatInt(a.ID, 10)] {
			ordered = append(ordered, a)
		}
	}
	return ordered
}
