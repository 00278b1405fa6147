package websearch

import (
	"context"
	"fmt"

	"github.com/vestnikmedia/vestnik/config"
	"github.com/vestnikmedia/vestnik/internal/helpers"
	"github.com/vestnikmedia/vestnik/internal/lang"
)

const defaultSerperEndpoint = "https://google.serper.dev/search"

// SerperSearch queries serper.dev. https://serper.dev/ docs
type SerperSearch struct {
	cfg  config.SerperConfig
	http *HTTPClient
}

func NewSerperSearch(cfg config.SerperConfig, httpc *HTTPClient) (*SerperSearch, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("serper: api key not configured")
	}
	if cfg.Endpoint == "" {
		cfg.Endpoint = defaultSerperEndpoint
	}
	return &SerperSearch{cfg: cfg, http: httpc}, nil
}

func (s *SerperSearch) Name() string { return "Serper" }

func (s *SerperSearch) Search(ctx context.Context, query string, language lang.Tag, maxResults int) ([]Article, error) {
	body := map[string]any{"q": query, "num": maxResults, "hl": string(language)}
	if language == lang.Bulgarian {
		body["gl"] = "bg"
	}
	headers := map[string]string{"X-API-KEY": s.cfg.APIKey}

	var raw struct {
		Organic []struct {
			Title   string `json:"title"`
			Link    string `json:"link"`
			Snippet string `json:"snippet"`
		} `json:"organic"`
	}
	if err := s.http.DoJSON(ctx, "POST", s.cfg.Endpoint, headers, body, &raw); err != nil {
		return nil, fmt.Errorf("serper: %w", err)
	}

	var out []Article
	for i, r := range raw.Organic {
		if i >= maxResults {
			break
		}
		out = append(out, Article{
			Title:    r.Title,
			Content:  r.Snippet,
			URL:      r.Link,
			Source:   helpers.Domain(r.Link),
			Language: string(language),
		})
	}
	return out, nil
}
