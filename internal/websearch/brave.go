package websearch

import (
	"context"
	"fmt"
	"net/url"
	"time"

	"github.com/vestnikmedia/vestnik/config"
	"github.com/vestnikmedia/vestnik/internal/helpers"
	"github.com/vestnikmedia/vestnik/internal/lang"
)

const defaultBraveEndpoint = "https://api.search.brave.com/res/v1/web/search"

// BraveSearch queries the Brave Search API.
// https://api.search.brave.com/app/documentation/web-search
type BraveSearch struct {
	cfg  config.BraveConfig
	http *HTTPClient
}

func NewBraveSearch(cfg config.BraveConfig, httpc *HTTPClient) (*BraveSearch, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("brave: api key not configured")
	}
	if cfg.Endpoint == "" {
		cfg.Endpoint = defaultBraveEndpoint
	}
	return &BraveSearch{cfg: cfg, http: httpc}, nil
}

func (b *BraveSearch) Name() string { return "Brave" }

func (b *BraveSearch) Search(ctx context.Context, query string, language lang.Tag, maxResults int) ([]Article, error) {
	reqURL := fmt.Sprintf("%s?q=%s&count=%d&search_lang=%s",
		b.cfg.Endpoint, url.QueryEscape(query), maxResults, language)
	headers := map[string]string{
		"Accept":               "application/json",
		"X-Subscription-Token": b.cfg.APIKey,
	}

	var raw struct {
		Web struct {
			Results []struct {
				Title       string `json:"title"`
				URL         string `json:"url"`
				Description string `json:"description"`
				PageAge     string `json:"page_age"`
			} `json:"results"`
		} `json:"web"`
	}
	if err := b.http.DoJSON(ctx, "GET", reqURL, headers, nil, &raw); err != nil {
		return nil, fmt.Errorf("brave: %w", err)
	}

	var out []Article
	for i, r := range raw.Web.Results {
		if i >= maxResults {
			break
		}
		a := Article{
			Title:    r.Title,
			Content:  r.Description,
			URL:      r.URL,
			Source:   helpers.Domain(r.URL),
			Language: string(language),
		}
		if r.PageAge != "" {
			if ts, err := time.Parse(time.RFC3339, r.PageAge); err == nil {
				a.PublishedAt = &ts
			}
		}
		out = append(out, a)
	}
	return out, nil
}
