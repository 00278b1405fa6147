package websearch

import (
	"context"
	"fmt"
	"net/url"

	"github.com/vestnikmedia/vestnik/config"
	"github.com/vestnikmedia/vestnik/internal/helpers"
	"github.com/vestnikmedia/vestnik/internal/lang"
)

const defaultGoogleEndpoint = "https://www.googleapis.com/customsearch/v1"

// GoogleSearch queries the Google Custom Search JSON API.
// https://developers.google.com/custom-search/v1/overview
type GoogleSearch struct {
	cfg  config.GoogleSearchConfig
	http *HTTPClient
}

func NewGoogleSearch(cfg config.GoogleSearchConfig, httpc *HTTPClient) (*GoogleSearch, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("google search: api key not configured")
	}
	if cfg.SearchEngineID == "" {
		return nil, fmt.Errorf("google search: search engine id not configured")
	}
	if cfg.Endpoint == "" {
		cfg.Endpoint = defaultGoogleEndpoint
	}
	return &GoogleSearch{cfg: cfg, http: httpc}, nil
}

func (g *GoogleSearch) Name() string { return "Google News" }

func (g *GoogleSearch) Search(ctx context.Context, query string, language lang.Tag, maxResults int) ([]Article, error) {
	// The CSE API caps page size at 10.
	num := maxResults
	if num > 10 {
		num = 10
	}
	reqURL := fmt.Sprintf("%s?key=%s&cx=%s&q=%s&num=%d&lr=lang_%s&ie=utf8&oe=utf8",
		g.cfg.Endpoint, url.QueryEscape(g.cfg.APIKey), url.QueryEscape(g.cfg.SearchEngineID),
		url.QueryEscape(query), num, language)
	if language == lang.Bulgarian {
		reqURL += "&gl=bg&cr=countryBG"
	}

	var raw struct {
		Items []struct {
			Title   string `json:"title"`
			Link    string `json:"link"`
			Snippet string `json:"snippet"`
			PageMap struct {
				CseThumbnail []struct {
					Src string `json:"src"`
				} `json:"cse_thumbnail"`
			} `json:"pagemap"`
		} `json:"items"`
	}
	if err := g.http.DoJSON(ctx, "GET", reqURL, nil, nil, &raw); err != nil {
		return nil, fmt.Errorf("google search: %w", err)
	}

	var out []Article
	for i, item := range raw.Items {
		if i >= maxResults {
			break
		}
		imageURL := ""
		if len(item.PageMap.CseThumbnail) > 0 {
			imageURL = item.PageMap.CseThumbnail[0].Src
		}
		out = append(out, Article{
			Title:    item.Title,
			Content:  item.Snippet,
			URL:      item.Link,
			Source:   helpers.Domain(item.Link),
			ImageURL: imageURL,
			Language: string(language),
		})
	}
	return out, nil
}
