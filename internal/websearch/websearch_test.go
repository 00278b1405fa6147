package websearch

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/vestnikmedia/vestnik/config"
	"github.com/vestnikmedia/vestnik/internal/lang"
)

func TestGoogleSearchParsesResults(t *testing.T) {
	var gotQuery string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.RawQuery
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"items":[
			{"title":"Budget basics","link":"https://www.bbc.com/news/1","snippet":"how to budget",
			 "pagemap":{"cse_thumbnail":[{"src":"https://img.example.com/1.jpg"}]}},
			{"title":"Second","link":"https://Dnevnik.bg/a/2","snippet":"second hit"}
		]}`))
	}))
	defer srv.Close()

	g, err := NewGoogleSearch(config.GoogleSearchConfig{
		APIKey:         "key",
		SearchEngineID: "cx",
		Endpoint:       srv.URL,
	}, NewHTTPClient(2*time.Second, 0, 0))
	if err != nil {
		t.Fatalf("NewGoogleSearch: %v", err)
	}

	articles, err := g.Search(context.Background(), "бюджет", lang.Bulgarian, 5)
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if len(articles) != 2 {
		t.Fatalf("expected 2 articles, got %d", len(articles))
	}
	if articles[0].Source != "www.bbc.com" || articles[1].Source != "dnevnik.bg" {
		t.Fatalf("source should be the lower-cased host: %q, %q", articles[0].Source, articles[1].Source)
	}
	if articles[0].ImageURL != "https://img.example.com/1.jpg" {
		t.Fatalf("thumbnail not mapped: %q", articles[0].ImageURL)
	}
	if articles[0].Language != "bg" {
		t.Fatalf("language tag not propagated: %q", articles[0].Language)
	}
	for _, want := range []string{"lr=lang_bg", "gl=bg", "cr=countryBG", "num=5"} {
		if !strings.Contains(gotQuery, want) {
			t.Fatalf("request query missing %q: %s", want, gotQuery)
		}
	}
}

func TestGoogleSearchCapsPageSize(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("num") != "10" {
			t.Errorf("num should be capped at 10, got %s", r.URL.Query().Get("num"))
		}
		_, _ = w.Write([]byte(`{}`))
	}))
	defer srv.Close()

	g, err := NewGoogleSearch(config.GoogleSearchConfig{APIKey: "key", SearchEngineID: "cx", Endpoint: srv.URL}, NewHTTPClient(2*time.Second, 0, 0))
	if err != nil {
		t.Fatalf("NewGoogleSearch: %v", err)
	}
	if _, err := g.Search(context.Background(), "tech", lang.English, 25); err != nil {
		t.Fatalf("Search: %v", err)
	}
}

func TestGoogleSearchRequiresCredentials(t *testing.T) {
	t.Parallel()
	if _, err := NewGoogleSearch(config.GoogleSearchConfig{SearchEngineID: "cx"}, NewHTTPClient(0, 0, 0)); err == nil {
		t.Fatalf("expected error for missing api key")
	}
	if _, err := NewGoogleSearch(config.GoogleSearchConfig{APIKey: "key"}, NewHTTPClient(0, 0, 0)); err == nil {
		t.Fatalf("expected error for missing search engine id")
	}
}

func TestSerperSearchParsesResults(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("X-API-KEY") != "secret" {
			t.Errorf("missing api key header")
		}
		_, _ = w.Write([]byte(`{"organic":[
			{"title":"One","link":"https://reuters.com/1","snippet":"first"},
			{"title":"Two","link":"https://reuters.com/2","snippet":"second"},
			{"title":"Three","link":"https://reuters.com/3","snippet":"third"}
		]}`))
	}))
	defer srv.Close()

	s, err := NewSerperSearch(config.SerperConfig{APIKey: "secret", Endpoint: srv.URL}, NewHTTPClient(2*time.Second, 0, 0))
	if err != nil {
		t.Fatalf("NewSerperSearch: %v", err)
	}
	articles, err := s.Search(context.Background(), "news", lang.English, 2)
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if len(articles) != 2 {
		t.Fatalf("maxResults should cap the mapped list, got %d", len(articles))
	}
	if articles[0].Source != "reuters.com" {
		t.Fatalf("unexpected source %q", articles[0].Source)
	}
}

func TestBraveSearchSurfacesHTTPErrors(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "quota exceeded", http.StatusTooManyRequests)
	}))
	defer srv.Close()

	b, err := NewBraveSearch(config.BraveConfig{APIKey: "secret", Endpoint: srv.URL}, NewHTTPClient(2*time.Second, 0, time.Millisecond))
	if err != nil {
		t.Fatalf("NewBraveSearch: %v", err)
	}
	if _, err := b.Search(context.Background(), "news", lang.English, 3); err == nil {
		t.Fatalf("expected error for non-2xx response")
	}
}
