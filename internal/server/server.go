// Package server exposes the search and chat core over HTTP.
package server

import (
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	goredis "github.com/redis/go-redis/v9"

	"github.com/vestnikmedia/vestnik/config"
	"github.com/vestnikmedia/vestnik/internal/chat"
	"github.com/vestnikmedia/vestnik/internal/chat/session"
	"github.com/vestnikmedia/vestnik/internal/chat/session/inmemory"
	redissession "github.com/vestnikmedia/vestnik/internal/chat/session/redis"
	"github.com/vestnikmedia/vestnik/internal/corpus"
	"github.com/vestnikmedia/vestnik/internal/llm"
	"github.com/vestnikmedia/vestnik/internal/search"
	"github.com/vestnikmedia/vestnik/internal/websearch"
)

func Run(cfg *config.Config) error {
	e := echo.New()
	e.HideBanner = true
	e.Use(middleware.Recover())
	// Unified HTTP error handler with structured JSON and logging
	baseLogger := log.New(log.Writer(), "[HTTP] ", log.LstdFlags)
	e.HTTPErrorHandler = func(err error, c echo.Context) {
		code := http.StatusInternalServerError
		msg := err.Error()
		if he, ok := err.(*echo.HTTPError); ok {
			code = he.Code
			if he.Message != nil {
				msg = fmt.Sprint(he.Message)
			}
		}
		req := c.Request()
		baseLogger.Printf("%d %s %s from %s: %v", code, req.Method, req.URL.Path, c.RealIP(), err)
		if !c.Response().Committed {
			_ = c.JSON(code, map[string]interface{}{"error": msg})
		}
	}
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Content-Type", "Authorization", "Cookie"},
		AllowCredentials: true,
	}))

	e.GET("/healthz", func(c echo.Context) error { return c.String(200, "ok") })
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))

	dsn, err := cfg.Storage.Postgres.DSN()
	if err != nil {
		return err
	}
	if err := Migrate("file://migrations", dsn, "up", 0); err != nil {
		baseLogger.Printf("migrations: %v", err)
	}
	db, err := corpus.Open(dsn)
	if err != nil {
		return err
	}
	articles := corpus.New(db)

	llmProvider, err := llm.NewOpenAI(cfg.OpenAI)
	if err != nil {
		return err
	}

	searchLogger := log.New(log.Writer(), "[SEARCH] ", log.LstdFlags)
	sources, err := buildSources(cfg, searchLogger)
	if err != nil {
		return err
	}
	aggregator := search.NewAggregator(sources, cfg.Search.ProviderTimeout, searchLogger)
	ranker := search.NewRanker(llmProvider, searchLogger)
	hybrid := search.NewHybrid(articles, aggregator, ranker,
		cfg.Search.MaxExternalResults, cfg.Search.MaxLocalResults, searchLogger)

	sessions, err := buildSessionStore(cfg)
	if err != nil {
		return err
	}
	chatLogger := log.New(log.Writer(), "[CHAT] ", log.LstdFlags)
	// Chat answers cite a handful of links; the first configured provider
	// is enough there, the full fan-out stays behind /api/search.
	bot := chat.NewBot(sessions, llmProvider, sources[0], articles, cfg.Server.FrontendBaseURL, chatLogger)

	api := e.Group("/api")
	if cfg.Server.RequireAuth {
		if cfg.Server.JWTSecret == "" {
			return fmt.Errorf("jwt secret not configured (server.jwt_secret)")
		}
		secret := []byte(cfg.Server.JWTSecret)
		api.Use(func(next echo.HandlerFunc) echo.HandlerFunc { return withAuth(next, secret) })
	}

	sh := &SearchHandler{Hybrid: hybrid}
	sh.Register(api)
	ch := &ChatHandler{Bot: bot}
	ch.Register(api.Group("/chat"))

	addr := cfg.Server.Address
	if addr == "" {
		addr = ":10002"
	}
	log.Printf("listening on %s", addr)
	return e.Start(addr)
}

// buildSources turns every configured provider credential into a search
// source. At least one provider must be configured.
func buildSources(cfg *config.Config, logger *log.Logger) ([]*search.Source, error) {
	httpc := websearch.NewHTTPClient(cfg.Search.ProviderTimeout, 1, 300*time.Millisecond)

	var sources []*search.Source
	if cfg.Providers.Google.APIKey != "" {
		p, err := websearch.NewGoogleSearch(cfg.Providers.Google, httpc)
		if err != nil {
			return nil, err
		}
		sources = append(sources, search.NewSource(p, logger))
	}
	if cfg.Providers.Serper.APIKey != "" {
		p, err := websearch.NewSerperSearch(cfg.Providers.Serper, httpc)
		if err != nil {
			return nil, err
		}
		sources = append(sources, search.NewSource(p, logger))
	}
	if cfg.Providers.Brave.APIKey != "" {
		p, err := websearch.NewBraveSearch(cfg.Providers.Brave, httpc)
		if err != nil {
			return nil, err
		}
		sources = append(sources, search.NewSource(p, logger))
	}
	if len(sources) == 0 {
		return nil, fmt.Errorf("no search provider configured (providers.google/serper/brave)")
	}
	return sources, nil
}

func buildSessionStore(cfg *config.Config) (session.Store, error) {
	switch cfg.Chat.SessionStore {
	case "redis":
		rdb := goredis.NewClient(&goredis.Options{
			Addr:     cfg.Storage.Redis.Addr,
			Password: cfg.Storage.Redis.Password,
			DB:       cfg.Storage.Redis.DB,
		})
		return redissession.New(rdb, cfg.Chat.SessionTTL, cfg.Chat.HistoryCap, cfg.Chat.HistoryKeep), nil
	case "inmemory", "":
		return inmemory.New(cfg.Chat.SessionTTL, cfg.Chat.HistoryCap, cfg.Chat.HistoryKeep), nil
	default:
		return nil, fmt.Errorf("unknown session store %q", cfg.Chat.SessionStore)
	}
}
