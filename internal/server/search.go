package server

import (
	"context"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/vestnikmedia/vestnik/internal/search"
)

// HybridSearcher is the search surface exposed by this handler.
type HybridSearcher interface {
	Search(ctx context.Context, query, language string, maxResults int) search.Result
}

type SearchHandler struct {
	Hybrid HybridSearcher
}

func (h *SearchHandler) Register(g *echo.Group) {
	g.POST("/search", h.search)
}

// Search
//
//	@Summary		Hybrid search
//	@Description	Searches the site archive and external providers, with LLM relevance ranking
//	@Tags			search
//	@Accept			json
//	@Produce		json
//	@Param			payload	body		SearchRequest	true	"Search payload"
//	@Success		200		{object}	search.Result
//	@Failure		400		{object}	HTTPError
//	@Failure		500		{object}	search.Result
//	@Router			/api/search [post]
func (h *SearchHandler) search(c echo.Context) error {
	var req SearchRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if strings.TrimSpace(req.Query) == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "query required")
	}

	result := h.Hybrid.Search(c.Request().Context(), req.Query, req.Language, req.MaxResults)
	if result.IsError {
		return c.JSON(http.StatusInternalServerError, result)
	}
	return c.JSON(http.StatusOK, result)
}
