package server

import (
	"context"
	"net/http"
	"strings"
	"unicode/utf8"

	"github.com/labstack/echo/v4"

	"github.com/vestnikmedia/vestnik/internal/chat"
)

const maxMessageLength = 1000

// ChatBot is the conversation surface exposed by this handler.
type ChatBot interface {
	Process(ctx context.Context, req chat.Request) chat.Response
	CreateSession() (string, error)
	EndSession(id string) error
}

type ChatHandler struct {
	Bot ChatBot
}

func (h *ChatHandler) Register(g *echo.Group) {
	g.POST("/process", h.process)
	g.POST("/session", h.createSession)
	g.DELETE("/session/:id", h.endSession)
}

// Process
//
//	@Summary		Chat message
//	@Description	Routes a message through the intent classifier and answers it
//	@Tags			chat
//	@Accept			json
//	@Produce		json
//	@Param			payload	body		ChatProcessRequest	true	"Chat payload"
//	@Success		200		{object}	chat.Response
//	@Failure		400		{object}	HTTPError
//	@Router			/api/chat/process [post]
func (h *ChatHandler) process(c echo.Context) error {
	var req ChatProcessRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if strings.TrimSpace(req.Message) == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "message required")
	}
	if utf8.RuneCountInString(req.Message) > maxMessageLength {
		return echo.NewHTTPError(http.StatusBadRequest, "message too long")
	}

	resp := h.Bot.Process(c.Request().Context(), chat.Request{
		Message:   req.Message,
		Language:  req.Language,
		SessionID: req.SessionID,
	})
	return c.JSON(http.StatusOK, resp)
}

// CreateSession
//
//	@Summary	Open a chat session
//	@Tags		chat
//	@Produce	json
//	@Success	201	{object}	SessionResponse
//	@Failure	500	{object}	HTTPError
//	@Router		/api/chat/session [post]
func (h *ChatHandler) createSession(c echo.Context) error {
	id, err := h.Bot.CreateSession()
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusCreated, SessionResponse{SessionID: id})
}

// EndSession
//
//	@Summary		End a chat session
//	@Description	Idempotent: ending an unknown session still succeeds
//	@Tags			chat
//	@Produce		json
//	@Success		200	{object}	SessionResponse
//	@Failure		500	{object}	HTTPError
//	@Router			/api/chat/session/{id} [delete]
func (h *ChatHandler) endSession(c echo.Context) error {
	id := c.Param("id")
	if err := h.Bot.EndSession(id); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, SessionResponse{SessionID: id})
}
