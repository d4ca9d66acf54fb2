package server

import (
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/thetrustgroup/trustsite/internal/chat"
)

// ChatHandler answers the scripted chat widget. The transcript lives in the
// client; the server only maps one message to one canned reply.
type ChatHandler struct {
	Responder *chat.Responder
	Limiter   Limiter
}

func (h *ChatHandler) Register(g *echo.Group) {
	g.POST("", h.message)
}

func (h *ChatHandler) message(c echo.Context) error {
	if h.Limiter != nil {
		ok, err := h.Limiter.Allow(c.Request().Context(), c.RealIP())
		if err != nil {
			return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
		}
		if !ok {
			rateLimited.WithLabelValues("chat").Inc()
			return echo.NewHTTPError(http.StatusTooManyRequests, "slow down a little")
		}
	}

	var req ChatRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if strings.TrimSpace(req.Message) == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "message required")
	}

	reply := h.Responder.Reply(req.Message)
	outcome := "fallback"
	if reply.Matched {
		outcome = "matched"
	}
	chatReplies.WithLabelValues(outcome).Inc()

	return c.JSON(http.StatusOK, ChatResponse{
		ID:        uuid.NewString(),
		Reply:     reply.Text,
		Matched:   reply.Matched,
		Timestamp: time.Now().UTC(),
	})
}
