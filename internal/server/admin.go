package server

import (
	"database/sql"
	"errors"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/thetrustgroup/trustsite/internal/runtime"
	"github.com/thetrustgroup/trustsite/internal/store"
)

// AdminHandler exposes the submissions inbox behind JWT auth.
type AdminHandler struct {
	Store *store.Store
}

func (h *AdminHandler) Register(g *echo.Group, secret []byte) {
	g.Use(runtime.EchoAuthMiddleware(secret))
	g.GET("/submissions", h.listSubmissions)
	g.POST("/submissions/:id/read", h.markRead)
}

func (h *AdminHandler) listSubmissions(c echo.Context) error {
	status := c.QueryParam("status")
	if status != "" && status != store.SubmissionStatusNew && status != store.SubmissionStatusRead {
		return echo.NewHTTPError(http.StatusBadRequest, "unknown status")
	}
	limit, _ := strconv.Atoi(c.QueryParam("limit"))
	subs, err := h.Store.ListSubmissions(c.Request().Context(), status, limit)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	if subs == nil {
		subs = []store.Submission{}
	}
	return c.JSON(http.StatusOK, subs)
}

func (h *AdminHandler) markRead(c echo.Context) error {
	err := h.Store.MarkSubmissionRead(c.Request().Context(), c.Param("id"))
	if errors.Is(err, sql.ErrNoRows) {
		return echo.NewHTTPError(http.StatusNotFound, "submission not found")
	}
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.NoContent(http.StatusOK)
}
