package server

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/thetrustgroup/trustsite/internal/sitesearch"
)

// SearchHandler serves the site-wide search box.
type SearchHandler struct {
	Index *sitesearch.Index
}

func (h *SearchHandler) Register(g *echo.Group) {
	g.GET("", h.search)
}

func (h *SearchHandler) search(c echo.Context) error {
	q := strings.TrimSpace(c.QueryParam("q"))
	if q == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "q required")
	}
	limit, _ := strconv.Atoi(c.QueryParam("limit"))
	searchQueries.Inc()
	hits, err := h.Index.Query(q, limit)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	if hits == nil {
		hits = []sitesearch.Hit{}
	}
	return c.JSON(http.StatusOK, map[string]interface{}{"query": q, "hits": hits})
}
