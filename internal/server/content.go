package server

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/thetrustgroup/trustsite/internal/catalog"
	"github.com/thetrustgroup/trustsite/internal/query"
)

// ContentHandler serves the blog, careers and work list/detail endpoints.
// Each list request runs the query engine over the current catalog
// generation; the handler owns no state between requests.
type ContentHandler struct {
	Library         *catalog.Library
	DefaultPageSize int
	MaxPageSize     int
}

func (h *ContentHandler) Register(g *echo.Group) {
	g.GET("/blog", h.listPosts)
	g.GET("/blog/meta", h.blogMeta)
	g.GET("/blog/:slug", h.getPost)
	g.GET("/careers", h.listJobs)
	g.GET("/careers/:slug", h.getJob)
	g.GET("/work", h.listWork)
	g.GET("/work/:slug", h.getWork)
}

// criteria builds engine criteria from query parameters. Unknown page or
// page_size values fall back to defaults rather than erroring: these come
// from the site's own UI, not hand-authored requests.
func (h *ContentHandler) criteria(c echo.Context, facets ...string) query.Criteria {
	crit := query.Criteria{
		Facets:   make(map[string]string, len(facets)),
		Search:   c.QueryParam("q"),
		Page:     1,
		PageSize: h.DefaultPageSize,
	}
	for _, name := range facets {
		if v := c.QueryParam(name); v != "" {
			crit.Facets[name] = v
		}
	}
	crit.Tags = c.QueryParams()["tag"]
	if p, err := strconv.Atoi(c.QueryParam("page")); err == nil && p >= 1 {
		crit.Page = p
	}
	if s, err := strconv.Atoi(c.QueryParam("page_size")); err == nil && s >= 1 {
		if s > h.MaxPageSize {
			s = h.MaxPageSize
		}
		crit.PageSize = s
	}
	return crit
}

func (h *ContentHandler) listPosts(c echo.Context) error {
	contentQueries.WithLabelValues("blog").Inc()
	cat := h.Library.Current()
	crit := h.criteria(c, catalog.FacetCategory)
	res := query.Run(cat.Posts, crit, func(a, b catalog.BlogPost) bool { return a.NewerThan(b) })
	return c.JSON(http.StatusOK, res)
}

func (h *ContentHandler) blogMeta(c echo.Context) error {
	cat := h.Library.Current()
	return c.JSON(http.StatusOK, BlogMetaResponse{
		Categories: cat.PostCategories(),
		Tags:       cat.TagCounts(),
	})
}

func (h *ContentHandler) getPost(c echo.Context) error {
	cat := h.Library.Current()
	post, ok := cat.PostBySlug(c.Param("slug"))
	if !ok {
		return echo.NewHTTPError(http.StatusNotFound, "post not found")
	}
	return c.JSON(http.StatusOK, post)
}

func (h *ContentHandler) listJobs(c echo.Context) error {
	contentQueries.WithLabelValues("careers").Inc()
	cat := h.Library.Current()
	crit := h.criteria(c, catalog.FacetDepartment, catalog.FacetType, catalog.FacetExperience)
	res := query.Run(cat.Jobs, crit, func(a, b catalog.JobListing) bool { return a.RanksAbove(b) })
	return c.JSON(http.StatusOK, res)
}

func (h *ContentHandler) getJob(c echo.Context) error {
	cat := h.Library.Current()
	job, ok := cat.JobBySlug(c.Param("slug"))
	if !ok {
		return echo.NewHTTPError(http.StatusNotFound, "job not found")
	}
	return c.JSON(http.StatusOK, job)
}

func (h *ContentHandler) listWork(c echo.Context) error {
	contentQueries.WithLabelValues("work").Inc()
	cat := h.Library.Current()
	crit := h.criteria(c, catalog.FacetCategory)
	// Work keeps authored order: the grid never re-sorts, filters only hide.
	res := query.Run(cat.Work, crit, nil)
	return c.JSON(http.StatusOK, res)
}

func (h *ContentHandler) getWork(c echo.Context) error {
	cat := h.Library.Current()
	w, ok := cat.WorkBySlug(c.Param("slug"))
	if !ok {
		return echo.NewHTTPError(http.StatusNotFound, "engagement not found")
	}
	return c.JSON(http.StatusOK, w)
}
