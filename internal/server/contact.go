package server

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/thetrustgroup/trustsite/internal/helpers"
	"github.com/thetrustgroup/trustsite/internal/store"
)

// Field length caps for the contact form. Generous for real briefs, small
// enough to keep paste-bombs out of the database.
const (
	maxNameLen    = 200
	maxSubjectLen = 300
	maxMessageLen = 10000
)

// ContactHandler persists briefing/contact form submissions.
type ContactHandler struct {
	Store   *store.Store
	Limiter Limiter
}

func (h *ContactHandler) Register(g *echo.Group) {
	g.POST("", h.submit)
}

func (h *ContactHandler) submit(c echo.Context) error {
	if h.Limiter != nil {
		ok, err := h.Limiter.Allow(c.Request().Context(), c.RealIP())
		if err != nil {
			return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
		}
		if !ok {
			rateLimited.WithLabelValues("contact").Inc()
			return echo.NewHTTPError(http.StatusTooManyRequests, "too many submissions, try again later")
		}
	}

	var req ContactRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	sub := store.Submission{
		Name:     helpers.SanitizePlainText(req.Name),
		Email:    helpers.SanitizePlainText(req.Email),
		Company:  helpers.SanitizePlainText(req.Company),
		Subject:  helpers.SanitizePlainText(req.Subject),
		Message:  helpers.SanitizePlainText(req.Message),
		SourceIP: c.RealIP(),
	}
	switch {
	case sub.Name == "" || len(sub.Name) > maxNameLen:
		return echo.NewHTTPError(http.StatusBadRequest, "name required")
	case !helpers.ValidEmail(sub.Email):
		return echo.NewHTTPError(http.StatusBadRequest, "valid email required")
	case sub.Message == "" || len(sub.Message) > maxMessageLen:
		return echo.NewHTTPError(http.StatusBadRequest, "message required")
	case len(sub.Subject) > maxSubjectLen:
		return echo.NewHTTPError(http.StatusBadRequest, "subject too long")
	}

	id, err := h.Store.CreateSubmission(c.Request().Context(), sub)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	submissionsStored.Inc()
	return c.JSON(http.StatusCreated, IDResponse{ID: id})
}
