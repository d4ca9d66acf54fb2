package server

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	contentQueries = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "trustsite_content_queries_total",
		Help: "List queries served, by content type.",
	}, []string{"type"})

	chatReplies = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "trustsite_chat_replies_total",
		Help: "Chat replies served, by outcome (matched or fallback).",
	}, []string{"outcome"})

	searchQueries = promauto.NewCounter(prometheus.CounterOpts{
		Name: "trustsite_search_queries_total",
		Help: "Site-wide search queries served.",
	})

	submissionsStored = promauto.NewCounter(prometheus.CounterOpts{
		Name: "trustsite_submissions_total",
		Help: "Contact form submissions persisted.",
	})

	rateLimited = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "trustsite_rate_limited_total",
		Help: "Requests rejected by the per-IP rate limiter, by endpoint.",
	}, []string{"endpoint"})
)
