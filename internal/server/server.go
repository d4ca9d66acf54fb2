package server

import (
	"context"
	"fmt"
	"log"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"

	appconfig "github.com/thetrustgroup/trustsite/config"
	"github.com/thetrustgroup/trustsite/internal/catalog"
	"github.com/thetrustgroup/trustsite/internal/chat"
	"github.com/thetrustgroup/trustsite/internal/reload"
	"github.com/thetrustgroup/trustsite/internal/runtime"
	"github.com/thetrustgroup/trustsite/internal/sitesearch"
	"github.com/thetrustgroup/trustsite/internal/store"
)

// Run wires the full site backend and blocks serving HTTP.
func Run(cfg *appconfig.Config) error {
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
		AllowMethods:     []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:     []string{"Content-Type", "Cookie"},
		AllowCredentials: true,
	}))

	e.GET("/healthz", func(c echo.Context) error { return c.String(200, "ok") })
	if cfg.Telemetry.Enabled {
		e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))
	}

	ctx := context.Background()

	// Content: one immutable generation in memory, reloaded on file change.
	cat, err := catalog.Load(cfg.Content.DataDir)
	if err != nil {
		return fmt.Errorf("load content: %w", err)
	}
	library := catalog.NewLibrary(cat)
	log.Printf("content loaded: %d posts, %d jobs, %d engagements", len(cat.Posts), len(cat.Jobs), len(cat.Work))

	index, err := sitesearch.New(cat)
	if err != nil {
		return fmt.Errorf("build search index: %w", err)
	}

	rules := chat.DefaultRules()
	if cfg.Content.ChatRulesFile != "" {
		rules, err = chat.LoadRules(cfg.Content.ChatRulesFile)
		if err != nil {
			return err
		}
	}
	responder := chat.NewResponder(rules)

	// Persistence for form submissions and admin users.
	dsn := cfg.Storage.Postgres.DSN()
	if err := Migrate("file://migrations", dsn, "up", 0); err != nil {
		log.Printf("[MIGRATE] skipped: %v", err)
	}
	st, err := store.NewWithDSN(ctx, dsn)
	if err != nil {
		return err
	}

	rdb := redis.NewClient(&redis.Options{Addr: cfg.Storage.Redis.Addr(), Password: cfg.Storage.Redis.Password, DB: cfg.Storage.Redis.DB})
	if err := rdb.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("redis connection failed (%s): %w", cfg.Storage.Redis.Addr(), err)
	}

	secret, err := runtime.LoadJWTSecret(cfg)
	if err != nil {
		return err
	}

	api := e.Group("/api")

	ch := &ContentHandler{Library: library, DefaultPageSize: cfg.Content.DefaultPageSize, MaxPageSize: cfg.Content.MaxPageSize}
	ch.Register(api)

	chatLimiter := &RedisLimiter{Rdb: rdb, Prefix: "rate:chat", Limit: cfg.Limits.ChatPerMinute, Window: minuteWindow}
	th := &ChatHandler{Responder: responder, Limiter: chatLimiter}
	th.Register(api.Group("/chat"))

	sh := &SearchHandler{Index: index}
	sh.Register(api.Group("/search"))

	contactLimiter := &RedisLimiter{Rdb: rdb, Prefix: "rate:contact", Limit: cfg.Limits.ContactPerWindow, Window: cfg.Limits.ContactWindow}
	fh := &ContactHandler{Store: st, Limiter: contactLimiter}
	fh.Register(api.Group("/contact"))

	auth := &AuthHandler{Store: st, Secret: secret}
	auth.Register(api.Group("/auth"))

	admin := &AdminHandler{Store: st}
	admin.Register(api.Group("/admin"), secret)

	reloader := &reload.Reloader{
		Library: library,
		Index:   index,
		DataDir: cfg.Content.DataDir,
		Cron:    cfg.Content.ReloadCron,
		Stop:    make(chan struct{}),
	}
	if err := reloader.Start(!cfg.Content.WatchDisabled); err != nil {
		return fmt.Errorf("start content reloader: %w", err)
	}
	defer reloader.Close()

	addr := cfg.General.Listen
	if addr == "" {
		addr = ":8080"
	}
	log.Printf("listening on %s", addr)
	return e.Start(addr)
}
