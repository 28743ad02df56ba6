package server

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os/signal"
	"syscall"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/dreamgarage/dreamcar/config"
	"github.com/dreamgarage/dreamcar/internal/catalog"
	"github.com/dreamgarage/dreamcar/internal/recommend"
	"github.com/dreamgarage/dreamcar/provider"
)

// Run wires the services together and serves HTTP until the process is
// signalled to stop.
func Run(cfg *config.Config) error {
	llm, err := provider.NewProvider(cfg.LLM)
	if err != nil {
		return err
	}

	e := newEcho(cfg)

	store := catalog.New(cfg.Dataset.Path)
	vh := &VehiclesHandler{Catalog: store}
	vh.Register(e)

	rh := &RecommendHandler{
		Catalog:  store,
		Ranker:   recommend.NewRanker(llm),
		Inferrer: recommend.NewInferrer(llm),
		Defaults: cfg.Defaults,
		Logger:   log.New(log.Writer(), "[RECOMMEND] ", log.LstdFlags),
	}
	rh.Register(e)

	ch := &ChatHandler{
		LLM:    llm,
		Logger: log.New(log.Writer(), "[CHAT] ", log.LstdFlags),
	}
	ch.Register(e)

	// Graceful shutdown on SIGINT/SIGTERM.
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
		defer cancel()
		_ = e.Shutdown(shutdownCtx)
	}()

	log.Printf("listening on %s", cfg.Server.Listen)
	if err := e.Start(cfg.Server.Listen); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

// newEcho builds the echo instance with middleware, the unified error
// handler, and the operational routes.
func newEcho(cfg *config.Config) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Use(middleware.Recover())

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
		AllowOrigins:     cfg.Server.AllowOrigins,
		AllowMethods:     []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:     []string{"Content-Type"},
		AllowCredentials: true,
	}))

	e.GET("/healthz", func(c echo.Context) error { return c.String(200, "ok") })
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))
	return e
}
