package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	echoMiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"pacemaker/pkg/auth"
	"pacemaker/pkg/middleware"
	"pacemaker/router"
)

func serveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API (default)",
		RunE:  runServe,
	}
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, flush, err := setup()
	if err != nil {
		return err
	}
	defer flush()
	zap.S().Infow("config loaded", "config", cfg.Redacted())

	db, err := openDB(cfg)
	if err != nil {
		return err
	}

	var provider auth.Provider
	if cfg.SetupRequired() {
		zap.S().Warn("SUPABASE_URL / SUPABASE_ANON_KEY missing, serving the setup page")
	} else {
		provider = auth.NewGoTrue(cfg.SupabaseURL, cfg.SupabaseKey, cfg.AuthTimeout)
	}

	e := echo.New()
	e.HideBanner = true
	e.Use(echoMiddleware.Recover())
	e.Use(middleware.RequestLogger())
	router.Wire(e, db, cfg, provider)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go func() {
		zap.S().Infof("listening on :%s", cfg.Port)
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			zap.S().Errorw("server stopped", "err", err)
			stop()
		}
	}()

	<-ctx.Done()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return e.Shutdown(shutdownCtx)
}
