package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/randytsao24/swipemap/internal/api"
	"github.com/randytsao24/swipemap/internal/api/handlers"
	"github.com/randytsao24/swipemap/internal/config"
	"github.com/randytsao24/swipemap/internal/explorer"
	"github.com/randytsao24/swipemap/internal/logging"
	"github.com/randytsao24/swipemap/internal/transit"
	"github.com/randytsao24/swipemap/internal/views"
)

const shutdownTimeout = 10 * time.Second

var servePort string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the interactive swipe map",
	Long: `Loads the dataset and serves the dashboard, its HTMX fragments and the
JSON API. Stops gracefully on SIGINT or SIGTERM.`,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().StringVar(&servePort, "port", "", "listen port (default $PORT or 3000)")
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, args []string) error {
	config.LoadDotEnv()
	cfg := config.Load()
	cfg.ManifestPath = getManifestPath(cfg)
	if servePort != "" {
		cfg.Port = servePort
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("configuration error: %w", err)
	}

	logger := logging.New(os.Stdout, cfg, version)
	slog.SetDefault(logger)

	if err := views.LoadTemplates(); err != nil {
		return fmt.Errorf("loading templates: %w", err)
	}

	m, periods, err := loadDataset(cfg.ManifestPath)
	if err != nil {
		return err
	}
	ex := explorer.New(periods, cfg.ViewCacheSize)
	logger.Info("dataset loaded",
		"title", m.Title,
		"periods", len(periods),
		"stations", ex.StationCount(),
	)

	alerts := transit.NewAlertService(cfg.AlertsFeedURL, cfg.HTTPTimeout, cfg.CacheTTL)
	defer alerts.Close()

	site := handlers.Site{Title: m.Title, Description: m.Description}
	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      api.NewRouter(cfg, version, site, ex, alerts),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: cfg.RequestTimeout + 5*time.Second,
		IdleTimeout:  60 * time.Second,
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		logger.Info("server starting",
			"port", cfg.Port,
			"env", cfg.Env,
			"alerts", alerts.Enabled(),
			"url", "http://localhost:"+cfg.Port,
		)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("server failed: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return nil
}
