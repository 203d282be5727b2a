// Command fortune-compass serves the Fortune Compass MCP tool and widget over
// streamable HTTP.
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

	"github.com/ggoodman/fortune-compass/auth"
	"github.com/ggoodman/fortune-compass/fortune"
	"github.com/ggoodman/fortune-compass/internal/compass"
	"github.com/ggoodman/fortune-compass/internal/config"
	"github.com/ggoodman/fortune-compass/internal/logctx"
	"github.com/ggoodman/fortune-compass/mcpservice"
	"github.com/ggoodman/fortune-compass/sessions/memorystore"
	"github.com/ggoodman/fortune-compass/streaminghttp"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
		os.Exit(1)
	}

	log := newLogger(cfg)
	if err := run(cfg, log); err != nil {
		log.Error("server.exit", slog.String("err", err.Error()))
		os.Exit(1)
	}
}

func newLogger(cfg *config.Config) *slog.Logger {
	lvl, _ := cfg.Level() // validated by config.Load
	opts := &slog.HandlerOptions{Level: lvl}
	var h slog.Handler = slog.NewTextHandler(os.Stderr, opts)
	if cfg.LogFormat == "json" {
		h = slog.NewJSONHandler(os.Stderr, opts)
	}
	return logctx.Wrap(slog.New(h))
}

func run(cfg *config.Config, log *slog.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	widget, err := mcpservice.ReadStaticFile(cfg.WidgetPath)
	if err != nil {
		return err
	}

	drawer := &fortune.Drawer{}
	if cfg.Deterministic {
		drawer.Seeder = fortune.DailySeeder{}
	}

	reg, err := compass.NewRegistry(widget, compass.Options{Drawer: drawer, Logger: log})
	if err != nil {
		return fmt.Errorf("build registry: %w", err)
	}
	srv := mcpservice.NewServer(compass.Implementation(), reg, mcpservice.WithLogger(log))

	opts := []streaminghttp.Option{
		streaminghttp.WithLogger(log),
		streaminghttp.WithPath(cfg.MCPPath),
		streaminghttp.WithDebugHeaders(cfg.DebugHeaders),
	}
	if cfg.AuthEnabled() {
		authn, err := newAuthenticator(ctx, cfg)
		if err != nil {
			return fmt.Errorf("configure auth: %w", err)
		}
		opts = append(opts, streaminghttp.WithAuthenticator(authn), streaminghttp.WithRealm(compass.ServerName))
		log.Info("auth.enabled", slog.String("issuer", cfg.AuthIssuer))
	}

	h, err := streaminghttp.New(ctx, memorystore.New(), srv.NewTransport, opts...)
	if err != nil {
		return fmt.Errorf("build handler: %w", err)
	}

	hs := &http.Server{Addr: cfg.Addr(), Handler: h}
	errCh := make(chan error, 1)
	go func() {
		log.Info("server.listen", slog.String("addr", cfg.Addr()), slog.String("path", cfg.MCPPath))
		errCh <- hs.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	log.Info("server.shutdown", slog.Duration("timeout", cfg.ShutdownTimeout))
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	if err := hs.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return nil
}

func newAuthenticator(ctx context.Context, cfg *config.Config) (auth.Authenticator, error) {
	if cfg.AuthJWKSURL != "" {
		return auth.NewFromJWKS(ctx, cfg.AuthIssuer, cfg.AuthJWKSURL, cfg.AuthAudience)
	}
	return auth.NewFromDiscovery(ctx, cfg.AuthIssuer, cfg.AuthAudience)
}
