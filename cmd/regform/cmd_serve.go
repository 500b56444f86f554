package main

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/goliatone/go-regform"
	"github.com/goliatone/go-regform/components/enrollment"
	"github.com/goliatone/go-regform/pkg/metrics"
	"github.com/goliatone/go-regform/pkg/renderers/vanilla"
)

const shutdownTimeout = 10 * time.Second

type serveConfig struct {
	addr     string
	basePath string
	theme    themeFlags
}

func newServeCmd(a *app) *cobra.Command {
	cfg := &serveConfig{}

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the form over HTTP",
		Long: `Serves the registration routes, the stylesheet under /assets/, and
prometheus metrics under /metrics.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			router, err := a.router(cfg)
			if err != nil {
				return err
			}
			listener, err := net.Listen("tcp", cfg.addr)
			if err != nil {
				return err
			}
			return a.serve(cmd.Context(), listener, router)
		},
	}
	cmd.Flags().StringVar(&cfg.addr, "addr", ":8080", "listen address")
	cmd.Flags().StringVar(&cfg.basePath, "base-path", "/", "prefix for the registration routes")
	cfg.theme.register(cmd)
	return cmd
}

// router wires the registration component, assets, and metrics on chi.
func (a *app) router(cfg *serveConfig) (http.Handler, error) {
	themeOpt, err := cfg.theme.option()
	if err != nil {
		return nil, err
	}
	renderer, err := vanilla.New(vanilla.WithDocument(), themeOpt)
	if err != nil {
		return nil, err
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	m := metrics.New(reg)


	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(30 * time.Second))

	routes, err := enrollment.New(
		enrollment.WithCatalog(a.catalog),
		enrollment.WithRenderer(renderer),
		enrollment.WithMetrics(m),
		enrollment.WithLogger(a.logger),
	).RegisterRoutes(r, cfg.basePath)
	if err != nil {
		return nil, err
	}
	r.Handle("/assets/*", http.StripPrefix("/assets/", http.FileServerFS(regform.AssetsFS())))
	r.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{Registry: reg}))

	a.logger.Info("registration routes mounted",
		zap.String("form", routes.Form),
		zap.String("options", routes.Options),
		zap.String("contract", routes.Contract),
	)
	return r, nil
}

// serve runs until ctx is cancelled, then shuts the server down gracefully.
func (a *app) serve(ctx context.Context, listener net.Listener, handler http.Handler) error {
	srv := &http.Server{
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
	}

	errs := make(chan error, 1)
	go func() {
		a.logger.Info("serving registration form", zap.String("addr", listener.Addr().String()))
		errs <- srv.Serve(listener)
	}()

	select {
	case err := <-errs:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("server error: %w", err)
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("graceful shutdown failed: %w", err)
	}
	if err := <-errs; err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
