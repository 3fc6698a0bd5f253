package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/tcp_snm/algodex/internal/algo_errors"
	"github.com/tcp_snm/algodex/internal/service/scheduler_service"
	"github.com/tcp_snm/algodex/middleware"
)

const (
	serveCmdName = "serve"

	shutdownTimeout   = 10 * time.Second
	readHeaderTimeout = 10 * time.Second
)

func newServeCmd(c *cli) *cobra.Command {
	return &cobra.Command{
		Use:   serveCmdName,
		Short: "Serve the problem catalogue over HTTP with periodic refreshes",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.serve(cmd.Context())
		},
	}
}

func (c *cli) serve(ctx context.Context) error {
	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	s, err := initServices(c.cfg, registry)
	if err != nil {
		return err
	}
	apiConfig := initApi(s)

	auth := middleware.JWTAuth{Secret: []byte(c.cfg.JWTSecret)}
	if !auth.Enabled() {
		log.Warn("jwt secret not set, write endpoints are open to anyone")
	}

	scheduler := &scheduler_service.Scheduler{
		Refresher: s.problems,
		Schedule:  c.cfg.RefreshCron,
	}
	if err := scheduler.Start(ctx); err != nil {
		return err
	}
	defer scheduler.Stop()

	// create a server object to listen to all requests
	srv := &http.Server{
		Handler:           newRouter(apiConfig, auth, registry),
		Addr:              c.cfg.ListenAddress(),
		ReadHeaderTimeout: readHeaderTimeout,
	}

	serveErr := make(chan error, 1)
	go func() {
		log.WithField("address", srv.Addr).Info("starting server")
		serveErr <- srv.ListenAndServe()
	}()

	select {
	case err := <-serveErr:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("%w, server cannot be started, %w", algo_errors.ErrInternal, err)
	case <-ctx.Done():
	}

	log.Info("shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("%w, graceful shutdown failed, %w", algo_errors.ErrInternal, err)
	}
	return nil
}
