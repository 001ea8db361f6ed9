package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/spf13/cobra"

	"github.com/goliatone/go-cardrender"
	"github.com/goliatone/go-cardrender/internal/config"
	"github.com/goliatone/go-cardrender/pkg/designer"
	"github.com/goliatone/go-cardrender/pkg/page"
	"github.com/goliatone/go-cardrender/pkg/server"
	"github.com/goliatone/go-cardrender/pkg/workflow"
)

const shutdownTimeout = 5 * time.Second

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the preview and designer server",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := current.cfg
		if cmd.Flags().Changed("addr") {
			cfg.Server.Addr, _ = cmd.Flags().GetString("addr")
		}
		logger := current.logger
		ctx := cmd.Context()

		store, closeStore, err := openDesignerStore(cfg.Designer)
		if err != nil {
			return err
		}
		defer closeStore()

		reg := prometheus.NewRegistry()
		reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

		telemetry, err := workflow.NewTelemetry(reg)
		if err != nil {
			return err
		}
		flows, err := workflow.New(cfg.Workflow, workflow.WithLogger(logger), workflow.WithTelemetry(telemetry))
		if err != nil {
			return err
		}
		pages, err := page.New(page.WithStylesheet(cfg.Server.Stylesheet))
		if err != nil {
			return err
		}

		options := []server.Option{
			server.WithDesigner(designer.New(ctx, store, designer.WithLogger(logger))),
			server.WithWorkflow(flows),
			server.WithPageRenderer(pages),
			server.WithLogger(logger),
			server.WithRuntimeFS(cardrender.RuntimeAssetsFS()),
			server.WithMaxBodyBytes(cfg.Server.MaxBodyBytes),
			server.WithSessionLimits(cfg.Server.SessionTTL, cfg.Server.MaxSessions),
		}
		if cfg.Server.Metrics {
			options = append(options, server.WithMetrics(reg, reg))
		}
		srv, err := server.New(options...)
		if err != nil {
			return err
		}

		httpServer := &http.Server{
			Addr:              cfg.Server.Addr,
			Handler:           srv.Handler(),
			ReadHeaderTimeout: 10 * time.Second,
		}

		serverErrors := make(chan error, 1)
		go func() {
			logger.Info("cardrender server listening", "addr", httpServer.Addr, "designer_store", cfg.Designer.Store, "workflow", flows.Enabled())
			serverErrors <- httpServer.ListenAndServe()
		}()

		select {
		case err := <-serverErrors:
			if errors.Is(err, http.ErrServerClosed) {
				return nil
			}
			return fmt.Errorf("server: %w", err)
		case <-ctx.Done():
			logger.Info("shutting down")
			shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
			defer cancel()
			if err := httpServer.Shutdown(shutdownCtx); err != nil {
				logger.Warn("graceful shutdown did not complete", "timeout", shutdownTimeout, "err", err)
				return httpServer.Close()
			}
			return nil
		}
	},
}

// openDesignerStore builds the configured backend and its cleanup func.
func openDesignerStore(cfg config.Designer) (designer.Store, func(), error) {
	switch cfg.Store {
	case config.StoreRedis:
		store := designer.NewRedisStore(cfg.RedisAddr,
			designer.WithRedisPrefix(cfg.RedisPrefix),
			designer.WithRedisTTL(cfg.RedisTTL),
		)
		return store, func() { _ = store.Close() }, nil
	case config.StoreSQLite:
		store, err := designer.OpenSQLite(cfg.SQLitePath)
		if err != nil {
			return nil, nil, err
		}
		return store, func() { _ = store.Close() }, nil
	default:
		return designer.NewMemoryStore(), func() {}, nil
	}
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().String("addr", ":8080", "Address to listen on")
}
