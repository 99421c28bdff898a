package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"go.uber.org/zap"
	"google.golang.org/grpc"

	"github.com/xtding233/ordercalc/internal/config"
	"github.com/xtding233/ordercalc/internal/handlers"
	"github.com/xtding233/ordercalc/internal/metrics"
	"github.com/xtding233/ordercalc/internal/platform/observability"
	"github.com/xtding233/ordercalc/internal/rpc"
)

const shutdownTimeout = 10 * time.Second

var version = "dev"

func main() {
	configDir := flag.String("config-dir", "config", "directory holding default.yaml and <env>.yaml")
	env := flag.String("env", os.Getenv("ORDERCALC_ENV"), "environment overlay to load, e.g. prod")
	watchEvery := flag.Duration("watch", 5*time.Second, "config reload poll interval (0 disables)")
	flag.Parse()

	if err := run(*configDir, *env, *watchEvery); err != nil {
		fmt.Fprintln(os.Stderr, "ordercalc:", err)
		os.Exit(1)
	}
}

func run(configDir, env string, watchEvery time.Duration) error {
	loader := config.NewLoader(configDir, env)
	cfg, err := loader.Load()
	if err != nil {
		return err
	}

	logger, level, err := observability.NewLogger(cfg.Log.Level)
	if err != nil {
		return fmt.Errorf("build logger: %w", err)
	}
	defer func() { _ = logger.Sync() }()

	var m *metrics.ServerMetrics
	if cfg.Metrics.Enabled {
		reg := prometheus.NewRegistry()
		reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
		m = metrics.NewServerMetrics(cfg.Metrics.Namespace, reg)
	}

	if watchEvery > 0 {
		w := config.WatchLoader(loader, watchEvery, func(next config.Config) {
			if err := observability.SetLevel(level, next.Log.Level); err != nil {
				logger.Warn("ignoring log level", zap.String("level", next.Log.Level), zap.Error(err))
				return
			}
			logger.Info("config reloaded", zap.String("version", next.Version), zap.String("log_level", next.Log.Level))
		}, func(err error) {
			logger.Warn("config reload rejected", zap.Error(err))
		})
		w.Start()
		defer w.Stop()
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	router := handlers.NewRouter(
		handlers.WithLogger(logger),
		handlers.WithMetrics(m),
		handlers.WithDefaultRegion(cfg.DefaultRegion),
		handlers.WithTimeout(cfg.HTTP.WriteTimeout),
		handlers.WithHealth(handlers.NewHealthHandlers(handlers.WithHealthStart(time.Now(), version))),
	)
	httpSrv := &http.Server{
		Addr:         cfg.HTTP.Addr,
		Handler:      router,
		ReadTimeout:  cfg.HTTP.ReadTimeout,
		WriteTimeout: cfg.HTTP.WriteTimeout,
		IdleTimeout:  cfg.HTTP.IdleTimeout,
	}

	errCh := make(chan error, 2)
	go func() {
		logger.Info("http listening", zap.String("addr", cfg.HTTP.Addr))
		if err := httpSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- fmt.Errorf("http: %w", err)
		}
	}()

	var grpcSrv *grpc.Server
	if cfg.GRPC.Enabled {
		lis, err := net.Listen("tcp", cfg.GRPC.Addr)
		if err != nil {
			return fmt.Errorf("grpc listen: %w", err)
		}
		grpcSrv = rpc.NewGRPCServer(logger, m, cfg.DefaultRegion)
		go func() {
			logger.Info("grpc listening", zap.String("addr", cfg.GRPC.Addr))
			if err := grpcSrv.Serve(lis); err != nil {
				errCh <- fmt.Errorf("grpc: %w", err)
			}
		}()
	}

	select {
	case <-ctx.Done():
		logger.Info("shutting down")
	case err := <-errCh:
		logger.Error("server failed", zap.Error(err))
		return err
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if grpcSrv != nil {
		grpcSrv.GracefulStop()
	}
	return httpSrv.Shutdown(shutdownCtx)
}
