package main

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"myregistry/adapters/etcdstore"
	"myregistry/adapters/jsoncodec"
	"myregistry/adapters/memstore"
	"myregistry/adapters/redisstore"
	"myregistry/adapters/zkstore"
	"myregistry/domain"
	"myregistry/handlers"
	"myregistry/interfaces"
	"myregistry/service"

	"github.com/go-kit/log"
	"github.com/go-kit/log/level"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"golang.org/x/time/rate"
)

func main() {
	// Initialize logger
	logger := log.NewLogfmtLogger(log.NewSyncWriter(os.Stderr))
	logger = log.WithPrefix(logger, "ts", log.DefaultTimestampUTC)
	logger = log.WithPrefix(logger, "caller", log.DefaultCaller)

	level.Info(logger).Log("msg", "Starting MyRegistry service")

	// Load configuration
	config, err := LoadConfig()
	if err != nil {
		level.Error(logger).Log("msg", "Failed to load configuration", "err", err)
		os.Exit(1)
	}
	level.Info(logger).Log(
		"msg", "Configuration loaded",
		"service_port_http", config.HTTPPort,
		"store_backend", config.StoreBackend,
		"base_path", config.BasePath,
	)

	// Create the store for the selected backend
	var store interfaces.TreeStore
	{
		store, err = newStore(config, logger)
		if err != nil {
			level.Error(logger).Log("msg", "Failed to create store", "err", err)
			os.Exit(1)
		}
	}

	// Create and start the registry binder
	var binder *service.RegistryBinder[json.RawMessage]
	{
		codec := jsoncodec.New[domain.Instance[json.RawMessage]]()
		binder, err = service.NewRegistryBinder[json.RawMessage](store, codec, config.BasePath, config.TypeRefresh, logger)
		if err != nil {
			level.Error(logger).Log("msg", "Failed to create registry binder", "err", err)
			os.Exit(1)
		}
		if err := binder.Start(); err != nil {
			level.Error(logger).Log("msg", "Failed to start registry binder", "err", err)
			os.Exit(1)
		}
		level.Info(logger).Log("msg", "Registry binder started")
	}

	// Create HTTP server (Echo)
	var e *echo.Echo
	{
		e = echo.New()
		e.HideBanner = true
		e.Use(middleware.RateLimiter(middleware.NewRateLimiterMemoryStore(rate.Limit(config.RateLimit))))
		service.RegisterErrorHandler(e, logger)
		handlers.RegisterHandlers(e, handlers.NewHTTPServer(binder, logger))
	}

	// Setup graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)

	// Start server in a goroutine
	go func() {
		addr := fmt.Sprintf(":%d", config.HTTPPort)
		level.Info(logger).Log("msg", "Starting HTTP server", "addr", addr)
		if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
			level.Error(logger).Log("msg", "HTTP server error", "err", err)
		}
	}()

	// Wait for interrupt signal
	<-quit
	level.Info(logger).Log("msg", "Shutting down server...")

	// Graceful shutdown with timeout
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := e.Shutdown(shutdownCtx); err != nil {
		level.Error(logger).Log("msg", "Error during server shutdown", "err", err)
	}

	if err := binder.Stop(); err != nil {
		level.Error(logger).Log("msg", "Error stopping registry binder", "err", err)
	}

	level.Info(logger).Log("msg", "Server stopped")
}

// newStore builds the TreeStore selected by STORE_BACKEND.
func newStore(config *MyRegistryConfig, logger log.Logger) (interfaces.TreeStore, error) {
	switch config.StoreBackend {
	case backendZooKeeper:
		return zkstore.New(zkstore.Config{Servers: config.ZooKeeperServers}, logger), nil
	case backendEtcd:
		return etcdstore.New(etcdstore.Config{Endpoints: config.EtcdEndpoints}, logger), nil
	case backendRedis:
		return redisstore.New(config.RedisAddr, logger), nil
	case backendMemory:
		return memstore.New(), nil
	}
	return nil, fmt.Errorf("unknown STORE_BACKEND %q", config.StoreBackend)
}
