package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/feral-file/ff-minter/internal/adapter"
	"github.com/feral-file/ff-minter/internal/api/middleware"
	"github.com/feral-file/ff-minter/internal/api/server"
	"github.com/feral-file/ff-minter/internal/api/shared/executor"
	"github.com/feral-file/ff-minter/internal/config"
	"github.com/feral-file/ff-minter/internal/gallery"
	"github.com/feral-file/ff-minter/internal/logger"
	"github.com/feral-file/ff-minter/internal/pinning"
	"github.com/feral-file/ff-minter/internal/ratelimit"
	"github.com/feral-file/ff-minter/internal/uri"
	"github.com/feral-file/ff-minter/internal/wallet"
)

var (
	configFile = flag.String("config", "", "Path to configuration file")
	envPath    = flag.String("env", "config/", "Path to environment files")
)

func main() {
	flag.Parse()

	// Load configuration
	config.ChdirRepoRoot()
	cfg, err := config.LoadRelayConfig(*configFile, *envPath)
	if err != nil {
		panic(fmt.Sprintf("Failed to load config: %v", err))
	}
	if err := cfg.Validate(); err != nil {
		panic(fmt.Sprintf("Invalid config: %v", err))
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Initialize logger with sentry integration
	err = logger.Initialize(logger.Config{
		Debug:           cfg.Debug,
		SentryDSN:       cfg.SentryDSN,
		BreadcrumbLevel: zapcore.InfoLevel,
		Tags: map[string]string{
			"service": "relay",
		},
	})
	if err != nil {
		panic(fmt.Sprintf("Failed to initialize logger: %v", err))
	}
	defer logger.Flush(2 * time.Second)
	logger.InfoCtx(ctx, "Starting pinning relay")

	// Initialize adapters
	clock := adapter.NewClock()
	jsonAdapter := adapter.NewJSON()
	jcsAdapter := adapter.NewJCS()
	resolver := uri.NewResolver(&uri.Config{IPFSGateway: cfg.URI.IPFSGateway})

	pinner := pinning.NewPinataClient(
		pinning.Config{
			APIURL:    cfg.Pinata.APIURL,
			APIKey:    cfg.Pinata.APIKey,
			APISecret: cfg.Pinata.APISecret,
			JWT:       cfg.Pinata.JWT,
		},
		adapter.NewHTTPClient(cfg.Pinata.Timeout, cfg.Pinata.MaxResponseSize),
		jsonAdapter,
		jcsAdapter,
	)

	// The gallery is served only when the contract is configured
	var refresher gallery.Refresher
	if cfg.Chain.Configured() {
		manager := wallet.NewManager(
			wallet.Config{TargetChainID: cfg.Chain.ChainID},
			adapter.NewEthClientDialer(),
			nil,
			clock,
		)
		defer manager.Close()

		reader, err := manager.InitializeReadOnly(ctx, cfg.Chain.RPCURL, cfg.Chain.ContractAddress)
		if err != nil {
			logger.FatalCtx(ctx, "Failed to connect to chain", zap.Error(err), zap.String("rpc_url", cfg.Chain.RPCURL))
		}

		aggregator := gallery.NewAggregator(
			gallery.Config{
				WorkerPoolSize: cfg.Gallery.WorkerPoolSize,
				FetchTimeout:   cfg.Gallery.FetchTimeout,
			},
			reader,
			adapter.NewHTTPClient(cfg.Gallery.FetchTimeout, cfg.Gallery.MaxMetadataSize),
			resolver,
		)
		refresher = gallery.NewRefresher(aggregator, clock, cfg.Gallery.RefreshInterval)

		go func() {
			if err := refresher.Start(ctx); err != nil {
				logger.ErrorCtx(ctx, err, zap.String("component", "gallery-refresher"))
			}
		}()
	} else {
		logger.WarnCtx(ctx, "Chain not configured, gallery endpoints are disabled")
	}

	// Create server config
	serverConfig := server.Config{
		Debug:         cfg.Debug,
		Host:          cfg.Server.Host,
		Port:          cfg.Server.Port,
		ReadTimeout:   time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout:  time.Duration(cfg.Server.WriteTimeout) * time.Second,
		IdleTimeout:   time.Duration(cfg.Server.IdleTimeout) * time.Second,
		MaxUploadSize: cfg.Server.MaxUploadSize,
		Auth: middleware.AuthConfig{
			JWTPublicKey: cfg.Auth.JWTPublicKey,
			APIKeys:      cfg.Auth.APIKeys,
		},
		RateLimit: ratelimit.Config{
			RequestsPerSecond: cfg.RateLimit.RequestsPerSecond,
			Burst:             cfg.RateLimit.Burst,
			IdleTTL:           cfg.RateLimit.IdleTTL,
		},
	}

	srv := server.New(serverConfig, executor.NewExecutor(pinner, resolver, refresher))

	// Start server in a goroutine
	errCh := make(chan error, 1)
	go func() {
		if err := srv.Start(); err != nil {
			errCh <- err
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	select {
	case sig := <-sigCh:
		logger.InfoCtx(ctx, "Received shutdown signal", zap.String("signal", sig.String()))
	case err := <-errCh:
		logger.ErrorCtx(ctx, err, zap.String("component", "server"))
	}

	// Create shutdown context with timeout (don't use canceled ctx)
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()

	if refresher != nil {
		if err := refresher.Stop(shutdownCtx); err != nil {
			logger.WarnCtx(shutdownCtx, "Gallery refresher did not stop in time", zap.Error(err))
		}
	}
	cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.FatalCtx(shutdownCtx, "Server forced to shutdown", zap.Error(err))
	}

	logger.Info("Relay stopped")
}
