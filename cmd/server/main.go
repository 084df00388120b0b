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

	"github.com/GriffinCanCode/AgentOS/webview/internal/infrastructure/config"
	"github.com/GriffinCanCode/AgentOS/webview/internal/infrastructure/logging"
	"github.com/GriffinCanCode/AgentOS/webview/internal/infrastructure/server"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}

	// Flags override environment variables
	port := flag.String("port", cfg.Server.Port, "Server port")
	host := flag.String("host", cfg.Server.Host, "Server host")
	sdk := flag.Int("sdk", cfg.Engine.SDKInt, "Emulated platform SDK level")
	profile := flag.String("profile", cfg.Profile.Path, "Creation profile (YAML or TOML)")
	dev := flag.Bool("dev", cfg.Logging.Development, "Development logging")
	flag.Parse()

	cfg.Server.Port = *port
	cfg.Server.Host = *host
	cfg.Engine.SDKInt = *sdk
	cfg.Profile.Path = *profile
	cfg.Logging.Development = *dev

	logger, err := logging.New(logging.Config{
		Level:       cfg.Logging.Level,
		Development: cfg.Logging.Development,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to build logger: %v\n", err)
		os.Exit(1)
	}
	defer func() { _ = logger.Sync() }()

	srv, err := server.NewServer(cfg, logger)
	if err != nil {
		logger.Fatal("Failed to create server", zap.Error(err))
	}

	// Handle graceful shutdown
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	errChan := make(chan error, 1)
	go func() {
		errChan <- srv.Run()
	}()

	select {
	case sig := <-sigChan:
		logger.Info("Shutting down gracefully", zap.String("signal", sig.String()))
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(ctx); err != nil {
			logger.Error("Error during shutdown", zap.Error(err))
		}
	case err := <-errChan:
		if err != nil {
			logger.Fatal("Server error", zap.Error(err))
		}
	}
}
