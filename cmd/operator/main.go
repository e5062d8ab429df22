// Super Sorting System operator - coordinates a fleet of sorting
// agents over HTTP/JSON and gRPC, driving the tick-based control loops
// that keep holds, operations, and inventories converged.
package main

import (
	"context"
	"flag"
	"log/slog"
	"net"
	"os"
	"os/signal"
	"path/filepath"
	"strconv"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/SamMauldin/super-sorting-system/pkg/api"
	"github.com/SamMauldin/super-sorting-system/pkg/config"
	"github.com/SamMauldin/super-sorting-system/pkg/rpc"
	"github.com/SamMauldin/super-sorting-system/pkg/services"
	"github.com/SamMauldin/super-sorting-system/pkg/state"
	"github.com/SamMauldin/super-sorting-system/pkg/version"
)

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// tickInterval is the control loop cadence spec.md's services run at.
const tickInterval = time.Second

func main() {
	configDir := flag.String("config-dir",
		getEnv("CONFIG_DIR", "./deploy/config"),
		"Path to configuration directory")
	flag.Parse()

	envPath := filepath.Join(*configDir, ".env")
	if err := godotenv.Load(envPath); err != nil {
		slog.Warn("could not load .env file, continuing with existing environment", "path", envPath, "error", err)
	} else {
		slog.Info("loaded environment file", "path", envPath)
	}

	ctx := context.Background()

	cfg, err := config.Initialize(ctx, *configDir)
	if err != nil {
		slog.Error("failed to initialize configuration", "error", err)
		os.Exit(1)
	}

	setupLogging(cfg.LogFormat)

	slog.Info("starting operator", "version", version.Full(), "config_dir", *configDir)

	st := state.New()

	runner := services.NewRunner(cfg, st, tickInterval)
	runner.Start(ctx)
	defer runner.Stop()

	httpServer := api.NewServer(cfg, st)
	httpAddr := net.JoinHostPort(cfg.Host, strconv.Itoa(cfg.Port))
	go func() {
		slog.Info("http server listening", "addr", httpAddr)
		if err := httpServer.Start(httpAddr); err != nil {
			slog.Error("http server stopped", "error", err)
		}
	}()

	var grpcServer interface{ GracefulStop() }
	if cfg.GRPCPort != 0 {
		grpcAddr := net.JoinHostPort(cfg.Host, strconv.Itoa(cfg.GRPCPort))
		ln, err := net.Listen("tcp", grpcAddr)
		if err != nil {
			slog.Error("failed to bind grpc listener", "addr", grpcAddr, "error", err)
			os.Exit(1)
		}
		srv := rpc.NewServer(cfg, st)
		grpcServer = srv
		go func() {
			slog.Info("grpc server listening", "addr", grpcAddr)
			if err := rpc.Serve(srv, ln); err != nil {
				slog.Error("grpc server stopped", "error", err)
			}
		}()
	}

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	sig := <-sigCh
	slog.Info("shutting down", "signal", sig.String())

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		slog.Error("error shutting down http server", "error", err)
	}
	if grpcServer != nil {
		grpcServer.GracefulStop()
	}

	slog.Info("goodbye")
}

// setupLogging installs the process-wide slog handler: JSON when
// OPERATOR_LOG_FORMAT=json (or configured via operator.yaml), text
// otherwise.
func setupLogging(format string) {
	opts := &slog.HandlerOptions{Level: slog.LevelInfo}
	var handler slog.Handler
	if format == "json" {
		handler = slog.NewJSONHandler(os.Stdout, opts)
	} else {
		handler = slog.NewTextHandler(os.Stdout, opts)
	}
	slog.SetDefault(slog.New(handler))
}
