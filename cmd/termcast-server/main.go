package main

import (
	"context"
	"flag"
	"log"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/termcastio/termcast-server/internal/rpc"
	"github.com/termcastio/termcast-server/internal/server"
	"github.com/termcastio/termcast-server/internal/session"
	"github.com/termcastio/termcast-server/internal/storage"
	"github.com/termcastio/termcast-server/internal/web"
	"github.com/termcastio/termcast-server/pkg/config"
	"github.com/termcastio/termcast-server/pkg/logging"
)

var (
	configFile = flag.String("config", "", "Path to configuration file")
	version    = "dev"
	buildTime  = "unknown"
)

func main() {
	flag.Parse()
	_ = godotenv.Load(".env")

	// Load configuration
	cfg, err := config.Load(*configFile)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Initialize logger
	logger, err := logging.NewLogger(logging.Config{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
	})
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer func() { _ = logger.Sync() }()

	logger.Info("Starting termcast server",
		zap.String("version", version),
		zap.String("build_time", buildTime),
	)

	// Initialize history storage
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	history, err := storage.New(ctx, cfg)
	cancel()
	if err != nil {
		logger.Fatal("Failed to initialize history storage", zap.Error(err))
	}
	defer func() { _ = history.Close() }()

	logger.Info("History storage initialized", zap.String("type", cfg.Storage.Type))

	// The registry is the shared session state; both services receive it
	// and neither owns it.
	registry, err := session.NewRegistry(cfg.Session, history, logger)
	if err != nil {
		logger.Fatal("Failed to create session registry", zap.Error(err))
	}

	hub := web.NewHub(registry, logger)
	router := web.NewRouter(cfg, registry, history, hub, logger)
	grpcServer := rpc.NewServer(cfg, registry, logger)

	// Drain order: disconnect viewers first, then close sessions, which
	// ends the terminal client streams still in flight.
	srv := server.New(cfg, router, grpcServer, logger,
		hub,
		server.DrainerFunc(func(ctx context.Context) { registry.CloseAll(ctx) }),
	)

	// SIGINT/SIGTERM is the one-shot shutdown signal; a second signal
	// while draining is absorbed by the server.
	runCtx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := srv.ListenAndRun(runCtx); err != nil {
		logger.Fatal("Server failed", zap.Error(err))
	}

	logger.Info("Server exited")
}
