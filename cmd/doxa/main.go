package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/adrg/xdg"
	"github.com/joho/godotenv"

	"doxa/internal/api"
	"doxa/pkg/config"
	"doxa/pkg/db"
	"doxa/pkg/logging"
	"doxa/pkg/presenter"
	"doxa/pkg/store"
	"doxa/pkg/version"
)

var (
	initConfig = flag.Bool("init-config", false, "Generate default config file and exit")
	configPath = flag.String("config", "", "Path to config file (default: XDG config dir)")
)

func main() {
	flag.Parse()

	// Local overrides (DOXA_ADDRESS, DOXA_DB_PATH) may live in a .env
	// next to the binary.
	_ = godotenv.Load()

	path := *configPath
	if path == "" {
		path = filepath.Join(xdg.ConfigHome, "doxa", "doxa.yaml")
	}

	if *initConfig {
		if err := config.GenerateDefault(path); err != nil {
			fmt.Fprintf(os.Stderr, "Failed to generate config: %v\n", err)
			os.Exit(1)
		}
		fmt.Println("Config file generated:", path)
		return
	}

	if err := run(context.Background(), path); err != nil {
		fmt.Fprintf(os.Stderr, "CRITICAL ERROR: Application failed: %v\n", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, configPath string) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	cfg, err := config.Load(configPath)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	cleanupLogs, err := logging.Init(&cfg.Log)
	if err != nil {
		return fmt.Errorf("failed to initialize logging: %w", err)
	}
	defer cleanupLogs()

	slog.Info("Doxa started", "version", version.Version)

	dbConn, err := db.Init(cfg.DB.Path)
	if err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}
	defer dbConn.Close()
	st := store.NewSQLiteStore(dbConn)

	stateStore := presenter.NewStateStore(ctx, st, st)
	pres := presenter.New(stateStore, st, cfg.Presentation.ChorusExpansion)

	return runServer(ctx, cfg, st, pres)
}

func runServer(ctx context.Context, cfg *config.Config, st store.Store, pres *presenter.Presenter) error {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	shutdownFunc := func() { quit <- syscall.SIGTERM }

	hub := api.NewWSHub(pres)

	srv := api.NewServer(cfg.Server.Address,
		api.NewStateHandler(pres),
		api.NewPresentationHandler(pres, cfg.Presentation.DefaultTranslation),
		api.NewQueueHandler(st),
		api.NewSongHandler(st, cfg.Presentation.ChorusExpansion),
		hub,
		shutdownFunc,
	)

	srv.Handler = loggingMiddleware(srv.Handler)
	return runServerLifecycle(ctx, srv, quit)
}

func runServerLifecycle(ctx context.Context, srv *http.Server, quit chan os.Signal) error {
	slog.Info("Starting server", "addr", srv.Addr)
	serverErrors := make(chan error, 1)
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			serverErrors <- err
		}
	}()
	select {
	case <-quit:
		slog.Info("Shutting down server...")
	case <-ctx.Done():
		slog.Info("Context cancelled, shutting down...")
	case err := <-serverErrors:
		return fmt.Errorf("server failed: %w", err)
	}
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

func loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		logging.RequestLogger.Info("Request Processed", "method", r.Method, "path", r.URL.Path, "duration", time.Since(start))
	})
}
