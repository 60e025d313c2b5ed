package main

import (
	"flag"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/arvindmenon/literature-be/internal/api"
	"github.com/arvindmenon/literature-be/internal/config"
	"github.com/arvindmenon/literature-be/internal/controller"
	"github.com/arvindmenon/literature-be/internal/db"
	"github.com/arvindmenon/literature-be/internal/store"
	"github.com/gorilla/mux"
	"github.com/rs/cors"
)

func main() {
	// Parse command line flags
	var (
		configPath  = flag.String("config", "", "Path to YAML config file")
		port        = flag.String("port", "", "Server port (overrides config)")
		dbPath      = flag.String("db", "", "Database path (overrides config)")
		frontendURL = flag.String("frontend", "", "Frontend URL for CORS (overrides config)")
	)
	flag.Parse()

	cfg := config.Default()
	if *configPath != "" {
		loaded, err := config.Load(*configPath)
		if err != nil {
			slog.Error("failed to load config", "path", *configPath, "error", err)
			os.Exit(1)
		}
		cfg = loaded
	}
	if *port != "" {
		cfg.Server.Port = *port
	}
	if *dbPath != "" {
		cfg.Database.Path = *dbPath
	}
	if *frontendURL != "" {
		cfg.Server.FrontendURL = *frontendURL
	}

	logger := newLogger(cfg.Logging.Level)
	slog.SetDefault(logger)

	// Create data directory if it doesn't exist
	dataDir := filepath.Dir(cfg.Database.Path)
	if err := os.MkdirAll(dataDir, 0755); err != nil {
		logger.Error("failed to create data directory", "error", err)
		os.Exit(1)
	}

	// Initialize the registry
	gameStore := store.NewMemoryStore()
	logger.Info("in-memory game registry initialized")

	// Initialize the database
	database, err := db.NewDatabase(cfg.Database.Path)
	if err != nil {
		logger.Warn("failed to initialize database, continuing without persistence", "error", err)
		database = nil
	} else {
		logger.Info("database initialized", "path", cfg.Database.Path)
		defer database.Close()
	}

	// Engine controller and WebSocket hub
	ctrl := controller.New(gameStore, database, logger)
	sessions := api.NewSessionRegistry()
	hub := api.NewHub(ctrl, sessions, logger)
	go hub.Run()
	logger.Info("websocket hub started")

	handlers := api.NewHandlers(ctrl, hub)

	// Set up router
	r := mux.NewRouter()
	handlers.RegisterRoutes(r)

	// Add middleware for logging
	r.Use(func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			next.ServeHTTP(w, r)
			logger.Info("request", "method", r.Method, "uri", r.RequestURI, "duration", time.Since(start))
		})
	})

	// Configure CORS
	c := cors.New(cors.Options{
		AllowedOrigins:   []string{cfg.Server.FrontendURL},
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Content-Type", "Authorization"},
		AllowCredentials: true,
	})

	// Create server
	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      c.Handler(r),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in a goroutine
	go func() {
		logger.Info("starting server", "port", cfg.Server.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	// Set up graceful shutdown
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	// Block until we receive a termination signal
	<-stop

	logger.Info("shutting down server")
}

func newLogger(level string) *slog.Logger {
	var lvl slog.Level
	switch level {
	case "debug":
		lvl = slog.LevelDebug
	case "warn":
		lvl = slog.LevelWarn
	case "error":
		lvl = slog.LevelError
	default:
		lvl = slog.LevelInfo
	}
	return slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: lvl}))
}
