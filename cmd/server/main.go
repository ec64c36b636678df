package main

import (
	"context"
	"io"
	"log"
	"log/slog"
	"net/http"
	"os"
	"strings"
	"time"

	"jsonatlas/internal/config"
	"jsonatlas/internal/domain/repositories"
	"jsonatlas/internal/handler"
	kvmemory "jsonatlas/internal/kv/memory"
	kvpostgres "jsonatlas/internal/kv/postgres"
	"jsonatlas/internal/middleware"
	"jsonatlas/internal/service"

	"github.com/joho/godotenv"
	"github.com/rs/cors"
)

func main() {
	// Load .env file (silently ignore if it doesn't exist - for production)
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Setup structured logging
	logLevel := slog.LevelInfo
	if cfg.Debug {
		logLevel = slog.LevelDebug
	}

	var logOut io.Writer = os.Stdout
	if cfg.LogDir != "" {
		logFile, err := config.SetupLogFile(cfg.LogDir, cfg.MaxLogFiles)
		if err != nil {
			log.Fatalf("Failed to setup log file: %v", err)
		}
		defer logFile.Close()
		logOut = io.MultiWriter(os.Stdout, logFile)
	}

	logger := slog.New(slog.NewJSONHandler(logOut, &slog.HandlerOptions{
		Level: logLevel,
	}))
	slog.SetDefault(logger)

	logger.Info("server starting",
		"environment", cfg.Environment,
		"port", cfg.Port,
		"storage", cfg.Storage,
	)

	ctx := context.Background()

	// Create the key-value store backing documents and the collection index
	var kv repositories.KVStore
	switch cfg.Storage {
	case "memory":
		kv = kvmemory.New()
		logger.Warn("using in-memory storage, documents will not survive restarts")
	default:
		pool, err := kvpostgres.CreateConnectionPool(ctx, cfg.DatabaseURL)
		if err != nil {
			log.Fatalf("Failed to create connection pool: %v", err)
		}
		defer pool.Close()

		store := kvpostgres.New(&kvpostgres.Config{
			Pool:        pool,
			TablePrefix: cfg.TablePrefix,
			Logger:      logger,
		})
		if err := store.EnsureSchema(ctx); err != nil {
			log.Fatalf("Failed to ensure storage schema: %v", err)
		}
		kv = store

		logger.Info("database connected", "table_prefix", cfg.TablePrefix)
	}

	// Create services
	fetcher := &http.Client{Timeout: cfg.FetchTimeout}
	docService := service.NewDocumentService(kv, fetcher, logger)
	ingestService := service.NewIngestService(docService, logger)

	// Create handlers
	docHandler := handler.NewDocumentHandler(docService, logger)
	ingestHandler := handler.NewIngestHandler(ingestService, logger)

	logger.Info("services initialized")

	// Create HTTP router (Go 1.22+ enhanced patterns)
	mux := http.NewServeMux()

	// Health check
	mux.HandleFunc("GET /health", docHandler.HealthCheck)

	// Document routes
	mux.HandleFunc("POST /api/documents", docHandler.CreateDocument)
	mux.HandleFunc("GET /api/documents", docHandler.ListDocuments)
	mux.HandleFunc("GET /api/documents/{id}", docHandler.GetDocument)
	mux.HandleFunc("PATCH /api/documents/{id}", docHandler.UpdateDocument)
	mux.HandleFunc("DELETE /api/documents/{id}", docHandler.DeleteDocument)

	// Batch routes
	mux.HandleFunc("POST /api/documents/batch", ingestHandler.BatchCreate)
	mux.HandleFunc("POST /api/documents/bulk-delete", ingestHandler.BulkDelete)

	// Build middleware chain: CORS → RequestID → Recovery → Routes
	var root http.Handler = mux
	root = middleware.Recovery(logger)(root)
	root = middleware.RequestID(logger)(root)

	corsHandler := cors.New(cors.Options{
		AllowedOrigins:   strings.Split(cfg.CORSOrigins, ","),
		AllowedMethods:   []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Origin", "Content-Type", "Accept", "X-Request-ID"},
		AllowCredentials: true,
	})
	root = corsHandler.Handler(root)

	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      root,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	logger.Info("server listening", "port", cfg.Port)
	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Fatalf("Failed to start server: %v", err)
	}
}
