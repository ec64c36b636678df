package main

import (
	"context"
	"flag"
	"log"
	"log/slog"
	"os"
	"path/filepath"

	"jsonatlas/internal/config"
	kvpostgres "jsonatlas/internal/kv/postgres"
	"jsonatlas/internal/service"

	"github.com/joho/godotenv"
)

// Seeds the store with the JSON files in a directory, one document per
// file. Useful for demos and for populating a fresh dev environment.
func main() {
	dir := flag.String("dir", "testdata/seed", "Directory of *.json files to upload")
	schemaOnly := flag.Bool("schema-only", false, "Only set up the kv schema, don't seed documents")
	flag.Parse()

	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))

	ctx := context.Background()
	pool, err := kvpostgres.CreateConnectionPool(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
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
	if *schemaOnly {
		log.Printf("Schema ready (environment: %s, prefix: %s)", cfg.Environment, cfg.TablePrefix)
		return
	}

	docs := service.NewDocumentService(store, nil, logger)

	paths, err := filepath.Glob(filepath.Join(*dir, "*.json"))
	if err != nil {
		log.Fatalf("Failed to list seed files: %v", err)
	}
	if len(paths) == 0 {
		log.Fatalf("No *.json files found in %s", *dir)
	}

	for _, path := range paths {
		contents, err := os.ReadFile(path)
		if err != nil {
			log.Fatalf("Failed to read %s: %v", path, err)
		}

		doc, err := docs.CreateFromRawJSON(ctx, filepath.Base(path), string(contents), nil)
		if err != nil {
			logger.Error("seed failed", "file", path, "error", err)
			continue
		}
		logger.Info("seeded document", "file", path, "id", doc.ID)
	}
}
