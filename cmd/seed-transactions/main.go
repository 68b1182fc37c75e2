// seed-transactions loads transaction rows from a JSON file into the
// SQLite store, for local development and demos.
//
// Usage: seed-transactions <file.json>
// The file holds an array of transaction objects:
// [{"merchantName":"acme roofing","amount":"10.50",...}, ...]
package main

import (
	"context"
	"encoding/json"
	"os"

	"github.com/joho/godotenv"

	"ledgerlink/internal/config"
	"ledgerlink/internal/core"
	"ledgerlink/internal/log"
	"ledgerlink/internal/storage"
)

func main() {
	_ = godotenv.Load()

	logger := log.New(log.DefaultConfig())
	log.SetDefault(logger)

	if len(os.Args) != 2 {
		logger.Error("Usage: seed-transactions <file.json>")
		os.Exit(1)
	}

	data, err := os.ReadFile(os.Args[1])
	if err != nil {
		logger.Error("Failed to read seed file", log.FieldError, err, "path", os.Args[1])
		os.Exit(1)
	}

	var txns []core.Transaction
	if err := json.Unmarshal(data, &txns); err != nil {
		logger.Error("Failed to parse seed file", log.FieldError, err, "path", os.Args[1])
		os.Exit(1)
	}

	cfg := config.Load()
	repo, err := storage.NewSQLiteRepository(cfg.SQLiteDBPath)
	if err != nil {
		logger.Error("Failed to open SQLite repository", log.FieldError, err, "path", cfg.SQLiteDBPath)
		os.Exit(1)
	}
	defer repo.Close()

	ctx := context.Background()
	for i, t := range txns {
		if _, err := repo.InsertTransaction(ctx, t); err != nil {
			logger.Error("Failed to insert transaction", log.FieldError, err, "index", i)
			os.Exit(1)
		}
	}

	logger.Info("Seeded transactions", log.FieldTxnCount, len(txns), "path", cfg.SQLiteDBPath)
}
