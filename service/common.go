package service

import (
	"fmt"
	"os"

	"portfolio/app/repositories"

	"github.com/dgraph-io/badger/v4"
	"go.uber.org/zap"
)

// openDB opens the Badger database under dataDir, creating the directory
// first. An empty dataDir opens an in-memory database.
func openDB(dataDir string, logger *zap.Logger) (*badger.DB, error) {
	if dataDir != "" {
		if err := os.MkdirAll(dataDir, 0755); err != nil {
			return nil, fmt.Errorf("failed to create database directory: %w", err)
		}
	}
	return repositories.Open(dataDir, logger)
}
