package main

import (
	"fmt"

	"github.com/fadedpez/cardsharp/internal/config"
	"github.com/fadedpez/cardsharp/internal/logging"
	"github.com/fadedpez/cardsharp/pkg/repositories/resolution"
)

// buildRepository picks the store named by STORAGE_TYPE and wraps it with Elasticsearch when ES_URL is set
func buildRepository(cfg *config.Config, logger *logging.Logger) (resolution.Repository, error) {
	var repo resolution.Repository

	switch cfg.StorageType {
	case config.StorageSQLite:
		if err := cfg.EnsureDataDir(); err != nil {
			return nil, err
		}

		logger.Info("Initializing SQLite repository at %s", cfg.DatabasePath())
		sqliteRepo, err := resolution.NewSQLiteRepository(cfg.DatabasePath())
		if err != nil {
			return nil, fmt.Errorf("failed to initialize SQLite repository: %w", err)
		}
		repo = sqliteRepo
	default:
		logger.Info("Using in-memory repository (data will be lost on restart)")
		repo = resolution.NewMemoryRepository()
	}

	if !cfg.ElasticsearchEnabled() {
		return repo, nil
	}

	esRepo, err := resolution.NewElasticsearchRepository(repo, &resolution.ElasticsearchConfig{
		URL:         cfg.ESURL,
		Username:    cfg.ESUsername,
		Password:    cfg.ESPassword,
		IndexPrefix: cfg.ESIndexPrefix,
	}, logger)
	if err != nil {
		// Searching is optional; the base store still records everything
		logger.Warn("Elasticsearch unavailable, continuing without it: %v", err)
		return repo, nil
	}

	logger.Info("Indexing resolutions into Elasticsearch index %s", esRepo.Index())
	return esRepo, nil
}
