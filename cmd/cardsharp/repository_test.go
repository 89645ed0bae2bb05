package main

import (
	"io"
	"path/filepath"
	"testing"

	"github.com/fadedpez/cardsharp/internal/config"
	"github.com/fadedpez/cardsharp/internal/logging"
	"github.com/fadedpez/cardsharp/pkg/repositories/resolution"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildRepository(t *testing.T) {
	logger := logging.NewLoggerWithWriter(logging.ERROR, io.Discard)

	t.Run("memory", func(t *testing.T) {
		repo, err := buildRepository(&config.Config{StorageType: config.StorageMemory}, logger)
		require.NoError(t, err)
		assert.IsType(t, &resolution.MemoryRepository{}, repo)
	})

	t.Run("sqlite", func(t *testing.T) {
		dataDir := filepath.Join(t.TempDir(), "data")
		repo, err := buildRepository(&config.Config{StorageType: config.StorageSQLite, DataDir: dataDir}, logger)
		require.NoError(t, err)
		defer repo.Close()

		assert.IsType(t, &resolution.SQLiteRepository{}, repo)
		assert.FileExists(t, filepath.Join(dataDir, "cardsharp.db"))
	})

	t.Run("unreachable elasticsearch falls back", func(t *testing.T) {
		repo, err := buildRepository(&config.Config{
			StorageType:   config.StorageMemory,
			ESURL:         "http://127.0.0.1:1",
			ESIndexPrefix: "test",
		}, logger)
		require.NoError(t, err)
		assert.IsType(t, &resolution.MemoryRepository{}, repo)
	})
}
