package resolution

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/fadedpez/cardsharp/pkg/cards"
	"github.com/fadedpez/cardsharp/pkg/db/migrations"
	"github.com/fadedpez/cardsharp/pkg/entities"
	_ "github.com/mattn/go-sqlite3"
)

const resolutionColumns = `id, player_id, channel_id, action, skill, difficulty, cards,
	hand_rank, score, description, skill_bonus, tier, success, resolved_at`

// SQLiteRepository implements the Repository interface using SQLite
type SQLiteRepository struct {
	db *sql.DB
}

// NewSQLiteRepository opens (or creates) the database at dbPath and applies the schema
func NewSQLiteRepository(dbPath string) (*SQLiteRepository, error) {
	dbDir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dbDir, 0755); err != nil {
		return nil, fmt.Errorf("error creating database directory: %w", err)
	}

	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, fmt.Errorf("error opening database: %w", err)
	}

	if _, err := migrations.NewMigrator(db, migrations.Default()).MigrateUp(); err != nil {
		db.Close()
		return nil, fmt.Errorf("error applying migrations: %w", err)
	}

	return &SQLiteRepository{db: db}, nil
}

// SaveResolution stores a resolution, replacing any with the same ID
func (r *SQLiteRepository) SaveResolution(ctx context.Context, resolution *entities.Resolution) error {
	cardsJSON, err := json.Marshal(cards.Codes(resolution.Cards))
	if err != nil {
		return fmt.Errorf("error marshaling cards: %w", err)
	}

	query := `INSERT OR REPLACE INTO resolutions (` + resolutionColumns + `)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`

	_, err = r.db.ExecContext(ctx, query,
		resolution.ID,
		resolution.PlayerID,
		resolution.ChannelID,
		resolution.Action,
		string(resolution.Skill),
		int(resolution.Difficulty),
		string(cardsJSON),
		int(resolution.HandRank),
		resolution.Score,
		resolution.Description,
		resolution.SkillBonus,
		int(resolution.Tier),
		resolution.Success,
		resolution.ResolvedAt.UTC(),
	)
	if err != nil {
		return fmt.Errorf("error saving resolution: %w", err)
	}
	return nil
}

// GetResolution retrieves a resolution by ID
func (r *SQLiteRepository) GetResolution(ctx context.Context, id string) (*entities.Resolution, error) {
	query := `SELECT ` + resolutionColumns + ` FROM resolutions WHERE id = ?`

	resolution, err := scanResolution(r.db.QueryRowContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrResolutionNotFound
	}
	if err != nil {
		return nil, err
	}
	return resolution, nil
}

// GetPlayerResolutions retrieves a player's resolutions, newest first
func (r *SQLiteRepository) GetPlayerResolutions(ctx context.Context, playerID string, limit int) ([]*entities.Resolution, error) {
	query := `SELECT ` + resolutionColumns + ` FROM resolutions
		WHERE player_id = ?
		ORDER BY resolved_at DESC, id DESC
		LIMIT ?`
	return r.query(ctx, query, playerID, sqlLimit(limit))
}

// GetChannelResolutions retrieves a channel's resolutions, newest first
func (r *SQLiteRepository) GetChannelResolutions(ctx context.Context, channelID string, limit int) ([]*entities.Resolution, error) {
	query := `SELECT ` + resolutionColumns + ` FROM resolutions
		WHERE channel_id = ?
		ORDER BY resolved_at DESC, id DESC
		LIMIT ?`
	return r.query(ctx, query, channelID, sqlLimit(limit))
}

// PruneBefore deletes resolutions older than cutoff
func (r *SQLiteRepository) PruneBefore(ctx context.Context, cutoff time.Time) (int, error) {
	result, err := r.db.ExecContext(ctx, `DELETE FROM resolutions WHERE resolved_at < ?`, cutoff.UTC())
	if err != nil {
		return 0, fmt.Errorf("error pruning resolutions: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("error counting pruned resolutions: %w", err)
	}
	return int(affected), nil
}

// Close closes the database connection
func (r *SQLiteRepository) Close() error {
	return r.db.Close()
}

func (r *SQLiteRepository) query(ctx context.Context, query string, args ...interface{}) ([]*entities.Resolution, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("error querying resolutions: %w", err)
	}
	defer rows.Close()

	results := []*entities.Resolution{}
	for rows.Next() {
		resolution, err := scanResolution(rows)
		if err != nil {
			return nil, err
		}
		results = append(results, resolution)
	}
	return results, rows.Err()
}

// scanner is satisfied by both *sql.Row and *sql.Rows
type scanner interface {
	Scan(dest ...interface{}) error
}

func scanResolution(row scanner) (*entities.Resolution, error) {
	var (
		resolution                 entities.Resolution
		skill, cardsJSON           string
		difficulty, handRank, tier int
	)

	err := row.Scan(
		&resolution.ID,
		&resolution.PlayerID,
		&resolution.ChannelID,
		&resolution.Action,
		&skill,
		&difficulty,
		&cardsJSON,
		&handRank,
		&resolution.Score,
		&resolution.Description,
		&resolution.SkillBonus,
		&tier,
		&resolution.Success,
		&resolution.ResolvedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("error scanning resolution: %w", err)
	}

	var codes []string
	if err := json.Unmarshal([]byte(cardsJSON), &codes); err != nil {
		return nil, fmt.Errorf("error unmarshaling cards for %s: %w", resolution.ID, err)
	}
	if resolution.Cards, err = cards.ParseCodes(codes); err != nil {
		return nil, fmt.Errorf("error parsing cards for %s: %w", resolution.ID, err)
	}

	resolution.Skill = entities.SkillCategory(skill)
	resolution.Difficulty = entities.OutcomeTier(difficulty)
	resolution.HandRank = entities.HandRank(handRank)
	resolution.Tier = entities.OutcomeTier(tier)
	return &resolution, nil
}

// sqlLimit maps "no limit" to SQLite's LIMIT -1
func sqlLimit(limit int) int {
	if limit <= 0 {
		return -1
	}
	return limit
}
