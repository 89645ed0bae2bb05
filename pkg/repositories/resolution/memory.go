package resolution

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/fadedpez/cardsharp/pkg/entities"
)

// MemoryRepository implements Repository interface with in-memory storage
type MemoryRepository struct {
	mu sync.RWMutex
	// Map of resolution ID to resolution
	byID map[string]*entities.Resolution
}

// NewMemoryRepository creates a new in-memory repository
func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{
		byID: make(map[string]*entities.Resolution),
	}
}

// SaveResolution stores a resolution, replacing any with the same ID
func (r *MemoryRepository) SaveResolution(ctx context.Context, resolution *entities.Resolution) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.byID[resolution.ID] = clone(resolution)
	return nil
}

// GetResolution retrieves a resolution by ID
func (r *MemoryRepository) GetResolution(ctx context.Context, id string) (*entities.Resolution, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	resolution, exists := r.byID[id]
	if !exists {
		return nil, ErrResolutionNotFound
	}
	return clone(resolution), nil
}

// GetPlayerResolutions retrieves a player's resolutions, newest first
func (r *MemoryRepository) GetPlayerResolutions(ctx context.Context, playerID string, limit int) ([]*entities.Resolution, error) {
	return r.filter(limit, func(res *entities.Resolution) bool {
		return res.PlayerID == playerID
	}), nil
}

// GetChannelResolutions retrieves a channel's resolutions, newest first
func (r *MemoryRepository) GetChannelResolutions(ctx context.Context, channelID string, limit int) ([]*entities.Resolution, error) {
	return r.filter(limit, func(res *entities.Resolution) bool {
		return res.ChannelID == channelID
	}), nil
}

// PruneBefore removes resolutions older than cutoff
func (r *MemoryRepository) PruneBefore(ctx context.Context, cutoff time.Time) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	pruned := 0
	for id, resolution := range r.byID {
		if resolution.ResolvedAt.Before(cutoff) {
			delete(r.byID, id)
			pruned++
		}
	}
	return pruned, nil
}

// Close is a no-op for memory repository
func (r *MemoryRepository) Close() error {
	return nil
}

func (r *MemoryRepository) filter(limit int, keep func(*entities.Resolution) bool) []*entities.Resolution {
	r.mu.RLock()
	defer r.mu.RUnlock()

	results := []*entities.Resolution{}
	for _, resolution := range r.byID {
		if keep(resolution) {
			results = append(results, clone(resolution))
		}
	}

	sortNewestFirst(results)
	if limit > 0 && len(results) > limit {
		results = results[:limit]
	}
	return results
}

// sortNewestFirst orders by resolution time, breaking ties by ID so results are stable
func sortNewestFirst(results []*entities.Resolution) {
	sort.Slice(results, func(i, j int) bool {
		if results[i].ResolvedAt.Equal(results[j].ResolvedAt) {
			return results[i].ID > results[j].ID
		}
		return results[i].ResolvedAt.After(results[j].ResolvedAt)
	})
}

func clone(resolution *entities.Resolution) *entities.Resolution {
	copied := *resolution
	copied.Cards = append([]entities.Card(nil), resolution.Cards...)
	return &copied
}
