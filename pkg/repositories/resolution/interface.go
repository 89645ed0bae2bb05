package resolution

import (
	"context"
	"errors"
	"time"

	"github.com/fadedpez/cardsharp/pkg/entities"
)

//go:generate mockgen -source=$GOFILE -destination=mock/mock.go -package=mock_resolution

var ErrResolutionNotFound = errors.New("resolution not found")

// Repository defines storage operations for resolved action attempts.
// List operations return newest first; a limit of zero or less returns everything.
type Repository interface {
	SaveResolution(ctx context.Context, resolution *entities.Resolution) error
	GetResolution(ctx context.Context, id string) (*entities.Resolution, error)
	GetPlayerResolutions(ctx context.Context, playerID string, limit int) ([]*entities.Resolution, error)
	GetChannelResolutions(ctx context.Context, channelID string, limit int) ([]*entities.Resolution, error)

	// PruneBefore deletes resolutions resolved before cutoff and reports how many went
	PruneBefore(ctx context.Context, cutoff time.Time) (int, error)

	// Close closes any resources used by the repository
	Close() error
}
