package statistics

import (
	"context"
	"sort"
	"time"

	"github.com/fadedpez/cardsharp/internal/logging"
	"github.com/fadedpez/cardsharp/internal/types"
	"github.com/fadedpez/cardsharp/pkg/entities"
	"github.com/fadedpez/cardsharp/pkg/repositories/resolution"
)

// CategoryCounter is implemented by repositories that can aggregate hand categories themselves
type CategoryCounter interface {
	CategoryCounts(ctx context.Context, playerID string) (map[entities.HandRank]int, error)
}

// Service provides methods for retrieving and processing player statistics
type Service struct {
	repository resolution.Repository
	logger     *logging.Logger
}

// NewService creates a new statistics service
func NewService(repository resolution.Repository, logger *logging.Logger) *Service {
	return &Service{
		repository: repository,
		logger:     logging.OrDefault(logger),
	}
}

// PlayerRank represents a player's statistics with ranking information
type PlayerRank struct {
	*entities.PlayerStatistics
	Rank         int     `json:"rank"`
	SuccessRate  float64 `json:"success_rate"`
	IsTopHand    bool    `json:"is_top_hand"`
	IsMostActive bool    `json:"is_most_active"`
}

// Leaderboard represents a paginated leaderboard for one channel
type Leaderboard struct {
	ChannelID      string        `json:"channel_id"`
	Players        []*PlayerRank `json:"players"`
	TotalPlayers   int           `json:"total_players"`
	CurrentPage    int           `json:"current_page"`
	TotalPages     int           `json:"total_pages"`
	PlayersPerPage int           `json:"players_per_page"`
	LastUpdated    time.Time     `json:"last_updated"`
}

// PlayerSummary aggregates every stored resolution for a player
func (s *Service) PlayerSummary(ctx context.Context, playerID string) (*entities.PlayerStatistics, error) {
	if playerID == "" {
		return nil, types.NewGameError(types.ErrInvalidArgument, "player ID is required")
	}

	resolutions, err := s.repository.GetPlayerResolutions(ctx, playerID, 0)
	if err != nil {
		return nil, types.WrapError(types.ErrDatabaseError, "failed to load player resolutions", err)
	}

	stats := summarize(playerID, resolutions)

	// Prefer server-side aggregation where the repository offers it
	if counter, ok := s.repository.(CategoryCounter); ok {
		counts, err := counter.CategoryCounts(ctx, playerID)
		if err != nil {
			s.logger.Warn("Falling back to local category counts for %s: %v", playerID, err)
		} else {
			stats.CategoryCounts = counts
		}
	}

	return stats, nil
}

// Leaderboard ranks the players seen in a channel by their best hand, then by successes
func (s *Service) Leaderboard(ctx context.Context, channelID string, page, playersPerPage int) (*Leaderboard, error) {
	// Default values
	if page < 1 {
		page = 1
	}
	if playersPerPage < 1 {
		playersPerPage = 10
	}

	resolutions, err := s.repository.GetChannelResolutions(ctx, channelID, 0)
	if err != nil {
		return nil, types.WrapError(types.ErrDatabaseError, "failed to load channel resolutions", err)
	}

	byPlayer := make(map[string][]*entities.Resolution)
	for _, res := range resolutions {
		byPlayer[res.PlayerID] = append(byPlayer[res.PlayerID], res)
	}

	playerRanks := make([]*PlayerRank, 0, len(byPlayer))
	for playerID, history := range byPlayer {
		stats := summarize(playerID, history)
		playerRanks = append(playerRanks, &PlayerRank{
			PlayerStatistics: stats,
			SuccessRate:      stats.SuccessRate(),
		})
	}

	sort.Slice(playerRanks, func(i, j int) bool {
		a, b := playerRanks[i], playerRanks[j]
		if a.BestScore != b.BestScore {
			return a.BestScore > b.BestScore
		}
		if a.Successes != b.Successes {
			return a.Successes > b.Successes
		}
		return a.PlayerID < b.PlayerID
	})

	if len(playerRanks) > 0 {
		playerRanks[0].IsTopHand = true

		mostActive := 0
		for i := 1; i < len(playerRanks); i++ {
			if playerRanks[i].Attempts > playerRanks[mostActive].Attempts {
				mostActive = i
			}
		}
		playerRanks[mostActive].IsMostActive = true
	}

	for i := range playerRanks {
		playerRanks[i].Rank = i + 1
	}

	// Calculate pagination
	totalPlayers := len(playerRanks)
	totalPages := (totalPlayers + playersPerPage - 1) / playersPerPage
	if page > totalPages && totalPages > 0 {
		page = totalPages
	}

	start := (page - 1) * playersPerPage
	end := start + playersPerPage
	if end > totalPlayers {
		end = totalPlayers
	}

	currentPagePlayers := []*PlayerRank{}
	if start < totalPlayers {
		currentPagePlayers = playerRanks[start:end]
	}

	return &Leaderboard{
		ChannelID:      channelID,
		Players:        currentPagePlayers,
		TotalPlayers:   totalPlayers,
		CurrentPage:    page,
		TotalPages:     totalPages,
		PlayersPerPage: playersPerPage,
		LastUpdated:    time.Now(),
	}, nil
}

func summarize(playerID string, resolutions []*entities.Resolution) *entities.PlayerStatistics {
	stats := &entities.PlayerStatistics{
		PlayerID:       playerID,
		CategoryCounts: make(map[entities.HandRank]int),
	}

	for _, res := range resolutions {
		stats.Attempts++
		if res.Success {
			stats.Successes++
		}
		stats.CategoryCounts[res.HandRank]++

		if res.Score > stats.BestScore {
			stats.BestScore = res.Score
			stats.BestRank = res.HandRank
			stats.BestCards = append([]entities.Card(nil), res.Cards...)
		}
		if res.ResolvedAt.After(stats.LastResolved) {
			stats.LastResolved = res.ResolvedAt
		}
	}

	return stats
}
