package entities

import "time"

// PlayerStatistics represents aggregated resolution statistics for a player
type PlayerStatistics struct {
	PlayerID       string           `json:"player_id"`
	Attempts       int              `json:"attempts"`
	Successes      int              `json:"successes"`
	CategoryCounts map[HandRank]int `json:"category_counts"`
	BestRank       HandRank         `json:"best_rank"`
	BestScore      int              `json:"best_score"`
	BestCards      []Card           `json:"best_cards"`
	LastResolved   time.Time        `json:"last_resolved"`
}

// SuccessRate calculates the player's success rate as a percentage
func (s *PlayerStatistics) SuccessRate() float64 {
	if s.Attempts == 0 {
		return 0.0
	}
	return float64(s.Successes) / float64(s.Attempts) * 100.0
}
