package resolution

import (
	"time"

	"github.com/fadedpez/cardsharp/pkg/cards"
	"github.com/fadedpez/cardsharp/pkg/entities"
)

// ESResolution represents a resolution document in Elasticsearch
type ESResolution struct {
	ID           string    `json:"id"`
	PlayerID     string    `json:"player_id"`
	ChannelID    string    `json:"channel_id"`
	Action       string    `json:"action"`
	Skill        string    `json:"skill"`
	Difficulty   int       `json:"difficulty"`
	Cards        []string  `json:"cards"`
	HandRank     int       `json:"hand_rank"`
	HandRankName string    `json:"hand_rank_name"`
	Score        int       `json:"score"`
	Description  string    `json:"description"`
	SkillBonus   int       `json:"skill_bonus"`
	Tier         int       `json:"tier"`
	Success      bool      `json:"success"`
	ResolvedAt   time.Time `json:"resolved_at"`
}

func toESResolution(resolution *entities.Resolution) ESResolution {
	return ESResolution{
		ID:           resolution.ID,
		PlayerID:     resolution.PlayerID,
		ChannelID:    resolution.ChannelID,
		Action:       resolution.Action,
		Skill:        string(resolution.Skill),
		Difficulty:   int(resolution.Difficulty),
		Cards:        cards.Codes(resolution.Cards),
		HandRank:     int(resolution.HandRank),
		HandRankName: resolution.HandRank.String(),
		Score:        resolution.Score,
		Description:  resolution.Description,
		SkillBonus:   resolution.SkillBonus,
		Tier:         int(resolution.Tier),
		Success:      resolution.Success,
		ResolvedAt:   resolution.ResolvedAt.UTC(),
	}
}

func (d ESResolution) toEntity() (*entities.Resolution, error) {
	hand, err := cards.ParseCodes(d.Cards)
	if err != nil {
		return nil, err
	}
	return &entities.Resolution{
		ID:          d.ID,
		PlayerID:    d.PlayerID,
		ChannelID:   d.ChannelID,
		Action:      d.Action,
		Skill:       entities.SkillCategory(d.Skill),
		Difficulty:  entities.OutcomeTier(d.Difficulty),
		Cards:       hand,
		HandRank:    entities.HandRank(d.HandRank),
		Score:       d.Score,
		Description: d.Description,
		SkillBonus:  d.SkillBonus,
		Tier:        entities.OutcomeTier(d.Tier),
		Success:     d.Success,
		ResolvedAt:  d.ResolvedAt,
	}, nil
}
