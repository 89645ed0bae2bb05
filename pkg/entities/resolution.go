package entities

import "time"

// SkillCategory is the gameplay skill an action tests
type SkillCategory string

const (
	SkillForce   SkillCategory = "force"
	SkillCharm   SkillCategory = "charm"
	SkillCunning SkillCategory = "cunning"
	SkillWealth  SkillCategory = "wealth"
)

// AllSkills returns every skill category
func AllSkills() []SkillCategory {
	return []SkillCategory{SkillForce, SkillCharm, SkillCunning, SkillWealth}
}

// Valid reports whether s is a known skill category
func (s SkillCategory) Valid() bool {
	switch s {
	case SkillForce, SkillCharm, SkillCunning, SkillWealth:
		return true
	}
	return false
}

// OutcomeTier grades how well an action went
type OutcomeTier int

const (
	TierFailure OutcomeTier = iota + 1
	TierPartial
	TierSuccess
	TierGreatSuccess
	TierCritical
)

var tierNames = map[OutcomeTier]string{
	TierFailure:      "Failure",
	TierPartial:      "Partial Success",
	TierSuccess:      "Success",
	TierGreatSuccess: "Great Success",
	TierCritical:     "Critical Success",
}

// Valid reports whether t is one of the five tiers
func (t OutcomeTier) Valid() bool {
	return t >= TierFailure && t <= TierCritical
}

// String returns the tier's display name
func (t OutcomeTier) String() string {
	if name, ok := tierNames[t]; ok {
		return name
	}
	return "Unknown"
}

// Resolution is the recorded outcome of one action attempt
type Resolution struct {
	ID          string        `json:"id"`
	PlayerID    string        `json:"player_id"`
	ChannelID   string        `json:"channel_id"`
	Action      string        `json:"action"`
	Skill       SkillCategory `json:"skill"`
	Difficulty  OutcomeTier   `json:"difficulty"`
	Cards       []Card        `json:"cards"`
	HandRank    HandRank      `json:"hand_rank"`
	Score       int           `json:"score"`
	Description string        `json:"description"`
	SkillBonus  int           `json:"skill_bonus"`
	Tier        OutcomeTier   `json:"tier"`
	Success     bool          `json:"success"`
	ResolvedAt  time.Time     `json:"resolved_at"`
}
