package resolution

import "github.com/fadedpez/cardsharp/pkg/entities"

// Policy turns a drawn hand into gameplay terms
type Policy interface {
	// Tier is the outcome a hand category earns before any skill bonus
	Tier(rank entities.HandRank) entities.OutcomeTier
	// Skill is the skill category a card of this suit counts toward
	Skill(suit entities.Suit) entities.SkillCategory
}

// DefaultPolicy is the table used unless a caller supplies its own
type DefaultPolicy struct{}

var defaultTiers = map[entities.HandRank]entities.OutcomeTier{
	entities.HighCard:      entities.TierFailure,
	entities.Pair:          entities.TierPartial,
	entities.TwoPair:       entities.TierPartial,
	entities.ThreeOfAKind:  entities.TierSuccess,
	entities.Straight:      entities.TierSuccess,
	entities.Flush:         entities.TierGreatSuccess,
	entities.FullHouse:     entities.TierGreatSuccess,
	entities.FourOfAKind:   entities.TierCritical,
	entities.StraightFlush: entities.TierCritical,
	entities.RoyalFlush:    entities.TierCritical,
}

var defaultSkills = map[entities.Suit]entities.SkillCategory{
	entities.Spades:   entities.SkillForce,
	entities.Hearts:   entities.SkillCharm,
	entities.Clubs:    entities.SkillCunning,
	entities.Diamonds: entities.SkillWealth,
}

func (DefaultPolicy) Tier(rank entities.HandRank) entities.OutcomeTier {
	if tier, ok := defaultTiers[rank]; ok {
		return tier
	}
	return entities.TierFailure
}

func (DefaultPolicy) Skill(suit entities.Suit) entities.SkillCategory {
	return defaultSkills[suit]
}

// cardsPerBonusStep is how many on-skill cards it takes to lift the tier one step
const cardsPerBonusStep = 2

// applyBonus counts the cards whose suit favours skill and lifts base accordingly, capped at critical
func applyBonus(policy Policy, hand []entities.Card, skill entities.SkillCategory, base entities.OutcomeTier) (int, entities.OutcomeTier) {
	matching := 0
	for _, card := range hand {
		if policy.Skill(card.Suit) == skill {
			matching++
		}
	}

	tier := base + entities.OutcomeTier(matching/cardsPerBonusStep)
	if tier > entities.TierCritical {
		tier = entities.TierCritical
	}
	return matching, tier
}
