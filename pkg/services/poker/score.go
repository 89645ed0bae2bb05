package poker

import (
	"fmt"

	"github.com/fadedpez/cardsharp/pkg/cards"
	"github.com/fadedpez/cardsharp/pkg/entities"
)

const (
	// CategoryBase separates the hand categories; category N scores in [N*CategoryBase, (N+1)*CategoryBase)
	CategoryBase = 1000000

	// rankRadix must exceed the largest rank value (Ace = 14) or weighted positions overlap
	rankRadix = 15
)

// tiebreakWeights are successive powers of rankRadix, most significant first.
// The largest possible tie-break, 14 * (50625+3375+225+15+1) = 759374, stays below CategoryBase.
var tiebreakWeights = [HandSize]int{50625, 3375, 225, 15, 1}

// encodeScore folds the category and the deciding ranks, most significant first, into one integer
func encodeScore(rank entities.HandRank, tiebreak ...entities.Rank) int {
	score := int(rank) * CategoryBase
	for i, r := range tiebreak {
		score += int(r) * tiebreakWeights[i]
	}
	return score
}

// CategoryOf recovers the hand category from a score
func CategoryOf(score int) entities.HandRank {
	return entities.HandRank(score / CategoryBase)
}

func describe(rank entities.HandRank, tiebreak []entities.Rank) string {
	switch rank {
	case entities.RoyalFlush:
		return rank.String()
	case entities.StraightFlush, entities.Straight, entities.Flush:
		return fmt.Sprintf("%s, %s high", rank, cards.RankName(tiebreak[0]))
	case entities.FourOfAKind, entities.ThreeOfAKind:
		return fmt.Sprintf("%s, %s", rank, plural(tiebreak[0]))
	case entities.FullHouse:
		return fmt.Sprintf("%s, %s full of %s", rank, plural(tiebreak[0]), plural(tiebreak[1]))
	case entities.TwoPair:
		return fmt.Sprintf("%s, %s and %s", rank, plural(tiebreak[0]), plural(tiebreak[1]))
	case entities.Pair:
		return fmt.Sprintf("Pair of %s", plural(tiebreak[0]))
	default:
		return fmt.Sprintf("%s, %s", rank, cards.RankName(tiebreak[0]))
	}
}

func plural(rank entities.Rank) string {
	return cards.RankName(rank) + "s"
}
