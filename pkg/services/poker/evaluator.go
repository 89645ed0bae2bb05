package poker

import (
	"errors"
	"fmt"
	"sort"

	"github.com/fadedpez/cardsharp/internal/types"
	"github.com/fadedpez/cardsharp/pkg/cards"
	"github.com/fadedpez/cardsharp/pkg/entities"
)

// HandSize is the number of cards in an evaluated hand
const HandSize = 5

var ErrInvalidHandSize = errors.New("hand must contain exactly 5 cards")

// rankGroup is every card in the hand sharing one rank
type rankGroup struct {
	rank  entities.Rank
	cards []entities.Card
}

// Evaluate classifies a five-card hand and scores it
func Evaluate(hand []entities.Card) (*entities.HandEvaluation, error) {
	if len(hand) != HandSize {
		return nil, types.WrapError(types.ErrInvalidHandSize,
			fmt.Sprintf("got %d cards, need %d", len(hand), HandSize), ErrInvalidHandSize)
	}
	for _, card := range hand {
		if !card.Valid() {
			return nil, types.WrapError(types.ErrInvalidCard,
				fmt.Sprintf("card {suit:%d rank:%d} is out of range", card.Suit, card.Rank), cards.ErrInvalidCard)
		}
	}

	sorted := make([]entities.Card, HandSize)
	copy(sorted, hand)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Rank > sorted[j].Rank
	})

	groups := groupByRank(sorted)
	flush := isFlush(sorted)
	straightHigh, straight := straightHighCard(sorted)

	// Order matters: each check assumes every stronger category has been ruled out
	switch {
	case flush && straight && straightHigh == entities.Ace:
		return build(entities.RoyalFlush, sorted, nil, entities.Ace), nil

	case flush && straight:
		return build(entities.StraightFlush, straightOrder(sorted, straightHigh), nil, straightHigh), nil

	case len(groups[0].cards) == 4:
		return build(entities.FourOfAKind, groups[0].cards, groups[1].cards,
			groups[0].rank, groups[1].rank), nil

	case len(groups[0].cards) == 3 && len(groups[1].cards) == 2:
		return build(entities.FullHouse, concat(groups[0].cards, groups[1].cards), nil,
			groups[0].rank, groups[1].rank), nil

	case flush:
		return build(entities.Flush, sorted, nil, ranksOf(sorted)...), nil

	case straight:
		return build(entities.Straight, straightOrder(sorted, straightHigh), nil, straightHigh), nil

	case len(groups[0].cards) == 3:
		kickers := concat(groups[1].cards, groups[2].cards)
		return build(entities.ThreeOfAKind, groups[0].cards, kickers,
			groups[0].rank, groups[1].rank, groups[2].rank), nil

	case len(groups[0].cards) == 2 && len(groups[1].cards) == 2:
		return build(entities.TwoPair, concat(groups[0].cards, groups[1].cards), groups[2].cards,
			groups[0].rank, groups[1].rank, groups[2].rank), nil

	case len(groups[0].cards) == 2:
		kickers := concat(groups[1].cards, groups[2].cards, groups[3].cards)
		return build(entities.Pair, groups[0].cards, kickers,
			groups[0].rank, groups[1].rank, groups[2].rank, groups[3].rank), nil

	default:
		return build(entities.HighCard, concat(sorted[:1]), concat(sorted[1:]), ranksOf(sorted)...), nil
	}
}

// groupByRank buckets sorted cards by rank; groups are ordered by size, then by rank, both descending
func groupByRank(sorted []entities.Card) []rankGroup {
	byRank := make(map[entities.Rank][]entities.Card, HandSize)
	for _, card := range sorted {
		byRank[card.Rank] = append(byRank[card.Rank], card)
	}

	groups := make([]rankGroup, 0, len(byRank))
	for rank, grouped := range byRank {
		groups = append(groups, rankGroup{rank: rank, cards: grouped})
	}
	sort.Slice(groups, func(i, j int) bool {
		if len(groups[i].cards) == len(groups[j].cards) {
			return groups[i].rank > groups[j].rank
		}
		return len(groups[i].cards) > len(groups[j].cards)
	})
	return groups
}

func isFlush(sorted []entities.Card) bool {
	for _, card := range sorted[1:] {
		if card.Suit != sorted[0].Suit {
			return false
		}
	}
	return true
}

// straightHighCard reports whether sorted (ranks descending) is a straight and, if so, its top card.
// The wheel A-5-4-3-2 counts as a five-high straight.
func straightHighCard(sorted []entities.Card) (entities.Rank, bool) {
	if sorted[0].Rank == entities.Ace &&
		sorted[1].Rank == entities.Five &&
		sorted[2].Rank == entities.Four &&
		sorted[3].Rank == entities.Three &&
		sorted[4].Rank == entities.Two {
		return entities.Five, true
	}

	for i := 1; i < len(sorted); i++ {
		if sorted[i-1].Rank-sorted[i].Rank != 1 {
			return 0, false
		}
	}
	return sorted[0].Rank, true
}

// straightOrder moves the ace of a wheel to the low end
func straightOrder(sorted []entities.Card, high entities.Rank) []entities.Card {
	if high != entities.Five || sorted[0].Rank != entities.Ace {
		return sorted
	}
	return concat(sorted[1:], sorted[:1])
}

func build(rank entities.HandRank, primary, kickers []entities.Card, tiebreak ...entities.Rank) *entities.HandEvaluation {
	if kickers == nil {
		kickers = []entities.Card{}
	}
	return &entities.HandEvaluation{
		Rank:         rank,
		Score:        encodeScore(rank, tiebreak...),
		Description:  describe(rank, tiebreak),
		PrimaryCards: primary,
		Kickers:      kickers,
	}
}

func ranksOf(hand []entities.Card) []entities.Rank {
	ranks := make([]entities.Rank, len(hand))
	for i, card := range hand {
		ranks[i] = card.Rank
	}
	return ranks
}

func concat(parts ...[]entities.Card) []entities.Card {
	var out []entities.Card
	for _, part := range parts {
		out = append(out, part...)
	}
	return out
}
