package poker

import (
	"sync"
	"testing"

	"github.com/fadedpez/cardsharp/pkg/cards"
	"github.com/fadedpez/cardsharp/pkg/entities"
	oracle "github.com/paulhankin/poker"
	"github.com/stretchr/testify/suite"
)

type CompareTestSuite struct {
	suite.Suite
}

func TestCompareSuite(t *testing.T) {
	suite.Run(t, new(CompareTestSuite))
}

func (s *CompareTestSuite) evaluate(text string) *entities.HandEvaluation {
	hand, err := cards.ParseHand(text)
	s.Require().NoError(err)
	eval, err := Evaluate(hand)
	s.Require().NoError(err)
	return eval
}

func (s *CompareTestSuite) TestCategoryOrdering() {
	// Setup: weakest to strongest
	ladder := []string{
		"2♠ 7♥ 9♣ J♦ A♠",
		"J♠ J♥ 4♣ 8♦ 2♠",
		"5♠ K♥ 5♣ K♦ 9♠",
		"Q♠ Q♥ Q♣ 7♦ 2♠",
		"10♣ 9♦ 8♠ 7♥ 6♣",
		"A♥ J♥ 9♥ 7♥ 3♥",
		"10♠ 10♥ 10♣ 5♦ 5♠",
		"8♠ 8♥ 8♣ 8♦ K♠",
		"9♥ 8♥ 7♥ 6♥ 5♥",
		"A♠ K♠ Q♠ J♠ 10♠",
	}

	evals := make([]*entities.HandEvaluation, len(ladder))
	for i, text := range ladder {
		evals[i] = s.evaluate(text)
		s.Equal(entities.HandRank(i+1), evals[i].Rank, text)
	}

	// Assert
	for i := range evals {
		s.Equal(0, Compare(evals[i], evals[i]), "A hand ties itself")
		for j := i + 1; j < len(evals); j++ {
			s.Equal(-1, Compare(evals[i], evals[j]), "%s should lose to %s", ladder[i], ladder[j])
			s.Equal(1, Compare(evals[j], evals[i]), "%s should beat %s", ladder[j], ladder[i])
		}
	}
}

func (s *CompareTestSuite) TestTieBreaks() {
	testCases := []struct {
		name     string
		stronger string
		weaker   string
	}{
		{
			name:     "pair kicker",
			stronger: "J♠ J♥ A♣ 8♦ 2♠",
			weaker:   "J♣ J♦ K♣ 8♥ 2♥",
		},
		{
			name:     "pair last kicker",
			stronger: "J♠ J♥ A♣ 8♦ 3♠",
			weaker:   "J♣ J♦ A♦ 8♥ 2♥",
		},
		{
			name:     "higher pair beats better kickers",
			stronger: "Q♠ Q♥ 2♣ 3♦ 4♠",
			weaker:   "J♣ J♦ A♦ K♥ 9♥",
		},
		{
			name:     "high card fifth card",
			stronger: "A♠ J♥ 9♣ 7♦ 3♠",
			weaker:   "A♥ J♣ 9♦ 7♥ 2♣",
		},
		{
			name:     "two pair low pair",
			stronger: "K♠ K♥ 6♣ 6♦ 2♠",
			weaker:   "K♣ K♦ 5♣ 5♦ A♠",
		},
		{
			name:     "two pair kicker",
			stronger: "K♠ K♥ 6♣ 6♦ 9♠",
			weaker:   "K♣ K♦ 6♠ 6♥ 8♠",
		},
		{
			name:     "full house trips decide",
			stronger: "3♠ 3♥ 3♣ 2♦ 2♠",
			weaker:   "2♣ 2♥ 2♦ A♦ A♠",
		},
		{
			name:     "flush second card",
			stronger: "A♥ Q♥ 9♥ 7♥ 3♥",
			weaker:   "A♣ J♣ 10♣ 8♣ 6♣",
		},
		{
			name:     "quads kicker",
			stronger: "8♠ 8♥ 8♣ 8♦ K♠",
			weaker:   "8♠ 8♥ 8♣ 8♦ Q♠",
		},
		{
			name:     "straight flush height",
			stronger: "10♦ 9♦ 8♦ 7♦ 6♦",
			weaker:   "9♥ 8♥ 7♥ 6♥ 5♥",
		},
	}

	for _, tc := range testCases {
		s.Run(tc.name, func() {
			// Execute
			stronger := s.evaluate(tc.stronger)
			weaker := s.evaluate(tc.weaker)

			// Assert
			s.Equal(stronger.Rank, weaker.Rank, "Hands should share a category")
			s.Equal(1, Compare(stronger, weaker))
			s.Equal(-1, Compare(weaker, stronger))
		})
	}
}

func (s *CompareTestSuite) TestSuitsNeverBreakTies() {
	// Execute
	a := s.evaluate("A♠ K♥ Q♣ J♦ 9♠")
	b := s.evaluate("A♦ K♣ Q♥ J♠ 9♦")

	// Assert
	s.Equal(0, Compare(a, b))
	s.Equal(a.Score, b.Score)
}

func (s *CompareTestSuite) TestSort() {
	// Setup
	pair := s.evaluate("J♠ J♥ 4♣ 8♦ 2♠")
	flush := s.evaluate("A♥ J♥ 9♥ 7♥ 3♥")
	highCard := s.evaluate("2♠ 7♥ 9♣ J♦ A♠")
	otherPair := s.evaluate("J♣ J♦ 4♦ 8♥ 2♥")
	evals := []*entities.HandEvaluation{pair, flush, highCard, otherPair}

	// Execute
	Sort(evals)

	// Assert
	s.Equal([]*entities.HandEvaluation{flush, pair, otherPair, highCard}, evals, "Ties should keep input order")
}

func (s *CompareTestSuite) TestWinners() {
	// Setup
	pair := s.evaluate("J♠ J♥ 4♣ 8♦ 2♠")
	highCard := s.evaluate("2♠ 7♥ 9♣ J♦ A♠")
	otherPair := s.evaluate("J♣ J♦ 4♦ 8♥ 2♥")

	// Execute & Assert
	s.Nil(Winners(nil))
	s.Equal([]int{0}, Winners([]*entities.HandEvaluation{highCard}))
	s.Equal([]int{1}, Winners([]*entities.HandEvaluation{highCard, pair}))
	s.Equal([]int{0, 2}, Winners([]*entities.HandEvaluation{pair, highCard, otherPair}))
}

// toOracle converts a card into the independent evaluator's representation, where aces are rank 1
func (s *CompareTestSuite) toOracle(hand []entities.Card) *[5]oracle.Card {
	suits := map[entities.Suit]oracle.Suit{
		entities.Clubs:    oracle.Club,
		entities.Diamonds: oracle.Diamond,
		entities.Hearts:   oracle.Heart,
		entities.Spades:   oracle.Spade,
	}

	var out [5]oracle.Card
	for i, card := range hand {
		rank := oracle.Rank(card.Rank)
		if card.Rank == entities.Ace {
			rank = 1
		}
		converted, err := oracle.MakeCard(suits[card.Suit], rank)
		s.Require().NoError(err)
		out[i] = converted
	}
	return &out
}

func sign(n int) int {
	switch {
	case n > 0:
		return 1
	case n < 0:
		return -1
	}
	return 0
}

func (s *CompareTestSuite) TestAgreesWithIndependentEvaluator() {
	shuffler := cards.NewSeededShuffler(20240601)

	for round := 0; round < 2000; round++ {
		deck := shuffler.Shuffle(nil)
		a, b := deck[:HandSize], deck[HandSize:2*HandSize]

		evalA, err := Evaluate(a)
		s.Require().NoError(err)
		evalB, err := Evaluate(b)
		s.Require().NoError(err)

		expected := sign(int(oracle.Eval5(s.toOracle(a))) - int(oracle.Eval5(s.toOracle(b))))
		s.Require().Equal(expected, Compare(evalA, evalB),
			"%s (%s) vs %s (%s)", cards.FormatHand(a), evalA.Description, cards.FormatHand(b), evalB.Description)
	}
}

func (s *CompareTestSuite) TestConcurrentEvaluation() {
	hands := [][]entities.Card{}
	shuffler := cards.NewSeededShuffler(7)
	for i := 0; i < 50; i++ {
		hands = append(hands, shuffler.Shuffle(nil)[:HandSize])
	}

	expected := make([]int, len(hands))
	for i, hand := range hands {
		eval, err := Evaluate(hand)
		s.Require().NoError(err)
		expected[i] = eval.Score
	}

	var wg sync.WaitGroup
	results := make([]int, len(hands))
	for i, hand := range hands {
		wg.Add(1)
		go func(i int, hand []entities.Card) {
			defer wg.Done()
			eval, err := Evaluate(hand)
			if err == nil {
				results[i] = eval.Score
			}
		}(i, hand)
	}
	wg.Wait()

	s.Equal(expected, results)
}
