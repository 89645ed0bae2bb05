package cards

import (
	"errors"
	"fmt"
	"math/rand"
	"sync"
	"time"

	"github.com/fadedpez/cardsharp/internal/types"
	"github.com/fadedpez/cardsharp/pkg/entities"
)

// DeckSize is the number of cards in a standard deck
const DeckSize = 52

var (
	ErrInsufficientCards = errors.New("insufficient cards")
	ErrInvalidDrawCount  = errors.New("draw count cannot be negative")
)

// NewDeck creates the 52 cards in canonical order: suit-major, ranks ascending
func NewDeck() []entities.Card {
	deck := make([]entities.Card, 0, DeckSize)
	for _, suit := range entities.AllSuits() {
		for _, rank := range entities.AllRanks() {
			deck = append(deck, entities.NewCard(suit, rank))
		}
	}
	return deck
}

// RandSource supplies uniformly distributed integers in [0, n). *rand.Rand satisfies it.
type RandSource interface {
	Intn(n int) int
}

// lockedSource makes a RandSource safe for concurrent callers
type lockedSource struct {
	mu  sync.Mutex
	src RandSource
}

func (l *lockedSource) Intn(n int) int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.src.Intn(n)
}

// Shuffler produces random permutations of card sequences
type Shuffler struct {
	src RandSource
}

// NewShuffler creates a shuffler drawing from src. A nil src uses the process-wide generator.
func NewShuffler(src RandSource) *Shuffler {
	if src == nil {
		src = defaultSource
	}
	return &Shuffler{src: src}
}

// NewSeededShuffler creates a shuffler whose permutations are reproducible for a given seed
func NewSeededShuffler(seed int64) *Shuffler {
	return NewShuffler(&lockedSource{src: rand.New(rand.NewSource(seed))})
}

var defaultSource RandSource = &lockedSource{src: rand.New(rand.NewSource(time.Now().UnixNano()))}

var defaultShuffler = NewShuffler(nil)

// Shuffle returns a shuffled copy of deck. A nil deck shuffles a fresh canonical deck.
func (s *Shuffler) Shuffle(deck []entities.Card) []entities.Card {
	if deck == nil {
		deck = NewDeck()
	}

	shuffled := make([]entities.Card, len(deck))
	copy(shuffled, deck)

	// Fisher-Yates, walking down from the last index
	for i := len(shuffled) - 1; i > 0; i-- {
		j := s.src.Intn(i + 1)
		shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
	}
	return shuffled
}

// Shuffle returns a shuffled copy of deck using the process-wide generator
func Shuffle(deck []entities.Card) []entities.Card {
	return defaultShuffler.Shuffle(deck)
}

// Draw splits cards into the first n cards and the rest. The input is left untouched.
func Draw(cards []entities.Card, n int) (drawn []entities.Card, remaining []entities.Card, err error) {
	if n < 0 {
		return nil, nil, types.WrapError(types.ErrInvalidArgument,
			fmt.Sprintf("cannot draw %d cards", n), ErrInvalidDrawCount)
	}
	if n > len(cards) {
		return nil, nil, types.WrapError(types.ErrInsufficientCards,
			fmt.Sprintf("cannot draw %d cards from %d", n, len(cards)), ErrInsufficientCards)
	}

	drawn = make([]entities.Card, n)
	copy(drawn, cards[:n])
	remaining = make([]entities.Card, len(cards)-n)
	copy(remaining, cards[n:])
	return drawn, remaining, nil
}

// DrawOne draws the top card
func DrawOne(cards []entities.Card) (entities.Card, []entities.Card, error) {
	drawn, remaining, err := Draw(cards, 1)
	if err != nil {
		return entities.Card{}, nil, err
	}
	return drawn[0], remaining, nil
}

// Deal gives each of players a hand of handSize cards, one full hand at a time from the top,
// and returns the hands with whatever is left of the deck
func Deal(deck []entities.Card, players, handSize int) ([][]entities.Card, []entities.Card, error) {
	if players < 1 || handSize < 0 {
		return nil, nil, types.WrapError(types.ErrInvalidArgument,
			fmt.Sprintf("cannot deal %d hands of %d cards", players, handSize), ErrInvalidDrawCount)
	}

	hands := make([][]entities.Card, players)
	remaining := deck
	for i := range hands {
		hand, rest, err := Draw(remaining, handSize)
		if err != nil {
			return nil, nil, err
		}
		hands[i] = hand
		remaining = rest
	}
	if remaining == nil {
		remaining = []entities.Card{}
	}
	return hands, remaining, nil
}
