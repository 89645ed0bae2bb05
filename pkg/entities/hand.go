package entities

// HandRank is the category of a five-card poker hand, ordered from weakest to strongest
type HandRank int

const (
	HighCard HandRank = iota + 1
	Pair
	TwoPair
	ThreeOfAKind
	Straight
	Flush
	FullHouse
	FourOfAKind
	StraightFlush
	RoyalFlush
)

var handRankNames = map[HandRank]string{
	HighCard:      "High Card",
	Pair:          "Pair",
	TwoPair:       "Two Pair",
	ThreeOfAKind:  "Three of a Kind",
	Straight:      "Straight",
	Flush:         "Flush",
	FullHouse:     "Full House",
	FourOfAKind:   "Four of a Kind",
	StraightFlush: "Straight Flush",
	RoyalFlush:    "Royal Flush",
}

// AllHandRanks returns every category from HighCard to RoyalFlush
func AllHandRanks() []HandRank {
	return []HandRank{HighCard, Pair, TwoPair, ThreeOfAKind, Straight, Flush, FullHouse, FourOfAKind, StraightFlush, RoyalFlush}
}

// Valid reports whether h is one of the ten categories
func (h HandRank) Valid() bool {
	return h >= HighCard && h <= RoyalFlush
}

// String returns the category name, e.g. "Full House"
func (h HandRank) String() string {
	if name, ok := handRankNames[h]; ok {
		return name
	}
	return "Unknown"
}

// HandEvaluation is the result of classifying a five-card hand
type HandEvaluation struct {
	Rank         HandRank `json:"rank"`
	Score        int      `json:"score"`
	Description  string   `json:"description"`
	PrimaryCards []Card   `json:"primary_cards"`
	Kickers      []Card   `json:"kickers"`
}

// Cards returns the primary cards followed by the kickers
func (e *HandEvaluation) Cards() []Card {
	cards := make([]Card, 0, len(e.PrimaryCards)+len(e.Kickers))
	cards = append(cards, e.PrimaryCards...)
	return append(cards, e.Kickers...)
}
