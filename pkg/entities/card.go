package entities

// Suit represents a card suit
type Suit uint8

const (
	Spades Suit = iota + 1
	Hearts
	Clubs
	Diamonds
)

// Rank represents a card rank, valued so that numeric comparison matches poker strength
type Rank uint8

const (
	Two   Rank = 2
	Three Rank = 3
	Four  Rank = 4
	Five  Rank = 5
	Six   Rank = 6
	Seven Rank = 7
	Eight Rank = 8
	Nine  Rank = 9
	Ten   Rank = 10
	Jack  Rank = 11
	Queen Rank = 12
	King  Rank = 13
	Ace   Rank = 14
)

var suitNames = map[Suit]string{
	Spades:   "Spades",
	Hearts:   "Hearts",
	Clubs:    "Clubs",
	Diamonds: "Diamonds",
}

var suitSymbols = map[Suit]string{
	Spades:   "♠",
	Hearts:   "♥",
	Clubs:    "♣",
	Diamonds: "♦",
}

var rankNames = map[Rank]string{
	Two:   "2",
	Three: "3",
	Four:  "4",
	Five:  "5",
	Six:   "6",
	Seven: "7",
	Eight: "8",
	Nine:  "9",
	Ten:   "10",
	Jack:  "Jack",
	Queen: "Queen",
	King:  "King",
	Ace:   "Ace",
}

var rankAbbreviations = map[Rank]string{
	Two:   "2",
	Three: "3",
	Four:  "4",
	Five:  "5",
	Six:   "6",
	Seven: "7",
	Eight: "8",
	Nine:  "9",
	Ten:   "10",
	Jack:  "J",
	Queen: "Q",
	King:  "K",
	Ace:   "A",
}

// AllSuits returns every suit in canonical deck order
func AllSuits() []Suit {
	return []Suit{Spades, Hearts, Clubs, Diamonds}
}

// AllRanks returns every rank from Two to Ace
func AllRanks() []Rank {
	return []Rank{Two, Three, Four, Five, Six, Seven, Eight, Nine, Ten, Jack, Queen, King, Ace}
}

// Valid reports whether s is one of the four suits
func (s Suit) Valid() bool {
	return s >= Spades && s <= Diamonds
}

// Name returns the suit's display name, e.g. "Spades"
func (s Suit) Name() string {
	return suitNames[s]
}

// Symbol returns the suit's glyph, e.g. "♠"
func (s Suit) Symbol() string {
	return suitSymbols[s]
}

// String returns the suit's display name
func (s Suit) String() string {
	if !s.Valid() {
		return "Unknown"
	}
	return s.Name()
}

// Valid reports whether r lies between Two and Ace
func (r Rank) Valid() bool {
	return r >= Two && r <= Ace
}

// Name returns the rank's display name: "2".."10", "Jack", "Queen", "King", "Ace"
func (r Rank) Name() string {
	return rankNames[r]
}

// Abbreviation returns the short rank label used on cards: "2".."10", "J", "Q", "K", "A"
func (r Rank) Abbreviation() string {
	return rankAbbreviations[r]
}

// String returns the rank's display name
func (r Rank) String() string {
	if !r.Valid() {
		return "Unknown"
	}
	return r.Name()
}

// Card represents a playing card
type Card struct {
	Suit Suit `json:"suit"`
	Rank Rank `json:"rank"`
}

// NewCard creates a new card
func NewCard(suit Suit, rank Rank) Card {
	return Card{
		Suit: suit,
		Rank: rank,
	}
}

// Valid reports whether both the suit and the rank are in range
func (c Card) Valid() bool {
	return c.Suit.Valid() && c.Rank.Valid()
}

// String returns the short form of the card, e.g. "A♠" or "10♣"
func (c Card) String() string {
	if !c.Valid() {
		return "??"
	}
	return c.Rank.Abbreviation() + c.Suit.Symbol()
}
