package cards

import (
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/fadedpez/cardsharp/internal/types"
	"github.com/fadedpez/cardsharp/pkg/entities"
)

var ErrInvalidCard = errors.New("invalid card")

// RankName returns "2".."10" for numeric ranks and "Jack", "Queen", "King", "Ace" otherwise
func RankName(rank entities.Rank) string {
	return rank.Name()
}

// RankAbbreviation returns the label printed on a card: "2".."10", "J", "Q", "K", "A"
func RankAbbreviation(rank entities.Rank) string {
	return rank.Abbreviation()
}

// SuitName returns "Spades", "Hearts", "Clubs" or "Diamonds"
func SuitName(suit entities.Suit) string {
	return suit.Name()
}

// SuitSymbol returns "♠", "♥", "♣" or "♦"
func SuitSymbol(suit entities.Suit) string {
	return suit.Symbol()
}

// FormatCard renders a card as its rank abbreviation followed by its suit symbol, e.g. "A♠"
func FormatCard(card entities.Card) string {
	return RankAbbreviation(card.Rank) + SuitSymbol(card.Suit)
}

// FormatHand renders cards space-separated in the order given
func FormatHand(cards []entities.Card) string {
	parts := make([]string, len(cards))
	for i, card := range cards {
		parts[i] = FormatCard(card)
	}
	return strings.Join(parts, " ")
}

var suitLetters = map[entities.Suit]string{
	entities.Spades:   "s",
	entities.Hearts:   "h",
	entities.Clubs:    "c",
	entities.Diamonds: "d",
}

// Code renders a card in plain ASCII for storage, e.g. "As", "10h"; ParseCard reads it back
func Code(card entities.Card) string {
	return RankAbbreviation(card.Rank) + suitLetters[card.Suit]
}

// Codes renders every card with Code
func Codes(cards []entities.Card) []string {
	codes := make([]string, len(cards))
	for i, card := range cards {
		codes[i] = Code(card)
	}
	return codes
}

// ParseCodes is the inverse of Codes
func ParseCodes(codes []string) ([]entities.Card, error) {
	hand := make([]entities.Card, len(codes))
	for i, code := range codes {
		card, err := ParseCard(code)
		if err != nil {
			return nil, err
		}
		hand[i] = card
	}
	return hand, nil
}

var suitsByToken = map[string]entities.Suit{
	"♠": entities.Spades,
	"s": entities.Spades,
	"♥": entities.Hearts,
	"h": entities.Hearts,
	"♣": entities.Clubs,
	"c": entities.Clubs,
	"♦": entities.Diamonds,
	"d": entities.Diamonds,
}

var ranksByToken = map[string]entities.Rank{
	"2":  entities.Two,
	"3":  entities.Three,
	"4":  entities.Four,
	"5":  entities.Five,
	"6":  entities.Six,
	"7":  entities.Seven,
	"8":  entities.Eight,
	"9":  entities.Nine,
	"10": entities.Ten,
	"t":  entities.Ten,
	"j":  entities.Jack,
	"q":  entities.Queen,
	"k":  entities.King,
	"a":  entities.Ace,
}

// ParseCard reads a card written as rank then suit: "A♠", "As", "10c", "Th"
func ParseCard(s string) (entities.Card, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	suitRune, size := utf8.DecodeLastRuneInString(s)
	if suitRune == utf8.RuneError || size >= len(s) {
		return entities.Card{}, invalidCard(s)
	}

	suit, ok := suitsByToken[string(suitRune)]
	if !ok {
		return entities.Card{}, invalidCard(s)
	}
	rank, ok := ranksByToken[s[:len(s)-size]]
	if !ok {
		return entities.Card{}, invalidCard(s)
	}

	return entities.NewCard(suit, rank), nil
}

// ParseHand reads whitespace- or comma-separated cards, e.g. "As Kh Qc"
func ParseHand(s string) ([]entities.Card, error) {
	fields := strings.FieldsFunc(s, func(r rune) bool {
		return r == ' ' || r == ',' || r == '\t' || r == '\n'
	})

	hand := make([]entities.Card, 0, len(fields))
	for _, field := range fields {
		card, err := ParseCard(field)
		if err != nil {
			return nil, err
		}
		hand = append(hand, card)
	}
	return hand, nil
}

func invalidCard(s string) error {
	return types.WrapError(types.ErrInvalidCard, fmt.Sprintf("%q is not a card", s), ErrInvalidCard)
}
