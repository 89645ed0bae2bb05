package main

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/fadedpez/cardsharp/internal/types"
	"github.com/fadedpez/cardsharp/pkg/cards"
	"github.com/fadedpez/cardsharp/pkg/entities"
	"github.com/fadedpez/cardsharp/pkg/services/poker"
	"github.com/pterm/pterm"
)

const maxPlayers = 10

// seat is one player's dealt hand and its evaluation
type seat struct {
	Name   string
	Hand   []entities.Card
	Eval   *entities.HandEvaluation
	Winner bool
}

// deal shuffles a fresh deck and deals a five-card hand to each player, strongest hand first
func deal(shuffler *cards.Shuffler, players int) ([]seat, error) {
	if players < 1 || players > maxPlayers {
		return nil, types.NewGameError(types.ErrInvalidArgument, fmt.Sprintf("players must be between 1 and %d", maxPlayers))
	}

	hands, _, err := cards.Deal(shuffler.Shuffle(nil), players, poker.HandSize)
	if err != nil {
		return nil, err
	}

	seats := make([]seat, len(hands))
	evals := make([]*entities.HandEvaluation, len(hands))
	for i, hand := range hands {
		eval, err := poker.Evaluate(hand)
		if err != nil {
			return nil, err
		}
		seats[i] = seat{Name: "Player " + strconv.Itoa(i+1), Hand: hand, Eval: eval}
		evals[i] = eval
	}

	for _, i := range poker.Winners(evals) {
		seats[i].Winner = true
	}

	sort.SliceStable(seats, func(i, j int) bool {
		return poker.Compare(seats[i].Eval, seats[j].Eval) > 0
	})
	return seats, nil
}

// evaluate parses and classifies a typed hand
func evaluate(text string) (seat, error) {
	hand, err := cards.ParseHand(text)
	if err != nil {
		return seat{}, err
	}

	eval, err := poker.Evaluate(hand)
	if err != nil {
		return seat{}, err
	}
	return seat{Name: "Hand", Hand: hand, Eval: eval}, nil
}

// colorCard prints hearts and diamonds in red
func colorCard(card entities.Card) string {
	text := cards.FormatCard(card)
	switch card.Suit {
	case entities.Hearts, entities.Diamonds:
		return pterm.LightRed(text)
	default:
		return text
	}
}

func colorHand(hand []entities.Card) string {
	parts := make([]string, len(hand))
	for i, card := range hand {
		parts[i] = colorCard(card)
	}
	return strings.Join(parts, " ")
}

func tableData(seats []seat) pterm.TableData {
	data := pterm.TableData{{"Seat", "Hand", "Best Hand", "Score"}}
	for _, s := range seats {
		name := s.Name
		if s.Winner {
			name = pterm.LightGreen(s.Name + " ★")
		}
		data = append(data, []string{name, colorHand(s.Hand), s.Eval.Description, strconv.Itoa(s.Eval.Score)})
	}
	return data
}

func winnerSummary(seats []seat) string {
	var winners []string
	for _, s := range seats {
		if s.Winner {
			winners = append(winners, pterm.LightCyan(s.Name))
		}
	}

	if len(winners) == 1 {
		return pterm.Sprintfln("%s wins with %s", winners[0], seats[0].Eval.Description)
	}
	return pterm.Sprintfln("%s split the pot with %s", strings.Join(winners, ", "), seats[0].Eval.Description)
}

func renderTable(seats []seat) {
	if err := pterm.DefaultTable.WithHasHeader().WithData(tableData(seats)).Render(); err != nil {
		pterm.Error.Println(err)
		return
	}

	pbox := pterm.DefaultBox.WithHorizontalPadding(4).WithTopPadding(1).WithBottomPadding(1)
	pbox.WithTitle(pterm.LightGreen("|SHOWDOWN|")).WithTitleTopCenter().Println(winnerSummary(seats))
}

func renderEvaluation(s seat) {
	kickers := "-"
	if len(s.Eval.Kickers) > 0 {
		kickers = colorHand(s.Eval.Kickers)
	}

	pbox := pterm.DefaultBox.WithHorizontalPadding(4).WithTopPadding(1).WithBottomPadding(1)
	pbox.WithTitle(pterm.LightYellow("|"+s.Eval.Rank.String()+"|")).WithTitleTopCenter().Println(
		pterm.Sprintfln("%s\n%s\nPrimary: %s\nKickers: %s\nScore: %d",
			colorHand(s.Hand), s.Eval.Description, colorHand(s.Eval.PrimaryCards), kickers, s.Eval.Score))
}
