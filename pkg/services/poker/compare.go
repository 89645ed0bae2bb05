package poker

import (
	"sort"

	"github.com/fadedpez/cardsharp/pkg/entities"
)

// Compare compares two evaluated hands by score and returns:
// 1 if a is stronger
// -1 if b is stronger
// 0 if they tie
func Compare(a, b *entities.HandEvaluation) int {
	if a.Score > b.Score {
		return 1
	} else if a.Score < b.Score {
		return -1
	}
	return 0
}

// Sort orders evaluations strongest first. Ties keep their relative order.
func Sort(evals []*entities.HandEvaluation) {
	sort.SliceStable(evals, func(i, j int) bool {
		return Compare(evals[i], evals[j]) > 0
	})
}

// Winners returns the indices of every evaluation tied for the best score, in input order
func Winners(evals []*entities.HandEvaluation) []int {
	if len(evals) == 0 {
		return nil
	}

	best := 0
	for i := 1; i < len(evals); i++ {
		if Compare(evals[i], evals[best]) > 0 {
			best = i
		}
	}

	winners := make([]int, 0, 1)
	for i, eval := range evals {
		if Compare(eval, evals[best]) == 0 {
			winners = append(winners, i)
		}
	}
	return winners
}
