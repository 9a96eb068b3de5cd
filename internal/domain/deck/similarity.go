package deck

import (
	"sort"

	"github.com/sourcegraph/conc/iter"
)

// Similarity scores maindeck overlap between two lists in [0, 1]: the number
// of shared copies divided by the larger of the two maindeck sizes.
func Similarity(a, b Decklist) float64 {
	totalA, totalB := boardSize(a.Maindeck), boardSize(b.Maindeck)
	denominator := totalA
	if totalB > denominator {
		denominator = totalB
	}
	if denominator == 0 {
		return 0
	}

	shared := 0
	for name, countA := range a.Maindeck {
		countB, ok := b.Maindeck[name]
		if !ok {
			continue
		}
		if countA < countB {
			shared += countA
		} else {
			shared += countB
		}
	}
	return float64(shared) / float64(denominator)
}

// RankSimilar returns candidates with a positive score, best first.
func RankSimilar(target Decklist, candidates []Deck) []SimilarDeck {
	scored := iter.Map(candidates, func(c *Deck) SimilarDeck {
		return SimilarDeck{
			DeckID:      c.ID,
			ArchetypeID: c.ArchetypeID,
			Score:       Similarity(target, c.Cards),
		}
	})

	out := scored[:0]
	for _, item := range scored {
		if item.Score > 0 {
			out = append(out, item)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Score != out[j].Score {
			return out[i].Score > out[j].Score
		}
		return out[i].DeckID < out[j].DeckID
	})
	return out
}

func boardSize(board map[string]int) int {
	total := 0
	for _, n := range board {
		total += n
	}
	return total
}
