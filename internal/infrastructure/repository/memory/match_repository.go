package memory

import (
	"context"
	"sort"

	"github.com/riskibarqy/decksite-ingest/internal/domain/match"
)

type MatchRepository struct {
	h holder
}

func (r *MatchRepository) Insert(_ context.Context, m match.Match) (int64, error) {
	data, release := r.h.acquire(true)
	defer release()

	m.ID = data.newID()
	data.matches[m.ID] = m
	return m.ID, nil
}

func (r *MatchRepository) ListByDeck(_ context.Context, deckID int64) ([]match.Match, error) {
	data, release := r.h.acquire(false)
	defer release()

	out := make([]match.Match, 0)
	for _, m := range data.matches {
		if m.Deck1ID == deckID || (m.Deck2ID != nil && *m.Deck2ID == deckID) {
			out = append(out, m)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Round != out[j].Round {
			return out[i].Round < out[j].Round
		}
		return out[i].ID < out[j].ID
	})
	return out, nil
}
