package memory

import (
	"context"
	"sort"

	"github.com/riskibarqy/decksite-ingest/internal/domain/deck"
)

type DeckRepository struct {
	h holder
}

func deckKey(source, identifier string) string {
	return source + "|" + identifier
}

func (r *DeckRepository) GetIDBySourceIdentifier(_ context.Context, source, identifier string) (int64, bool, error) {
	data, release := r.h.acquire(false)
	defer release()

	id, ok := data.deckByKey[deckKey(source, identifier)]
	return id, ok, nil
}

func (r *DeckRepository) Insert(_ context.Context, d deck.NewDeck) (deck.Deck, error) {
	data, release := r.h.acquire(true)
	defer release()

	key := deckKey(d.Source, d.Identifier)
	if _, exists := data.deckByKey[key]; exists {
		return deck.Deck{}, deck.ErrDuplicateIdentifier
	}

	out := deck.Deck{
		ID:            data.newID(),
		Name:          d.Name,
		Source:        d.Source,
		Identifier:    d.Identifier,
		MTGOUsername:  d.MTGOUsername,
		CompetitionID: d.CompetitionID,
		Finish:        d.Finish,
		CreatedAt:     d.CreatedAt,
		URL:           d.URL,
		ArchetypeName: d.ArchetypeName,
		Cards:         d.Cards,
	}
	data.decks[out.ID] = out
	data.deckByKey[key] = out.ID
	return out, nil
}

func (r *DeckRepository) ListByCompetition(_ context.Context, competitionID int64) ([]deck.Deck, error) {
	data, release := r.h.acquire(false)
	defer release()

	out := make([]deck.Deck, 0)
	for _, d := range data.decks {
		if d.CompetitionID == competitionID {
			out = append(out, d)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Finish != out[j].Finish {
			return out[i].Finish < out[j].Finish
		}
		return out[i].ID < out[j].ID
	})
	return out, nil
}

func (r *DeckRepository) ListSimilarCandidates(_ context.Context, excludeID int64, cardNames []string, limit int) ([]deck.Deck, error) {
	data, release := r.h.acquire(false)
	defer release()

	out := make([]deck.Deck, 0)
	for _, d := range data.decks {
		if d.ID == excludeID {
			continue
		}
		if !sharesCard(d.Cards.Maindeck, cardNames) {
			continue
		}
		out = append(out, d)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID > out[j].ID })
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

// SeedDecks stores already classified decks, as if a human had tagged them.
func (s *Store) SeedDecks(items ...deck.Deck) {
	data, release := s.committed.acquire(true)
	defer release()

	for _, d := range items {
		if d.ID == 0 {
			d.ID = data.newID()
		} else if d.ID > data.nextID {
			data.nextID = d.ID
		}
		data.decks[d.ID] = d
		data.deckByKey[deckKey(d.Source, d.Identifier)] = d.ID
	}
}

func sharesCard(board map[string]int, names []string) bool {
	for _, name := range names {
		if _, ok := board[name]; ok {
			return true
		}
	}
	return false
}
