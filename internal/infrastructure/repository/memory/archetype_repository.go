package memory

import (
	"context"
	"fmt"

	"github.com/riskibarqy/decksite-ingest/internal/domain/archetype"
)

type ArchetypeRepository struct {
	h holder
}

func (r *ArchetypeRepository) Assign(_ context.Context, deckID, archetypeID int64, confirmed bool) error {
	data, release := r.h.acquire(true)
	defer release()

	d, ok := data.decks[deckID]
	if !ok {
		return fmt.Errorf("deck %d not found", deckID)
	}
	if _, ok := data.archetypes[archetypeID]; !ok {
		return fmt.Errorf("archetype %d not found", archetypeID)
	}
	if existing, ok := data.guesses[deckID]; ok && existing.Confirmed && !confirmed {
		return nil
	}
	data.guesses[deckID] = archetype.Guess{DeckID: deckID, ArchetypeID: archetypeID, Confirmed: confirmed}
	if confirmed {
		id := archetypeID
		d.ArchetypeID = &id
		data.decks[deckID] = d
	}
	return nil
}

func (r *ArchetypeRepository) GetGuess(_ context.Context, deckID int64) (archetype.Guess, bool, error) {
	data, release := r.h.acquire(false)
	defer release()

	g, ok := data.guesses[deckID]
	return g, ok, nil
}

func (s *Store) SeedArchetypes(items ...archetype.Archetype) {
	data, release := s.committed.acquire(true)
	defer release()

	for _, a := range items {
		data.archetypes[a.ID] = a
	}
}
