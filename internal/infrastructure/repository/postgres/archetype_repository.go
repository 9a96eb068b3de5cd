package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/riskibarqy/decksite-ingest/internal/domain/archetype"
	qb "github.com/riskibarqy/decksite-ingest/internal/platform/querybuilder"
)

type ArchetypeRepository struct {
	db sqlx.ExtContext
}

// Assign records a guess for deckID. An unconfirmed guess never replaces a
// confirmed one; a confirmed assignment also classifies the deck itself.
func (r *ArchetypeRepository) Assign(ctx context.Context, deckID, archetypeID int64, confirmed bool) error {
	return withSavepoint(ctx, r.db, "archetype_assign", func() error {
		query, args, err := qb.InsertModel("deck_archetype_guess", archetypeGuessTableModel{
			DeckID:      deckID,
			ArchetypeID: archetypeID,
			Confirmed:   confirmed,
		}, `ON CONFLICT (deck_id) DO UPDATE SET
    archetype_id = EXCLUDED.archetype_id,
    confirmed = EXCLUDED.confirmed,
    updated_at = NOW()
WHERE NOT deck_archetype_guess.confirmed OR EXCLUDED.confirmed`)
		if err != nil {
			return fmt.Errorf("build upsert archetype guess query: %w", err)
		}
		if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
			return fmt.Errorf("upsert archetype guess deck_id=%d: %w", deckID, err)
		}
		if !confirmed {
			return nil
		}

		query, args, err = qb.Update("deck").
			Set("archetype_id", archetypeID).
			Where(qb.Eq("id", deckID)).
			ToSQL()
		if err != nil {
			return fmt.Errorf("build update deck archetype query: %w", err)
		}
		if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
			return fmt.Errorf("update deck archetype deck_id=%d: %w", deckID, err)
		}
		return nil
	})
}

func (r *ArchetypeRepository) GetGuess(ctx context.Context, deckID int64) (archetype.Guess, bool, error) {
	query, args, err := qb.Select("deck_id", "archetype_id", "confirmed").From("deck_archetype_guess").
		Where(qb.Eq("deck_id", deckID)).
		ToSQL()
	if err != nil {
		return archetype.Guess{}, false, fmt.Errorf("build select archetype guess query: %w", err)
	}

	var row archetypeGuessTableModel
	if err := sqlx.GetContext(ctx, r.db, &row, query, args...); err != nil {
		if isNotFound(err) {
			return archetype.Guess{}, false, nil
		}
		return archetype.Guess{}, false, fmt.Errorf("select archetype guess deck_id=%d: %w", deckID, err)
	}
	return archetype.Guess{DeckID: row.DeckID, ArchetypeID: row.ArchetypeID, Confirmed: row.Confirmed}, true, nil
}
