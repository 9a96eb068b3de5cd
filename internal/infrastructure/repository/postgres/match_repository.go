package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/riskibarqy/decksite-ingest/internal/domain/match"
	qb "github.com/riskibarqy/decksite-ingest/internal/platform/querybuilder"
)

type MatchRepository struct {
	db sqlx.ExtContext
}

// Insert writes the match row and one deck_match row per side. A bye has a
// single side.
func (r *MatchRepository) Insert(ctx context.Context, m match.Match) (int64, error) {
	query, args, err := qb.InsertModel("match", matchInsertModel{
		Date:        m.Date.UTC(),
		Round:       m.Round,
		Elimination: m.Elimination,
	}, "RETURNING id")
	if err != nil {
		return 0, fmt.Errorf("build insert match query: %w", err)
	}

	var id int64
	if err := sqlx.GetContext(ctx, r.db, &id, query, args...); err != nil {
		return 0, fmt.Errorf("insert match round=%d: %w", m.Round, err)
	}

	sides := []deckMatchInsertModel{{DeckID: m.Deck1ID, MatchID: id, Games: m.Deck1Wins}}
	if m.Deck2ID != nil {
		sides = append(sides, deckMatchInsertModel{DeckID: *m.Deck2ID, MatchID: id, Games: m.Deck2Wins})
	}
	builder := qb.InsertInto("deck_match").Columns("deck_id", "match_id", "games")
	for _, side := range sides {
		builder.Values(side.DeckID, side.MatchID, side.Games)
	}
	query, args, err = builder.ToSQL()
	if err != nil {
		return 0, fmt.Errorf("build insert deck_match query: %w", err)
	}
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return 0, fmt.Errorf("insert deck_match match_id=%d: %w", id, err)
	}
	return id, nil
}

func (r *MatchRepository) ListByDeck(ctx context.Context, deckID int64) ([]match.Match, error) {
	query, args, err := qb.Select("m.id AS match_id", "m.date", "m.round", "m.elimination", "dm.deck_id", "dm.games").
		From("match m").
		Join("JOIN deck_match dm ON dm.match_id = m.id").
		Where(qb.Expr("m.id IN (SELECT match_id FROM deck_match WHERE deck_id = ?)", deckID)).
		OrderBy("m.round", "m.id", "dm.id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build select matches by deck query: %w", err)
	}

	var rows []matchSideRow
	if err := sqlx.SelectContext(ctx, r.db, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("select matches deck_id=%d: %w", deckID, err)
	}
	return foldMatchSides(rows), nil
}

// foldMatchSides merges consecutive side rows of the same match. The first
// side inserted is deck 1.
func foldMatchSides(rows []matchSideRow) []match.Match {
	out := make([]match.Match, 0, len(rows))
	for _, row := range rows {
		if n := len(out); n > 0 && out[n-1].ID == row.MatchID {
			deckID := row.DeckID
			out[n-1].Deck2ID = &deckID
			out[n-1].Deck2Wins = row.Games
			continue
		}
		out = append(out, match.Match{
			ID:          row.MatchID,
			Date:        row.Date,
			Deck1ID:     row.DeckID,
			Deck1Wins:   row.Games,
			Round:       row.Round,
			Elimination: nullInt64ToIntPtr(row.Elimination),
		})
	}
	return out
}
