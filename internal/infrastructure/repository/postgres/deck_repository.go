package postgres

import (
	"context"
	"fmt"
	"sort"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/riskibarqy/decksite-ingest/internal/domain/deck"
	qb "github.com/riskibarqy/decksite-ingest/internal/platform/querybuilder"
)

type DeckRepository struct {
	db sqlx.ExtContext
}

func (r *DeckRepository) GetIDBySourceIdentifier(ctx context.Context, source, identifier string) (int64, bool, error) {
	query, args, err := qb.Select("id").From("deck").
		Where(
			qb.Eq("source", source),
			qb.Eq("identifier", identifier),
		).
		ToSQL()
	if err != nil {
		return 0, false, fmt.Errorf("build select deck by identifier query: %w", err)
	}

	var id int64
	if err := sqlx.GetContext(ctx, r.db, &id, query, args...); err != nil {
		if isNotFound(err) {
			return 0, false, nil
		}
		return 0, false, fmt.Errorf("select deck source=%s identifier=%s: %w", source, identifier, err)
	}
	return id, true, nil
}

func (r *DeckRepository) Insert(ctx context.Context, d deck.NewDeck) (deck.Deck, error) {
	d = d.Normalize()
	query, args, err := qb.InsertModel("deck", deckInsertModel{
		Name:              d.Name,
		Source:            d.Source,
		Identifier:        d.Identifier,
		MTGOUsername:      d.MTGOUsername,
		CompetitionID:     d.CompetitionID,
		Finish:            d.Finish,
		URL:               d.URL,
		ReportedArchetype: d.ArchetypeName,
		CreatedAt:         d.CreatedAt.UTC(),
	}, "RETURNING id")
	if err != nil {
		return deck.Deck{}, fmt.Errorf("build insert deck query: %w", err)
	}

	var id int64
	if err := sqlx.GetContext(ctx, r.db, &id, query, args...); err != nil {
		if isUniqueViolation(err) {
			return deck.Deck{}, fmt.Errorf("%w: source=%s identifier=%s", deck.ErrDuplicateIdentifier, d.Source, d.Identifier)
		}
		return deck.Deck{}, fmt.Errorf("insert deck identifier=%s: %w", d.Identifier, err)
	}

	if err := r.insertCards(ctx, id, d.Cards); err != nil {
		return deck.Deck{}, err
	}

	return deck.Deck{
		ID:            id,
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
	}, nil
}

func (r *DeckRepository) insertCards(ctx context.Context, deckID int64, cards deck.Decklist) error {
	rows := deckCardRows(deckID, cards)
	if len(rows) == 0 {
		return nil
	}

	builder := qb.InsertInto("deck_card").Columns("deck_id", "card", "n", "sideboard")
	for _, row := range rows {
		builder.Values(row.DeckID, row.Card, row.N, row.Sideboard)
	}
	query, args, err := builder.ToSQL()
	if err != nil {
		return fmt.Errorf("build insert deck cards query: %w", err)
	}
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("insert deck cards deck_id=%d: %w", deckID, err)
	}
	return nil
}

func (r *DeckRepository) ListByCompetition(ctx context.Context, competitionID int64) ([]deck.Deck, error) {
	query, args, err := qb.Select(deckColumns).From("deck d").
		Where(qb.Eq("d.competition_id", competitionID)).
		OrderBy("d.finish", "d.id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build select decks by competition query: %w", err)
	}

	var rows []deckTableModel
	if err := sqlx.SelectContext(ctx, r.db, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("select decks competition_id=%d: %w", competitionID, err)
	}
	return r.withCards(ctx, rows)
}

func (r *DeckRepository) ListSimilarCandidates(ctx context.Context, excludeID int64, cardNames []string, limit int) ([]deck.Deck, error) {
	if len(cardNames) == 0 {
		return []deck.Deck{}, nil
	}

	builder := qb.Select(deckColumns).From("deck d").
		Where(
			qb.Expr("d.id <> ?", excludeID),
			qb.Expr("EXISTS (SELECT 1 FROM deck_card dc WHERE dc.deck_id = d.id AND NOT dc.sideboard AND dc.card = ANY(?))", pq.Array(cardNames)),
		).
		OrderBy("d.id DESC")
	if limit > 0 {
		builder.Limit(limit)
	}
	query, args, err := builder.ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build select similar decks query: %w", err)
	}

	var out []deck.Deck
	err = withSavepoint(ctx, r.db, "similar_candidates", func() error {
		var rows []deckTableModel
		if err := sqlx.SelectContext(ctx, r.db, &rows, query, args...); err != nil {
			return fmt.Errorf("select similar decks exclude_id=%d: %w", excludeID, err)
		}
		decks, err := r.withCards(ctx, rows)
		if err != nil {
			return err
		}
		out = decks
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (r *DeckRepository) withCards(ctx context.Context, rows []deckTableModel) ([]deck.Deck, error) {
	out := make([]deck.Deck, 0, len(rows))
	if len(rows) == 0 {
		return out, nil
	}

	ids := make([]int64, 0, len(rows))
	for _, row := range rows {
		ids = append(ids, row.ID)
	}
	cards, err := r.loadCards(ctx, ids)
	if err != nil {
		return nil, err
	}

	for _, row := range rows {
		list, ok := cards[row.ID]
		if !ok {
			list = deck.Decklist{Maindeck: map[string]int{}, Sideboard: map[string]int{}}
		}
		out = append(out, deck.Deck{
			ID:            row.ID,
			Name:          row.Name,
			Source:        row.Source,
			Identifier:    row.Identifier,
			MTGOUsername:  row.MTGOUsername,
			CompetitionID: row.CompetitionID,
			Finish:        row.Finish,
			CreatedAt:     row.CreatedAt,
			URL:           row.URL,
			ArchetypeName: row.ReportedArchetype,
			ArchetypeID:   nullInt64ToPtr(row.ArchetypeID),
			Cards:         list,
		})
	}
	return out, nil
}

func (r *DeckRepository) loadCards(ctx context.Context, deckIDs []int64) (map[int64]deck.Decklist, error) {
	query, args, err := qb.Select("deck_id", "card", "n", "sideboard").From("deck_card").
		Where(qb.Any("deck_id", pq.Array(deckIDs))).
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build select deck cards query: %w", err)
	}

	var rows []deckCardTableModel
	if err := sqlx.SelectContext(ctx, r.db, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("select deck cards: %w", err)
	}

	out := make(map[int64]deck.Decklist, len(deckIDs))
	for _, row := range rows {
		list, ok := out[row.DeckID]
		if !ok {
			list = deck.Decklist{Maindeck: map[string]int{}, Sideboard: map[string]int{}}
			out[row.DeckID] = list
		}
		if row.Sideboard {
			list.Sideboard[row.Card] += row.N
		} else {
			list.Maindeck[row.Card] += row.N
		}
	}
	return out, nil
}

// deckCardRows flattens a decklist in a stable order.
func deckCardRows(deckID int64, cards deck.Decklist) []deckCardTableModel {
	rows := make([]deckCardTableModel, 0, len(cards.Maindeck)+len(cards.Sideboard))
	for _, board := range []struct {
		cards     map[string]int
		sideboard bool
	}{
		{cards.Maindeck, false},
		{cards.Sideboard, true},
	} {
		names := make([]string, 0, len(board.cards))
		for name, n := range board.cards {
			if n > 0 {
				names = append(names, name)
			}
		}
		sort.Strings(names)
		for _, name := range names {
			rows = append(rows, deckCardTableModel{DeckID: deckID, Card: name, N: board.cards[name], Sideboard: board.sideboard})
		}
	}
	return rows
}
