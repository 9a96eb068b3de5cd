package postgres

import (
	"context"
	"fmt"
	"strings"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	qb "github.com/riskibarqy/decksite-ingest/internal/platform/querybuilder"
)

// CardCatalog looks card names up case-insensitively in the card table.
type CardCatalog struct {
	db sqlx.ExtContext
}

func (c *CardCatalog) CanonicalNames(ctx context.Context, names []string) (map[string]string, error) {
	out := make(map[string]string, len(names))
	if len(names) == 0 {
		return out, nil
	}

	lowered := make([]string, 0, len(names))
	seen := make(map[string]struct{}, len(names))
	for _, name := range names {
		key := strings.ToLower(strings.TrimSpace(name))
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		lowered = append(lowered, key)
	}

	query, args, err := qb.Select("name").From("card").
		Where(qb.Any("LOWER(name)", pq.Array(lowered))).
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build select cards query: %w", err)
	}

	var canonical []string
	if err := sqlx.SelectContext(ctx, c.db, &canonical, query, args...); err != nil {
		return nil, fmt.Errorf("select cards: %w", err)
	}

	byLower := make(map[string]string, len(canonical))
	for _, name := range canonical {
		byLower[strings.ToLower(name)] = name
	}
	for _, name := range names {
		if match, ok := byLower[strings.ToLower(strings.TrimSpace(name))]; ok {
			out[name] = match
		}
	}
	return out, nil
}
