package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/riskibarqy/decksite-ingest/internal/infrastructure/repository/memory"
	qb "github.com/riskibarqy/decksite-ingest/internal/platform/querybuilder"
)

// BootstrapSeed loads the default archetype taxonomy into an empty archetype
// table. A table that already has rows is left as curated.
func BootstrapSeed(ctx context.Context, db sqlx.ExtContext) error {
	var seeded bool
	if err := sqlx.GetContext(ctx, db, &seeded, `SELECT EXISTS (SELECT 1 FROM archetype)`); err != nil {
		return fmt.Errorf("check archetype taxonomy: %w", err)
	}
	if seeded {
		return nil
	}

	insert := qb.InsertInto("archetype").Columns("name").Suffix("ON CONFLICT (name) DO NOTHING")
	for _, a := range memory.DefaultArchetypes() {
		insert.Values(a.Name)
	}
	query, args, err := insert.ToSQL()
	if err != nil {
		return fmt.Errorf("build archetype seed query: %w", err)
	}
	if _, err := db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("seed %d archetypes: %w", len(args), err)
	}
	return nil
}
