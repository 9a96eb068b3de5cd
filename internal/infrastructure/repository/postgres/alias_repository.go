package postgres

import (
	"context"
	"fmt"
	"strings"

	"github.com/jmoiron/sqlx"

	"github.com/riskibarqy/decksite-ingest/internal/domain/alias"
	qb "github.com/riskibarqy/decksite-ingest/internal/platform/querybuilder"
)

type AliasRepository struct {
	db sqlx.ExtContext
}

func (r *AliasRepository) ListAliases(ctx context.Context) ([]alias.Alias, error) {
	query, args, err := qb.Select("alias", "mtgo_username").From("person_alias").OrderBy("alias").ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list aliases query: %w", err)
	}

	var rows []aliasTableModel
	if err := sqlx.SelectContext(ctx, r.db, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list aliases: %w", err)
	}

	out := make([]alias.Alias, 0, len(rows))
	for _, row := range rows {
		out = append(out, alias.Alias{Alias: row.Alias, MTGOUsername: row.MTGOUsername})
	}
	return out, nil
}

func (r *AliasRepository) UpsertAlias(ctx context.Context, a alias.Alias) error {
	query, args, err := qb.InsertModel("person_alias", aliasTableModel{
		Alias:        strings.TrimSpace(a.Alias),
		MTGOUsername: strings.TrimSpace(a.MTGOUsername),
	}, "ON CONFLICT (alias) DO UPDATE SET mtgo_username = EXCLUDED.mtgo_username")
	if err != nil {
		return fmt.Errorf("build upsert alias query: %w", err)
	}
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("upsert alias=%s: %w", a.Alias, err)
	}
	return nil
}
