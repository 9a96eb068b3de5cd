package postgres

import (
	"context"
	"fmt"
	"strings"

	"github.com/jmoiron/sqlx"

	"github.com/riskibarqy/decksite-ingest/internal/domain/series"
	qb "github.com/riskibarqy/decksite-ingest/internal/platform/querybuilder"
)

type SeriesRepository struct {
	db sqlx.ExtContext
}

func (r *SeriesRepository) IsRegistered(ctx context.Context, name string) (bool, error) {
	query, args, err := qb.Select("COUNT(1)").From("competition_series").
		Where(qb.Eq("name", strings.TrimSpace(name))).
		ToSQL()
	if err != nil {
		return false, fmt.Errorf("build select series query: %w", err)
	}

	var count int
	if err := sqlx.GetContext(ctx, r.db, &count, query, args...); err != nil {
		return false, fmt.Errorf("select series name=%s: %w", name, err)
	}
	return count > 0, nil
}

func (r *SeriesRepository) ListSeries(ctx context.Context) ([]series.Series, error) {
	query, args, err := qb.Select("id", "name").From("competition_series").OrderBy("name").ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list series query: %w", err)
	}

	var rows []seriesTableModel
	if err := sqlx.SelectContext(ctx, r.db, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list series: %w", err)
	}

	out := make([]series.Series, 0, len(rows))
	for _, row := range rows {
		out = append(out, series.Series{ID: row.ID, Name: row.Name})
	}
	return out, nil
}

func (r *SeriesRepository) AddSeries(ctx context.Context, name string) error {
	query, args, err := qb.InsertInto("competition_series").
		Columns("name").
		Values(strings.TrimSpace(name)).
		Suffix("ON CONFLICT (name) DO NOTHING").
		ToSQL()
	if err != nil {
		return fmt.Errorf("build insert series query: %w", err)
	}
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("insert series name=%s: %w", name, err)
	}
	return nil
}

func (r *SeriesRepository) RemoveSeries(ctx context.Context, name string) (bool, error) {
	query, args, err := qb.DeleteFrom("competition_series").
		Where(qb.Eq("name", strings.TrimSpace(name))).
		ToSQL()
	if err != nil {
		return false, fmt.Errorf("build delete series query: %w", err)
	}

	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return false, fmt.Errorf("delete series name=%s: %w", name, err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("delete series rows affected: %w", err)
	}
	return affected > 0, nil
}
