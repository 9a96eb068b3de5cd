package postgres

import (
	"context"
	"fmt"
	"strings"

	"github.com/jmoiron/sqlx"

	"github.com/riskibarqy/decksite-ingest/internal/domain/competition"
	qb "github.com/riskibarqy/decksite-ingest/internal/platform/querybuilder"
)

type CompetitionRepository struct {
	db sqlx.ExtContext
}

func (r *CompetitionRepository) ListByName(ctx context.Context, name string) ([]competition.Competition, error) {
	query, args, err := qb.Select("id", "name", "start_date", "end_date", "series_name", "url", "top", "created_at").
		From("competition").
		Where(qb.Eq("name", name)).
		OrderBy("id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build select competition by name query: %w", err)
	}

	var rows []competitionTableModel
	if err := sqlx.SelectContext(ctx, r.db, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("select competition by name: %w", err)
	}

	out := make([]competition.Competition, 0, len(rows))
	for _, row := range rows {
		out = append(out, competition.Competition{
			ID:        row.ID,
			Name:      row.Name,
			StartDate: row.StartDate,
			EndDate:   row.EndDate,
			Series:    row.SeriesName,
			URL:       row.URL,
			Top:       competition.Top(row.Top),
		})
	}
	return out, nil
}

// GetOrInsert relies on UNIQUE(name): a concurrent insert of the same name
// resolves to the existing row.
func (r *CompetitionRepository) GetOrInsert(ctx context.Context, c competition.Competition) (int64, error) {
	c.Name = strings.TrimSpace(c.Name)
	if c.Name == "" {
		return 0, fmt.Errorf("competition name is required")
	}

	query, args, err := qb.InsertModel("competition", competitionInsertModel{
		Name:       c.Name,
		StartDate:  c.StartDate.UTC(),
		EndDate:    c.EndDate.UTC(),
		SeriesName: strings.TrimSpace(c.Series),
		URL:        strings.TrimSpace(c.URL),
		Top:        int(c.Top),
	}, `ON CONFLICT (name) DO UPDATE SET name = EXCLUDED.name RETURNING id`)
	if err != nil {
		return 0, fmt.Errorf("build insert competition query: %w", err)
	}

	var id int64
	if err := sqlx.GetContext(ctx, r.db, &id, query, args...); err != nil {
		return 0, fmt.Errorf("get or insert competition name=%s: %w", c.Name, err)
	}
	return id, nil
}
