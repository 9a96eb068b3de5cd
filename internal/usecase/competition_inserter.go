package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/riskibarqy/decksite-ingest/internal/domain/competition"
)

type CompetitionInput struct {
	Name        string
	Date        time.Time
	Series      string
	URL         string
	FinalRounds int
}

type CompetitionInserter struct{}

func NewCompetitionInserter() *CompetitionInserter {
	return &CompetitionInserter{}
}

func (i *CompetitionInserter) Insert(ctx context.Context, repo competition.Repository, in CompetitionInput) (int64, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.CompetitionInserter.Insert")
	defer span.End()

	in.Name = strings.TrimSpace(in.Name)
	in.Series = strings.TrimSpace(in.Series)
	switch {
	case in.Name == "":
		return 0, missingDataf("competition name is required")
	case in.Date.IsZero():
		return 0, missingDataf("start date is required for competition %q", in.Name)
	case in.Series == "":
		return 0, missingDataf("series is required for competition %q", in.Name)
	}

	top, err := competition.TopFromFinalRounds(in.FinalRounds)
	if err != nil {
		return 0, NewSchemaError("finalrounds", "%v", err)
	}

	id, err := repo.GetOrInsert(ctx, competition.Competition{
		Name:      in.Name,
		StartDate: in.Date,
		EndDate:   in.Date,
		Series:    in.Series,
		URL:       in.URL,
		Top:       top,
	})
	if err != nil {
		return 0, fmt.Errorf("get or insert competition %q: %w", in.Name, err)
	}
	return id, nil
}
