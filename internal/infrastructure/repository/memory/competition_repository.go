package memory

import (
	"context"
	"fmt"
	"strings"

	"github.com/riskibarqy/decksite-ingest/internal/domain/competition"
)

type CompetitionRepository struct {
	h holder
}

func (r *CompetitionRepository) ListByName(_ context.Context, name string) ([]competition.Competition, error) {
	data, release := r.h.acquire(false)
	defer release()

	id, ok := data.competitionByName[name]
	if !ok {
		return []competition.Competition{}, nil
	}
	return []competition.Competition{data.competitions[id]}, nil
}

func (r *CompetitionRepository) GetOrInsert(_ context.Context, c competition.Competition) (int64, error) {
	c.Name = strings.TrimSpace(c.Name)
	if c.Name == "" {
		return 0, fmt.Errorf("competition name is required")
	}

	data, release := r.h.acquire(true)
	defer release()

	if id, ok := data.competitionByName[c.Name]; ok {
		return id, nil
	}
	c.ID = data.newID()
	data.competitions[c.ID] = c
	data.competitionByName[c.Name] = c.ID
	return c.ID, nil
}
