package memory

import (
	"context"
	"sort"

	"github.com/riskibarqy/decksite-ingest/internal/domain/alias"
)

type AliasRepository struct {
	h holder
}

func (r *AliasRepository) ListAliases(_ context.Context) ([]alias.Alias, error) {
	data, release := r.h.acquire(false)
	defer release()

	out := make([]alias.Alias, 0, len(data.aliases))
	for _, item := range data.aliases {
		out = append(out, item)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Alias < out[j].Alias })
	return out, nil
}

func (r *AliasRepository) UpsertAlias(_ context.Context, a alias.Alias) error {
	data, release := r.h.acquire(true)
	defer release()

	data.aliases[a.Alias] = a
	return nil
}
