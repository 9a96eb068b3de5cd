package usecase

import (
	"github.com/riskibarqy/decksite-ingest/internal/domain/alias"
)

// competitorIndex looks competitors up by feed display name, tolerating case
// and whitespace differences and known alternate spellings.
type competitorIndex[V any] struct {
	exact   map[string]V
	folded  map[string]V
	aliases *alias.Table
}

func newCompetitorIndex[V any](aliases *alias.Table, size int) *competitorIndex[V] {
	return &competitorIndex[V]{
		exact:   make(map[string]V, size),
		folded:  make(map[string]V, size),
		aliases: aliases,
	}
}

func (c *competitorIndex[V]) put(name string, value V) {
	c.exact[name] = value
	key := alias.Fold(name)
	if _, taken := c.folded[key]; !taken {
		c.folded[key] = value
	}
}

func (c *competitorIndex[V]) get(name string) (V, bool) {
	if v, ok := c.lookup(name); ok {
		return v, true
	}
	if c.aliases.Len() == 0 {
		var zero V
		return zero, false
	}

	canonical := c.aliases.Resolve(name)
	candidates := append([]string{canonical}, c.aliases.Alternates(canonical)...)
	candidates = append(candidates, c.aliases.Alternates(name)...)
	for _, candidate := range candidates {
		if v, ok := c.lookup(candidate); ok {
			return v, true
		}
	}

	var zero V
	return zero, false
}

func (c *competitorIndex[V]) lookup(name string) (V, bool) {
	if v, ok := c.exact[name]; ok {
		return v, true
	}
	v, ok := c.folded[alias.Fold(name)]
	return v, ok
}
