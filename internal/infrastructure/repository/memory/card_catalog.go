package memory

import (
	"context"
	"strings"
)

type CardCatalog struct {
	h holder
}

func (c *CardCatalog) CanonicalNames(_ context.Context, names []string) (map[string]string, error) {
	data, release := c.h.acquire(false)
	defer release()

	out := make(map[string]string, len(names))
	for _, name := range names {
		if canonical, ok := data.cards[strings.ToLower(name)]; ok {
			out[name] = canonical
		}
	}
	return out, nil
}

func (s *Store) SeedCards(names ...string) {
	data, release := s.committed.acquire(true)
	defer release()

	for _, name := range names {
		data.cards[strings.ToLower(name)] = name
	}
}
