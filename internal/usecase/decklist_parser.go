package usecase

import (
	"context"
	"fmt"
	"sort"
	"strings"

	crerr "github.com/cockroachdb/errors"

	"github.com/riskibarqy/decksite-ingest/internal/domain/card"
	"github.com/riskibarqy/decksite-ingest/internal/domain/deck"
)

// DecklistParser canonicalises card names through the catalog, when set.
type DecklistParser struct {
	catalog card.Catalog
}

func NewDecklistParser(catalog card.Catalog) *DecklistParser {
	return &DecklistParser{catalog: catalog}
}

func (p *DecklistParser) Parse(ctx context.Context, maindeck, sideboard map[string]int) (deck.Decklist, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.DecklistParser.Parse")
	defer span.End()

	out := deck.Decklist{
		Maindeck:  make(map[string]int, len(maindeck)),
		Sideboard: make(map[string]int, len(sideboard)),
	}
	if err := copyBoard(out.Maindeck, maindeck, "maindeck"); err != nil {
		return deck.Decklist{}, err
	}
	if err := copyBoard(out.Sideboard, sideboard, "sideboard"); err != nil {
		return deck.Decklist{}, err
	}
	if out.IsEmpty() {
		return deck.Decklist{}, crerr.Wrap(ErrEmptyDecklist, "decklist has no cards")
	}
	if p == nil || p.catalog == nil {
		return out, nil
	}

	canonical, err := p.catalog.CanonicalNames(ctx, out.CardNames())
	if err != nil {
		return deck.Decklist{}, fmt.Errorf("resolve card names: %w", err)
	}
	var unknown []string
	for _, name := range out.CardNames() {
		if _, ok := canonical[name]; !ok {
			unknown = append(unknown, name)
		}
	}
	if len(unknown) > 0 {
		sort.Strings(unknown)
		return deck.Decklist{}, crerr.WithDetailf(
			missingDataf("%d unknown card(s)", len(unknown)),
			"cards: %s", strings.Join(unknown, ", "),
		)
	}

	return deck.Decklist{
		Maindeck:  renameBoard(out.Maindeck, canonical),
		Sideboard: renameBoard(out.Sideboard, canonical),
	}, nil
}

func (p *DecklistParser) ParseText(ctx context.Context, raw string) (deck.Decklist, error) {
	list, err := deck.ParseText(raw)
	if err != nil {
		return deck.Decklist{}, NewSchemaError("decklist", "%v", err)
	}
	return p.Parse(ctx, list.Maindeck, list.Sideboard)
}

func copyBoard(dst, src map[string]int, board string) error {
	for name, count := range src {
		trimmed := strings.TrimSpace(name)
		if trimmed == "" {
			return NewSchemaError(board, "blank card name")
		}
		if count <= 0 {
			return NewSchemaError(board+"."+trimmed, "card count must be positive, got %d", count)
		}
		dst[trimmed] += count
	}
	return nil
}

func renameBoard(board map[string]int, canonical map[string]string) map[string]int {
	out := make(map[string]int, len(board))
	for name, count := range board {
		out[canonical[name]] += count
	}
	return out
}
