package usecase

import (
	"testing"

	"github.com/riskibarqy/decksite-ingest/internal/domain/alias"
)

func TestCompetitorIndex_CaseAndWhitespace(t *testing.T) {
	t.Parallel()

	idx := newCompetitorIndex[int](nil, 1)
	idx.put("Some Player", 7)

	for _, name := range []string{"Some Player", "someplayer", " SOME  player "} {
		got, ok := idx.get(name)
		if !ok || got != 7 {
			t.Fatalf("get(%q) = %d, %v; want 7, true", name, got, ok)
		}
	}
	if _, ok := idx.get("other"); ok {
		t.Fatalf("expected miss for unknown competitor")
	}
}

func TestCompetitorIndex_ExactWinsOverFolded(t *testing.T) {
	t.Parallel()

	idx := newCompetitorIndex[int](nil, 2)
	idx.put("abc", 1)
	idx.put("ABC", 2)

	if got, _ := idx.get("ABC"); got != 2 {
		t.Fatalf("expected exact match 2, got %d", got)
	}
	if got, _ := idx.get("Abc"); got != 1 {
		t.Fatalf("expected first folded match 1, got %d", got)
	}
}

func TestCompetitorIndex_AliasBothDirections(t *testing.T) {
	t.Parallel()

	aliases := alias.NewTable([]alias.Alias{{Alias: "jsmith", MTGOUsername: "j_smith_mtgo"}})

	byAlias := newCompetitorIndex[string](aliases, 1)
	byAlias.put("jsmith", "deck-1")
	if got, ok := byAlias.get("j_smith_mtgo"); !ok || got != "deck-1" {
		t.Fatalf("canonical name should reach alias key, got %q %v", got, ok)
	}

	byCanonical := newCompetitorIndex[string](aliases, 1)
	byCanonical.put("j_smith_mtgo", "deck-2")
	if got, ok := byCanonical.get("JSmith"); !ok || got != "deck-2" {
		t.Fatalf("alias should reach canonical key, got %q %v", got, ok)
	}
}
