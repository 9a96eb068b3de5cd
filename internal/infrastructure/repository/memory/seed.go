package memory

import (
	"github.com/riskibarqy/decksite-ingest/internal/domain/archetype"
	"github.com/riskibarqy/decksite-ingest/internal/domain/tournament"
)

// DefaultArchetypes is the starting taxonomy: the coarse labels the feed
// reports, so guesses have somewhere to land before humans refine it.
func DefaultArchetypes() []archetype.Archetype {
	labels := []tournament.Archetype{
		tournament.ArchetypeAggro,
		tournament.ArchetypeControl,
		tournament.ArchetypeCombo,
		tournament.ArchetypeAggroControl,
		tournament.ArchetypeAggroCombo,
		tournament.ArchetypeComboControl,
		tournament.ArchetypeRamp,
		tournament.ArchetypeMidrange,
		tournament.ArchetypeUnclassified,
	}
	out := make([]archetype.Archetype, 0, len(labels))
	for i, label := range labels {
		out = append(out, archetype.Archetype{ID: int64(i + 1), Name: string(label)})
	}
	return out
}
