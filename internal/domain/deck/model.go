package deck

import (
	"strings"
	"time"
)

const SourceGatherling = "Gatherling"

// Decklist holds card name -> copy count for each board.
type Decklist struct {
	Maindeck  map[string]int
	Sideboard map[string]int
}

func (d Decklist) TotalCards() int {
	total := 0
	for _, n := range d.Maindeck {
		total += n
	}
	for _, n := range d.Sideboard {
		total += n
	}
	return total
}

func (d Decklist) IsEmpty() bool {
	return d.TotalCards() == 0
}

// CardNames returns every distinct card name across both boards.
func (d Decklist) CardNames() []string {
	seen := make(map[string]struct{}, len(d.Maindeck)+len(d.Sideboard))
	out := make([]string, 0, len(d.Maindeck)+len(d.Sideboard))
	for _, board := range []map[string]int{d.Maindeck, d.Sideboard} {
		for name := range board {
			if _, ok := seen[name]; ok {
				continue
			}
			seen[name] = struct{}{}
			out = append(out, name)
		}
	}
	return out
}

// Deck is one competitor's accepted submission. (Source, Identifier) is
// unique.
type Deck struct {
	ID            int64
	Name          string
	Source        string
	Identifier    string
	MTGOUsername  string
	CompetitionID int64
	Finish        int
	CreatedAt     time.Time
	URL           string
	ArchetypeName string
	ArchetypeID   *int64
	Cards         Decklist
}

// NewDeck is the payload accepted by Repository.Insert.
type NewDeck struct {
	Name          string
	Source        string
	Identifier    string
	MTGOUsername  string
	CompetitionID int64
	Finish        int
	CreatedAt     time.Time
	URL           string
	ArchetypeName string
	Cards         Decklist
}

func (n NewDeck) Normalize() NewDeck {
	n.Name = strings.TrimSpace(n.Name)
	n.Source = strings.TrimSpace(n.Source)
	n.Identifier = strings.TrimSpace(n.Identifier)
	n.MTGOUsername = strings.TrimSpace(n.MTGOUsername)
	n.URL = strings.TrimSpace(n.URL)
	n.ArchetypeName = strings.TrimSpace(n.ArchetypeName)
	return n
}

// SimilarDeck is a previously stored deck ranked against a new one.
type SimilarDeck struct {
	DeckID      int64
	ArchetypeID *int64
	Score       float64
}
