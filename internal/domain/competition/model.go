package competition

import (
	"fmt"
	"time"
)

// Top classifies the size of a competition's elimination bracket.
type Top int

const (
	TopNone      Top = 0
	TopTwo       Top = 2
	TopFour      Top = 4
	TopEight     Top = 8
	TopSixteen   Top = 16
	TopThirtyTwo Top = 32
)

// TopFromFinalRounds maps a count of elimination rounds onto a bracket size.
// Zero rounds means no bracket.
func TopFromFinalRounds(finalRounds int) (Top, error) {
	if finalRounds == 0 {
		return TopNone, nil
	}
	if finalRounds < 0 || finalRounds > 5 {
		return TopNone, fmt.Errorf("unsupported final rounds %d", finalRounds)
	}
	top := Top(1 << finalRounds)
	switch top {
	case TopTwo, TopFour, TopEight, TopSixteen, TopThirtyTwo:
		return top, nil
	default:
		return TopNone, fmt.Errorf("unsupported bracket size %d", top)
	}
}

// Competition is one persisted tournament. Name is the global join key
// against the feed.
type Competition struct {
	ID        int64
	Name      string
	StartDate time.Time
	EndDate   time.Time
	Series    string
	URL       string
	Top       Top
}
