package match

import (
	"time"

	"github.com/riskibarqy/decksite-ingest/internal/domain/tournament"
)

// Elimination codes: nil means a non-tournament match, 0 a Swiss or league
// round, and 2, 4, 8, ... the bracket size at that stage (2 is the final).
const EliminationNone = 0

// Match is one completed pairing. A nil Deck2ID denotes a bye.
type Match struct {
	ID          int64
	Date        time.Time
	Deck1ID     int64
	Deck1Wins   int
	Deck2ID     *int64
	Deck2Wins   int
	Round       int
	Elimination *int
}

// Elimination derives the bracket code for a reported match. Anything outside
// the finals phase is 0; finals rounds count down to 2 for the last round.
// Finals rounds must satisfy FinalsRoundInRange.
func Elimination(timing tournament.Timing, round, totalRounds int) int {
	if timing != tournament.TimingFinals {
		return EliminationNone
	}
	return 1 << (totalRounds - round + 1)
}

// FinalsRoundInRange reports whether round can be a finals round of an event
// with totalRounds rounds.
func FinalsRoundInRange(round, totalRounds int) bool {
	return round >= 1 && round <= totalRounds
}

// IsBye reports the feed's encoding of a bye: the same competitor in both
// slots with no games won on either side.
func IsBye(m tournament.ReportedMatch) bool {
	return m.PlayerA == m.PlayerB &&
		m.PlayerAWins == tournament.WinsZero &&
		m.PlayerBWins == tournament.WinsZero
}
