package usecase

import (
	crerr "github.com/cockroachdb/errors"

	"github.com/riskibarqy/decksite-ingest/internal/domain/tournament"
)

// ResolveFinishes maps every competitor to a final placement. Medals come
// first with tied placements sharing a number (top 4 is 3, top 8 is 5); the
// remaining standings rows continue from the number of medalists plus one.
func ResolveFinishes(finalists []tournament.Finalist, standings []tournament.Standing) (map[string]int, error) {
	out := make(map[string]int, len(finalists)+len(standings))
	for _, f := range finalists {
		finish, err := medalFinish(f.Medal)
		if err != nil {
			return nil, crerr.WithDetailf(err, "competitor %q", f.Player)
		}
		out[f.Player] = finish
	}

	next := len(out)
	for _, s := range standings {
		if _, ok := out[s.Player]; ok {
			continue
		}
		next++
		out[s.Player] = next
	}
	return out, nil
}

func medalFinish(m tournament.Medal) (int, error) {
	switch m {
	case tournament.MedalWinner:
		return 1, nil
	case tournament.MedalRunnerUp:
		return 2, nil
	case tournament.MedalTop4:
		return 3, nil
	case tournament.MedalTop8:
		return 5, nil
	default:
		return 0, crerr.Wrapf(ErrInvalidFinish, "no finish for medal %q", string(m))
	}
}
