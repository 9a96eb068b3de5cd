package match

import (
	"testing"

	"github.com/riskibarqy/decksite-ingest/internal/domain/tournament"
)

func TestElimination(t *testing.T) {
	t.Parallel()

	// mainrounds=3, finalrounds=3: finals rounds are numbered 4..6.
	const total = 6
	cases := []struct {
		name   string
		timing tournament.Timing
		round  int
		want   int
	}{
		{name: "swiss round", timing: tournament.TimingMain, round: 2, want: 0},
		{name: "quarterfinal", timing: tournament.TimingFinals, round: 4, want: 8},
		{name: "semifinal", timing: tournament.TimingFinals, round: 5, want: 4},
		{name: "final", timing: tournament.TimingFinals, round: 6, want: 2},
	}

	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			got := Elimination(tc.timing, tc.round, total)
			if got != tc.want {
				t.Fatalf("unexpected elimination: got=%d want=%d", got, tc.want)
			}
		})
	}
}

func TestElimination_FinalsRoundNumberedFromOne(t *testing.T) {
	t.Parallel()

	// Rounds numbered within the finals phase: round 1 of a 3-round final
	// with total=3 is the widest bracket.
	if got := Elimination(tournament.TimingFinals, 1, 3); got != 8 {
		t.Fatalf("expected 8, got=%d", got)
	}
	if got := Elimination(tournament.TimingFinals, 3, 3); got != 2 {
		t.Fatalf("expected 2, got=%d", got)
	}
}

func TestFinalsRoundInRange(t *testing.T) {
	t.Parallel()

	for round, want := range map[int]bool{0: false, 1: true, 6: true, 7: false} {
		if got := FinalsRoundInRange(round, 6); got != want {
			t.Fatalf("FinalsRoundInRange(%d, 6) = %v, want %v", round, got, want)
		}
	}
}

func TestIsBye(t *testing.T) {
	t.Parallel()

	bye := tournament.ReportedMatch{PlayerA: "X", PlayerB: "X"}
	if !IsBye(bye) {
		t.Fatalf("expected same-player zero-win match to be a bye")
	}

	won := tournament.ReportedMatch{PlayerA: "X", PlayerB: "X", PlayerAWins: tournament.WinsTwo}
	if IsBye(won) {
		t.Fatalf("expected match with wins not to be a bye")
	}

	paired := tournament.ReportedMatch{PlayerA: "X", PlayerB: "Y"}
	if IsBye(paired) {
		t.Fatalf("expected match between different players not to be a bye")
	}
}
