package usecase

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/riskibarqy/decksite-ingest/internal/domain/tournament"
)

func TestResolveFinishes_MedalsThenStandings(t *testing.T) {
	t.Parallel()

	finalists := []tournament.Finalist{
		{Medal: tournament.MedalWinner, Player: "A"},
		{Medal: tournament.MedalRunnerUp, Player: "B"},
		{Medal: tournament.MedalTop4, Player: "C1"},
		{Medal: tournament.MedalTop4, Player: "C2"},
	}
	standings := []tournament.Standing{
		{Player: "A"},
		{Player: "C2"},
		{Player: "D"},
		{Player: "B"},
		{Player: "E"},
	}

	got, err := ResolveFinishes(finalists, standings)
	if err != nil {
		t.Fatalf("ResolveFinishes: %v", err)
	}

	want := map[string]int{"A": 1, "B": 2, "C1": 3, "C2": 3, "D": 5, "E": 6}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("finishes mismatch (-want +got):\n%s", diff)
	}
}

func TestResolveFinishes_TopEightSharesFive(t *testing.T) {
	t.Parallel()

	finalists := []tournament.Finalist{
		{Medal: tournament.MedalTop8, Player: "P1"},
		{Medal: tournament.MedalTop8, Player: "P2"},
	}
	got, err := ResolveFinishes(finalists, []tournament.Standing{{Player: "P3"}})
	if err != nil {
		t.Fatalf("ResolveFinishes: %v", err)
	}

	want := map[string]int{"P1": 5, "P2": 5, "P3": 3}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("finishes mismatch (-want +got):\n%s", diff)
	}
}

func TestResolveFinishes_StandingsOnly(t *testing.T) {
	t.Parallel()

	got, err := ResolveFinishes(nil, []tournament.Standing{{Player: "x"}, {Player: "y"}, {Player: "x"}})
	if err != nil {
		t.Fatalf("ResolveFinishes: %v", err)
	}
	want := map[string]int{"x": 1, "y": 2}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("finishes mismatch (-want +got):\n%s", diff)
	}
}

func TestResolveFinishes_UnknownMedal(t *testing.T) {
	t.Parallel()

	_, err := ResolveFinishes([]tournament.Finalist{{Medal: "t16", Player: "A"}}, nil)
	if !errors.Is(err, ErrInvalidFinish) {
		t.Fatalf("expected ErrInvalidFinish, got %v", err)
	}
	if kind := ErrorKind(err); kind != "invalid_finish" {
		t.Fatalf("unexpected error kind %q", kind)
	}
}
