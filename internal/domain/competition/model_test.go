package competition

import "testing"

func TestTopFromFinalRounds(t *testing.T) {
	t.Parallel()

	cases := []struct {
		rounds  int
		want    Top
		wantErr bool
	}{
		{rounds: 0, want: TopNone},
		{rounds: 1, want: TopTwo},
		{rounds: 2, want: TopFour},
		{rounds: 3, want: TopEight},
		{rounds: 4, want: TopSixteen},
		{rounds: 6, wantErr: true},
		{rounds: -1, wantErr: true},
	}

	for _, tc := range cases {
		got, err := TopFromFinalRounds(tc.rounds)
		if tc.wantErr {
			if err == nil {
				t.Fatalf("rounds=%d: expected error, got top=%d", tc.rounds, got)
			}
			continue
		}
		if err != nil {
			t.Fatalf("rounds=%d: unexpected error: %v", tc.rounds, err)
		}
		if got != tc.want {
			t.Fatalf("rounds=%d: got=%d want=%d", tc.rounds, got, tc.want)
		}
	}
}
