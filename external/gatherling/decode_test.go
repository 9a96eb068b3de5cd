package gatherling

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/riskibarqy/decksite-ingest/internal/domain/tournament"
	"github.com/riskibarqy/decksite-ingest/internal/usecase"
)

const validEvent = `{
	"series": "Penny Dreadful Thursdays",
	"season": "2",
	"number": 5,
	"host": "host_a",
	"cohost": null,
	"active": 0,
	"finalized": "1",
	"current_round": 5,
	"start": "2024-03-07 18:30:00",
	"mainrounds": "3",
	"mainstruct": "Swiss",
	"finalrounds": 2,
	"finalstruct": "Single Elimination",
	"mtgo_room": "#pdt",
	"unreported": [],
	"matches": [
		{"id": "10", "playera": "alice", "playera_wins": 2, "playerb": "bob", "playerb_wins": "1", "timing": 1, "round": 1, "verification": "verified"},
		{"id": 11, "playera": "eve", "playera_wins": 0, "playerb": "eve", "playerb_wins": 0, "timing": 1, "round": 1, "verification": null}
	],
	"decks": [
		{"id": 100, "found": 1, "playername": "alice", "name": " Mono Red ", "archetype": "Aggro", "notes": null, "maindeck": {"Mountain": "20", "Lightning Bolt": 4}, "sideboard": []},
		{"id": "101", "found": 0, "playername": "bob", "name": "Pile", "archetype": "", "maindeck": [], "sideboard": null}
	],
	"finalists": [
		{"medal": "1st", "player": "alice", "deck": 100},
		{"medal": "2nd", "player": "bob", "deck": "101"}
	],
	"standings": [
		{"player": "alice", "active": 1, "score": 9, "matches_played": 3, "matches_won": 3, "draws": 0, "games_won": 6, "games_played": 7, "byes": 0, "OP_Match": 0.5, "PL_Game": "0.857", "OP_Game": null, "seed": 1}
	],
	"players": {
		"alice": {"name": "alice", "verified": true, "discord_id": "12345", "discord_handle": "alice#1", "mtga_username": null, "mtgo_username": "alice_mtgo"}
	}
}`

func TestDecodeEvent_AcceptsFeedQuirks(t *testing.T) {
	t.Parallel()

	event, err := DecodeEvent(tournament.RawEvent{Name: "PDT 2.05", Payload: []byte(validEvent)})
	require.NoError(t, err)

	assert.Equal(t, "Penny Dreadful Thursdays", event.Series)
	assert.Equal(t, 2, event.Season)
	assert.True(t, event.Finalized)
	assert.False(t, event.Active)
	assert.Equal(t, time.Date(2024, 3, 7, 18, 30, 0, 0, time.UTC), event.Start)
	assert.Equal(t, 5, event.TotalRounds())
	assert.Equal(t, tournament.StructureSwiss, event.MainStructure)
	assert.Equal(t, tournament.StructureSingleElimination, event.FinalStruct)

	require.Len(t, event.Matches, 2)
	assert.Equal(t, tournament.WinsOne, event.Matches[0].PlayerBWins)
	assert.True(t, event.Matches[0].Verification.Verified())
	assert.False(t, event.Matches[1].Verification.Set)

	require.Len(t, event.Decks, 2)
	assert.Equal(t, "Mono Red", event.Decks[0].Name)
	assert.Equal(t, map[string]int{"Mountain": 20, "Lightning Bolt": 4}, event.Decks[0].Maindeck)
	assert.Empty(t, event.Decks[0].Sideboard)
	assert.Equal(t, tournament.ArchetypeUnclassified, event.Decks[1].Archetype)
	assert.False(t, event.Decks[1].Found)
	assert.Empty(t, event.Decks[1].Maindeck)

	assert.Equal(t, int64(101), event.Finalists[1].DeckID)
	assert.Equal(t, "0.5", event.Standings[0].OPMatch)
	assert.Equal(t, "", event.Standings[0].OPGame)

	player := event.Players["alice"]
	assert.Equal(t, int64(12345), player.DiscordID)
	assert.Equal(t, "alice_mtgo", player.MTGOUsername)
	assert.Empty(t, player.MTGAUsername)
}

func TestDecodeEvent_EmptyPlayersArray(t *testing.T) {
	t.Parallel()

	payload := strings.Replace(validEvent, `"players": {
		"alice": {"name": "alice", "verified": true, "discord_id": "12345", "discord_handle": "alice#1", "mtga_username": null, "mtgo_username": "alice_mtgo"}
	}`, `"players": []`, 1)

	event, err := DecodeEvent(tournament.RawEvent{Name: "PDT", Payload: []byte(payload)})
	require.NoError(t, err)
	assert.Empty(t, event.Players)
}

func TestDecodeEvent_SchemaErrorsNameTheField(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		old       string
		new       string
		wantField string
	}{
		{"missing series", `"series": "Penny Dreadful Thursdays",`, ``, "series"},
		{"missing main rounds", `"mainrounds": "3",`, ``, "mainrounds"},
		{"blank competitor", `"playera": "alice"`, `"playera": ""`, "matches[0].playera"},
		{"win count out of range", `"playera_wins": 2`, `"playera_wins": 3`, "matches[0].playera_wins"},
		{"unknown timing", `"timing": 1, "round": 1, "verification": "verified"`, `"timing": 7, "round": 1, "verification": "verified"`, "matches[0].timing"},
		{"round zero", `"timing": 1, "round": 1, "verification": "verified"`, `"timing": 1, "round": 0, "verification": "verified"`, "matches[0].round"},
		{"unknown medal", `"medal": "2nd"`, `"medal": "t16"`, "finalists[1].medal"},
		{"unknown archetype", `"archetype": "Aggro"`, `"archetype": "Tempo"`, "decks[0].archetype"},
		{"negative count", `"Lightning Bolt": 4`, `"Lightning Bolt": -4`, "decks[0].maindeck.Lightning Bolt"},
		{"unparseable start", `"start": "2024-03-07 18:30:00"`, `"start": "next thursday"`, "start"},
		{"unknown structure", `"mainstruct": "Swiss"`, `"mainstruct": "Round Robin"`, "mainstruct"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			payload := strings.Replace(validEvent, tc.old, tc.new, 1)
			require.NotEqual(t, validEvent, payload, "fixture replacement did not apply")

			_, err := DecodeEvent(tournament.RawEvent{Name: "PDT", Payload: []byte(payload)})
			require.Error(t, err)
			require.True(t, errors.Is(err, usecase.ErrSchema), "expected schema error, got %v", err)

			var schemaErr *usecase.SchemaError
			require.True(t, errors.As(err, &schemaErr))
			assert.Equal(t, tc.wantField, schemaErr.Field)
		})
	}
}

func TestDecodeEvent_RejectsNonJSON(t *testing.T) {
	t.Parallel()

	_, err := DecodeEvent(tournament.RawEvent{Name: "PDT", Payload: []byte(`{"series": 1`)})
	require.Error(t, err)
	assert.True(t, errors.Is(err, usecase.ErrSchema))
}

func TestParseStart_Layouts(t *testing.T) {
	t.Parallel()

	for _, raw := range []string{"2024-03-07 00:00:00", "2024-03-07T00:00:00Z", "2024-03-07"} {
		got, err := parseStart(raw)
		if err != nil {
			t.Fatalf("parse %q: %v", raw, err)
		}
		if !got.Equal(time.Date(2024, 3, 7, 0, 0, 0, 0, time.UTC)) {
			t.Fatalf("parse %q: got=%s", raw, got)
		}
	}
}
