package gatherling

import (
	"bytes"
	"fmt"
	"strconv"
	"strings"

	sonic "github.com/bytedance/sonic"
)

// The feed is produced by PHP: numbers sometimes arrive quoted, booleans as
// 0/1, and empty objects as [].

type flexInt int64

func (f *flexInt) UnmarshalJSON(data []byte) error {
	text := strings.TrimSpace(string(data))
	if text == "null" {
		*f = 0
		return nil
	}
	if strings.HasPrefix(text, `"`) {
		unquoted, err := strconv.Unquote(text)
		if err != nil {
			return fmt.Errorf("invalid quoted number %s", text)
		}
		text = strings.TrimSpace(unquoted)
		if text == "" {
			*f = 0
			return nil
		}
	}
	v, err := strconv.ParseInt(text, 10, 64)
	if err != nil {
		return fmt.Errorf("invalid integer %s", text)
	}
	*f = flexInt(v)
	return nil
}

type flexBool bool

func (f *flexBool) UnmarshalJSON(data []byte) error {
	text := strings.Trim(strings.TrimSpace(string(data)), `"`)
	switch strings.ToLower(text) {
	case "", "null", "0", "false":
		*f = false
	case "1", "true":
		*f = true
	default:
		return fmt.Errorf("invalid boolean %s", string(data))
	}
	return nil
}

// flexString accepts a string or a bare number, keeping the literal text.
type flexString string

func (f *flexString) UnmarshalJSON(data []byte) error {
	text := strings.TrimSpace(string(data))
	switch {
	case text == "null":
		*f = ""
	case strings.HasPrefix(text, `"`):
		var s string
		if err := sonic.Unmarshal(data, &s); err != nil {
			return err
		}
		*f = flexString(s)
	default:
		if _, err := strconv.ParseFloat(text, 64); err != nil {
			return fmt.Errorf("invalid scalar %s", text)
		}
		*f = flexString(text)
	}
	return nil
}

// phpMap decodes a JSON object, treating [] and null as empty.
type phpMap[V any] map[string]V

func (m *phpMap[V]) UnmarshalJSON(data []byte) error {
	trimmed := bytes.TrimSpace(data)
	if bytes.Equal(trimmed, []byte("null")) || bytes.Equal(trimmed, []byte("[]")) {
		*m = phpMap[V]{}
		return nil
	}
	out := map[string]V{}
	if err := sonic.Unmarshal(trimmed, &out); err != nil {
		return err
	}
	*m = out
	return nil
}

type wireEvent struct {
	Series       string             `json:"series" validate:"required"`
	Season       flexInt            `json:"season" validate:"min=0"`
	Number       flexInt            `json:"number" validate:"min=0"`
	Host         *string            `json:"host"`
	Cohost       *string            `json:"cohost"`
	Active       flexBool           `json:"active"`
	Finalized    flexBool           `json:"finalized"`
	CurrentRound flexInt            `json:"current_round" validate:"min=0"`
	Start        string             `json:"start" validate:"required"`
	MainRounds   *flexInt           `json:"mainrounds" validate:"required,min=0"`
	MainStruct   string             `json:"mainstruct"`
	FinalRounds  *flexInt           `json:"finalrounds" validate:"required,min=0"`
	FinalStruct  string             `json:"finalstruct"`
	Room         *string            `json:"mtgo_room"`
	Matches      []wireMatch        `json:"matches" validate:"dive"`
	Unreported   []string           `json:"unreported" validate:"dive,required"`
	Decks        []wireDeck         `json:"decks" validate:"dive"`
	Finalists    []wireFinalist     `json:"finalists" validate:"dive"`
	Standings    []wireStanding     `json:"standings" validate:"dive"`
	Players      phpMap[wirePlayer] `json:"players" validate:"dive"`
}

type wireMatch struct {
	ID           flexInt  `json:"id"`
	PlayerA      string   `json:"playera" validate:"required"`
	PlayerAWins  *flexInt `json:"playera_wins" validate:"required"`
	PlayerB      string   `json:"playerb" validate:"required"`
	PlayerBWins  *flexInt `json:"playerb_wins" validate:"required"`
	Timing       *flexInt `json:"timing" validate:"required"`
	Round        *flexInt `json:"round" validate:"required,min=1"`
	Verification *string  `json:"verification"`
}

type wireDeck struct {
	ID         flexInt         `json:"id" validate:"required,min=1"`
	Found      flexBool        `json:"found"`
	PlayerName string          `json:"playername" validate:"required"`
	Name       string          `json:"name"`
	Archetype  *string         `json:"archetype"`
	Notes      *string         `json:"notes"`
	Maindeck   phpMap[flexInt] `json:"maindeck"`
	Sideboard  phpMap[flexInt] `json:"sideboard"`
}

type wireFinalist struct {
	Medal  string  `json:"medal" validate:"required,oneof=1st 2nd t4 t8"`
	Player string  `json:"player" validate:"required"`
	Deck   flexInt `json:"deck"`
}

type wireStanding struct {
	Player        string     `json:"player" validate:"required"`
	Active        flexBool   `json:"active"`
	Score         flexInt    `json:"score"`
	MatchesPlayed flexInt    `json:"matches_played" validate:"min=0"`
	MatchesWon    flexInt    `json:"matches_won" validate:"min=0"`
	Draws         flexInt    `json:"draws" validate:"min=0"`
	GamesWon      flexInt    `json:"games_won" validate:"min=0"`
	GamesPlayed   flexInt    `json:"games_played" validate:"min=0"`
	Byes          flexInt    `json:"byes" validate:"min=0"`
	OPMatch       flexString `json:"OP_Match"`
	PLGame        flexString `json:"PL_Game"`
	OPGame        flexString `json:"OP_Game"`
	Seed          flexInt    `json:"seed"`
}

type wirePlayer struct {
	Name          string   `json:"name" validate:"required"`
	Verified      flexBool `json:"verified"`
	DiscordID     flexInt  `json:"discord_id"`
	DiscordHandle *string  `json:"discord_handle"`
	MTGAUsername  *string  `json:"mtga_username"`
	MTGOUsername  *string  `json:"mtgo_username"`
}

type seriesProbe struct {
	Series string `json:"series"`
}
