package gatherling

import (
	stderrors "errors"
	"fmt"
	"reflect"
	"strings"
	"time"

	sonic "github.com/bytedance/sonic"
	"github.com/go-playground/validator/v10"

	"github.com/riskibarqy/decksite-ingest/internal/domain/tournament"
	"github.com/riskibarqy/decksite-ingest/internal/usecase"
)

var startLayouts = []string{
	"2006-01-02 15:04:05",
	time.RFC3339,
	"2006-01-02",
}

var eventValidator = newEventValidator()

func newEventValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(field reflect.StructField) string {
		name := strings.SplitN(field.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// DecodeEvent validates one feed entry and converts it into a typed event.
// The first offending value aborts the whole event with a SchemaError naming
// its JSON path.
func DecodeEvent(raw tournament.RawEvent) (tournament.Event, error) {
	var w wireEvent
	if err := sonic.Unmarshal(raw.Payload, &w); err != nil {
		return tournament.Event{}, usecase.NewSchemaError("", "decode event %q: %v", raw.Name, err)
	}
	if err := eventValidator.Struct(w); err != nil {
		return tournament.Event{}, validationError(err)
	}
	return w.toEvent()
}

func validationError(err error) error {
	var fieldErrs validator.ValidationErrors
	if !stderrors.As(err, &fieldErrs) || len(fieldErrs) == 0 {
		return usecase.NewSchemaError("", "%v", err)
	}
	first := fieldErrs[0]
	path := first.Namespace()
	if idx := strings.Index(path, "."); idx >= 0 {
		path = path[idx+1:]
	}
	if first.Param() != "" {
		return usecase.NewSchemaError(path, "failed %s=%s validation (got %v)", first.Tag(), first.Param(), first.Value())
	}
	return usecase.NewSchemaError(path, "failed %s validation", first.Tag())
}

func (w wireEvent) toEvent() (tournament.Event, error) {
	start, err := parseStart(w.Start)
	if err != nil {
		return tournament.Event{}, usecase.NewSchemaError("start", "%v", err)
	}
	mainStruct, err := parseStructure("mainstruct", w.MainStruct)
	if err != nil {
		return tournament.Event{}, err
	}
	finalStruct, err := parseStructure("finalstruct", w.FinalStruct)
	if err != nil {
		return tournament.Event{}, err
	}

	out := tournament.Event{
		Series:        strings.TrimSpace(w.Series),
		Season:        int(w.Season),
		Number:        int(w.Number),
		Host:          deref(w.Host),
		Cohost:        deref(w.Cohost),
		Active:        bool(w.Active),
		Finalized:     bool(w.Finalized),
		CurrentRound:  int(w.CurrentRound),
		Start:         start,
		MainRounds:    int(*w.MainRounds),
		MainStructure: mainStruct,
		FinalRounds:   int(*w.FinalRounds),
		FinalStruct:   finalStruct,
		Room:          deref(w.Room),
		Unreported:    append([]string{}, w.Unreported...),
		Matches:       make([]tournament.ReportedMatch, 0, len(w.Matches)),
		Decks:         make([]tournament.ReportedDeck, 0, len(w.Decks)),
		Finalists:     make([]tournament.Finalist, 0, len(w.Finalists)),
		Standings:     make([]tournament.Standing, 0, len(w.Standings)),
		Players:       make(map[string]tournament.Player, len(w.Players)),
	}

	for i, m := range w.Matches {
		converted, err := m.toMatch(fmt.Sprintf("matches[%d]", i))
		if err != nil {
			return tournament.Event{}, err
		}
		out.Matches = append(out.Matches, converted)
	}
	for i, d := range w.Decks {
		converted, err := d.toDeck(fmt.Sprintf("decks[%d]", i))
		if err != nil {
			return tournament.Event{}, err
		}
		out.Decks = append(out.Decks, converted)
	}
	for i, f := range w.Finalists {
		medal, ok := tournament.ParseMedal(f.Medal)
		if !ok {
			return tournament.Event{}, usecase.NewSchemaError(fmt.Sprintf("finalists[%d].medal", i), "unknown medal %q", f.Medal)
		}
		out.Finalists = append(out.Finalists, tournament.Finalist{Medal: medal, Player: f.Player, DeckID: int64(f.Deck)})
	}
	for _, s := range w.Standings {
		out.Standings = append(out.Standings, tournament.Standing{
			Player:        s.Player,
			Active:        bool(s.Active),
			Score:         int(s.Score),
			MatchesPlayed: int(s.MatchesPlayed),
			MatchesWon:    int(s.MatchesWon),
			Draws:         int(s.Draws),
			GamesWon:      int(s.GamesWon),
			GamesPlayed:   int(s.GamesPlayed),
			Byes:          int(s.Byes),
			OPMatch:       string(s.OPMatch),
			PLGame:        string(s.PLGame),
			OPGame:        string(s.OPGame),
			Seed:          int(s.Seed),
		})
	}
	for key, p := range w.Players {
		out.Players[key] = tournament.Player{
			Name:          p.Name,
			Verified:      bool(p.Verified),
			DiscordID:     int64(p.DiscordID),
			DiscordHandle: deref(p.DiscordHandle),
			MTGAUsername:  deref(p.MTGAUsername),
			MTGOUsername:  deref(p.MTGOUsername),
		}
	}
	return out, nil
}

func (m wireMatch) toMatch(path string) (tournament.ReportedMatch, error) {
	winsA, ok := tournament.ParseWins(int(*m.PlayerAWins))
	if !ok {
		return tournament.ReportedMatch{}, usecase.NewSchemaError(path+".playera_wins", "unknown win count %d", int(*m.PlayerAWins))
	}
	winsB, ok := tournament.ParseWins(int(*m.PlayerBWins))
	if !ok {
		return tournament.ReportedMatch{}, usecase.NewSchemaError(path+".playerb_wins", "unknown win count %d", int(*m.PlayerBWins))
	}
	timing, ok := tournament.ParseTiming(int(*m.Timing))
	if !ok {
		return tournament.ReportedMatch{}, usecase.NewSchemaError(path+".timing", "unknown timing %d", int(*m.Timing))
	}

	verification := tournament.Verification{}
	if m.Verification != nil {
		verification = tournament.Verification{Tag: *m.Verification, Set: true}
	}
	return tournament.ReportedMatch{
		ID:           int64(m.ID),
		PlayerA:      m.PlayerA,
		PlayerAWins:  winsA,
		PlayerB:      m.PlayerB,
		PlayerBWins:  winsB,
		Timing:       timing,
		Round:        int(*m.Round),
		Verification: verification,
	}, nil
}

func (d wireDeck) toDeck(path string) (tournament.ReportedDeck, error) {
	archetype := tournament.ArchetypeUnclassified
	if raw := strings.TrimSpace(deref(d.Archetype)); raw != "" {
		parsed, ok := tournament.ParseArchetype(raw)
		if !ok {
			return tournament.ReportedDeck{}, usecase.NewSchemaError(path+".archetype", "unknown archetype %q", raw)
		}
		archetype = parsed
	}

	maindeck, err := cardCounts(path+".maindeck", d.Maindeck)
	if err != nil {
		return tournament.ReportedDeck{}, err
	}
	sideboard, err := cardCounts(path+".sideboard", d.Sideboard)
	if err != nil {
		return tournament.ReportedDeck{}, err
	}

	return tournament.ReportedDeck{
		ID:         int64(d.ID),
		Found:      bool(d.Found),
		PlayerName: d.PlayerName,
		Name:       strings.TrimSpace(d.Name),
		Archetype:  archetype,
		Notes:      deref(d.Notes),
		Maindeck:   maindeck,
		Sideboard:  sideboard,
	}, nil
}

func cardCounts(path string, board phpMap[flexInt]) (map[string]int, error) {
	out := make(map[string]int, len(board))
	for name, count := range board {
		if count < 0 {
			return nil, usecase.NewSchemaError(path+"."+name, "negative card count %d", int(count))
		}
		if count == 0 {
			continue
		}
		out[name] = int(count)
	}
	return out, nil
}

func parseStructure(field, raw string) (tournament.Structure, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", nil
	}
	s, ok := tournament.ParseStructure(raw)
	if !ok {
		return "", usecase.NewSchemaError(field, "unknown structure %q", raw)
	}
	return s, nil
}

func parseStart(raw string) (time.Time, error) {
	raw = strings.TrimSpace(raw)
	for _, layout := range startLayouts {
		if parsed, err := time.ParseInLocation(layout, raw, time.UTC); err == nil {
			return parsed.UTC(), nil
		}
	}
	return time.Time{}, fmt.Errorf("unparseable date %q", raw)
}

func deref(v *string) string {
	if v == nil {
		return ""
	}
	return strings.TrimSpace(*v)
}
