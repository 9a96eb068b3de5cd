package tournament

import "time"

// Wins is the number of games a competitor won in one reported match.
type Wins int

const (
	WinsZero Wins = 0
	WinsOne  Wins = 1
	WinsTwo  Wins = 2
)

// Timing tags the phase a match was played in.
type Timing int

const (
	TimingMain   Timing = 1
	TimingFinals Timing = 2
)

type Medal string

const (
	MedalWinner   Medal = "1st"
	MedalRunnerUp Medal = "2nd"
	MedalTop4     Medal = "t4"
	MedalTop8     Medal = "t8"
)

type Structure string

const (
	StructureSingleElimination Structure = "Single Elimination"
	StructureSwissBlossom      Structure = "Swiss (Blossom)"
	StructureSwiss             Structure = "Swiss"
	StructureLeague            Structure = "League"
	StructureLeagueMatch       Structure = "League Match"
)

type Archetype string

const (
	ArchetypeAggro        Archetype = "Aggro"
	ArchetypeControl      Archetype = "Control"
	ArchetypeCombo        Archetype = "Combo"
	ArchetypeAggroControl Archetype = "Aggro-Control"
	ArchetypeAggroCombo   Archetype = "Aggro-Combo"
	ArchetypeComboControl Archetype = "Combo-Control"
	ArchetypeRamp         Archetype = "Ramp"
	ArchetypeMidrange     Archetype = "Midrange"
	ArchetypeUnclassified Archetype = "Unclassified"
)

// Verification is kept as an opaque tag. The feed only documents "verified";
// the encoding of an unverified match is unknown, so absent/null is recorded
// as not set and any other value is carried through untouched.
type Verification struct {
	Tag string
	Set bool
}

const verifiedTag = "verified"

func (v Verification) Verified() bool {
	return v.Set && v.Tag == verifiedTag
}

// RawEvent is one undecoded entry of the recent-events feed.
type RawEvent struct {
	Name    string
	Series  string
	Payload []byte
}

// Event is one tournament as reported by the feed. It only lives for the
// duration of one ingestion pass.
type Event struct {
	Series        string
	Season        int
	Number        int
	Host          string
	Cohost        string
	Active        bool
	Finalized     bool
	CurrentRound  int
	Start         time.Time
	MainRounds    int
	MainStructure Structure
	FinalRounds   int
	FinalStruct   Structure
	Room          string
	Matches       []ReportedMatch
	Unreported    []string
	Decks         []ReportedDeck
	Finalists     []Finalist
	Standings     []Standing
	Players       map[string]Player
}

func (e Event) TotalRounds() int {
	return e.MainRounds + e.FinalRounds
}

// PlayerList returns the roster in a stable order.
func (e Event) PlayerList() []Player {
	out := make([]Player, 0, len(e.Players))
	for _, name := range sortedKeys(e.Players) {
		out = append(out, e.Players[name])
	}
	return out
}

type ReportedMatch struct {
	ID           int64
	PlayerA      string
	PlayerAWins  Wins
	PlayerB      string
	PlayerBWins  Wins
	Timing       Timing
	Round        int
	Verification Verification
}

type ReportedDeck struct {
	ID         int64
	Found      bool
	PlayerName string
	Name       string
	Archetype  Archetype
	Notes      string
	Maindeck   map[string]int
	Sideboard  map[string]int
}

type Finalist struct {
	Medal  Medal
	Player string
	DeckID int64
}

type Standing struct {
	Player        string
	Active        bool
	Score         int
	MatchesPlayed int
	MatchesWon    int
	Draws         int
	GamesWon      int
	GamesPlayed   int
	Byes          int
	OPMatch       string
	PLGame        string
	OPGame        string
	Seed          int
}

// Player links a feed display name to usernames on other platforms. The MTGO
// username is the durable join key against persisted decks.
type Player struct {
	Name          string
	Verified      bool
	DiscordID     int64
	DiscordHandle string
	MTGAUsername  string
	MTGOUsername  string
}
