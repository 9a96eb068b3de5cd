package postgres

import (
	"database/sql"
	"time"
)

type competitionTableModel struct {
	ID         int64     `db:"id"`
	Name       string    `db:"name"`
	StartDate  time.Time `db:"start_date"`
	EndDate    time.Time `db:"end_date"`
	SeriesName string    `db:"series_name"`
	URL        string    `db:"url"`
	Top        int       `db:"top"`
	CreatedAt  time.Time `db:"created_at"`
}

type competitionInsertModel struct {
	Name       string    `db:"name"`
	StartDate  time.Time `db:"start_date"`
	EndDate    time.Time `db:"end_date"`
	SeriesName string    `db:"series_name"`
	URL        string    `db:"url"`
	Top        int       `db:"top"`
}

const deckColumns = "d.id, d.name, d.source, d.identifier, d.mtgo_username, d.competition_id, d.finish, d.url, d.reported_archetype, d.archetype_id, d.created_at"

type deckTableModel struct {
	ID                int64         `db:"id"`
	Name              string        `db:"name"`
	Source            string        `db:"source"`
	Identifier        string        `db:"identifier"`
	MTGOUsername      string        `db:"mtgo_username"`
	CompetitionID     int64         `db:"competition_id"`
	Finish            int           `db:"finish"`
	URL               string        `db:"url"`
	ReportedArchetype string        `db:"reported_archetype"`
	ArchetypeID       sql.NullInt64 `db:"archetype_id"`
	CreatedAt         time.Time     `db:"created_at"`
}

type deckInsertModel struct {
	Name              string    `db:"name"`
	Source            string    `db:"source"`
	Identifier        string    `db:"identifier"`
	MTGOUsername      string    `db:"mtgo_username"`
	CompetitionID     int64     `db:"competition_id"`
	Finish            int       `db:"finish"`
	URL               string    `db:"url"`
	ReportedArchetype string    `db:"reported_archetype"`
	CreatedAt         time.Time `db:"created_at"`
}

type deckCardTableModel struct {
	DeckID    int64  `db:"deck_id"`
	Card      string `db:"card"`
	N         int    `db:"n"`
	Sideboard bool   `db:"sideboard"`
}

type matchInsertModel struct {
	Date        time.Time `db:"date"`
	Round       int       `db:"round"`
	Elimination *int      `db:"elimination"`
}

type deckMatchInsertModel struct {
	DeckID  int64 `db:"deck_id"`
	MatchID int64 `db:"match_id"`
	Games   int   `db:"games"`
}

// matchSideRow is one deck's side of a match, joined with the match row.
type matchSideRow struct {
	MatchID     int64         `db:"match_id"`
	Date        time.Time     `db:"date"`
	Round       int           `db:"round"`
	Elimination sql.NullInt64 `db:"elimination"`
	DeckID      int64         `db:"deck_id"`
	Games       int           `db:"games"`
}

type archetypeGuessTableModel struct {
	DeckID      int64 `db:"deck_id"`
	ArchetypeID int64 `db:"archetype_id"`
	Confirmed   bool  `db:"confirmed"`
}

type seriesTableModel struct {
	ID   int64  `db:"id"`
	Name string `db:"name"`
}

type aliasTableModel struct {
	Alias        string `db:"alias"`
	MTGOUsername string `db:"mtgo_username"`
}
