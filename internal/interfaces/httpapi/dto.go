package httpapi

import (
	"time"

	"github.com/riskibarqy/decksite-ingest/internal/usecase"
)

type batchReportDTO struct {
	StartedAt  string                      `json:"started_at"`
	FinishedAt string                      `json:"finished_at"`
	Fetched    int                         `json:"fetched"`
	Filtered   int                         `json:"filtered"`
	Ingested   int                         `json:"ingested"`
	Skipped    int                         `json:"skipped"`
	Failed     int                         `json:"failed"`
	Outcomes   []usecase.TournamentOutcome `json:"outcomes"`
}

type competitionDTO struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Series    string    `json:"series"`
	StartDate string    `json:"start_date"`
	EndDate   string    `json:"end_date"`
	URL       string    `json:"url"`
	Top       int       `json:"top"`
	Decks     []deckDTO `json:"decks"`
}

type deckDTO struct {
	ID           int64  `json:"id"`
	Name         string `json:"name"`
	MTGOUsername string `json:"mtgo_username"`
	Finish       int    `json:"finish"`
	URL          string `json:"url"`
	Archetype    string `json:"archetype,omitempty"`
	Wins         int    `json:"wins"`
	Losses       int    `json:"losses"`
	Draws        int    `json:"draws"`
}

func batchReportToDTO(report usecase.BatchReport) batchReportDTO {
	outcomes := report.Outcomes
	if outcomes == nil {
		outcomes = []usecase.TournamentOutcome{}
	}
	return batchReportDTO{
		StartedAt:  formatTime(report.StartedAt),
		FinishedAt: formatTime(report.FinishedAt),
		Fetched:    report.Fetched,
		Filtered:   report.Filtered,
		Ingested:   report.Ingested,
		Skipped:    report.Skipped,
		Failed:     report.Failed,
		Outcomes:   outcomes,
	}
}

func competitionToDTO(details usecase.CompetitionDetails) competitionDTO {
	c := details.Competition
	decks := make([]deckDTO, 0, len(details.Decks))
	for _, item := range details.Decks {
		decks = append(decks, deckDTO{
			ID:           item.Deck.ID,
			Name:         item.Deck.Name,
			MTGOUsername: item.Deck.MTGOUsername,
			Finish:       item.Deck.Finish,
			URL:          item.Deck.URL,
			Archetype:    item.Deck.ArchetypeName,
			Wins:         item.Wins,
			Losses:       item.Losses,
			Draws:        item.Draws,
		})
	}

	return competitionDTO{
		ID:        c.ID,
		Name:      c.Name,
		Series:    c.Series,
		StartDate: formatTime(c.StartDate),
		EndDate:   formatTime(c.EndDate),
		URL:       c.URL,
		Top:       int(c.Top),
		Decks:     decks,
	}
}

func formatTime(v time.Time) string {
	if v.IsZero() {
		return ""
	}
	return v.UTC().Format(time.RFC3339)
}
