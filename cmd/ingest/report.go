package main

import (
	"fmt"
	"io"
	"text/tabwriter"
	"time"

	"github.com/riskibarqy/decksite-ingest/internal/domain/alias"
	"github.com/riskibarqy/decksite-ingest/internal/usecase"
)

func printReport(w io.Writer, report usecase.BatchReport) {
	fmt.Fprintf(w, "fetched=%d filtered=%d ingested=%d skipped=%d failed=%d duration=%s\n",
		report.Fetched,
		report.Filtered,
		report.Ingested,
		report.Skipped,
		report.Failed,
		report.FinishedAt.Sub(report.StartedAt).Round(time.Millisecond),
	)
	if len(report.Outcomes) == 0 {
		return
	}

	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "TOURNAMENT\tSTATUS\tCOMPETITION\tDECKS\tMATCHES\tERROR")
	for _, o := range report.Outcomes {
		writeOutcomeRow(tw, o)
	}
	_ = tw.Flush()
}

func printOutcome(w io.Writer, outcome usecase.TournamentOutcome) {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "TOURNAMENT\tSTATUS\tCOMPETITION\tDECKS\tMATCHES\tERROR")
	writeOutcomeRow(tw, outcome)
	_ = tw.Flush()
}

func writeOutcomeRow(w io.Writer, o usecase.TournamentOutcome) {
	errText := ""
	if o.Error != "" {
		errText = o.ErrorKind + ": " + o.Error
	}
	competition := "-"
	if o.CompetitionID > 0 {
		competition = fmt.Sprintf("%d", o.CompetitionID)
	}
	fmt.Fprintf(w, "%s\t%s\t%s\t%d\t%d\t%s\n", o.Name, o.Status, competition, o.Decks, o.Matches, errText)
}

func printAliases(w io.Writer, items []alias.Alias) {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ALIAS\tMTGO USERNAME")
	for _, item := range items {
		fmt.Fprintf(tw, "%s\t%s\n", item.Alias, item.MTGOUsername)
	}
	_ = tw.Flush()
}
