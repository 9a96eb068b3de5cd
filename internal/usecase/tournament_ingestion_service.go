package usecase

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/riskibarqy/decksite-ingest/internal/domain/alias"
	"github.com/riskibarqy/decksite-ingest/internal/domain/competition"
	"github.com/riskibarqy/decksite-ingest/internal/domain/deck"
	"github.com/riskibarqy/decksite-ingest/internal/domain/tournament"
	"github.com/riskibarqy/decksite-ingest/internal/platform/logging"
)

type IngestionStatus string

const (
	IngestionStatusIngested IngestionStatus = "ingested"
	IngestionStatusSkipped  IngestionStatus = "skipped"
	IngestionStatusFailed   IngestionStatus = "failed"
)

type TournamentOutcome struct {
	Name             string          `json:"name"`
	Series           string          `json:"series"`
	Status           IngestionStatus `json:"status"`
	CompetitionID    int64           `json:"competition_id,omitempty"`
	Decks            int             `json:"decks,omitempty"`
	Matches          int             `json:"matches,omitempty"`
	ArchetypesTagged int             `json:"archetypes_tagged,omitempty"`
	ErrorKind        string          `json:"error_kind,omitempty"`
	Error            string          `json:"error,omitempty"`
}

type BatchReport struct {
	StartedAt  time.Time           `json:"started_at"`
	FinishedAt time.Time           `json:"finished_at"`
	Fetched    int                 `json:"fetched"`
	Filtered   int                 `json:"filtered"`
	Ingested   int                 `json:"ingested"`
	Skipped    int                 `json:"skipped"`
	Failed     int                 `json:"failed"`
	Outcomes   []TournamentOutcome `json:"outcomes"`
}

func (r *BatchReport) record(outcome TournamentOutcome) {
	switch outcome.Status {
	case IngestionStatusIngested:
		r.Ingested++
	case IngestionStatusSkipped:
		r.Skipped++
	case IngestionStatusFailed:
		r.Failed++
	}
	r.Outcomes = append(r.Outcomes, outcome)
}

type TournamentIngestionConfig struct {
	FetchMissingDecklists bool
	SimilarCandidateLimit int
}

// TournamentIngestionService ingests each tournament in its own transaction.
type TournamentIngestionService struct {
	feed         TournamentFeed
	decklists    DecklistFetcher
	competitions competition.Repository
	tx           TxRunner
	seriesSvc    *SeriesService
	aliasSvc     *AliasService
	archive      *EventArchive
	inserter     *CompetitionInserter
	deckRecon    *DeckReconciler
	matchRecon   *MatchReconciler
	archetypes   *ArchetypeInference
	cfg          TournamentIngestionConfig
	logger       *logging.Logger
	now          func() time.Time
	running      sync.Mutex
}

func NewTournamentIngestionService(
	feed TournamentFeed,
	decklists DecklistFetcher,
	competitions competition.Repository,
	tx TxRunner,
	seriesSvc *SeriesService,
	aliasSvc *AliasService,
	parser *DecklistParser,
	archive *EventArchive,
	cfg TournamentIngestionConfig,
	logger *logging.Logger,
) *TournamentIngestionService {
	if logger == nil {
		logger = logging.Default()
	}
	return &TournamentIngestionService{
		feed:         feed,
		decklists:    decklists,
		competitions: competitions,
		tx:           tx,
		seriesSvc:    seriesSvc,
		aliasSvc:     aliasSvc,
		archive:      archive,
		inserter:     NewCompetitionInserter(),
		deckRecon:    NewDeckReconciler(parser, feed.DeckURL, logger),
		matchRecon:   NewMatchReconciler(),
		archetypes:   NewArchetypeInference(cfg.SimilarCandidateLimit, logger),
		cfg:          cfg,
		logger:       logger,
		now:          time.Now,
	}
}

// RunBatch returns ErrBatchRunning while another batch is in progress.
func (s *TournamentIngestionService) RunBatch(ctx context.Context) (BatchReport, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.TournamentIngestionService.RunBatch")
	defer span.End()

	if !s.running.TryLock() {
		return BatchReport{}, ErrBatchRunning
	}
	defer s.running.Unlock()

	report := BatchReport{StartedAt: s.now().UTC(), Outcomes: []TournamentOutcome{}}

	events, err := s.feed.FetchRecentEvents(ctx)
	if err != nil {
		return report, fmt.Errorf("fetch recent events: %w", err)
	}
	report.Fetched = len(events)

	aliases, err := s.aliasSvc.Snapshot(ctx)
	if err != nil {
		return report, err
	}

	s.logger.InfoContext(ctx, "ingestion batch started", "fetched", len(events), "aliases", aliases.Len())
	for _, raw := range events {
		if err := ctx.Err(); err != nil {
			report.FinishedAt = s.now().UTC()
			return report, err
		}

		interesting, err := s.seriesSvc.IsInteresting(ctx, raw.Series)
		if err != nil {
			report.record(s.failed(ctx, raw, "", err))
			continue
		}
		if !interesting {
			report.Filtered++
			s.logger.DebugContext(ctx, "tournament series not registered", "tournament", raw.Name, "series", raw.Series)
			continue
		}

		report.record(s.ingest(ctx, raw, aliases))
	}
	report.FinishedAt = s.now().UTC()

	s.logger.InfoContext(ctx, "ingestion batch finished",
		"fetched", report.Fetched,
		"filtered", report.Filtered,
		"ingested", report.Ingested,
		"skipped", report.Skipped,
		"failed", report.Failed,
		"duration", report.FinishedAt.Sub(report.StartedAt),
	)
	return report, nil
}

// IngestTournament runs one raw event through the pipeline with the current
// alias snapshot. The series allow-list is not consulted.
func (s *TournamentIngestionService) IngestTournament(ctx context.Context, raw tournament.RawEvent) (TournamentOutcome, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.TournamentIngestionService.IngestTournament")
	defer span.End()

	aliases, err := s.aliasSvc.Snapshot(ctx)
	if err != nil {
		return TournamentOutcome{}, err
	}
	return s.ingest(ctx, raw, aliases), nil
}

func (s *TournamentIngestionService) ingest(ctx context.Context, raw tournament.RawEvent, aliases *alias.Table) TournamentOutcome {
	event, err := s.feed.DecodeEvent(raw)
	if err != nil {
		return s.failed(ctx, raw, "", err)
	}

	existing, err := s.competitions.ListByName(ctx, raw.Name)
	if err != nil {
		return s.failed(ctx, raw, event.Series, fmt.Errorf("lookup competition: %w", err))
	}
	if len(existing) > 0 {
		s.logger.InfoContext(ctx, "tournament already ingested", "tournament", raw.Name, "competition_id", existing[0].ID)
		return TournamentOutcome{
			Name:          raw.Name,
			Series:        event.Series,
			Status:        IngestionStatusSkipped,
			CompetitionID: existing[0].ID,
		}
	}

	finishes, err := ResolveFinishes(event.Finalists, event.Standings)
	if err != nil {
		return s.failed(ctx, raw, event.Series, err)
	}

	if s.cfg.FetchMissingDecklists && s.decklists != nil {
		s.fillMissingDecklists(ctx, &event)
	}

	outcome := TournamentOutcome{Name: raw.Name, Series: event.Series, Status: IngestionStatusIngested}
	err = s.tx.WithinTx(ctx, func(ctx context.Context, tx TournamentTx) error {
		competitionID, err := s.inserter.Insert(ctx, tx.Competitions(), CompetitionInput{
			Name:        raw.Name,
			Date:        event.Start,
			Series:      event.Series,
			URL:         s.feed.EventReportURL(raw.Name),
			FinalRounds: event.FinalRounds,
		})
		if err != nil {
			return err
		}

		reconciled, err := s.deckRecon.Reconcile(ctx, tx.Decks(), DeckReconcileInput{
			CompetitionID: competitionID,
			Date:          event.Start,
			Decks:         event.Decks,
			Finishes:      finishes,
			Players:       event.PlayerList(),
			Aliases:       aliases,
		})
		if err != nil {
			return err
		}

		matches, err := s.matchRecon.Reconcile(ctx, tx.Matches(), MatchReconcileInput{
			Date:        event.Start,
			Decks:       reconciled,
			Matches:     event.Matches,
			TotalRounds: event.TotalRounds(),
			Aliases:     aliases,
		})
		if err != nil {
			return err
		}

		fresh := make([]deck.Deck, 0, len(reconciled))
		for _, item := range reconciled {
			fresh = append(fresh, item.Deck)
		}

		outcome.CompetitionID = competitionID
		outcome.Decks = len(reconciled)
		outcome.Matches = matches
		outcome.ArchetypesTagged = s.archetypes.Infer(ctx, tx.Decks(), tx.Archetypes(), fresh)
		return nil
	})
	if err != nil {
		return s.failed(ctx, raw, event.Series, err)
	}

	if err := s.archive.Archive(ctx, raw); err != nil {
		s.logger.WarnContext(ctx, "archive raw event failed", "tournament", raw.Name, "error", err)
	}
	s.logger.InfoContext(ctx, "tournament ingested",
		"tournament", raw.Name,
		"competition_id", outcome.CompetitionID,
		"decks", outcome.Decks,
		"matches", outcome.Matches,
		"archetypes_tagged", outcome.ArchetypesTagged,
	)
	return outcome
}

func (s *TournamentIngestionService) failed(ctx context.Context, raw tournament.RawEvent, series string, err error) TournamentOutcome {
	if series == "" {
		series = raw.Series
	}
	kind := ErrorKind(err)
	s.logger.WarnContext(ctx, "tournament ingestion failed",
		"tournament", raw.Name,
		"series", series,
		"kind", kind,
		"error", err,
	)
	return TournamentOutcome{
		Name:      raw.Name,
		Series:    series,
		Status:    IngestionStatusFailed,
		ErrorKind: kind,
		Error:     err.Error(),
	}
}

// fillMissingDecklists downloads decklists the feed marks as found but ships
// without cards. Failures leave the deck empty.
func (s *TournamentIngestionService) fillMissingDecklists(ctx context.Context, event *tournament.Event) {
	ids := make([]int64, 0)
	for _, d := range event.Decks {
		if d.Found && len(d.Maindeck)+len(d.Sideboard) == 0 {
			ids = append(ids, d.ID)
		}
	}
	if len(ids) == 0 {
		return
	}

	texts, err := s.decklists.FetchDecklists(ctx, ids)
	if err != nil {
		s.logger.WarnContext(ctx, "fetch missing decklists failed", "requested", len(ids), "fetched", len(texts), "error", err)
	}
	for i := range event.Decks {
		text, ok := texts[event.Decks[i].ID]
		if !ok {
			continue
		}
		list, err := deck.ParseText(text)
		if err != nil {
			s.logger.WarnContext(ctx, "downloaded decklist unreadable", "deck_id", event.Decks[i].ID, "error", err)
			continue
		}
		event.Decks[i].Maindeck = list.Maindeck
		event.Decks[i].Sideboard = list.Sideboard
	}
}
