package app

import (
	"context"
	"fmt"
	"net/http"

	"github.com/jmoiron/sqlx"

	"github.com/riskibarqy/decksite-ingest/external/gatherling"
	"github.com/riskibarqy/decksite-ingest/internal/config"
	"github.com/riskibarqy/decksite-ingest/internal/domain/card"
	"github.com/riskibarqy/decksite-ingest/internal/domain/deck"
	"github.com/riskibarqy/decksite-ingest/internal/infrastructure/repository/cache"
	"github.com/riskibarqy/decksite-ingest/internal/infrastructure/repository/postgres"
	"github.com/riskibarqy/decksite-ingest/internal/interfaces/httpapi"
	"github.com/riskibarqy/decksite-ingest/internal/platform/logging"
	"github.com/riskibarqy/decksite-ingest/internal/platform/resilience"
	"github.com/riskibarqy/decksite-ingest/internal/usecase"
)

// Container holds the wired services shared by the api and ingest binaries.
type Container struct {
	Config       config.Config
	Logger       *logging.Logger
	DB           *sqlx.DB
	Store        *postgres.Store
	Gatherling   *gatherling.Client
	Series       *usecase.SeriesService
	Aliases      *usecase.AliasService
	Competitions *usecase.CompetitionService
	Ingestion    *usecase.TournamentIngestionService
}

func New(ctx context.Context, cfg config.Config, logger *logging.Logger) (*Container, error) {
	if logger == nil {
		logger = logging.Default()
	}

	db, err := OpenDB(ctx, cfg)
	if err != nil {
		return nil, err
	}
	if err := postgres.BootstrapSeed(ctx, db); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("bootstrap seed: %w", err)
	}

	c := wire(cfg, postgres.NewStore(db), logger)
	c.DB = db
	return c, nil
}

func wire(cfg config.Config, store *postgres.Store, logger *logging.Logger) *Container {
	client := gatherling.NewClient(gatherling.ClientConfig{
		BaseURL:         cfg.GatherlingBaseURL,
		Timeout:         cfg.GatherlingTimeout,
		MaxRetries:      cfg.GatherlingMaxRetries,
		DecklistWorkers: cfg.GatherlingDecklistWorkers,
		Logger:          logger.Named("gatherling"),
		CircuitBreaker: resilience.CircuitBreakerConfig{
			Enabled:          cfg.GatherlingCircuitEnabled,
			FailureThreshold: cfg.GatherlingCircuitFailureCount,
			OpenTimeout:      cfg.GatherlingCircuitOpenTimeout,
			HalfOpenMaxReq:   cfg.GatherlingCircuitHalfOpenMaxReq,
		},
	})

	var catalog card.Catalog
	if cfg.CardCatalogEnabled {
		catalog = store.Cards()
	}

	seriesSvc := usecase.NewSeriesService(cache.NewSeriesRepository(store.Series(), cfg.SeriesCacheTTL))
	aliasSvc := usecase.NewAliasService(store.Aliases(), cfg.AliasCacheTTL, logger)
	ingestion := usecase.NewTournamentIngestionService(
		client,
		client,
		store.Competitions(),
		store,
		seriesSvc,
		aliasSvc,
		usecase.NewDecklistParser(catalog),
		usecase.NewEventArchive(store.RawData(), deck.SourceGatherling),
		usecase.TournamentIngestionConfig{
			FetchMissingDecklists: cfg.GatherlingFetchMissingDecklists,
			SimilarCandidateLimit: cfg.ArchetypeSimilarLimit,
		},
		logger.Named("ingest"),
	)

	return &Container{
		Config:       cfg,
		Logger:       logger,
		Store:        store,
		Gatherling:   client,
		Series:       seriesSvc,
		Aliases:      aliasSvc,
		Competitions: usecase.NewCompetitionService(store.Competitions(), store.Decks(), store.Matches()),
		Ingestion:    ingestion,
	}
}

func (c *Container) Close() error {
	if c.DB == nil {
		return nil
	}
	return c.DB.Close()
}

func NewHTTPServer(c *Container) (*http.Server, error) {
	cfg := c.Config
	if err := cfg.RequireJobToken(); err != nil {
		return nil, err
	}

	handler := httpapi.NewHandler(c.Ingestion, c.Competitions, c.Store, c.Logger.Named("http"))
	router := httpapi.NewRouter(handler, c.Logger.Named("http"), cfg.CORSAllowedOrigins, cfg.InternalJobToken)

	server := &http.Server{
		Addr:         cfg.HTTPAddr,
		Handler:      router,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}

	if server.Addr == "" {
		return nil, fmt.Errorf("http server addr cannot be empty")
	}

	return server, nil
}
