package app

import (
	"context"
	"fmt"
	"net/http"

	"github.com/AboladeOluwaseun/epl-stats-bot/external/apifootball"
	"github.com/AboladeOluwaseun/epl-stats-bot/internal/config"
	cacherepo "github.com/AboladeOluwaseun/epl-stats-bot/internal/infrastructure/repository/cache"
	"github.com/AboladeOluwaseun/epl-stats-bot/internal/infrastructure/repository/postgres"
	"github.com/AboladeOluwaseun/epl-stats-bot/internal/interfaces/httpapi"
	basecache "github.com/AboladeOluwaseun/epl-stats-bot/internal/platform/cache"
	idgen "github.com/AboladeOluwaseun/epl-stats-bot/internal/platform/id"
	"github.com/AboladeOluwaseun/epl-stats-bot/internal/platform/logging"
	"github.com/AboladeOluwaseun/epl-stats-bot/internal/usecase"
	"github.com/jmoiron/sqlx"
	"github.com/uptrace/opentelemetry-go-extra/otelsql"
	"github.com/uptrace/opentelemetry-go-extra/otelsqlx"
)

// OpenDB opens the warehouse connection with query tracing and verifies it.
func OpenDB(ctx context.Context, cfg config.Config) (*sqlx.DB, error) {
	opts := []otelsql.Option{
		otelsql.WithDBSystem("postgresql"),
		otelsql.WithQueryFormatter(formatDBQueryForTrace),
	}
	if name := dbNameFromURL(cfg.DBURL); name != "" {
		opts = append(opts, otelsql.WithDBName(name))
	}

	db, err := otelsqlx.Open("postgres", normalizeDBURL(cfg.DBURL, cfg.DBDisablePreparedBinary), opts...)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	db.SetMaxOpenConns(cfg.DBMaxOpenConns)
	db.SetMaxIdleConns(cfg.DBMaxOpenConns)

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	return db, nil
}

// Services is the wired object graph shared by the API server and the CLI.
type Services struct {
	Fetch    *usecase.FetchService
	Pipeline *usecase.PipelineService
	Lookup   *usecase.LookupService
}

func NewServices(cfg config.Config, db *sqlx.DB, logger *logging.Logger) *Services {
	if logger == nil {
		logger = logging.Default()
	}

	rawRepo := postgres.NewRawResponseRepository(db)
	leagueRepo := postgres.NewLeagueRepository(db)
	seasonRepo := postgres.NewSeasonRepository(db)
	venueRepo := postgres.NewVenueRepository(db)
	teamRepo := postgres.NewTeamRepository(db)
	matchRepo := postgres.NewMatchRepository(db)
	playerRepo := postgres.NewPlayerRepository(db)
	statRepo := postgres.NewPlayerStatRepository(db)
	standingRepo := postgres.NewStandingRepository(db)

	maxRetries := cfg.FootballAPIMaxRetries
	if maxRetries == 0 {
		maxRetries = apifootball.NoRetries
	}
	client := apifootball.NewClient(apifootball.ClientConfig{
		BaseURL:           cfg.FootballAPIBaseURL,
		APIKey:            cfg.FootballAPIKey,
		Timeout:           cfg.FootballAPITimeout,
		MaxRetries:        maxRetries,
		BaseBackoff:       cfg.FootballAPIBaseBackoff,
		RateLimitCooldown: cfg.FootballAPIRateLimitCooldown,
		ThrottleDelay:     cfg.FootballAPIThrottleDelay,
		RequestsPerMinute: cfg.FootballAPIRequestsPerMinute,
		CircuitBreaker:    cfg.FootballAPICircuit,
		Logger:            logger,
	})

	fetchSvc := usecase.NewFetchService(client, rawRepo, matchRepo, playerRepo, usecase.FetchConfig{
		LeagueID:             cfg.LeagueID,
		CurrentSeason:        cfg.CurrentSeason,
		HistoricalFromSeason: cfg.HistoricalFromSeason,
		HistoricalToSeason:   cfg.HistoricalToSeason,
		InterRequestDelay:    cfg.InterRequestDelay,
		SeasonDelay:          cfg.SeasonDelay,
		MaxProfilePages:      cfg.MaxProfilePages,
	}, usecase.WithFetchLogger(logger))

	procOpts := usecase.ProcessorOptions{DecodeWorkers: cfg.DecodeWorkers, Logger: logger}
	processors := usecase.Processors{
		League:        usecase.NewLeagueProcessor(rawRepo, leagueRepo, procOpts),
		Season:        usecase.NewSeasonProcessor(rawRepo, seasonRepo, procOpts),
		Team:          usecase.NewTeamProcessor(rawRepo, teamRepo, venueRepo, procOpts),
		Match:         usecase.NewMatchProcessor(rawRepo, matchRepo, venueRepo, procOpts),
		Standing:      usecase.NewStandingProcessor(rawRepo, standingRepo, procOpts),
		PlayerStats:   usecase.NewPlayerStatsProcessor(rawRepo, playerRepo, statRepo, procOpts),
		PlayerProfile: usecase.NewPlayerProfileProcessor(rawRepo, playerRepo, procOpts),
	}

	var store *basecache.Store
	if cfg.CacheEnabled {
		store = basecache.NewStore(cfg.CacheTTL)
	}
	pipelineOpts := []usecase.PipelineOption{usecase.WithPipelineLogger(logger)}
	if store != nil {
		pipelineOpts = append(pipelineOpts, usecase.WithRunHook(func(ctx context.Context, _ usecase.RunSummary) {
			store.DeletePrefix(ctx, cacherepo.KeyPrefix)
		}))
	}
	pipelineSvc := usecase.NewPipelineService(processors, idgen.NewUUIDGenerator(), pipelineOpts...)

	lookupSvc := usecase.NewLookupService(
		cfg.LeagueID,
		cacherepo.NewPlayerQueryRepository(playerRepo, store),
		cacherepo.NewPlayerStatQueryRepository(statRepo, store),
		cacherepo.NewMatchQueryRepository(matchRepo, store),
		cacherepo.NewStandingQueryRepository(standingRepo, store),
		usecase.WithTeamLookup(cacherepo.NewTeamQueryRepository(teamRepo, store)),
		usecase.WithLeagueLookup(leagueRepo, seasonRepo),
	)

	return &Services{
		Fetch:    fetchSvc,
		Pipeline: pipelineSvc,
		Lookup:   lookupSvc,
	}
}

func NewHTTPServer(cfg config.Config, services *Services, logger *logging.Logger) (*http.Server, error) {
	if logger == nil {
		logger = logging.Default()
	}

	handler := httpapi.NewHandler(services.Fetch, services.Pipeline, services.Lookup, logger)
	router := httpapi.NewRouter(handler, logger, cfg.CORSAllowedOrigins, cfg.InternalJobToken)

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
