package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/AboladeOluwaseun/epl-stats-bot/internal/platform/id"
	"github.com/AboladeOluwaseun/epl-stats-bot/internal/platform/logging"
	"github.com/itbasis/go-clock"
	"github.com/sourcegraph/conc/panics"
)

const (
	stepStatusSuccess = "success"
	stepStatusFailed  = "failed"
	stepStatusSkipped = "skipped"
)

type StepResult struct {
	Name       string `json:"name"`
	Status     string `json:"status"`
	DurationMs int64  `json:"duration_ms"`
	Message    string `json:"message,omitempty"`
}

type RunSummary struct {
	RunID               string       `json:"run_id"`
	Success             bool         `json:"success"`
	LeaguesCount        int          `json:"leagues_count"`
	SeasonsCount        int          `json:"seasons_count"`
	VenuesCount         int          `json:"venues_count"`
	TeamsCount          int          `json:"teams_count"`
	MatchesCount        int          `json:"matches_count"`
	StandingsCount      int          `json:"standings_count"`
	PlayersCount        int          `json:"players_count"`
	PlayerStatsCount    int          `json:"player_stats_count"`
	PlayerProfilesCount int          `json:"player_profiles_count"`
	Errors              []string     `json:"errors"`
	Steps               []StepResult `json:"steps"`
	StartedAt           time.Time    `json:"started_at"`
	FinishedAt          time.Time    `json:"finished_at"`
}

// Processors groups the transform/load stages run by PipelineService.
type Processors struct {
	League        *LeagueProcessor
	Season        *SeasonProcessor
	Team          *TeamProcessor
	Match         *MatchProcessor
	Standing      *StandingProcessor
	PlayerStats   *PlayerStatsProcessor
	PlayerProfile *PlayerProfileProcessor
}

// RunHook is called after a pipeline run finishes, successful or not.
type RunHook func(ctx context.Context, summary RunSummary)

type PipelineService struct {
	processors Processors
	ids        id.Generator
	clock      clock.Clock
	logger     *logging.Logger
	afterRun   []RunHook
}

type PipelineOption func(*PipelineService)

func WithPipelineClock(clk clock.Clock) PipelineOption {
	return func(s *PipelineService) {
		if clk != nil {
			s.clock = clk
		}
	}
}

func WithPipelineLogger(logger *logging.Logger) PipelineOption {
	return func(s *PipelineService) {
		if logger != nil {
			s.logger = logger
		}
	}
}

func WithRunHook(hook RunHook) PipelineOption {
	return func(s *PipelineService) {
		if hook != nil {
			s.afterRun = append(s.afterRun, hook)
		}
	}
}

func NewPipelineService(processors Processors, ids id.Generator, opts ...PipelineOption) *PipelineService {
	if ids == nil {
		ids = id.NewUUIDGenerator()
	}
	s := &PipelineService{
		processors: processors,
		ids:        ids,
		clock:      clock.New(),
		logger:     logging.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.logger = s.logger.Named("pipeline")
	return s
}

type pipelineStep struct {
	name string
	run  func(ctx context.Context, summary *RunSummary) error
}

func (s *PipelineService) steps() []pipelineStep {
	p := s.processors
	return []pipelineStep{
		{name: "leagues", run: func(ctx context.Context, sum *RunSummary) error {
			n, err := p.League.Process(ctx)
			sum.LeaguesCount = n
			return err
		}},
		{name: "seasons", run: func(ctx context.Context, sum *RunSummary) error {
			n, err := p.Season.Process(ctx)
			sum.SeasonsCount = n
			return err
		}},
		{name: "teams", run: func(ctx context.Context, sum *RunSummary) error {
			res, err := p.Team.Process(ctx)
			sum.TeamsCount = res.Teams
			sum.VenuesCount += res.Venues
			return err
		}},
		{name: "matches", run: func(ctx context.Context, sum *RunSummary) error {
			res, err := p.Match.Process(ctx, nil)
			sum.MatchesCount = res.Matches
			sum.VenuesCount += res.Venues
			return err
		}},
		{name: "standings", run: func(ctx context.Context, sum *RunSummary) error {
			n, err := p.Standing.Process(ctx)
			sum.StandingsCount = n
			return err
		}},
		{name: "player_stats", run: func(ctx context.Context, sum *RunSummary) error {
			res, err := p.PlayerStats.Process(ctx)
			sum.PlayersCount = res.Players
			sum.PlayerStatsCount = res.Stats
			return err
		}},
		{name: "player_profiles", run: func(ctx context.Context, sum *RunSummary) error {
			n, err := p.PlayerProfile.Process(ctx)
			sum.PlayerProfilesCount = n
			return err
		}},
	}
}

// RunFullProcessing runs every processor in dependency order. The first
// failing step stops the run; its error is reported in the summary, never
// returned. Only a failure to allocate a run id is returned as an error.
func (s *PipelineService) RunFullProcessing(ctx context.Context) (RunSummary, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.PipelineService.RunFullProcessing")
	defer span.End()

	runID, err := s.ids.NewID()
	if err != nil {
		return RunSummary{}, fmt.Errorf("generate run id: %w", err)
	}

	summary := RunSummary{
		RunID:     runID,
		Success:   true,
		Errors:    []string{},
		StartedAt: s.clock.Now().UTC(),
	}
	logger := s.logger.With("run_id", runID)
	logger.InfoContext(ctx, "processing run started")

	failed := false
	for _, step := range s.steps() {
		if failed {
			summary.Steps = append(summary.Steps, StepResult{Name: step.name, Status: stepStatusSkipped})
			continue
		}

		started := s.clock.Now()
		stepErr := s.runStep(ctx, step, &summary)
		result := StepResult{
			Name:       step.name,
			Status:     stepStatusSuccess,
			DurationMs: s.clock.Now().Sub(started).Milliseconds(),
		}
		if stepErr == nil && ctx.Err() != nil {
			stepErr = ctx.Err()
		}
		if stepErr != nil {
			failed = true
			result.Status = stepStatusFailed
			result.Message = stepErr.Error()
			summary.Success = false
			summary.Errors = append(summary.Errors, fmt.Sprintf("%s: %v", step.name, stepErr))
			logger.ErrorContext(ctx, "processing step failed", "step", step.name, "error", stepErr)
		}
		summary.Steps = append(summary.Steps, result)
	}

	summary.FinishedAt = s.clock.Now().UTC()
	logger.InfoContext(ctx, "processing run finished",
		"success", summary.Success,
		"matches", summary.MatchesCount,
		"player_stats", summary.PlayerStatsCount,
		"duration_ms", summary.FinishedAt.Sub(summary.StartedAt).Milliseconds(),
	)

	for _, hook := range s.afterRun {
		hook(ctx, summary)
	}
	return summary, nil
}

func (s *PipelineService) runStep(ctx context.Context, step pipelineStep, summary *RunSummary) (err error) {
	var catcher panics.Catcher
	catcher.Try(func() {
		err = step.run(ctx, summary)
	})
	if recovered := catcher.Recovered(); recovered != nil {
		return fmt.Errorf("panic in %s step: %w", step.name, recovered.AsError())
	}
	return err
}
