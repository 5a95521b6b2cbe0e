package usecase

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/AboladeOluwaseun/epl-stats-bot/internal/domain/match"
	"github.com/AboladeOluwaseun/epl-stats-bot/internal/domain/player"
	"github.com/AboladeOluwaseun/epl-stats-bot/internal/domain/rawresponse"
	"github.com/AboladeOluwaseun/epl-stats-bot/internal/platform/logging"
	"github.com/AboladeOluwaseun/epl-stats-bot/internal/platform/resilience"
	"github.com/itbasis/go-clock"
)

const (
	defaultMultiSeasonCount = 5
	defaultMaxProfilePages  = 60
)

type FetchConfig struct {
	LeagueID             int64
	CurrentSeason        int
	HistoricalFromSeason int
	HistoricalToSeason   int
	// InterRequestDelay paces per-fixture and per-player loops.
	InterRequestDelay time.Duration
	// SeasonDelay paces loops over seasons and pages.
	SeasonDelay     time.Duration
	MaxProfilePages int
}

type TeamsSummary struct {
	SeasonsFetched int   `json:"seasons_fetched"`
	TotalTeams     int   `json:"total_teams"`
	FailedSeasons  []int `json:"failed_seasons"`
}

type FetchSummary struct {
	Operation      string        `json:"operation"`
	UnitsAttempted int           `json:"units_attempted"`
	UnitsSucceeded int           `json:"units_succeeded"`
	FailedUnits    []string      `json:"failed_units"`
	RawIDs         []int64       `json:"raw_ids"`
	Canceled       bool          `json:"canceled,omitempty"`
	Teams          *TeamsSummary `json:"teams,omitempty"`
	StartedAt      time.Time     `json:"started_at"`
	FinishedAt     time.Time     `json:"finished_at"`
}

// FetchService pulls provider data into the raw store. Every loop is strictly
// sequential and a failing unit never aborts the loop.
type FetchService struct {
	api        FootballAPI
	rawRepo    rawresponse.Repository
	matchRepo  match.Repository
	playerRepo player.Repository
	cfg        FetchConfig
	sleep      resilience.Sleeper
	clock      clock.Clock
	logger     *logging.Logger
}

type FetchOption func(*FetchService)

func WithFetchSleeper(sleep resilience.Sleeper) FetchOption {
	return func(s *FetchService) {
		if sleep != nil {
			s.sleep = sleep
		}
	}
}

func WithFetchClock(clk clock.Clock) FetchOption {
	return func(s *FetchService) {
		if clk != nil {
			s.clock = clk
		}
	}
}

func WithFetchLogger(logger *logging.Logger) FetchOption {
	return func(s *FetchService) {
		if logger != nil {
			s.logger = logger
		}
	}
}

func NewFetchService(
	api FootballAPI,
	rawRepo rawresponse.Repository,
	matchRepo match.Repository,
	playerRepo player.Repository,
	cfg FetchConfig,
	opts ...FetchOption,
) *FetchService {
	if cfg.MaxProfilePages <= 0 {
		cfg.MaxProfilePages = defaultMaxProfilePages
	}
	s := &FetchService{
		api:        api,
		rawRepo:    rawRepo,
		matchRepo:  matchRepo,
		playerRepo: playerRepo,
		cfg:        cfg,
		clock:      clock.New(),
		logger:     logging.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.sleep == nil {
		s.sleep = resilience.ClockSleeper(s.clock)
	}
	s.logger = s.logger.Named("fetch")
	return s
}

func (s *FetchService) FetchLeague(ctx context.Context) (FetchSummary, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.FetchService.FetchLeague")
	defer span.End()

	if s.cfg.LeagueID <= 0 {
		return FetchSummary{}, fmt.Errorf("%w: league id must be configured", ErrInvalidInput)
	}
	summary := s.newSummary("fetch_league")
	leagueID := strconv.FormatInt(s.cfg.LeagueID, 10)
	s.fetchUnit(ctx, &summary, fetchUnit{
		label:     "league=" + leagueID,
		endpoint:  rawresponse.EndpointLeagues,
		params:    map[string]string{"id": leagueID},
		rawParams: map[string]any{"id": s.cfg.LeagueID},
	})
	return s.finish(ctx, summary), nil
}

// FetchTeams fetches /teams for each season; no seasons means the current one.
func (s *FetchService) FetchTeams(ctx context.Context, seasons []int) (FetchSummary, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.FetchService.FetchTeams")
	defer span.End()

	seasons, err := s.normalizeSeasons(seasons, []int{s.cfg.CurrentSeason})
	if err != nil {
		return FetchSummary{}, err
	}
	summary := s.newSummary("fetch_teams")
	s.fetchTeamSeasons(ctx, &summary, seasons)
	return s.finish(ctx, summary), nil
}

// FetchTeamsMultiSeason defaults to the five seasons ending at the current one.
func (s *FetchService) FetchTeamsMultiSeason(ctx context.Context, seasons []int) (FetchSummary, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.FetchService.FetchTeamsMultiSeason")
	defer span.End()

	seasons, err := s.normalizeSeasons(seasons, seasonRange(s.cfg.CurrentSeason-defaultMultiSeasonCount+1, s.cfg.CurrentSeason))
	if err != nil {
		return FetchSummary{}, err
	}
	summary := s.newSummary("fetch_teams_multi_season")
	summary.Teams = s.fetchTeamSeasons(ctx, &summary, seasons)
	return s.finish(ctx, summary), nil
}

func (s *FetchService) FetchTeamsHistorical(ctx context.Context) (FetchSummary, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.FetchService.FetchTeamsHistorical")
	defer span.End()

	from, to := s.cfg.HistoricalFromSeason, s.cfg.HistoricalToSeason
	if from <= 0 || to < from {
		return FetchSummary{}, fmt.Errorf("%w: historical season range %d..%d is invalid", ErrInvalidInput, from, to)
	}
	summary := s.newSummary("fetch_teams_historical")
	summary.Teams = s.fetchTeamSeasons(ctx, &summary, seasonRange(from, to))
	return s.finish(ctx, summary), nil
}

func (s *FetchService) fetchTeamSeasons(ctx context.Context, summary *FetchSummary, seasons []int) *TeamsSummary {
	teams := &TeamsSummary{FailedSeasons: []int{}}
	for idx, season := range seasons {
		resp, ok := s.fetchUnit(ctx, summary, s.seasonUnit(rawresponse.EndpointTeams, season, nil))
		if ok {
			teams.SeasonsFetched++
			teams.TotalTeams += resp.Results
		} else {
			teams.FailedSeasons = append(teams.FailedSeasons, season)
		}
		if !s.pace(ctx, summary, s.cfg.SeasonDelay, idx, len(seasons)) {
			break
		}
	}
	return teams
}

// FetchFixtures fetches /fixtures per season, optionally filtered by a status
// expression such as "FT-AET-PEN".
func (s *FetchService) FetchFixtures(ctx context.Context, seasons []int, status string) (FetchSummary, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.FetchService.FetchFixtures")
	defer span.End()

	seasons, err := s.normalizeSeasons(seasons, []int{s.cfg.CurrentSeason})
	if err != nil {
		return FetchSummary{}, err
	}
	status = strings.ToUpper(strings.TrimSpace(status))

	var extra map[string]string
	if status != "" {
		extra = map[string]string{"status": status}
	}

	summary := s.newSummary("fetch_fixtures")
	for idx, season := range seasons {
		s.fetchUnit(ctx, &summary, s.seasonUnit(rawresponse.EndpointFixtures, season, extra))
		if !s.pace(ctx, &summary, s.cfg.SeasonDelay, idx, len(seasons)) {
			break
		}
	}
	return s.finish(ctx, summary), nil
}

func (s *FetchService) FetchStandings(ctx context.Context, seasons []int) (FetchSummary, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.FetchService.FetchStandings")
	defer span.End()

	seasons, err := s.normalizeSeasons(seasons, []int{s.cfg.CurrentSeason})
	if err != nil {
		return FetchSummary{}, err
	}
	summary := s.newSummary("fetch_standings")
	for idx, season := range seasons {
		s.fetchUnit(ctx, &summary, s.seasonUnit(rawresponse.EndpointStandings, season, nil))
		if !s.pace(ctx, &summary, s.cfg.SeasonDelay, idx, len(seasons)) {
			break
		}
	}
	return s.finish(ctx, summary), nil
}

// FetchPlayerStats fetches /fixtures/players for finished matches that have
// no stored player stats yet, most recent first.
func (s *FetchService) FetchPlayerStats(ctx context.Context, limit int) (FetchSummary, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.FetchService.FetchPlayerStats")
	defer span.End()

	if limit <= 0 {
		return FetchSummary{}, fmt.Errorf("%w: limit must be greater than zero", ErrInvalidInput)
	}
	fixtureIDs, err := s.matchRepo.ListFinishedWithoutPlayerStats(ctx, limit)
	if err != nil {
		return FetchSummary{}, fmt.Errorf("list fixtures without player stats: %w", err)
	}

	summary := s.newSummary("fetch_player_stats")
	s.logger.InfoContext(ctx, "fixtures pending player stats", "count", len(fixtureIDs), "limit", limit)
	for idx, fixtureID := range fixtureIDs {
		fixture := strconv.FormatInt(fixtureID, 10)
		s.fetchUnit(ctx, &summary, fetchUnit{
			label:     "fixture=" + fixture,
			endpoint:  rawresponse.EndpointFixturePlayers,
			params:    map[string]string{"fixture": fixture},
			rawParams: map[string]any{"fixture": fixtureID},
		})
		if !s.pace(ctx, &summary, s.cfg.InterRequestDelay, idx, len(fixtureIDs)) {
			break
		}
	}
	return s.finish(ctx, summary), nil
}

// FetchPlayerProfiles walks the paginated /players listing for a season until
// an empty page or the last page reported by the provider.
func (s *FetchService) FetchPlayerProfiles(ctx context.Context, season int) (FetchSummary, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.FetchService.FetchPlayerProfiles")
	defer span.End()

	if season == 0 {
		season = s.cfg.CurrentSeason
	}
	if season <= 0 {
		return FetchSummary{}, fmt.Errorf("%w: season must be greater than zero", ErrInvalidInput)
	}

	summary := s.newSummary("fetch_player_profiles")
	league := strconv.FormatInt(s.cfg.LeagueID, 10)
	seasonText := strconv.Itoa(season)
	for page := 1; page <= s.cfg.MaxProfilePages; page++ {
		pageText := strconv.Itoa(page)
		resp, ok := s.fetchUnit(ctx, &summary, fetchUnit{
			label:    "season=" + seasonText + " page=" + pageText,
			endpoint: rawresponse.EndpointPlayers,
			params:   map[string]string{"league": league, "season": seasonText, "page": pageText},
			rawParams: map[string]any{
				"league": s.cfg.LeagueID,
				"season": season,
				"page":   page,
				"sync":   rawresponse.SyncProfile,
			},
			emptyEndsPaging: page > 1,
		})
		if !ok || resp.Results == 0 {
			break
		}
		if resp.Paging.Total > 0 && resp.Paging.Current >= resp.Paging.Total {
			break
		}
		if page == s.cfg.MaxProfilePages {
			s.logger.WarnContext(ctx, "player profile paging stopped at page limit", "season", season, "max_pages", page)
			break
		}
		if !s.pace(ctx, &summary, s.cfg.SeasonDelay, page-1, s.cfg.MaxProfilePages) {
			break
		}
	}
	return s.finish(ctx, summary), nil
}

// RepairSkeletonProfiles fetches /players/profiles for players only known
// from match payloads.
func (s *FetchService) RepairSkeletonProfiles(ctx context.Context, limit int) (FetchSummary, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.FetchService.RepairSkeletonProfiles")
	defer span.End()

	if limit <= 0 {
		return FetchSummary{}, fmt.Errorf("%w: limit must be greater than zero", ErrInvalidInput)
	}
	playerIDs, err := s.playerRepo.ListSkeletonIDs(ctx, limit)
	if err != nil {
		return FetchSummary{}, fmt.Errorf("list skeleton players: %w", err)
	}

	summary := s.newSummary("repair_skeleton_profiles")
	for idx, playerID := range playerIDs {
		id := strconv.FormatInt(playerID, 10)
		s.fetchUnit(ctx, &summary, fetchUnit{
			label:     "player=" + id,
			endpoint:  rawresponse.EndpointPlayerProfiles,
			params:    map[string]string{"player": id},
			rawParams: map[string]any{"player": playerID, "sync": rawresponse.SyncProfileRepair},
		})
		if !s.pace(ctx, &summary, s.cfg.InterRequestDelay, idx, len(playerIDs)) {
			break
		}
	}
	return s.finish(ctx, summary), nil
}

type fetchUnit struct {
	label     string
	endpoint  string
	params    map[string]string
	rawParams map[string]any
	// emptyEndsPaging treats a zero-result response as the end of a listing
	// rather than a failed unit.
	emptyEndsPaging bool
}

func (s *FetchService) seasonUnit(endpoint string, season int, extra map[string]string) fetchUnit {
	league := strconv.FormatInt(s.cfg.LeagueID, 10)
	params := map[string]string{"league": league, "season": strconv.Itoa(season)}
	rawParams := map[string]any{"league": s.cfg.LeagueID, "season": season}
	for k, v := range extra {
		params[k] = v
		rawParams[k] = v
	}
	return fetchUnit{
		label:     fmt.Sprintf("season=%d", season),
		endpoint:  endpoint,
		params:    params,
		rawParams: rawParams,
	}
}

// fetchUnit requests one unit and appends its body to the raw store.
func (s *FetchService) fetchUnit(ctx context.Context, summary *FetchSummary, unit fetchUnit) (APIResponse, bool) {
	resp, err := s.api.Get(ctx, unit.endpoint, unit.params)
	if err != nil {
		summary.UnitsAttempted++
		summary.FailedUnits = append(summary.FailedUnits, unit.label)
		s.logger.WarnContext(ctx, "fetch unit failed", "endpoint", unit.endpoint, "unit", unit.label, "error", err)
		return APIResponse{}, false
	}
	if resp.Results == 0 {
		if unit.emptyEndsPaging {
			s.logger.InfoContext(ctx, "listing exhausted", "endpoint", unit.endpoint, "unit", unit.label)
			return resp, true
		}
		summary.UnitsAttempted++
		summary.FailedUnits = append(summary.FailedUnits, unit.label)
		s.logger.WarnContext(ctx, "fetch unit returned no results", "endpoint", unit.endpoint, "unit", unit.label)
		return resp, false
	}

	summary.UnitsAttempted++
	rawID, err := s.rawRepo.Insert(ctx, unit.endpoint, unit.rawParams, resp.Body)
	if err != nil {
		summary.FailedUnits = append(summary.FailedUnits, unit.label)
		s.logger.ErrorContext(ctx, "store raw response failed", "endpoint", unit.endpoint, "unit", unit.label, "error", err)
		return resp, false
	}

	summary.UnitsSucceeded++
	summary.RawIDs = append(summary.RawIDs, rawID)
	s.logger.InfoContext(ctx, "fetch unit stored",
		"endpoint", unit.endpoint,
		"unit", unit.label,
		"results", resp.Results,
		"response_id", rawID,
		"rate_remaining", resp.RateRemaining,
	)
	return resp, true
}

// pace sleeps between units and reports whether the loop may continue.
func (s *FetchService) pace(ctx context.Context, summary *FetchSummary, delay time.Duration, idx, total int) bool {
	if ctx.Err() != nil {
		summary.Canceled = true
		return false
	}
	if idx >= total-1 {
		return true
	}
	if err := s.sleep(ctx, delay); err != nil {
		summary.Canceled = true
		s.logger.WarnContext(ctx, "fetch loop interrupted", "operation", summary.Operation, "error", err)
		return false
	}
	return true
}

func (s *FetchService) newSummary(operation string) FetchSummary {
	return FetchSummary{
		Operation:   operation,
		FailedUnits: []string{},
		RawIDs:      []int64{},
		StartedAt:   s.clock.Now().UTC(),
	}
}

func (s *FetchService) finish(ctx context.Context, summary FetchSummary) FetchSummary {
	summary.FinishedAt = s.clock.Now().UTC()
	s.logger.InfoContext(ctx, "fetch finished",
		"operation", summary.Operation,
		"attempted", summary.UnitsAttempted,
		"succeeded", summary.UnitsSucceeded,
		"failed", len(summary.FailedUnits),
		"canceled", summary.Canceled,
	)
	return summary
}

func (s *FetchService) normalizeSeasons(seasons []int, fallback []int) ([]int, error) {
	if s.cfg.LeagueID <= 0 {
		return nil, fmt.Errorf("%w: league id must be configured", ErrInvalidInput)
	}
	if len(seasons) == 0 {
		seasons = fallback
	}
	out := make([]int, 0, len(seasons))
	seen := make(map[int]struct{}, len(seasons))
	for _, season := range seasons {
		if season <= 0 {
			return nil, fmt.Errorf("%w: season %d is invalid", ErrInvalidInput, season)
		}
		if _, ok := seen[season]; ok {
			continue
		}
		seen[season] = struct{}{}
		out = append(out, season)
	}
	return out, nil
}

func seasonRange(from, to int) []int {
	if to < from {
		return nil
	}
	out := make([]int, 0, to-from+1)
	for season := from; season <= to; season++ {
		out = append(out, season)
	}
	return out
}
