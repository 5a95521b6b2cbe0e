package usecase

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/AboladeOluwaseun/epl-stats-bot/internal/domain/league"
	"github.com/AboladeOluwaseun/epl-stats-bot/internal/domain/match"
	"github.com/AboladeOluwaseun/epl-stats-bot/internal/domain/player"
	"github.com/AboladeOluwaseun/epl-stats-bot/internal/domain/playerstat"
	"github.com/AboladeOluwaseun/epl-stats-bot/internal/domain/season"
	"github.com/AboladeOluwaseun/epl-stats-bot/internal/domain/standing"
	"github.com/AboladeOluwaseun/epl-stats-bot/internal/domain/team"
)

const (
	defaultLookupLimit = 5
	maxLookupLimit     = 50
)

type StandingsTable struct {
	LeagueID int64               `json:"league_id"`
	Season   int                 `json:"season"`
	Rows     []standing.Standing `json:"rows"`
}

// LookupService answers read-only questions against the warehouse.
type LookupService struct {
	leagueID  int64
	players   player.QueryRepository
	stats     playerstat.QueryRepository
	matches   match.QueryRepository
	standings standing.QueryRepository
	teams     team.QueryRepository
	leagues   league.Repository
	seasons   season.Repository
}

// LeagueOverview is the configured league with every stored season, newest first.
type LeagueOverview struct {
	League  league.League   `json:"league"`
	Seasons []season.Season `json:"seasons"`
}

type LookupOption func(*LookupService)

func WithTeamLookup(teams team.QueryRepository) LookupOption {
	return func(s *LookupService) {
		s.teams = teams
	}
}

func WithLeagueLookup(leagues league.Repository, seasons season.Repository) LookupOption {
	return func(s *LookupService) {
		s.leagues = leagues
		s.seasons = seasons
	}
}

func NewLookupService(
	leagueID int64,
	players player.QueryRepository,
	stats playerstat.QueryRepository,
	matches match.QueryRepository,
	standings standing.QueryRepository,
	opts ...LookupOption,
) *LookupService {
	s := &LookupService{
		leagueID:  leagueID,
		players:   players,
		stats:     stats,
		matches:   matches,
		standings: standings,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *LookupService) SearchPlayers(ctx context.Context, name string, limit int) ([]player.Player, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.LookupService.SearchPlayers")
	defer span.End()

	name = strings.TrimSpace(name)
	if name == "" {
		return nil, fmt.Errorf("%w: player name is required", ErrInvalidInput)
	}
	items, err := s.players.SearchByName(ctx, name, lookupLimit(limit))
	if err != nil {
		return nil, fmt.Errorf("search players: %w", err)
	}
	return items, nil
}

func (s *LookupService) PlayerRecentStats(ctx context.Context, playerID int64, limit int) ([]playerstat.MatchLine, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.LookupService.PlayerRecentStats")
	defer span.End()

	if playerID <= 0 {
		return nil, fmt.Errorf("%w: player id is required", ErrInvalidInput)
	}
	items, err := s.stats.ListRecentByPlayer(ctx, playerID, lookupLimit(limit))
	if err != nil {
		return nil, fmt.Errorf("list player stats: %w", err)
	}
	return items, nil
}

func (s *LookupService) TeamRecentResults(ctx context.Context, teamName string, limit int) ([]match.Result, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.LookupService.TeamRecentResults")
	defer span.End()

	teamName = strings.TrimSpace(teamName)
	if teamName == "" {
		return nil, fmt.Errorf("%w: team name is required", ErrInvalidInput)
	}
	items, err := s.matches.ListRecentByTeamName(ctx, teamName, lookupLimit(limit))
	if err != nil {
		return nil, fmt.Errorf("list team results: %w", err)
	}
	return items, nil
}

func (s *LookupService) HeadToHead(ctx context.Context, teamA, teamB string, limit int) ([]match.Result, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.LookupService.HeadToHead")
	defer span.End()

	teamA, teamB = strings.TrimSpace(teamA), strings.TrimSpace(teamB)
	if teamA == "" || teamB == "" {
		return nil, fmt.Errorf("%w: both team names are required", ErrInvalidInput)
	}
	items, err := s.matches.ListHeadToHead(ctx, teamA, teamB, lookupLimit(limit))
	if err != nil {
		return nil, fmt.Errorf("list head to head: %w", err)
	}
	return items, nil
}

func (s *LookupService) SearchTeams(ctx context.Context, name string, limit int) ([]team.Team, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.LookupService.SearchTeams")
	defer span.End()

	if s.teams == nil {
		return nil, fmt.Errorf("%w: team lookup is not configured", ErrDependencyUnavailable)
	}
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, fmt.Errorf("%w: team name is required", ErrInvalidInput)
	}
	items, err := s.teams.SearchByName(ctx, name, lookupLimit(limit))
	if err != nil {
		return nil, fmt.Errorf("search teams: %w", err)
	}
	return items, nil
}

func (s *LookupService) LeagueOverview(ctx context.Context) (LeagueOverview, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.LookupService.LeagueOverview")
	defer span.End()

	if s.leagues == nil || s.seasons == nil {
		return LeagueOverview{}, fmt.Errorf("%w: league lookup is not configured", ErrDependencyUnavailable)
	}
	item, ok, err := s.leagues.GetByID(ctx, s.leagueID)
	if err != nil {
		return LeagueOverview{}, fmt.Errorf("get league id=%d: %w", s.leagueID, err)
	}
	if !ok {
		return LeagueOverview{}, fmt.Errorf("%w: league %d has not been processed", ErrNotFound, s.leagueID)
	}
	seasons, err := s.seasons.ListByLeague(ctx, s.leagueID)
	if err != nil {
		return LeagueOverview{}, fmt.Errorf("list seasons league=%d: %w", s.leagueID, err)
	}
	sort.SliceStable(seasons, func(i, j int) bool { return seasons[i].Year > seasons[j].Year })
	return LeagueOverview{League: item, Seasons: seasons}, nil
}

// StandingsBySeason returns the stored table for season; 0 selects the latest
// season that has standings.
func (s *LookupService) StandingsBySeason(ctx context.Context, season int) (StandingsTable, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.LookupService.StandingsBySeason")
	defer span.End()

	if season < 0 {
		return StandingsTable{}, fmt.Errorf("%w: season must not be negative", ErrInvalidInput)
	}
	if season == 0 {
		latest, ok, err := s.standings.LatestSeason(ctx, s.leagueID)
		if err != nil {
			return StandingsTable{}, fmt.Errorf("find latest standings season: %w", err)
		}
		if !ok {
			return StandingsTable{}, fmt.Errorf("%w: no standings stored", ErrNotFound)
		}
		season = latest
	}

	rows, err := s.standings.ListBySeason(ctx, s.leagueID, season)
	if err != nil {
		return StandingsTable{}, fmt.Errorf("list standings season=%d: %w", season, err)
	}
	if len(rows) == 0 {
		return StandingsTable{}, fmt.Errorf("%w: no standings for season %d", ErrNotFound, season)
	}
	return StandingsTable{LeagueID: s.leagueID, Season: season, Rows: rows}, nil
}

func lookupLimit(limit int) int {
	if limit <= 0 {
		return defaultLookupLimit
	}
	if limit > maxLookupLimit {
		return maxLookupLimit
	}
	return limit
}
