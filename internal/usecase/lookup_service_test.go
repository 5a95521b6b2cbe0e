package usecase

import (
	"context"
	"errors"
	"testing"

	"github.com/AboladeOluwaseun/epl-stats-bot/internal/domain/league"
	"github.com/AboladeOluwaseun/epl-stats-bot/internal/domain/match"
	"github.com/AboladeOluwaseun/epl-stats-bot/internal/domain/player"
	"github.com/AboladeOluwaseun/epl-stats-bot/internal/domain/season"
	"github.com/AboladeOluwaseun/epl-stats-bot/internal/domain/standing"
	"github.com/AboladeOluwaseun/epl-stats-bot/internal/domain/team"
	"github.com/AboladeOluwaseun/epl-stats-bot/internal/infrastructure/repository/memory"
	matchmock "github.com/AboladeOluwaseun/epl-stats-bot/internal/mocks/domain/match"
	playermock "github.com/AboladeOluwaseun/epl-stats-bot/internal/mocks/domain/player"
	playerstatmock "github.com/AboladeOluwaseun/epl-stats-bot/internal/mocks/domain/playerstat"
	standingmock "github.com/AboladeOluwaseun/epl-stats-bot/internal/mocks/domain/standing"
	teammock "github.com/AboladeOluwaseun/epl-stats-bot/internal/mocks/domain/team"
	"github.com/stretchr/testify/mock"
)

type lookupMocks struct {
	players   *playermock.QueryRepository
	stats     *playerstatmock.QueryRepository
	matches   *matchmock.QueryRepository
	standings *standingmock.QueryRepository
}

func newLookupService(t *testing.T) (*LookupService, lookupMocks) {
	m := lookupMocks{
		players:   playermock.NewQueryRepository(t),
		stats:     playerstatmock.NewQueryRepository(t),
		matches:   matchmock.NewQueryRepository(t),
		standings: standingmock.NewQueryRepository(t),
	}
	return NewLookupService(39, m.players, m.stats, m.matches, m.standings), m
}

func TestLookupService_SearchPlayers_DefaultLimit(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	svc, m := newLookupService(t)
	m.players.
		On("SearchByName", mock.Anything, "salah", defaultLookupLimit).
		Return([]player.Player{{PlayerID: 306, Name: "M. Salah"}}, nil).
		Once()

	got, err := svc.SearchPlayers(ctx, "  salah ", 0)
	if err != nil {
		t.Fatalf("search players: %v", err)
	}
	if len(got) != 1 || got[0].PlayerID != 306 {
		t.Fatalf("unexpected players: %+v", got)
	}
}

func TestLookupService_SearchPlayers_RequiresName(t *testing.T) {
	t.Parallel()

	svc, _ := newLookupService(t)
	_, err := svc.SearchPlayers(context.Background(), " ", 5)
	if !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}

func TestLookupService_HeadToHead_CapsLimit(t *testing.T) {
	t.Parallel()

	svc, m := newLookupService(t)
	m.matches.
		On("ListHeadToHead", mock.Anything, "Liverpool", "Everton", maxLookupLimit).
		Return([]match.Result{{FixtureID: 1}}, nil).
		Once()

	got, err := svc.HeadToHead(context.Background(), "Liverpool", "Everton", 500)
	if err != nil {
		t.Fatalf("head to head: %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("unexpected results: %+v", got)
	}
}

func TestLookupService_StandingsBySeason_LatestWhenZero(t *testing.T) {
	t.Parallel()

	svc, m := newLookupService(t)
	m.standings.On("LatestSeason", mock.Anything, int64(39)).Return(2024, true, nil).Once()
	m.standings.
		On("ListBySeason", mock.Anything, int64(39), 2024).
		Return([]standing.Standing{{TeamID: 40, Rank: 1}}, nil).
		Once()

	table, err := svc.StandingsBySeason(context.Background(), 0)
	if err != nil {
		t.Fatalf("standings: %v", err)
	}
	if table.Season != 2024 || len(table.Rows) != 1 {
		t.Fatalf("unexpected table: %+v", table)
	}
}

func TestLookupService_StandingsBySeason_NotFound(t *testing.T) {
	t.Parallel()

	svc, m := newLookupService(t)
	m.standings.On("LatestSeason", mock.Anything, int64(39)).Return(0, false, nil).Once()

	_, err := svc.StandingsBySeason(context.Background(), 0)
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestLookupService_PlayerRecentStats_WrapsRepositoryError(t *testing.T) {
	t.Parallel()

	svc, m := newLookupService(t)
	repoErr := errors.New("timeout")
	m.stats.On("ListRecentByPlayer", mock.Anything, int64(306), 5).Return(nil, repoErr).Once()

	_, err := svc.PlayerRecentStats(context.Background(), 306, 5)
	if !errors.Is(err, repoErr) {
		t.Fatalf("expected wrapped repository error, got %v", err)
	}
}

func TestLookupService_TeamRecentResults(t *testing.T) {
	t.Parallel()

	svc, m := newLookupService(t)
	m.matches.On("ListRecentByTeamName", mock.Anything, "Arsenal", 3).Return([]match.Result{{FixtureID: 9}, {FixtureID: 8}}, nil).Once()

	got, err := svc.TeamRecentResults(context.Background(), "Arsenal", 3)
	if err != nil {
		t.Fatalf("team results: %v", err)
	}
	if len(got) != 2 || got[0].FixtureID != 9 {
		t.Fatalf("unexpected results: %+v", got)
	}
}

func TestLookupService_SearchTeams(t *testing.T) {
	t.Parallel()

	teams := teammock.NewQueryRepository(t)
	teams.On("SearchByName", mock.Anything, "united", defaultLookupLimit).
		Return([]team.Team{{TeamID: 33, Name: "Manchester United"}, {TeamID: 34, Name: "Newcastle"}}, nil).
		Once()
	svc := NewLookupService(39, nil, nil, nil, nil, WithTeamLookup(teams))

	got, err := svc.SearchTeams(context.Background(), "united", 0)
	if err != nil {
		t.Fatalf("search teams: %v", err)
	}
	if len(got) != 2 || got[0].TeamID != 33 {
		t.Fatalf("unexpected teams: %+v", got)
	}
}

func TestLookupService_SearchTeams_NotConfigured(t *testing.T) {
	t.Parallel()

	svc, _ := newLookupService(t)
	_, err := svc.SearchTeams(context.Background(), "united", 5)
	if !errors.Is(err, ErrDependencyUnavailable) {
		t.Fatalf("expected ErrDependencyUnavailable, got %v", err)
	}
}

func TestLookupService_LeagueOverview(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	leagues := memory.NewLeagueRepository()
	seasons := memory.NewSeasonRepository()
	svc := NewLookupService(39, nil, nil, nil, nil, WithLeagueLookup(leagues, seasons))

	if _, err := svc.LeagueOverview(ctx); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound before processing, got %v", err)
	}

	if err := leagues.UpsertMany(ctx, []league.League{{LeagueID: 39, Name: "Premier League", Country: "England"}}); err != nil {
		t.Fatalf("seed league: %v", err)
	}
	if err := seasons.UpsertMany(ctx, []season.Season{
		{LeagueID: 39, Year: 2022, Name: "2022-2023"},
		{LeagueID: 39, Year: 2024, Name: "2024-2025", IsCurrent: true},
		{LeagueID: 39, Year: 2023, Name: "2023-2024"},
		{LeagueID: 140, Year: 2024, Name: "2024-2025"},
	}); err != nil {
		t.Fatalf("seed seasons: %v", err)
	}

	overview, err := svc.LeagueOverview(ctx)
	if err != nil {
		t.Fatalf("league overview: %v", err)
	}
	if overview.League.Name != "Premier League" {
		t.Fatalf("unexpected league: %+v", overview.League)
	}
	if len(overview.Seasons) != 3 || overview.Seasons[0].Year != 2024 || overview.Seasons[2].Year != 2022 {
		t.Fatalf("expected seasons newest first, got %+v", overview.Seasons)
	}
}
