package cache

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/AboladeOluwaseun/epl-stats-bot/internal/domain/match"
	"github.com/AboladeOluwaseun/epl-stats-bot/internal/domain/player"
	"github.com/AboladeOluwaseun/epl-stats-bot/internal/domain/standing"
	matchmock "github.com/AboladeOluwaseun/epl-stats-bot/internal/mocks/domain/match"
	playermock "github.com/AboladeOluwaseun/epl-stats-bot/internal/mocks/domain/player"
	standingmock "github.com/AboladeOluwaseun/epl-stats-bot/internal/mocks/domain/standing"
	teammock "github.com/AboladeOluwaseun/epl-stats-bot/internal/mocks/domain/team"
	basecache "github.com/AboladeOluwaseun/epl-stats-bot/internal/platform/cache"
	"github.com/itbasis/go-clock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestPlayerQueryRepository_CachesByNormalizedName(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	next := playermock.NewQueryRepository(t)
	next.On("SearchByName", mock.Anything, "Salah", 5).Return([]player.Player{{PlayerID: 306, Name: "M. Salah"}}, nil).Once()

	repo := NewPlayerQueryRepository(next, basecache.NewStore(time.Minute))

	first, err := repo.SearchByName(ctx, "Salah", 5)
	require.NoError(t, err)
	second, err := repo.SearchByName(ctx, "  salah", 5)
	require.NoError(t, err)

	assert.Equal(t, first, second)

	second[0].Name = "mutated"
	third, err := repo.SearchByName(ctx, "salah", 5)
	require.NoError(t, err)
	assert.Equal(t, "M. Salah", third[0].Name)
}

func TestMatchQueryRepository_ExpiresAfterTTL(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	clk := clock.NewMock()
	clk.Set(time.Date(2024, 5, 20, 12, 0, 0, 0, time.UTC))

	next := matchmock.NewQueryRepository(t)
	next.On("ListRecentByTeamName", mock.Anything, "Arsenal", 5).Return([]match.Result{{FixtureID: 1}}, nil).Twice()

	repo := NewMatchQueryRepository(next, basecache.NewStoreWithClock(time.Minute, clk))

	_, err := repo.ListRecentByTeamName(ctx, "Arsenal", 5)
	require.NoError(t, err)
	_, err = repo.ListRecentByTeamName(ctx, "Arsenal", 5)
	require.NoError(t, err)

	clk.Add(2 * time.Minute)
	_, err = repo.ListRecentByTeamName(ctx, "Arsenal", 5)
	require.NoError(t, err)
}

func TestMatchQueryRepository_HeadToHeadKeyKeepsOrder(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	next := matchmock.NewQueryRepository(t)
	next.On("ListHeadToHead", mock.Anything, "Arsenal", "Chelsea", 5).Return([]match.Result{{FixtureID: 1}}, nil).Once()
	next.On("ListHeadToHead", mock.Anything, "Chelsea", "Arsenal", 5).Return([]match.Result{{FixtureID: 2}}, nil).Once()

	repo := NewMatchQueryRepository(next, basecache.NewStore(time.Minute))

	ab, err := repo.ListHeadToHead(ctx, "Arsenal", "Chelsea", 5)
	require.NoError(t, err)
	ba, err := repo.ListHeadToHead(ctx, "Chelsea", "Arsenal", 5)
	require.NoError(t, err)

	assert.Equal(t, int64(1), ab[0].FixtureID)
	assert.Equal(t, int64(2), ba[0].FixtureID)
}

func TestStandingQueryRepository_ErrorsAreNotCached(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	next := standingmock.NewQueryRepository(t)
	next.On("ListBySeason", mock.Anything, int64(39), 2023).Return(nil, errors.New("connection reset")).Once()
	next.On("ListBySeason", mock.Anything, int64(39), 2023).Return([]standing.Standing{{TeamID: 50, Rank: 1}}, nil).Once()

	repo := NewStandingQueryRepository(next, basecache.NewStore(time.Minute))

	_, err := repo.ListBySeason(ctx, 39, 2023)
	require.Error(t, err)

	rows, err := repo.ListBySeason(ctx, 39, 2023)
	require.NoError(t, err)
	assert.Len(t, rows, 1)
}

func TestStandingQueryRepository_LatestSeasonFlushedByPrefix(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	store := basecache.NewStore(time.Hour)
	next := standingmock.NewQueryRepository(t)
	next.On("LatestSeason", mock.Anything, int64(39)).Return(0, false, nil).Once()
	next.On("LatestSeason", mock.Anything, int64(39)).Return(2024, true, nil).Once()

	repo := NewStandingQueryRepository(next, store)

	_, ok, err := repo.LatestSeason(ctx, 39)
	require.NoError(t, err)
	assert.False(t, ok)

	_, ok, err = repo.LatestSeason(ctx, 39)
	require.NoError(t, err)
	assert.False(t, ok, "negative answer should be served from cache")

	store.DeletePrefix(ctx, KeyPrefix)

	season, ok, err := repo.LatestSeason(ctx, 39)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, 2024, season)
}

func TestTeamQueryRepository_NilStorePassesThrough(t *testing.T) {
	t.Parallel()

	next := teammock.NewQueryRepository(t)
	next.On("SearchByName", mock.Anything, "city", 5).Return(nil, nil).Twice()

	repo := NewTeamQueryRepository(next, nil)

	_, err := repo.SearchByName(context.Background(), "city", 5)
	require.NoError(t, err)
	_, err = repo.SearchByName(context.Background(), "city", 5)
	require.NoError(t, err)
}
