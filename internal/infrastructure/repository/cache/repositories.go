package cache

import (
	"context"
	"strconv"
	"strings"

	"github.com/AboladeOluwaseun/epl-stats-bot/internal/domain/match"
	"github.com/AboladeOluwaseun/epl-stats-bot/internal/domain/player"
	"github.com/AboladeOluwaseun/epl-stats-bot/internal/domain/playerstat"
	"github.com/AboladeOluwaseun/epl-stats-bot/internal/domain/standing"
	"github.com/AboladeOluwaseun/epl-stats-bot/internal/domain/team"
	basecache "github.com/AboladeOluwaseun/epl-stats-bot/internal/platform/cache"
)

// KeyPrefix namespaces every lookup entry so a pipeline run can drop them at once.
const KeyPrefix = "lookup:"

func nameKey(kind, name string, limit int) string {
	return KeyPrefix + kind + ":" + strings.ToLower(strings.TrimSpace(name)) + ":" + strconv.Itoa(limit)
}

type TeamQueryRepository struct {
	next  team.QueryRepository
	cache *basecache.Store
}

func NewTeamQueryRepository(next team.QueryRepository, cache *basecache.Store) *TeamQueryRepository {
	return &TeamQueryRepository{next: next, cache: cache}
}

func (r *TeamQueryRepository) SearchByName(ctx context.Context, name string, limit int) ([]team.Team, error) {
	items, err := basecache.Load(ctx, r.cache, nameKey("team:search", name, limit), func(ctx context.Context) ([]team.Team, error) {
		return r.next.SearchByName(ctx, name, limit)
	})
	if err != nil {
		return nil, err
	}
	return append([]team.Team(nil), items...), nil
}

type PlayerQueryRepository struct {
	next  player.QueryRepository
	cache *basecache.Store
}

func NewPlayerQueryRepository(next player.QueryRepository, cache *basecache.Store) *PlayerQueryRepository {
	return &PlayerQueryRepository{next: next, cache: cache}
}

func (r *PlayerQueryRepository) SearchByName(ctx context.Context, name string, limit int) ([]player.Player, error) {
	items, err := basecache.Load(ctx, r.cache, nameKey("player:search", name, limit), func(ctx context.Context) ([]player.Player, error) {
		return r.next.SearchByName(ctx, name, limit)
	})
	if err != nil {
		return nil, err
	}
	return append([]player.Player(nil), items...), nil
}

type PlayerStatQueryRepository struct {
	next  playerstat.QueryRepository
	cache *basecache.Store
}

func NewPlayerStatQueryRepository(next playerstat.QueryRepository, cache *basecache.Store) *PlayerStatQueryRepository {
	return &PlayerStatQueryRepository{next: next, cache: cache}
}

func (r *PlayerStatQueryRepository) ListRecentByPlayer(ctx context.Context, playerID int64, limit int) ([]playerstat.MatchLine, error) {
	key := KeyPrefix + "player:stats:" + strconv.FormatInt(playerID, 10) + ":" + strconv.Itoa(limit)
	items, err := basecache.Load(ctx, r.cache, key, func(ctx context.Context) ([]playerstat.MatchLine, error) {
		return r.next.ListRecentByPlayer(ctx, playerID, limit)
	})
	if err != nil {
		return nil, err
	}
	return append([]playerstat.MatchLine(nil), items...), nil
}

type MatchQueryRepository struct {
	next  match.QueryRepository
	cache *basecache.Store
}

func NewMatchQueryRepository(next match.QueryRepository, cache *basecache.Store) *MatchQueryRepository {
	return &MatchQueryRepository{next: next, cache: cache}
}

func (r *MatchQueryRepository) ListRecentByTeamName(ctx context.Context, teamName string, limit int) ([]match.Result, error) {
	items, err := basecache.Load(ctx, r.cache, nameKey("match:team", teamName, limit), func(ctx context.Context) ([]match.Result, error) {
		return r.next.ListRecentByTeamName(ctx, teamName, limit)
	})
	if err != nil {
		return nil, err
	}
	return append([]match.Result(nil), items...), nil
}

func (r *MatchQueryRepository) ListHeadToHead(ctx context.Context, teamA, teamB string, limit int) ([]match.Result, error) {
	pair := strings.ToLower(strings.TrimSpace(teamA)) + "|" + strings.ToLower(strings.TrimSpace(teamB))
	items, err := basecache.Load(ctx, r.cache, nameKey("match:h2h", pair, limit), func(ctx context.Context) ([]match.Result, error) {
		return r.next.ListHeadToHead(ctx, teamA, teamB, limit)
	})
	if err != nil {
		return nil, err
	}
	return append([]match.Result(nil), items...), nil
}

type StandingQueryRepository struct {
	next  standing.QueryRepository
	cache *basecache.Store
}

func NewStandingQueryRepository(next standing.QueryRepository, cache *basecache.Store) *StandingQueryRepository {
	return &StandingQueryRepository{next: next, cache: cache}
}

func (r *StandingQueryRepository) ListBySeason(ctx context.Context, leagueID int64, season int) ([]standing.Standing, error) {
	key := KeyPrefix + "standing:" + strconv.FormatInt(leagueID, 10) + ":" + strconv.Itoa(season)
	items, err := basecache.Load(ctx, r.cache, key, func(ctx context.Context) ([]standing.Standing, error) {
		return r.next.ListBySeason(ctx, leagueID, season)
	})
	if err != nil {
		return nil, err
	}
	return append([]standing.Standing(nil), items...), nil
}

func (r *StandingQueryRepository) LatestSeason(ctx context.Context, leagueID int64) (int, bool, error) {
	key := KeyPrefix + "standing:latest:" + strconv.FormatInt(leagueID, 10)
	cached, err := basecache.Load(ctx, r.cache, key, func(ctx context.Context) (cachedLatestSeason, error) {
		season, ok, err := r.next.LatestSeason(ctx, leagueID)
		if err != nil {
			return cachedLatestSeason{}, err
		}
		return cachedLatestSeason{season: season, exists: ok}, nil
	})
	if err != nil {
		return 0, false, err
	}
	return cached.season, cached.exists, nil
}

type cachedLatestSeason struct {
	season int
	exists bool
}
