package memory

import (
	"context"
	"slices"
	"strconv"

	"github.com/AboladeOluwaseun/epl-stats-bot/internal/domain/league"
	"github.com/AboladeOluwaseun/epl-stats-bot/internal/domain/match"
	"github.com/AboladeOluwaseun/epl-stats-bot/internal/domain/player"
	"github.com/AboladeOluwaseun/epl-stats-bot/internal/domain/playerstat"
	"github.com/AboladeOluwaseun/epl-stats-bot/internal/domain/rawresponse"
	"github.com/AboladeOluwaseun/epl-stats-bot/internal/domain/season"
	"github.com/AboladeOluwaseun/epl-stats-bot/internal/domain/standing"
	"github.com/AboladeOluwaseun/epl-stats-bot/internal/domain/team"
	"github.com/AboladeOluwaseun/epl-stats-bot/internal/domain/venue"
)

type LeagueRepository struct {
	rows *table[int64, league.League]
}

func NewLeagueRepository() *LeagueRepository {
	return &LeagueRepository{rows: newTable[int64, league.League]()}
}

func (r *LeagueRepository) UpsertMany(_ context.Context, items []league.League) error {
	for _, item := range items {
		r.rows.upsert(item.LeagueID, func(league.League, bool) league.League { return item })
	}
	return nil
}

func (r *LeagueRepository) GetByID(_ context.Context, leagueID int64) (league.League, bool, error) {
	l, ok := r.rows.get(leagueID)
	return l, ok, nil
}

func (r *LeagueRepository) List() []league.League { return r.rows.list() }

type seasonKey struct {
	leagueID int64
	year     int
}

type SeasonRepository struct {
	rows *table[seasonKey, season.Season]
}

func NewSeasonRepository() *SeasonRepository {
	return &SeasonRepository{rows: newTable[seasonKey, season.Season]()}
}

func (r *SeasonRepository) UpsertMany(_ context.Context, items []season.Season) error {
	for _, item := range items {
		r.rows.upsert(seasonKey{item.LeagueID, item.Year}, func(season.Season, bool) season.Season { return item })
	}
	return nil
}

func (r *SeasonRepository) ListByLeague(_ context.Context, leagueID int64) ([]season.Season, error) {
	out := make([]season.Season, 0)
	for _, s := range r.rows.list() {
		if s.LeagueID == leagueID {
			out = append(out, s)
		}
	}
	slices.SortFunc(out, func(a, b season.Season) int { return a.Year - b.Year })
	return out, nil
}

type VenueRepository struct {
	rows *table[int64, venue.Venue]
}

func NewVenueRepository() *VenueRepository {
	return &VenueRepository{rows: newTable[int64, venue.Venue]()}
}

func (r *VenueRepository) UpsertMany(_ context.Context, items []venue.Venue) error {
	for _, item := range items {
		r.rows.upsert(item.VenueID, func(venue.Venue, bool) venue.Venue { return item })
	}
	return nil
}

func (r *VenueRepository) UpsertPartial(_ context.Context, items []venue.Venue) error {
	for _, item := range items {
		r.rows.upsert(item.VenueID, func(existing venue.Venue, ok bool) venue.Venue {
			if !ok {
				return venue.Venue{VenueID: item.VenueID, Name: item.Name, City: item.City}
			}
			existing.Name = item.Name
			if item.City != nil {
				existing.City = item.City
			}
			return existing
		})
	}
	return nil
}

func (r *VenueRepository) Get(id int64) (venue.Venue, bool) { return r.rows.get(id) }
func (r *VenueRepository) Len() int                         { return r.rows.len() }

type TeamRepository struct {
	rows *table[int64, team.Team]
}

func NewTeamRepository() *TeamRepository {
	return &TeamRepository{rows: newTable[int64, team.Team]()}
}

func (r *TeamRepository) UpsertMany(_ context.Context, items []team.Team) error {
	for _, item := range items {
		r.rows.upsert(item.TeamID, func(team.Team, bool) team.Team { return item })
	}
	return nil
}

func (r *TeamRepository) Get(id int64) (team.Team, bool) { return r.rows.get(id) }
func (r *TeamRepository) Len() int                       { return r.rows.len() }

type MatchRepository struct {
	rows *table[int64, match.Match]
	raw  *RawResponseRepository
}

// NewMatchRepository checks raw against the player-stats work set.
func NewMatchRepository(raw *RawResponseRepository) *MatchRepository {
	return &MatchRepository{rows: newTable[int64, match.Match](), raw: raw}
}

func (r *MatchRepository) UpsertMany(_ context.Context, items []match.Match) error {
	for _, item := range items {
		r.rows.upsert(item.FixtureID, func(match.Match, bool) match.Match { return item })
	}
	return nil
}

func (r *MatchRepository) ListFinishedWithoutPlayerStats(_ context.Context, limit int) ([]int64, error) {
	candidates := make([]match.Match, 0)
	for _, m := range r.rows.list() {
		if !match.IsFinished(m.StatusShort) {
			continue
		}
		if r.raw != nil && r.raw.hasParam(rawresponse.EndpointFixturePlayers, "fixture", strconv.FormatInt(m.FixtureID, 10)) {
			continue
		}
		candidates = append(candidates, m)
	}
	slices.SortStableFunc(candidates, func(a, b match.Match) int {
		if c := b.MatchDate.Compare(a.MatchDate); c != 0 {
			return c
		}
		switch {
		case a.FixtureID > b.FixtureID:
			return -1
		case a.FixtureID < b.FixtureID:
			return 1
		}
		return 0
	})

	out := make([]int64, 0, len(candidates))
	for _, m := range candidates {
		if limit > 0 && len(out) >= limit {
			break
		}
		out = append(out, m.FixtureID)
	}
	return out, nil
}

func (r *MatchRepository) Get(id int64) (match.Match, bool) { return r.rows.get(id) }
func (r *MatchRepository) Len() int                         { return r.rows.len() }

type PlayerRepository struct {
	rows *table[int64, player.Player]
}

func NewPlayerRepository() *PlayerRepository {
	return &PlayerRepository{rows: newTable[int64, player.Player]()}
}

func (r *PlayerRepository) UpsertSkeletons(_ context.Context, items []player.Player) error {
	for _, item := range items {
		r.rows.upsert(item.PlayerID, func(existing player.Player, ok bool) player.Player {
			if !ok {
				return player.Player{PlayerID: item.PlayerID, Name: item.Name, PhotoURL: item.PhotoURL}
			}
			existing.Name = item.Name
			if item.PhotoURL != nil {
				existing.PhotoURL = item.PhotoURL
			}
			return existing
		})
	}
	return nil
}

func (r *PlayerRepository) UpsertProfiles(_ context.Context, items []player.Player) error {
	for _, item := range items {
		r.rows.upsert(item.PlayerID, func(player.Player, bool) player.Player { return item })
	}
	return nil
}

func (r *PlayerRepository) ListSkeletonIDs(_ context.Context, limit int) ([]int64, error) {
	ids := make([]int64, 0)
	for _, p := range r.rows.list() {
		if p.IsSkeleton() {
			ids = append(ids, p.PlayerID)
		}
	}
	slices.Sort(ids)
	if limit > 0 && len(ids) > limit {
		ids = ids[:limit]
	}
	return ids, nil
}

func (r *PlayerRepository) Get(id int64) (player.Player, bool) { return r.rows.get(id) }
func (r *PlayerRepository) Len() int                           { return r.rows.len() }

type statKey struct {
	fixtureID int64
	playerID  int64
}

type PlayerStatRepository struct {
	rows *table[statKey, playerstat.Stat]
}

func NewPlayerStatRepository() *PlayerStatRepository {
	return &PlayerStatRepository{rows: newTable[statKey, playerstat.Stat]()}
}

func (r *PlayerStatRepository) UpsertMany(_ context.Context, items []playerstat.Stat) error {
	for _, item := range items {
		r.rows.upsert(statKey{item.FixtureID, item.PlayerID}, func(playerstat.Stat, bool) playerstat.Stat { return item })
	}
	return nil
}

func (r *PlayerStatRepository) Get(fixtureID, playerID int64) (playerstat.Stat, bool) {
	return r.rows.get(statKey{fixtureID, playerID})
}
func (r *PlayerStatRepository) Len() int { return r.rows.len() }

type standingKey struct {
	leagueID int64
	season   int
	teamID   int64
}

type StandingRepository struct {
	rows *table[standingKey, standing.Standing]
}

func NewStandingRepository() *StandingRepository {
	return &StandingRepository{rows: newTable[standingKey, standing.Standing]()}
}

func (r *StandingRepository) UpsertMany(_ context.Context, items []standing.Standing) error {
	for _, item := range items {
		r.rows.upsert(standingKey{item.LeagueID, item.Season, item.TeamID}, func(standing.Standing, bool) standing.Standing { return item })
	}
	return nil
}

func (r *StandingRepository) List() []standing.Standing { return r.rows.list() }
