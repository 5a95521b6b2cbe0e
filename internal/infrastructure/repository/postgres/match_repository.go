package postgres

import (
	"context"
	"fmt"

	"github.com/AboladeOluwaseun/epl-stats-bot/internal/domain/match"
	"github.com/AboladeOluwaseun/epl-stats-bot/internal/domain/rawresponse"
	qb "github.com/AboladeOluwaseun/epl-stats-bot/internal/platform/querybuilder"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
)

var matchResultColumns = []string{
	"m.fixture_id",
	"m.season",
	"m.round",
	"m.match_date",
	"m.status_short",
	"h.team_name AS home_team",
	"a.team_name AS away_team",
	"m.home_goals",
	"m.away_goals",
	"m.winner",
}

const (
	joinHomeTeam = "JOIN dim_teams h ON h.team_id = m.home_team_id"
	joinAwayTeam = "JOIN dim_teams a ON a.team_id = m.away_team_id"
)

type MatchRepository struct {
	db *sqlx.DB
}

func NewMatchRepository(db *sqlx.DB) *MatchRepository {
	return &MatchRepository{db: db}
}

func (r *MatchRepository) UpsertMany(ctx context.Context, items []match.Match) error {
	rows := make([]matchTableModel, 0, len(items))
	for _, item := range items {
		rows = append(rows, matchTableModel{
			FixtureID:     item.FixtureID,
			LeagueID:      item.LeagueID,
			Season:        item.Season,
			Round:         nullableString(item.Round),
			MatchDate:     item.MatchDate,
			Referee:       item.Referee,
			VenueID:       item.VenueID,
			StatusShort:   item.StatusShort,
			StatusLong:    nullableString(item.StatusLong),
			Elapsed:       item.Elapsed,
			HomeTeamID:    item.HomeTeamID,
			AwayTeamID:    item.AwayTeamID,
			HomeGoals:     item.HomeGoals,
			AwayGoals:     item.AwayGoals,
			HalftimeHome:  item.HalftimeHome,
			HalftimeAway:  item.HalftimeAway,
			ExtratimeHome: item.ExtratimeHome,
			ExtratimeAway: item.ExtratimeAway,
			PenaltyHome:   item.PenaltyHome,
			PenaltyAway:   item.PenaltyAway,
			Winner:        item.Winner,
		})
	}
	return upsertRows(ctx, r.db, "matches", rows, overwriteSuffix(matchTableModel{}, "fixture_id"))
}

func (r *MatchRepository) ListFinishedWithoutPlayerStats(ctx context.Context, limit int) ([]int64, error) {
	query, args, err := qb.Select("m.fixture_id").
		From("matches m").
		Where(
			qb.Expr("m.status_short = ANY(?)", pq.Array(match.FinishedStatuses)),
			qb.Expr(
				"NOT EXISTS (SELECT 1 FROM raw_api_responses r WHERE r.endpoint = ? AND r.request_params->>'fixture' = m.fixture_id::text)",
				rawresponse.EndpointFixturePlayers,
			),
		).
		OrderBy("m.match_date DESC", "m.fixture_id DESC").
		Limit(limit).
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build player stats work set query: %w", err)
	}

	var ids []int64
	if err := r.db.SelectContext(ctx, &ids, query, args...); err != nil {
		return nil, fmt.Errorf("select fixtures without player stats: %w", err)
	}
	return ids, nil
}

func (r *MatchRepository) ListRecentByTeamName(ctx context.Context, teamName string, limit int) ([]match.Result, error) {
	query, args, err := qb.Select(matchResultColumns...).
		From("matches m").
		Join(joinHomeTeam).
		Join(joinAwayTeam).
		Where(
			qb.Or(qb.ILike("h.team_name", teamName), qb.ILike("a.team_name", teamName)),
			qb.Expr("m.status_short = ANY(?)", pq.Array(match.FinishedStatuses)),
		).
		OrderBy("m.match_date DESC").
		Limit(normalizeLimit(limit, 5, 50)).
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build team results query: %w", err)
	}
	return r.selectResults(ctx, query, args)
}

func (r *MatchRepository) ListHeadToHead(ctx context.Context, teamA, teamB string, limit int) ([]match.Result, error) {
	query, args, err := qb.Select(matchResultColumns...).
		From("matches m").
		Join(joinHomeTeam).
		Join(joinAwayTeam).
		Where(
			qb.Or(
				qb.And(qb.ILike("h.team_name", teamA), qb.ILike("a.team_name", teamB)),
				qb.And(qb.ILike("h.team_name", teamB), qb.ILike("a.team_name", teamA)),
			),
			qb.Expr("m.status_short = ANY(?)", pq.Array(match.FinishedStatuses)),
		).
		OrderBy("m.match_date DESC").
		Limit(normalizeLimit(limit, 5, 50)).
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build head to head query: %w", err)
	}
	return r.selectResults(ctx, query, args)
}

func (r *MatchRepository) selectResults(ctx context.Context, query string, args []any) ([]match.Result, error) {
	var rows []matchResultModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("select match results: %w", err)
	}

	out := make([]match.Result, 0, len(rows))
	for _, row := range rows {
		out = append(out, match.Result{
			FixtureID:   row.FixtureID,
			Season:      row.Season,
			Round:       stringValue(row.Round),
			MatchDate:   row.MatchDate,
			StatusShort: row.StatusShort,
			HomeTeam:    row.HomeTeam,
			AwayTeam:    row.AwayTeam,
			HomeGoals:   row.HomeGoals,
			AwayGoals:   row.AwayGoals,
			Winner:      row.Winner,
		})
	}
	return out, nil
}
