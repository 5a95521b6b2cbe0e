package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/AboladeOluwaseun/epl-stats-bot/internal/domain/standing"
	qb "github.com/AboladeOluwaseun/epl-stats-bot/internal/platform/querybuilder"
	"github.com/jmoiron/sqlx"
)

type StandingRepository struct {
	db *sqlx.DB
}

func NewStandingRepository(db *sqlx.DB) *StandingRepository {
	return &StandingRepository{db: db}
}

func (r *StandingRepository) UpsertMany(ctx context.Context, items []standing.Standing) error {
	rows := make([]standingTableModel, 0, len(items))
	for _, item := range items {
		rows = append(rows, standingTableModel{
			LeagueID:     item.LeagueID,
			Season:       item.Season,
			TeamID:       item.TeamID,
			TeamName:     item.TeamName,
			Rank:         item.Rank,
			Points:       item.Points,
			GoalsDiff:    item.GoalsDiff,
			GroupName:    nullableString(item.GroupName),
			Form:         nullableString(item.Form),
			Status:       nullableString(item.Status),
			Description:  nullableString(item.Description),
			Played:       item.Played,
			Win:          item.Win,
			Draw:         item.Draw,
			Lose:         item.Lose,
			GoalsFor:     item.GoalsFor,
			GoalsAgainst: item.GoalsAgainst,
			UpdatedAt:    item.UpdatedAt,
		})
	}
	return upsertRows(ctx, r.db, "fact_standings", rows, overwriteSuffix(standingTableModel{}, "league_id", "season", "team_id"))
}

func (r *StandingRepository) ListBySeason(ctx context.Context, leagueID int64, season int) ([]standing.Standing, error) {
	cols, err := qb.Columns(standingTableModel{})
	if err != nil {
		return nil, fmt.Errorf("standing columns: %w", err)
	}
	query, args, err := qb.Select(cols...).From("fact_standings").
		Where(qb.Eq("league_id", leagueID), qb.Eq("season", season)).
		OrderBy("rank", "team_id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list standings query: %w", err)
	}

	var rows []standingTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("select standings league=%d season=%d: %w", leagueID, season, err)
	}

	out := make([]standing.Standing, 0, len(rows))
	for _, row := range rows {
		out = append(out, standing.Standing{
			LeagueID:     row.LeagueID,
			Season:       row.Season,
			TeamID:       row.TeamID,
			TeamName:     row.TeamName,
			Rank:         row.Rank,
			Points:       row.Points,
			GoalsDiff:    row.GoalsDiff,
			GroupName:    stringValue(row.GroupName),
			Form:         stringValue(row.Form),
			Status:       stringValue(row.Status),
			Description:  stringValue(row.Description),
			Played:       row.Played,
			Win:          row.Win,
			Draw:         row.Draw,
			Lose:         row.Lose,
			GoalsFor:     row.GoalsFor,
			GoalsAgainst: row.GoalsAgainst,
			UpdatedAt:    row.UpdatedAt,
		})
	}
	return out, nil
}

func (r *StandingRepository) LatestSeason(ctx context.Context, leagueID int64) (int, bool, error) {
	query, args, err := qb.Select("MAX(season)").From("fact_standings").
		Where(qb.Eq("league_id", leagueID)).
		ToSQL()
	if err != nil {
		return 0, false, fmt.Errorf("build latest standings season query: %w", err)
	}

	var latest sql.NullInt64
	if err := r.db.GetContext(ctx, &latest, query, args...); err != nil {
		return 0, false, fmt.Errorf("select latest standings season league=%d: %w", leagueID, err)
	}
	if !latest.Valid {
		return 0, false, nil
	}
	return int(latest.Int64), true, nil
}
