package postgres

import (
	"context"
	"fmt"

	"github.com/AboladeOluwaseun/epl-stats-bot/internal/domain/season"
	qb "github.com/AboladeOluwaseun/epl-stats-bot/internal/platform/querybuilder"
	"github.com/jmoiron/sqlx"
)

type SeasonRepository struct {
	db *sqlx.DB
}

func NewSeasonRepository(db *sqlx.DB) *SeasonRepository {
	return &SeasonRepository{db: db}
}

func (r *SeasonRepository) UpsertMany(ctx context.Context, items []season.Season) error {
	rows := make([]seasonTableModel, 0, len(items))
	for _, item := range items {
		rows = append(rows, seasonTableModel(item))
	}
	return upsertRows(ctx, r.db, "dim_seasons", rows, overwriteSuffix(seasonTableModel{}, "league_id", "season_year"))
}

func (r *SeasonRepository) ListByLeague(ctx context.Context, leagueID int64) ([]season.Season, error) {
	query, args, err := qb.Select("*").From("dim_seasons").
		Where(qb.Eq("league_id", leagueID)).
		OrderBy("season_year").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list seasons query: %w", err)
	}

	var rows []seasonTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("select seasons league=%d: %w", leagueID, err)
	}

	out := make([]season.Season, 0, len(rows))
	for _, row := range rows {
		out = append(out, season.Season(row))
	}
	return out, nil
}
