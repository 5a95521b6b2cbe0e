package postgres

import (
	"context"
	"fmt"

	"github.com/AboladeOluwaseun/epl-stats-bot/internal/domain/league"
	qb "github.com/AboladeOluwaseun/epl-stats-bot/internal/platform/querybuilder"
	"github.com/jmoiron/sqlx"
)

type LeagueRepository struct {
	db *sqlx.DB
}

func NewLeagueRepository(db *sqlx.DB) *LeagueRepository {
	return &LeagueRepository{db: db}
}

func (r *LeagueRepository) UpsertMany(ctx context.Context, items []league.League) error {
	rows := make([]leagueTableModel, 0, len(items))
	for _, item := range items {
		rows = append(rows, leagueTableModel{
			LeagueID:        item.LeagueID,
			Name:            item.Name,
			Type:            nullableString(item.Type),
			Country:         nullableString(item.Country),
			CountryCode:     nullableString(item.CountryCode),
			LogoURL:         nullableString(item.LogoURL),
			FlagURL:         nullableString(item.FlagURL),
			NumberOfSeasons: item.SeasonCount,
		})
	}
	return upsertRows(ctx, r.db, "leagues", rows, overwriteSuffix(leagueTableModel{}, "league_id"))
}

func (r *LeagueRepository) GetByID(ctx context.Context, leagueID int64) (league.League, bool, error) {
	query, args, err := qb.Select("*").From("leagues").
		Where(qb.Eq("league_id", leagueID)).
		ToSQL()
	if err != nil {
		return league.League{}, false, fmt.Errorf("build get league by id query: %w", err)
	}

	var row leagueTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return league.League{}, false, nil
		}
		return league.League{}, false, fmt.Errorf("get league by id: %w", err)
	}

	return league.League{
		LeagueID:    row.LeagueID,
		Name:        row.Name,
		Type:        stringValue(row.Type),
		Country:     stringValue(row.Country),
		CountryCode: stringValue(row.CountryCode),
		LogoURL:     stringValue(row.LogoURL),
		FlagURL:     stringValue(row.FlagURL),
		SeasonCount: row.NumberOfSeasons,
	}, true, nil
}
