package postgres

import (
	"context"
	"fmt"

	"github.com/AboladeOluwaseun/epl-stats-bot/internal/domain/team"
	qb "github.com/AboladeOluwaseun/epl-stats-bot/internal/platform/querybuilder"
	"github.com/jmoiron/sqlx"
)

type TeamRepository struct {
	db *sqlx.DB
}

func NewTeamRepository(db *sqlx.DB) *TeamRepository {
	return &TeamRepository{db: db}
}

func (r *TeamRepository) UpsertMany(ctx context.Context, items []team.Team) error {
	rows := make([]teamTableModel, 0, len(items))
	for _, item := range items {
		rows = append(rows, teamTableModel{
			TeamID:   item.TeamID,
			Name:     item.Name,
			Code:     nullableString(item.Code),
			Country:  nullableString(item.Country),
			Founded:  item.Founded,
			National: item.National,
			LogoURL:  nullableString(item.LogoURL),
			VenueID:  item.VenueID,
		})
	}
	return upsertRows(ctx, r.db, "dim_teams", rows, overwriteSuffix(teamTableModel{}, "team_id"))
}

func (r *TeamRepository) SearchByName(ctx context.Context, name string, limit int) ([]team.Team, error) {
	query, args, err := qb.Select("*").From("dim_teams").
		Where(qb.ILike("team_name", name)).
		OrderBy("team_name").
		Limit(normalizeLimit(limit, 5, 50)).
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build search teams query: %w", err)
	}

	var rows []teamTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("search teams name=%q: %w", name, err)
	}

	out := make([]team.Team, 0, len(rows))
	for _, row := range rows {
		out = append(out, team.Team{
			TeamID:   row.TeamID,
			Name:     row.Name,
			Code:     stringValue(row.Code),
			Country:  stringValue(row.Country),
			Founded:  row.Founded,
			National: row.National,
			LogoURL:  stringValue(row.LogoURL),
			VenueID:  row.VenueID,
		})
	}
	return out, nil
}
