package postgres

import (
	"context"
	"fmt"

	"github.com/AboladeOluwaseun/epl-stats-bot/internal/domain/player"
	qb "github.com/AboladeOluwaseun/epl-stats-bot/internal/platform/querybuilder"
	"github.com/jmoiron/sqlx"
)

type PlayerRepository struct {
	db *sqlx.DB
}

func NewPlayerRepository(db *sqlx.DB) *PlayerRepository {
	return &PlayerRepository{db: db}
}

func (r *PlayerRepository) UpsertSkeletons(ctx context.Context, items []player.Player) error {
	rows := make([]playerSkeletonInsertModel, 0, len(items))
	for _, item := range items {
		rows = append(rows, playerSkeletonInsertModel{
			PlayerID: item.PlayerID,
			Name:     item.Name,
			PhotoURL: item.PhotoURL,
		})
	}
	suffix := qb.OnConflict("player_id").
		DoUpdate("player_name").
		KeepExisting("dim_players", "photo_url").
		String()
	return upsertRows(ctx, r.db, "dim_players", rows, suffix)
}

func (r *PlayerRepository) UpsertProfiles(ctx context.Context, items []player.Player) error {
	rows := make([]playerTableModel, 0, len(items))
	for _, item := range items {
		age, number := item.Age, item.Number
		rows = append(rows, playerTableModel{
			PlayerID:     item.PlayerID,
			Name:         item.Name,
			Firstname:    item.Firstname,
			Lastname:     item.Lastname,
			Age:          &age,
			BirthDate:    item.BirthDate,
			BirthPlace:   item.BirthPlace,
			BirthCountry: item.BirthCountry,
			Nationality:  item.Nationality,
			Height:       item.Height,
			Weight:       item.Weight,
			Number:       &number,
			Position:     item.Position,
			PhotoURL:     item.PhotoURL,
		})
	}
	return upsertRows(ctx, r.db, "dim_players", rows, overwriteSuffix(playerTableModel{}, "player_id"))
}

func (r *PlayerRepository) ListSkeletonIDs(ctx context.Context, limit int) ([]int64, error) {
	query, args, err := qb.Select("player_id").From("dim_players").
		Where(qb.IsNull("firstname")).
		OrderBy("player_id").
		Limit(limit).
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build skeleton players query: %w", err)
	}

	var ids []int64
	if err := r.db.SelectContext(ctx, &ids, query, args...); err != nil {
		return nil, fmt.Errorf("select skeleton players: %w", err)
	}
	return ids, nil
}

func (r *PlayerRepository) SearchByName(ctx context.Context, name string, limit int) ([]player.Player, error) {
	query, args, err := qb.Select("*").From("dim_players").
		Where(qb.ILike("player_name", name)).
		OrderBy("player_name", "player_id").
		Limit(normalizeLimit(limit, 5, 50)).
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build search players query: %w", err)
	}

	var rows []playerTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("search players name=%q: %w", name, err)
	}

	out := make([]player.Player, 0, len(rows))
	for _, row := range rows {
		p := player.Player{
			PlayerID:     row.PlayerID,
			Name:         row.Name,
			Firstname:    row.Firstname,
			Lastname:     row.Lastname,
			BirthDate:    row.BirthDate,
			BirthPlace:   row.BirthPlace,
			BirthCountry: row.BirthCountry,
			Nationality:  row.Nationality,
			Height:       row.Height,
			Weight:       row.Weight,
			Position:     row.Position,
			PhotoURL:     row.PhotoURL,
		}
		if row.Age != nil {
			p.Age = *row.Age
		}
		if row.Number != nil {
			p.Number = *row.Number
		}
		out = append(out, p)
	}
	return out, nil
}
