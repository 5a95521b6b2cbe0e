package postgres

import (
	"context"

	"github.com/AboladeOluwaseun/epl-stats-bot/internal/domain/venue"
	qb "github.com/AboladeOluwaseun/epl-stats-bot/internal/platform/querybuilder"
	"github.com/jmoiron/sqlx"
)

type VenueRepository struct {
	db *sqlx.DB
}

func NewVenueRepository(db *sqlx.DB) *VenueRepository {
	return &VenueRepository{db: db}
}

func (r *VenueRepository) UpsertMany(ctx context.Context, items []venue.Venue) error {
	rows := make([]venueTableModel, 0, len(items))
	for _, item := range items {
		rows = append(rows, venueTableModel(item))
	}
	return upsertRows(ctx, r.db, "dim_venues", rows, overwriteSuffix(venueTableModel{}, "venue_id"))
}

func (r *VenueRepository) UpsertPartial(ctx context.Context, items []venue.Venue) error {
	rows := make([]venuePartialInsertModel, 0, len(items))
	for _, item := range items {
		rows = append(rows, venuePartialInsertModel{
			VenueID: item.VenueID,
			Name:    item.Name,
			City:    item.City,
		})
	}
	suffix := qb.OnConflict("venue_id").
		DoUpdate("venue_name").
		KeepExisting("dim_venues", "city").
		String()
	return upsertRows(ctx, r.db, "dim_venues", rows, suffix)
}
