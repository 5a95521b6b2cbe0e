package venue

import "context"

type Repository interface {
	// UpsertMany overwrites every column.
	UpsertMany(ctx context.Context, items []Venue) error
	// UpsertPartial writes name and city and never clears columns the
	// incoming row leaves unset.
	UpsertPartial(ctx context.Context, items []Venue) error
}
