package player

import "context"

type Repository interface {
	// UpsertSkeletons inserts unknown players and refreshes name and photo of
	// known ones without touching profile columns.
	UpsertSkeletons(ctx context.Context, items []Player) error
	UpsertProfiles(ctx context.Context, items []Player) error
	ListSkeletonIDs(ctx context.Context, limit int) ([]int64, error)
}

type QueryRepository interface {
	SearchByName(ctx context.Context, name string, limit int) ([]Player, error)
}
