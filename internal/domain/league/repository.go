package league

import "context"

// Repository describes league persistence needs from use cases.
type Repository interface {
	UpsertMany(ctx context.Context, items []League) error
	GetByID(ctx context.Context, leagueID int64) (League, bool, error)
}
