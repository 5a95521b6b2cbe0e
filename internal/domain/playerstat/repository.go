package playerstat

import "context"

type Repository interface {
	UpsertMany(ctx context.Context, items []Stat) error
}

type QueryRepository interface {
	ListRecentByPlayer(ctx context.Context, playerID int64, limit int) ([]MatchLine, error)
}
