package standing

import "context"

type Repository interface {
	UpsertMany(ctx context.Context, items []Standing) error
}

type QueryRepository interface {
	ListBySeason(ctx context.Context, leagueID int64, season int) ([]Standing, error)
	LatestSeason(ctx context.Context, leagueID int64) (int, bool, error)
}
