package season

import "context"

type Repository interface {
	UpsertMany(ctx context.Context, items []Season) error
	ListByLeague(ctx context.Context, leagueID int64) ([]Season, error)
}
