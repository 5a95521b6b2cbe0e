package match

import "context"

type Repository interface {
	UpsertMany(ctx context.Context, items []Match) error
	// ListFinishedWithoutPlayerStats returns fixture ids of finished matches
	// that have no raw player-stats response yet, most recent match first.
	ListFinishedWithoutPlayerStats(ctx context.Context, limit int) ([]int64, error)
}

type QueryRepository interface {
	ListRecentByTeamName(ctx context.Context, teamName string, limit int) ([]Result, error)
	ListHeadToHead(ctx context.Context, teamA, teamB string, limit int) ([]Result, error)
}
