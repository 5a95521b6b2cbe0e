package team

import "context"

// Repository describes team persistence needs from use cases.
type Repository interface {
	UpsertMany(ctx context.Context, items []Team) error
}

// QueryRepository serves read-only lookups.
type QueryRepository interface {
	SearchByName(ctx context.Context, name string, limit int) ([]Team, error)
}
