package rawresponse

import "context"

// Repository is the append-only raw store.
type Repository interface {
	Insert(ctx context.Context, endpoint string, params map[string]any, payload []byte) (int64, error)
	// ListByEndpoint returns every row for endpoint, newest fetch first.
	ListByEndpoint(ctx context.Context, endpoint string) ([]RawResponse, error)
	CountByEndpoint(ctx context.Context, endpoint string) (int, error)
}
