package usecase

import "context"

type APIPaging struct {
	Current int `json:"current"`
	Total   int `json:"total"`
}

// APIResponse is a successful provider response. Body is the raw JSON as
// received and is what the raw store persists.
type APIResponse struct {
	Endpoint      string
	Params        map[string]string
	Body          []byte
	Results       int
	Paging        APIPaging
	RateRemaining int
}

// FootballAPI is the provider client consumed by the fetch orchestrator.
type FootballAPI interface {
	Get(ctx context.Context, endpoint string, params map[string]string) (APIResponse, error)
}
