package memory

import (
	"context"
	"fmt"
	"slices"
	"sync"

	"github.com/AboladeOluwaseun/epl-stats-bot/internal/domain/rawresponse"
	"github.com/itbasis/go-clock"
)

type RawResponseRepository struct {
	mu     sync.RWMutex
	clock  clock.Clock
	nextID int64
	rows   []rawresponse.RawResponse
}

func NewRawResponseRepository(clk clock.Clock) *RawResponseRepository {
	if clk == nil {
		clk = clock.New()
	}
	return &RawResponseRepository{clock: clk}
}

func (r *RawResponseRepository) Insert(_ context.Context, endpoint string, params map[string]any, payload []byte) (int64, error) {
	if len(payload) == 0 {
		return 0, fmt.Errorf("insert raw response endpoint=%s: empty payload", endpoint)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	r.nextID++
	r.rows = append(r.rows, rawresponse.RawResponse{
		ID:            r.nextID,
		Endpoint:      endpoint,
		RequestParams: normalizeParams(params),
		ResponseData:  append([]byte(nil), payload...),
		FetchedAt:     r.clock.Now().UTC(),
	})
	return r.nextID, nil
}

func (r *RawResponseRepository) ListByEndpoint(_ context.Context, endpoint string) ([]rawresponse.RawResponse, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]rawresponse.RawResponse, 0)
	for _, row := range r.rows {
		if row.Endpoint == endpoint {
			out = append(out, row)
		}
	}
	slices.SortStableFunc(out, func(a, b rawresponse.RawResponse) int {
		if c := b.FetchedAt.Compare(a.FetchedAt); c != 0 {
			return c
		}
		switch {
		case a.ID > b.ID:
			return -1
		case a.ID < b.ID:
			return 1
		}
		return 0
	})
	return out, nil
}

func (r *RawResponseRepository) CountByEndpoint(ctx context.Context, endpoint string) (int, error) {
	rows, err := r.ListByEndpoint(ctx, endpoint)
	return len(rows), err
}

func (r *RawResponseRepository) hasParam(endpoint, key, value string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, row := range r.rows {
		if row.Endpoint == endpoint && row.Param(key) == value {
			return true
		}
	}
	return false
}

// normalizeParams mirrors a JSONB round trip: numbers come back as float64.
func normalizeParams(params map[string]any) map[string]any {
	out := make(map[string]any, len(params))
	for k, v := range params {
		switch t := v.(type) {
		case int:
			out[k] = float64(t)
		case int64:
			out[k] = float64(t)
		default:
			out[k] = v
		}
	}
	return out
}
