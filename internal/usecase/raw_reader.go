package usecase

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"sync"

	"github.com/AboladeOluwaseun/epl-stats-bot/internal/domain/rawresponse"
	"github.com/AboladeOluwaseun/epl-stats-bot/internal/platform/logging"
	"github.com/bytedance/sonic"
	"github.com/panjf2000/ants/v2"
)

// ProcessorOptions is shared by every transform/load processor.
type ProcessorOptions struct {
	// DecodeWorkers bounds concurrent payload decoding. 1 or less decodes
	// sequentially.
	DecodeWorkers int
	Logger        *logging.Logger
}

type rawReader struct {
	repo    rawresponse.Repository
	workers int
	logger  *logging.Logger
}

func newRawReader(repo rawresponse.Repository, opts ProcessorOptions) *rawReader {
	logger := opts.Logger
	if logger == nil {
		logger = logging.Default()
	}
	workers := opts.DecodeWorkers
	if workers < 1 {
		workers = 1
	}
	return &rawReader{repo: repo, workers: workers, logger: logger}
}

type decodedRaw[T any] struct {
	raw      rawresponse.RawResponse
	envelope apiEnvelope[T]
}

// readDecoded returns every stored response for endpoint, oldest fetch first,
// with its body decoded. Rows that fail to decode are logged and skipped.
func readDecoded[T any](ctx context.Context, r *rawReader, endpoint string) ([]decodedRaw[T], error) {
	rows, err := r.repo.ListByEndpoint(ctx, endpoint)
	if err != nil {
		return nil, fmt.Errorf("list raw responses endpoint=%s: %w", endpoint, err)
	}
	if len(rows) == 0 {
		r.logger.InfoContext(ctx, "no raw responses to process", "endpoint", endpoint)
		return nil, nil
	}

	sort.SliceStable(rows, func(i, j int) bool {
		if rows[i].FetchedAt.Equal(rows[j].FetchedAt) {
			return rows[i].ID < rows[j].ID
		}
		return rows[i].FetchedAt.Before(rows[j].FetchedAt)
	})

	results := make([]decodedRaw[T], len(rows))
	failed := make([]error, len(rows))
	skipped := make([][]skippedRecord, len(rows))
	decode := func(idx int) {
		results[idx].raw = rows[idx]
		results[idx].envelope, skipped[idx], failed[idx] = decodeEnvelope[T](rows[idx].ResponseData)
	}

	if r.workers <= 1 || len(rows) == 1 {
		for idx := range rows {
			decode(idx)
		}
	} else {
		pool, err := ants.NewPool(r.workers)
		if err != nil {
			return nil, fmt.Errorf("create decode pool: %w", err)
		}
		defer pool.Release()

		var wg sync.WaitGroup
		for idx := range rows {
			idx := idx
			wg.Add(1)
			if err := pool.Submit(func() {
				defer wg.Done()
				decode(idx)
			}); err != nil {
				wg.Done()
				failed[idx] = fmt.Errorf("submit decode task: %w", err)
			}
		}
		wg.Wait()
	}

	out := make([]decodedRaw[T], 0, len(rows))
	for idx := range results {
		if failed[idx] != nil {
			r.logger.WarnContext(ctx, "skip undecodable raw response",
				"endpoint", endpoint,
				"response_id", rows[idx].ID,
				"error", failed[idx],
			)
			continue
		}
		for _, rec := range skipped[idx] {
			r.logger.WarnContext(ctx, "skip malformed record",
				"endpoint", endpoint,
				"response_id", rows[idx].ID,
				"record_index", rec.index,
				"error", rec.err,
			)
		}
		out = append(out, results[idx])
	}
	return out, nil
}

type skippedRecord struct {
	index int
	err   error
}

// decodeEnvelope decodes the provider wrapper first and each response entry on
// its own, so one malformed entry costs only that entry. An error means the
// wrapper itself is unreadable.
func decodeEnvelope[T any](body []byte) (apiEnvelope[T], []skippedRecord, error) {
	var wrapper struct {
		Parameters any               `json:"parameters"`
		Response   []json.RawMessage `json:"response"`
	}
	if err := sonic.Unmarshal(body, &wrapper); err != nil {
		return apiEnvelope[T]{}, nil, err
	}

	env := apiEnvelope[T]{
		Parameters: wrapper.Parameters,
		Response:   make([]T, 0, len(wrapper.Response)),
	}
	var skipped []skippedRecord
	for i, elem := range wrapper.Response {
		var entry T
		if err := sonic.Unmarshal(elem, &entry); err != nil {
			skipped = append(skipped, skippedRecord{index: i, err: err})
			continue
		}
		env.Response = append(env.Response, entry)
	}
	return env, skipped, nil
}

// dedupLast keeps the last item seen for each key, in first-seen key order.
func dedupLast[T any, K comparable](items []T, key func(T) K) []T {
	if len(items) == 0 {
		return nil
	}
	index := make(map[K]int, len(items))
	out := make([]T, 0, len(items))
	for _, item := range items {
		k := key(item)
		if pos, ok := index[k]; ok {
			out[pos] = item
			continue
		}
		index[k] = len(out)
		out = append(out, item)
	}
	return out
}
