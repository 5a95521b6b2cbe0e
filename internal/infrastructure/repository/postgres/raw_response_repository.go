package postgres

import (
	"context"
	"fmt"

	"github.com/AboladeOluwaseun/epl-stats-bot/internal/domain/rawresponse"
	qb "github.com/AboladeOluwaseun/epl-stats-bot/internal/platform/querybuilder"
	"github.com/bytedance/sonic"
	"github.com/jmoiron/sqlx"
)

var rawResponseColumns = []string{"response_id", "endpoint", "request_params", "response_data", "fetched_at"}

type RawResponseRepository struct {
	db *sqlx.DB
}

func NewRawResponseRepository(db *sqlx.DB) *RawResponseRepository {
	return &RawResponseRepository{db: db}
}

func (r *RawResponseRepository) Insert(ctx context.Context, endpoint string, params map[string]any, payload []byte) (int64, error) {
	if params == nil {
		params = map[string]any{}
	}
	paramsJSON, err := sonic.Marshal(params)
	if err != nil {
		return 0, fmt.Errorf("encode raw request params endpoint=%s: %w", endpoint, err)
	}
	if len(payload) == 0 {
		return 0, fmt.Errorf("insert raw response endpoint=%s: empty payload", endpoint)
	}

	query, args, err := qb.InsertModel("raw_api_responses", rawResponseInsertModel{
		Endpoint:      endpoint,
		RequestParams: string(paramsJSON),
		ResponseData:  string(payload),
	}, "RETURNING response_id")
	if err != nil {
		return 0, fmt.Errorf("build insert raw response query: %w", err)
	}

	var id int64
	if err := r.db.QueryRowxContext(ctx, query, args...).Scan(&id); err != nil {
		return 0, fmt.Errorf("insert raw response endpoint=%s: %w", endpoint, err)
	}
	return id, nil
}

func (r *RawResponseRepository) ListByEndpoint(ctx context.Context, endpoint string) ([]rawresponse.RawResponse, error) {
	query, args, err := qb.Select(rawResponseColumns...).
		From("raw_api_responses").
		Where(qb.Eq("endpoint", endpoint)).
		OrderBy("fetched_at DESC", "response_id DESC").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build select raw responses query: %w", err)
	}

	var rows []rawResponseTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("select raw responses endpoint=%s: %w", endpoint, err)
	}

	out := make([]rawresponse.RawResponse, 0, len(rows))
	for _, row := range rows {
		params := map[string]any{}
		if len(row.RequestParams) > 0 {
			if err := sonic.Unmarshal(row.RequestParams, &params); err != nil {
				return nil, fmt.Errorf("decode raw request params response_id=%d: %w", row.ID, err)
			}
		}
		out = append(out, rawresponse.RawResponse{
			ID:            row.ID,
			Endpoint:      row.Endpoint,
			RequestParams: params,
			ResponseData:  row.ResponseData,
			FetchedAt:     row.FetchedAt,
		})
	}
	return out, nil
}

func (r *RawResponseRepository) CountByEndpoint(ctx context.Context, endpoint string) (int, error) {
	query, args, err := qb.Select("COUNT(*)").
		From("raw_api_responses").
		Where(qb.Eq("endpoint", endpoint)).
		ToSQL()
	if err != nil {
		return 0, fmt.Errorf("build count raw responses query: %w", err)
	}

	var count int
	if err := r.db.GetContext(ctx, &count, query, args...); err != nil {
		return 0, fmt.Errorf("count raw responses endpoint=%s: %w", endpoint, err)
	}
	return count, nil
}
