package httpapi

import (
	"bytes"
	"fmt"
	"io"
	"net/http"

	"github.com/AboladeOluwaseun/epl-stats-bot/internal/usecase"
	sonic "github.com/bytedance/sonic"
)

const maxJobBodyBytes = 64 << 10

var jobRequestDecoder = sonic.Config{DisallowUnknownFields: true}.Froze()

type fetchTeamsJobRequest struct {
	Seasons     []int `json:"seasons" validate:"omitempty,max=40,dive,gte=1990,lte=2100"`
	MultiSeason bool  `json:"multi_season"`
	Historical  bool  `json:"historical"`
}

type fetchFixturesJobRequest struct {
	Seasons []int  `json:"seasons" validate:"omitempty,max=40,dive,gte=1990,lte=2100"`
	Status  string `json:"status" validate:"omitempty,max=32"`
}

type fetchStandingsJobRequest struct {
	Seasons []int `json:"seasons" validate:"omitempty,max=40,dive,gte=1990,lte=2100"`
}

type limitJobRequest struct {
	Limit int `json:"limit" validate:"required,gte=1,lte=1000"`
}

type fetchProfilesJobRequest struct {
	Season int `json:"season" validate:"omitempty,gte=1990,lte=2100"`
}

func (h *Handler) RunFetchLeagueJob(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.RunFetchLeagueJob")
	defer span.End()

	summary, err := h.fetchService.FetchLeague(ctx)
	h.respondFetch(w, r.WithContext(ctx), summary, err)
}

func (h *Handler) RunFetchTeamsJob(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.RunFetchTeamsJob")
	defer span.End()

	var req fetchTeamsJobRequest
	if err := h.decodeJobRequest(r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}
	if req.MultiSeason && req.Historical {
		writeError(ctx, w, fmt.Errorf("%w: multi_season and historical are mutually exclusive", usecase.ErrInvalidInput))
		return
	}
	if req.Historical && len(req.Seasons) > 0 {
		writeError(ctx, w, fmt.Errorf("%w: seasons and historical are mutually exclusive", usecase.ErrInvalidInput))
		return
	}

	var (
		summary usecase.FetchSummary
		err     error
	)
	switch {
	case req.Historical:
		summary, err = h.fetchService.FetchTeamsHistorical(ctx)
	case req.MultiSeason:
		summary, err = h.fetchService.FetchTeamsMultiSeason(ctx, req.Seasons)
	default:
		summary, err = h.fetchService.FetchTeams(ctx, req.Seasons)
	}
	h.respondFetch(w, r.WithContext(ctx), summary, err)
}

func (h *Handler) RunFetchFixturesJob(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.RunFetchFixturesJob")
	defer span.End()

	var req fetchFixturesJobRequest
	if err := h.decodeJobRequest(r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}

	summary, err := h.fetchService.FetchFixtures(ctx, req.Seasons, req.Status)
	h.respondFetch(w, r.WithContext(ctx), summary, err)
}

func (h *Handler) RunFetchStandingsJob(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.RunFetchStandingsJob")
	defer span.End()

	var req fetchStandingsJobRequest
	if err := h.decodeJobRequest(r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}

	summary, err := h.fetchService.FetchStandings(ctx, req.Seasons)
	h.respondFetch(w, r.WithContext(ctx), summary, err)
}

func (h *Handler) RunFetchPlayerStatsJob(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.RunFetchPlayerStatsJob")
	defer span.End()

	var req limitJobRequest
	if err := h.decodeJobRequest(r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}

	summary, err := h.fetchService.FetchPlayerStats(ctx, req.Limit)
	h.respondFetch(w, r.WithContext(ctx), summary, err)
}

func (h *Handler) RunFetchPlayerProfilesJob(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.RunFetchPlayerProfilesJob")
	defer span.End()

	var req fetchProfilesJobRequest
	if err := h.decodeJobRequest(r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}

	summary, err := h.fetchService.FetchPlayerProfiles(ctx, req.Season)
	h.respondFetch(w, r.WithContext(ctx), summary, err)
}

func (h *Handler) RunRepairPlayerProfilesJob(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.RunRepairPlayerProfilesJob")
	defer span.End()

	var req limitJobRequest
	if err := h.decodeJobRequest(r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}

	summary, err := h.fetchService.RepairSkeletonProfiles(ctx, req.Limit)
	h.respondFetch(w, r.WithContext(ctx), summary, err)
}

// RunProcessingJob answers 500 with the run summary as data when any step failed.
func (h *Handler) RunProcessingJob(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.RunProcessingJob")
	defer span.End()

	summary, err := h.pipelineService.RunFullProcessing(ctx)
	if err != nil {
		h.logger.ErrorContext(ctx, "run processing job failed", "error", err)
		writeError(ctx, w, err)
		return
	}
	if !summary.Success {
		h.logger.WarnContext(ctx, "processing run finished with errors", "run_id", summary.RunID, "errors", summary.Errors)
		writeSuccess(ctx, w, http.StatusInternalServerError, summary)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, summary)
}

func (h *Handler) respondFetch(w http.ResponseWriter, r *http.Request, summary usecase.FetchSummary, err error) {
	ctx := r.Context()
	if err != nil {
		h.logger.WarnContext(ctx, "fetch job failed", "path", r.URL.Path, "error", err)
		writeError(ctx, w, err)
		return
	}
	if len(summary.FailedUnits) > 0 {
		h.logger.WarnContext(ctx, "fetch job finished with failed units",
			"operation", summary.Operation,
			"failed_units", summary.FailedUnits,
		)
	}

	writeSuccess(ctx, w, http.StatusOK, summary)
}

// decodeJobRequest treats an empty body as a zero request; the zero value is
// still validated so required fields surface as invalid input.
func (h *Handler) decodeJobRequest(r *http.Request, dst any) error {
	body, err := io.ReadAll(io.LimitReader(r.Body, maxJobBodyBytes+1))
	if err != nil {
		return fmt.Errorf("%w: read request body: %v", usecase.ErrInvalidInput, err)
	}
	if len(body) > maxJobBodyBytes {
		return fmt.Errorf("%w: request body too large", usecase.ErrInvalidInput)
	}
	if len(bytes.TrimSpace(body)) > 0 {
		if err := jobRequestDecoder.Unmarshal(body, dst); err != nil {
			return fmt.Errorf("%w: invalid JSON payload: %v", usecase.ErrInvalidInput, err)
		}
	}
	if err := h.validator.StructCtx(r.Context(), dst); err != nil {
		return fmt.Errorf("%w: %v", usecase.ErrInvalidInput, err)
	}
	return nil
}
