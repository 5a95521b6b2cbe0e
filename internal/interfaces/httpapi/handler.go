package httpapi

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/AboladeOluwaseun/epl-stats-bot/internal/platform/logging"
	"github.com/AboladeOluwaseun/epl-stats-bot/internal/usecase"
	"github.com/go-playground/validator/v10"
)

type Handler struct {
	fetchService    *usecase.FetchService
	pipelineService *usecase.PipelineService
	lookupService   *usecase.LookupService
	logger          *logging.Logger
	validator       *validator.Validate
}

func NewHandler(
	fetchService *usecase.FetchService,
	pipelineService *usecase.PipelineService,
	lookupService *usecase.LookupService,
	logger *logging.Logger,
) *Handler {
	if logger == nil {
		logger = logging.Default()
	}

	return &Handler{
		fetchService:    fetchService,
		pipelineService: pipelineService,
		lookupService:   lookupService,
		logger:          logger.Named("handler"),
		validator:       validator.New(validator.WithRequiredStructEnabled()),
	}
}

func (h *Handler) Healthz(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.Healthz")
	defer span.End()

	writeSuccess(ctx, w, http.StatusOK, map[string]string{"status": "ok"})
}

// queryInt returns 0 when the parameter is absent.
func queryInt(r *http.Request, key string) (int, error) {
	raw := strings.TrimSpace(r.URL.Query().Get(key))
	if raw == "" {
		return 0, nil
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("%w: %s must be an integer", usecase.ErrInvalidInput, key)
	}
	return value, nil
}
