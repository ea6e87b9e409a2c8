package httpapi

import (
	"context"
	"fmt"
	"net/http"

	"github.com/go-playground/validator/v10"

	"github.com/riskibarqy/fantasy-stats/internal/platform/logging"
	"github.com/riskibarqy/fantasy-stats/internal/usecase"
)

type Handler struct {
	topScoreService *usecase.TopScoreService
	logger          *logging.Logger
	validator       *validator.Validate
}

func NewHandler(topScoreService *usecase.TopScoreService, logger *logging.Logger) *Handler {
	if logger == nil {
		logger = logging.Default()
	}

	return &Handler{
		topScoreService: topScoreService,
		logger:          logger,
		validator:       validator.New(),
	}
}

func (h *Handler) Healthz(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.Healthz")
	defer span.End()

	writeSuccess(ctx, w, http.StatusOK, map[string]string{"status": "ok"})
}

func (h *Handler) ListPositions(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListPositions")
	defer span.End()

	entries := h.topScoreService.Positions().Entries()
	items := make([]PositionDTO, 0, len(entries))
	for _, entry := range entries {
		items = append(items, positionToDTO(entry))
	}

	writeSuccess(ctx, w, http.StatusOK, items)
}

func (h *Handler) validateRequest(ctx context.Context, payload any) error {
	ctx, span := startSpan(ctx, "httpapi.Handler.validateRequest")
	defer span.End()

	if err := h.validator.StructCtx(ctx, payload); err != nil {
		return fmt.Errorf("%w: validation failed: %v", usecase.ErrInvalidInput, err)
	}

	return nil
}
