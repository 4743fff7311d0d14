package handler

//go:generate mockgen -source=handler.go -destination=mocks/mocks.go -package=mocks Service,SyncTrigger

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"pspcatalog/internal/psp/catalogsync"
	"pspcatalog/internal/psp/models"
	"pspcatalog/internal/psp/service"
	dErrors "pspcatalog/pkg/domain-errors"
	"pspcatalog/pkg/platform/httputil"
	"pspcatalog/pkg/requestcontext"
)

// Service defines the catalog lookup operation.
type Service interface {
	Retrieve(ctx context.Context, amount *int64, language, paymentType string) ([]models.PspRecord, error)
}

// SyncTrigger starts a catalog sync in the background.
type SyncTrigger interface {
	Trigger(ctx context.Context) error
}

// Handler wires catalog endpoints to the service and synchronizer.
type Handler struct {
	service Service
	sync    SyncTrigger
	logger  *slog.Logger
}

// New constructs a catalog handler. A nil sync disables POST /psps/sync.
func New(svc Service, sync SyncTrigger, logger *slog.Logger) *Handler {
	return &Handler{
		service: svc,
		sync:    sync,
		logger:  logger,
	}
}

// Register mounts catalog endpoints on the router.
func (h *Handler) Register(r chi.Router) {
	r.Get("/psps", h.HandleRetrieve)
	r.Post("/psps/sync", h.HandleSync)
}

// HandleRetrieve handles GET /psps?amount=&lang=&paymentTypeCode= requests.
func (h *Handler) HandleRetrieve(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)
	start := time.Now()
	q := r.URL.Query()

	amount, err := parseAmount(q.Get("amount"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	records, err := h.service.Retrieve(ctx, amount, q.Get("lang"), q.Get("paymentTypeCode"))
	if err != nil {
		h.logger.ErrorContext(ctx, "psp retrieve failed",
			"request_id", requestID,
			"error", err,
		)
		httputil.WriteError(w, err)
		return
	}

	h.logger.InfoContext(ctx, "psps retrieved",
		"request_id", requestID,
		"records", len(records),
		"duration_ms", time.Since(start).Milliseconds(),
	)
	httputil.WriteJSON(w, http.StatusOK, service.ToResponse(records))
}

// HandleSync handles POST /psps/sync requests.
func (h *Handler) HandleSync(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)

	if h.sync == nil {
		httputil.WriteError(w, dErrors.New(dErrors.CodeUnavailable, "catalog sync is not configured"))
		return
	}

	if err := h.sync.Trigger(ctx); err != nil {
		if errors.Is(err, catalogsync.ErrRunInProgress) {
			httputil.WriteError(w, dErrors.Wrap(err, dErrors.CodeConflict, "catalog sync already in progress"))
			return
		}
		h.logger.ErrorContext(ctx, "catalog sync trigger failed",
			"request_id", requestID,
			"error", err,
		)
		httputil.WriteError(w, err)
		return
	}

	h.logger.InfoContext(ctx, "catalog sync triggered", "request_id", requestID)
	httputil.WriteJSON(w, http.StatusAccepted, map[string]string{"status": "accepted"})
}

func parseAmount(raw string) (*int64, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, nil
	}
	v, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return nil, dErrors.New(dErrors.CodeBadRequest, "amount must be an integer")
	}
	return &v, nil
}
