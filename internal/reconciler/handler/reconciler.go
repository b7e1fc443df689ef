package handler

import (
	"net/http"

	"github.com/julienschmidt/httprouter"

	"tably/internal/reconciler/service"
	httputil "tably/pkg/http"
	"tably/pkg/logger"
)

type ReconcilerHandler struct {
	service service.ReconcilerService
	log     *logger.Logger
}

func NewReconcilerHandler(svc service.ReconcilerService, log *logger.Logger) *ReconcilerHandler {
	return &ReconcilerHandler{
		service: svc,
		log:     log,
	}
}

// Reconcile runs one full expiry sweep. The route sits behind the
// scheduler auth middleware; the scheduler is the only caller.
func (h *ReconcilerHandler) Reconcile(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	result, err := h.service.Reconcile(r.Context())
	if err != nil {
		h.log.Error("expiry sweep failed", "error", err)
		if writeErr := httputil.WriteError(w, err); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "Reconcile", "operation", "WriteError", "error", writeErr)
		}
		return
	}

	if err := httputil.WriteJSON(w, http.StatusOK, result); err != nil {
		h.log.Error("failed to write success response", "handler", "Reconcile", "operation", "WriteJSON", "error", err)
	}
}

func (h *ReconcilerHandler) RegisterRoutes(router *httprouter.Router) {
	router.POST("/api/v1/reconcile", h.Reconcile)
}
