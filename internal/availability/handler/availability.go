package handler

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/julienschmidt/httprouter"

	"tably/internal/availability/service"
	"tably/internal/availability/validator"
	apperrors "tably/pkg/errors"
	httputil "tably/pkg/http"
	"tably/pkg/logger"
)

type AvailabilityHandler struct {
	service   service.AvailabilityService
	validator *validator.QueryValidator
	log       *logger.Logger
}

func NewAvailabilityHandler(svc service.AvailabilityService, v *validator.QueryValidator, log *logger.Logger) *AvailabilityHandler {
	return &AvailabilityHandler{
		service:   svc,
		validator: v,
		log:       log,
	}
}

func parsePartySize(raw string) (int, error) {
	if raw == "" {
		return 0, nil
	}
	size, err := strconv.Atoi(raw)
	if err != nil {
		return 0, apperrors.InvalidInput(fmt.Sprintf("invalid party_size parameter: %s", raw))
	}
	return size, nil
}

func (h *AvailabilityHandler) Check(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	query := r.URL.Query()

	partySize, err := parsePartySize(query.Get("party_size"))
	if err != nil {
		if writeErr := httputil.WriteError(w, err); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "Check", "operation", "WriteError", "error", writeErr)
		}
		return
	}

	q := validator.AvailabilityQuery{
		Date:        strings.TrimSpace(query.Get("date")),
		PartySize:   partySize,
		BookingType: strings.TrimSpace(query.Get("booking_type")),
	}
	if err := h.validator.Validate(q); err != nil {
		if writeErr := httputil.WriteError(w, apperrors.InvalidInput(err.Error())); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "Check", "operation", "WriteError", "error", writeErr)
		}
		return
	}

	result, err := h.service.CheckAvailability(r.Context(), q.Date, q.PartySize, q.BookingType)
	if err != nil {
		if writeErr := httputil.WriteError(w, err); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "Check", "operation", "WriteError", "error", writeErr)
		}
		return
	}

	if err := httputil.WriteSuccess(w, result); err != nil {
		h.log.Error("failed to write success response", "handler", "Check", "operation", "WriteSuccess", "error", err)
	}
}

func (h *AvailabilityHandler) CheckRange(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	query := r.URL.Query()

	partySize, err := parsePartySize(query.Get("party_size"))
	if err != nil {
		if writeErr := httputil.WriteError(w, err); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "CheckRange", "operation", "WriteError", "error", writeErr)
		}
		return
	}

	q := validator.RangeQuery{
		StartDate:   strings.TrimSpace(query.Get("start_date")),
		EndDate:     strings.TrimSpace(query.Get("end_date")),
		PartySize:   partySize,
		BookingType: strings.TrimSpace(query.Get("booking_type")),
	}
	if err := h.validator.Validate(q); err != nil {
		if writeErr := httputil.WriteError(w, apperrors.InvalidInput(err.Error())); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "CheckRange", "operation", "WriteError", "error", writeErr)
		}
		return
	}

	availability, err := h.service.GetAvailabilityRange(r.Context(), q.StartDate, q.EndDate, q.PartySize, q.BookingType)
	if err != nil {
		if writeErr := httputil.WriteError(w, err); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "CheckRange", "operation", "WriteError", "error", writeErr)
		}
		return
	}

	if err := httputil.WriteSuccess(w, availability); err != nil {
		h.log.Error("failed to write success response", "handler", "CheckRange", "operation", "WriteSuccess", "error", err)
	}
}

func (h *AvailabilityHandler) NextAvailable(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	query := r.URL.Query()

	partySize, err := parsePartySize(query.Get("party_size"))
	if err != nil {
		if writeErr := httputil.WriteError(w, err); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "NextAvailable", "operation", "WriteError", "error", writeErr)
		}
		return
	}

	q := validator.NextSlotQuery{
		PartySize:     partySize,
		BookingType:   strings.TrimSpace(query.Get("booking_type")),
		PreferredTime: strings.TrimSpace(query.Get("preferred_time")),
	}
	if err := h.validator.Validate(q); err != nil {
		if writeErr := httputil.WriteError(w, apperrors.InvalidInput(err.Error())); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "NextAvailable", "operation", "WriteError", "error", writeErr)
		}
		return
	}

	next, err := h.service.NextAvailableSlot(r.Context(), q.PartySize, q.BookingType, q.PreferredTime)
	if err != nil {
		if writeErr := httputil.WriteError(w, err); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "NextAvailable", "operation", "WriteError", "error", writeErr)
		}
		return
	}

	if err := httputil.WriteSuccess(w, next); err != nil {
		h.log.Error("failed to write success response", "handler", "NextAvailable", "operation", "WriteSuccess", "error", err)
	}
}

// Hours resolves one date's effective window, or returns the weekly
// template when no date is given.
func (h *AvailabilityHandler) Hours(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	date := strings.TrimSpace(r.URL.Query().Get("date"))
	if date == "" {
		weekly, err := h.service.WeeklyHours(r.Context())
		if err != nil {
			if writeErr := httputil.WriteError(w, err); writeErr != nil {
				h.log.Error("failed to write error response", "handler", "Hours", "operation", "WriteError", "error", writeErr)
			}
			return
		}
		if err := httputil.WriteSuccess(w, weekly); err != nil {
			h.log.Error("failed to write success response", "handler", "Hours", "operation", "WriteSuccess", "error", err)
		}
		return
	}

	hours, err := h.service.ResolveHours(r.Context(), date)
	if err != nil {
		if writeErr := httputil.WriteError(w, err); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "Hours", "operation", "WriteError", "error", writeErr)
		}
		return
	}

	if err := httputil.WriteSuccess(w, hours); err != nil {
		h.log.Error("failed to write success response", "handler", "Hours", "operation", "WriteSuccess", "error", err)
	}
}

func (h *AvailabilityHandler) RegisterRoutes(router *httprouter.Router) {
	router.GET("/api/v1/availability", h.Check)
	router.GET("/api/v1/availability/range", h.CheckRange)
	router.GET("/api/v1/availability/next", h.NextAvailable)
	router.GET("/api/v1/hours", h.Hours)
}
