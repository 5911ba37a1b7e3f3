package get_salon_bookings

import (
	"errors"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"github.com/jazyl-tech/JZL-BookingService/internal/api/handlers"
	"github.com/jazyl-tech/JZL-BookingService/internal/api/middleware"
	"github.com/jazyl-tech/JZL-BookingService/internal/domain"
	"github.com/jazyl-tech/JZL-BookingService/internal/service/bookings"
	"github.com/jazyl-tech/JZL-BookingService/internal/service/bookings/models"
)

const (
	msgInvalidSalonID  = "некорректный ID салона"
	msgInvalidMasterID = "некорректный ID мастера"
	msgInvalidDate     = "некорректный формат даты, ожидается YYYY-MM-DD"
	msgInvalidFilter   = "некорректные параметры фильтрации"
	msgAccessDenied    = "доступ запрещен"
)

type Handler struct {
	service BookingService
	logger  Logger
}

func NewHandler(service BookingService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/salons/{salonId}/bookings?masterId=&startDate=&endDate=&status=&includeInactive=
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	actor, ok := middleware.ActorFromContext(r.Context())
	if !ok {
		handlers.RespondError(w, http.StatusUnauthorized, "требуется аутентификация")
		return
	}

	salonID, err := uuid.Parse(mux.Vars(r)["salonId"])
	if err != nil {
		h.logger.Warn("GET /salons/{salonId}/bookings - Invalid salon ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidSalonID)
		return
	}

	req := &models.GetSalonBookingsRequest{
		Actor:   actor,
		SalonID: salonID,
	}

	query := r.URL.Query()

	if raw := query.Get("masterId"); raw != "" {
		masterID, err := uuid.Parse(raw)
		if err != nil {
			h.logger.Warn("GET /salons/{salonId}/bookings - Invalid master ID: %v", err)
			handlers.RespondBadRequest(w, msgInvalidMasterID)
			return
		}
		req.MasterID = &masterID
	}

	if raw := query.Get("startDate"); raw != "" {
		startDate, err := time.Parse(domain.DateFormat, raw)
		if err != nil {
			h.logger.Warn("GET /salons/{salonId}/bookings - Invalid start date: %v", err)
			handlers.RespondBadRequest(w, msgInvalidDate)
			return
		}
		req.StartDate = &startDate
	}

	if raw := query.Get("endDate"); raw != "" {
		endDate, err := time.Parse(domain.DateFormat, raw)
		if err != nil {
			h.logger.Warn("GET /salons/{salonId}/bookings - Invalid end date: %v", err)
			handlers.RespondBadRequest(w, msgInvalidDate)
			return
		}
		req.EndDate = &endDate
	}

	if status := query.Get("status"); status != "" {
		req.Status = &status
	}
	req.IncludeInactive = query.Get("includeInactive") == "true"

	result, err := h.service.GetSalonBookings(r.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, bookings.ErrAccessDenied):
			h.logger.Warn("GET /salons/{salonId}/bookings - Access denied: salon_id=%s, actor=%s",
				salonID, actor.UserID)
			handlers.RespondForbidden(w, msgAccessDenied)

		case errors.Is(err, bookings.ErrInvalidInput):
			h.logger.Warn("GET /salons/{salonId}/bookings - Invalid filter: %v", err)
			handlers.RespondBadRequest(w, msgInvalidFilter)

		default:
			h.logger.Error("GET /salons/{salonId}/bookings - Failed to get bookings: salon_id=%s, error=%v",
				salonID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /salons/{salonId}/bookings - Returned %d bookings: salon_id=%s",
		len(result.Bookings), salonID)
	handlers.RespondJSON(w, http.StatusOK, result)
}
