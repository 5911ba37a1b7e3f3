package update_schedule

import (
	"errors"
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"github.com/jazyl-tech/JZL-BookingService/internal/api/handlers"
	"github.com/jazyl-tech/JZL-BookingService/internal/api/middleware"
	"github.com/jazyl-tech/JZL-BookingService/internal/service/schedule"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidMasterID    = "некорректный ID мастера"
	msgInvalidBranchID    = "некорректный ID филиала"
	msgMasterNotFound     = "мастер не найден"
	msgBranchNotFound     = "филиал не найден"
	msgAccessDenied       = "доступ запрещен"
)

type Handler struct {
	service ScheduleService
	logger  Logger
}

func NewHandler(service ScheduleService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle PUT /api/v1/masters/{masterId}/schedule
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	actor, ok := middleware.ActorFromContext(r.Context())
	if !ok {
		handlers.RespondError(w, http.StatusUnauthorized, "требуется аутентификация")
		return
	}

	masterID, err := uuid.Parse(mux.Vars(r)["masterId"])
	if err != nil {
		h.logger.Warn("PUT /masters/{masterId}/schedule - Invalid master ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidMasterID)
		return
	}

	var req UpdateScheduleRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PUT /masters/{masterId}/schedule - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	serviceReq, err := req.ToServiceRequest(actor, masterID)
	if err != nil {
		h.logger.Warn("PUT /masters/{masterId}/schedule - Invalid branch ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidBranchID)
		return
	}

	result, err := h.service.UpdateSchedule(r.Context(), serviceReq)
	if err != nil {
		switch {
		case errors.Is(err, schedule.ErrAccessDenied):
			h.logger.Warn("PUT /masters/{masterId}/schedule - Access denied: master_id=%s, actor=%s",
				masterID, actor.UserID)
			handlers.RespondForbidden(w, msgAccessDenied)

		case errors.Is(err, schedule.ErrMasterNotFound):
			h.logger.Warn("PUT /masters/{masterId}/schedule - Master not found: master_id=%s", masterID)
			handlers.RespondNotFound(w, msgMasterNotFound)

		case errors.Is(err, schedule.ErrBranchNotFound):
			h.logger.Warn("PUT /masters/{masterId}/schedule - Branch not found: branch_id=%s", req.BranchID)
			handlers.RespondNotFound(w, msgBranchNotFound)

		case errors.Is(err, schedule.ErrInvalidInput):
			h.logger.Warn("PUT /masters/{masterId}/schedule - Invalid input: %v", err)
			handlers.RespondBadRequest(w, err.Error())

		default:
			h.logger.Error("PUT /masters/{masterId}/schedule - Failed to update schedule: master_id=%s, error=%v",
				masterID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PUT /masters/{masterId}/schedule - Schedule updated: master_id=%s", masterID)
	handlers.RespondJSON(w, http.StatusOK, result)
}
