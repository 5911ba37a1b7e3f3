package create_schedule_exception

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
	msgInvalidDate        = "некорректная дата исключения"
	msgMasterNotFound     = "мастер не найден"
	msgExceptionExists    = "исключение на эту дату уже существует"
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

// Handle POST /api/v1/masters/{masterId}/schedule/exceptions
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	actor, ok := middleware.ActorFromContext(r.Context())
	if !ok {
		handlers.RespondError(w, http.StatusUnauthorized, "требуется аутентификация")
		return
	}

	masterID, err := uuid.Parse(mux.Vars(r)["masterId"])
	if err != nil {
		h.logger.Warn("POST /masters/{masterId}/schedule/exceptions - Invalid master ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidMasterID)
		return
	}

	var req CreateExceptionRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /masters/{masterId}/schedule/exceptions - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	serviceReq, err := req.ToServiceRequest(actor, masterID)
	if err != nil {
		h.logger.Warn("POST /masters/{masterId}/schedule/exceptions - Invalid date: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	result, err := h.service.CreateException(r.Context(), serviceReq)
	if err != nil {
		switch {
		case errors.Is(err, schedule.ErrAccessDenied):
			h.logger.Warn("POST /masters/{masterId}/schedule/exceptions - Access denied: master_id=%s, actor=%s",
				masterID, actor.UserID)
			handlers.RespondForbidden(w, msgAccessDenied)

		case errors.Is(err, schedule.ErrMasterNotFound):
			h.logger.Warn("POST /masters/{masterId}/schedule/exceptions - Master not found: master_id=%s", masterID)
			handlers.RespondNotFound(w, msgMasterNotFound)

		case errors.Is(err, schedule.ErrExceptionAlreadyExists):
			h.logger.Warn("POST /masters/{masterId}/schedule/exceptions - Exception already exists: master_id=%s, date=%s",
				masterID, req.ExceptionDate)
			handlers.RespondError(w, http.StatusConflict, msgExceptionExists)

		case errors.Is(err, schedule.ErrExceptionInPast), errors.Is(err, schedule.ErrInvalidInput):
			h.logger.Warn("POST /masters/{masterId}/schedule/exceptions - Invalid input: %v", err)
			handlers.RespondBadRequest(w, err.Error())

		default:
			h.logger.Error("POST /masters/{masterId}/schedule/exceptions - Failed to create exception: master_id=%s, error=%v",
				masterID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /masters/{masterId}/schedule/exceptions - Exception created: id=%s, master_id=%s, type=%s",
		result.ID, masterID, result.ExceptionType)
	handlers.RespondJSON(w, http.StatusCreated, result)
}
