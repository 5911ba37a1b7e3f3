package delete_schedule_exception

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
	msgInvalidMasterID    = "некорректный ID мастера"
	msgInvalidExceptionID = "некорректный ID исключения"
	msgExceptionNotFound  = "исключение не найдено"
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

// Handle DELETE /api/v1/masters/{masterId}/schedule/exceptions/{id}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	actor, ok := middleware.ActorFromContext(r.Context())
	if !ok {
		handlers.RespondError(w, http.StatusUnauthorized, "требуется аутентификация")
		return
	}

	vars := mux.Vars(r)

	masterID, err := uuid.Parse(vars["masterId"])
	if err != nil {
		h.logger.Warn("DELETE /masters/{masterId}/schedule/exceptions/{id} - Invalid master ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidMasterID)
		return
	}

	exceptionID, err := uuid.Parse(vars["id"])
	if err != nil {
		h.logger.Warn("DELETE /masters/{masterId}/schedule/exceptions/{id} - Invalid exception ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidExceptionID)
		return
	}

	if err := h.service.DeleteException(r.Context(), actor, exceptionID, masterID); err != nil {
		switch {
		case errors.Is(err, schedule.ErrAccessDenied):
			h.logger.Warn("DELETE /masters/{masterId}/schedule/exceptions/{id} - Access denied: exception_id=%s, actor=%s",
				exceptionID, actor.UserID)
			handlers.RespondForbidden(w, msgAccessDenied)

		case errors.Is(err, schedule.ErrExceptionNotFound):
			h.logger.Warn("DELETE /masters/{masterId}/schedule/exceptions/{id} - Exception not found: exception_id=%s",
				exceptionID)
			handlers.RespondNotFound(w, msgExceptionNotFound)

		default:
			h.logger.Error("DELETE /masters/{masterId}/schedule/exceptions/{id} - Failed to delete exception: exception_id=%s, error=%v",
				exceptionID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("DELETE /masters/{masterId}/schedule/exceptions/{id} - Exception deleted: exception_id=%s, master_id=%s",
		exceptionID, masterID)
	w.WriteHeader(http.StatusNoContent)
}
