package get_available_slots

import (
	"errors"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"github.com/jazyl-tech/JZL-BookingService/internal/api/handlers"
	"github.com/jazyl-tech/JZL-BookingService/internal/domain"
	getSlots "github.com/jazyl-tech/JZL-BookingService/internal/usecase/get_available_slots"
)

const (
	msgInvalidMasterID  = "некорректный ID мастера"
	msgInvalidServiceID = "некорректный ID услуги"
	msgInvalidBranchID  = "некорректный ID филиала"
	msgInvalidDate      = "некорректный формат даты, ожидается YYYY-MM-DD"
	msgMasterNotFound   = "мастер не найден"
	msgServiceNotFound  = "услуга не найдена"
	msgInvalidInput     = "некорректные входные данные"
	msgDateInPast       = "дата не может быть в прошлом"
)

type Handler struct {
	useCase GetAvailableSlotsUseCase
	logger  Logger
}

func NewHandler(useCase GetAvailableSlotsUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /api/v1/masters/{masterId}/slots?serviceId=...&branchId=...&date=YYYY-MM-DD
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	masterID, err := uuid.Parse(mux.Vars(r)["masterId"])
	if err != nil {
		h.logger.Warn("GET /masters/{masterId}/slots - Invalid master ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidMasterID)
		return
	}

	serviceID, err := uuid.Parse(r.URL.Query().Get("serviceId"))
	if err != nil {
		h.logger.Warn("GET /masters/{masterId}/slots - Invalid service ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidServiceID)
		return
	}

	branchID, err := uuid.Parse(r.URL.Query().Get("branchId"))
	if err != nil {
		h.logger.Warn("GET /masters/{masterId}/slots - Invalid branch ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidBranchID)
		return
	}

	date, err := time.Parse(domain.DateFormat, r.URL.Query().Get("date"))
	if err != nil {
		h.logger.Warn("GET /masters/{masterId}/slots - Invalid date: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	result, err := h.useCase.Execute(r.Context(), &getSlots.Request{
		MasterID:  masterID,
		ServiceID: serviceID,
		BranchID:  branchID,
		Date:      date,
	})
	if err != nil {
		switch {
		case errors.Is(err, getSlots.ErrMasterNotFound):
			h.logger.Warn("GET /masters/{masterId}/slots - Master not found: master_id=%s", masterID)
			handlers.RespondNotFound(w, msgMasterNotFound)

		case errors.Is(err, getSlots.ErrServiceNotFound):
			h.logger.Warn("GET /masters/{masterId}/slots - Service not found: service_id=%s", serviceID)
			handlers.RespondNotFound(w, msgServiceNotFound)

		case errors.Is(err, getSlots.ErrInvalidDate):
			h.logger.Warn("GET /masters/{masterId}/slots - Date in past: master_id=%s", masterID)
			handlers.RespondBadRequest(w, msgDateInPast)

		case errors.Is(err, getSlots.ErrInvalidInput):
			h.logger.Warn("GET /masters/{masterId}/slots - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		default:
			h.logger.Error("GET /masters/{masterId}/slots - Failed to get slots: master_id=%s, error=%v",
				masterID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /masters/{masterId}/slots - Returned %d slots: master_id=%s, date=%s",
		len(result.Slots), masterID, date.Format(domain.DateFormat))
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
