package get_schedule

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"github.com/jazyl-tech/JZL-BookingService/internal/api/handlers"
)

const (
	msgInvalidMasterID = "некорректный ID мастера"
	msgInvalidBranchID = "некорректный ID филиала"
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

// Handle GET /api/v1/masters/{masterId}/schedule?branchId=...
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	masterID, err := uuid.Parse(mux.Vars(r)["masterId"])
	if err != nil {
		h.logger.Warn("GET /masters/{masterId}/schedule - Invalid master ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidMasterID)
		return
	}

	branchID, err := uuid.Parse(r.URL.Query().Get("branchId"))
	if err != nil {
		h.logger.Warn("GET /masters/{masterId}/schedule - Invalid branch ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidBranchID)
		return
	}

	result, err := h.service.GetSchedule(r.Context(), masterID, branchID)
	if err != nil {
		h.logger.Error("GET /masters/{masterId}/schedule - Failed to get schedule: master_id=%s, error=%v",
			masterID, err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("GET /masters/{masterId}/schedule - Schedule fetched: master_id=%s", masterID)
	handlers.RespondJSON(w, http.StatusOK, result)
}
