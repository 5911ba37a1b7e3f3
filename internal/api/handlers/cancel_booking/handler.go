package cancel_booking

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"github.com/jazyl-tech/JZL-BookingService/internal/api/handlers"
	"github.com/jazyl-tech/JZL-BookingService/internal/api/middleware"
	"github.com/jazyl-tech/JZL-BookingService/internal/domain"
	updateStatus "github.com/jazyl-tech/JZL-BookingService/internal/usecase/update_booking_status"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidBookingID   = "некорректный ID бронирования"
	msgBookingNotFound    = "бронирование не найдено"
	msgPermissionDenied   = "отменить можно только свою запись"
	msgInvalidInput       = "некорректные входные данные"
)

type Handler struct {
	useCase UpdateBookingStatusUseCase
	logger  Logger
}

func NewHandler(useCase UpdateBookingStatusUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/bookings/{id}/cancel
// Сахар над сменой статуса: роль актора определяет целевой статус отмены
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	actor, ok := middleware.ActorFromContext(r.Context())
	if !ok {
		handlers.RespondError(w, http.StatusUnauthorized, "требуется аутентификация")
		return
	}

	bookingID, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		h.logger.Warn("POST /bookings/{id}/cancel - Invalid booking ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidBookingID)
		return
	}

	var req CancelBookingRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /bookings/{id}/cancel - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	newStatus := domain.StatusCancelledByClient
	if actor.IsStaff() {
		newStatus = domain.StatusCancelledBySalon
	}

	result, err := h.useCase.Execute(r.Context(), &updateStatus.Request{
		BookingID: bookingID,
		Actor:     actor,
		NewStatus: newStatus,
		Reason:    req.Reason,
	})
	if err != nil {
		var invalidTransition *domain.InvalidTransitionError

		switch {
		case errors.Is(err, updateStatus.ErrBookingNotFound):
			h.logger.Warn("POST /bookings/{id}/cancel - Booking not found: booking_id=%s", bookingID)
			handlers.RespondNotFound(w, msgBookingNotFound)

		case errors.Is(err, updateStatus.ErrPermissionDenied):
			h.logger.Warn("POST /bookings/{id}/cancel - Permission denied: booking_id=%s, actor=%s",
				bookingID, actor.UserID)
			handlers.RespondForbidden(w, msgPermissionDenied)

		case errors.As(err, &invalidTransition):
			h.logger.Warn("POST /bookings/{id}/cancel - Invalid transition: booking_id=%s, %v",
				bookingID, invalidTransition)
			handlers.RespondBadRequest(w, fmt.Sprintf("запись в статусе %s нельзя отменить",
				invalidTransition.From))

		case errors.Is(err, updateStatus.ErrInvalidInput):
			h.logger.Warn("POST /bookings/{id}/cancel - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		default:
			h.logger.Error("POST /bookings/{id}/cancel - Failed to cancel: booking_id=%s, error=%v",
				bookingID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /bookings/{id}/cancel - Booking cancelled: booking_id=%s, status=%s",
		bookingID, result.Status)
	handlers.RespondJSON(w, http.StatusOK, map[string]string{
		"id":     result.ID.String(),
		"status": result.Status,
	})
}
