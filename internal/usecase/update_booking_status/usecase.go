package update_booking_status

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/jazyl-tech/JZL-BookingService/internal/domain"
	bookingRepo "github.com/jazyl-tech/JZL-BookingService/internal/infra/storage/booking"
	"github.com/jazyl-tech/JZL-BookingService/internal/integrations/notifyservice"
)

const notifyTimeout = 5 * time.Second

// UseCase use case для смены статуса бронирования
type UseCase struct {
	bookingRepo  BookingRepository
	notifyClient NotifyServiceClient
	timeProvider TimeProvider
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	bookingRepo BookingRepository,
	notifyClient NotifyServiceClient,
	logger Logger,
) *UseCase {
	return &UseCase{
		bookingRepo:  bookingRepo,
		notifyClient: notifyClient,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// Execute выполняет смену статуса бронирования.
// Переход проверяется по таблице жизненного цикла, права - по роли актора:
// клиент может только отменить свою запись, сотрудники салона используют
// полную таблицу переходов. Запись в БД условная (WHERE status = прежний),
// поэтому конкурентный переход не затирается, а возвращается как конфликт.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("UpdateBookingStatus: booking=%s, actor=%s role=%s, newStatus=%s",
		req.BookingID, req.Actor.UserID, req.Actor.Role, req.NewStatus)

	if err := validateRequest(req); err != nil {
		uc.logger.Warn("UpdateBookingStatus: validation failed: %v", err)
		return nil, err
	}

	booking, err := uc.getBooking(ctx, req.BookingID)
	if err != nil {
		return nil, err
	}

	if err := uc.checkPermission(req, booking); err != nil {
		return nil, err
	}

	now := uc.timeProvider.Now()
	priorStatus := booking.Status

	effects, err := domain.Transition(booking, req.NewStatus, req.Reason, now, nil)
	if err != nil {
		uc.logger.Warn("UpdateBookingStatus: transition rejected for booking=%s: %v", req.BookingID, err)
		return nil, err
	}

	err = uc.bookingRepo.UpdateStatus(ctx, req.BookingID, priorStatus, req.NewStatus, effects)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrStatusConflict) {
			// Кто-то успел сменить статус между чтением и записью:
			// перечитываем и отдаем переход из актуального состояния
			return nil, uc.resolveConflict(ctx, req)
		}
		uc.logger.Error("UpdateBookingStatus: failed to update booking=%s: %v", req.BookingID, err)
		return nil, fmt.Errorf("%w: failed to update status: %v", ErrInternal, err)
	}

	uc.logger.Info("UpdateBookingStatus: booking=%s transitioned %s -> %s",
		req.BookingID, priorStatus, req.NewStatus)

	if req.NewStatus == domain.StatusCancelledBySalon || req.NewStatus == domain.StatusCancelledByClient {
		uc.notifyCancellation(booking, req)
	}

	return &Response{
		ID:          booking.ID,
		Status:      string(booking.Status),
		CancelledAt: booking.CancelledAt,
		CompletedAt: booking.CompletedAt,
		UpdatedAt:   now,
	}, nil
}

func (uc *UseCase) getBooking(ctx context.Context, id uuid.UUID) (*domain.Booking, error) {
	booking, err := uc.bookingRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			uc.logger.Warn("UpdateBookingStatus: booking=%s not found", id)
			return nil, ErrBookingNotFound
		}
		uc.logger.Error("UpdateBookingStatus: failed to get booking=%s: %v", id, err)
		return nil, fmt.Errorf("%w: failed to get booking: %v", ErrInternal, err)
	}
	return booking, nil
}

// checkPermission решает, имеет ли актор право на запрошенный переход
func (uc *UseCase) checkPermission(req *Request, booking *domain.Booking) error {
	if req.Actor.IsStaff() {
		return nil
	}

	// Клиенту доступна только отмена собственной записи
	if booking.ClientID != req.Actor.UserID {
		uc.logger.Warn("UpdateBookingStatus: actor=%s is not the owner of booking=%s",
			req.Actor.UserID, booking.ID)
		return ErrPermissionDenied
	}
	if req.NewStatus != domain.StatusCancelledByClient {
		uc.logger.Warn("UpdateBookingStatus: client actor=%s requested forbidden status %s",
			req.Actor.UserID, req.NewStatus)
		return ErrPermissionDenied
	}

	return nil
}

// resolveConflict перечитывает бронирование после проигранной гонки записи
func (uc *UseCase) resolveConflict(ctx context.Context, req *Request) error {
	current, err := uc.bookingRepo.GetByID(ctx, req.BookingID)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			return ErrBookingNotFound
		}
		uc.logger.Error("UpdateBookingStatus: failed to re-read booking=%s: %v", req.BookingID, err)
		return fmt.Errorf("%w: failed to re-read booking: %v", ErrInternal, err)
	}

	uc.logger.Warn("UpdateBookingStatus: concurrent transition on booking=%s, current status=%s",
		req.BookingID, current.Status)
	return &domain.InvalidTransitionError{From: current.Status, To: req.NewStatus}
}

// notifyCancellation отправляет уведомление об отмене fire-and-forget:
// ошибка доставки не влияет на результат операции
func (uc *UseCase) notifyCancellation(booking *domain.Booking, req *Request) {
	startsAt, err := booking.StartDateTime()
	if err != nil {
		uc.logger.Error("UpdateBookingStatus: failed to compute start datetime for booking=%s: %v", booking.ID, err)
		return
	}

	payload := notifyservice.CancellationPayload{
		BookingID:   booking.ID,
		ClientID:    booking.ClientID,
		MasterID:    booking.MasterID,
		StartsAt:    startsAt,
		CancelledBy: string(req.Actor.Role),
	}
	if req.Reason != nil {
		payload.Reason = *req.Reason
	}

	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), notifyTimeout)
		defer cancel()

		if err := uc.notifyClient.SendCancellation(ctx, payload); err != nil {
			uc.logger.Error("UpdateBookingStatus: failed to send cancellation notification for booking=%s: %v",
				booking.ID, err)
		}
	}()
}

func validateRequest(req *Request) error {
	if req.BookingID == uuid.Nil {
		return fmt.Errorf("%w: bookingID is required", ErrInvalidInput)
	}
	if req.Actor.UserID == uuid.Nil {
		return fmt.Errorf("%w: actor is required", ErrInvalidInput)
	}
	if !isKnownStatus(req.NewStatus) {
		return fmt.Errorf("%w: unknown status %q", ErrInvalidInput, req.NewStatus)
	}
	if req.Reason != nil && len(*req.Reason) > domain.MaxCancellationReasonLength {
		return fmt.Errorf("%w: reason exceeds %d characters", ErrInvalidInput, domain.MaxCancellationReasonLength)
	}
	return nil
}

func isKnownStatus(s domain.BookingStatus) bool {
	switch s {
	case domain.StatusPending, domain.StatusConfirmed, domain.StatusInProgress,
		domain.StatusCompleted, domain.StatusCancelledByClient,
		domain.StatusCancelledBySalon, domain.StatusNoShow:
		return true
	}
	return false
}
