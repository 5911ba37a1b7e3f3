package sweeps

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/jazyl-tech/JZL-BookingService/internal/domain"
	"github.com/jazyl-tech/JZL-BookingService/internal/integrations/notifyservice"
)

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	ListNeedingDayBeforeReminder(ctx context.Context, from, to time.Time) ([]*domain.Booking, error)
	ListNeedingHourBeforeReminder(ctx context.Context, from, to time.Time) ([]*domain.Booking, error)
	MarkReminded(ctx context.Context, id uuid.UUID, at time.Time) error
	ListCompletedWithoutReview(ctx context.Context, from, to time.Time) ([]*domain.Booking, error)
	ListForAutoComplete(ctx context.Context, today, yesterday time.Time, deadline time.Time) ([]*domain.Booking, error)
	ListForNoShow(ctx context.Context, today time.Time, deadline time.Time) ([]*domain.Booking, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, expectedPrior, newStatus domain.BookingStatus, effects domain.TransitionEffects) error
}

// NotifyServiceClient интерфейс клиента для NotifyService
type NotifyServiceClient interface {
	SendReminder(ctx context.Context, payload notifyservice.ReminderPayload) error
	SendReviewRequest(ctx context.Context, payload notifyservice.ReviewRequestPayload) error
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}
