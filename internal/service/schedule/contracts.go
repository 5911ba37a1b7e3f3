package schedule

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/jazyl-tech/JZL-BookingService/internal/domain"
	"github.com/jazyl-tech/JZL-BookingService/internal/integrations/catalogservice"
)

// ScheduleRepository интерфейс репозитория расписаний
type ScheduleRepository interface {
	ListWeek(ctx context.Context, masterID, branchID uuid.UUID) ([]*domain.WeekdaySchedule, error)
	ReplaceWeek(ctx context.Context, masterID, branchID uuid.UUID, days []domain.WeekdaySchedule) error
	GetException(ctx context.Context, masterID uuid.UUID, date time.Time) (*domain.ScheduleException, error)
	ListFutureExceptions(ctx context.Context, masterID uuid.UUID, from time.Time) ([]*domain.ScheduleException, error)
	CreateException(ctx context.Context, e *domain.ScheduleException) (*domain.ScheduleException, error)
	DeleteException(ctx context.Context, id, masterID uuid.UUID) error
}

// CatalogServiceClient интерфейс клиента для CatalogService
type CatalogServiceClient interface {
	GetMaster(ctx context.Context, masterID uuid.UUID) (*catalogservice.Master, error)
	GetBranch(ctx context.Context, branchID uuid.UUID) (*catalogservice.Branch, error)
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
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
