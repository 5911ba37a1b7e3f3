package get_available_slots

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/jazyl-tech/JZL-BookingService/internal/domain"
	"github.com/jazyl-tech/JZL-BookingService/internal/integrations/catalogservice"
)

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	// GetByMasterAndDate получает бронирования мастера на дату в указанных статусах
	GetByMasterAndDate(ctx context.Context, masterID uuid.UUID, date time.Time, statuses []domain.BookingStatus) ([]*domain.Booking, error)
}

// ScheduleRepository интерфейс репозитория расписаний
type ScheduleRepository interface {
	// GetWeekday получает регулярное расписание мастера на день недели
	GetWeekday(ctx context.Context, masterID, branchID uuid.UUID, dayOfWeek int) (*domain.WeekdaySchedule, error)
	// GetException получает исключение из расписания на дату
	GetException(ctx context.Context, masterID uuid.UUID, date time.Time) (*domain.ScheduleException, error)
}

// CatalogServiceClient интерфейс клиента для CatalogService
type CatalogServiceClient interface {
	GetMaster(ctx context.Context, masterID uuid.UUID) (*catalogservice.Master, error)
	GetService(ctx context.Context, serviceID uuid.UUID) (*catalogservice.Service, error)
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
