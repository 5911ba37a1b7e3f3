package create_booking

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/jazyl-tech/JZL-BookingService/internal/domain"
	"github.com/jazyl-tech/JZL-BookingService/internal/integrations/catalogservice"
	"github.com/jazyl-tech/JZL-BookingService/internal/usecase/get_available_slots"
)

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	Create(ctx context.Context, booking *domain.Booking) (*domain.Booking, error)
}

// SlotsUseCase интерфейс генератора слотов. Внутри транзакции генератор
// читает бронирования через executor из контекста, то есть с блокировкой
// FOR UPDATE: проверка доступности и само создание видят одно состояние.
type SlotsUseCase interface {
	Execute(ctx context.Context, req *get_available_slots.Request) (*get_available_slots.Response, error)
}

// CatalogServiceClient интерфейс клиента для CatalogService
type CatalogServiceClient interface {
	GetMaster(ctx context.Context, masterID uuid.UUID) (*catalogservice.Master, error)
	GetService(ctx context.Context, serviceID uuid.UUID) (*catalogservice.Service, error)
	GetPriceOverride(ctx context.Context, masterID, serviceID uuid.UUID) (*float64, error)
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
