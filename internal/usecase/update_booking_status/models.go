package update_booking_status

import (
	"time"

	"github.com/google/uuid"

	"github.com/jazyl-tech/JZL-BookingService/internal/domain"
)

// Request модель запроса на смену статуса бронирования
type Request struct {
	BookingID uuid.UUID            // ID бронирования
	Actor     domain.Actor         // Кто запрашивает переход
	NewStatus domain.BookingStatus // Целевой статус
	Reason    *string              // Причина (для отмен, опционально)
}

// Response модель ответа с обновленным бронированием
type Response struct {
	ID          uuid.UUID
	Status      string
	CancelledAt *time.Time
	CompletedAt *time.Time
	UpdatedAt   time.Time
}
