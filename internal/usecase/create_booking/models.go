package create_booking

import (
	"time"

	"github.com/google/uuid"

	"github.com/jazyl-tech/JZL-BookingService/pkg/types"
)

// Request модель запроса на создание бронирования
type Request struct {
	ClientID        uuid.UUID        // ID клиента
	MasterID        uuid.UUID        // ID мастера
	ServiceID       uuid.UUID        // ID услуги
	BranchID        uuid.UUID        // ID филиала
	Date            time.Time        // Дата бронирования (без времени)
	StartTime       types.TimeString // Время начала слота (например, "10:00")
	CreatedVia      string           // Канал создания (website, mobile_app, catalog, manager)
	NotesFromClient *string          // Пожелания клиента (опционально)
}

// Response модель ответа с созданным бронированием
type Response struct {
	ID         uuid.UUID        // ID созданного бронирования
	ClientID   uuid.UUID        // ID клиента
	MasterID   uuid.UUID        // ID мастера
	ServiceID  uuid.UUID        // ID услуги
	BranchID   uuid.UUID        // ID филиала
	SalonID    uuid.UUID        // ID салона (денормализован из мастера)
	Date       time.Time        // Дата бронирования
	StartTime  types.TimeString // Время начала
	EndTime    types.TimeString // Время окончания (start + длительность услуги)
	FinalPrice float64          // Зафиксированная цена на момент создания
	Status     string           // Статус бронирования (pending)
	CreatedVia string           // Канал создания
	CreatedAt  time.Time        // Время создания
}
