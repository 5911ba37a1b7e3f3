package notifyservice

import (
	"time"

	"github.com/google/uuid"
)

// ReminderPayload запрос на отправку напоминания о записи
type ReminderPayload struct {
	BookingID   uuid.UUID `json:"booking_id"`
	ClientID    uuid.UUID `json:"client_id"`
	MasterID    uuid.UUID `json:"master_id"`
	StartsAt    time.Time `json:"starts_at"`
	HoursBefore int       `json:"hours_before"`
}

// CancellationPayload запрос на уведомление об отмене записи
type CancellationPayload struct {
	BookingID   uuid.UUID `json:"booking_id"`
	ClientID    uuid.UUID `json:"client_id"`
	MasterID    uuid.UUID `json:"master_id"`
	StartsAt    time.Time `json:"starts_at"`
	CancelledBy string    `json:"cancelled_by"`
	Reason      string    `json:"reason,omitempty"`
}

// ReviewRequestPayload запрос на отправку приглашения оставить отзыв
type ReviewRequestPayload struct {
	BookingID   uuid.UUID `json:"booking_id"`
	ClientID    uuid.UUID `json:"client_id"`
	MasterID    uuid.UUID `json:"master_id"`
	CompletedAt time.Time `json:"completed_at"`
}
