package domain

import (
	"time"

	"github.com/google/uuid"

	"github.com/jazyl-tech/JZL-BookingService/pkg/types"
)

// BookingStatus represents the status of a booking
type BookingStatus string

const (
	StatusPending           BookingStatus = "pending"
	StatusConfirmed         BookingStatus = "confirmed"
	StatusInProgress        BookingStatus = "in_progress"
	StatusCompleted         BookingStatus = "completed"
	StatusCancelledByClient BookingStatus = "cancelled_by_client"
	StatusCancelledBySalon  BookingStatus = "cancelled_by_salon"
	StatusNoShow            BookingStatus = "no_show"
)

// CreatedVia describes the channel a booking was created through
type CreatedVia string

const (
	ViaWebsite   CreatedVia = "website"
	ViaMobileApp CreatedVia = "mobile_app"
	ViaCatalog   CreatedVia = "catalog"
	ViaManager   CreatedVia = "manager"
)

// Booking represents a service booking for a master
type Booking struct {
	ID        uuid.UUID
	ClientID  uuid.UUID
	MasterID  uuid.UUID
	ServiceID uuid.UUID
	BranchID  uuid.UUID
	SalonID   uuid.UUID // denormalized from the master for salon-scoped queries

	BookingDate time.Time
	StartTime   types.TimeString
	EndTime     types.TimeString

	FinalPrice float64
	Status     BookingStatus
	CreatedVia CreatedVia

	NotesFromClient *string
	NotesForMaster  *string

	RemindedAt         *time.Time
	CompletedAt        *time.Time
	CancelledAt        *time.Time
	CancellationReason *string

	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsActive returns true if the booking still occupies its time slot.
// Active bookings are the ones the slot generator must treat as conflicts.
func (b *Booking) IsActive() bool {
	return b.Status == StatusPending ||
		b.Status == StatusConfirmed ||
		b.Status == StatusInProgress
}

// IsTerminal returns true if no further transitions are possible
func (b *Booking) IsTerminal() bool {
	switch b.Status {
	case StatusCompleted, StatusCancelledByClient, StatusCancelledBySalon, StatusNoShow:
		return true
	}
	return false
}

// CanBeCancelledByClient returns true if the client may still self-cancel
func (b *Booking) CanBeCancelledByClient() bool {
	return b.Status == StatusPending || b.Status == StatusConfirmed
}

// StartDateTime returns the booking start as a full timestamp on the booking date
func (b *Booking) StartDateTime() (time.Time, error) {
	return b.StartTime.OnDate(b.BookingDate)
}

// EndDateTime returns the booking end as a full timestamp on the booking date
func (b *Booking) EndDateTime() (time.Time, error) {
	return b.EndTime.OnDate(b.BookingDate)
}

// ClientBookingsFilter фильтр для истории бронирований клиента
type ClientBookingsFilter struct {
	ClientID uuid.UUID
	Status   *BookingStatus
}

// SalonBookingsFilter фильтр для выборки бронирований салона (для менеджеров)
type SalonBookingsFilter struct {
	SalonID         uuid.UUID
	MasterID        *uuid.UUID
	StartDate       *time.Time
	EndDate         *time.Time
	Status          *BookingStatus
	IncludeInactive bool
}
