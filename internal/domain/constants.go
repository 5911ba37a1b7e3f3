package domain

import "time"

// Slot generation parameters
const (
	// SlotStepMinutes is the grid step between candidate slot starts
	SlotStepMinutes = 15

	// BookingBufferMinutes is the mandatory gap after an existing booking's end
	// before the next booking may start. The buffer is trailing only: nothing
	// is reserved before a booking's start.
	BookingBufferMinutes = 5

	// MinLeadTimeMinutes is the minimum interval between "now" and the earliest
	// bookable slot start for online booking
	MinLeadTimeMinutes = 60
)

// Sweep timing parameters
const (
	// AutoCompleteAfter is how long after end time a booking is auto-completed
	AutoCompleteAfter = 2 * time.Hour

	// NoShowAfter is how long after start time a confirmed booking is marked no-show
	NoShowAfter = 30 * time.Minute

	// ReminderWindowHalf is the half-width of the reminder match window
	ReminderWindowHalf = 15 * time.Minute

	// ReviewRequestMinAge is the minimum time since completion before a review request
	ReviewRequestMinAge = 2 * time.Hour

	// ReviewRequestMaxAge is the maximum age of a completion still worth a review request
	ReviewRequestMaxAge = 7 * 24 * time.Hour
)

// Validation bounds
const (
	MaxNotesLength              = 500
	MaxCancellationReasonLength = 500
)

// Time format constants
const (
	TimeFormat = "15:04"      // HH:MM
	DateFormat = "2006-01-02" // YYYY-MM-DD
)

// ActiveStatuses список статусов, при которых бронирование занимает слот
var ActiveStatuses = []BookingStatus{
	StatusPending,
	StatusConfirmed,
	StatusInProgress,
}

// TerminalStatuses список финальных статусов
var TerminalStatuses = []BookingStatus{
	StatusCompleted,
	StatusCancelledByClient,
	StatusCancelledBySalon,
	StatusNoShow,
}
