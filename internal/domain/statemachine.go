package domain

import (
	"fmt"
	"time"
)

// InvalidTransitionError is returned when a status change is not permitted
// from the booking's current state. It names both states so the HTTP layer
// can surface the exact rule that was violated.
type InvalidTransitionError struct {
	From BookingStatus
	To   BookingStatus
}

func (e *InvalidTransitionError) Error() string {
	return fmt.Sprintf("cannot transition from %s to %s", e.From, e.To)
}

// transitions is the full transition table of the booking lifecycle.
// Terminal states map to an empty list: once a booking is completed,
// cancelled or marked no-show it never moves again, which is also what
// protects terminal rows from concurrent sweep jobs.
var transitions = map[BookingStatus][]BookingStatus{
	StatusPending:   {StatusConfirmed, StatusCancelledBySalon, StatusCancelledByClient},
	StatusConfirmed: {StatusInProgress, StatusCancelledBySalon, StatusNoShow, StatusCancelledByClient},
	StatusInProgress: {
		StatusCompleted,
		StatusCancelledBySalon,
	},
	StatusCompleted:         {},
	StatusCancelledByClient: {},
	StatusCancelledBySalon:  {},
	StatusNoShow:            {},
}

// CanTransition reports whether the status change is allowed by the table
func CanTransition(from, to BookingStatus) bool {
	allowed, ok := transitions[from]
	if !ok {
		return false
	}
	for _, s := range allowed {
		if s == to {
			return true
		}
	}
	return false
}

// AllowedTransitions returns the list of statuses reachable from the given one
func AllowedTransitions(from BookingStatus) []BookingStatus {
	return transitions[from]
}

// TransitionEffects carries the side-effect fields a transition writes
// alongside the status itself
type TransitionEffects struct {
	CancelledAt        *time.Time
	CancellationReason *string
	CompletedAt        *time.Time
}

// Transition validates the status change against the table and applies it to
// the booking together with its side effects. Entering a cancelled state sets
// cancelled_at (and the reason, if supplied); entering completed sets
// completed_at. completedAt is passed in explicitly because the auto-complete
// sweep backdates it to the booking's end time rather than "now".
//
// The state machine is permission-agnostic: who may request which transition
// is decided by the caller before this point.
func Transition(b *Booking, to BookingStatus, reason *string, now time.Time, completedAt *time.Time) (TransitionEffects, error) {
	if !CanTransition(b.Status, to) {
		return TransitionEffects{}, &InvalidTransitionError{From: b.Status, To: to}
	}

	var effects TransitionEffects

	switch to {
	case StatusCancelledByClient, StatusCancelledBySalon:
		cancelledAt := now
		effects.CancelledAt = &cancelledAt
		effects.CancellationReason = reason
	case StatusCompleted:
		at := now
		if completedAt != nil {
			at = *completedAt
		}
		effects.CompletedAt = &at
	}

	b.Status = to
	b.CancelledAt = effects.CancelledAt
	if effects.CancellationReason != nil {
		b.CancellationReason = effects.CancellationReason
	}
	if effects.CompletedAt != nil {
		b.CompletedAt = effects.CompletedAt
	}

	return effects, nil
}
