package domain

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCanTransition(t *testing.T) {
	tests := []struct {
		from BookingStatus
		to   BookingStatus
		want bool
	}{
		{StatusPending, StatusConfirmed, true},
		{StatusPending, StatusCancelledByClient, true},
		{StatusPending, StatusCancelledBySalon, true},
		{StatusPending, StatusInProgress, false},
		{StatusPending, StatusCompleted, false},
		{StatusPending, StatusNoShow, false},

		{StatusConfirmed, StatusInProgress, true},
		{StatusConfirmed, StatusNoShow, true},
		{StatusConfirmed, StatusCancelledByClient, true},
		{StatusConfirmed, StatusCancelledBySalon, true},
		{StatusConfirmed, StatusCompleted, false},
		{StatusConfirmed, StatusPending, false},

		{StatusInProgress, StatusCompleted, true},
		{StatusInProgress, StatusCancelledBySalon, true},
		{StatusInProgress, StatusCancelledByClient, false},
		{StatusInProgress, StatusNoShow, false},

		// Финальные статусы никуда не переходят
		{StatusCompleted, StatusPending, false},
		{StatusCompleted, StatusConfirmed, false},
		{StatusCancelledByClient, StatusPending, false},
		{StatusCancelledBySalon, StatusConfirmed, false},
		{StatusNoShow, StatusConfirmed, false},

		{BookingStatus("unknown"), StatusConfirmed, false},
	}

	for _, tt := range tests {
		t.Run(string(tt.from)+"_to_"+string(tt.to), func(t *testing.T) {
			assert.Equal(t, tt.want, CanTransition(tt.from, tt.to))
		})
	}
}

func TestTransition_InvalidPair(t *testing.T) {
	b := &Booking{ID: uuid.New(), Status: StatusPending}

	_, err := Transition(b, StatusCompleted, nil, time.Now(), nil)
	require.Error(t, err)

	var invalidErr *InvalidTransitionError
	require.ErrorAs(t, err, &invalidErr)
	assert.Equal(t, StatusPending, invalidErr.From)
	assert.Equal(t, StatusCompleted, invalidErr.To)

	// Бронирование не изменилось
	assert.Equal(t, StatusPending, b.Status)
}

func TestTransition_CancelSetsCancelledAt(t *testing.T) {
	now := time.Date(2026, 4, 1, 12, 0, 0, 0, time.UTC)
	reason := "клиент передумал"
	b := &Booking{ID: uuid.New(), Status: StatusConfirmed}

	effects, err := Transition(b, StatusCancelledByClient, &reason, now, nil)
	require.NoError(t, err)

	assert.Equal(t, StatusCancelledByClient, b.Status)
	require.NotNil(t, effects.CancelledAt)
	assert.Equal(t, now, *effects.CancelledAt)
	require.NotNil(t, b.CancellationReason)
	assert.Equal(t, reason, *b.CancellationReason)
	assert.Nil(t, effects.CompletedAt)
}

func TestTransition_CompleteDefaultsToNow(t *testing.T) {
	now := time.Date(2026, 4, 1, 18, 30, 0, 0, time.UTC)
	b := &Booking{ID: uuid.New(), Status: StatusInProgress}

	effects, err := Transition(b, StatusCompleted, nil, now, nil)
	require.NoError(t, err)

	assert.Equal(t, StatusCompleted, b.Status)
	require.NotNil(t, effects.CompletedAt)
	assert.Equal(t, now, *effects.CompletedAt)
}

func TestTransition_CompleteBackdated(t *testing.T) {
	// Авто-завершение датирует completed_at временем окончания записи, а не "сейчас"
	now := time.Date(2026, 4, 1, 20, 0, 0, 0, time.UTC)
	endedAt := time.Date(2026, 4, 1, 17, 0, 0, 0, time.UTC)
	b := &Booking{ID: uuid.New(), Status: StatusInProgress}

	effects, err := Transition(b, StatusCompleted, nil, now, &endedAt)
	require.NoError(t, err)

	require.NotNil(t, effects.CompletedAt)
	assert.Equal(t, endedAt, *effects.CompletedAt)
	assert.Equal(t, endedAt, *b.CompletedAt)
}

func TestAllowedTransitions_TerminalStatesEmpty(t *testing.T) {
	for _, status := range TerminalStatuses {
		assert.Empty(t, AllowedTransitions(status), "status %s", status)
	}
}
