package get_available_slots

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jazyl-tech/JZL-BookingService/internal/domain"
	"github.com/jazyl-tech/JZL-BookingService/pkg/types"
)

var slotDate = time.Date(2026, 3, 16, 0, 0, 0, 0, time.UTC) // понедельник

func slotWindow(start, end types.TimeString, breaks ...domain.BreakInterval) domain.EffectiveWindow {
	return domain.EffectiveWindow{StartTime: start, EndTime: end, Breaks: breaks}
}

func slotTimes(slots []domain.Slot) []string {
	out := make([]string, 0, len(slots))
	for _, s := range slots {
		out = append(out, s.StartTime.String())
	}
	return out
}

func activeBooking(start, end types.TimeString) *domain.Booking {
	return &domain.Booking{
		ID:          uuid.New(),
		BookingDate: slotDate,
		StartTime:   start,
		EndTime:     end,
		Status:      domain.StatusConfirmed,
	}
}

func TestGenerateSlots_FullDayGrid(t *testing.T) {
	// За день до даты: минимальное время до записи не срабатывает
	now := slotDate.Add(-24 * time.Hour)

	slots, err := generateSlots(slotWindow("09:00", "10:00"), 30, slotDate, now, nil)
	require.NoError(t, err)

	assert.Equal(t, []string{"09:00", "09:15", "09:30"}, slotTimes(slots))
	assert.Equal(t, types.TimeString("09:30"), slots[0].EndTime)
}

func TestGenerateSlots_LeadTime(t *testing.T) {
	// В 08:00 первый предлагаемый слот — 09:00: кандидат ровно в now+1h доступен
	now := time.Date(2026, 3, 16, 8, 0, 0, 0, time.UTC)

	slots, err := generateSlots(slotWindow("08:00", "10:00"), 30, slotDate, now, nil)
	require.NoError(t, err)

	assert.Equal(t, []string{"09:00", "09:15", "09:30"}, slotTimes(slots))
}

func TestGenerateSlots_LeadTimeSkipsEarlierCandidates(t *testing.T) {
	// В 08:10 кандидаты 08:xx и 09:00 уже недоступны, первый — 09:15
	now := time.Date(2026, 3, 16, 8, 10, 0, 0, time.UTC)

	slots, err := generateSlots(slotWindow("08:00", "10:30"), 30, slotDate, now, nil)
	require.NoError(t, err)

	assert.Equal(t, []string{"09:15", "09:30", "09:45", "10:00"}, slotTimes(slots))
}

func TestGenerateSlots_ServiceMustFitWindow(t *testing.T) {
	now := slotDate.Add(-24 * time.Hour)

	// Услуга 60 минут в окне 09:00-10:00: помещается только слот 09:00
	slots, err := generateSlots(slotWindow("09:00", "10:00"), 60, slotDate, now, nil)
	require.NoError(t, err)
	assert.Equal(t, []string{"09:00"}, slotTimes(slots))

	// Услуга длиннее окна: слотов нет, но это не ошибка
	slots, err = generateSlots(slotWindow("09:00", "10:00"), 90, slotDate, now, nil)
	require.NoError(t, err)
	assert.Empty(t, slots)
}

func TestGenerateSlots_BreakExcluded(t *testing.T) {
	now := slotDate.Add(-24 * time.Hour)
	window := slotWindow("12:00", "15:00", domain.BreakInterval{BreakStart: "13:00", BreakEnd: "14:00"})

	slots, err := generateSlots(window, 30, slotDate, now, nil)
	require.NoError(t, err)

	// Интервалы полуоткрытые: слот 12:30-13:00 примыкает к перерыву и доступен,
	// слот 14:00-14:30 начинается ровно в конце перерыва и тоже доступен
	assert.Equal(t, []string{"12:00", "12:15", "12:30", "14:00", "14:15", "14:30"}, slotTimes(slots))
}

func TestGenerateSlots_BookingWithTrailingBuffer(t *testing.T) {
	now := slotDate.Add(-24 * time.Hour)
	bookings := []*domain.Booking{activeBooking("12:00", "13:00")}

	slots, err := generateSlots(slotWindow("11:00", "14:30"), 30, slotDate, now, bookings)
	require.NoError(t, err)

	// Буфер только после бронирования: слот 11:30-12:00 заканчивается вплотную
	// к чужому началу и доступен, а 13:00 закрыт 5-минутным буфером после
	// бронирования — следующий на сетке 13:15
	assert.Equal(t, []string{"11:00", "11:15", "11:30", "13:15", "13:30", "13:45", "14:00"}, slotTimes(slots))
}

func TestGenerateSlots_CancelledBookingIgnored(t *testing.T) {
	now := slotDate.Add(-24 * time.Hour)
	cancelled := activeBooking("12:00", "13:00")
	cancelled.Status = domain.StatusCancelledByClient

	slots, err := generateSlots(slotWindow("12:00", "13:00"), 30, slotDate, now, []*domain.Booking{cancelled})
	require.NoError(t, err)

	assert.Equal(t, []string{"12:00", "12:15", "12:30"}, slotTimes(slots))
}

func TestGenerateSlots_DayFullyBooked(t *testing.T) {
	now := slotDate.Add(-24 * time.Hour)
	bookings := []*domain.Booking{activeBooking("09:00", "18:00")}

	slots, err := generateSlots(slotWindow("09:00", "18:00"), 30, slotDate, now, bookings)
	require.NoError(t, err)
	assert.Empty(t, slots)
}

func TestGenerateSlots_Deterministic(t *testing.T) {
	// Повторный вызов с теми же входными данными и тем же now
	// возвращает идентичную последовательность слотов
	now := time.Date(2026, 3, 16, 8, 10, 0, 0, time.UTC)
	window := slotWindow("09:00", "14:00", domain.BreakInterval{BreakStart: "12:00", BreakEnd: "13:00"})
	bookings := []*domain.Booking{activeBooking("10:00", "11:00")}

	first, err := generateSlots(window, 30, slotDate, now, bookings)
	require.NoError(t, err)
	second, err := generateSlots(window, 30, slotDate, now, bookings)
	require.NoError(t, err)

	assert.NotEmpty(t, first)
	assert.Equal(t, first, second)
}

func TestIsDateInPast(t *testing.T) {
	now := time.Date(2026, 3, 16, 15, 0, 0, 0, time.UTC)

	assert.True(t, isDateInPast(now.AddDate(0, 0, -1), now))
	// Сегодняшняя дата не считается прошедшей, даже если время позднее
	assert.False(t, isDateInPast(now.Add(-14*time.Hour), now))
	assert.False(t, isDateInPast(now.AddDate(0, 0, 1), now))
}
