package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jazyl-tech/JZL-BookingService/pkg/types"
)

func workingDay() *WeekdaySchedule {
	return &WeekdaySchedule{
		DayOfWeek: 1,
		IsWorking: true,
		StartTime: "09:00",
		EndTime:   "18:00",
		Breaks: []BreakInterval{
			{BreakStart: "13:00", BreakEnd: "14:00"},
		},
	}
}

func TestResolveDay_RegularSchedule(t *testing.T) {
	window, open := ResolveDay(nil, workingDay())

	require.True(t, open)
	assert.Equal(t, types.TimeString("09:00"), window.StartTime)
	assert.Equal(t, types.TimeString("18:00"), window.EndTime)
	require.Len(t, window.Breaks, 1)
}

func TestResolveDay_NonWorkingDay(t *testing.T) {
	day := workingDay()
	day.IsWorking = false

	_, open := ResolveDay(nil, day)
	assert.False(t, open)

	_, open = ResolveDay(nil, nil)
	assert.False(t, open)
}

func TestResolveDay_DayOffOverridesSchedule(t *testing.T) {
	exc := &ScheduleException{ExceptionType: ExceptionDayOff}

	_, open := ResolveDay(exc, workingDay())
	assert.False(t, open)
}

func TestResolveDay_FullyBookedOverridesSchedule(t *testing.T) {
	exc := &ScheduleException{ExceptionType: ExceptionFullyBooked}

	_, open := ResolveDay(exc, workingDay())
	assert.False(t, open)
}

func TestResolveDay_CustomHoursReplaceWindow(t *testing.T) {
	exc := &ScheduleException{
		ExceptionType:   ExceptionCustomHours,
		CustomStartTime: "11:00",
		CustomEndTime:   "15:00",
	}

	window, open := ResolveDay(exc, workingDay())

	require.True(t, open)
	assert.Equal(t, types.TimeString("11:00"), window.StartTime)
	assert.Equal(t, types.TimeString("15:00"), window.EndTime)
	// Перерывы обычного дня не наследуются в день с custom_hours
	assert.Empty(t, window.Breaks)
}

func TestResolveDay_CustomHoursWithoutTimesClosesDay(t *testing.T) {
	exc := &ScheduleException{ExceptionType: ExceptionCustomHours}

	_, open := ResolveDay(exc, workingDay())
	assert.False(t, open)
}

func TestValidateWindow(t *testing.T) {
	tests := []struct {
		name    string
		start   types.TimeString
		end     types.TimeString
		breaks  []BreakInterval
		wantErr bool
	}{
		{name: "plain window", start: "09:00", end: "18:00"},
		{name: "window with break", start: "09:00", end: "18:00",
			breaks: []BreakInterval{{BreakStart: "13:00", BreakEnd: "14:00"}}},
		{name: "two ordered breaks", start: "09:00", end: "18:00",
			breaks: []BreakInterval{
				{BreakStart: "11:00", BreakEnd: "11:30"},
				{BreakStart: "13:00", BreakEnd: "14:00"},
			}},
		{name: "start equals end", start: "09:00", end: "09:00", wantErr: true},
		{name: "start after end", start: "18:00", end: "09:00", wantErr: true},
		{name: "invalid start format", start: "9am", end: "18:00", wantErr: true},
		{name: "break outside window", start: "09:00", end: "18:00",
			breaks:  []BreakInterval{{BreakStart: "08:00", BreakEnd: "08:30"}},
			wantErr: true},
		{name: "break past end", start: "09:00", end: "18:00",
			breaks:  []BreakInterval{{BreakStart: "17:30", BreakEnd: "18:30"}},
			wantErr: true},
		{name: "inverted break", start: "09:00", end: "18:00",
			breaks:  []BreakInterval{{BreakStart: "14:00", BreakEnd: "13:00"}},
			wantErr: true},
		{name: "overlapping breaks", start: "09:00", end: "18:00",
			breaks: []BreakInterval{
				{BreakStart: "12:00", BreakEnd: "13:00"},
				{BreakStart: "12:30", BreakEnd: "14:00"},
			},
			wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateWindow(tt.start, tt.end, tt.breaks)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			assert.NoError(t, err)
		})
	}
}

func TestISOWeekday(t *testing.T) {
	// 2026-03-16 — понедельник
	monday := time.Date(2026, 3, 16, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, 1, ISOWeekday(monday))

	sunday := monday.AddDate(0, 0, 6)
	assert.Equal(t, 7, ISOWeekday(sunday))
}
