package domain

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/jazyl-tech/JZL-BookingService/pkg/types"
)

// BreakInterval is a pause inside a working day during which no slots are offered
type BreakInterval struct {
	BreakStart types.TimeString `json:"break_start"`
	BreakEnd   types.TimeString `json:"break_end"`
	Reason     *string          `json:"reason,omitempty"`
}

// WeekdaySchedule is a master's regular working window for one weekday at one branch.
// DayOfWeek follows ISO-8601: 1 = Monday ... 7 = Sunday.
type WeekdaySchedule struct {
	ID        uuid.UUID
	MasterID  uuid.UUID
	BranchID  uuid.UUID
	DayOfWeek int
	IsWorking bool
	StartTime types.TimeString
	EndTime   types.TimeString
	Breaks    []BreakInterval
}

// ExceptionType describes how a schedule exception overrides the regular window
type ExceptionType string

const (
	ExceptionDayOff      ExceptionType = "day_off"
	ExceptionCustomHours ExceptionType = "custom_hours"
	ExceptionFullyBooked ExceptionType = "fully_booked"
)

// ScheduleException overrides a master's working window for exactly one date
type ScheduleException struct {
	ID              uuid.UUID
	MasterID        uuid.UUID
	ExceptionDate   time.Time
	ExceptionType   ExceptionType
	CustomStartTime types.TimeString
	CustomEndTime   types.TimeString
	Reason          *string
	CreatedAt       time.Time
}

// EffectiveWindow is the resolved working window for one master on one date
type EffectiveWindow struct {
	StartTime types.TimeString
	EndTime   types.TimeString
	Breaks    []BreakInterval
}

// ResolveDay applies exception precedence and returns the effective working
// window for a date. The second return value is false when the day is closed
// (day off, fully booked, non-working weekday or no schedule row).
//
// Custom-hours exceptions deliberately return an empty break list: the regular
// day's breaks are not inherited on override days. This mirrors the production
// behavior and is flagged as a possible source bug in DESIGN.md.
func ResolveDay(exception *ScheduleException, schedule *WeekdaySchedule) (EffectiveWindow, bool) {
	if exception != nil {
		switch exception.ExceptionType {
		case ExceptionDayOff, ExceptionFullyBooked:
			return EffectiveWindow{}, false
		case ExceptionCustomHours:
			if exception.CustomStartTime.IsZero() || exception.CustomEndTime.IsZero() {
				return EffectiveWindow{}, false
			}
			return EffectiveWindow{
				StartTime: exception.CustomStartTime,
				EndTime:   exception.CustomEndTime,
				Breaks:    nil,
			}, true
		}
	}

	if schedule == nil || !schedule.IsWorking {
		return EffectiveWindow{}, false
	}
	if schedule.StartTime.IsZero() || schedule.EndTime.IsZero() {
		return EffectiveWindow{}, false
	}

	return EffectiveWindow{
		StartTime: schedule.StartTime,
		EndTime:   schedule.EndTime,
		Breaks:    schedule.Breaks,
	}, true
}

// ValidateWindow checks invariants of a working window: start strictly before
// end, breaks inside [start, end) and pairwise non-overlapping in order.
func ValidateWindow(start, end types.TimeString, breaks []BreakInterval) error {
	if err := start.Validate(); err != nil {
		return err
	}
	if err := end.Validate(); err != nil {
		return err
	}
	if !start.IsBefore(end) {
		return fmt.Errorf("window start %s must be before end %s", start, end)
	}

	var prevEnd types.TimeString
	for i, br := range breaks {
		if err := br.BreakStart.Validate(); err != nil {
			return err
		}
		if err := br.BreakEnd.Validate(); err != nil {
			return err
		}
		if !br.BreakStart.IsBefore(br.BreakEnd) {
			return fmt.Errorf("break %d: start %s must be before end %s", i+1, br.BreakStart, br.BreakEnd)
		}
		if br.BreakStart.IsBefore(start) || br.BreakEnd.IsAfter(end) {
			return fmt.Errorf("break %d: %s-%s lies outside window %s-%s", i+1, br.BreakStart, br.BreakEnd, start, end)
		}
		if i > 0 && br.BreakStart.IsBefore(prevEnd) {
			return fmt.Errorf("break %d overlaps previous break", i+1)
		}
		prevEnd = br.BreakEnd
	}

	return nil
}

// ISOWeekday returns the ISO-8601 day of week (1 = Monday ... 7 = Sunday)
func ISOWeekday(date time.Time) int {
	wd := int(date.Weekday())
	if wd == 0 {
		return 7
	}
	return wd
}
