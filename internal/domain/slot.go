package domain

import "github.com/jazyl-tech/JZL-BookingService/pkg/types"

// Slot represents a bookable time interval sized to a service's duration
type Slot struct {
	StartTime types.TimeString
	EndTime   types.TimeString
}

// DurationMinutes returns the slot length in minutes
func (s Slot) DurationMinutes() int {
	start, err1 := s.StartTime.Minutes()
	end, err2 := s.EndTime.Minutes()
	if err1 != nil || err2 != nil {
		return 0
	}
	return end - start
}
