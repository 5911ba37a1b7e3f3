package get_available_slots

import (
	"time"

	"github.com/jazyl-tech/JZL-BookingService/internal/domain"
	"github.com/jazyl-tech/JZL-BookingService/pkg/types"
)

// generateSlots генерирует доступные слоты внутри рабочего окна дня.
// Кандидаты идут по сетке с шагом 15 минут от начала окна; кандидат попадает
// в результат, если услуга целиком помещается в окно, до начала остается не
// меньше часа, и интервал не пересекается ни с перерывом, ни с активным
// бронированием (с учетом 5-минутного буфера после бронирования).
func generateSlots(
	window domain.EffectiveWindow,
	durationMinutes int,
	date time.Time,
	now time.Time,
	bookings []*domain.Booking,
) ([]domain.Slot, error) {
	windowStart, err := window.StartTime.Minutes()
	if err != nil {
		return nil, err
	}
	windowEnd, err := window.EndTime.Minutes()
	if err != nil {
		return nil, err
	}

	// Минимальное время до начала записи: слот, начинающийся раньше
	// now+1h, клиенту не предлагается
	leadDeadline := now.Add(domain.MinLeadTimeMinutes * time.Minute)

	slots := make([]domain.Slot, 0)

	for start := windowStart; start+durationMinutes <= windowEnd; start += domain.SlotStepMinutes {
		end := start + durationMinutes

		startTS, err := types.NewTimeStringFromMinutes(start)
		if err != nil {
			return nil, err
		}

		candidateStart, err := startTS.OnDate(date)
		if err != nil {
			return nil, err
		}
		// Строгое сравнение: кандидат ровно в now+1h остается доступным
		if candidateStart.Before(leadDeadline) {
			continue
		}

		if overlapsBreak(start, end, window.Breaks) {
			continue
		}

		if overlapsBooking(start, end, bookings) {
			continue
		}

		endTS, err := types.NewTimeStringFromMinutes(end)
		if err != nil {
			return nil, err
		}

		slots = append(slots, domain.Slot{
			StartTime: startTS,
			EndTime:   endTS,
		})
	}

	return slots, nil
}

// overlapsBreak проверяет пересечение кандидата [start, end) с перерывами.
// Интервалы полуоткрытые: кандидат, заканчивающийся ровно в начале перерыва
// (или начинающийся ровно в его конце), не считается пересечением.
func overlapsBreak(start, end int, breaks []domain.BreakInterval) bool {
	for _, br := range breaks {
		breakStart, err := br.BreakStart.Minutes()
		if err != nil {
			continue
		}
		breakEnd, err := br.BreakEnd.Minutes()
		if err != nil {
			continue
		}
		if start < breakEnd && end > breakStart {
			return true
		}
	}
	return false
}

// overlapsBooking проверяет пересечение кандидата [start, end) с активными
// бронированиями. К концу существующего бронирования добавляется 5-минутный
// буфер на уборку рабочего места; перед началом бронирования буфера нет,
// поэтому кандидат может заканчиваться вплотную к чужому началу.
func overlapsBooking(start, end int, bookings []*domain.Booking) bool {
	for _, b := range bookings {
		if !b.IsActive() {
			continue
		}

		bookingStart, err := b.StartTime.Minutes()
		if err != nil {
			continue
		}
		bookingEnd, err := b.EndTime.Minutes()
		if err != nil {
			continue
		}
		bookingEnd += domain.BookingBufferMinutes

		if start < bookingEnd && end > bookingStart {
			return true
		}
	}
	return false
}

// isDateInPast проверяет, что дата раньше сегодняшнего дня
func isDateInPast(date, now time.Time) bool {
	dateOnly := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, date.Location())
	nowOnly := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	return dateOnly.Before(nowOnly)
}
