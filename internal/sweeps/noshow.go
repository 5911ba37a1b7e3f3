package sweeps

import (
	"context"
	"errors"
	"fmt"

	"github.com/jazyl-tech/JZL-BookingService/internal/domain"
	bookingRepo "github.com/jazyl-tech/JZL-BookingService/internal/infra/storage/booking"
)

// RunNoShow помечает неявки: confirmed-записи на сегодня, начавшиеся 30 и
// более минут назад, по которым мастер не отметил начало работы.
func (s *Sweeper) RunNoShow(ctx context.Context) (Stats, error) {
	now := s.timeProvider.Now()
	var stats Stats

	today := midnight(now)
	deadline := now.Add(-domain.NoShowAfter)

	bookings, err := s.bookingRepo.ListForNoShow(ctx, today, deadline)
	if err != nil {
		return stats, fmt.Errorf("list for no-show: %w", err)
	}

	for _, b := range bookings {
		prior := b.Status
		effects, err := domain.Transition(b, domain.StatusNoShow, nil, now, nil)
		if err != nil {
			s.logger.Error("RunNoShow: transition rejected for booking=%s: %v", b.ID, err)
			stats.Failed++
			continue
		}

		if err := s.bookingRepo.UpdateStatus(ctx, b.ID, prior, domain.StatusNoShow, effects); err != nil {
			if errors.Is(err, bookingRepo.ErrStatusConflict) {
				// Мастер успел начать работу или запись отменили
				s.logger.Warn("RunNoShow: booking=%s changed concurrently, skipping", b.ID)
				continue
			}
			s.logger.Error("RunNoShow: failed to update booking=%s: %v", b.ID, err)
			stats.Failed++
			continue
		}

		stats.Processed++
	}

	return stats, nil
}
