package sweeps

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jazyl-tech/JZL-BookingService/internal/domain"
	bookingRepo "github.com/jazyl-tech/JZL-BookingService/internal/infra/storage/booking"
)

// RunAutoComplete завершает записи, по которым салон забыл проставить
// статус: confirmed или in_progress, закончившиеся 2 и более часов назад.
// completed_at проставляется временем окончания записи, а не временем
// прогона джобы - иначе отсчет окна отзывов зависел бы от каданса джобы.
func (s *Sweeper) RunAutoComplete(ctx context.Context) (Stats, error) {
	now := s.timeProvider.Now()
	var stats Stats

	today := midnight(now)
	yesterday := today.AddDate(0, 0, -1)
	deadline := now.Add(-domain.AutoCompleteAfter)

	bookings, err := s.bookingRepo.ListForAutoComplete(ctx, today, yesterday, deadline)
	if err != nil {
		return stats, fmt.Errorf("list for auto-complete: %w", err)
	}

	for _, b := range bookings {
		endedAt, err := b.EndDateTime()
		if err != nil {
			s.logger.Error("RunAutoComplete: failed to compute end datetime for booking=%s: %v", b.ID, err)
			stats.Failed++
			continue
		}

		prior := b.Status
		effects, err := domain.Transition(b, domain.StatusCompleted, nil, now, &endedAt)
		if err != nil {
			// confirmed -> completed запрещен таблицей напрямую, поэтому
			// confirmed проводим через in_progress
			if prior == domain.StatusConfirmed {
				if err := s.completeConfirmed(ctx, b, prior, now, endedAt); err != nil {
					s.logger.Error("RunAutoComplete: failed to complete booking=%s: %v", b.ID, err)
					stats.Failed++
					continue
				}
				stats.Processed++
				continue
			}
			s.logger.Error("RunAutoComplete: transition rejected for booking=%s: %v", b.ID, err)
			stats.Failed++
			continue
		}

		if err := s.bookingRepo.UpdateStatus(ctx, b.ID, prior, domain.StatusCompleted, effects); err != nil {
			if errors.Is(err, bookingRepo.ErrStatusConflict) {
				// Статус сменили между чтением и записью, пропускаем
				s.logger.Warn("RunAutoComplete: booking=%s changed concurrently, skipping", b.ID)
				continue
			}
			s.logger.Error("RunAutoComplete: failed to update booking=%s: %v", b.ID, err)
			stats.Failed++
			continue
		}

		stats.Processed++
	}

	return stats, nil
}

// completeConfirmed проводит confirmed-запись через in_progress в completed
func (s *Sweeper) completeConfirmed(ctx context.Context, b *domain.Booking, prior domain.BookingStatus, now time.Time, endedAt time.Time) error {
	if err := s.bookingRepo.UpdateStatus(ctx, b.ID, prior, domain.StatusInProgress, domain.TransitionEffects{}); err != nil {
		return err
	}

	b.Status = domain.StatusInProgress
	effects, err := domain.Transition(b, domain.StatusCompleted, nil, now, &endedAt)
	if err != nil {
		return err
	}

	return s.bookingRepo.UpdateStatus(ctx, b.ID, domain.StatusInProgress, domain.StatusCompleted, effects)
}

// midnight обнуляет время, оставляя только дату
func midnight(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
