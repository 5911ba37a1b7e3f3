package sweeps

import (
	"context"
	"fmt"
	"time"

	"github.com/jazyl-tech/JZL-BookingService/internal/domain"
	"github.com/jazyl-tech/JZL-BookingService/internal/integrations/notifyservice"
)

// RunReminders отправляет напоминания о записях в двух окнах: за 24 часа и
// за 1 час до начала. Окна шириной ±15 минут вокруг точки напоминания при
// 15-минутном кадансе джобы накрывают каждую запись ровно одним прогоном.
//
// 24-часовое напоминание отмечается в reminded_at, часовое повторной отметки
// не имеет: его идемпотентность держится только на узости окна.
func (s *Sweeper) RunReminders(ctx context.Context) (Stats, error) {
	now := s.timeProvider.Now()
	var stats Stats

	// Окно "за 24 часа": [now+23:45, now+24:15]
	dayFrom := now.Add(24*time.Hour - domain.ReminderWindowHalf)
	dayTo := now.Add(24*time.Hour + domain.ReminderWindowHalf)

	dayBookings, err := s.bookingRepo.ListNeedingDayBeforeReminder(ctx, dayFrom, dayTo)
	if err != nil {
		return stats, fmt.Errorf("list day-before reminders: %w", err)
	}

	for _, b := range dayBookings {
		if err := s.sendReminder(ctx, b, 24); err != nil {
			s.logger.Error("RunReminders: failed to send 24h reminder for booking=%s: %v", b.ID, err)
			stats.Failed++
			continue
		}
		if err := s.bookingRepo.MarkReminded(ctx, b.ID, now); err != nil {
			s.logger.Error("RunReminders: failed to mark booking=%s reminded: %v", b.ID, err)
			stats.Failed++
			continue
		}
		stats.Processed++
	}

	// Окно "за 1 час": [now+0:45, now+1:15]
	hourFrom := now.Add(time.Hour - domain.ReminderWindowHalf)
	hourTo := now.Add(time.Hour + domain.ReminderWindowHalf)

	hourBookings, err := s.bookingRepo.ListNeedingHourBeforeReminder(ctx, hourFrom, hourTo)
	if err != nil {
		return stats, fmt.Errorf("list hour-before reminders: %w", err)
	}

	for _, b := range hourBookings {
		if err := s.sendReminder(ctx, b, 1); err != nil {
			s.logger.Error("RunReminders: failed to send 1h reminder for booking=%s: %v", b.ID, err)
			stats.Failed++
			continue
		}
		stats.Processed++
	}

	return stats, nil
}

func (s *Sweeper) sendReminder(ctx context.Context, b *domain.Booking, hoursBefore int) error {
	startsAt, err := b.StartDateTime()
	if err != nil {
		return err
	}

	err = s.notifyClient.SendReminder(ctx, notifyservice.ReminderPayload{
		BookingID:   b.ID,
		ClientID:    b.ClientID,
		MasterID:    b.MasterID,
		StartsAt:    startsAt,
		HoursBefore: hoursBefore,
	})
	if err != nil {
		s.recordNotification("reminder", false)
		return err
	}

	s.recordNotification("reminder", true)
	return nil
}
