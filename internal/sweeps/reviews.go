package sweeps

import (
	"context"
	"fmt"

	"github.com/jazyl-tech/JZL-BookingService/internal/domain"
	"github.com/jazyl-tech/JZL-BookingService/internal/integrations/notifyservice"
)

// RunReviewRequests отправляет приглашения оставить отзыв по завершенным
// записям: не раньше 2 часов после завершения, не позже 7 дней. Записи с
// уже оставленным отзывом отфильтровываются на уровне запроса.
func (s *Sweeper) RunReviewRequests(ctx context.Context) (Stats, error) {
	now := s.timeProvider.Now()
	var stats Stats

	from := now.Add(-domain.ReviewRequestMaxAge)
	to := now.Add(-domain.ReviewRequestMinAge)

	bookings, err := s.bookingRepo.ListCompletedWithoutReview(ctx, from, to)
	if err != nil {
		return stats, fmt.Errorf("list completed without review: %w", err)
	}

	for _, b := range bookings {
		if b.CompletedAt == nil {
			// Страховка: запрос уже фильтрует по completed_at
			continue
		}

		err := s.notifyClient.SendReviewRequest(ctx, notifyservice.ReviewRequestPayload{
			BookingID:   b.ID,
			ClientID:    b.ClientID,
			MasterID:    b.MasterID,
			CompletedAt: *b.CompletedAt,
		})
		if err != nil {
			s.recordNotification("review_request", false)
			s.logger.Error("RunReviewRequests: failed to send review request for booking=%s: %v", b.ID, err)
			stats.Failed++
			continue
		}

		s.recordNotification("review_request", true)
		stats.Processed++
	}

	return stats, nil
}
