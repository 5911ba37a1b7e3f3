package sweeps

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jazyl-tech/JZL-BookingService/internal/domain"
	bookingRepo "github.com/jazyl-tech/JZL-BookingService/internal/infra/storage/booking"
	"github.com/jazyl-tech/JZL-BookingService/internal/integrations/notifyservice"
	"github.com/jazyl-tech/JZL-BookingService/pkg/types"
)

type noopLogger struct{}

func (noopLogger) Info(format string, v ...interface{})  {}
func (noopLogger) Warn(format string, v ...interface{})  {}
func (noopLogger) Error(format string, v ...interface{}) {}

type stubTime struct{ now time.Time }

func (s stubTime) Now() time.Time { return s.now }

type statusUpdate struct {
	id      uuid.UUID
	from    domain.BookingStatus
	to      domain.BookingStatus
	effects domain.TransitionEffects
}

type stubRepo struct {
	dayReminders  []*domain.Booking
	hourReminders []*domain.Booking
	completed     []*domain.Booking
	autoComplete  []*domain.Booking
	noShow        []*domain.Booking

	updateErrs map[uuid.UUID]error

	updates  []statusUpdate
	reminded []uuid.UUID
}

func (s *stubRepo) ListNeedingDayBeforeReminder(ctx context.Context, from, to time.Time) ([]*domain.Booking, error) {
	return s.dayReminders, nil
}

func (s *stubRepo) ListNeedingHourBeforeReminder(ctx context.Context, from, to time.Time) ([]*domain.Booking, error) {
	return s.hourReminders, nil
}

func (s *stubRepo) MarkReminded(ctx context.Context, id uuid.UUID, at time.Time) error {
	s.reminded = append(s.reminded, id)
	return nil
}

func (s *stubRepo) ListCompletedWithoutReview(ctx context.Context, from, to time.Time) ([]*domain.Booking, error) {
	return s.completed, nil
}

func (s *stubRepo) ListForAutoComplete(ctx context.Context, today, yesterday, deadline time.Time) ([]*domain.Booking, error) {
	return s.autoComplete, nil
}

func (s *stubRepo) ListForNoShow(ctx context.Context, today, deadline time.Time) ([]*domain.Booking, error) {
	return s.noShow, nil
}

func (s *stubRepo) UpdateStatus(ctx context.Context, id uuid.UUID, from, to domain.BookingStatus, effects domain.TransitionEffects) error {
	if err := s.updateErrs[id]; err != nil {
		return err
	}
	s.updates = append(s.updates, statusUpdate{id: id, from: from, to: to, effects: effects})
	return nil
}

type stubNotify struct {
	reminders []notifyservice.ReminderPayload
	reviews   []notifyservice.ReviewRequestPayload

	reminderErr error
}

func (s *stubNotify) SendReminder(ctx context.Context, p notifyservice.ReminderPayload) error {
	if s.reminderErr != nil {
		return s.reminderErr
	}
	s.reminders = append(s.reminders, p)
	return nil
}

func (s *stubNotify) SendReviewRequest(ctx context.Context, p notifyservice.ReviewRequestPayload) error {
	s.reviews = append(s.reviews, p)
	return nil
}

func newTestSweeper(repo *stubRepo, notify *stubNotify, now time.Time) *Sweeper {
	s := NewSweeper(repo, notify, nil, noopLogger{})
	s.timeProvider = stubTime{now: now}
	return s
}

func sweepBooking(status domain.BookingStatus, date time.Time, start, end string) *domain.Booking {
	return &domain.Booking{
		ID:          uuid.New(),
		ClientID:    uuid.New(),
		MasterID:    uuid.New(),
		BookingDate: date,
		StartTime:   types.TimeString(start),
		EndTime:     types.TimeString(end),
		Status:      status,
	}
}

func TestRunAutoComplete_BackdatesCompletedAt(t *testing.T) {
	now := time.Date(2026, 3, 16, 20, 0, 0, 0, time.UTC)
	date := time.Date(2026, 3, 16, 0, 0, 0, 0, time.UTC)

	b := sweepBooking(domain.StatusInProgress, date, "16:00", "17:00")
	repo := &stubRepo{autoComplete: []*domain.Booking{b}}

	s := newTestSweeper(repo, &stubNotify{}, now)

	stats, err := s.RunAutoComplete(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, stats.Processed)

	require.Len(t, repo.updates, 1)
	upd := repo.updates[0]
	assert.Equal(t, domain.StatusInProgress, upd.from)
	assert.Equal(t, domain.StatusCompleted, upd.to)

	// completed_at — время окончания записи, а не время прогона джобы
	require.NotNil(t, upd.effects.CompletedAt)
	assert.Equal(t, time.Date(2026, 3, 16, 17, 0, 0, 0, time.UTC), *upd.effects.CompletedAt)
}

func TestRunAutoComplete_ConfirmedGoesThroughInProgress(t *testing.T) {
	now := time.Date(2026, 3, 16, 20, 0, 0, 0, time.UTC)
	date := time.Date(2026, 3, 16, 0, 0, 0, 0, time.UTC)

	b := sweepBooking(domain.StatusConfirmed, date, "16:00", "17:00")
	repo := &stubRepo{autoComplete: []*domain.Booking{b}}

	s := newTestSweeper(repo, &stubNotify{}, now)

	stats, err := s.RunAutoComplete(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, stats.Processed)

	// Таблица переходов запрещает confirmed -> completed напрямую
	require.Len(t, repo.updates, 2)
	assert.Equal(t, domain.StatusConfirmed, repo.updates[0].from)
	assert.Equal(t, domain.StatusInProgress, repo.updates[0].to)
	assert.Equal(t, domain.StatusInProgress, repo.updates[1].from)
	assert.Equal(t, domain.StatusCompleted, repo.updates[1].to)
}

func TestRunAutoComplete_ConcurrentChangeSkipped(t *testing.T) {
	now := time.Date(2026, 3, 16, 20, 0, 0, 0, time.UTC)
	date := time.Date(2026, 3, 16, 0, 0, 0, 0, time.UTC)

	b := sweepBooking(domain.StatusInProgress, date, "16:00", "17:00")
	repo := &stubRepo{
		autoComplete: []*domain.Booking{b},
		updateErrs:   map[uuid.UUID]error{b.ID: bookingRepo.ErrStatusConflict},
	}

	s := newTestSweeper(repo, &stubNotify{}, now)

	stats, err := s.RunAutoComplete(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 0, stats.Processed)
	assert.Equal(t, 0, stats.Failed)
}

func TestRunNoShow_MarksConfirmed(t *testing.T) {
	now := time.Date(2026, 3, 16, 11, 0, 0, 0, time.UTC)
	date := time.Date(2026, 3, 16, 0, 0, 0, 0, time.UTC)

	b := sweepBooking(domain.StatusConfirmed, date, "10:15", "11:15")
	repo := &stubRepo{noShow: []*domain.Booking{b}}

	s := newTestSweeper(repo, &stubNotify{}, now)

	stats, err := s.RunNoShow(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, stats.Processed)

	require.Len(t, repo.updates, 1)
	assert.Equal(t, domain.StatusConfirmed, repo.updates[0].from)
	assert.Equal(t, domain.StatusNoShow, repo.updates[0].to)
}

func TestRunNoShow_ConcurrentStartSkipped(t *testing.T) {
	now := time.Date(2026, 3, 16, 11, 0, 0, 0, time.UTC)
	date := time.Date(2026, 3, 16, 0, 0, 0, 0, time.UTC)

	b := sweepBooking(domain.StatusConfirmed, date, "10:15", "11:15")
	repo := &stubRepo{
		noShow:     []*domain.Booking{b},
		updateErrs: map[uuid.UUID]error{b.ID: bookingRepo.ErrStatusConflict},
	}

	s := newTestSweeper(repo, &stubNotify{}, now)

	stats, err := s.RunNoShow(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 0, stats.Processed)
	assert.Equal(t, 0, stats.Failed)
}

func TestRunReminders_DayBeforeMarksReminded(t *testing.T) {
	now := time.Date(2026, 3, 15, 14, 0, 0, 0, time.UTC)
	date := time.Date(2026, 3, 16, 0, 0, 0, 0, time.UTC)

	b := sweepBooking(domain.StatusConfirmed, date, "14:00", "15:00")
	repo := &stubRepo{dayReminders: []*domain.Booking{b}}
	notify := &stubNotify{}

	s := newTestSweeper(repo, notify, now)

	stats, err := s.RunReminders(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, stats.Processed)

	require.Len(t, notify.reminders, 1)
	assert.Equal(t, 24, notify.reminders[0].HoursBefore)
	assert.Equal(t, time.Date(2026, 3, 16, 14, 0, 0, 0, time.UTC), notify.reminders[0].StartsAt)

	// 24-часовое напоминание фиксируется в reminded_at
	assert.Equal(t, []uuid.UUID{b.ID}, repo.reminded)
}

func TestRunReminders_HourBeforeDoesNotMarkReminded(t *testing.T) {
	now := time.Date(2026, 3, 16, 13, 0, 0, 0, time.UTC)
	date := time.Date(2026, 3, 16, 0, 0, 0, 0, time.UTC)

	b := sweepBooking(domain.StatusConfirmed, date, "14:00", "15:00")
	repo := &stubRepo{hourReminders: []*domain.Booking{b}}
	notify := &stubNotify{}

	s := newTestSweeper(repo, notify, now)

	stats, err := s.RunReminders(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, stats.Processed)

	require.Len(t, notify.reminders, 1)
	assert.Equal(t, 1, notify.reminders[0].HoursBefore)
	assert.Empty(t, repo.reminded)
}

func TestRunReminders_SendFailureCountsFailed(t *testing.T) {
	now := time.Date(2026, 3, 15, 14, 0, 0, 0, time.UTC)
	date := time.Date(2026, 3, 16, 0, 0, 0, 0, time.UTC)

	b := sweepBooking(domain.StatusConfirmed, date, "14:00", "15:00")
	repo := &stubRepo{dayReminders: []*domain.Booking{b}}
	notify := &stubNotify{reminderErr: context.DeadlineExceeded}

	s := newTestSweeper(repo, notify, now)

	stats, err := s.RunReminders(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 0, stats.Processed)
	assert.Equal(t, 1, stats.Failed)

	// Неотправленное напоминание не отмечается: его подхватит следующий прогон
	assert.Empty(t, repo.reminded)
}

func TestRunReviewRequests(t *testing.T) {
	now := time.Date(2026, 3, 16, 20, 0, 0, 0, time.UTC)
	date := time.Date(2026, 3, 16, 0, 0, 0, 0, time.UTC)

	completedAt := time.Date(2026, 3, 16, 15, 0, 0, 0, time.UTC)
	b := sweepBooking(domain.StatusCompleted, date, "14:00", "15:00")
	b.CompletedAt = &completedAt

	// Запись без completed_at в выборку попасть не должна, но если попала —
	// пропускается без ошибки
	broken := sweepBooking(domain.StatusCompleted, date, "12:00", "13:00")

	repo := &stubRepo{completed: []*domain.Booking{b, broken}}
	notify := &stubNotify{}

	s := newTestSweeper(repo, notify, now)

	stats, err := s.RunReviewRequests(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, stats.Processed)
	assert.Equal(t, 0, stats.Failed)

	require.Len(t, notify.reviews, 1)
	assert.Equal(t, b.ID, notify.reviews[0].BookingID)
	assert.Equal(t, completedAt, notify.reviews[0].CompletedAt)
}
