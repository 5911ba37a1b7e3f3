package get_available_slots

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jazyl-tech/JZL-BookingService/internal/domain"
	catalogClient "github.com/jazyl-tech/JZL-BookingService/internal/integrations/catalogservice"
	scheduleRepo "github.com/jazyl-tech/JZL-BookingService/internal/infra/storage/schedule"
)

type noopLogger struct{}

func (noopLogger) Info(format string, v ...interface{})  {}
func (noopLogger) Warn(format string, v ...interface{})  {}
func (noopLogger) Error(format string, v ...interface{}) {}

type stubTime struct{ now time.Time }

func (s stubTime) Now() time.Time { return s.now }

type stubBookingRepo struct {
	bookings []*domain.Booking
	err      error
}

func (s *stubBookingRepo) GetByMasterAndDate(ctx context.Context, masterID uuid.UUID, date time.Time, statuses []domain.BookingStatus) ([]*domain.Booking, error) {
	return s.bookings, s.err
}

type stubScheduleRepo struct {
	weekday   *domain.WeekdaySchedule
	exception *domain.ScheduleException
}

func (s *stubScheduleRepo) GetWeekday(ctx context.Context, masterID, branchID uuid.UUID, dayOfWeek int) (*domain.WeekdaySchedule, error) {
	if s.weekday == nil {
		return nil, scheduleRepo.ErrScheduleNotFound
	}
	return s.weekday, nil
}

func (s *stubScheduleRepo) GetException(ctx context.Context, masterID uuid.UUID, date time.Time) (*domain.ScheduleException, error) {
	if s.exception == nil {
		return nil, scheduleRepo.ErrExceptionNotFound
	}
	return s.exception, nil
}

type stubCatalog struct {
	master  *catalogClient.Master
	service *catalogClient.Service
}

func (s *stubCatalog) GetMaster(ctx context.Context, masterID uuid.UUID) (*catalogClient.Master, error) {
	if s.master == nil {
		return nil, catalogClient.ErrMasterNotFound
	}
	return s.master, nil
}

func (s *stubCatalog) GetService(ctx context.Context, serviceID uuid.UUID) (*catalogClient.Service, error) {
	if s.service == nil {
		return nil, catalogClient.ErrServiceNotFound
	}
	return s.service, nil
}

func newTestUseCase(bookings *stubBookingRepo, schedules *stubScheduleRepo, catalog *stubCatalog, now time.Time) *UseCase {
	uc := NewUseCase(bookings, schedules, catalog, noopLogger{})
	uc.timeProvider = stubTime{now: now}
	return uc
}

func testRequest(date time.Time) *Request {
	return &Request{
		MasterID:  uuid.New(),
		ServiceID: uuid.New(),
		BranchID:  uuid.New(),
		Date:      date,
	}
}

func activeCatalog() *stubCatalog {
	return &stubCatalog{
		master:  &catalogClient.Master{ID: uuid.New(), IsActive: true},
		service: &catalogClient.Service{ID: uuid.New(), DurationMinutes: 30, IsActive: true},
	}
}

func TestExecute_HappyPath(t *testing.T) {
	date := time.Date(2026, 3, 16, 0, 0, 0, 0, time.UTC) // понедельник
	now := time.Date(2026, 3, 16, 8, 0, 0, 0, time.UTC)

	schedules := &stubScheduleRepo{
		weekday: &domain.WeekdaySchedule{
			DayOfWeek: 1,
			IsWorking: true,
			StartTime: "09:00",
			EndTime:   "10:30",
		},
	}

	uc := newTestUseCase(&stubBookingRepo{}, schedules, activeCatalog(), now)

	resp, err := uc.Execute(context.Background(), testRequest(date))
	require.NoError(t, err)

	// В 08:00 первый доступный слот — 09:00
	require.Len(t, resp.Slots, 5)
	assert.Equal(t, "09:00", resp.Slots[0].StartTime.String())
	assert.Equal(t, "10:00", resp.Slots[4].StartTime.String())
}

func TestExecute_DayOffExceptionGivesEmptySlots(t *testing.T) {
	date := time.Date(2026, 3, 16, 0, 0, 0, 0, time.UTC)
	now := date.Add(-24 * time.Hour)

	schedules := &stubScheduleRepo{
		weekday: &domain.WeekdaySchedule{
			DayOfWeek: 1,
			IsWorking: true,
			StartTime: "09:00",
			EndTime:   "18:00",
		},
		exception: &domain.ScheduleException{ExceptionType: domain.ExceptionDayOff},
	}

	uc := newTestUseCase(&stubBookingRepo{}, schedules, activeCatalog(), now)

	resp, err := uc.Execute(context.Background(), testRequest(date))
	require.NoError(t, err)
	assert.Empty(t, resp.Slots)
}

func TestExecute_NoScheduleGivesEmptySlots(t *testing.T) {
	date := time.Date(2026, 3, 16, 0, 0, 0, 0, time.UTC)
	now := date.Add(-24 * time.Hour)

	uc := newTestUseCase(&stubBookingRepo{}, &stubScheduleRepo{}, activeCatalog(), now)

	resp, err := uc.Execute(context.Background(), testRequest(date))
	require.NoError(t, err)
	assert.Empty(t, resp.Slots)
}

func TestExecute_InactiveMaster(t *testing.T) {
	date := time.Date(2026, 3, 16, 0, 0, 0, 0, time.UTC)
	now := date.Add(-24 * time.Hour)

	catalog := activeCatalog()
	catalog.master.IsActive = false

	uc := newTestUseCase(&stubBookingRepo{}, &stubScheduleRepo{}, catalog, now)

	_, err := uc.Execute(context.Background(), testRequest(date))
	assert.ErrorIs(t, err, ErrMasterNotFound)
}

func TestExecute_UnknownService(t *testing.T) {
	date := time.Date(2026, 3, 16, 0, 0, 0, 0, time.UTC)
	now := date.Add(-24 * time.Hour)

	catalog := activeCatalog()
	catalog.service = nil

	uc := newTestUseCase(&stubBookingRepo{}, &stubScheduleRepo{}, catalog, now)

	_, err := uc.Execute(context.Background(), testRequest(date))
	assert.ErrorIs(t, err, ErrServiceNotFound)
}

func TestExecute_PastDate(t *testing.T) {
	date := time.Date(2026, 3, 16, 0, 0, 0, 0, time.UTC)
	now := date.AddDate(0, 0, 2)

	uc := newTestUseCase(&stubBookingRepo{}, &stubScheduleRepo{}, activeCatalog(), now)

	_, err := uc.Execute(context.Background(), testRequest(date))
	assert.ErrorIs(t, err, ErrInvalidDate)
}

func TestExecute_MissingIDs(t *testing.T) {
	date := time.Date(2026, 3, 16, 0, 0, 0, 0, time.UTC)
	now := date.Add(-24 * time.Hour)

	uc := newTestUseCase(&stubBookingRepo{}, &stubScheduleRepo{}, activeCatalog(), now)

	req := testRequest(date)
	req.MasterID = uuid.Nil

	_, err := uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrInvalidInput)
}
