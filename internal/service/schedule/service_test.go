package schedule

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jazyl-tech/JZL-BookingService/internal/domain"
	scheduleRepo "github.com/jazyl-tech/JZL-BookingService/internal/infra/storage/schedule"
	catalogClient "github.com/jazyl-tech/JZL-BookingService/internal/integrations/catalogservice"
	"github.com/jazyl-tech/JZL-BookingService/internal/service/schedule/models"
)

type noopLogger struct{}

func (noopLogger) Info(format string, v ...interface{})  {}
func (noopLogger) Warn(format string, v ...interface{})  {}
func (noopLogger) Error(format string, v ...interface{}) {}

type stubTime struct{ now time.Time }

func (s stubTime) Now() time.Time { return s.now }

type stubRepo struct {
	week       []*domain.WeekdaySchedule
	exceptions []*domain.ScheduleException

	replacedDays []domain.WeekdaySchedule
	createErr    error
	deleteErr    error
	created      *domain.ScheduleException
	deletedID    uuid.UUID
}

func (s *stubRepo) ListWeek(ctx context.Context, masterID, branchID uuid.UUID) ([]*domain.WeekdaySchedule, error) {
	return s.week, nil
}

func (s *stubRepo) ReplaceWeek(ctx context.Context, masterID, branchID uuid.UUID, days []domain.WeekdaySchedule) error {
	s.replacedDays = days
	return nil
}

func (s *stubRepo) GetException(ctx context.Context, masterID uuid.UUID, date time.Time) (*domain.ScheduleException, error) {
	return nil, scheduleRepo.ErrExceptionNotFound
}

func (s *stubRepo) ListFutureExceptions(ctx context.Context, masterID uuid.UUID, from time.Time) ([]*domain.ScheduleException, error) {
	return s.exceptions, nil
}

func (s *stubRepo) CreateException(ctx context.Context, e *domain.ScheduleException) (*domain.ScheduleException, error) {
	if s.createErr != nil {
		return nil, s.createErr
	}
	created := *e
	created.ID = uuid.New()
	created.CreatedAt = time.Now()
	s.created = &created
	return &created, nil
}

func (s *stubRepo) DeleteException(ctx context.Context, id, masterID uuid.UUID) error {
	if s.deleteErr != nil {
		return s.deleteErr
	}
	s.deletedID = id
	return nil
}

type stubCatalog struct {
	masterMissing bool
	branchMissing bool
}

func (s *stubCatalog) GetMaster(ctx context.Context, masterID uuid.UUID) (*catalogClient.Master, error) {
	if s.masterMissing {
		return nil, catalogClient.ErrMasterNotFound
	}
	return &catalogClient.Master{ID: masterID, IsActive: true}, nil
}

func (s *stubCatalog) GetBranch(ctx context.Context, branchID uuid.UUID) (*catalogClient.Branch, error) {
	if s.branchMissing {
		return nil, catalogClient.ErrBranchNotFound
	}
	return &catalogClient.Branch{ID: branchID}, nil
}

type passthroughTx struct{}

func (passthroughTx) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

var testNow = time.Date(2026, 3, 16, 12, 0, 0, 0, time.UTC)

func newTestService(repo *stubRepo, catalog *stubCatalog) *Service {
	svc := NewService(repo, catalog, passthroughTx{}, noopLogger{})
	svc.timeProvider = stubTime{now: testNow}
	return svc
}

func staff() domain.Actor {
	return domain.Actor{UserID: uuid.New(), Role: domain.RoleSalon}
}

func client() domain.Actor {
	return domain.Actor{UserID: uuid.New(), Role: domain.RoleClient}
}

func weekInput() []models.DayScheduleInput {
	days := make([]models.DayScheduleInput, 0, 7)
	for d := 1; d <= 5; d++ {
		days = append(days, models.DayScheduleInput{
			DayOfWeek: d,
			IsWorking: true,
			StartTime: "09:00",
			EndTime:   "18:00",
			Breaks:    []domain.BreakInterval{{BreakStart: "13:00", BreakEnd: "14:00"}},
		})
	}
	days = append(days,
		models.DayScheduleInput{DayOfWeek: 6, IsWorking: false},
		models.DayScheduleInput{DayOfWeek: 7, IsWorking: false},
	)
	return days
}

func TestUpdateSchedule_ReplacesWeek(t *testing.T) {
	repo := &stubRepo{}
	svc := newTestService(repo, &stubCatalog{})

	_, err := svc.UpdateSchedule(context.Background(), &models.UpdateScheduleRequest{
		Actor:    staff(),
		MasterID: uuid.New(),
		BranchID: uuid.New(),
		Days:     weekInput(),
	})
	require.NoError(t, err)

	require.Len(t, repo.replacedDays, 7)
	assert.True(t, repo.replacedDays[0].IsWorking)
	assert.False(t, repo.replacedDays[6].IsWorking)
}

func TestUpdateSchedule_ClientDenied(t *testing.T) {
	svc := newTestService(&stubRepo{}, &stubCatalog{})

	_, err := svc.UpdateSchedule(context.Background(), &models.UpdateScheduleRequest{
		Actor:    client(),
		MasterID: uuid.New(),
		BranchID: uuid.New(),
		Days:     weekInput(),
	})
	assert.ErrorIs(t, err, ErrAccessDenied)
}

func TestUpdateSchedule_Validation(t *testing.T) {
	tests := []struct {
		name string
		days []models.DayScheduleInput
	}{
		{name: "empty week", days: nil},
		{name: "day out of range", days: []models.DayScheduleInput{
			{DayOfWeek: 8, IsWorking: false},
		}},
		{name: "duplicate day", days: []models.DayScheduleInput{
			{DayOfWeek: 1, IsWorking: false},
			{DayOfWeek: 1, IsWorking: false},
		}},
		{name: "working day without times", days: []models.DayScheduleInput{
			{DayOfWeek: 1, IsWorking: true},
		}},
		{name: "inverted window", days: []models.DayScheduleInput{
			{DayOfWeek: 1, IsWorking: true, StartTime: "18:00", EndTime: "09:00"},
		}},
		{name: "break outside window", days: []models.DayScheduleInput{
			{DayOfWeek: 1, IsWorking: true, StartTime: "09:00", EndTime: "18:00",
				Breaks: []domain.BreakInterval{{BreakStart: "19:00", BreakEnd: "20:00"}}},
		}},
	}

	svc := newTestService(&stubRepo{}, &stubCatalog{})

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.UpdateSchedule(context.Background(), &models.UpdateScheduleRequest{
				Actor:    staff(),
				MasterID: uuid.New(),
				BranchID: uuid.New(),
				Days:     tt.days,
			})
			assert.ErrorIs(t, err, ErrInvalidInput)
		})
	}
}

func TestUpdateSchedule_UnknownMaster(t *testing.T) {
	svc := newTestService(&stubRepo{}, &stubCatalog{masterMissing: true})

	_, err := svc.UpdateSchedule(context.Background(), &models.UpdateScheduleRequest{
		Actor:    staff(),
		MasterID: uuid.New(),
		BranchID: uuid.New(),
		Days:     weekInput(),
	})
	assert.ErrorIs(t, err, ErrMasterNotFound)
}

func TestCreateException_FutureDayOff(t *testing.T) {
	repo := &stubRepo{}
	svc := newTestService(repo, &stubCatalog{})

	resp, err := svc.CreateException(context.Background(), &models.CreateExceptionRequest{
		Actor:         staff(),
		MasterID:      uuid.New(),
		ExceptionDate: testNow.AddDate(0, 0, 3),
		ExceptionType: "day_off",
	})
	require.NoError(t, err)

	assert.Equal(t, "day_off", resp.ExceptionType)
	require.NotNil(t, repo.created)
	assert.Equal(t, domain.ExceptionDayOff, repo.created.ExceptionType)
}

func TestCreateException_PastOrTodayRejected(t *testing.T) {
	svc := newTestService(&stubRepo{}, &stubCatalog{})

	for _, date := range []time.Time{testNow, testNow.AddDate(0, 0, -1)} {
		_, err := svc.CreateException(context.Background(), &models.CreateExceptionRequest{
			Actor:         staff(),
			MasterID:      uuid.New(),
			ExceptionDate: date,
			ExceptionType: "day_off",
		})
		assert.ErrorIs(t, err, ErrExceptionInPast)
	}
}

func TestCreateException_CustomHoursRequireWindow(t *testing.T) {
	svc := newTestService(&stubRepo{}, &stubCatalog{})

	req := &models.CreateExceptionRequest{
		Actor:         staff(),
		MasterID:      uuid.New(),
		ExceptionDate: testNow.AddDate(0, 0, 3),
		ExceptionType: "custom_hours",
	}

	_, err := svc.CreateException(context.Background(), req)
	assert.ErrorIs(t, err, ErrInvalidInput)

	req.CustomStartTime = "11:00"
	req.CustomEndTime = "15:00"

	resp, err := svc.CreateException(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, "11:00", resp.CustomStartTime)
	assert.Equal(t, "15:00", resp.CustomEndTime)
}

func TestCreateException_UnknownType(t *testing.T) {
	svc := newTestService(&stubRepo{}, &stubCatalog{})

	_, err := svc.CreateException(context.Background(), &models.CreateExceptionRequest{
		Actor:         staff(),
		MasterID:      uuid.New(),
		ExceptionDate: testNow.AddDate(0, 0, 3),
		ExceptionType: "vacation",
	})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestCreateException_Duplicate(t *testing.T) {
	repo := &stubRepo{createErr: scheduleRepo.ErrDuplicateException}
	svc := newTestService(repo, &stubCatalog{})

	_, err := svc.CreateException(context.Background(), &models.CreateExceptionRequest{
		Actor:         staff(),
		MasterID:      uuid.New(),
		ExceptionDate: testNow.AddDate(0, 0, 3),
		ExceptionType: "fully_booked",
	})
	assert.ErrorIs(t, err, ErrExceptionAlreadyExists)
}

func TestDeleteException(t *testing.T) {
	repo := &stubRepo{}
	svc := newTestService(repo, &stubCatalog{})

	id := uuid.New()
	require.NoError(t, svc.DeleteException(context.Background(), staff(), id, uuid.New()))
	assert.Equal(t, id, repo.deletedID)

	assert.ErrorIs(t, svc.DeleteException(context.Background(), client(), id, uuid.New()), ErrAccessDenied)

	repo.deleteErr = scheduleRepo.ErrExceptionNotFound
	assert.ErrorIs(t, svc.DeleteException(context.Background(), staff(), id, uuid.New()), ErrExceptionNotFound)
}
