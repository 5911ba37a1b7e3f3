package create_booking

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jazyl-tech/JZL-BookingService/internal/domain"
	bookingRepo "github.com/jazyl-tech/JZL-BookingService/internal/infra/storage/booking"
	catalogClient "github.com/jazyl-tech/JZL-BookingService/internal/integrations/catalogservice"
	"github.com/jazyl-tech/JZL-BookingService/internal/usecase/get_available_slots"
	"github.com/jazyl-tech/JZL-BookingService/pkg/types"
)

type noopLogger struct{}

func (noopLogger) Info(format string, v ...interface{})  {}
func (noopLogger) Warn(format string, v ...interface{})  {}
func (noopLogger) Error(format string, v ...interface{}) {}

type stubTime struct{ now time.Time }

func (s stubTime) Now() time.Time { return s.now }

type stubBookingRepo struct {
	created   *domain.Booking
	createErr error
}

func (s *stubBookingRepo) Create(ctx context.Context, b *domain.Booking) (*domain.Booking, error) {
	if s.createErr != nil {
		return nil, s.createErr
	}
	created := *b
	created.ID = uuid.New()
	created.CreatedAt = time.Now()
	s.created = &created
	return &created, nil
}

type stubSlots struct {
	slots []domain.Slot
}

func (s *stubSlots) Execute(ctx context.Context, req *get_available_slots.Request) (*get_available_slots.Response, error) {
	return &get_available_slots.Response{
		Date:      req.Date,
		MasterID:  req.MasterID,
		ServiceID: req.ServiceID,
		BranchID:  req.BranchID,
		Slots:     s.slots,
	}, nil
}

type stubCatalog struct {
	master   *catalogClient.Master
	service  *catalogClient.Service
	override *float64
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

func (s *stubCatalog) GetPriceOverride(ctx context.Context, masterID, serviceID uuid.UUID) (*float64, error) {
	return s.override, nil
}

// passthroughTx вызывает функцию без настоящей транзакции
type passthroughTx struct{}

func (passthroughTx) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

func newTestUseCase(repo *stubBookingRepo, slots *stubSlots, catalog *stubCatalog, now time.Time) *UseCase {
	uc := NewUseCase(repo, slots, catalog, passthroughTx{}, noopLogger{})
	uc.timeProvider = stubTime{now: now}
	return uc
}

func testCatalog() *stubCatalog {
	salonID := uuid.New()
	return &stubCatalog{
		master:  &catalogClient.Master{ID: uuid.New(), SalonID: salonID, IsActive: true},
		service: &catalogClient.Service{ID: uuid.New(), DurationMinutes: 60, BasePrice: 1500, IsActive: true},
	}
}

func testRequest() *Request {
	return &Request{
		ClientID:  uuid.New(),
		MasterID:  uuid.New(),
		ServiceID: uuid.New(),
		BranchID:  uuid.New(),
		Date:      time.Date(2026, 3, 16, 0, 0, 0, 0, time.UTC),
		StartTime: "10:00",
	}
}

func availableAt(starts ...string) *stubSlots {
	slots := make([]domain.Slot, 0, len(starts))
	for _, s := range starts {
		slots = append(slots, domain.Slot{StartTime: types.TimeString(s)})
	}
	return &stubSlots{slots: slots}
}

func TestExecute_CreatesPendingBooking(t *testing.T) {
	now := time.Date(2026, 3, 15, 12, 0, 0, 0, time.UTC)
	repo := &stubBookingRepo{}
	catalog := testCatalog()

	uc := newTestUseCase(repo, availableAt("10:00", "10:15"), catalog, now)

	resp, err := uc.Execute(context.Background(), testRequest())
	require.NoError(t, err)

	assert.Equal(t, "pending", resp.Status)
	assert.Equal(t, "10:00", resp.StartTime.String())
	assert.Equal(t, "11:00", resp.EndTime.String())
	assert.Equal(t, 1500.0, resp.FinalPrice)
	assert.Equal(t, catalog.master.SalonID, resp.SalonID)
	assert.Equal(t, string(domain.ViaWebsite), resp.CreatedVia)

	require.NotNil(t, repo.created)
	assert.Equal(t, domain.StatusPending, repo.created.Status)
}

func TestExecute_PriceOverrideWins(t *testing.T) {
	now := time.Date(2026, 3, 15, 12, 0, 0, 0, time.UTC)
	catalog := testCatalog()
	override := 1200.0
	catalog.override = &override

	uc := newTestUseCase(&stubBookingRepo{}, availableAt("10:00"), catalog, now)

	resp, err := uc.Execute(context.Background(), testRequest())
	require.NoError(t, err)
	assert.Equal(t, 1200.0, resp.FinalPrice)
}

func TestExecute_SlotNotInAvailableSet(t *testing.T) {
	now := time.Date(2026, 3, 15, 12, 0, 0, 0, time.UTC)

	uc := newTestUseCase(&stubBookingRepo{}, availableAt("11:00", "11:15"), testCatalog(), now)

	_, err := uc.Execute(context.Background(), testRequest())
	assert.ErrorIs(t, err, ErrSlotNotAvailable)
}

func TestExecute_ConcurrentInsertMapsToSlotNotAvailable(t *testing.T) {
	now := time.Date(2026, 3, 15, 12, 0, 0, 0, time.UTC)
	repo := &stubBookingRepo{createErr: bookingRepo.ErrSlotTaken}

	uc := newTestUseCase(repo, availableAt("10:00"), testCatalog(), now)

	_, err := uc.Execute(context.Background(), testRequest())
	assert.ErrorIs(t, err, ErrSlotNotAvailable)
}

func TestExecute_ServiceDoesNotFitDay(t *testing.T) {
	now := time.Date(2026, 3, 15, 12, 0, 0, 0, time.UTC)
	catalog := testCatalog()
	catalog.service.DurationMinutes = 120

	req := testRequest()
	req.StartTime = "23:00"

	uc := newTestUseCase(&stubBookingRepo{}, availableAt("23:00"), catalog, now)

	_, err := uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrSlotNotAvailable)
}

func TestExecute_PastDate(t *testing.T) {
	now := time.Date(2026, 3, 20, 12, 0, 0, 0, time.UTC)

	uc := newTestUseCase(&stubBookingRepo{}, availableAt("10:00"), testCatalog(), now)

	_, err := uc.Execute(context.Background(), testRequest())
	assert.ErrorIs(t, err, ErrInvalidDate)
}

func TestExecute_UnknownChannel(t *testing.T) {
	now := time.Date(2026, 3, 15, 12, 0, 0, 0, time.UTC)

	req := testRequest()
	req.CreatedVia = "carrier_pigeon"

	uc := newTestUseCase(&stubBookingRepo{}, availableAt("10:00"), testCatalog(), now)

	_, err := uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestExecute_InactiveMaster(t *testing.T) {
	now := time.Date(2026, 3, 15, 12, 0, 0, 0, time.UTC)
	catalog := testCatalog()
	catalog.master.IsActive = false

	uc := newTestUseCase(&stubBookingRepo{}, availableAt("10:00"), catalog, now)

	_, err := uc.Execute(context.Background(), testRequest())
	assert.ErrorIs(t, err, ErrMasterNotFound)
}
