package get_available_slots

import (
	"context"
	"errors"
	"fmt"

	"github.com/jazyl-tech/JZL-BookingService/internal/domain"
	scheduleRepo "github.com/jazyl-tech/JZL-BookingService/internal/infra/storage/schedule"
	catalogClient "github.com/jazyl-tech/JZL-BookingService/internal/integrations/catalogservice"
)

// UseCase use case для получения доступных слотов мастера
type UseCase struct {
	bookingRepo   BookingRepository
	scheduleRepo  ScheduleRepository
	catalogClient CatalogServiceClient
	timeProvider  TimeProvider
	logger        Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	bookingRepo BookingRepository,
	scheduleRepo ScheduleRepository,
	catalogClient CatalogServiceClient,
	logger Logger,
) *UseCase {
	return &UseCase{
		bookingRepo:   bookingRepo,
		scheduleRepo:  scheduleRepo,
		catalogClient: catalogClient,
		timeProvider:  &RealTimeProvider{},
		logger:        logger,
	}
}

// Execute выполняет use case получения доступных слотов
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("GetAvailableSlots: master=%s, service=%s, branch=%s, date=%s",
		req.MasterID, req.ServiceID, req.BranchID, req.Date.Format(domain.DateFormat))

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("GetAvailableSlots: validation failed: %v", err)
		return nil, err
	}

	now := uc.timeProvider.Now()

	if err := validateDate(req.Date, now); err != nil {
		uc.logger.Warn("GetAvailableSlots: date validation failed: %v", err)
		return nil, err
	}

	// 2. Получаем мастера из каталога
	master, err := uc.catalogClient.GetMaster(ctx, req.MasterID)
	if err != nil {
		if errors.Is(err, catalogClient.ErrMasterNotFound) {
			uc.logger.Warn("GetAvailableSlots: master id=%s not found", req.MasterID)
			return nil, ErrMasterNotFound
		}
		uc.logger.Error("GetAvailableSlots: failed to get master id=%s: %v", req.MasterID, err)
		return nil, fmt.Errorf("%w: failed to get master: %v", ErrInternal, err)
	}
	if !master.IsActive {
		uc.logger.Warn("GetAvailableSlots: master id=%s is inactive", req.MasterID)
		return nil, ErrMasterNotFound
	}

	// 3. Получаем услугу из каталога
	service, err := uc.catalogClient.GetService(ctx, req.ServiceID)
	if err != nil {
		if errors.Is(err, catalogClient.ErrServiceNotFound) {
			uc.logger.Warn("GetAvailableSlots: service id=%s not found", req.ServiceID)
			return nil, ErrServiceNotFound
		}
		uc.logger.Error("GetAvailableSlots: failed to get service id=%s: %v", req.ServiceID, err)
		return nil, fmt.Errorf("%w: failed to get service: %v", ErrInternal, err)
	}
	if !service.IsActive {
		uc.logger.Warn("GetAvailableSlots: service id=%s is inactive", req.ServiceID)
		return nil, ErrServiceNotFound
	}

	// 4. Разрешаем рабочее окно дня: исключение имеет приоритет над
	// регулярным расписанием
	window, open, err := uc.resolveWindow(ctx, req)
	if err != nil {
		return nil, err
	}
	if !open {
		uc.logger.Info("GetAvailableSlots: master id=%s is not working on %s",
			req.MasterID, req.Date.Format(domain.DateFormat))
		return uc.emptyResponse(req), nil
	}

	// 5. Получаем активные бронирования мастера на дату
	bookings, err := uc.bookingRepo.GetByMasterAndDate(ctx, req.MasterID, req.Date, domain.ActiveStatuses)
	if err != nil {
		uc.logger.Error("GetAvailableSlots: failed to get bookings: %v", err)
		return nil, fmt.Errorf("%w: failed to get bookings: %v", ErrInternal, err)
	}

	// 6. Генерируем слоты
	slots, err := generateSlots(window, service.DurationMinutes, req.Date, now, bookings)
	if err != nil {
		uc.logger.Error("GetAvailableSlots: failed to generate slots: %v", err)
		return nil, fmt.Errorf("%w: failed to generate slots: %v", ErrInternal, err)
	}

	uc.logger.Info("GetAvailableSlots: generated %d slots for master=%s, service=%s, date=%s",
		len(slots), req.MasterID, req.ServiceID, req.Date.Format(domain.DateFormat))

	return &Response{
		Date:      req.Date,
		MasterID:  req.MasterID,
		ServiceID: req.ServiceID,
		BranchID:  req.BranchID,
		Slots:     slots,
	}, nil
}

// resolveWindow получает эффективное рабочее окно мастера на дату
func (uc *UseCase) resolveWindow(ctx context.Context, req *Request) (domain.EffectiveWindow, bool, error) {
	exception, err := uc.scheduleRepo.GetException(ctx, req.MasterID, req.Date)
	if err != nil && !errors.Is(err, scheduleRepo.ErrExceptionNotFound) {
		uc.logger.Error("GetAvailableSlots: failed to get exception: %v", err)
		return domain.EffectiveWindow{}, false, fmt.Errorf("%w: failed to get schedule exception: %v", ErrInternal, err)
	}
	if errors.Is(err, scheduleRepo.ErrExceptionNotFound) {
		exception = nil
	}

	weekday, err := uc.scheduleRepo.GetWeekday(ctx, req.MasterID, req.BranchID, domain.ISOWeekday(req.Date))
	if err != nil && !errors.Is(err, scheduleRepo.ErrScheduleNotFound) {
		uc.logger.Error("GetAvailableSlots: failed to get weekday schedule: %v", err)
		return domain.EffectiveWindow{}, false, fmt.Errorf("%w: failed to get weekday schedule: %v", ErrInternal, err)
	}
	if errors.Is(err, scheduleRepo.ErrScheduleNotFound) {
		weekday = nil
	}

	window, open := domain.ResolveDay(exception, weekday)
	return window, open, nil
}

func (uc *UseCase) emptyResponse(req *Request) *Response {
	return &Response{
		Date:      req.Date,
		MasterID:  req.MasterID,
		ServiceID: req.ServiceID,
		BranchID:  req.BranchID,
		Slots:     []domain.Slot{},
	}
}
