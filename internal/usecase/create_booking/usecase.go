package create_booking

import (
	"context"
	"errors"
	"fmt"

	"github.com/jazyl-tech/JZL-BookingService/internal/domain"
	bookingRepo "github.com/jazyl-tech/JZL-BookingService/internal/infra/storage/booking"
	catalogClient "github.com/jazyl-tech/JZL-BookingService/internal/integrations/catalogservice"
	"github.com/jazyl-tech/JZL-BookingService/internal/usecase/get_available_slots"
	"github.com/jazyl-tech/JZL-BookingService/pkg/types"
)

// UseCase use case для создания бронирования
type UseCase struct {
	bookingRepo   BookingRepository
	slotsUseCase  SlotsUseCase
	catalogClient CatalogServiceClient
	txManager     TransactionManager
	timeProvider  TimeProvider
	logger        Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	bookingRepo BookingRepository,
	slotsUseCase SlotsUseCase,
	catalogClient CatalogServiceClient,
	txManager TransactionManager,
	logger Logger,
) *UseCase {
	return &UseCase{
		bookingRepo:   bookingRepo,
		slotsUseCase:  slotsUseCase,
		catalogClient: catalogClient,
		txManager:     txManager,
		timeProvider:  &RealTimeProvider{},
		logger:        logger,
	}
}

// Execute выполняет use case создания бронирования.
// Проверка доступности слота и insert выполняются в одной сериализуемой
// транзакции, чтобы два клиента не могли занять одно время мастера.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CreateBooking: client=%s, master=%s, service=%s, date=%s, time=%s",
		req.ClientID, req.MasterID, req.ServiceID, req.Date.Format(domain.DateFormat), req.StartTime)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CreateBooking: validation failed: %v", err)
		return nil, err
	}

	now := uc.timeProvider.Now()

	if err := validateDate(req.Date, now); err != nil {
		uc.logger.Warn("CreateBooking: date validation failed: %v", err)
		return nil, err
	}

	// 2. Получаем мастера: нужен salon_id для денормализации
	master, err := uc.catalogClient.GetMaster(ctx, req.MasterID)
	if err != nil {
		if errors.Is(err, catalogClient.ErrMasterNotFound) {
			uc.logger.Warn("CreateBooking: master id=%s not found", req.MasterID)
			return nil, ErrMasterNotFound
		}
		uc.logger.Error("CreateBooking: failed to get master id=%s: %v", req.MasterID, err)
		return nil, fmt.Errorf("%w: failed to get master: %v", ErrInternal, err)
	}
	if !master.IsActive {
		uc.logger.Warn("CreateBooking: master id=%s is inactive", req.MasterID)
		return nil, ErrMasterNotFound
	}

	// 3. Получаем услугу: длительность и базовая цена
	service, err := uc.catalogClient.GetService(ctx, req.ServiceID)
	if err != nil {
		if errors.Is(err, catalogClient.ErrServiceNotFound) {
			uc.logger.Warn("CreateBooking: service id=%s not found", req.ServiceID)
			return nil, ErrServiceNotFound
		}
		uc.logger.Error("CreateBooking: failed to get service id=%s: %v", req.ServiceID, err)
		return nil, fmt.Errorf("%w: failed to get service: %v", ErrInternal, err)
	}
	if !service.IsActive {
		uc.logger.Warn("CreateBooking: service id=%s is inactive", req.ServiceID)
		return nil, ErrServiceNotFound
	}

	// 4. Фиксируем цену: индивидуальная цена мастера, если задана, иначе базовая
	finalPrice, err := uc.resolvePrice(ctx, req, service)
	if err != nil {
		return nil, err
	}

	endTime, err := req.StartTime.AddMinutes(service.DurationMinutes)
	if err != nil {
		uc.logger.Warn("CreateBooking: service does not fit into the day: %v", err)
		return nil, ErrSlotNotAvailable
	}

	createdVia := domain.CreatedVia(req.CreatedVia)
	if createdVia == "" {
		createdVia = domain.ViaWebsite
	}

	var result *domain.Booking

	// 5. Доступность и insert в одной сериализуемой транзакции
	err = uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// 5.1. Пересчитываем доступные слоты теми же входными данными,
		// что и ручка просмотра. Бронирования читаются FOR UPDATE.
		slotsResp, err := uc.slotsUseCase.Execute(txCtx, &get_available_slots.Request{
			MasterID:  req.MasterID,
			ServiceID: req.ServiceID,
			BranchID:  req.BranchID,
			Date:      req.Date,
		})
		if err != nil {
			uc.logger.Error("CreateBooking: failed to compute available slots: %v", err)
			return fmt.Errorf("%w: failed to compute available slots: %v", ErrInternal, err)
		}

		if !containsSlot(slotsResp.Slots, req.StartTime) {
			uc.logger.Warn("CreateBooking: slot %s %s is not available for master=%s",
				req.Date.Format(domain.DateFormat), req.StartTime, req.MasterID)
			return ErrSlotNotAvailable
		}

		// 5.2. Создаем бронирование в статусе pending
		booking := &domain.Booking{
			ClientID:        req.ClientID,
			MasterID:        req.MasterID,
			ServiceID:       req.ServiceID,
			BranchID:        req.BranchID,
			SalonID:         master.SalonID,
			BookingDate:     req.Date,
			StartTime:       req.StartTime,
			EndTime:         endTime,
			FinalPrice:      finalPrice,
			Status:          domain.StatusPending,
			CreatedVia:      createdVia,
			NotesFromClient: req.NotesFromClient,
		}

		created, err := uc.bookingRepo.Create(txCtx, booking)
		if err != nil {
			// Exclusion-констрейнт сработал на параллельной вставке
			if errors.Is(err, bookingRepo.ErrSlotTaken) {
				uc.logger.Warn("CreateBooking: slot taken concurrently for master=%s", req.MasterID)
				return ErrSlotNotAvailable
			}
			uc.logger.Error("CreateBooking: failed to create booking: %v", err)
			return fmt.Errorf("%w: failed to create booking: %v", ErrInternal, err)
		}

		result = created
		return nil
	})

	if err != nil {
		return nil, err
	}

	uc.logger.Info("CreateBooking: successfully created booking id=%s", result.ID)

	return &Response{
		ID:         result.ID,
		ClientID:   result.ClientID,
		MasterID:   result.MasterID,
		ServiceID:  result.ServiceID,
		BranchID:   result.BranchID,
		SalonID:    result.SalonID,
		Date:       result.BookingDate,
		StartTime:  result.StartTime,
		EndTime:    result.EndTime,
		FinalPrice: result.FinalPrice,
		Status:     string(result.Status),
		CreatedVia: string(result.CreatedVia),
		CreatedAt:  result.CreatedAt,
	}, nil
}

// resolvePrice возвращает цену услуги у конкретного мастера
func (uc *UseCase) resolvePrice(ctx context.Context, req *Request, service *catalogClient.Service) (float64, error) {
	override, err := uc.catalogClient.GetPriceOverride(ctx, req.MasterID, req.ServiceID)
	if err != nil {
		uc.logger.Error("CreateBooking: failed to get price override: %v", err)
		return 0, fmt.Errorf("%w: failed to get price override: %v", ErrInternal, err)
	}
	if override != nil {
		return *override, nil
	}
	return service.BasePrice, nil
}

func containsSlot(slots []domain.Slot, start types.TimeString) bool {
	for _, s := range slots {
		if s.StartTime == start {
			return true
		}
	}
	return false
}
