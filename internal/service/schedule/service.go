package schedule

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/jazyl-tech/JZL-BookingService/internal/domain"
	scheduleRepo "github.com/jazyl-tech/JZL-BookingService/internal/infra/storage/schedule"
	catalogClient "github.com/jazyl-tech/JZL-BookingService/internal/integrations/catalogservice"
	"github.com/jazyl-tech/JZL-BookingService/internal/service/schedule/models"
	"github.com/jazyl-tech/JZL-BookingService/pkg/types"
)

// Service сервис для управления расписаниями мастеров
type Service struct {
	scheduleRepo  ScheduleRepository
	catalogClient CatalogServiceClient
	txManager     TransactionManager
	timeProvider  TimeProvider
	logger        Logger
}

// NewService создает новый экземпляр сервиса расписаний
func NewService(
	scheduleRepo ScheduleRepository,
	catalogClient CatalogServiceClient,
	txManager TransactionManager,
	logger Logger,
) *Service {
	return &Service{
		scheduleRepo:  scheduleRepo,
		catalogClient: catalogClient,
		txManager:     txManager,
		timeProvider:  &RealTimeProvider{},
		logger:        logger,
	}
}

// GetSchedule возвращает недельное расписание мастера в филиале вместе с
// будущими исключениями. Публичная операция: клиент смотрит расписание
// перед выбором слота.
func (s *Service) GetSchedule(ctx context.Context, masterID, branchID uuid.UUID) (*models.ScheduleResponse, error) {
	s.logger.Info("GetSchedule: fetching schedule for master=%s, branch=%s", masterID, branchID)

	days, err := s.scheduleRepo.ListWeek(ctx, masterID, branchID)
	if err != nil {
		s.logger.Error("GetSchedule: repository error for master=%s: %v", masterID, err)
		return nil, fmt.Errorf("%w: GetSchedule - repository error: %v", ErrInternal, err)
	}

	today := s.today()
	exceptions, err := s.scheduleRepo.ListFutureExceptions(ctx, masterID, today)
	if err != nil {
		s.logger.Error("GetSchedule: failed to list exceptions for master=%s: %v", masterID, err)
		return nil, fmt.Errorf("%w: GetSchedule - failed to list exceptions: %v", ErrInternal, err)
	}

	resp := &models.ScheduleResponse{
		MasterID:   masterID,
		BranchID:   branchID,
		Days:       make([]models.DayScheduleResponse, 0, len(days)),
		Exceptions: make([]models.ExceptionResponse, 0, len(exceptions)),
	}
	for _, day := range days {
		resp.Days = append(resp.Days, models.FromDomainDay(day))
	}
	for _, e := range exceptions {
		resp.Exceptions = append(resp.Exceptions, models.FromDomainException(e))
	}

	s.logger.Info("GetSchedule: fetched %d days and %d exceptions for master=%s",
		len(resp.Days), len(resp.Exceptions), masterID)
	return resp, nil
}

// UpdateSchedule целиком заменяет недельное расписание мастера в филиале.
// Замена выполняется в одной транзакции. Доступно только сотрудникам салона.
func (s *Service) UpdateSchedule(ctx context.Context, req *models.UpdateScheduleRequest) (*models.ScheduleResponse, error) {
	s.logger.Info("UpdateSchedule: replacing schedule for master=%s, branch=%s by actor=%s",
		req.MasterID, req.BranchID, req.Actor.UserID)

	if !req.Actor.IsStaff() {
		s.logger.Warn("UpdateSchedule: access denied for actor=%s role=%s", req.Actor.UserID, req.Actor.Role)
		return nil, ErrAccessDenied
	}

	days, err := s.validateDays(req.Days)
	if err != nil {
		s.logger.Warn("UpdateSchedule: validation failed for master=%s: %v", req.MasterID, err)
		return nil, err
	}

	if err := s.checkMasterAndBranch(ctx, req.MasterID, req.BranchID); err != nil {
		return nil, err
	}

	err = s.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		return s.scheduleRepo.ReplaceWeek(txCtx, req.MasterID, req.BranchID, days)
	})
	if err != nil {
		s.logger.Error("UpdateSchedule: failed to replace week for master=%s: %v", req.MasterID, err)
		return nil, fmt.Errorf("%w: UpdateSchedule - failed to replace week: %v", ErrInternal, err)
	}

	s.logger.Info("UpdateSchedule: successfully replaced schedule for master=%s, branch=%s",
		req.MasterID, req.BranchID)
	return s.GetSchedule(ctx, req.MasterID, req.BranchID)
}

// CreateException создает исключение из расписания на будущую дату.
// Повторное исключение на ту же дату отклоняется. Доступно только сотрудникам.
func (s *Service) CreateException(ctx context.Context, req *models.CreateExceptionRequest) (*models.ExceptionResponse, error) {
	s.logger.Info("CreateException: creating %s exception for master=%s on %s by actor=%s",
		req.ExceptionType, req.MasterID, req.ExceptionDate.Format(domain.DateFormat), req.Actor.UserID)

	if !req.Actor.IsStaff() {
		s.logger.Warn("CreateException: access denied for actor=%s role=%s", req.Actor.UserID, req.Actor.Role)
		return nil, ErrAccessDenied
	}

	exception, err := s.buildException(req)
	if err != nil {
		s.logger.Warn("CreateException: validation failed for master=%s: %v", req.MasterID, err)
		return nil, err
	}

	created, err := s.scheduleRepo.CreateException(ctx, exception)
	if err != nil {
		if errors.Is(err, scheduleRepo.ErrDuplicateException) {
			s.logger.Warn("CreateException: exception already exists for master=%s on %s",
				req.MasterID, req.ExceptionDate.Format(domain.DateFormat))
			return nil, ErrExceptionAlreadyExists
		}
		s.logger.Error("CreateException: repository error for master=%s: %v", req.MasterID, err)
		return nil, fmt.Errorf("%w: CreateException - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("CreateException: successfully created exception id=%s for master=%s",
		created.ID, req.MasterID)
	resp := models.FromDomainException(created)
	return &resp, nil
}

// DeleteException удаляет исключение мастера. Доступно только сотрудникам.
func (s *Service) DeleteException(ctx context.Context, actor domain.Actor, id, masterID uuid.UUID) error {
	s.logger.Info("DeleteException: deleting exception id=%s for master=%s by actor=%s",
		id, masterID, actor.UserID)

	if !actor.IsStaff() {
		s.logger.Warn("DeleteException: access denied for actor=%s role=%s", actor.UserID, actor.Role)
		return ErrAccessDenied
	}

	err := s.scheduleRepo.DeleteException(ctx, id, masterID)
	if err != nil {
		if errors.Is(err, scheduleRepo.ErrExceptionNotFound) {
			s.logger.Warn("DeleteException: exception id=%s not found for master=%s", id, masterID)
			return ErrExceptionNotFound
		}
		s.logger.Error("DeleteException: repository error for exception id=%s: %v", id, err)
		return fmt.Errorf("%w: DeleteException - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("DeleteException: successfully deleted exception id=%s", id)
	return nil
}

// Вспомогательные методы

// validateDays проверяет и конвертирует строки недельного расписания
func (s *Service) validateDays(inputs []models.DayScheduleInput) ([]domain.WeekdaySchedule, error) {
	if len(inputs) == 0 {
		return nil, fmt.Errorf("%w: at least one day is required", ErrInvalidInput)
	}

	seen := make(map[int]bool, len(inputs))
	days := make([]domain.WeekdaySchedule, 0, len(inputs))

	for _, input := range inputs {
		if input.DayOfWeek < 1 || input.DayOfWeek > 7 {
			return nil, fmt.Errorf("%w: dayOfWeek must be 1..7, got %d", ErrInvalidInput, input.DayOfWeek)
		}
		if seen[input.DayOfWeek] {
			return nil, fmt.Errorf("%w: duplicate dayOfWeek %d", ErrInvalidInput, input.DayOfWeek)
		}
		seen[input.DayOfWeek] = true

		day, err := input.ToDomainDay()
		if err != nil {
			return nil, fmt.Errorf("%w: day %d: %v", ErrInvalidInput, input.DayOfWeek, err)
		}

		if day.IsWorking {
			if err := domain.ValidateWindow(day.StartTime, day.EndTime, day.Breaks); err != nil {
				return nil, fmt.Errorf("%w: day %d: %v", ErrInvalidInput, input.DayOfWeek, err)
			}
		}

		days = append(days, day)
	}

	return days, nil
}

// buildException валидирует запрос и собирает domain модель исключения
func (s *Service) buildException(req *models.CreateExceptionRequest) (*domain.ScheduleException, error) {
	if req.MasterID == uuid.Nil {
		return nil, fmt.Errorf("%w: masterID is required", ErrInvalidInput)
	}
	if req.ExceptionDate.IsZero() {
		return nil, fmt.Errorf("%w: exceptionDate is required", ErrInvalidInput)
	}

	exceptionType, err := models.ToDomainExceptionType(req.ExceptionType)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	dateOnly := time.Date(req.ExceptionDate.Year(), req.ExceptionDate.Month(), req.ExceptionDate.Day(),
		0, 0, 0, 0, req.ExceptionDate.Location())
	if !dateOnly.After(s.today()) {
		return nil, ErrExceptionInPast
	}

	exception := &domain.ScheduleException{
		MasterID:      req.MasterID,
		ExceptionDate: dateOnly,
		ExceptionType: exceptionType,
		Reason:        req.Reason,
	}

	if exceptionType == domain.ExceptionCustomHours {
		start, err := types.NewTimeStringFromString(req.CustomStartTime)
		if err != nil {
			return nil, fmt.Errorf("%w: invalid customStartTime: %v", ErrInvalidInput, err)
		}
		end, err := types.NewTimeStringFromString(req.CustomEndTime)
		if err != nil {
			return nil, fmt.Errorf("%w: invalid customEndTime: %v", ErrInvalidInput, err)
		}
		if err := domain.ValidateWindow(start, end, nil); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
		}
		exception.CustomStartTime = start
		exception.CustomEndTime = end
	}

	return exception, nil
}

// checkMasterAndBranch проверяет существование мастера и филиала в каталоге
func (s *Service) checkMasterAndBranch(ctx context.Context, masterID, branchID uuid.UUID) error {
	if _, err := s.catalogClient.GetMaster(ctx, masterID); err != nil {
		if errors.Is(err, catalogClient.ErrMasterNotFound) {
			s.logger.Warn("checkMasterAndBranch: master id=%s not found", masterID)
			return ErrMasterNotFound
		}
		s.logger.Error("checkMasterAndBranch: failed to get master id=%s: %v", masterID, err)
		return fmt.Errorf("%w: failed to get master: %v", ErrInternal, err)
	}

	if _, err := s.catalogClient.GetBranch(ctx, branchID); err != nil {
		if errors.Is(err, catalogClient.ErrBranchNotFound) {
			s.logger.Warn("checkMasterAndBranch: branch id=%s not found", branchID)
			return ErrBranchNotFound
		}
		s.logger.Error("checkMasterAndBranch: failed to get branch id=%s: %v", branchID, err)
		return fmt.Errorf("%w: failed to get branch: %v", ErrInternal, err)
	}

	return nil
}

func (s *Service) today() time.Time {
	now := s.timeProvider.Now()
	return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
}
