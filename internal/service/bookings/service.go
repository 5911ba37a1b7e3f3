package bookings

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/jazyl-tech/JZL-BookingService/internal/domain"
	bookingRepo "github.com/jazyl-tech/JZL-BookingService/internal/infra/storage/booking"
	"github.com/jazyl-tech/JZL-BookingService/internal/service/bookings/models"
)

// Service сервис для чтения бронирований
type Service struct {
	bookingRepo BookingRepository
	logger      Logger
}

// NewService создает новый экземпляр сервиса бронирований
func NewService(bookingRepo BookingRepository, logger Logger) *Service {
	return &Service{
		bookingRepo: bookingRepo,
		logger:      logger,
	}
}

// GetByID получает бронирование по ID.
// Клиент видит только свою запись, сотрудники салона - любую.
func (s *Service) GetByID(ctx context.Context, id uuid.UUID, actor domain.Actor) (*models.BookingResponse, error) {
	s.logger.Info("GetByID: fetching booking id=%s for actor=%s role=%s", id, actor.UserID, actor.Role)

	booking, err := s.bookingRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			s.logger.Warn("GetByID: booking id=%s not found", id)
			return nil, ErrBookingNotFound
		}
		s.logger.Error("GetByID: repository error for booking id=%s: %v", id, err)
		return nil, fmt.Errorf("%w: GetByID - repository error: %v", ErrInternal, err)
	}

	if !actor.IsStaff() && booking.ClientID != actor.UserID {
		s.logger.Warn("GetByID: access denied for actor=%s to booking id=%s", actor.UserID, id)
		return nil, ErrAccessDenied
	}

	s.logger.Info("GetByID: successfully fetched booking id=%s", id)
	return models.FromDomainBooking(booking), nil
}

// GetClientBookings получает историю бронирований клиента.
// Клиент может смотреть только свою историю, сотрудники салона - любую.
func (s *Service) GetClientBookings(ctx context.Context, req *models.GetClientBookingsRequest) (*models.BookingListResponse, error) {
	s.logger.Info("GetClientBookings: fetching bookings for client=%s, status=%v", req.ClientID, req.Status)

	if !req.Actor.IsStaff() && req.Actor.UserID != req.ClientID {
		s.logger.Warn("GetClientBookings: access denied for actor=%s to client=%s history",
			req.Actor.UserID, req.ClientID)
		return nil, ErrAccessDenied
	}

	filter := domain.ClientBookingsFilter{ClientID: req.ClientID}
	if req.Status != nil {
		status, err := models.ToDomainBookingStatus(*req.Status)
		if err != nil {
			s.logger.Warn("GetClientBookings: invalid status=%s for client=%s", *req.Status, req.ClientID)
			return nil, fmt.Errorf("%w: invalid status", ErrInvalidInput)
		}
		filter.Status = &status
	}

	bookings, err := s.bookingRepo.GetByClient(ctx, filter)
	if err != nil {
		s.logger.Error("GetClientBookings: repository error for client=%s: %v", req.ClientID, err)
		return nil, fmt.Errorf("%w: GetClientBookings - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("GetClientBookings: successfully fetched %d bookings for client=%s", len(bookings), req.ClientID)
	return models.FromDomainBookingList(bookings), nil
}

// GetSalonBookings получает бронирования салона с фильтрацией по мастеру,
// периоду и статусу, плюс агрегаты по статусам. Доступно только сотрудникам.
func (s *Service) GetSalonBookings(ctx context.Context, req *models.GetSalonBookingsRequest) (*models.SalonBookingsResponse, error) {
	s.logger.Info("GetSalonBookings: fetching bookings for salon=%s by actor=%s", req.SalonID, req.Actor.UserID)

	if !req.Actor.IsStaff() {
		s.logger.Warn("GetSalonBookings: access denied for actor=%s role=%s", req.Actor.UserID, req.Actor.Role)
		return nil, ErrAccessDenied
	}

	filter, err := req.ToDomainFilter()
	if err != nil {
		s.logger.Warn("GetSalonBookings: invalid filter for salon=%s: %v", req.SalonID, err)
		return nil, fmt.Errorf("%w: invalid filter", ErrInvalidInput)
	}

	bookings, err := s.bookingRepo.GetBySalonWithFilter(ctx, filter)
	if err != nil {
		s.logger.Error("GetSalonBookings: repository error for salon=%s: %v", req.SalonID, err)
		return nil, fmt.Errorf("%w: GetSalonBookings - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("GetSalonBookings: successfully fetched %d bookings for salon=%s", len(bookings), req.SalonID)

	list := models.FromDomainBookingList(bookings)
	return &models.SalonBookingsResponse{
		Bookings: list.Bookings,
		Stats:    models.BuildStats(bookings),
	}, nil
}
