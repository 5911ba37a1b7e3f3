package models

import (
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/jazyl-tech/JZL-BookingService/internal/domain"
)

var (
	// ErrInvalidStatus возвращается при некорректном статусе
	ErrInvalidStatus = errors.New("invalid booking status")
)

// Request модели

// GetClientBookingsRequest запрос на получение истории бронирований клиента
type GetClientBookingsRequest struct {
	Actor    domain.Actor
	ClientID uuid.UUID
	Status   *string
}

// GetSalonBookingsRequest запрос на получение бронирований салона
type GetSalonBookingsRequest struct {
	Actor           domain.Actor
	SalonID         uuid.UUID
	MasterID        *uuid.UUID // Фильтр по мастеру (опционально)
	StartDate       *time.Time // Начало периода (опционально)
	EndDate         *time.Time // Конец периода (опционально)
	Status          *string    // Фильтр по статусу (опционально)
	IncludeInactive bool       // Включить завершенные и отмененные
}

// ToDomainFilter конвертирует request в domain фильтр
func (r *GetSalonBookingsRequest) ToDomainFilter() (domain.SalonBookingsFilter, error) {
	filter := domain.SalonBookingsFilter{
		SalonID:         r.SalonID,
		MasterID:        r.MasterID,
		StartDate:       r.StartDate,
		EndDate:         r.EndDate,
		IncludeInactive: r.IncludeInactive,
	}

	if r.Status != nil {
		status, err := ToDomainBookingStatus(*r.Status)
		if err != nil {
			return filter, err
		}
		filter.Status = &status
	}

	return filter, nil
}

// Response модели

// BookingResponse ответ с данными бронирования
type BookingResponse struct {
	ID          uuid.UUID `json:"id"`
	ClientID    uuid.UUID `json:"clientId"`
	MasterID    uuid.UUID `json:"masterId"`
	ServiceID   uuid.UUID `json:"serviceId"`
	BranchID    uuid.UUID `json:"branchId"`
	SalonID     uuid.UUID `json:"salonId"`
	BookingDate string    `json:"bookingDate"` // "2025-10-15"
	StartTime   string    `json:"startTime"`   // "10:00"
	EndTime     string    `json:"endTime"`     // "11:00"
	FinalPrice  float64   `json:"finalPrice"`
	Status      string    `json:"status"`
	CreatedVia  string    `json:"createdVia"`

	NotesFromClient *string `json:"notesFromClient,omitempty"`
	NotesForMaster  *string `json:"notesForMaster,omitempty"`

	CancellationReason *string `json:"cancellationReason,omitempty"`
	CancelledAt        *string `json:"cancelledAt,omitempty"` // ISO 8601
	CompletedAt        *string `json:"completedAt,omitempty"` // ISO 8601

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// BookingListResponse ответ со списком бронирований
type BookingListResponse struct {
	Bookings []BookingResponse `json:"bookings"`
}

// SalonBookingsResponse ответ со списком бронирований салона и статистикой
type SalonBookingsResponse struct {
	Bookings []BookingResponse `json:"bookings"`
	Stats    BookingStats      `json:"stats"`
}

// BookingStats агрегаты по выборке бронирований
type BookingStats struct {
	Total    int            `json:"total"`
	ByStatus map[string]int `json:"byStatus"`
}

// Методы конвертации

// FromDomainBooking конвертирует domain модель в DTO
func FromDomainBooking(b *domain.Booking) *BookingResponse {
	if b == nil {
		return nil
	}

	resp := &BookingResponse{
		ID:                 b.ID,
		ClientID:           b.ClientID,
		MasterID:           b.MasterID,
		ServiceID:          b.ServiceID,
		BranchID:           b.BranchID,
		SalonID:            b.SalonID,
		BookingDate:        b.BookingDate.Format(domain.DateFormat),
		StartTime:          b.StartTime.String(),
		EndTime:            b.EndTime.String(),
		FinalPrice:         b.FinalPrice,
		Status:             string(b.Status),
		CreatedVia:         string(b.CreatedVia),
		NotesFromClient:    b.NotesFromClient,
		NotesForMaster:     b.NotesForMaster,
		CancellationReason: b.CancellationReason,
		CreatedAt:          b.CreatedAt,
		UpdatedAt:          b.UpdatedAt,
	}

	if b.CancelledAt != nil {
		cancelledStr := b.CancelledAt.Format(time.RFC3339)
		resp.CancelledAt = &cancelledStr
	}
	if b.CompletedAt != nil {
		completedStr := b.CompletedAt.Format(time.RFC3339)
		resp.CompletedAt = &completedStr
	}

	return resp
}

// FromDomainBookingList конвертирует список domain моделей в DTO
func FromDomainBookingList(bookings []*domain.Booking) *BookingListResponse {
	resp := &BookingListResponse{
		Bookings: make([]BookingResponse, 0, len(bookings)),
	}

	for _, booking := range bookings {
		if bookingResp := FromDomainBooking(booking); bookingResp != nil {
			resp.Bookings = append(resp.Bookings, *bookingResp)
		}
	}

	return resp
}

// BuildStats считает агрегаты по списку бронирований
func BuildStats(bookings []*domain.Booking) BookingStats {
	stats := BookingStats{
		Total:    len(bookings),
		ByStatus: make(map[string]int),
	}
	for _, b := range bookings {
		stats.ByStatus[string(b.Status)]++
	}
	return stats
}

// ToDomainBookingStatus конвертирует строку в domain.BookingStatus с валидацией
func ToDomainBookingStatus(status string) (domain.BookingStatus, error) {
	s := domain.BookingStatus(status)

	validStatuses := []domain.BookingStatus{
		domain.StatusPending,
		domain.StatusConfirmed,
		domain.StatusInProgress,
		domain.StatusCompleted,
		domain.StatusCancelledByClient,
		domain.StatusCancelledBySalon,
		domain.StatusNoShow,
	}

	for _, valid := range validStatuses {
		if s == valid {
			return s, nil
		}
	}

	return "", ErrInvalidStatus
}
