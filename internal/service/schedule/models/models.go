package models

import (
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/jazyl-tech/JZL-BookingService/internal/domain"
	"github.com/jazyl-tech/JZL-BookingService/pkg/types"
)

var (
	// ErrInvalidExceptionType возвращается при неизвестном типе исключения
	ErrInvalidExceptionType = errors.New("invalid exception type")
)

// Request модели

// DayScheduleInput строка недельного расписания в запросе на обновление
type DayScheduleInput struct {
	DayOfWeek int                    `json:"dayOfWeek"` // ISO-8601: 1 = понедельник ... 7 = воскресенье
	IsWorking bool                   `json:"isWorking"`
	StartTime string                 `json:"startTime,omitempty"` // "09:00"
	EndTime   string                 `json:"endTime,omitempty"`   // "18:00"
	Breaks    []domain.BreakInterval `json:"breaks,omitempty"`
}

// UpdateScheduleRequest запрос на полную замену недельного расписания
type UpdateScheduleRequest struct {
	Actor    domain.Actor
	MasterID uuid.UUID
	BranchID uuid.UUID
	Days     []DayScheduleInput
}

// CreateExceptionRequest запрос на создание исключения из расписания
type CreateExceptionRequest struct {
	Actor           domain.Actor
	MasterID        uuid.UUID
	ExceptionDate   time.Time
	ExceptionType   string  // day_off, custom_hours, fully_booked
	CustomStartTime string  // обязателен для custom_hours
	CustomEndTime   string  // обязателен для custom_hours
	Reason          *string
}

// Response модели

// DayScheduleResponse строка недельного расписания в ответе
type DayScheduleResponse struct {
	DayOfWeek int                    `json:"dayOfWeek"`
	IsWorking bool                   `json:"isWorking"`
	StartTime string                 `json:"startTime,omitempty"`
	EndTime   string                 `json:"endTime,omitempty"`
	Breaks    []domain.BreakInterval `json:"breaks,omitempty"`
}

// ExceptionResponse исключение из расписания в ответе
type ExceptionResponse struct {
	ID              uuid.UUID `json:"id"`
	MasterID        uuid.UUID `json:"masterId"`
	ExceptionDate   string    `json:"exceptionDate"` // "2025-10-15"
	ExceptionType   string    `json:"exceptionType"`
	CustomStartTime string    `json:"customStartTime,omitempty"`
	CustomEndTime   string    `json:"customEndTime,omitempty"`
	Reason          *string   `json:"reason,omitempty"`
	CreatedAt       time.Time `json:"createdAt"`
}

// ScheduleResponse недельное расписание мастера с будущими исключениями
type ScheduleResponse struct {
	MasterID   uuid.UUID             `json:"masterId"`
	BranchID   uuid.UUID             `json:"branchId"`
	Days       []DayScheduleResponse `json:"days"`
	Exceptions []ExceptionResponse   `json:"exceptions"`
}

// Методы конвертации

// ToDomainDay конвертирует строку запроса в domain модель
func (d *DayScheduleInput) ToDomainDay() (domain.WeekdaySchedule, error) {
	day := domain.WeekdaySchedule{
		DayOfWeek: d.DayOfWeek,
		IsWorking: d.IsWorking,
		Breaks:    d.Breaks,
	}

	if !d.IsWorking {
		return day, nil
	}

	start, err := types.NewTimeStringFromString(d.StartTime)
	if err != nil {
		return day, err
	}
	end, err := types.NewTimeStringFromString(d.EndTime)
	if err != nil {
		return day, err
	}

	day.StartTime = start
	day.EndTime = end
	return day, nil
}

// FromDomainDay конвертирует domain модель в DTO
func FromDomainDay(s *domain.WeekdaySchedule) DayScheduleResponse {
	return DayScheduleResponse{
		DayOfWeek: s.DayOfWeek,
		IsWorking: s.IsWorking,
		StartTime: s.StartTime.String(),
		EndTime:   s.EndTime.String(),
		Breaks:    s.Breaks,
	}
}

// FromDomainException конвертирует domain модель в DTO
func FromDomainException(e *domain.ScheduleException) ExceptionResponse {
	return ExceptionResponse{
		ID:              e.ID,
		MasterID:        e.MasterID,
		ExceptionDate:   e.ExceptionDate.Format(domain.DateFormat),
		ExceptionType:   string(e.ExceptionType),
		CustomStartTime: e.CustomStartTime.String(),
		CustomEndTime:   e.CustomEndTime.String(),
		Reason:          e.Reason,
		CreatedAt:       e.CreatedAt,
	}
}

// ToDomainExceptionType конвертирует строку в domain.ExceptionType с валидацией
func ToDomainExceptionType(t string) (domain.ExceptionType, error) {
	et := domain.ExceptionType(t)
	switch et {
	case domain.ExceptionDayOff, domain.ExceptionCustomHours, domain.ExceptionFullyBooked:
		return et, nil
	}
	return "", ErrInvalidExceptionType
}
