package create_schedule_exception

import (
	"time"

	"github.com/google/uuid"

	"github.com/jazyl-tech/JZL-BookingService/internal/domain"
	"github.com/jazyl-tech/JZL-BookingService/internal/service/schedule/models"
)

// CreateExceptionRequest HTTP request model
type CreateExceptionRequest struct {
	ExceptionDate   string  `json:"exceptionDate"` // "2025-10-15"
	ExceptionType   string  `json:"exceptionType"` // day_off, custom_hours, fully_booked
	CustomStartTime string  `json:"customStartTime,omitempty"`
	CustomEndTime   string  `json:"customEndTime,omitempty"`
	Reason          *string `json:"reason,omitempty"`
}

// ToServiceRequest конвертирует HTTP запрос в модель сервиса
func (r *CreateExceptionRequest) ToServiceRequest(actor domain.Actor, masterID uuid.UUID) (*models.CreateExceptionRequest, error) {
	date, err := time.Parse(domain.DateFormat, r.ExceptionDate)
	if err != nil {
		return nil, err
	}

	return &models.CreateExceptionRequest{
		Actor:           actor,
		MasterID:        masterID,
		ExceptionDate:   date,
		ExceptionType:   r.ExceptionType,
		CustomStartTime: r.CustomStartTime,
		CustomEndTime:   r.CustomEndTime,
		Reason:          r.Reason,
	}, nil
}
