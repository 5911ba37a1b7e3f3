package update_schedule

import (
	"github.com/google/uuid"

	"github.com/jazyl-tech/JZL-BookingService/internal/domain"
	"github.com/jazyl-tech/JZL-BookingService/internal/service/schedule/models"
)

// UpdateScheduleRequest HTTP request model
type UpdateScheduleRequest struct {
	BranchID string                    `json:"branchId"`
	Days     []models.DayScheduleInput `json:"days"`
}

// ToServiceRequest конвертирует HTTP запрос в модель сервиса
func (r *UpdateScheduleRequest) ToServiceRequest(actor domain.Actor, masterID uuid.UUID) (*models.UpdateScheduleRequest, error) {
	branchID, err := uuid.Parse(r.BranchID)
	if err != nil {
		return nil, err
	}

	return &models.UpdateScheduleRequest{
		Actor:    actor,
		MasterID: masterID,
		BranchID: branchID,
		Days:     r.Days,
	}, nil
}
