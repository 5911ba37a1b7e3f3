package get_schedule

import (
	"context"

	"github.com/google/uuid"

	"github.com/jazyl-tech/JZL-BookingService/internal/service/schedule/models"
)

type ScheduleService interface {
	GetSchedule(ctx context.Context, masterID, branchID uuid.UUID) (*models.ScheduleResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
