package create_schedule_exception

import (
	"context"

	"github.com/jazyl-tech/JZL-BookingService/internal/service/schedule/models"
)

type ScheduleService interface {
	CreateException(ctx context.Context, req *models.CreateExceptionRequest) (*models.ExceptionResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
