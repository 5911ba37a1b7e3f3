package delete_schedule_exception

import (
	"context"

	"github.com/google/uuid"

	"github.com/jazyl-tech/JZL-BookingService/internal/domain"
)

type ScheduleService interface {
	DeleteException(ctx context.Context, actor domain.Actor, id, masterID uuid.UUID) error
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
