package get_booking

import (
	"context"

	"github.com/google/uuid"

	"github.com/jazyl-tech/JZL-BookingService/internal/domain"
	"github.com/jazyl-tech/JZL-BookingService/internal/service/bookings/models"
)

type BookingService interface {
	GetByID(ctx context.Context, id uuid.UUID, actor domain.Actor) (*models.BookingResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
