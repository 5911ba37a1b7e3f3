package create_booking

import (
	"time"

	"github.com/google/uuid"

	"github.com/jazyl-tech/JZL-BookingService/internal/domain"
	createBooking "github.com/jazyl-tech/JZL-BookingService/internal/usecase/create_booking"
	"github.com/jazyl-tech/JZL-BookingService/pkg/types"
)

// CreateBookingRequest HTTP request model
type CreateBookingRequest struct {
	MasterID    string  `json:"masterId"`
	ServiceID   string  `json:"serviceId"`
	BranchID    string  `json:"branchId"`
	BookingDate string  `json:"bookingDate"` // "2025-10-15"
	StartTime   string  `json:"startTime"`   // "10:00"
	CreatedVia  string  `json:"createdVia,omitempty"`
	Notes       *string `json:"notes,omitempty"`
}

// BookingResponse HTTP response model
type BookingResponse struct {
	ID          string  `json:"id"`
	ClientID    string  `json:"clientId"`
	MasterID    string  `json:"masterId"`
	ServiceID   string  `json:"serviceId"`
	BranchID    string  `json:"branchId"`
	SalonID     string  `json:"salonId"`
	BookingDate string  `json:"bookingDate"`
	StartTime   string  `json:"startTime"`
	EndTime     string  `json:"endTime"`
	FinalPrice  float64 `json:"finalPrice"`
	Status      string  `json:"status"`
	CreatedVia  string  `json:"createdVia"`
	CreatedAt   string  `json:"createdAt"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case.
// Клиентом записи становится аутентифицированный актор.
func (r *CreateBookingRequest) ToUseCaseRequest(actor domain.Actor) (*createBooking.Request, error) {
	masterID, err := uuid.Parse(r.MasterID)
	if err != nil {
		return nil, err
	}
	serviceID, err := uuid.Parse(r.ServiceID)
	if err != nil {
		return nil, err
	}
	branchID, err := uuid.Parse(r.BranchID)
	if err != nil {
		return nil, err
	}

	bookingDate, err := time.Parse(domain.DateFormat, r.BookingDate)
	if err != nil {
		return nil, err
	}

	startTime, err := types.NewTimeStringFromString(r.StartTime)
	if err != nil {
		return nil, err
	}

	return &createBooking.Request{
		ClientID:        actor.UserID,
		MasterID:        masterID,
		ServiceID:       serviceID,
		BranchID:        branchID,
		Date:            bookingDate,
		StartTime:       startTime,
		CreatedVia:      r.CreatedVia,
		NotesFromClient: r.Notes,
	}, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *createBooking.Response) *BookingResponse {
	return &BookingResponse{
		ID:          resp.ID.String(),
		ClientID:    resp.ClientID.String(),
		MasterID:    resp.MasterID.String(),
		ServiceID:   resp.ServiceID.String(),
		BranchID:    resp.BranchID.String(),
		SalonID:     resp.SalonID.String(),
		BookingDate: resp.Date.Format(domain.DateFormat),
		StartTime:   resp.StartTime.String(),
		EndTime:     resp.EndTime.String(),
		FinalPrice:  resp.FinalPrice,
		Status:      resp.Status,
		CreatedVia:  resp.CreatedVia,
		CreatedAt:   resp.CreatedAt.Format(time.RFC3339),
	}
}
