package update_booking_status

import (
	"time"

	updateStatus "github.com/jazyl-tech/JZL-BookingService/internal/usecase/update_booking_status"
)

// UpdateStatusRequest HTTP request model
type UpdateStatusRequest struct {
	Status string  `json:"status"`
	Reason *string `json:"reason,omitempty"`
}

// StatusResponse HTTP response model
type StatusResponse struct {
	ID          string  `json:"id"`
	Status      string  `json:"status"`
	CancelledAt *string `json:"cancelledAt,omitempty"`
	CompletedAt *string `json:"completedAt,omitempty"`
	UpdatedAt   string  `json:"updatedAt"`
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *updateStatus.Response) *StatusResponse {
	out := &StatusResponse{
		ID:        resp.ID.String(),
		Status:    resp.Status,
		UpdatedAt: resp.UpdatedAt.Format(time.RFC3339),
	}
	if resp.CancelledAt != nil {
		s := resp.CancelledAt.Format(time.RFC3339)
		out.CancelledAt = &s
	}
	if resp.CompletedAt != nil {
		s := resp.CompletedAt.Format(time.RFC3339)
		out.CompletedAt = &s
	}
	return out
}
