package get_available_slots

import (
	"github.com/jazyl-tech/JZL-BookingService/internal/domain"
	getSlots "github.com/jazyl-tech/JZL-BookingService/internal/usecase/get_available_slots"
)

// SlotResponse HTTP модель одного слота
type SlotResponse struct {
	StartTime string `json:"startTime"` // "10:00"
	EndTime   string `json:"endTime"`   // "11:00"
}

// SlotsResponse HTTP модель ответа со списком слотов
type SlotsResponse struct {
	Date      string         `json:"date"` // "2025-10-15"
	MasterID  string         `json:"masterId"`
	ServiceID string         `json:"serviceId"`
	BranchID  string         `json:"branchId"`
	Slots     []SlotResponse `json:"slots"`
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *getSlots.Response) *SlotsResponse {
	slots := make([]SlotResponse, 0, len(resp.Slots))
	for _, s := range resp.Slots {
		slots = append(slots, SlotResponse{
			StartTime: s.StartTime.String(),
			EndTime:   s.EndTime.String(),
		})
	}

	return &SlotsResponse{
		Date:      resp.Date.Format(domain.DateFormat),
		MasterID:  resp.MasterID.String(),
		ServiceID: resp.ServiceID.String(),
		BranchID:  resp.BranchID.String(),
		Slots:     slots,
	}
}
