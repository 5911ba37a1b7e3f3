package catalogservice

import "github.com/google/uuid"

// Master модель мастера из CatalogService
type Master struct {
	ID          uuid.UUID `json:"id"`
	SalonID     uuid.UUID `json:"salon_id"`
	BranchID    uuid.UUID `json:"branch_id"`
	DisplayName string    `json:"display_name"`
	IsActive    bool      `json:"is_active"`
}

// Service модель услуги из CatalogService
type Service struct {
	ID              uuid.UUID `json:"id"`
	SalonID         uuid.UUID `json:"salon_id"`
	Name            string    `json:"name"`
	DurationMinutes int       `json:"duration_minutes"`
	BasePrice       float64   `json:"base_price"`
	IsActive        bool      `json:"is_active"`
}

// Branch модель филиала из CatalogService
type Branch struct {
	ID       uuid.UUID `json:"id"`
	SalonID  uuid.UUID `json:"salon_id"`
	Name     string    `json:"name"`
	Address  string    `json:"address"`
	Timezone string    `json:"timezone"`
	IsActive bool      `json:"is_active"`
}

// PriceOverride индивидуальная цена мастера на услугу
type PriceOverride struct {
	MasterID  uuid.UUID `json:"master_id"`
	ServiceID uuid.UUID `json:"service_id"`
	Price     float64   `json:"price"`
}

// ErrorResponse модель ошибки от CatalogService
type ErrorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}
