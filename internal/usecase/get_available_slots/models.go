package get_available_slots

import (
	"time"

	"github.com/google/uuid"

	"github.com/jazyl-tech/JZL-BookingService/internal/domain"
)

// Request модель запроса на получение доступных слотов
type Request struct {
	MasterID  uuid.UUID // ID мастера
	ServiceID uuid.UUID // ID услуги (определяет длительность слота)
	BranchID  uuid.UUID // ID филиала
	Date      time.Time // Дата для получения слотов (без времени)
}

// Response модель ответа со списком доступных слотов
type Response struct {
	Date      time.Time     // Дата, на которую запрашивались слоты
	MasterID  uuid.UUID     // ID мастера
	ServiceID uuid.UUID     // ID услуги
	BranchID  uuid.UUID     // ID филиала
	Slots     []domain.Slot // Список доступных слотов по возрастанию времени начала
}
