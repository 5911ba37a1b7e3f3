package booking

import "github.com/jazyl-tech/JZL-BookingService/pkg/txmanager"

// Переиспользуем интерфейс исполнителя запросов из txmanager:
// репозиторий одинаково работает с *sql.DB и с активной транзакцией из контекста
type DBExecutor = txmanager.DBExecutor
