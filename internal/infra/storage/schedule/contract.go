package schedule

import "github.com/jazyl-tech/JZL-BookingService/pkg/txmanager"

// DBExecutor интерфейс для выполнения запросов к БД (обычное соединение или транзакция)
type DBExecutor = txmanager.DBExecutor
