package schedule

import "errors"

var (
	// ErrScheduleNotFound возвращается, когда расписание на день недели не найдено
	ErrScheduleNotFound = errors.New("schedule.repository: schedule not found")

	// ErrExceptionNotFound возвращается, когда исключение не найдено
	ErrExceptionNotFound = errors.New("schedule.repository: exception not found")

	// ErrDuplicateException возвращается при попытке создать второе исключение
	// на ту же дату (уникальный индекс master_id + exception_date)
	ErrDuplicateException = errors.New("schedule.repository: exception already exists for this date")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("schedule.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("schedule.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("schedule.repository: failed to scan row")
)
