package schedule

import "errors"

var (
	// ErrMasterNotFound возвращается, когда мастер не найден
	ErrMasterNotFound = errors.New("master not found")

	// ErrBranchNotFound возвращается, когда филиал не найден
	ErrBranchNotFound = errors.New("branch not found")

	// ErrExceptionNotFound возвращается, когда исключение не найдено
	ErrExceptionNotFound = errors.New("exception not found")

	// ErrExceptionAlreadyExists возвращается при повторном исключении на дату
	ErrExceptionAlreadyExists = errors.New("exception already exists for this date")

	// ErrExceptionInPast возвращается при попытке создать исключение на прошедшую дату
	ErrExceptionInPast = errors.New("exception date must be in the future")

	// ErrAccessDenied возвращается, когда у пользователя нет прав доступа
	ErrAccessDenied = errors.New("access denied")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("invalid input data")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("service: internal error")
)
