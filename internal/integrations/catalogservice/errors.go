package catalogservice

import "errors"

var (
	// ErrMasterNotFound возвращается, когда мастер не найден в каталоге
	ErrMasterNotFound = errors.New("master not found in catalog")

	// ErrServiceNotFound возвращается, когда услуга не найдена в каталоге
	ErrServiceNotFound = errors.New("service not found in catalog")

	// ErrBranchNotFound возвращается, когда филиал не найден в каталоге
	ErrBranchNotFound = errors.New("branch not found in catalog")

	// ErrInternal возвращается при внутренних ошибках клиента
	ErrInternal = errors.New("catalogservice client: internal error")

	// ErrInvalidResponse возвращается при некорректном ответе от сервиса
	ErrInvalidResponse = errors.New("catalogservice client: invalid response")
)
