package create_booking

import "errors"

var (
	// ErrMasterNotFound возвращается, когда мастер не найден или неактивен
	ErrMasterNotFound = errors.New("create_booking: master not found")

	// ErrServiceNotFound возвращается, когда услуга не найдена или неактивна
	ErrServiceNotFound = errors.New("create_booking: service not found")

	// ErrInvalidDate возвращается при дате бронирования в прошлом
	ErrInvalidDate = errors.New("create_booking: invalid booking date")

	// ErrSlotNotAvailable возвращается, когда запрошенное время не входит в
	// список доступных слотов. Конфликт, обнаруженный уже на insert
	// (exclusion-констрейнт), маппится на эту же ошибку: для клиента оба
	// исхода гонки неразличимы.
	ErrSlotNotAvailable = errors.New("create_booking: slot is not available")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("create_booking: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("create_booking: internal error")
)
