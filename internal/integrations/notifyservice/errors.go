package notifyservice

import "errors"

var (
	// ErrInternal возвращается при внутренних ошибках клиента
	ErrInternal = errors.New("notifyservice client: internal error")

	// ErrSendFailed возвращается, когда NotifyService отклонил отправку
	ErrSendFailed = errors.New("notifyservice client: failed to send notification")
)
