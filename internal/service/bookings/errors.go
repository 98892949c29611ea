package bookings

import "errors"

var (
	// ErrUnknownAction возвращается для действия, которого нет в машине состояний
	ErrUnknownAction = errors.New("bookings: unknown action")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("bookings: internal error")
)
