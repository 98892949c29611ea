package events

import "errors"

var (
	// ErrMarshal возвращается, когда событие не сериализуется в JSON
	ErrMarshal = errors.New("events: failed to marshal event")

	// ErrWrite возвращается при ошибке записи в Kafka
	ErrWrite = errors.New("events: failed to write message")
)
