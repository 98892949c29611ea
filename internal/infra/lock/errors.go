package lock

import "errors"

var (
	// ErrResourceBusy возвращается, когда ресурс удерживается другим запросом дольше попыток ожидания
	ErrResourceBusy = errors.New("lock: resource is busy")

	// ErrRedis возвращается при ошибке обращения к Redis
	ErrRedis = errors.New("lock: redis error")
)
