package handlers

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-FlightScheduler/internal/domain"
	"github.com/m04kA/SMC-FlightScheduler/internal/infra/lock"
)

const (
	msgValidation   = "ошибка валидации"
	msgConflict     = "ресурс занят в запрошенное время"
	msgState        = "действие недопустимо в текущем статусе"
	msgNotFound     = "объект не найден"
	msgOfferExpired = "срок предложения истёк"
	msgInvalidState = "запись листа ожидания в неподходящем статусе"
	msgResourceBusy = "ресурс сейчас бронируется другим запросом, повторите позже"
)

// Error kinds в ответах и отчётах по датам шаблона
const (
	KindValidation   = "validation"
	KindConflict     = "conflict"
	KindState        = "state"
	KindNotFound     = "not_found"
	KindResourceBusy = "resource_busy"
	KindInternal     = "internal"
)

// ErrorKind относит ошибку к одному из видов ошибок ядра
func ErrorKind(err error) string {
	switch {
	case errors.Is(err, domain.ErrValidation):
		return KindValidation
	case errors.Is(err, domain.ErrConflict):
		return KindConflict
	case errors.Is(err, domain.ErrState):
		return KindState
	case errors.Is(err, domain.ErrNotFound):
		return KindNotFound
	case errors.Is(err, lock.ErrResourceBusy):
		return KindResourceBusy
	case errors.Is(err, domain.ErrWaitlist):
		var wErr *domain.WaitlistError
		if errors.As(err, &wErr) {
			return string(wErr.Code)
		}
		return string(domain.WaitlistInvalidState)
	default:
		return KindInternal
	}
}

// Logger интерфейс для логирования ошибок обработчиков
type Logger interface {
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RespondDomainError переводит ошибку ядра в HTTP-ответ
// validation 400, not found 404, conflict и state 409, offer_expired 410, остальное 500.
func RespondDomainError(w http.ResponseWriter, logger Logger, route string, err error) {
	var (
		validationErr *domain.ValidationError
		conflictErr   *domain.ConflictError
		stateErr      *domain.StateError
		notFoundErr   *domain.NotFoundError
		waitlistErr   *domain.WaitlistError
	)

	switch {
	case errors.As(err, &validationErr):
		logger.Warn("%s - Validation failed: %v", route, validationErr.Errors)
		RespondErrorDetails(w, http.StatusBadRequest, msgValidation, KindValidation, validationErr.Errors)

	case errors.As(err, &conflictErr):
		logger.Warn("%s - Conflict: %v", route, err)
		RespondErrorDetails(w, http.StatusConflict, msgConflict, KindConflict, NewConflictResponse(conflictErr))

	case errors.As(err, &stateErr):
		logger.Warn("%s - Illegal transition: %v", route, err)
		RespondErrorDetails(w, http.StatusConflict, msgState, KindState, map[string]string{
			"entity": stateErr.Entity,
			"from":   stateErr.From,
			"action": stateErr.Action,
		})

	case errors.As(err, &notFoundErr):
		logger.Warn("%s - Not found: %v", route, err)
		RespondErrorDetails(w, http.StatusNotFound, msgNotFound, KindNotFound, map[string]string{
			"entity": notFoundErr.Entity,
			"id":     notFoundErr.ID.String(),
		})

	case errors.As(err, &waitlistErr):
		logger.Warn("%s - Waitlist error: %v", route, err)
		if waitlistErr.Code == domain.WaitlistOfferExpired {
			RespondErrorDetails(w, http.StatusGone, msgOfferExpired, string(waitlistErr.Code), nil)
			return
		}
		RespondErrorDetails(w, http.StatusConflict, msgInvalidState, string(waitlistErr.Code),
			map[string]string{"status": string(waitlistErr.Status)})

	case errors.Is(err, lock.ErrResourceBusy):
		logger.Warn("%s - Resource busy: %v", route, err)
		RespondErrorDetails(w, http.StatusConflict, msgResourceBusy, KindResourceBusy, nil)

	default:
		logger.Error("%s - Internal error: %v", route, err)
		RespondInternalError(w)
	}
}
