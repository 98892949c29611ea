package pattern

import "errors"

var (
	// ErrPatternNotFound возвращается, когда шаблон повторения не найден
	ErrPatternNotFound = errors.New("pattern.repository: pattern not found")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("pattern.repository: failed to build query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("pattern.repository: failed to scan row")

	// ErrInvalidDate возвращается, когда дата исключения в БД не разбирается
	ErrInvalidDate = errors.New("pattern.repository: invalid exception date")
)
