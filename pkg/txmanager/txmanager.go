package txmanager

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/lib/pq"

	"github.com/m04kA/SMC-FlightScheduler/pkg/dbmetrics"
)

const (
	// SQLSTATE serialization_failure и deadlock_detected
	codeSerializationFailure = "40001"
	codeDeadlockDetected     = "40P01"

	defaultMaxRetries = 3
	retryBackoff      = 20 * time.Millisecond
)

var (
	// ErrBeginTx ошибка открытия транзакции
	ErrBeginTx = errors.New("txmanager: failed to begin transaction")
	// ErrCommitTx ошибка фиксации транзакции
	ErrCommitTx = errors.New("txmanager: failed to commit transaction")
	// ErrRetriesExhausted транзакция так и не прошла из-за конфликтов сериализации
	ErrRetriesExhausted = errors.New("txmanager: serialization retries exhausted")
)

// RetryCounter счётчик повторов (prometheus.Counter подходит)
type RetryCounter interface {
	Inc()
}

// TransactionManager выполняет функции в транзакциях уровня SERIALIZABLE
type TransactionManager struct {
	db         dbmetrics.TxBeginner
	maxRetries int
	retries    RetryCounter
}

// NewTransactionManager создает менеджер транзакций. maxRetries <= 0 - значение по умолчанию
func NewTransactionManager(db dbmetrics.TxBeginner, maxRetries int, retries RetryCounter) *TransactionManager {
	if maxRetries <= 0 {
		maxRetries = defaultMaxRetries
	}
	return &TransactionManager{db: db, maxRetries: maxRetries, retries: retries}
}

// DoSerializable выполняет fn в сериализуемой транзакции.
// При конфликте сериализации (40001/40P01) транзакция откатывается и fn выполняется заново,
// поэтому все проверки внутри fn повторяются непосредственно перед коммитом.
// Если ctx уже содержит транзакцию, fn выполняется в ней без вложенной транзакции.
func (m *TransactionManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	if dbmetrics.IsInTransaction(ctx) {
		return fn(ctx)
	}

	var lastErr error
	for attempt := 0; attempt <= m.maxRetries; attempt++ {
		if attempt > 0 {
			if m.retries != nil {
				m.retries.Inc()
			}
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(time.Duration(attempt) * retryBackoff):
			}
		}

		lastErr = m.runOnce(ctx, fn)
		if lastErr == nil || !IsSerializationFailure(lastErr) {
			return lastErr
		}
	}

	return fmt.Errorf("%w: %v", ErrRetriesExhausted, lastErr)
}

func (m *TransactionManager) runOnce(ctx context.Context, fn func(ctx context.Context) error) (err error) {
	tx, err := m.db.BeginTx(ctx, &sql.TxOptions{Isolation: sql.LevelSerializable})
	if err != nil {
		return fmt.Errorf("%w: %v", ErrBeginTx, err)
	}

	defer func() {
		if p := recover(); p != nil {
			_ = tx.Rollback()
			panic(p)
		}
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	if err = fn(dbmetrics.WithTx(ctx, tx)); err != nil {
		return err
	}

	if err = tx.Commit(); err != nil {
		if IsSerializationFailure(err) {
			return err
		}
		return fmt.Errorf("%w: %v", ErrCommitTx, err)
	}
	return nil
}

// IsSerializationFailure проверяет, что ошибка - конфликт сериализации PostgreSQL
func IsSerializationFailure(err error) bool {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return pqErr.Code == codeSerializationFailure || pqErr.Code == codeDeadlockDetected
	}
	return false
}
