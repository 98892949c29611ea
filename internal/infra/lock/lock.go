package lock

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/m04kA/SMC-FlightScheduler/internal/domain"
)

// releaseScript удаляет ключ только если он всё ещё принадлежит нашему токену
var releaseScript = redis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("DEL", KEYS[1])
end
return 0
`)

// Logger интерфейс для логирования
type Logger interface {
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// Lock набор захваченных ключей с общим токеном
type Lock struct {
	keys  []string
	token string
}

// Keys возвращает захваченные ключи
func (l *Lock) Keys() []string {
	return l.keys
}

// Options параметры захвата
type Options struct {
	TTL        time.Duration
	Retries    int
	RetryDelay time.Duration
}

// RedisLocker короткоживущая блокировка ресурсов через SET NX PX
type RedisLocker struct {
	client *redis.Client
	opts   Options
	logger Logger
}

// NewRedisLocker создает новый экземпляр RedisLocker
func NewRedisLocker(client *redis.Client, opts Options, logger Logger) *RedisLocker {
	if opts.TTL <= 0 {
		opts.TTL = 10 * time.Second
	}
	if opts.RetryDelay <= 0 {
		opts.RetryDelay = 50 * time.Millisecond
	}
	return &RedisLocker{
		client: client,
		opts:   opts,
		logger: logger,
	}
}

// ResourceKeys строит отсортированные ключи lock:booking:<org>:<type>:<id> без повторов
// Одинаковый порядок захвата у всех запросов исключает взаимную блокировку.
func ResourceKeys(organizationID uuid.UUID, resources []domain.ResourceRef) []string {
	seen := make(map[string]struct{}, len(resources))
	keys := make([]string, 0, len(resources))

	for _, r := range resources {
		key := fmt.Sprintf("lock:booking:%s:%s:%s", organizationID, r.Type, r.ID)
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		keys = append(keys, key)
	}

	sort.Strings(keys)
	return keys
}

// Acquire захватывает все ключи или ни одного
// При занятом ключе уже взятые освобождаются, попытка повторяется до opts.Retries раз.
func (l *RedisLocker) Acquire(ctx context.Context, keys []string) (*Lock, error) {
	lock := &Lock{keys: keys, token: uuid.NewString()}

	for attempt := 0; ; attempt++ {
		acquired, err := l.tryAcquire(ctx, lock)
		if err != nil {
			return nil, err
		}
		if acquired {
			return lock, nil
		}

		if attempt >= l.opts.Retries {
			l.logger.Warn("Acquire: resources busy after %d attempts: %v", attempt+1, keys)
			return nil, fmt.Errorf("%w: %v", ErrResourceBusy, keys)
		}

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(l.opts.RetryDelay * time.Duration(attempt+1)):
		}
	}
}

func (l *RedisLocker) tryAcquire(ctx context.Context, lock *Lock) (bool, error) {
	taken := make([]string, 0, len(lock.keys))

	for _, key := range lock.keys {
		ok, err := l.client.SetNX(ctx, key, lock.token, l.opts.TTL).Result()
		if err != nil {
			l.releaseKeys(ctx, taken, lock.token)
			return false, fmt.Errorf("%w: SETNX %s: %w", ErrRedis, key, err)
		}
		if !ok {
			l.releaseKeys(ctx, taken, lock.token)
			return false, nil
		}
		taken = append(taken, key)
	}

	return true, nil
}

// Release освобождает ключи блокировки
func (l *RedisLocker) Release(ctx context.Context, lock *Lock) {
	if lock == nil {
		return
	}
	l.releaseKeys(ctx, lock.keys, lock.token)
}

func (l *RedisLocker) releaseKeys(ctx context.Context, keys []string, token string) {
	for _, key := range keys {
		if err := releaseScript.Run(ctx, l.client, []string{key}, token).Err(); err != nil {
			// ключ истечёт сам по TTL
			l.logger.Error("Release: failed to release %s: %v", key, err)
		}
	}
}

// NopLocker используется, когда Redis выключен; атомарность обеспечивает сериализуемая транзакция
type NopLocker struct{}

func (NopLocker) Acquire(_ context.Context, keys []string) (*Lock, error) {
	return &Lock{keys: keys}, nil
}

func (NopLocker) Release(context.Context, *Lock) {}
