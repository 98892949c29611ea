package main

import (
	"context"
	"database/sql"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/mux"
	_ "github.com/lib/pq"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"

	bookingTransitionHandler "github.com/m04kA/SMC-FlightScheduler/internal/api/handlers/booking_transition"
	calculateFeeHandler "github.com/m04kA/SMC-FlightScheduler/internal/api/handlers/calculate_cancellation_fee"
	cancelBookingHandler "github.com/m04kA/SMC-FlightScheduler/internal/api/handlers/cancel_booking"
	checkAvailabilityHandler "github.com/m04kA/SMC-FlightScheduler/internal/api/handlers/check_availability"
	checkConflictsHandler "github.com/m04kA/SMC-FlightScheduler/internal/api/handlers/check_conflicts"
	createBookingHandler "github.com/m04kA/SMC-FlightScheduler/internal/api/handlers/create_booking"
	findWaitlistMatchesHandler "github.com/m04kA/SMC-FlightScheduler/internal/api/handlers/find_waitlist_matches"
	getAvailableSlotsHandler "github.com/m04kA/SMC-FlightScheduler/internal/api/handlers/get_available_slots"
	getBookingHandler "github.com/m04kA/SMC-FlightScheduler/internal/api/handlers/get_booking"
	getMergedRulesHandler "github.com/m04kA/SMC-FlightScheduler/internal/api/handlers/get_merged_rules"
	getPatternOccurrencesHandler "github.com/m04kA/SMC-FlightScheduler/internal/api/handlers/get_pattern_occurrences"
	getResourceBookingsHandler "github.com/m04kA/SMC-FlightScheduler/internal/api/handlers/get_resource_bookings"
	getWaitlistEntryHandler "github.com/m04kA/SMC-FlightScheduler/internal/api/handlers/get_waitlist_entry"
	getWaitlistStatisticsHandler "github.com/m04kA/SMC-FlightScheduler/internal/api/handlers/get_waitlist_statistics"
	materializePatternHandler "github.com/m04kA/SMC-FlightScheduler/internal/api/handlers/materialize_pattern"
	sendWaitlistOfferHandler "github.com/m04kA/SMC-FlightScheduler/internal/api/handlers/send_waitlist_offer"
	validateRulesHandler "github.com/m04kA/SMC-FlightScheduler/internal/api/handlers/validate_rules"
	waitlistActionHandler "github.com/m04kA/SMC-FlightScheduler/internal/api/handlers/waitlist_action"
	"github.com/m04kA/SMC-FlightScheduler/internal/api/middleware"
	"github.com/m04kA/SMC-FlightScheduler/internal/config"
	"github.com/m04kA/SMC-FlightScheduler/internal/infra/events"
	"github.com/m04kA/SMC-FlightScheduler/internal/infra/lock"
	availabilityRepo "github.com/m04kA/SMC-FlightScheduler/internal/infra/storage/availability"
	bookingRepo "github.com/m04kA/SMC-FlightScheduler/internal/infra/storage/booking"
	patternRepo "github.com/m04kA/SMC-FlightScheduler/internal/infra/storage/pattern"
	ruleRepo "github.com/m04kA/SMC-FlightScheduler/internal/infra/storage/rule"
	waitlistRepo "github.com/m04kA/SMC-FlightScheduler/internal/infra/storage/waitlist"
	availabilityService "github.com/m04kA/SMC-FlightScheduler/internal/service/availability"
	bookingsService "github.com/m04kA/SMC-FlightScheduler/internal/service/bookings"
	conflictsService "github.com/m04kA/SMC-FlightScheduler/internal/service/conflicts"
	recurrenceService "github.com/m04kA/SMC-FlightScheduler/internal/service/recurrence"
	rulesService "github.com/m04kA/SMC-FlightScheduler/internal/service/rules"
	waitlistService "github.com/m04kA/SMC-FlightScheduler/internal/service/waitlist"
	cancelBookingUC "github.com/m04kA/SMC-FlightScheduler/internal/usecase/cancel_booking"
	createBookingUC "github.com/m04kA/SMC-FlightScheduler/internal/usecase/create_booking"
	materializePatternUC "github.com/m04kA/SMC-FlightScheduler/internal/usecase/materialize_pattern"
	"github.com/m04kA/SMC-FlightScheduler/pkg/dbmetrics"
	"github.com/m04kA/SMC-FlightScheduler/pkg/logger"
	"github.com/m04kA/SMC-FlightScheduler/pkg/metrics"
	"github.com/m04kA/SMC-FlightScheduler/pkg/txmanager"
)

// database объединяет чтение/запись и открытие транзакций (*dbmetrics.DB и *dbmetrics.PlainDB)
type database interface {
	dbmetrics.DBExecutor
	dbmetrics.TxBeginner
}

// resourceLocker блокировка ресурсов на время создания бронирования
type resourceLocker interface {
	Acquire(ctx context.Context, keys []string) (*lock.Lock, error)
	Release(ctx context.Context, l *lock.Lock)
}

// eventPublisher публикация событий с закрытием при остановке
type eventPublisher interface {
	Publish(ctx context.Context, event events.Event) error
	Close() error
}

func main() {
	configPath := "config.toml"
	if p := os.Getenv("CONFIG_PATH"); p != "" {
		configPath = p
	}

	// Загружаем конфигурацию
	cfg, err := config.Load(configPath)
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}

	// Инициализируем логгер
	log, err := logger.New(cfg.Logs.File, cfg.Logs.Level)
	if err != nil {
		fmt.Printf("Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Close()

	log.Info("Starting SMC-FlightScheduler...")
	log.Info("Configuration loaded from %s", configPath)

	schedule, err := cfg.Scheduling.WeeklySchedule()
	if err != nil {
		log.Fatal("Invalid scheduling config: %v", err)
	}

	// Инициализируем метрики (если включены)
	var metricsCollector *metrics.Metrics
	stopMetricsCh := make(chan struct{})

	if cfg.Metrics.Enabled {
		metricsCollector = metrics.New(cfg.Metrics.ServiceName)
		log.Info("Metrics enabled at %s", cfg.Metrics.Path)
	}

	// Подключаемся к базе данных
	sqlDB, err := sql.Open("postgres", cfg.Database.DSN())
	if err != nil {
		log.Fatal("Failed to connect to database: %v", err)
	}
	defer sqlDB.Close()

	// Настраиваем connection pool
	sqlDB.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	sqlDB.SetMaxIdleConns(cfg.Database.MaxIdleConns)
	sqlDB.SetConnMaxLifetime(time.Duration(cfg.Database.ConnMaxLifetime) * time.Second)

	// Проверяем соединение
	if err := sqlDB.Ping(); err != nil {
		log.Fatal("Failed to ping database: %v", err)
	}
	log.Info("Successfully connected to database (host=%s, port=%d, db=%s)",
		cfg.Database.Host, cfg.Database.Port, cfg.Database.DBName)

	var (
		db      database
		retries txmanager.RetryCounter
	)
	if cfg.Metrics.Enabled {
		db = dbmetrics.WrapWithDefault(sqlDB, metricsCollector, stopMetricsCh)
		retries = metricsCollector.TxRetriesTotal
		log.Info("Database metrics collection started")
	} else {
		db = &dbmetrics.PlainDB{DB: sqlDB}
	}
	txMgr := txmanager.NewTransactionManager(db, cfg.Scheduling.TxMaxRetries, retries)

	// Блокировка ресурсов через Redis (если включена)
	var locker resourceLocker = lock.NopLocker{}
	if cfg.Redis.Enabled {
		redisClient := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		defer redisClient.Close()

		if err := redisClient.Ping(context.Background()).Err(); err != nil {
			log.Fatal("Failed to ping redis: %v", err)
		}
		locker = lock.NewRedisLocker(redisClient, lock.Options{
			TTL:        time.Duration(cfg.Scheduling.LockTTLSeconds) * time.Second,
			Retries:    cfg.Redis.LockRetries,
			RetryDelay: time.Duration(cfg.Redis.RetryDelayMs) * time.Millisecond,
		}, log)
		log.Info("Redis resource lock enabled (addr=%s, ttl=%ds)", cfg.Redis.Addr, cfg.Scheduling.LockTTLSeconds)
	}

	// Публикация событий в Kafka (если включена)
	var publisher eventPublisher = events.NopPublisher{}
	if cfg.Kafka.Enabled {
		publisher = events.NewKafkaPublisher(
			cfg.Kafka.Brokers,
			cfg.Kafka.Topic,
			time.Duration(cfg.Kafka.WriteTimeoutMs)*time.Millisecond,
			log,
		)
		log.Info("Kafka publisher enabled (brokers=%v, topic=%s)", cfg.Kafka.Brokers, cfg.Kafka.Topic)
	}
	defer func() {
		if err := publisher.Close(); err != nil {
			log.Error("Failed to close event publisher: %v", err)
		}
	}()

	// Инициализируем репозитории
	bookingRepository := bookingRepo.NewRepository(db)
	availabilityRepository := availabilityRepo.NewRepository(db)
	ruleRepository := ruleRepo.NewRepository(db)
	patternRepository := patternRepo.NewRepository(db)
	waitlistRepository := waitlistRepo.NewRepository(db)

	// Инициализируем сервисы
	conflictSvc := conflictsService.NewService(bookingRepository, log)
	availabilitySvc := availabilityService.NewService(
		availabilityRepository,
		conflictSvc,
		schedule,
		cfg.Scheduling.DefaultSlotIntervalMinutes,
		availabilityService.Buffers{
			PreflightMinutes:  cfg.Scheduling.DefaultPreflightMinutes,
			PostflightMinutes: cfg.Scheduling.DefaultPostflightMinutes,
		},
		nil,
		log,
	)
	rulesSvc := rulesService.NewService(ruleRepository, nil, log)
	recurrenceSvc := recurrenceService.NewService(patternRepository, nil, log)
	bookingSvc := bookingsService.NewService(
		bookingRepository,
		availabilitySvc,
		rulesSvc,
		txMgr,
		publisher,
		nil,
		log,
	)
	waitlistSvc := waitlistService.NewService(
		waitlistRepository,
		bookingSvc,
		publisher,
		cfg.Scheduling.DefaultOfferExpiresHours,
		nil,
		log,
	)

	// Инициализируем use cases
	createBookingUseCase := createBookingUC.NewUseCase(
		bookingRepository,
		rulesSvc,
		bookingSvc,
		locker,
		txMgr,
		publisher,
		createBookingUC.Defaults{
			PreflightMinutes:  cfg.Scheduling.DefaultPreflightMinutes,
			PostflightMinutes: cfg.Scheduling.DefaultPostflightMinutes,
		},
		nil,
		log,
	)
	cancelBookingUseCase := cancelBookingUC.NewUseCase(bookingSvc, waitlistSvc, log)
	materializePatternUseCase := materializePatternUC.NewUseCase(recurrenceSvc, createBookingUseCase, log)

	// Инициализируем handlers
	createBooking := createBookingHandler.NewHandler(createBookingUseCase, log)
	checkConflicts := checkConflictsHandler.NewHandler(conflictSvc, log)
	getResourceBookings := getResourceBookingsHandler.NewHandler(conflictSvc, log)
	getBooking := getBookingHandler.NewHandler(bookingSvc, log)
	bookingTransition := bookingTransitionHandler.NewHandler(bookingSvc, log)
	cancelBooking := cancelBookingHandler.NewHandler(cancelBookingUseCase, log)
	checkAvailability := checkAvailabilityHandler.NewHandler(availabilitySvc, log)
	getAvailableSlots := getAvailableSlotsHandler.NewHandler(availabilitySvc, log)
	validateRules := validateRulesHandler.NewHandler(rulesSvc, log)
	getMergedRules := getMergedRulesHandler.NewHandler(rulesSvc, log)
	calculateFee := calculateFeeHandler.NewHandler(rulesSvc, log)
	getPatternOccurrences := getPatternOccurrencesHandler.NewHandler(recurrenceSvc, log)
	materializePattern := materializePatternHandler.NewHandler(materializePatternUseCase, log)
	sendWaitlistOffer := sendWaitlistOfferHandler.NewHandler(waitlistSvc, log)
	waitlistAction := waitlistActionHandler.NewHandler(waitlistSvc, log)
	getWaitlistEntry := getWaitlistEntryHandler.NewHandler(waitlistSvc, log)
	findWaitlistMatches := findWaitlistMatchesHandler.NewHandler(waitlistSvc, log)
	getWaitlistStatistics := getWaitlistStatisticsHandler.NewHandler(waitlistSvc, log)

	// Настраиваем роутер
	r := mux.NewRouter()

	// Добавляем metrics middleware (если метрики включены)
	if cfg.Metrics.Enabled {
		r.Use(middleware.MetricsMiddleware(metricsCollector))
		r.Handle(cfg.Metrics.Path, promhttp.Handler()).Methods(http.MethodGet)
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}

	// Все маршруты API требуют X-User-ID и X-Organization-ID
	api := r.PathPrefix("/api/v1").Subrouter()
	api.Use(middleware.Auth)

	// --- Бронирования ---
	// Статические пути и cancel регистрируются раньше шаблонов {bookingId} и {action}
	api.HandleFunc("/bookings", createBooking.Handle).Methods(http.MethodPost)
	api.HandleFunc("/bookings", getResourceBookings.Handle).Methods(http.MethodGet)
	api.HandleFunc("/bookings/check-conflicts", checkConflicts.Handle).Methods(http.MethodPost)
	api.HandleFunc("/bookings/{bookingId}", getBooking.Handle).Methods(http.MethodGet)
	api.HandleFunc("/bookings/{bookingId}/cancel", cancelBooking.Handle).Methods(http.MethodPost)
	api.HandleFunc("/bookings/{bookingId}/{action}", bookingTransition.Handle).Methods(http.MethodPost)

	// --- Доступность ---
	api.HandleFunc("/availability/check", checkAvailability.Handle).Methods(http.MethodPost)
	api.HandleFunc("/availability/slots", getAvailableSlots.Handle).Methods(http.MethodGet)

	// --- Правила ---
	api.HandleFunc("/rules/validate", validateRules.Handle).Methods(http.MethodPost)
	api.HandleFunc("/rules/merged", getMergedRules.Handle).Methods(http.MethodGet)
	api.HandleFunc("/rules/cancellation-fee", calculateFee.Handle).Methods(http.MethodPost)

	// --- Повторяющиеся шаблоны ---
	api.HandleFunc("/patterns/{patternId}/occurrences", getPatternOccurrences.Handle).Methods(http.MethodGet)
	api.HandleFunc("/patterns/{patternId}/materialize", materializePattern.Handle).Methods(http.MethodPost)

	// --- Лист ожидания ---
	api.HandleFunc("/waitlist/statistics", getWaitlistStatistics.Handle).Methods(http.MethodGet)
	api.HandleFunc("/waitlist/matches", findWaitlistMatches.Handle).Methods(http.MethodPost)
	api.HandleFunc("/waitlist/{entryId}", getWaitlistEntry.Handle).Methods(http.MethodGet)
	api.HandleFunc("/waitlist/{entryId}/offer", sendWaitlistOffer.Handle).Methods(http.MethodPost)
	api.HandleFunc("/waitlist/{entryId}/{action}", waitlistAction.Handle).Methods(http.MethodPost)

	// Создаем HTTP сервер
	addr := fmt.Sprintf(":%d", cfg.Server.HTTPPort)
	srv := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
		IdleTimeout:  time.Duration(cfg.Server.IdleTimeout) * time.Second,
	}

	// Graceful shutdown
	go func() {
		log.Info("Starting server on %s", addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Server failed to start: %v", err)
		}
	}()

	// Ожидаем сигнал завершения
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down server...")

	// Останавливаем сбор метрик connection pool
	close(stopMetricsCh)

	shutdownCtx, cancel := context.WithTimeout(
		context.Background(),
		time.Duration(cfg.Server.ShutdownTimeout)*time.Second,
	)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("Server forced to shutdown: %v", err)
	}

	log.Info("Server stopped gracefully")
}
