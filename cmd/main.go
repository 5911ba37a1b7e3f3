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

	cancelBookingHandler "github.com/jazyl-tech/JZL-BookingService/internal/api/handlers/cancel_booking"
	createBookingHandler "github.com/jazyl-tech/JZL-BookingService/internal/api/handlers/create_booking"
	createExceptionHandler "github.com/jazyl-tech/JZL-BookingService/internal/api/handlers/create_schedule_exception"
	deleteExceptionHandler "github.com/jazyl-tech/JZL-BookingService/internal/api/handlers/delete_schedule_exception"
	getAvailableSlotsHandler "github.com/jazyl-tech/JZL-BookingService/internal/api/handlers/get_available_slots"
	getBookingHandler "github.com/jazyl-tech/JZL-BookingService/internal/api/handlers/get_booking"
	getClientBookingsHandler "github.com/jazyl-tech/JZL-BookingService/internal/api/handlers/get_client_bookings"
	getSalonBookingsHandler "github.com/jazyl-tech/JZL-BookingService/internal/api/handlers/get_salon_bookings"
	getScheduleHandler "github.com/jazyl-tech/JZL-BookingService/internal/api/handlers/get_schedule"
	updateBookingStatusHandler "github.com/jazyl-tech/JZL-BookingService/internal/api/handlers/update_booking_status"
	updateScheduleHandler "github.com/jazyl-tech/JZL-BookingService/internal/api/handlers/update_schedule"
	"github.com/jazyl-tech/JZL-BookingService/internal/api/middleware"
	"github.com/jazyl-tech/JZL-BookingService/internal/config"
	bookingRepo "github.com/jazyl-tech/JZL-BookingService/internal/infra/storage/booking"
	scheduleRepo "github.com/jazyl-tech/JZL-BookingService/internal/infra/storage/schedule"
	catalogServiceClient "github.com/jazyl-tech/JZL-BookingService/internal/integrations/catalogservice"
	notifyServiceClient "github.com/jazyl-tech/JZL-BookingService/internal/integrations/notifyservice"
	bookingsService "github.com/jazyl-tech/JZL-BookingService/internal/service/bookings"
	scheduleService "github.com/jazyl-tech/JZL-BookingService/internal/service/schedule"
	"github.com/jazyl-tech/JZL-BookingService/internal/sweeps"
	createBookingUC "github.com/jazyl-tech/JZL-BookingService/internal/usecase/create_booking"
	getAvailableSlotsUC "github.com/jazyl-tech/JZL-BookingService/internal/usecase/get_available_slots"
	updateBookingStatusUC "github.com/jazyl-tech/JZL-BookingService/internal/usecase/update_booking_status"
	"github.com/jazyl-tech/JZL-BookingService/pkg/logger"
	"github.com/jazyl-tech/JZL-BookingService/pkg/metrics"
	"github.com/jazyl-tech/JZL-BookingService/pkg/txmanager"
)

const dbStatsInterval = 15 * time.Second

func main() {
	// Загружаем конфигурацию
	cfg, err := config.Load("config.toml")
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

	log.Info("Starting JZL-BookingService...")
	log.Info("Configuration loaded from config.toml")

	// Инициализируем метрики (если включены)
	var metricsCollector *metrics.Metrics
	stopMetricsCh := make(chan struct{})

	if cfg.Metrics.Enabled {
		metricsCollector = metrics.New(cfg.Metrics.ServiceName)
		log.Info("Metrics enabled at %s", cfg.Metrics.Path)
	}

	// Подключаемся к базе данных
	db, err := sql.Open("postgres", cfg.Database.DSN())
	if err != nil {
		log.Fatal("Failed to connect to database: %v", err)
	}
	defer db.Close()

	// Настраиваем connection pool
	db.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	db.SetMaxIdleConns(cfg.Database.MaxIdleConns)
	db.SetConnMaxLifetime(cfg.Database.ConnMaxLifetimeDuration())

	// Проверяем соединение
	if err := db.Ping(); err != nil {
		log.Fatal("Failed to ping database: %v", err)
	}
	log.Info("Successfully connected to database (host=%s, port=%d, db=%s)",
		cfg.Database.Host, cfg.Database.Port, cfg.Database.Name)

	if cfg.Metrics.Enabled {
		metricsCollector.CollectDBStats(db, dbStatsInterval, stopMetricsCh)
		log.Info("Database pool metrics collection started")
	}

	// Инициализируем интеграционных клиентов
	catalogClient := catalogServiceClient.NewClient(
		cfg.CatalogService.BaseURL,
		time.Duration(cfg.CatalogService.Timeout)*time.Second,
		log,
	)
	notifyClient := notifyServiceClient.NewClient(
		cfg.NotifyService.BaseURL,
		time.Duration(cfg.NotifyService.Timeout)*time.Second,
		log,
	)
	log.Info("Integration clients initialized (CatalogService=%s timeout=%ds, NotifyService=%s timeout=%ds)",
		cfg.CatalogService.BaseURL, cfg.CatalogService.Timeout,
		cfg.NotifyService.BaseURL, cfg.NotifyService.Timeout)

	// Инициализируем репозитории и transaction manager
	bookingRepository := bookingRepo.NewRepository(db)
	scheduleRepository := scheduleRepo.NewRepository(db)
	txMgr := txmanager.NewTransactionManager(db)

	// Инициализируем use cases.
	// getAvailableSlotsUseCase переиспользуется внутри createBookingUseCase:
	// повторная проверка доступности слота выполняется в той же сериализуемой
	// транзакции через executor из контекста.
	getAvailableSlotsUseCase := getAvailableSlotsUC.NewUseCase(
		bookingRepository,
		scheduleRepository,
		catalogClient,
		log,
	)
	createBookingUseCase := createBookingUC.NewUseCase(
		bookingRepository,
		getAvailableSlotsUseCase,
		catalogClient,
		txMgr,
		log,
	)
	updateBookingStatusUseCase := updateBookingStatusUC.NewUseCase(
		bookingRepository,
		notifyClient,
		log,
	)

	// Инициализируем сервисы
	bookingSvc := bookingsService.NewService(bookingRepository, log)
	scheduleSvc := scheduleService.NewService(
		scheduleRepository,
		catalogClient,
		txMgr,
		log,
	)

	// Инициализируем sweep-джобы жизненного цикла бронирований
	var sweeper *sweeps.Sweeper
	if cfg.Sweeps.Enabled {
		sweeper = sweeps.NewSweeper(bookingRepository, notifyClient, metricsCollector, log)
		if err := sweeper.Start(sweeps.Config{
			RemindersSpec:    cfg.Sweeps.RemindersSpec,
			ReviewsSpec:      cfg.Sweeps.ReviewsSpec,
			AutoCompleteSpec: cfg.Sweeps.AutoCompleteSpec,
			NoShowSpec:       cfg.Sweeps.NoShowSpec,
		}); err != nil {
			log.Fatal("Failed to start sweeper: %v", err)
		}
	}

	// Инициализируем handlers
	getAvailableSlots := getAvailableSlotsHandler.NewHandler(getAvailableSlotsUseCase, log)
	createBooking := createBookingHandler.NewHandler(createBookingUseCase, log)
	updateBookingStatus := updateBookingStatusHandler.NewHandler(updateBookingStatusUseCase, log)
	cancelBooking := cancelBookingHandler.NewHandler(updateBookingStatusUseCase, log)
	getBooking := getBookingHandler.NewHandler(bookingSvc, log)
	getClientBookings := getClientBookingsHandler.NewHandler(bookingSvc, log)
	getSalonBookings := getSalonBookingsHandler.NewHandler(bookingSvc, log)
	getSchedule := getScheduleHandler.NewHandler(scheduleSvc, log)
	updateSchedule := updateScheduleHandler.NewHandler(scheduleSvc, log)
	createException := createExceptionHandler.NewHandler(scheduleSvc, log)
	deleteException := deleteExceptionHandler.NewHandler(scheduleSvc, log)

	// Настраиваем роутер
	r := mux.NewRouter()

	if cfg.Metrics.Enabled {
		r.Use(middleware.Metrics(metricsCollector))
		r.Handle(cfg.Metrics.Path, promhttp.Handler()).Methods(http.MethodGet)
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}

	// API prefix
	api := r.PathPrefix("/api/v1").Subrouter()

	// ============================================================
	// PUBLIC ROUTES (без аутентификации)
	// ============================================================

	// Доступные слоты мастера на дату
	api.HandleFunc("/masters/{masterId}/slots", getAvailableSlots.Handle).Methods(http.MethodGet)

	// Недельное расписание мастера с исключениями
	api.HandleFunc("/masters/{masterId}/schedule", getSchedule.Handle).Methods(http.MethodGet)

	// ============================================================
	// PROTECTED ROUTES (требуют X-User-ID и X-User-Role headers)
	// ============================================================

	protected := api.PathPrefix("").Subrouter()
	protected.Use(middleware.Auth(log))

	// --- Бронирования ---
	protected.HandleFunc("/bookings", createBooking.Handle).Methods(http.MethodPost)
	protected.HandleFunc("/bookings/{id}", getBooking.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/bookings/{id}/status", updateBookingStatus.Handle).Methods(http.MethodPatch)
	protected.HandleFunc("/bookings/{id}/cancel", cancelBooking.Handle).Methods(http.MethodPost)

	// --- История бронирований ---
	protected.HandleFunc("/clients/{clientId}/bookings", getClientBookings.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/salons/{salonId}/bookings", getSalonBookings.Handle).Methods(http.MethodGet)

	// --- Управление расписанием (для сотрудников салона) ---
	protected.HandleFunc("/masters/{masterId}/schedule", updateSchedule.Handle).Methods(http.MethodPut)
	protected.HandleFunc("/masters/{masterId}/schedule/exceptions", createException.Handle).Methods(http.MethodPost)
	protected.HandleFunc("/masters/{masterId}/schedule/exceptions/{id}", deleteException.Handle).Methods(http.MethodDelete)

	// Создаем HTTP сервер
	srv := &http.Server{
		Addr:         cfg.Server.Addr(),
		Handler:      r,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
	}

	// Graceful shutdown
	go func() {
		log.Info("Starting server on %s", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Server failed to start: %v", err)
		}
	}()

	// Ожидаем сигнал завершения
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down server...")

	if sweeper != nil {
		sweeper.Stop()
	}

	if cfg.Metrics.Enabled {
		close(stopMetricsCh)
		log.Info("Metrics collection stopped")
	}

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
