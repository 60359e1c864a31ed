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

	availabilityRangeHandler "github.com/m04kA/SMC-AppointmentService/internal/api/handlers/availability_range"
	blockedIntervalsHandler "github.com/m04kA/SMC-AppointmentService/internal/api/handlers/blocked_intervals"
	businessHoursHandler "github.com/m04kA/SMC-AppointmentService/internal/api/handlers/business_hours"
	cancelAppointmentHandler "github.com/m04kA/SMC-AppointmentService/internal/api/handlers/cancel_appointment"
	checkSlotHandler "github.com/m04kA/SMC-AppointmentService/internal/api/handlers/check_slot"
	createAppointmentHandler "github.com/m04kA/SMC-AppointmentService/internal/api/handlers/create_appointment"
	generateSchedulesHandler "github.com/m04kA/SMC-AppointmentService/internal/api/handlers/generate_schedules"
	getAppointmentHandler "github.com/m04kA/SMC-AppointmentService/internal/api/handlers/get_appointment"
	getAvailableSlotsHandler "github.com/m04kA/SMC-AppointmentService/internal/api/handlers/get_available_slots"
	holidaysHandler "github.com/m04kA/SMC-AppointmentService/internal/api/handlers/holidays"
	listAppointmentsHandler "github.com/m04kA/SMC-AppointmentService/internal/api/handlers/list_appointments"
	settingsHandler "github.com/m04kA/SMC-AppointmentService/internal/api/handlers/settings"
	updateStatusHandler "github.com/m04kA/SMC-AppointmentService/internal/api/handlers/update_appointment_status"
	"github.com/m04kA/SMC-AppointmentService/internal/api/middleware"
	"github.com/m04kA/SMC-AppointmentService/internal/config"
	appointmentRepo "github.com/m04kA/SMC-AppointmentService/internal/infra/storage/appointment"
	blockedintervalRepo "github.com/m04kA/SMC-AppointmentService/internal/infra/storage/blockedinterval"
	businesshoursRepo "github.com/m04kA/SMC-AppointmentService/internal/infra/storage/businesshours"
	holidayRepo "github.com/m04kA/SMC-AppointmentService/internal/infra/storage/holiday"
	scheduleRepo "github.com/m04kA/SMC-AppointmentService/internal/infra/storage/schedule"
	settingsRepo "github.com/m04kA/SMC-AppointmentService/internal/infra/storage/settings"
	catalogServiceClient "github.com/m04kA/SMC-AppointmentService/internal/integrations/catalogservice"
	"github.com/m04kA/SMC-AppointmentService/internal/notifier"
	appointmentsService "github.com/m04kA/SMC-AppointmentService/internal/service/appointments"
	blocksService "github.com/m04kA/SMC-AppointmentService/internal/service/blocks"
	calendarService "github.com/m04kA/SMC-AppointmentService/internal/service/calendar"
	availabilityRangeUC "github.com/m04kA/SMC-AppointmentService/internal/usecase/availability_range"
	checkSlotUC "github.com/m04kA/SMC-AppointmentService/internal/usecase/check_slot"
	createAppointmentUC "github.com/m04kA/SMC-AppointmentService/internal/usecase/create_appointment"
	generateSchedulesUC "github.com/m04kA/SMC-AppointmentService/internal/usecase/generate_schedules"
	getAvailableSlotsUC "github.com/m04kA/SMC-AppointmentService/internal/usecase/get_available_slots"
	"github.com/m04kA/SMC-AppointmentService/pkg/dbmetrics"
	"github.com/m04kA/SMC-AppointmentService/pkg/logger"
	"github.com/m04kA/SMC-AppointmentService/pkg/metrics"
	"github.com/m04kA/SMC-AppointmentService/pkg/simpletxmanager"
	"github.com/m04kA/SMC-AppointmentService/pkg/txmanager"
)

// noopMetrics заглушка бизнес-метрик при выключенном сборе
type noopMetrics struct{}

func (noopMetrics) IncAppointmentCreated(string) {}
func (noopMetrics) IncBookingConflict()          {}

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

	log.Info("Starting SMC-AppointmentService...")
	log.Info("Configuration loaded from config.toml")

	// Инициализируем метрики (если включены)
	var metricsCollector *metrics.Metrics
	var wrappedDB *dbmetrics.DB
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
	db.SetConnMaxLifetime(time.Duration(cfg.Database.ConnMaxLifetime) * time.Second)

	// Проверяем соединение
	if err := db.Ping(); err != nil {
		log.Fatal("Failed to ping database: %v", err)
	}
	log.Info("Successfully connected to database (host=%s, port=%d, db=%s)",
		cfg.Database.Host, cfg.Database.Port, cfg.Database.DBName)

	// Инициализируем клиент каталога услуг
	catalogClient := catalogServiceClient.NewClient(
		cfg.CatalogService.URL,
		time.Duration(cfg.CatalogService.Timeout)*time.Second,
		time.Duration(cfg.CatalogService.CacheTTL)*time.Second,
		log,
	)
	log.Info("CatalogService client initialized (url=%s, timeout=%ds, cache_ttl=%ds)",
		cfg.CatalogService.URL, cfg.CatalogService.Timeout, cfg.CatalogService.CacheTTL)

	// Инициализируем репозитории (с метриками или без)
	var (
		appointmentRepository     *appointmentRepo.Repository
		scheduleRepository        *scheduleRepo.Repository
		blockedintervalRepository *blockedintervalRepo.Repository
		businesshoursRepository   *businesshoursRepo.Repository
		holidayRepository         *holidayRepo.Repository
		settingsRepository        *settingsRepo.Repository
	)

	// Интерфейс для transaction manager (используется в usecases)
	type TxManager interface {
		DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
	}
	var txMgr TxManager

	if cfg.Metrics.Enabled {
		wrappedDB = dbmetrics.WrapWithDefault(db, metricsCollector, stopMetricsCh)
		log.Info("Database metrics collection started")

		appointmentRepository = appointmentRepo.NewRepository(wrappedDB)
		scheduleRepository = scheduleRepo.NewRepository(wrappedDB)
		blockedintervalRepository = blockedintervalRepo.NewRepository(wrappedDB)
		businesshoursRepository = businesshoursRepo.NewRepository(wrappedDB)
		holidayRepository = holidayRepo.NewRepository(wrappedDB)
		settingsRepository = settingsRepo.NewRepository(wrappedDB)
		txMgr = txmanager.NewTransactionManager(wrappedDB)
	} else {
		appointmentRepository = appointmentRepo.NewRepository(db)
		scheduleRepository = scheduleRepo.NewRepository(db)
		blockedintervalRepository = blockedintervalRepo.NewRepository(db)
		businesshoursRepository = businesshoursRepo.NewRepository(db)
		holidayRepository = holidayRepo.NewRepository(db)
		settingsRepository = settingsRepo.NewRepository(db)
		txMgr = simpletxmanager.NewTransactionManager(db)
	}

	// Инициализируем сервисы
	calendarSvc := calendarService.NewService(
		businesshoursRepository,
		holidayRepository,
		settingsRepository,
		log,
	)
	appointmentsSvc := appointmentsService.NewService(
		appointmentRepository,
		log,
	)
	blocksSvc := blocksService.NewService(
		blockedintervalRepository,
		log,
	)

	// Инициализируем нотификатор
	var appointmentNotifier createAppointmentUC.Notifier
	if cfg.Notifications.Enabled {
		appointmentNotifier = notifier.NewEmailNotifier(
			cfg.Notifications.SMTPHost,
			cfg.Notifications.SMTPPort,
			cfg.Notifications.SMTPUser,
			cfg.Notifications.SMTPPassword,
			cfg.Notifications.FromAddress,
			log,
		)
		log.Info("Email notifications enabled (smtp=%s:%d)",
			cfg.Notifications.SMTPHost, cfg.Notifications.SMTPPort)
	} else {
		appointmentNotifier = notifier.NoopNotifier{}
		log.Info("Email notifications disabled")
	}

	// Бизнес-метрики бронирования
	var bookingMetrics createAppointmentUC.Metrics = noopMetrics{}
	if cfg.Metrics.Enabled {
		bookingMetrics = metricsCollector
	}

	// Инициализируем use cases
	getAvailableSlotsUseCase := getAvailableSlotsUC.NewUseCase(
		appointmentRepository,
		blockedintervalRepository,
		catalogClient,
		calendarSvc,
		log,
	)

	availabilityRangeUseCase := availabilityRangeUC.NewUseCase(
		getAvailableSlotsUseCase,
		log,
	)

	checkSlotUseCase := checkSlotUC.NewUseCase(
		appointmentRepository,
		blockedintervalRepository,
		catalogClient,
		calendarSvc,
		log,
	)

	createAppointmentUseCase := createAppointmentUC.NewUseCase(
		appointmentRepository,
		scheduleRepository,
		blockedintervalRepository,
		catalogClient,
		calendarSvc,
		txMgr,
		appointmentNotifier,
		bookingMetrics,
		log,
	)

	generateSchedulesUseCase := generateSchedulesUC.NewUseCase(
		scheduleRepository,
		catalogClient,
		calendarSvc,
		log,
	)

	// Инициализируем handlers
	getAvailableSlots := getAvailableSlotsHandler.NewHandler(getAvailableSlotsUseCase, log)
	availabilityRange := availabilityRangeHandler.NewHandler(availabilityRangeUseCase, log)
	checkSlot := checkSlotHandler.NewHandler(checkSlotUseCase, log)
	createAppointment := createAppointmentHandler.NewHandler(createAppointmentUseCase, log)
	getAppointment := getAppointmentHandler.NewHandler(appointmentsSvc, log)
	listAppointments := listAppointmentsHandler.NewHandler(appointmentsSvc, log)
	updateStatus := updateStatusHandler.NewHandler(appointmentsSvc, log)
	cancelAppointment := cancelAppointmentHandler.NewHandler(appointmentsSvc, log)
	generateSchedules := generateSchedulesHandler.NewHandler(generateSchedulesUseCase, log)
	blockedIntervals := blockedIntervalsHandler.NewHandler(blocksSvc, log)
	businessHours := businessHoursHandler.NewHandler(calendarSvc, log)
	holidays := holidaysHandler.NewHandler(calendarSvc, log)
	settings := settingsHandler.NewHandler(calendarSvc, log)

	// Настраиваем роутер
	r := mux.NewRouter()

	// Добавляем metrics middleware (если метрики включены)
	if cfg.Metrics.Enabled {
		r.Use(middleware.MetricsMiddleware(metricsCollector, cfg.Metrics.ServiceName))
		log.Info("HTTP metrics middleware enabled")
	}

	// Metrics endpoint (публичный, без аутентификации)
	if cfg.Metrics.Enabled {
		r.Handle(cfg.Metrics.Path, promhttp.Handler()).Methods(http.MethodGet)
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}

	// API prefix
	api := r.PathPrefix("/api/v1").Subrouter()

	// ============================================================
	// PUBLIC ROUTES (без аутентификации)
	// ============================================================

	// Доступные слоты на дату
	api.HandleFunc("/services/{serviceId}/available-slots",
		getAvailableSlots.Handle).Methods(http.MethodGet)

	// Доступность по диапазону дат
	api.HandleFunc("/services/{serviceId}/availability-range",
		availabilityRange.Handle).Methods(http.MethodGet)

	// Проверка доступности конкретного времени
	api.HandleFunc("/services/{serviceId}/slot-availability",
		checkSlot.Handle).Methods(http.MethodGet)

	// Создание записи (гостевое бронирование)
	api.HandleFunc("/appointments", createAppointment.Handle).Methods(http.MethodPost)

	// Получение записи по ID (код подтверждения знает только клиент)
	api.HandleFunc("/appointments/{appointmentId}", getAppointment.Handle).Methods(http.MethodGet)

	// ============================================================
	// PROTECTED ROUTES (требуют X-User-ID header)
	// ============================================================

	protected := api.PathPrefix("").Subrouter()
	protected.Use(middleware.Auth)

	// --- Записи (для администраторов) ---
	// Список записей с фильтрацией
	protected.HandleFunc("/appointments", listAppointments.Handle).Methods(http.MethodGet)

	// Обновление статуса записи
	protected.HandleFunc("/appointments/{appointmentId}/status", updateStatus.Handle).Methods(http.MethodPatch)

	// Отмена записи
	protected.HandleFunc("/appointments/{appointmentId}/cancel", cancelAppointment.Handle).Methods(http.MethodPatch)

	// --- Администрирование расписания ---
	// Предгенерация слотов расписания
	protected.HandleFunc("/admin/schedules/generate", generateSchedules.Handle).Methods(http.MethodPost)

	// Блокировки времени
	protected.HandleFunc("/admin/blocked-intervals", blockedIntervals.HandleBlock).Methods(http.MethodPost)
	protected.HandleFunc("/admin/blocked-intervals", blockedIntervals.HandleUnblock).Methods(http.MethodDelete)
	protected.HandleFunc("/admin/blocked-intervals", blockedIntervals.HandleList).Methods(http.MethodGet)

	// Рабочие часы
	protected.HandleFunc("/admin/business-hours", businessHours.HandleUpsert).Methods(http.MethodPut)
	protected.HandleFunc("/admin/business-hours", businessHours.HandleList).Methods(http.MethodGet)

	// Праздничные дни
	protected.HandleFunc("/admin/holidays", holidays.HandleCreate).Methods(http.MethodPost)
	protected.HandleFunc("/admin/holidays", holidays.HandleList).Methods(http.MethodGet)
	protected.HandleFunc("/admin/holidays/{holidayId}", holidays.HandleDelete).Methods(http.MethodDelete)

	// Пауза между слотами
	protected.HandleFunc("/admin/settings/buffer", settings.HandleGetBuffer).Methods(http.MethodGet)
	protected.HandleFunc("/admin/settings/buffer", settings.HandleUpdateBuffer).Methods(http.MethodPut)

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
