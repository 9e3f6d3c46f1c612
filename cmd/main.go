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

	cancelBookingHandler "github.com/m04kA/SMC-SalonScheduler/internal/api/handlers/cancel_booking"
	checkInHandler "github.com/m04kA/SMC-SalonScheduler/internal/api/handlers/check_in"
	completeServiceHandler "github.com/m04kA/SMC-SalonScheduler/internal/api/handlers/complete_service"
	createBookingHandler "github.com/m04kA/SMC-SalonScheduler/internal/api/handlers/create_booking"
	duplicateBookingHandler "github.com/m04kA/SMC-SalonScheduler/internal/api/handlers/duplicate_booking"
	getAvailabilityHandler "github.com/m04kA/SMC-SalonScheduler/internal/api/handlers/get_availability"
	getAvailableStaffHandler "github.com/m04kA/SMC-SalonScheduler/internal/api/handlers/get_available_staff"
	getBookingHandler "github.com/m04kA/SMC-SalonScheduler/internal/api/handlers/get_booking"
	getPrioritiesHandler "github.com/m04kA/SMC-SalonScheduler/internal/api/handlers/get_priorities"
	getSalonBookingsHandler "github.com/m04kA/SMC-SalonScheduler/internal/api/handlers/get_salon_bookings"
	getSalonSettingsHandler "github.com/m04kA/SMC-SalonScheduler/internal/api/handlers/get_salon_settings"
	getShiftBoardHandler "github.com/m04kA/SMC-SalonScheduler/internal/api/handlers/get_shift_board"
	getStaffBookingsHandler "github.com/m04kA/SMC-SalonScheduler/internal/api/handlers/get_staff_bookings"
	moveBookingHandler "github.com/m04kA/SMC-SalonScheduler/internal/api/handlers/move_booking"
	setPriorityHandler "github.com/m04kA/SMC-SalonScheduler/internal/api/handlers/set_priority"
	startServiceHandler "github.com/m04kA/SMC-SalonScheduler/internal/api/handlers/start_service"
	swapPriorityHandler "github.com/m04kA/SMC-SalonScheduler/internal/api/handlers/swap_priority"
	updateSalonSettingsHandler "github.com/m04kA/SMC-SalonScheduler/internal/api/handlers/update_salon_settings"
	"github.com/m04kA/SMC-SalonScheduler/internal/api/middleware"
	"github.com/m04kA/SMC-SalonScheduler/internal/config"
	"github.com/m04kA/SMC-SalonScheduler/internal/infra/cache/salonhours"
	bookingRepo "github.com/m04kA/SMC-SalonScheduler/internal/infra/storage/booking"
	priorityRepo "github.com/m04kA/SMC-SalonScheduler/internal/infra/storage/priority"
	queueRepo "github.com/m04kA/SMC-SalonScheduler/internal/infra/storage/queue"
	revenueRepo "github.com/m04kA/SMC-SalonScheduler/internal/infra/storage/revenue"
	scheduleRepo "github.com/m04kA/SMC-SalonScheduler/internal/infra/storage/schedule"
	settingsRepo "github.com/m04kA/SMC-SalonScheduler/internal/infra/storage/settings"
	salonServiceClient "github.com/m04kA/SMC-SalonScheduler/internal/integrations/salonservice"
	"github.com/m04kA/SMC-SalonScheduler/internal/jobs"
	availabilityService "github.com/m04kA/SMC-SalonScheduler/internal/service/availability"
	bookingsService "github.com/m04kA/SMC-SalonScheduler/internal/service/bookings"
	conflictsService "github.com/m04kA/SMC-SalonScheduler/internal/service/conflicts"
	priorityService "github.com/m04kA/SMC-SalonScheduler/internal/service/priority"
	queueService "github.com/m04kA/SMC-SalonScheduler/internal/service/queue"
	settingsService "github.com/m04kA/SMC-SalonScheduler/internal/service/settings"
	shiftboardService "github.com/m04kA/SMC-SalonScheduler/internal/service/shiftboard"
	cancelBookingUC "github.com/m04kA/SMC-SalonScheduler/internal/usecase/cancel_booking"
	checkInUC "github.com/m04kA/SMC-SalonScheduler/internal/usecase/check_in"
	completeServiceUC "github.com/m04kA/SMC-SalonScheduler/internal/usecase/complete_service"
	createBookingUC "github.com/m04kA/SMC-SalonScheduler/internal/usecase/create_booking"
	duplicateBookingUC "github.com/m04kA/SMC-SalonScheduler/internal/usecase/duplicate_booking"
	moveBookingUC "github.com/m04kA/SMC-SalonScheduler/internal/usecase/move_booking"
	startServiceUC "github.com/m04kA/SMC-SalonScheduler/internal/usecase/start_service"
	"github.com/m04kA/SMC-SalonScheduler/pkg/dbmetrics"
	"github.com/m04kA/SMC-SalonScheduler/pkg/logger"
	"github.com/m04kA/SMC-SalonScheduler/pkg/metrics"
	"github.com/m04kA/SMC-SalonScheduler/pkg/txmanager"
)

func main() {
	configPath := "config.toml"
	if v := os.Getenv("CONFIG_PATH"); v != "" {
		configPath = v
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

	log.Info("Starting SMC-SalonScheduler...")
	log.Info("Configuration loaded from %s", configPath)

	loc, err := cfg.Scheduler.Location()
	if err != nil {
		log.Fatal("Invalid scheduler timezone: %v", err)
	}

	// Инициализируем метрики (если включены). nil-коллектор безопасен: все методы его проверяют
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
	db.SetConnMaxLifetime(time.Duration(cfg.Database.ConnMaxLifetime) * time.Second)

	if err := db.Ping(); err != nil {
		log.Fatal("Failed to ping database: %v", err)
	}
	log.Info("Successfully connected to database (host=%s, port=%d, db=%s)",
		cfg.Database.Host, cfg.Database.Port, cfg.Database.DBName)

	var wrappedDB *dbmetrics.DB
	if cfg.Metrics.Enabled {
		wrappedDB = dbmetrics.WrapWithDefault(db, metricsCollector, cfg.Metrics.ServiceName, stopMetricsCh)
		log.Info("Database metrics collection started")
	} else {
		wrappedDB = dbmetrics.Wrap(db)
	}
	txMgr := txmanager.NewTransactionManager(wrappedDB)

	// Redis (кэш часов работы салонов). Без Redis провайдер ходит в SalonService напрямую
	var rdb *redis.Client
	if cfg.Redis.Enabled {
		rdb = redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		pingCtx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
		if err := rdb.Ping(pingCtx).Err(); err != nil {
			log.Warn("Redis unavailable at %s, salon hours cache disabled: %v", cfg.Redis.Addr, err)
			_ = rdb.Close()
			rdb = nil
		} else {
			log.Info("Connected to Redis at %s", cfg.Redis.Addr)
		}
		cancel()
	}
	if rdb != nil {
		defer rdb.Close()
	}

	// Интеграции
	salonClient, err := salonServiceClient.NewClient(
		cfg.SalonService.URL,
		time.Duration(cfg.SalonService.Timeout)*time.Second,
		log,
	)
	if err != nil {
		log.Fatal("Invalid SalonService client config: %v", err)
	}
	salonClient.WithCooldown(time.Duration(cfg.SalonService.Cooldown) * time.Second)
	salonHours := salonhours.NewProvider(rdb, salonClient, time.Duration(cfg.Redis.CacheTTL)*time.Second, log)
	log.Info("SalonService client initialized (url=%s, timeout=%ds, cooldown=%ds)",
		cfg.SalonService.URL, cfg.SalonService.Timeout, cfg.SalonService.Cooldown)

	// Репозитории
	bookingRepository := bookingRepo.NewRepository(wrappedDB)
	scheduleRepository := scheduleRepo.NewRepository(wrappedDB)
	settingsRepository := settingsRepo.NewRepository(wrappedDB)
	priorityRepository := priorityRepo.NewRepository(wrappedDB)
	queueRepository := queueRepo.NewRepository(wrappedDB)
	revenueRepository := revenueRepo.NewRepository(wrappedDB)

	// Сервисы
	settingsSvc := settingsService.NewService(settingsRepository, scheduleRepository, cfg.Scheduler.DefaultGranularity, log)
	conflictsSvc := conflictsService.NewService(bookingRepository, log)
	availabilitySvc := availabilityService.NewService(
		scheduleRepository,
		salonHours,
		conflictsSvc,
		settingsSvc,
		metricsCollector,
		loc,
		log,
	)
	queueSvc := queueService.NewService(queueRepository, metricsCollector, loc, log)
	prioritySvc := priorityService.NewService(
		priorityRepository,
		scheduleRepository,
		revenueRepository,
		txMgr,
		metricsCollector,
		loc,
		log,
	)
	shiftboardSvc := shiftboardService.NewService(
		bookingRepository,
		prioritySvc,
		revenueRepository,
		queueSvc,
		txMgr,
		metricsCollector,
		loc,
		log,
	)
	bookingSvc := bookingsService.NewService(bookingRepository, loc, log)

	// Use cases
	clock := &createBookingUC.RealTimeProvider{}

	createBookingUseCase := createBookingUC.NewUseCase(
		bookingRepository,
		scheduleRepository,
		availabilitySvc,
		conflictsSvc,
		settingsSvc,
		txMgr,
		metricsCollector,
		log,
	)
	moveBookingUseCase := moveBookingUC.NewUseCase(
		bookingRepository,
		scheduleRepository,
		availabilitySvc,
		conflictsSvc,
		txMgr,
		metricsCollector,
		clock,
		log,
	)
	duplicateBookingUseCase := duplicateBookingUC.NewUseCase(
		bookingRepository,
		scheduleRepository,
		priorityRepository,
		availabilitySvc,
		conflictsSvc,
		txMgr,
		metricsCollector,
		clock,
		log,
	)
	checkInUseCase := checkInUC.NewUseCase(bookingRepository, queueSvc, txMgr, clock, log)
	startServiceUseCase := startServiceUC.NewUseCase(bookingRepository, txMgr, clock, log)
	completeServiceUseCase := completeServiceUC.NewUseCase(bookingRepository, txMgr, clock, log)
	cancelBookingUseCase := cancelBookingUC.NewUseCase(bookingRepository, txMgr, clock, log)

	// Handlers
	getAvailability := getAvailabilityHandler.NewHandler(availabilitySvc, log)
	getAvailableStaff := getAvailableStaffHandler.NewHandler(availabilitySvc, log)
	getSalonSettings := getSalonSettingsHandler.NewHandler(settingsSvc, log)
	updateSalonSettings := updateSalonSettingsHandler.NewHandler(settingsSvc, log)

	createBooking := createBookingHandler.NewHandler(createBookingUseCase, loc, log)
	moveBooking := moveBookingHandler.NewHandler(moveBookingUseCase, loc, log)
	duplicateBooking := duplicateBookingHandler.NewHandler(duplicateBookingUseCase, loc, log)
	checkIn := checkInHandler.NewHandler(checkInUseCase, loc, log)
	startService := startServiceHandler.NewHandler(startServiceUseCase, loc, log)
	completeService := completeServiceHandler.NewHandler(completeServiceUseCase, loc, log)
	cancelBooking := cancelBookingHandler.NewHandler(cancelBookingUseCase, loc, log)

	getBooking := getBookingHandler.NewHandler(bookingSvc, log)
	getSalonBookings := getSalonBookingsHandler.NewHandler(bookingSvc, log)
	getStaffBookings := getStaffBookingsHandler.NewHandler(bookingSvc, log)

	setPriority := setPriorityHandler.NewHandler(prioritySvc, log)
	swapPriority := swapPriorityHandler.NewHandler(prioritySvc, log)
	getPriorities := getPrioritiesHandler.NewHandler(prioritySvc, loc, log)
	getShiftBoard := getShiftBoardHandler.NewHandler(shiftboardSvc, loc, log)

	// Ежедневный сброс приоритетов
	dailyReset := jobs.NewDailyReset(scheduleRepository, prioritySvc, loc, log)
	if cfg.Scheduler.ResetOnStartup {
		startupCtx, cancel := context.WithTimeout(context.Background(), time.Minute)
		if applied, err := dailyReset.RunOnce(startupCtx); err != nil {
			log.Warn("Startup priority reset finished with errors (applied=%d): %v", applied, err)
		}
		cancel()
	}
	if err := dailyReset.Start(cfg.Scheduler.ResetCron); err != nil {
		log.Fatal("Failed to schedule daily reset: %v", err)
	}

	// Настраиваем роутер
	r := mux.NewRouter()
	r.Use(middleware.RequestID)

	if cfg.Metrics.Enabled {
		r.Use(middleware.MetricsMiddleware(metricsCollector, cfg.Metrics.ServiceName))
		r.Handle(cfg.Metrics.Path, promhttp.Handler()).Methods(http.MethodGet)
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}

	r.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()
		if err := wrappedDB.PingContext(ctx); err != nil {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		w.WriteHeader(http.StatusOK)
	}).Methods(http.MethodGet)

	api := r.PathPrefix("/api/v1").Subrouter()

	// ============================================================
	// PUBLIC ROUTES (без аутентификации, с ограничением частоты)
	// ============================================================

	public := api.PathPrefix("").Subrouter()
	if cfg.RateLimit.Enabled {
		limiter := middleware.NewRateLimiter(cfg.RateLimit.RequestsPerSecond, cfg.RateLimit.Burst)
		public.Use(limiter.Middleware())
		log.Info("Rate limit enabled for public routes (rps=%.1f, burst=%d)",
			cfg.RateLimit.RequestsPerSecond, cfg.RateLimit.Burst)
	}

	// Свободные слоты мастера на день
	public.HandleFunc("/staff/{staffId}/availability", getAvailability.Handle).Methods(http.MethodGet)

	// Мастера, свободные на конкретное время
	public.HandleFunc("/salons/{salonId}/available-staff", getAvailableStaff.Handle).Methods(http.MethodGet)

	// Действующие настройки расписания
	public.HandleFunc("/salons/{salonId}/settings", getSalonSettings.Handle).Methods(http.MethodGet)

	// ============================================================
	// PROTECTED ROUTES (требуют X-User-ID header)
	// ============================================================

	protected := api.PathPrefix("").Subrouter()
	protected.Use(middleware.Auth)

	// --- Бронирования ---
	protected.HandleFunc("/bookings", createBooking.Handle).Methods(http.MethodPost)
	protected.HandleFunc("/bookings/{bookingId}", getBooking.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/bookings/{bookingId}/move", moveBooking.Handle).Methods(http.MethodPost)
	protected.HandleFunc("/bookings/{bookingId}/duplicate", duplicateBooking.Handle).Methods(http.MethodPost)
	protected.HandleFunc("/bookings/{bookingId}/check-in", checkIn.Handle).Methods(http.MethodPost)
	protected.HandleFunc("/bookings/{bookingId}/start", startService.Handle).Methods(http.MethodPost)
	protected.HandleFunc("/bookings/{bookingId}/complete", completeService.Handle).Methods(http.MethodPost)
	protected.HandleFunc("/bookings/{bookingId}/cancel", cancelBooking.Handle).Methods(http.MethodPost)

	// --- Календари ---
	protected.HandleFunc("/salons/{salonId}/bookings", getSalonBookings.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/staff/{staffId}/bookings", getStaffBookings.Handle).Methods(http.MethodGet)

	// --- Очерёдность мастеров ---
	protected.HandleFunc("/staff/{staffId}/priority", setPriority.Handle).Methods(http.MethodPut)
	protected.HandleFunc("/staff/{staffId}/priority/swap", swapPriority.Handle).Methods(http.MethodPost)
	protected.HandleFunc("/salons/{salonId}/priorities", getPriorities.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/salons/{salonId}/shift-board", getShiftBoard.Handle).Methods(http.MethodGet)

	// --- Настройки салона (для менеджеров) ---
	protected.HandleFunc("/salons/{salonId}/settings", updateSalonSettings.Handle).Methods(http.MethodPut)
	protected.HandleFunc("/salons/{salonId}/settings", updateSalonSettings.HandleDelete).Methods(http.MethodDelete)

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

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down server...")

	dailyReset.Stop()

	shutdownCtx, cancel := context.WithTimeout(
		context.Background(),
		time.Duration(cfg.Server.ShutdownTimeout)*time.Second,
	)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("Server forced to shutdown: %v", err)
	}

	// Останавливаем сбор метрик connection pool
	close(stopMetricsCh)

	log.Info("Server stopped gracefully")
}
