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

	bookAppointmentHandler "github.com/m04kA/SMC-SalonService/internal/api/handlers/book_appointment"
	cancelAppointmentHandler "github.com/m04kA/SMC-SalonService/internal/api/handlers/cancel_appointment"
	commissionSummaryHandler "github.com/m04kA/SMC-SalonService/internal/api/handlers/commission_summary"
	computeCostHandler "github.com/m04kA/SMC-SalonService/internal/api/handlers/compute_cost"
	createBillingElementHandler "github.com/m04kA/SMC-SalonService/internal/api/handlers/create_billing_element"
	createServiceHandler "github.com/m04kA/SMC-SalonService/internal/api/handlers/create_service"
	createWorkPatternHandler "github.com/m04kA/SMC-SalonService/internal/api/handlers/create_work_pattern"
	decideHolidayHandler "github.com/m04kA/SMC-SalonService/internal/api/handlers/decide_holiday"
	effectiveTimingHandler "github.com/m04kA/SMC-SalonService/internal/api/handlers/effective_timing"
	getAppointmentHandler "github.com/m04kA/SMC-SalonService/internal/api/handlers/get_appointment"
	getAppointmentCostHandler "github.com/m04kA/SMC-SalonService/internal/api/handlers/get_appointment_cost"
	getAvailableSlotsHandler "github.com/m04kA/SMC-SalonService/internal/api/handlers/get_available_slots"
	getEmploymentTermsHandler "github.com/m04kA/SMC-SalonService/internal/api/handlers/get_employment_terms"
	getHolidayQuotaHandler "github.com/m04kA/SMC-SalonService/internal/api/handlers/get_holiday_quota"
	getSalonHoursHandler "github.com/m04kA/SMC-SalonService/internal/api/handlers/get_salon_hours"
	getWorkPatternHandler "github.com/m04kA/SMC-SalonService/internal/api/handlers/get_work_pattern"
	listAppointmentsHandler "github.com/m04kA/SMC-SalonService/internal/api/handlers/list_appointments"
	listBillingElementsHandler "github.com/m04kA/SMC-SalonService/internal/api/handlers/list_billing_elements"
	listHolidayRequestsHandler "github.com/m04kA/SMC-SalonService/internal/api/handlers/list_holiday_requests"
	replaceSalonHoursHandler "github.com/m04kA/SMC-SalonService/internal/api/handlers/replace_salon_hours"
	salonProfitSummaryHandler "github.com/m04kA/SMC-SalonService/internal/api/handlers/salon_profit_summary"
	saveEmploymentTermsHandler "github.com/m04kA/SMC-SalonService/internal/api/handlers/save_employment_terms"
	servicesAllowedHandler "github.com/m04kA/SMC-SalonService/internal/api/handlers/services_allowed"
	setStylistServiceHandler "github.com/m04kA/SMC-SalonService/internal/api/handlers/set_stylist_service"
	stylistEarningsHandler "github.com/m04kA/SMC-SalonService/internal/api/handlers/stylist_earnings"
	submitHolidayHandler "github.com/m04kA/SMC-SalonService/internal/api/handlers/submit_holiday"
	updateAppointmentHandler "github.com/m04kA/SMC-SalonService/internal/api/handlers/update_appointment"
	updateAppointmentStatusHandler "github.com/m04kA/SMC-SalonService/internal/api/handlers/update_appointment_status"
	updateBillingElementHandler "github.com/m04kA/SMC-SalonService/internal/api/handlers/update_billing_element"
	updateServiceHandler "github.com/m04kA/SMC-SalonService/internal/api/handlers/update_service"
	"github.com/m04kA/SMC-SalonService/internal/api/middleware"
	"github.com/m04kA/SMC-SalonService/internal/config"
	"github.com/m04kA/SMC-SalonService/internal/infra/migrations"
	appointmentRepo "github.com/m04kA/SMC-SalonService/internal/infra/storage/appointment"
	billingRepo "github.com/m04kA/SMC-SalonService/internal/infra/storage/billing"
	catalogRepo "github.com/m04kA/SMC-SalonService/internal/infra/storage/catalog"
	costRepo "github.com/m04kA/SMC-SalonService/internal/infra/storage/cost"
	employmentRepo "github.com/m04kA/SMC-SalonService/internal/infra/storage/employment"
	holidayRepo "github.com/m04kA/SMC-SalonService/internal/infra/storage/holiday"
	salonHoursRepo "github.com/m04kA/SMC-SalonService/internal/infra/storage/salonhours"
	userRepo "github.com/m04kA/SMC-SalonService/internal/infra/storage/user"
	workPatternRepo "github.com/m04kA/SMC-SalonService/internal/infra/storage/workpattern"
	"github.com/m04kA/SMC-SalonService/internal/scheduler"
	appointmentsService "github.com/m04kA/SMC-SalonService/internal/service/appointments"
	billingService "github.com/m04kA/SMC-SalonService/internal/service/billing"
	catalogService "github.com/m04kA/SMC-SalonService/internal/service/catalog"
	costsService "github.com/m04kA/SMC-SalonService/internal/service/costs"
	employmentService "github.com/m04kA/SMC-SalonService/internal/service/employment"
	holidaysService "github.com/m04kA/SMC-SalonService/internal/service/holidays"
	salonHoursService "github.com/m04kA/SMC-SalonService/internal/service/salonhours"
	workPatternsService "github.com/m04kA/SMC-SalonService/internal/service/workpatterns"
	bookAppointmentUC "github.com/m04kA/SMC-SalonService/internal/usecase/book_appointment"
	getAvailableSlotsUC "github.com/m04kA/SMC-SalonService/internal/usecase/get_available_slots"
	updateAppointmentUC "github.com/m04kA/SMC-SalonService/internal/usecase/update_appointment"
	"github.com/m04kA/SMC-SalonService/internal/usecase/validate_booking"
	"github.com/m04kA/SMC-SalonService/pkg/dbmetrics"
	"github.com/m04kA/SMC-SalonService/pkg/logger"
	"github.com/m04kA/SMC-SalonService/pkg/metrics"
	"github.com/m04kA/SMC-SalonService/pkg/txmanager"
)

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

	log.Info("Starting SMC-SalonService...")
	log.Info("Configuration loaded from config.toml")

	// Config.Validate уже проверил часовой пояс
	location, _ := cfg.Salon.Location()

	// Инициализируем метрики (если включены). Методы *metrics.Metrics безопасны для nil.
	var metricsCollector *metrics.Metrics
	stopMetricsCh := make(chan struct{})

	if cfg.Metrics.Enabled {
		metricsCollector = metrics.New(cfg.Metrics.ServiceName)
		log.Info("Metrics enabled at %s", cfg.Metrics.Path)
	}

	// Применяем миграции
	if cfg.Database.MigrateOnStart {
		if err := migrations.Up(cfg.Database.URL(), log); err != nil {
			log.Fatal("Failed to apply migrations: %v", err)
		}
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

	wrappedDB := dbmetrics.WrapWithDefault(db, metricsCollector, stopMetricsCh)
	txMgr := txmanager.NewTransactionManager(wrappedDB)

	// Инициализируем репозитории
	users := userRepo.NewRepository(wrappedDB)
	appointments := appointmentRepo.NewRepository(wrappedDB)
	catalog := catalogRepo.NewRepository(wrappedDB)
	costs := costRepo.NewRepository(wrappedDB)
	employment := employmentRepo.NewRepository(wrappedDB)
	billing := billingRepo.NewRepository(wrappedDB)
	holidays := holidayRepo.NewRepository(wrappedDB)
	salonHours := salonHoursRepo.NewRepository(wrappedDB)
	workPatterns := workPatternRepo.NewRepository(wrappedDB)

	// Инициализируем сервисы
	salonHoursSvc := salonHoursService.NewService(salonHours, cfg.Cache.TTL(), metricsCollector, log)
	billingSvc := billingService.NewService(billing, cfg.Cache.TTL(), metricsCollector, log)
	catalogSvc := catalogService.NewService(catalog, txMgr, cfg.Cache.Size, cfg.Cache.TTL(), metricsCollector, log)
	employmentSvc := employmentService.NewService(employment, location, log)
	workPatternsSvc := workPatternsService.NewService(workPatterns, txMgr, log)
	costsSvc := costsService.NewService(appointments, employment, billingSvc, costs, txMgr, metricsCollector, log)
	appointmentsSvc := appointmentsService.NewService(appointments, users, costsSvc, txMgr, metricsCollector, location, log)
	holidaysSvc := holidaysService.NewService(
		holidays,
		workPatterns,
		users,
		txMgr,
		metricsCollector,
		holidaysService.Policy{
			FullTimeWeeklyHours: cfg.Salon.FullTimeHours(),
			StatutoryDays:       cfg.Salon.StatutoryDays(),
			Location:            location,
		},
		log,
	)

	// Инициализируем use cases
	validator := validate_booking.NewValidator(
		users,
		catalog,
		salonHoursSvc,
		workPatterns,
		appointments,
		location,
		log,
	)
	bookAppointmentUseCase := bookAppointmentUC.NewUseCase(
		appointments,
		validator,
		txMgr,
		metricsCollector,
		log,
	)
	updateAppointmentUseCase := updateAppointmentUC.NewUseCase(
		appointments,
		users,
		validator,
		costsSvc,
		txMgr,
		log,
	)
	getAvailableSlotsUseCase := getAvailableSlotsUC.NewUseCase(
		users,
		catalog,
		salonHoursSvc,
		workPatterns,
		appointments,
		location,
		log,
	)

	// Инициализируем handlers
	bookAppointment := bookAppointmentHandler.NewHandler(bookAppointmentUseCase, log)
	updateAppointment := updateAppointmentHandler.NewHandler(updateAppointmentUseCase, log)
	getAppointment := getAppointmentHandler.NewHandler(appointmentsSvc, log)
	getAvailableSlots := getAvailableSlotsHandler.NewHandler(getAvailableSlotsUseCase, log)
	listAppointments := listAppointmentsHandler.NewHandler(appointmentsSvc, log)
	updateAppointmentStatus := updateAppointmentStatusHandler.NewHandler(appointmentsSvc, log)
	cancelAppointment := cancelAppointmentHandler.NewHandler(appointmentsSvc, log)

	computeCost := computeCostHandler.NewHandler(costsSvc, log)
	getAppointmentCost := getAppointmentCostHandler.NewHandler(costsSvc, log)
	stylistEarnings := stylistEarningsHandler.NewHandler(costsSvc, log)
	salonProfitSummary := salonProfitSummaryHandler.NewHandler(costsSvc, log)
	commissionSummary := commissionSummaryHandler.NewHandler(costsSvc, log)

	submitHoliday := submitHolidayHandler.NewHandler(holidaysSvc, log)
	decideHoliday := decideHolidayHandler.NewHandler(holidaysSvc, log)
	listHolidayRequests := listHolidayRequestsHandler.NewHandler(holidaysSvc, log)
	getHolidayQuota := getHolidayQuotaHandler.NewHandler(holidaysSvc, log)

	servicesAllowed := servicesAllowedHandler.NewHandler(catalogSvc, log)
	effectiveTiming := effectiveTimingHandler.NewHandler(catalogSvc, log)
	setStylistService := setStylistServiceHandler.NewHandler(catalogSvc, log)
	createService := createServiceHandler.NewHandler(catalogSvc, log)
	updateService := updateServiceHandler.NewHandler(catalogSvc, log)

	getSalonHours := getSalonHoursHandler.NewHandler(salonHoursSvc, log)
	replaceSalonHours := replaceSalonHoursHandler.NewHandler(salonHoursSvc, log)

	getEmploymentTerms := getEmploymentTermsHandler.NewHandler(employmentSvc, log)
	saveEmploymentTerms := saveEmploymentTermsHandler.NewHandler(employmentSvc, log)

	getWorkPattern := getWorkPatternHandler.NewHandler(workPatternsSvc, log)
	createWorkPattern := createWorkPatternHandler.NewHandler(workPatternsSvc, log)

	listBillingElements := listBillingElementsHandler.NewHandler(billingSvc, log)
	createBillingElement := createBillingElementHandler.NewHandler(billingSvc, log)
	updateBillingElement := updateBillingElementHandler.NewHandler(billingSvc, log)

	// Настраиваем роутер
	r := mux.NewRouter()
	r.Use(middleware.RequestLogger(log))

	// Добавляем metrics middleware (если метрики включены)
	if cfg.Metrics.Enabled {
		r.Use(middleware.MetricsMiddleware(metricsCollector))
		r.Handle(cfg.Metrics.Path, promhttp.Handler()).Methods(http.MethodGet)
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}

	// API prefix
	api := r.PathPrefix("/api/v1").Subrouter()

	// ============================================================
	// PUBLIC ROUTES (без аутентификации)
	// ============================================================

	api.HandleFunc("/salon-hours", getSalonHours.Handle).Methods(http.MethodGet)
	api.HandleFunc("/stylists/{stylistId}/services", servicesAllowed.Handle).Methods(http.MethodGet)
	api.HandleFunc("/stylists/{stylistId}/services/{serviceId}/timing", effectiveTiming.Handle).Methods(http.MethodGet)
	api.HandleFunc("/stylists/{stylistId}/available-slots", getAvailableSlots.Handle).Methods(http.MethodGet)

	// ============================================================
	// PROTECTED ROUTES (требуют X-User-ID header)
	// ============================================================

	protected := api.PathPrefix("").Subrouter()
	protected.Use(middleware.Auth)

	// --- Записи ---
	protected.HandleFunc("/appointments", bookAppointment.Handle).Methods(http.MethodPost)
	protected.HandleFunc("/appointments", listAppointments.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/appointments/{appointmentId}", getAppointment.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/appointments/{appointmentId}", updateAppointment.Handle).Methods(http.MethodPut)
	protected.HandleFunc("/appointments/{appointmentId}/status", updateAppointmentStatus.Handle).Methods(http.MethodPatch)
	protected.HandleFunc("/appointments/{appointmentId}/cancel", cancelAppointment.Handle).Methods(http.MethodPatch)

	// --- Стоимость и отчёты ---
	protected.HandleFunc("/appointments/{appointmentId}/cost", computeCost.Handle).Methods(http.MethodPost)
	protected.HandleFunc("/appointments/{appointmentId}/cost", getAppointmentCost.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/stylists/{stylistId}/earnings", stylistEarnings.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/reports/profit", salonProfitSummary.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/reports/commission", commissionSummary.Handle).Methods(http.MethodGet)

	// --- Отпуска ---
	protected.HandleFunc("/holidays", submitHoliday.Handle).Methods(http.MethodPost)
	protected.HandleFunc("/holidays/{requestId}/decision", decideHoliday.Handle).Methods(http.MethodPatch)
	protected.HandleFunc("/users/{userId}/holidays", listHolidayRequests.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/users/{userId}/holiday-quota", getHolidayQuota.Handle).Methods(http.MethodGet)

	// --- Реестры салона ---
	protected.HandleFunc("/stylists/{stylistId}/services/{serviceId}", setStylistService.Handle).Methods(http.MethodPut)
	protected.HandleFunc("/services", createService.Handle).Methods(http.MethodPost)
	protected.HandleFunc("/services/{serviceId}", updateService.Handle).Methods(http.MethodPut)
	protected.HandleFunc("/salon-hours", replaceSalonHours.Handle).Methods(http.MethodPut)
	protected.HandleFunc("/users/{userId}/employment", getEmploymentTerms.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/users/{userId}/employment", saveEmploymentTerms.Handle).Methods(http.MethodPut)
	protected.HandleFunc("/users/{userId}/work-pattern", getWorkPattern.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/users/{userId}/work-patterns", createWorkPattern.Handle).Methods(http.MethodPost)
	protected.HandleFunc("/billing-elements", listBillingElements.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/billing-elements", createBillingElement.Handle).Methods(http.MethodPost)
	protected.HandleFunc("/billing-elements/{elementId}", updateBillingElement.Handle).Methods(http.MethodPut)

	// Фоновые задачи
	var jobs *scheduler.Scheduler
	if cfg.Scheduler.Enabled {
		jobs = scheduler.New(holidaysSvc, costsSvc, location, log)
		err := jobs.Start(scheduler.Specs{
			QuotaRollover: cfg.Scheduler.QuotaRolloverSpec,
			CostBackfill:  cfg.Scheduler.CostBackfillSpec,
		})
		if err != nil {
			log.Fatal("Failed to start scheduler: %v", err)
		}
	}

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

	shutdownCtx, cancel := context.WithTimeout(
		context.Background(),
		time.Duration(cfg.Server.ShutdownTimeout)*time.Second,
	)
	defer cancel()

	if jobs != nil {
		jobs.Stop(shutdownCtx)
	}

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("Server forced to shutdown: %v", err)
	}

	// Останавливаем сбор метрик connection pool
	close(stopMetricsCh)

	log.Info("Server stopped gracefully")
}
