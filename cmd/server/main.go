package main

import (
	"context"
	"database/sql"
	"flag"
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

	cancelAppointmentHandler "github.com/m04kA/SMC-AppointmentService/internal/api/handlers/cancel_appointment"
	createAppointmentHandler "github.com/m04kA/SMC-AppointmentService/internal/api/handlers/create_appointment"
	getAppointmentHandler "github.com/m04kA/SMC-AppointmentService/internal/api/handlers/get_appointment"
	getAvailableSlotsHandler "github.com/m04kA/SMC-AppointmentService/internal/api/handlers/get_available_slots"
	getBusinessAppointmentsHandler "github.com/m04kA/SMC-AppointmentService/internal/api/handlers/get_business_appointments"
	getBusinessCustomersHandler "github.com/m04kA/SMC-AppointmentService/internal/api/handlers/get_business_customers"
	getBusinessHoursHandler "github.com/m04kA/SMC-AppointmentService/internal/api/handlers/get_business_hours"
	listBusinessesHandler "github.com/m04kA/SMC-AppointmentService/internal/api/handlers/list_businesses"
	listServicesHandler "github.com/m04kA/SMC-AppointmentService/internal/api/handlers/list_services"
	listStaffHandler "github.com/m04kA/SMC-AppointmentService/internal/api/handlers/list_staff"
	replaceBusinessHoursHandler "github.com/m04kA/SMC-AppointmentService/internal/api/handlers/replace_business_hours"
	updateAppointmentStatusHandler "github.com/m04kA/SMC-AppointmentService/internal/api/handlers/update_appointment_status"
	"github.com/m04kA/SMC-AppointmentService/internal/api/middleware"
	"github.com/m04kA/SMC-AppointmentService/internal/config"
	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	catalogCache "github.com/m04kA/SMC-AppointmentService/internal/infra/cache/catalog"
	appointmentRepo "github.com/m04kA/SMC-AppointmentService/internal/infra/storage/appointment"
	businessRepo "github.com/m04kA/SMC-AppointmentService/internal/infra/storage/business"
	catalogRepo "github.com/m04kA/SMC-AppointmentService/internal/infra/storage/catalog"
	customerRepo "github.com/m04kA/SMC-AppointmentService/internal/infra/storage/customer"
	hoursRepo "github.com/m04kA/SMC-AppointmentService/internal/infra/storage/hours"
	"github.com/m04kA/SMC-AppointmentService/internal/integrations/events"
	appointmentsService "github.com/m04kA/SMC-AppointmentService/internal/service/appointments"
	catalogService "github.com/m04kA/SMC-AppointmentService/internal/service/catalog"
	hoursService "github.com/m04kA/SMC-AppointmentService/internal/service/hours"
	createAppointmentUC "github.com/m04kA/SMC-AppointmentService/internal/usecase/create_appointment"
	getAvailableSlotsUC "github.com/m04kA/SMC-AppointmentService/internal/usecase/get_available_slots"
	"github.com/m04kA/SMC-AppointmentService/pkg/dbmetrics"
	"github.com/m04kA/SMC-AppointmentService/pkg/logger"
	"github.com/m04kA/SMC-AppointmentService/pkg/metrics"
	"github.com/m04kA/SMC-AppointmentService/pkg/txmanager"
	"github.com/m04kA/SMC-AppointmentService/pkg/types"
)

func main() {
	configPath := flag.String("config", "config.toml", "path to the TOML config")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}

	log, err := logger.New(cfg.Logs.File, cfg.Logs.Level)
	if err != nil {
		fmt.Printf("Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Close()

	log.Info("Starting SMC-AppointmentService...")
	log.Info("Configuration loaded from %s", *configPath)

	defaultHours, err := toDomainHours(cfg.Booking.DefaultHours)
	if err != nil {
		log.Fatal("Invalid booking.default_hours: %v", err)
	}

	var metricsCollector *metrics.Metrics
	if cfg.Metrics.Enabled {
		metricsCollector = metrics.New(cfg.Metrics.ServiceName)
		log.Info("Metrics enabled at %s", cfg.Metrics.Path)
	}

	db, err := sql.Open("postgres", cfg.Database.DSN())
	if err != nil {
		log.Fatal("Failed to connect to database: %v", err)
	}
	defer db.Close()

	db.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	db.SetMaxIdleConns(cfg.Database.MaxIdleConns)
	db.SetConnMaxLifetime(time.Duration(cfg.Database.ConnMaxLifetime) * time.Second)

	if err := db.Ping(); err != nil {
		log.Fatal("Failed to ping database: %v", err)
	}
	log.Info("Successfully connected to database (host=%s, port=%d, db=%s)",
		cfg.Database.Host, cfg.Database.Port, cfg.Database.DBName)

	stopMetricsCh := make(chan struct{})
	var wrappedDB *dbmetrics.DB
	if cfg.Metrics.Enabled {
		wrappedDB = dbmetrics.WrapWithDefault(db, metricsCollector, stopMetricsCh)
		log.Info("Database metrics collection started")
	} else {
		wrappedDB = dbmetrics.Wrap(db, nil)
	}
	txMgr := txmanager.NewTransactionManager(wrappedDB)

	businessRepository := businessRepo.NewRepository(wrappedDB)
	catalogRepository := catalogRepo.NewRepository(wrappedDB)
	customerRepository := customerRepo.NewRepository(wrappedDB)
	appointmentRepository := appointmentRepo.NewRepository(wrappedDB)
	hoursRepository := hoursRepo.NewRepository(wrappedDB)

	var catalogReader catalogService.CatalogReader = catalogRepository
	if cfg.Redis.Enabled {
		redisClient := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		defer redisClient.Close()

		if err := redisClient.Ping(context.Background()).Err(); err != nil {
			log.Warn("Redis unavailable at %s, catalog reads fall back to the database: %v", cfg.Redis.Addr, err)
		}
		catalogReader = catalogCache.New(
			catalogRepository,
			redisClient,
			time.Duration(cfg.Catalog.CacheTTL)*time.Second,
			metricsCollector,
			log,
		)
		log.Info("Catalog cache enabled (redis=%s, ttl=%ds)", cfg.Redis.Addr, cfg.Catalog.CacheTTL)
	}

	var publisher createAppointmentUC.EventPublisher = events.NoopPublisher{}
	if cfg.Kafka.Enabled {
		kafkaPublisher := events.NewKafkaPublisher(cfg.Kafka.Brokers, cfg.Kafka.Topic)
		defer kafkaPublisher.Close()
		publisher = kafkaPublisher
		log.Info("Appointment events published to kafka topic=%s brokers=%v", cfg.Kafka.Topic, cfg.Kafka.Brokers)
	}

	catalogSvc := catalogService.NewService(businessRepository, catalogReader, log)
	hoursSvc := hoursService.NewService(hoursRepository, businessRepository, txMgr, defaultHours, log)
	appointmentsSvc := appointmentsService.NewService(appointmentRepository, customerRepository, businessRepository, txMgr, log)

	getAvailableSlotsUseCase := getAvailableSlotsUC.NewUseCase(
		businessRepository,
		catalogRepository,
		appointmentRepository,
		hoursSvc,
		getAvailableSlotsUC.Options{
			SlotStepMinutes:  cfg.Booking.SlotStepMinutes,
			MinNoticeMinutes: cfg.Booking.MinNoticeMinutes,
		},
		log,
	)
	createAppointmentUseCase := createAppointmentUC.NewUseCase(
		businessRepository,
		catalogRepository,
		customerRepository,
		appointmentRepository,
		hoursSvc,
		txMgr,
		publisher,
		metricsCollector,
		log,
	)

	listBusinesses := listBusinessesHandler.NewHandler(catalogSvc, log)
	listServices := listServicesHandler.NewHandler(catalogSvc, log)
	listStaff := listStaffHandler.NewHandler(catalogSvc, log)
	getAvailableSlots := getAvailableSlotsHandler.NewHandler(getAvailableSlotsUseCase, log)
	createAppointment := createAppointmentHandler.NewHandler(createAppointmentUseCase, log)
	getAppointment := getAppointmentHandler.NewHandler(appointmentsSvc, log)
	getBusinessAppointments := getBusinessAppointmentsHandler.NewHandler(appointmentsSvc, log)
	getBusinessCustomers := getBusinessCustomersHandler.NewHandler(appointmentsSvc, log)
	updateAppointmentStatus := updateAppointmentStatusHandler.NewHandler(appointmentsSvc, log)
	cancelAppointment := cancelAppointmentHandler.NewHandler(appointmentsSvc, log)
	getBusinessHours := getBusinessHoursHandler.NewHandler(hoursSvc, log)
	replaceBusinessHours := replaceBusinessHoursHandler.NewHandler(hoursSvc, log)

	r := mux.NewRouter()
	r.Use(middleware.RequestLogger(log))

	if cfg.Metrics.Enabled {
		r.Use(middleware.MetricsMiddleware(metricsCollector))
		r.Handle(cfg.Metrics.Path, promhttp.Handler()).Methods(http.MethodGet)
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}

	r.HandleFunc("/health", func(w http.ResponseWriter, req *http.Request) {
		ctx, cancel := context.WithTimeout(req.Context(), 2*time.Second)
		defer cancel()
		if err := wrappedDB.PingContext(ctx); err != nil {
			log.Warn("GET /health - database unreachable: %v", err)
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		w.WriteHeader(http.StatusOK)
	}).Methods(http.MethodGet)

	api := r.PathPrefix("/api/v1").Subrouter()
	api.Use(middleware.ValidateIDs)

	// Public booking flow
	api.HandleFunc("/businesses", listBusinesses.Handle).Methods(http.MethodGet)
	api.HandleFunc("/businesses/{businessId}/services", listServices.Handle).Methods(http.MethodGet)
	api.HandleFunc("/businesses/{businessId}/staff", listStaff.Handle).Methods(http.MethodGet)
	api.HandleFunc("/businesses/{businessId}/available-slots", getAvailableSlots.Handle).Methods(http.MethodGet)
	api.HandleFunc("/appointments", createAppointment.Handle).Methods(http.MethodPost)

	// Owner dashboard, X-User-ID is set by the gateway
	owner := api.PathPrefix("").Subrouter()
	owner.Use(middleware.Auth)

	owner.HandleFunc("/businesses/{businessId}/appointments", getBusinessAppointments.Handle).Methods(http.MethodGet)
	owner.HandleFunc("/businesses/{businessId}/customers", getBusinessCustomers.Handle).Methods(http.MethodGet)
	owner.HandleFunc("/businesses/{businessId}/hours", getBusinessHours.Handle).Methods(http.MethodGet)
	owner.HandleFunc("/businesses/{businessId}/hours", replaceBusinessHours.Handle).Methods(http.MethodPut)
	owner.HandleFunc("/appointments/{appointmentId}", getAppointment.Handle).Methods(http.MethodGet)
	owner.HandleFunc("/appointments/{appointmentId}/status", updateAppointmentStatus.Handle).Methods(http.MethodPatch)
	owner.HandleFunc("/appointments/{appointmentId}/cancel", cancelAppointment.Handle).Methods(http.MethodPost)

	addr := fmt.Sprintf(":%d", cfg.Server.HTTPPort)
	srv := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
		IdleTimeout:  time.Duration(cfg.Server.IdleTimeout) * time.Second,
	}

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

// toDomainHours converts the configured default table. An empty table keeps
// the built-in default.
func toDomainHours(windows []config.HoursWindow) ([]domain.HoursWindow, error) {
	out := make([]domain.HoursWindow, 0, len(windows))
	for i, w := range windows {
		open, err := types.NewTimeStringFromString(w.Open)
		if err != nil {
			return nil, fmt.Errorf("window %d open: %w", i, err)
		}
		closeAt, err := types.NewTimeStringFromString(w.Close)
		if err != nil {
			return nil, fmt.Errorf("window %d close: %w", i, err)
		}
		out = append(out, domain.HoursWindow{Weekday: time.Weekday(w.Weekday), Open: open, Close: closeAt})
	}

	hours := domain.BusinessHours{Windows: out}
	if err := hours.Validate(); err != nil {
		return nil, err
	}
	return out, nil
}
