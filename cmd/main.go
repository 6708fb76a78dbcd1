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

	cancelBookingHandler "github.com/m04kA/RMT-BookingService/internal/api/handlers/cancel_booking"
	createBlockHandler "github.com/m04kA/RMT-BookingService/internal/api/handlers/create_block"
	createBookingHandler "github.com/m04kA/RMT-BookingService/internal/api/handlers/create_booking"
	deleteBlockHandler "github.com/m04kA/RMT-BookingService/internal/api/handlers/delete_block"
	getBookingHandler "github.com/m04kA/RMT-BookingService/internal/api/handlers/get_booking"
	getItemAvailabilityHandler "github.com/m04kA/RMT-BookingService/internal/api/handlers/get_item_availability"
	getOwnerBookingsHandler "github.com/m04kA/RMT-BookingService/internal/api/handlers/get_owner_bookings"
	getQuoteHandler "github.com/m04kA/RMT-BookingService/internal/api/handlers/get_quote"
	getUserBookingsHandler "github.com/m04kA/RMT-BookingService/internal/api/handlers/get_user_bookings"
	releaseDepositHandler "github.com/m04kA/RMT-BookingService/internal/api/handlers/release_deposit"
	updateBookingStatusHandler "github.com/m04kA/RMT-BookingService/internal/api/handlers/update_booking_status"
	"github.com/m04kA/RMT-BookingService/internal/api/middleware"
	"github.com/m04kA/RMT-BookingService/internal/config"
	"github.com/m04kA/RMT-BookingService/internal/domain"
	bookingRepo "github.com/m04kA/RMT-BookingService/internal/infra/storage/booking"
	itemRepo "github.com/m04kA/RMT-BookingService/internal/infra/storage/item"
	"github.com/m04kA/RMT-BookingService/internal/infra/storage/memory"
	windowRepo "github.com/m04kA/RMT-BookingService/internal/infra/storage/window"
	"github.com/m04kA/RMT-BookingService/internal/integrations/events"
	userServiceClient "github.com/m04kA/RMT-BookingService/internal/integrations/userservice"
	"github.com/m04kA/RMT-BookingService/internal/jobs"
	"github.com/m04kA/RMT-BookingService/internal/scheduler"
	blocksService "github.com/m04kA/RMT-BookingService/internal/service/blocks"
	bookingsService "github.com/m04kA/RMT-BookingService/internal/service/bookings"
	"github.com/m04kA/RMT-BookingService/internal/service/quote"
	createBookingUC "github.com/m04kA/RMT-BookingService/internal/usecase/create_booking"
	getQuoteUC "github.com/m04kA/RMT-BookingService/internal/usecase/get_quote"
	"github.com/m04kA/RMT-BookingService/pkg/dbmetrics"
	"github.com/m04kA/RMT-BookingService/pkg/logger"
	"github.com/m04kA/RMT-BookingService/pkg/metrics"
	"github.com/m04kA/RMT-BookingService/pkg/txmanager"
)

// Хранилища, общие для postgres и memory драйверов

type itemStorage interface {
	GetByID(ctx context.Context, id int64) (*domain.Item, error)
}

type windowStorage interface {
	GetActiveWindows(ctx context.Context, itemID int64) ([]domain.UnavailabilityWindow, error)
	CreateBlock(ctx context.Context, block *domain.OwnerBlock) (*domain.OwnerBlock, error)
	GetBlockByID(ctx context.Context, id int64) (*domain.OwnerBlock, error)
	DeleteBlock(ctx context.Context, id int64) error
}

type bookingStorage interface {
	Create(ctx context.Context, booking *domain.Booking) (*domain.Booking, error)
	GetByID(ctx context.Context, id int64) (*domain.Booking, error)
	GetByRenterID(ctx context.Context, renterID int64, status *domain.BookingStatus) ([]*domain.Booking, error)
	GetByOwnerWithFilter(ctx context.Context, filter domain.OwnerBookingsFilter) ([]*domain.Booking, error)
	UpdateStatus(ctx context.Context, id int64, status domain.BookingStatus) error
	Cancel(ctx context.Context, id int64, reason string) error
	ReleaseDeposit(ctx context.Context, id int64) error
	ExpirePending(ctx context.Context, createdBefore time.Time, reason string) ([]int64, error)
}

type txManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
}

type eventPublisher interface {
	PublishBookingCreated(ctx context.Context, booking *domain.Booking) error
	PublishBookingStatusChanged(ctx context.Context, booking *domain.Booking, previous domain.BookingStatus) error
	Close() error
}

type storage struct {
	items    itemStorage
	windows  windowStorage
	bookings bookingStorage
	tx       txManager
}

func main() {
	configPath := flag.String("config", "config.toml", "path to config file")
	flag.Parse()

	// Загружаем конфигурацию
	cfg, err := config.Load(*configPath)
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

	log.Info("Starting RMT-BookingService...")
	log.Info("Configuration loaded from %s", *configPath)

	// Инициализируем метрики (если включены)
	var metricsCollector *metrics.Metrics
	stopMetricsCh := make(chan struct{})

	if cfg.Metrics.Enabled {
		metricsCollector = metrics.New(cfg.Metrics.ServiceName)
		log.Info("Metrics enabled at %s", cfg.Metrics.Path)
	}

	// Хранилище
	var store storage

	switch cfg.Storage.Driver {
	case config.StorageDriverMemory:
		memStore := memory.NewStore()
		if cfg.Storage.SeedDemo {
			for _, item := range memory.DemoItems() {
				memStore.AddItem(item)
			}
		}
		store = storage{
			items:    memStore.Items(),
			windows:  memStore.Windows(),
			bookings: memStore.Bookings(),
			tx:       memStore.TxManager(),
		}
		log.Info("Using in-memory storage (seed_demo=%t)", cfg.Storage.SeedDemo)

	default:
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

		var wrappedDB *dbmetrics.DB
		if cfg.Metrics.Enabled {
			wrappedDB = dbmetrics.WrapWithDefault(db, metricsCollector, cfg.Database.DBName, stopMetricsCh)
			log.Info("Database metrics collection started")
		} else {
			wrappedDB = dbmetrics.New(db)
		}

		store = storage{
			items:    itemRepo.NewRepository(wrappedDB),
			windows:  windowRepo.NewRepository(wrappedDB),
			bookings: bookingRepo.NewRepository(wrappedDB),
			tx:       txmanager.NewTransactionManager(wrappedDB),
		}
	}

	// Движок расчета стоимости
	location, err := cfg.Booking.Location()
	if err != nil {
		log.Fatal("Invalid booking timezone: %v", err)
	}
	engine := quote.NewEngine(&quote.RealTimeProvider{}, location)

	// Интеграции
	var userClient createBookingUC.UserServiceClient
	if cfg.UserService.Enabled {
		userClient = userServiceClient.NewClient(
			cfg.UserService.URL,
			time.Duration(cfg.UserService.Timeout)*time.Second,
			log,
		)
		log.Info("UserService client initialized (url=%s, timeout=%ds)", cfg.UserService.URL, cfg.UserService.Timeout)
	}

	var publisher eventPublisher = events.NoopPublisher{}
	if cfg.Events.Enabled {
		kafkaPublisher, err := events.NewKafkaPublisher(cfg.Events.Brokers, cfg.Events.Topic, cfg.Events.ClientID, log)
		if err != nil {
			log.Fatal("Failed to create event publisher: %v", err)
		}
		publisher = kafkaPublisher
		log.Info("Event publisher initialized (brokers=%v, topic=%s)", cfg.Events.Brokers, cfg.Events.Topic)
	}
	defer publisher.Close()

	// Инициализируем сервисы
	bookingSvc := bookingsService.NewService(store.bookings, publisher, store.tx, log)
	blockSvc := blocksService.NewService(store.items, store.windows, engine, store.tx, log)

	// Инициализируем use cases
	getQuoteUseCase := getQuoteUC.NewUseCase(store.items, store.windows, engine, log)
	createBookingUseCase := createBookingUC.NewUseCase(
		store.items,
		store.windows,
		store.bookings,
		engine,
		userClient,
		publisher,
		store.tx,
		metricsCollector,
		log,
	)

	// Фоновые задачи
	jobRunner := jobs.NewJobRunner(store.bookings, publisher, cfg.Booking.PendingTTL(), log)
	sched, err := scheduler.NewScheduler(jobRunner, scheduler.Config{
		ExpirePendingBookings: cfg.Scheduler.ExpirePendingBookings,
	}, log)
	if err != nil {
		log.Fatal("Failed to create scheduler: %v", err)
	}
	if sched.HasJobs() {
		sched.Start()
		log.Info("Scheduler started (expire_pending_bookings=%q)", cfg.Scheduler.ExpirePendingBookings)
	}

	// Инициализируем handlers
	getQuote := getQuoteHandler.NewHandler(getQuoteUseCase, log)
	getItemAvailability := getItemAvailabilityHandler.NewHandler(blockSvc, log)
	createBooking := createBookingHandler.NewHandler(createBookingUseCase, log)
	getBooking := getBookingHandler.NewHandler(bookingSvc, log)
	cancelBooking := cancelBookingHandler.NewHandler(bookingSvc, log)
	updateBookingStatus := updateBookingStatusHandler.NewHandler(bookingSvc, log)
	releaseDeposit := releaseDepositHandler.NewHandler(bookingSvc, log)
	getUserBookings := getUserBookingsHandler.NewHandler(bookingSvc, log)
	getOwnerBookings := getOwnerBookingsHandler.NewHandler(bookingSvc, log)
	createBlock := createBlockHandler.NewHandler(blockSvc, log)
	deleteBlock := deleteBlockHandler.NewHandler(blockSvc, log)

	// Настраиваем роутер
	r := mux.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Logging(log))

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

	// Расчет стоимости аренды
	api.HandleFunc("/items/{itemId}/quote", getQuote.Handle).Methods(http.MethodGet)

	// Календарь недоступности вещи
	api.HandleFunc("/items/{itemId}/availability", getItemAvailability.Handle).Methods(http.MethodGet)

	// ============================================================
	// PROTECTED ROUTES (требуют X-User-ID header)
	// ============================================================

	protected := api.PathPrefix("").Subrouter()
	protected.Use(middleware.Auth)

	// --- Бронирования ---
	protected.HandleFunc("/bookings", createBooking.Handle).Methods(http.MethodPost)
	protected.HandleFunc("/bookings/{bookingId}", getBooking.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/bookings/{bookingId}/cancel", cancelBooking.Handle).Methods(http.MethodPatch)
	protected.HandleFunc("/bookings/{bookingId}/status", updateBookingStatus.Handle).Methods(http.MethodPatch)
	protected.HandleFunc("/bookings/{bookingId}/deposit-release", releaseDeposit.Handle).Methods(http.MethodPatch)

	// История аренд пользователя
	protected.HandleFunc("/users/{userId}/bookings", getUserBookings.Handle).Methods(http.MethodGet)

	// --- Для владельцев вещей ---
	protected.HandleFunc("/owners/{ownerId}/bookings", getOwnerBookings.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/items/{itemId}/blocks", createBlock.Handle).Methods(http.MethodPost)
	protected.HandleFunc("/items/{itemId}/blocks/{blockId}", deleteBlock.Handle).Methods(http.MethodDelete)

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

	sched.Stop()

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
