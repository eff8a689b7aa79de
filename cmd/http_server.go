package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/frahmantamala/workforce-management/internal"
	"github.com/frahmantamala/workforce-management/internal/auth"
	authPostgres "github.com/frahmantamala/workforce-management/internal/auth/postgres"
	"github.com/frahmantamala/workforce-management/internal/conference"
	conferencePostgres "github.com/frahmantamala/workforce-management/internal/conference/postgres"
	"github.com/frahmantamala/workforce-management/internal/core/events"
	"github.com/frahmantamala/workforce-management/internal/delegation"
	delegationPostgres "github.com/frahmantamala/workforce-management/internal/delegation/postgres"
	"github.com/frahmantamala/workforce-management/internal/notification"
	notificationPostgres "github.com/frahmantamala/workforce-management/internal/notification/postgres"
	"github.com/frahmantamala/workforce-management/internal/task"
	taskPostgres "github.com/frahmantamala/workforce-management/internal/task/postgres"
	"github.com/frahmantamala/workforce-management/internal/transport/rest"
	"github.com/frahmantamala/workforce-management/internal/user"
	userPostgres "github.com/frahmantamala/workforce-management/internal/user/postgres"
	"github.com/frahmantamala/workforce-management/pkg/logger"

	"github.com/go-chi/chi"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/jmoiron/sqlx"
	"github.com/spf13/cobra"
	gormPostgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

var httpServerCmd = &cobra.Command{
	Use:   "server",
	Short: "Start HTTP server",
	Long:  `Start the HTTP server to handle API requests`,
	Run: func(cmd *cobra.Command, args []string) {
		startHTTPServer()
	},
}

type Dependencies struct {
	Config   *internal.Config
	DB       *sqlx.DB
	GormDB   *gorm.DB
	Router   *chi.Mux
	Handlers rest.Handlers
	Guards   *auth.RoleAuthorization
	Logger   *slog.Logger
}

func startHTTPServer() {
	deps, err := initializeDependencies()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize dependencies: %v\n", err)
		os.Exit(1)
	}

	setupRoutes(deps)

	addr := fmt.Sprintf(":%d", deps.Config.Server.Port)
	slog.Info("Starting HTTP server", "address", addr)

	server := &http.Server{
		Addr:         addr,
		Handler:      deps.Router,
		ReadTimeout:  deps.Config.Server.ReadTimeout,
		WriteTimeout: deps.Config.Server.WriteTimeout,
		IdleTimeout:  deps.Config.Server.IdleTimeout,
	}

	// Signal handling for graceful shutdown
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	serverErrChan := make(chan error, 1)
	go func() {
		serverErrChan <- server.ListenAndServe()
	}()

	select {
	case sig := <-sigChan:
		slog.Info("Received signal, shutting down...", "signal", sig)
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		if err := server.Shutdown(ctx); err != nil {
			slog.Error("Server shutdown error", "error", err)
		}
		if err := deps.DB.Close(); err != nil {
			slog.Error("Database close error", "error", err)
		}
	case err := <-serverErrChan:
		if err != nil && err != http.ErrServerClosed {
			slog.Error("Server failed to start", "error", err)
			os.Exit(1)
		}
	}

	slog.Info("Server stopped")
}

func setupRoutes(deps *Dependencies) {
	rest.RegisterAllRoutes(deps.Router, deps.DB.DB, deps.Handlers, deps.Guards, deps.Logger)
}

func initializeDependencies() (*Dependencies, error) {
	config, err := loadConfig(".")
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	if config.Observability.Logging.Format == "json" {
		logger.Init("production")
	} else {
		logger.Init("development")
	}
	lg := logger.LoggerWrapper()

	db, err := initDB(config.Database)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	gormDB, err := gorm.Open(gormPostgres.New(gormPostgres.Config{Conn: db.DB}), &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("failed to initialize ORM: %w", err)
	}

	eventBus := events.NewEventBus(lg)

	// Notification dispatch is the shared fire-and-forget sink.
	notificationRepo := notificationPostgres.NewNotificationRepository(gormDB)
	dispatcher := notification.NewDispatcher(notificationRepo, lg)
	notificationService := notification.NewService(notificationRepo, lg)

	userRepo := userPostgres.NewUserRepository(gormDB)
	userService := user.NewService(userRepo, dispatcher, eventBus, lg)

	taskRepo := taskPostgres.NewTaskRepository(gormDB)
	taskService := task.NewService(taskRepo, userService, eventBus, lg)

	delegationRepo := delegationPostgres.NewDelegationRepository(gormDB)
	delegationService := delegation.NewService(delegationRepo, taskService, userService, dispatcher, eventBus, lg)

	// close out approved delegations once their task is finished
	eventBus.Subscribe(events.EventTypeTaskCompleted, func(ctx context.Context, e events.Event) error {
		if tc, ok := e.(*events.TaskCompletedEvent); ok {
			return delegationService.CompleteForTask(ctx, tc.TaskID)
		}
		return nil
	})

	conferenceRepo := conferencePostgres.NewConferenceRepository(gormDB)
	conferenceService := conference.NewService(
		conferenceRepo,
		dispatcher,
		eventBus,
		lg,
		config.Conference.JoinURLBase,
		config.Conference.DefaultDuration,
	)

	tokenGenerator := auth.NewJWTTokenGenerator(
		config.Security.AccessTokenSecret,
		config.Security.RefreshTokenSecret,
		config.Security.AccessTokenDuration,
		config.Security.RefreshTokenDuration,
	)
	authRepo := authPostgres.NewRepository(gormDB)
	authService := auth.NewService(authRepo, tokenGenerator)

	handlers := rest.Handlers{
		Auth:         auth.NewHandler(authService),
		User:         user.NewHandler(userService),
		Task:         task.NewHandler(taskService),
		Delegation:   delegation.NewHandler(delegationService),
		Notification: notification.NewHandler(notificationService),
		Conference:   conference.NewHandler(conferenceService),
	}

	return &Dependencies{
		Config:   config,
		Logger:   lg,
		DB:       db,
		GormDB:   gormDB,
		Router:   chi.NewRouter(),
		Handlers: handlers,
		Guards:   auth.NewRoleAuthorization(lg),
	}, nil
}

// initDB initializes the database connection
func initDB(cfg internal.DatabaseConfig) (*sqlx.DB, error) {
	const driver = "pgx"

	dbConn, err := sqlx.Connect(driver, cfg.Source)
	if err != nil {
		return nil, fmt.Errorf("failed to open db connection: %w", err)
	}

	dbConn.SetMaxIdleConns(cfg.MaxIdleConns)
	dbConn.SetMaxOpenConns(cfg.MaxOpenConns)

	// verify connection; close underlying *sql.DB on failure
	if err := dbConn.Ping(); err != nil {
		_ = dbConn.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return dbConn, nil
}
