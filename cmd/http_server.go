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

	"github.com/danuprasetya/hr-management/internal"
	"github.com/danuprasetya/hr-management/internal/announcement"
	announcementPostgres "github.com/danuprasetya/hr-management/internal/announcement/postgres"
	"github.com/danuprasetya/hr-management/internal/claim"
	claimPostgres "github.com/danuprasetya/hr-management/internal/claim/postgres"
	"github.com/danuprasetya/hr-management/internal/core/events"
	"github.com/danuprasetya/hr-management/internal/directory"
	directoryPostgres "github.com/danuprasetya/hr-management/internal/directory/postgres"
	"github.com/danuprasetya/hr-management/internal/identity"
	identityPostgres "github.com/danuprasetya/hr-management/internal/identity/postgres"
	"github.com/danuprasetya/hr-management/internal/session"
	sessionPostgres "github.com/danuprasetya/hr-management/internal/session/postgres"
	"github.com/danuprasetya/hr-management/internal/transport/middleware"
	"github.com/danuprasetya/hr-management/internal/transport/rest"
	"github.com/danuprasetya/hr-management/internal/transport/swagger"
	"github.com/danuprasetya/hr-management/pkg/logger"

	"github.com/go-chi/chi"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/jmoiron/sqlx"
	"github.com/spf13/cobra"
	gormPostgres "gorm.io/driver/postgres"
	gormSqlite "gorm.io/driver/sqlite"
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
	Config  *internal.Config
	DB      *sqlx.DB
	GormDB  *gorm.DB
	Router  *chi.Mux
	Logger  *slog.Logger
	Session *session.Manager
}

func startHTTPServer() {
	deps, err := initializeDependencies()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize dependencies: %v\n", err)
		os.Exit(1)
	}

	addr := fmt.Sprintf(":%d", deps.Config.Server.Port)
	deps.Logger.Info("starting HTTP server", "address", addr)

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
		deps.Logger.Info("received signal, shutting down", "signal", sig.String())
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		if err := server.Shutdown(ctx); err != nil {
			deps.Logger.Error("server shutdown error", "error", err)
		}
		deps.Session.Close()
		if err := deps.DB.Close(); err != nil {
			deps.Logger.Error("database close error", "error", err)
		}
	case err := <-serverErrChan:
		if err != nil && err != http.ErrServerClosed {
			deps.Logger.Error("server failed to start", "error", err)
			os.Exit(1)
		}
	}

	deps.Logger.Info("server stopped")
}

func initializeDependencies() (*Dependencies, error) {
	config, err := loadConfig(".")
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	logger.Init(config.Logging.Level, config.Logging.Format)
	lg := logger.LoggerWrapper()

	if err := swagger.ValidateSpec(context.Background(), "./api/openapi.yml"); err != nil {
		return nil, fmt.Errorf("invalid OpenAPI spec: %w", err)
	}

	db, gormDB, err := initDB(config.Database)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	bus := events.NewEventBus(lg)

	// identity
	credentialRepo := identityPostgres.NewRepository(gormDB)
	tokenGenerator := identity.NewJWTTokenGenerator(
		config.Security.AccessTokenSecret,
		config.Security.RefreshTokenSecret,
		config.Security.AccessTokenDuration,
		config.Security.RefreshTokenDuration,
	)
	provider := identity.NewLocalProvider(credentialRepo, tokenGenerator, bus, lg, config.Security.BCryptCost)

	// session
	profileStore := sessionPostgres.NewStore(gormDB)
	sessionManager := session.NewManager(provider, profileStore, lg)
	sessionManager.Start(context.Background())
	sessionHandler := session.NewHandler(sessionManager, provider)

	// directory
	directoryService := directory.NewService(directoryPostgres.NewRepository(db), lg)
	directoryHandler := directory.NewHandler(directoryService)

	// claims
	claimService := claim.NewService(claimPostgres.NewClaimRepository(gormDB), lg)
	claimHandler := claim.NewHandler(claimService)

	// announcements
	announcementService := announcement.NewService(announcementPostgres.NewAnnouncementRepository(gormDB), lg)
	announcementHandler := announcement.NewHandler(announcementService)

	authn := middleware.NewAuthenticator(provider, profileStore)

	router := chi.NewRouter()
	rest.RegisterAllRoutes(router, db.DB, authn, sessionHandler, directoryHandler, claimHandler, announcementHandler, lg)

	return &Dependencies{
		Config:  config,
		Logger:  lg,
		DB:      db,
		GormDB:  gormDB,
		Router:  router,
		Session: sessionManager,
	}, nil
}

// initDB opens the configured database once and hands the same connection to
// sqlx and gorm.
func initDB(cfg internal.DatabaseConfig) (*sqlx.DB, *gorm.DB, error) {
	var (
		sqlxDB *sqlx.DB
		err    error
	)

	switch cfg.Driver {
	case "sqlite":
		sqlxDB, err = sqlx.Connect("sqlite3", cfg.Source)
	default:
		sqlxDB, err = sqlx.Connect("pgx", cfg.Source)
	}
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open db connection: %w", err)
	}

	sqlxDB.SetMaxIdleConns(cfg.MaxIdleConns)
	sqlxDB.SetMaxOpenConns(cfg.MaxOpenConns)
	sqlxDB.SetConnMaxLifetime(cfg.ConnMaxLifetime)
	sqlxDB.SetConnMaxIdleTime(cfg.ConnMaxIdleTime)

	if err := sqlxDB.Ping(); err != nil {
		_ = sqlxDB.Close()
		return nil, nil, fmt.Errorf("failed to ping database: %w", err)
	}

	var dialector gorm.Dialector
	if cfg.Driver == "sqlite" {
		dialector = gormSqlite.Dialector{Conn: sqlxDB.DB}
	} else {
		dialector = gormPostgres.New(gormPostgres.Config{Conn: sqlxDB.DB})
	}

	gormDB, err := gorm.Open(dialector, &gorm.Config{})
	if err != nil {
		_ = sqlxDB.Close()
		return nil, nil, fmt.Errorf("failed to open gorm connection: %w", err)
	}

	return sqlxDB, gormDB, nil
}
