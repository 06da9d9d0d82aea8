package server

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"

	"opendesk/internal/application/ticket/services"
	"opendesk/internal/application/ticket/usecases"
	"opendesk/internal/domain/ticket"
	"opendesk/internal/infrastructure/cache"
	"opendesk/internal/infrastructure/config"
	"opendesk/internal/infrastructure/database"
	"opendesk/internal/infrastructure/email"
	"opendesk/internal/infrastructure/migration"
	"opendesk/internal/infrastructure/repository"
	"opendesk/internal/infrastructure/scheduler"
	"opendesk/internal/infrastructure/storage"
	tickethandlers "opendesk/internal/interfaces/http/handlers/ticket"
	"opendesk/internal/interfaces/http/middleware"
	"opendesk/internal/interfaces/http/routes"
	"opendesk/internal/shared/db"
	"opendesk/internal/shared/logger"
	"opendesk/internal/shared/services/sanitize"
)

var (
	env                string
	autoMigrate        bool
	skipMigrationCheck bool
)

func NewCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "server",
		Short: "Start the HTTP server",
		Long:  `Start the OpenDesk ticket server with the specified configuration.`,
		RunE:  run,
	}

	cmd.Flags().StringVarP(&env, "env", "e", "", "environment (development, production)")
	cmd.Flags().BoolVar(&autoMigrate, "auto-migrate", false, "run database migrations before starting")
	cmd.Flags().BoolVar(&skipMigrationCheck, "skip-migration-check", false, "skip the pending-migration check on startup")

	return cmd
}

func run(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(env)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	if err := logger.Init(&cfg.Logger); err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}

	switch cfg.Server.Mode {
	case "release", "production":
		gin.SetMode(gin.ReleaseMode)
	case "test":
		gin.SetMode(gin.TestMode)
	default:
		gin.SetMode(gin.DebugMode)
	}
	gin.DefaultWriter = io.Discard

	if err := database.Init(&cfg.Database); err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}
	defer func() {
		if err := database.Close(); err != nil {
			logger.Error("failed to close database", "error", err)
		}
	}()

	if err := handleMigrations(cfg); err != nil {
		return err
	}

	engine, sweep, err := buildApplication(cmd.Context(), cfg)
	if err != nil {
		return err
	}

	sched, err := scheduler.NewSchedulerManager(logger.NewLogger())
	if err != nil {
		return fmt.Errorf("failed to create scheduler: %w", err)
	}
	if err := sched.RegisterAutoCloseJob(sweep, cfg.Ticket.SweepIntervalMinutes); err != nil {
		return fmt.Errorf("failed to register auto-close job: %w", err)
	}
	sched.Start()
	defer func() {
		if err := sched.Stop(); err != nil {
			logger.Error("failed to stop scheduler", "error", err)
		}
	}()

	server := &http.Server{
		Addr:              cfg.Server.GetAddr(),
		Handler:           engine,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("starting HTTP server", "addr", server.Addr, "mode", cfg.Server.Mode)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		return fmt.Errorf("server error: %w", err)
	case sig := <-quit:
		logger.Info("shutting down server", "signal", sig.String())
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}

	logger.Info("server stopped")
	return nil
}

// buildApplication wires repositories, domain services and use cases into
// a ready gin engine plus the auto-close sweep job for the scheduler.
func buildApplication(ctx context.Context, cfg *config.Config) (*gin.Engine, scheduler.BatchJob, error) {
	gormDB := database.Get()
	log := logger.NewLogger()

	var ticketRepo ticket.TicketRepository = repository.NewTicketRepository(gormDB)
	if client, err := cache.NewRedisClient(ctx, &cfg.Redis); err != nil {
		logger.Warn("redis unavailable, ticket code lookups will hit the database", "error", err)
	} else {
		ttl := time.Duration(cfg.Redis.TicketCacheTTLSeconds) * time.Second
		ticketRepo = cache.NewTicketCodeCache(ticketRepo, client, ttl, log)
	}

	replyRepo := repository.NewReplyRepository(gormDB)
	attachmentRepo := repository.NewAttachmentRepository(gormDB)
	directoryRepo := repository.NewDirectoryRepository(gormDB)

	txManager := db.NewTransactionManager(gormDB)
	codes := ticket.NewRandomCodeGenerator(cfg.Ticket.CodeLength)
	replyCoder := ticket.NewReplyCoder(cfg.Ticket.ReplySecret)
	chlog := services.NewChangeLogSynthesizer(directoryRepo)
	sanitizer := sanitize.NewService()

	store, err := storage.NewLocalStore(cfg.Storage.AttachmentDir, log)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to initialize attachment storage: %w", err)
	}

	mailer := email.NewSMTPDispatcher(email.SMTPConfig{
		Host:        cfg.Email.SMTPHost,
		Port:        cfg.Email.SMTPPort,
		Username:    cfg.Email.SMTPUser,
		Password:    cfg.Email.SMTPPassword,
		FromAddress: cfg.Email.FromAddress,
		FromName:    cfg.Email.FromName,
	}, log)

	addTicketUC := usecases.NewAddTicketUseCase(ticketRepo, directoryRepo, codes, txManager, log)
	addReplyUC := usecases.NewAddReplyUseCase(ticketRepo, replyRepo, attachmentRepo, directoryRepo, chlog, store, mailer, replyCoder, sanitizer, txManager, log)
	editTicketUC := usecases.NewEditTicketUseCase(ticketRepo, replyRepo, directoryRepo, chlog, txManager, log)
	closeTicketUC := usecases.NewCloseTicketUseCase(editTicketUC, log)
	bulkEditUC := usecases.NewBulkEditUseCase(ticketRepo, directoryRepo, editTicketUC, log)
	mergeTicketsUC := usecases.NewMergeTicketsUseCase(ticketRepo, replyRepo, directoryRepo, chlog, mailer, cfg.Ticket.SystemStaffID, txManager, log)
	splitTicketUC := usecases.NewSplitTicketUseCase(ticketRepo, replyRepo, codes, txManager, log)
	autoCloseUC := usecases.NewAutoCloseUseCase(ticketRepo, directoryRepo, addReplyUC, closeTicketUC, cfg.Ticket.SystemStaffID, log)
	getTicketUC := usecases.NewGetTicketUseCase(ticketRepo, replyRepo, log)
	getByCodeUC := usecases.NewGetTicketByCodeUseCase(ticketRepo, replyRepo, replyCoder, log)
	listTicketsUC := usecases.NewListTicketsUseCase(ticketRepo, log)
	searchTicketsUC := usecases.NewSearchTicketsUseCase(ticketRepo, log)

	handler := tickethandlers.NewTicketHandler(
		addTicketUC,
		addReplyUC,
		editTicketUC,
		bulkEditUC,
		closeTicketUC,
		mergeTicketsUC,
		splitTicketUC,
		getTicketUC,
		getByCodeUC,
		listTicketsUC,
		searchTicketsUC,
	)

	engine := gin.New()
	engine.Use(gin.Recovery(), middleware.Logger(log))
	routes.SetupTicketRoutes(engine, &routes.TicketRouteConfig{TicketHandler: handler})

	return engine, autoCloseJob{uc: autoCloseUC}, nil
}

// autoCloseJob adapts the auto-close use case to the scheduler's BatchJob.
type autoCloseJob struct {
	uc *usecases.AutoCloseUseCase
}

func (j autoCloseJob) Execute(ctx context.Context) (int, error) {
	return j.uc.SweepAll(ctx)
}

func handleMigrations(cfg *config.Config) error {
	gormDB := database.Get()

	if autoMigrate {
		logger.Info("running database migrations")
		manager := migration.NewManager(cfg.Server.Mode)
		if err := manager.Migrate(gormDB, migration.AutoMigrateModels()...); err != nil {
			return fmt.Errorf("migration failed: %w", err)
		}
		logger.Info("database migrations completed")
		return nil
	}

	if skipMigrationCheck || cfg.Server.Mode == "development" || cfg.Server.Mode == "debug" {
		return nil
	}

	version, err := migration.NewGooseStrategy(migration.DefaultScriptsPath).GetVersion(gormDB)
	if err != nil {
		return fmt.Errorf("failed to check migration version: %w", err)
	}
	if version == 0 {
		return fmt.Errorf("database is not migrated, run with --auto-migrate or apply migrations first")
	}

	logger.Info("database schema version", "version", version)
	return nil
}
