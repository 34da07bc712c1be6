package main

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/kakeibo-dev/kakeibo/internal/domain/categorization"
	importrepo "github.com/kakeibo-dev/kakeibo/internal/domain/import/repository"
	importservice "github.com/kakeibo-dev/kakeibo/internal/domain/import/service"
	"github.com/kakeibo-dev/kakeibo/internal/domain/mail"
	"github.com/kakeibo-dev/kakeibo/pkg/config"
	"github.com/kakeibo-dev/kakeibo/pkg/cron"
	"github.com/kakeibo-dev/kakeibo/pkg/db"
)

// Dependencies holds all application dependencies
type Dependencies struct {
	Config *config.Config
	DB     *db.DB
	Logger *slog.Logger

	// Repositories
	TransactionStore *importrepo.PostgresStore
	MappingRepo      *categorization.Repository

	// Services
	Engine        *categorization.Engine
	ImportService *importservice.Service
	Scheduler     *cron.Scheduler
}

// InitDependencies initializes all application dependencies
func InitDependencies(cfg *config.Config, logger *slog.Logger) (*Dependencies, error) {
	deps := &Dependencies{
		Config: cfg,
		Logger: logger,
	}

	if err := deps.initDatabase(); err != nil {
		return nil, fmt.Errorf("failed to init database: %w", err)
	}

	deps.initServices()

	logger.Info("all dependencies initialized successfully")
	return deps, nil
}

// initDatabase initializes the database connection and runs migrations
func (d *Dependencies) initDatabase() error {
	database, err := db.New(db.Config{
		DSN:             d.Config.Database.DSN(),
		MaxConns:        10,
		MinConns:        2,
		MaxConnLifetime: 5 * time.Minute,
		MaxConnIdleTime: 10 * time.Minute,
	}, d.Logger)
	if err != nil {
		return err
	}

	d.DB = database

	if err := d.DB.RunMigrations(); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	d.Logger.Info("database connected and migrations completed successfully")
	return nil
}

// initServices wires the ingestion pipeline
func (d *Dependencies) initServices() {
	d.TransactionStore = importrepo.NewPostgresStore(d.DB.Pool)
	d.MappingRepo = categorization.NewRepository(d.DB.Pool)
	d.Engine = categorization.DefaultEngine()

	var mailSource importservice.MailSource
	if d.Config.MailConfigured() {
		mailSource = mail.NewDirSource(d.Config.Mail.Dir)
	}

	d.ImportService = importservice.NewService(
		d.TransactionStore,
		d.MappingRepo,
		d.Engine,
		mailSource,
		d.Logger,
	)
	d.Scheduler = cron.NewScheduler(d.ImportService, d.Config.Mail.SyncSchedule, d.Logger)

	d.Logger.Info("services initialized")
}

// Cleanup closes all resources
func (d *Dependencies) Cleanup() {
	if d.DB != nil {
		d.DB.Close()
	}
	d.Logger.Info("cleanup completed")
}
