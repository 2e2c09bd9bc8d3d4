package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/subosito/gotenv"
	"go.uber.org/zap"

	"github.com/campuscell/events-portal/internal/certificate"
	"github.com/campuscell/events-portal/internal/config"
	"github.com/campuscell/events-portal/internal/document"
	"github.com/campuscell/events-portal/internal/export"
	"github.com/campuscell/events-portal/internal/repository"
	"github.com/campuscell/events-portal/internal/server"
	"github.com/campuscell/events-portal/internal/service"
	"github.com/campuscell/events-portal/internal/worker"
	"github.com/campuscell/events-portal/pkg/database"
	"github.com/campuscell/events-portal/pkg/utils"
)

func main() {
	// Load .env if present; real env vars win
	_ = gotenv.Load()

	cfg, err := config.Load("configs/config.yaml")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	logger, err := utils.NewLogger(utils.LoggerConfig{
		Level:      cfg.Logger.Level,
		OutputPath: cfg.Logger.OutputPath,
		Format:     cfg.Logger.Format,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	logger.Info("Starting Events Portal",
		zap.String("version", "1.0.0"),
		zap.Int("port", cfg.Server.Port))

	db, err := database.New(database.Config{
		Path:            cfg.Database.Path,
		MaxOpenConns:    cfg.Database.MaxOpenConns,
		MaxIdleConns:    cfg.Database.MaxIdleConns,
		ConnMaxLifetime: cfg.Database.ConnMaxLifetime,
	}, logger)
	if err != nil {
		logger.Fatal("Failed to initialize database", zap.Error(err))
	}
	defer db.Close()

	migrator := database.NewMigrator(db, logger)
	if err := migrator.RunMigrations(cfg.Database.MigrationsDir); err != nil {
		logger.Fatal("Failed to run database migrations", zap.Error(err))
	}

	if cfg.Documents.OutputDir != "" {
		if err := os.MkdirAll(cfg.Documents.OutputDir, 0755); err != nil {
			logger.Fatal("Failed to create documents directory", zap.Error(err))
		}
	}

	// Repositories
	programmeRepo := repository.NewProgrammeRepository(db.DB, logger)
	documentRepo := repository.NewDocumentRepository(db.DB, logger)

	// Document composition
	composer := document.NewComposer(document.Config{
		InstitutionName:  cfg.Institution.Name,
		CentreName:       cfg.Institution.CentreName,
		Place:            cfg.Institution.Place,
		OverheadPercent:  cfg.Documents.OverheadPercent,
		ReceiptSignatory: cfg.Documents.ReceiptSignatory,
	}, logger)

	registry := certificate.NewRegistry()
	renderer := certificate.NewRenderer(logger)
	budgetWriter := export.NewBudgetSheetWriter(cfg.Documents.OverheadPercent, logger)

	// Services
	programmeService := service.NewProgrammeService(programmeRepo, logger)
	reviewService := service.NewReviewService(programmeRepo, logger)
	documentService := service.NewDocumentService(
		programmeRepo,
		documentRepo,
		composer,
		budgetWriter,
		registry,
		renderer,
		logger,
	)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Background workers
	manager := worker.NewManager(logger)
	if cfg.Audit.Enabled {
		manager.Register(worker.NewClaimAuditor(programmeRepo, cfg.Audit.Interval, logger))
	}
	if err := manager.StartAll(ctx); err != nil {
		logger.Fatal("Failed to start workers", zap.Error(err))
	}
	defer manager.StopAll()

	// HTTP server
	srv := server.NewServer(server.Config{
		Host:         cfg.Server.Host,
		Port:         cfg.Server.Port,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}, programmeService, reviewService, documentService, registry, logger)

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Start(ctx)
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-quit:
		logger.Info("Shutting down", zap.String("signal", sig.String()))
		cancel()
		<-errCh
	case err := <-errCh:
		if err != nil {
			logger.Fatal("HTTP server failed", zap.Error(err))
		}
	}

	logger.Info("Events Portal stopped")
}
