// Package cmd wires the workflow services into the command line interface.
package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"imaging-report-service/internal/adapters"
	"imaging-report-service/internal/config"
	"imaging-report-service/internal/domain/repositories"
	"imaging-report-service/internal/services"
)

// app holds the constructed application context passed to each subcommand,
// so workflow operations receive their collaborators explicitly.
type app struct {
	settings *config.Settings
	db       *gorm.DB
	logger   *slog.Logger

	users     repositories.UserRepositoryContract
	importSvc services.ImportServiceContract
	reportSvc services.ReportServiceContract
	repairSvc services.RepairServiceContract
	scanTypes services.ScanTypeServiceContract
	exportSvc services.ExportServiceContract
}

func buildApp(configFile string) (*app, error) {
	settings, err := config.Load(configFile)
	if err != nil {
		return nil, err
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))

	db, err := gorm.Open(postgres.Open(settings.Database.DSN), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Warn),
	})
	if err != nil {
		return nil, fmt.Errorf("connecting to database: %w", err)
	}

	projects := repositories.NewProjectRepository(db)
	subjects := repositories.NewSubjectRepository(db)
	sessions := repositories.NewSessionRepository(db)
	scanTypes := repositories.NewScanTypeRepository(db)
	reports := repositories.NewReportRepository(db)
	users := repositories.NewUserRepository(db)

	source := archiveFactory(settings.Source, logger)
	target := archiveFactory(settings.Target, logger)

	return &app{
		settings:  settings,
		db:        db,
		logger:    logger,
		users:     users,
		importSvc: services.NewImportService(projects, subjects, sessions, reports, users, source, logger),
		reportSvc: services.NewReportService(sessions, reports, logger),
		repairSvc: services.NewRepairService(sessions, source, logger),
		scanTypes: services.NewScanTypeService(scanTypes, settings.RowsPerPage, logger),
		exportSvc: services.NewExportService(sessions, source, target,
			settings.Target.Project, settings.Export.DownloadDir, logger),
	}, nil
}

func archiveFactory(settings config.ArchiveSettings, logger *slog.Logger) adapters.ArchiveClientFactory {
	return func(ctx context.Context) (adapters.ArchiveClient, error) {
		if settings.URL == "" {
			return nil, fmt.Errorf("archive URL not configured")
		}
		return adapters.NewXNATClient(settings.URL, settings.User, settings.Password, logger), nil
	}
}

// RootCommand creates and returns the root command.
func RootCommand() *cobra.Command {
	var configFile string

	rootCmd := &cobra.Command{
		Use:           "imaging-report-service",
		Short:         "MBI imaging session reporting workflow CLI",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	rootCmd.PersistentFlags().StringVarP(&configFile, "config", "c", "", "Path to the YAML config file")

	rootCmd.AddCommand(
		migrateCommand(&configFile),
		importCommand(&configFile),
		exportCommand(&configFile),
		confirmTypesCommand(&configFile),
		queuesCommand(&configFile),
	)
	return rootCmd
}

// Execute runs the root command and exits non-zero on failure.
func Execute() {
	if err := RootCommand().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
