package cmd

import (
	"github.com/spf13/cobra"

	"imaging-report-service/internal/constants"
	"imaging-report-service/internal/domain/entities"
)

// Legacy reporter accounts dummy reports are attributed to during import.
// Seeded here so an import against a fresh database can resolve them.
var legacyReporters = []struct {
	email     string
	firstName string
	lastName  string
}{
	{"nicholas.ferris@monash.edu", "Nicholas", "Ferris"},
	{"s.ahern@axisdi.com.au", "Susan", "Ahern"},
	{"paul.beech@monash.edu", "Paul", "Beech"},
}

func migrateCommand(configFile *string) *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Create or update the database schema and seed reporter accounts",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := buildApp(*configFile)
			if err != nil {
				return err
			}
			err = a.db.AutoMigrate(
				&entities.Project{},
				&entities.Subject{},
				&entities.User{},
				&entities.ScanType{},
				&entities.ImgSession{},
				&entities.Scan{},
				&entities.Report{},
			)
			if err != nil {
				return err
			}
			for _, reporter := range legacyReporters {
				_, err := a.users.GetOrCreateByEmail(cmd.Context(),
					reporter.email, reporter.firstName, reporter.lastName,
					constants.ReporterRole)
				if err != nil {
					return err
				}
			}
			a.logger.Info("database migrated")
			return nil
		},
	}
}
