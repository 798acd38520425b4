package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

func importCommand(configFile *string) *cobra.Command {
	return &cobra.Command{
		Use:   "import [export-file]",
		Short: "Import imaging sessions from a FileMaker CSV export",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := buildApp(*configFile)
			if err != nil {
				return err
			}
			path := a.settings.Import.ExportFile
			if len(args) == 1 {
				path = args[0]
			}
			if path == "" {
				return fmt.Errorf("no export file given and import.export_file not configured")
			}
			result, err := a.importSvc.ImportFile(cmd.Context(), path)
			if err != nil {
				return err
			}
			fmt.Printf("Imported %d sessions (%d previously imported, %d skipped)\n",
				len(result.Imported), len(result.Previous), len(result.Skipped))
			for _, row := range result.Skipped {
				fmt.Printf("  skipped %s (project %s)\n", row.StudyID, row.ProjectID)
			}
			return nil
		},
	}
}
