package cmd

import (
	"github.com/spf13/cobra"
)

func exportCommand(configFile *string) *cobra.Command {
	return &cobra.Command{
		Use:   "export",
		Short: "Export clinically relevant scans to the destination archive",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := buildApp(*configFile)
			if err != nil {
				return err
			}
			return a.exportSvc.ExportSessions(cmd.Context())
		},
	}
}
