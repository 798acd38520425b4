package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"imaging-report-service/internal/domain/entities"
)

func queuesCommand(configFile *string) *cobra.Command {
	return &cobra.Command{
		Use:   "queues",
		Short: "Show the reporting and repair queues",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := buildApp(*configFile)
			if err != nil {
				return err
			}
			toReport, err := a.reportSvc.SessionsToReport(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Printf("%d sessions awaiting a report\n", len(toReport))
			for i := range toReport {
				printSession(&toReport[i])
			}

			toRepair, err := a.repairSvc.SessionsToRepair(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Printf("%d sessions awaiting repair\n", len(toRepair))
			for i := range toRepair {
				printSession(&toRepair[i])
			}
			return nil
		},
	}
}

func printSession(session *entities.ImgSession) {
	fmt.Printf("  %s\t%s\t%s\t%s\t%s\n",
		session.ID,
		session.Subject.MbiID,
		session.XnatID,
		session.ScanDate.Format("2006-01-02"),
		session.DataStatus)
}
