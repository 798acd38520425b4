package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"imaging-report-service/internal/domain/dtos"
)

func confirmTypesCommand(configFile *string) *cobra.Command {
	var shown, clinical []uint

	cmd := &cobra.Command{
		Use:   "confirm-types",
		Short: "List or confirm the clinical relevance of scan types",
		Long: "Without flags, lists the next page of unconfirmed scan types.\n" +
			"With --shown (and optionally --clinical), confirms the given batch:\n" +
			"ids in --clinical are marked clinically relevant, the remaining\n" +
			"--shown ids are marked not relevant, and all of them confirmed.",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := buildApp(*configFile)
			if err != nil {
				return err
			}
			if len(shown) == 0 {
				page, count, err := a.scanTypes.NextPage(cmd.Context())
				if err != nil {
					return err
				}
				fmt.Printf("%d scan types awaiting confirmation\n", count)
				for _, scanType := range page {
					fmt.Printf("  %d\t%s\n", scanType.ID, scanType.Name)
				}
				return nil
			}
			result, err := a.scanTypes.Confirm(cmd.Context(), dtos.ConfirmScanTypesRequest{
				Shown:    shown,
				Clinical: clinical,
			})
			if err != nil {
				return err
			}
			fmt.Printf("Confirmed %d scan types, %d remaining\n",
				result.Confirmed, result.Unconfirmed)
			if result.Done {
				fmt.Println("All scan types confirmed.")
				return nil
			}
			for _, scanType := range result.NextPage {
				fmt.Printf("  %d\t%s\n", scanType.ID, scanType.Name)
			}
			return nil
		},
	}
	cmd.Flags().UintSliceVar(&shown, "shown", nil, "Scan type ids being confirmed")
	cmd.Flags().UintSliceVar(&clinical, "clinical", nil, "Subset of --shown that is clinically relevant")
	return cmd
}
