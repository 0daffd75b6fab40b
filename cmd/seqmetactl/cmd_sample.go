package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/yungbote/seqmeta-backend/internal/app"
)

var deleteSampleCmd = &cobra.Command{
	Use:   "delete-sample <sequencing_sample_id>",
	Short: "Delete a sample and every value reported for it",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withApp(func(a *app.App) error {
			n, err := a.Services.Sample.Delete(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "deleted %d row(s) for %s\n", n, args[0])
			return nil
		})
	},
}
