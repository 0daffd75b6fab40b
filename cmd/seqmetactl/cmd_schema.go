package main

import (
	"github.com/spf13/cobra"

	"github.com/yungbote/seqmeta-backend/internal/app"
)

var loadSchemaCmd = &cobra.Command{
	Use:   "load-schema <file>",
	Short: "Register a YAML or JSON schema definition",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withApp(func(a *app.App) error {
			return app.LoadSchemaFile(cmd.Context(), a.Log, a.Services.Schema, args[0])
		})
	},
}
