// seqmetactl runs one-off maintenance tasks against the seqmeta database:
// loading metadata schemas, recomputing cached graphics and creating users.
//
// Usage:
//
//	seqmetactl load-schema <file>
//	seqmetactl refresh-graphics [name...]
//	seqmetactl list-graphics
//	seqmetactl delete-sample <sequencing_sample_id>
//	seqmetactl create-user --email=<email> --password=<password> [--admin]
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/yungbote/seqmeta-backend/internal/app"
)

// version is set at build time via -ldflags.
var version = "dev"

var rootCmd = &cobra.Command{
	Use:   "seqmetactl",
	Short: "Maintenance commands for the sequencing metadata backend",
	CompletionOptions: cobra.CompletionOptions{
		HiddenDefaultCmd: true,
	},
	SilenceUsage: true,
}

func init() {
	rootCmd.AddCommand(loadSchemaCmd)
	rootCmd.AddCommand(refreshGraphicsCmd)
	rootCmd.AddCommand(listGraphicsCmd)
	rootCmd.AddCommand(deleteSampleCmd)
	rootCmd.AddCommand(createUserCmd)
	rootCmd.Version = version
}

// withApp wires the application from the environment and closes it when fn
// returns.
func withApp(fn func(a *app.App) error) error {
	a, err := app.New()
	if err != nil {
		return err
	}
	defer a.Close()
	return fn(a)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
