package main

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/yungbote/seqmeta-backend/internal/app"
)

var refreshGraphicsCmd = &cobra.Command{
	Use:   "refresh-graphics [name...]",
	Short: "Recompute cached graphic aggregates (all when no name is given)",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withApp(func(a *app.App) error {
			done, err := a.Services.Dashboard.Refresh(cmd.Context(), args...)
			for _, name := range done {
				fmt.Fprintf(cmd.OutOrStdout(), "refreshed %s\n", name)
			}
			return err
		})
	},
}

var listGraphicsCmd = &cobra.Command{
	Use:   "list-graphics",
	Short: "List defined graphics, their formats and whether they are cached",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		return withApp(func(a *app.App) error {
			graphics, err := a.Services.Dashboard.ListGraphics(cmd.Context())
			if err != nil {
				return err
			}
			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "NAME\tFORMATS\tCACHED")
			for _, g := range graphics {
				fmt.Fprintf(w, "%s\t%s\t%t\n", g.Name, strings.Join(g.Formats, ","), g.Cached)
			}
			return w.Flush()
		})
	},
}
