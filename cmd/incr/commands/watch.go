package commands

import (
	"github.com/spf13/cobra"
	"go.trai.ch/incr/internal/app"
)

func (c *CLI) newWatchCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "watch [dir]",
		Short: "Watch a project and invalidate caches on change",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cwd := "."
			if len(args) == 1 {
				cwd = args[0]
			}
			strategy, _ := cmd.Flags().GetString("strategy")

			return c.app.Watch(cmd.Context(), cwd, app.WatchOptions{
				Strategy: strategy,
			})
		},
	}
	cmd.Flags().StringP("strategy", "s", "", "Watch strategy: native or poll (defaults to the configured one)")
	return cmd
}
