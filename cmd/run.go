package cmd

import (
	"github.com/spf13/cobra"
)

// runCmd represents the run command, an explicit alias of the root run.
var runCmd = newRunCmd()

func newRunCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "run [corpus]",
		Short: "Run the corpus against its golden files",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runHarness(cmd, args)
		},
	}
	addRunFlags(cmd)

	return cmd
}

func init() {
	rootCmd.AddCommand(runCmd)
}
