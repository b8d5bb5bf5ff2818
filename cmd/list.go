package cmd

import (
	"github.com/spf13/cobra"
)

// listCmd represents the list command.
var listCmd = newListCmd()

func newListCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list [corpus]",
		Short: "List discovered tests and their revisions",
		RunE: func(_ *cobra.Command, args []string) error {
			root, cfg, err := loadCorpus(args)
			if err != nil {
				return err
			}

			workflow := newWorkflow(root, cfg)

			cases, broken, err := workflow.Discover()
			if err != nil {
				return err
			}

			for _, v := range broken {
				ui.VerdictReported(v)
			}

			return ui.DisplayCases(cases)
		},
	}

	return cmd
}

func init() {
	rootCmd.AddCommand(listCmd)
}
