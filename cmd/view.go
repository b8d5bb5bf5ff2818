package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mouse-blink/gild/internal/adapter"
	m "github.com/mouse-blink/gild/internal/model"
)

var viewRevisionFlag string

// viewCmd represents the view command.
var viewCmd = newViewCmd()

func newViewCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "view <test> [corpus]",
		Short: "Print the recorded golden file for a test",
		Args:  cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			root, cfg, err := loadCorpus(args[1:])
			if err != nil {
				return err
			}

			store := adapter.NewFileExpectationStore(root, cfg.GoldenDir)
			exec := m.Execution{
				Case:     m.TestCase{Name: args[0]},
				Revision: viewRevisionFlag,
			}

			text, found, err := store.Load(exec)
			if err != nil {
				return err
			}

			if !found {
				return fmt.Errorf("no golden recorded for %s", exec.Key())
			}

			_, _ = fmt.Fprint(cmd.OutOrStdout(), text)

			return nil
		},
	}
	cmd.Flags().StringVarP(&viewRevisionFlag, "revision", "r", "", "revision variant to show")

	return cmd
}

func init() {
	rootCmd.AddCommand(viewCmd)
}
