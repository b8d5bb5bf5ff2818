// Package cmd provides the root command and CLI setup for gild.
package cmd

import (
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/mouse-blink/gild/internal/adapter"
	"github.com/mouse-blink/gild/internal/config"
	"github.com/mouse-blink/gild/internal/controller"
	"github.com/mouse-blink/gild/internal/domain"
)

var ui controller.UI

func init() {
	ui = controller.NewUI(rootCmd, controller.IsTTY(os.Stdout))
}

var blessFlag bool
var parallelFlag int
var timeoutFlag time.Duration
var filterFlag string

// rootCmd represents the base command when called without any subcommands.
var rootCmd = newRootCmd()

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "gild [corpus]",
		Short: "Golden-file diagnostic regression harness",
		Long: `Gild runs a compiler or any tool emitting textual diagnostics against a
corpus of test programs, normalizes the output, and compares it against
committed golden files.

The corpus root holds a gild.yaml describing the tool under test. Each
test source may declare directives in its leading comment block:

  //@ revisions: strict lenient
  //@ check-fail
  //@ aux: helper.sg
  //@ timeout: 5s
  //@ args: --edition=2

Use --bless to accept current output as the new baseline.`,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runHarness(cmd, args)
		},
	}
	addRunFlags(cmd)

	return cmd
}

func addRunFlags(cmd *cobra.Command) {
	cmd.Flags().BoolVarP(&blessFlag, "bless", "b", false, "rewrite golden files from actual output")
	cmd.Flags().IntVarP(&parallelFlag, "parallel", "p", 0, "number of parallel workers (0 = all CPUs)")
	cmd.Flags().DurationVarP(&timeoutFlag, "timeout", "t", 0, "per-test timeout override")
	cmd.Flags().StringVarP(&filterFlag, "filter", "f", "", "run only tests whose name contains the string")
}

// runHarness drives a full run for the corpus named by args (default ".").
func runHarness(cmd *cobra.Command, args []string) error {
	root, cfg, err := loadCorpus(args)
	if err != nil {
		return err
	}

	if cfg.Tool == "" {
		return fmt.Errorf("no tool configured: set tool: in %s", config.FileName)
	}

	workflow := newWorkflow(root, cfg)

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := ui.Start(); err != nil {
		return err
	}

	summary, runErr := workflow.Run(ctx, domain.RunOptions{
		Bless:    blessFlag,
		Parallel: parallelFlag,
		Timeout:  timeoutFlag,
		Filter:   filterFlag,
	}, ui)

	ui.Wait()

	if runErr != nil {
		return runErr
	}

	if summary.ExitCode() != 0 {
		return fmt.Errorf("%d failed, %d errored", summary.Failed, summary.Errored)
	}

	return nil
}

// loadCorpus resolves the corpus root from args and loads its config.
func loadCorpus(args []string) (string, config.Config, error) {
	root := "."
	if len(args) > 0 {
		root = args[0]
	}

	abs, err := filepath.Abs(root)
	if err != nil {
		return "", config.Config{}, err
	}

	cfg, err := config.Load(abs)
	if err != nil {
		return "", config.Config{}, err
	}

	return abs, cfg, nil
}

func newWorkflow(root string, cfg config.Config) *domain.Workflow {
	store := adapter.NewFileExpectationStore(root, cfg.GoldenDir)

	return domain.NewWorkflow(root, cfg, adapter.NewLocalCorpusFS(), adapter.NewLocalToolRunner(), store)
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}
