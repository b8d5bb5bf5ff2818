package controller

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	m "github.com/mouse-blink/gild/internal/model"
)

// SimpleUI implements UI with plain text written through the cobra
// command's output, suitable for CI logs and pipes.
type SimpleUI struct {
	cmd *cobra.Command

	failStyle  lipgloss.Style
	errorStyle lipgloss.Style
	blessStyle lipgloss.Style
	addStyle   lipgloss.Style
	delStyle   lipgloss.Style
	hunkStyle  lipgloss.Style
}

// NewSimpleUI creates a new SimpleUI.
func NewSimpleUI(cmd *cobra.Command) *SimpleUI {
	return &SimpleUI{
		cmd:        cmd,
		failStyle:  lipgloss.NewStyle().Foreground(lipgloss.Color("1")).Bold(true),
		errorStyle: lipgloss.NewStyle().Foreground(lipgloss.Color("3")).Bold(true),
		blessStyle: lipgloss.NewStyle().Foreground(lipgloss.Color("4")),
		addStyle:   lipgloss.NewStyle().Foreground(lipgloss.Color("2")),
		delStyle:   lipgloss.NewStyle().Foreground(lipgloss.Color("1")),
		hunkStyle:  lipgloss.NewStyle().Foreground(lipgloss.Color("6")),
	}
}

// Start initializes the UI.
func (s *SimpleUI) Start() error {
	return nil
}

// Close finalizes the UI.
func (s *SimpleUI) Close() {

}

// Wait blocks until the UI has finished; plain output never blocks.
func (s *SimpleUI) Wait() {

}

// DisplayCases prints the discovered corpus as a table.
func (s *SimpleUI) DisplayCases(cases []m.TestCase) error {
	var tableBuffer bytes.Buffer

	table := tablewriter.NewWriter(&tableBuffer)
	table.SetHeader([]string{"Test", "Revisions", "Exit"})
	table.SetBorder(false)
	table.SetCenterSeparator("")
	table.SetColumnAlignment([]int{tablewriter.ALIGN_LEFT, tablewriter.ALIGN_LEFT, tablewriter.ALIGN_LEFT})

	executions := 0

	for _, tc := range cases {
		revisions := strings.Join(tc.Directives.Revisions, " ")
		if revisions == "" {
			revisions = "-"
		}

		exit := tc.Directives.ExitClass.String()
		if tc.Directives.Ignored {
			exit = "ignored"
		}

		table.Append([]string{tc.Name, revisions, exit})

		if !tc.Directives.Ignored {
			executions += len(tc.Executions())
		}
	}

	table.SetFooter([]string{
		fmt.Sprintf("Total Tests %d", len(cases)),
		fmt.Sprintf("%d executions", executions),
		"",
	})

	table.Render()
	s.printf("\n%s", tableBuffer.String())

	return nil
}

// RunStarted announces the run size and concurrency.
func (s *SimpleUI) RunStarted(total, workers int) {
	s.printf("running %d execution(s) with %d worker(s)\n", total, workers)
}

// VerdictReported prints failures and errors as they happen; passing
// executions stay quiet.
func (s *SimpleUI) VerdictReported(v m.Verdict) {
	switch v.Kind {
	case m.VerdictPass:
	case m.VerdictBlessed:
		s.printf("%s %s\n", s.blessStyle.Render("BLESS"), v.Execution.Key())
	case m.VerdictError:
		s.printf("%s %s: %s\n", s.errorStyle.Render("ERROR"), v.Execution.Key(), v.Reason)
	case m.VerdictFail:
		s.printf("%s %s: %s\n", s.failStyle.Render("FAIL"), v.Execution.Key(), v.Reason)

		if v.Diff != "" {
			s.printf("%s\n", s.renderDiff(v.Diff))
		}

		if v.Output != "" {
			s.printf("%s\n", indent(strings.TrimRight(v.Output, "\n"), "    "))
		}
	}
}

// RunCompleted prints the verdict counts and the final status line.
func (s *SimpleUI) RunCompleted(summary m.RunSummary) {
	var tableBuffer bytes.Buffer

	table := tablewriter.NewWriter(&tableBuffer)
	table.SetHeader([]string{"Verdict", "Count"})
	table.SetBorder(false)
	table.SetCenterSeparator("")
	table.SetColumnAlignment([]int{tablewriter.ALIGN_LEFT, tablewriter.ALIGN_CENTER})

	table.Append([]string{"pass", fmt.Sprintf("%d", summary.Passed)})
	table.Append([]string{"fail", fmt.Sprintf("%d", summary.Failed)})
	table.Append([]string{"blessed", fmt.Sprintf("%d", summary.Blessed)})
	table.Append([]string{"error", fmt.Sprintf("%d", summary.Errored)})
	table.SetFooter([]string{"Total", fmt.Sprintf("%d", summary.Total())})

	table.Render()
	s.printf("\n%s\n", tableBuffer.String())

	if summary.ExitCode() == 0 {
		s.printf("ok: %d execution(s)\n", summary.Total())
	} else {
		s.printf("%s: %d failed, %d errored\n", s.failStyle.Render("FAILED"), summary.Failed, summary.Errored)
	}
}

func (s *SimpleUI) renderDiff(diff string) string {
	lines := strings.Split(strings.TrimRight(diff, "\n"), "\n")
	for i, line := range lines {
		switch {
		case strings.HasPrefix(line, "+++"), strings.HasPrefix(line, "---"):
		case strings.HasPrefix(line, "@@"):
			lines[i] = s.hunkStyle.Render(line)
		case strings.HasPrefix(line, "+"):
			lines[i] = s.addStyle.Render(line)
		case strings.HasPrefix(line, "-"):
			lines[i] = s.delStyle.Render(line)
		}
	}

	return indent(strings.Join(lines, "\n"), "    ")
}

func indent(text, prefix string) string {
	lines := strings.Split(text, "\n")
	for i, line := range lines {
		if line != "" {
			lines[i] = prefix + line
		}
	}

	return strings.Join(lines, "\n")
}

func (s *SimpleUI) printf(format string, args ...interface{}) {
	_, _ = fmt.Fprintf(s.cmd.OutOrStdout(), format, args...)
}
