package controller

import (
	"fmt"
	"io"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	m "github.com/mouse-blink/gild/internal/model"
)

// TUI implements UI using Bubble Tea for interactive display.
type TUI struct {
	output  io.Writer
	program *tea.Program
	done    chan struct{}
}

// NewTUI creates a new TUI.
func NewTUI(output io.Writer) *TUI {
	return &TUI{output: output, done: make(chan struct{})}
}

// Start launches the Bubble Tea program in the background.
func (t *TUI) Start() error {
	t.program = tea.NewProgram(newRunModel(), tea.WithOutput(t.output))

	go func() {
		defer close(t.done)
		_, _ = t.program.Run()
	}()

	return nil
}

// Close asks the program to quit without waiting for the user.
func (t *TUI) Close() {
	if t.program != nil {
		t.program.Quit()
	}
}

// Wait blocks until the user closes the TUI.
func (t *TUI) Wait() {
	if t.program != nil {
		<-t.done
	}
}

// DisplayCases prints the discovered corpus as plain text; listing does
// not warrant an interactive view.
func (t *TUI) DisplayCases(cases []m.TestCase) error {
	for _, tc := range cases {
		revisions := strings.Join(tc.Directives.Revisions, " ")
		if revisions == "" {
			revisions = "-"
		}

		exit := tc.Directives.ExitClass.String()
		if tc.Directives.Ignored {
			exit = "ignored"
		}

		_, _ = fmt.Fprintf(t.output, "%s\t%s\t%s\n", tc.Name, revisions, exit)
	}

	_, _ = fmt.Fprintf(t.output, "%d test(s)\n", len(cases))

	return nil
}

// RunStarted forwards the run size to the model.
func (t *TUI) RunStarted(total, workers int) {
	t.send(runStartedMsg{total: total, workers: workers})
}

// VerdictReported forwards one verdict to the model.
func (t *TUI) VerdictReported(v m.Verdict) {
	t.send(verdictMsg{verdict: v})
}

// RunCompleted forwards the final summary; the TUI stays open so the
// user can inspect diffs until they quit.
func (t *TUI) RunCompleted(summary m.RunSummary) {
	t.send(runCompletedMsg{summary: summary})
}

func (t *TUI) send(msg tea.Msg) {
	if t.program != nil {
		t.program.Send(msg)
	}
}
