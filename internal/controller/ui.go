// Package controller provides output adapters for displaying harness runs.
package controller

import (
	m "github.com/mouse-blink/gild/internal/model"
)

// UI is the display surface for a harness run. Implementations can use
// different output methods (simple text, TUI). It satisfies the
// workflow's Progress interface; verdict delivery is serialized by the
// workflow.
type UI interface {
	Start() error
	Close()

	// Wait blocks until the UI has finished rendering.
	Wait()

	// DisplayCases lists discovered test cases with their variants.
	DisplayCases(cases []m.TestCase) error

	RunStarted(total, workers int)
	VerdictReported(v m.Verdict)
	RunCompleted(summary m.RunSummary)
}
