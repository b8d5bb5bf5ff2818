package controller

import (
	m "github.com/mouse-blink/gild/internal/model"
)

// Message types.
type runStartedMsg struct {
	total   int
	workers int
}

type verdictMsg struct {
	verdict m.Verdict
}

type runCompletedMsg struct {
	summary m.RunSummary
}

// List item type.
type verdictItem struct {
	verdict m.Verdict
}

func (i verdictItem) FilterValue() string {
	return i.verdict.Execution.Key() + " " + i.verdict.Kind.String()
}
