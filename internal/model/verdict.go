package model

import "time"

// VerdictKind is the outcome class of one execution.
type VerdictKind int

const (
	// VerdictPass means the normalized output matched the expectation.
	VerdictPass VerdictKind = iota

	// VerdictFail means output diverged from the expectation or the tool
	// exited outside its declared exit class.
	VerdictFail

	// VerdictBlessed means the expectation was rewritten from actual output.
	VerdictBlessed

	// VerdictError means the execution could not be evaluated: timeout,
	// crash, missing auxiliary file, or unreadable golden file.
	VerdictError
)

func (k VerdictKind) String() string {
	switch k {
	case VerdictPass:
		return "pass"
	case VerdictFail:
		return "fail"
	case VerdictBlessed:
		return "blessed"
	case VerdictError:
		return "error"
	}

	return "unknown"
}

// Verdict is the immutable result of one (TestCase, Revision) execution.
type Verdict struct {
	Execution Execution
	Kind      VerdictKind

	// Diff is a unified diff between golden and actual, set on text
	// mismatch failures.
	Diff string

	// Reason is a short human-readable explanation, set for exit-class
	// failures and for every error verdict.
	Reason string

	// Output carries the normalized tool output for exit-class failures,
	// where no golden diff exists but the output is still worth review.
	Output string

	Duration time.Duration
}

// RunSummary accumulates verdict counts for the whole run.
type RunSummary struct {
	Passed  int
	Failed  int
	Blessed int
	Errored int
}

// Add counts a verdict into the summary.
func (s *RunSummary) Add(v Verdict) {
	switch v.Kind {
	case VerdictPass:
		s.Passed++
	case VerdictFail:
		s.Failed++
	case VerdictBlessed:
		s.Blessed++
	case VerdictError:
		s.Errored++
	}
}

// Total returns the number of counted executions.
func (s RunSummary) Total() int {
	return s.Passed + s.Failed + s.Blessed + s.Errored
}

// ExitCode is the process exit status for the run: zero only when no
// execution failed or errored. Blessed verdicts never fail the run.
func (s RunSummary) ExitCode() int {
	if s.Failed > 0 || s.Errored > 0 {
		return 1
	}

	return 0
}
