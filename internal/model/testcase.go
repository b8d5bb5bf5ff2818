// Package model defines the data structures for golden-file regression runs.
package model

import "time"

// Path represents a file system path.
type Path string

// ExitClass declares how the subject tool is expected to exit for a test.
type ExitClass int

const (
	// ExitSuccess requires the tool to exit with status zero.
	ExitSuccess ExitClass = iota

	// ExitFailure requires the tool to exit with a non-zero status,
	// typically because the test provokes diagnostics.
	ExitFailure

	// ExitAny places no constraint on the exit status.
	ExitAny
)

func (c ExitClass) String() string {
	switch c {
	case ExitSuccess:
		return "check-pass"
	case ExitFailure:
		return "check-fail"
	case ExitAny:
		return "check-any"
	}

	return "unknown"
}

// Matches reports whether the observed exit code satisfies the class.
func (c ExitClass) Matches(exitCode int) bool {
	switch c {
	case ExitSuccess:
		return exitCode == 0
	case ExitFailure:
		return exitCode != 0
	default:
		return true
	}
}

// Directives holds the per-test configuration extracted from header comments
// in the test source. Parsed once at discovery time and never mutated after.
type Directives struct {
	// Revisions lists named configuration variants. Empty means the test
	// runs once under the default configuration.
	Revisions []string

	// ExitClass is the expected exit behavior of the subject tool.
	ExitClass ExitClass

	// AuxFiles are additional inputs the test depends on, relative to the
	// test source's directory.
	AuxFiles []Path

	// Timeout overrides the run-level per-test timeout when non-zero.
	Timeout time.Duration

	// ExtraArgs are appended to the tool invocation for this test.
	ExtraArgs []string

	// Ignored marks the test as excluded from runs. IgnoreReason carries
	// the optional annotation from the directive.
	Ignored      bool
	IgnoreReason string
}

// TestCase is a single discovered test: a source file plus its directives.
// Immutable once discovered.
type TestCase struct {
	// Name is the corpus-root-relative path without extension, using
	// forward slashes. It keys golden files and filter matching.
	Name string

	// Source is the absolute path to the test's source file.
	Source Path

	Directives Directives
}

// Execution is one schedulable unit: a test case under one revision.
// Revision is empty when the case declares no revisions.
type Execution struct {
	Case     TestCase
	Revision string
}

// Key returns the stable identity used for golden files and reporting:
// "name" for the default configuration, "name@revision" otherwise.
func (e Execution) Key() string {
	if e.Revision == "" {
		return e.Case.Name
	}

	return e.Case.Name + "@" + e.Revision
}

// Executions expands the case into its schedulable units, one per declared
// revision, or a single default execution when none are declared.
func (tc TestCase) Executions() []Execution {
	if len(tc.Directives.Revisions) == 0 {
		return []Execution{{Case: tc}}
	}

	out := make([]Execution, 0, len(tc.Directives.Revisions))
	for _, rev := range tc.Directives.Revisions {
		out = append(out, Execution{Case: tc, Revision: rev})
	}

	return out
}
