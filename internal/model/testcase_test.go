package model

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestExecutions_NoRevisionsRunsOnce(t *testing.T) {
	tc := TestCase{Name: "borrow/move_out"}

	execs := tc.Executions()
	require.Len(t, execs, 1)
	require.Equal(t, "", execs[0].Revision)
	require.Equal(t, "borrow/move_out", execs[0].Key())
}

func TestExecutions_OnePerRevision(t *testing.T) {
	tc := TestCase{
		Name:       "cfg/gate",
		Directives: Directives{Revisions: []string{"a", "b"}},
	}

	execs := tc.Executions()
	require.Len(t, execs, 2)
	require.Equal(t, "cfg/gate@a", execs[0].Key())
	require.Equal(t, "cfg/gate@b", execs[1].Key())
}

func TestExitClass_Matches(t *testing.T) {
	tests := []struct {
		name     string
		class    ExitClass
		exitCode int
		want     bool
	}{
		{"success matches zero", ExitSuccess, 0, true},
		{"success rejects nonzero", ExitSuccess, 1, false},
		{"failure rejects zero", ExitFailure, 0, false},
		{"failure matches nonzero", ExitFailure, 1, true},
		{"any matches zero", ExitAny, 0, true},
		{"any matches nonzero", ExitAny, 101, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, tt.class.Matches(tt.exitCode))
		})
	}
}

func TestRunSummary_ExitCode(t *testing.T) {
	var s RunSummary
	s.Add(Verdict{Kind: VerdictPass})
	s.Add(Verdict{Kind: VerdictBlessed})
	require.Equal(t, 0, s.ExitCode())

	s.Add(Verdict{Kind: VerdictFail})
	require.Equal(t, 1, s.ExitCode())

	var errs RunSummary
	errs.Add(Verdict{Kind: VerdictError})
	require.Equal(t, 1, errs.ExitCode())
	require.Equal(t, 1, errs.Total())
}
