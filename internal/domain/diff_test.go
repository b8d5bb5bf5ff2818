package domain

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestCompare_AbsentGoldenEmptyActualPasses(t *testing.T) {
	ok, diff := Compare("", "", false)
	require.True(t, ok)
	require.Empty(t, diff)
}

func TestCompare_AbsentGoldenNewOutputFails(t *testing.T) {
	actual := "error[E0507]: cannot move out of an Rc\n"

	ok, diff := Compare(actual, "", false)
	require.False(t, ok)
	require.Contains(t, diff, "+error[E0507]: cannot move out of an Rc")
	require.NotContains(t, diff, "\n-error")
}

func TestCompare_ExactMatchPasses(t *testing.T) {
	text := "error[E0507]: cannot move out of an Rc\n --> $DIR/a.sg:4:14\n"

	ok, diff := Compare(text, text, true)
	require.True(t, ok)
	require.Empty(t, diff)
}

func TestCompare_OneWordDifferenceHighlightsLine(t *testing.T) {
	golden := "error[E0507]: cannot move out of an Rc\n --> $DIR/a.sg:4:14\n"
	actual := "error[E0507]: cannot move out of an Arc\n --> $DIR/a.sg:4:14\n"

	ok, diff := Compare(actual, golden, true)
	require.False(t, ok)
	require.Contains(t, diff, "-error[E0507]: cannot move out of an Rc")
	require.Contains(t, diff, "+error[E0507]: cannot move out of an Arc")
	require.Contains(t, diff, " --> $DIR/a.sg:4:14")

	var adds, dels int
	for _, line := range strings.Split(diff, "\n") {
		switch {
		case strings.HasPrefix(line, "+++"), strings.HasPrefix(line, "---"):
		case strings.HasPrefix(line, "+"):
			adds++
		case strings.HasPrefix(line, "-"):
			dels++
		}
	}
	require.Equal(t, 1, adds)
	require.Equal(t, 1, dels)
}

func TestCompare_EmptyGoldenFileMeansExplicitlyNoOutput(t *testing.T) {
	ok, diff := Compare("warning: unused\n", "", true)
	require.False(t, ok)
	require.Contains(t, diff, "+warning: unused")

	ok, _ = Compare("", "", true)
	require.True(t, ok)
}
