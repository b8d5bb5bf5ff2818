package controller

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/require"

	m "github.com/mouse-blink/gild/internal/model"
)

func applyMsg(t *testing.T, mo runModel, msg tea.Msg) runModel {
	t.Helper()
	updated, _ := mo.Update(msg)

	next, ok := updated.(runModel)
	require.True(t, ok)

	return next
}

func TestRunModel_TracksProgress(t *testing.T) {
	mo := newRunModel()
	mo = applyMsg(t, mo, runStartedMsg{total: 2, workers: 4})

	mo = applyMsg(t, mo, verdictMsg{verdict: m.Verdict{
		Execution: m.Execution{Case: m.TestCase{Name: "a"}},
		Kind:      m.VerdictPass,
	}})
	require.Equal(t, 1, mo.completed)
	require.Len(t, mo.resultsList.Items(), 1)

	mo = applyMsg(t, mo, verdictMsg{verdict: m.Verdict{
		Execution: m.Execution{Case: m.TestCase{Name: "b"}},
		Kind:      m.VerdictFail,
		Reason:    "output differs from golden",
	}})
	require.Equal(t, 2, mo.completed)

	mo = applyMsg(t, mo, runCompletedMsg{summary: m.RunSummary{Passed: 1, Failed: 1}})
	require.True(t, mo.finished)
	require.Contains(t, mo.View(), "1 pass, 1 fail")
}

func TestRunModel_QuitKeys(t *testing.T) {
	mo := newRunModel()

	_, cmd := mo.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'q'}})
	require.NotNil(t, cmd)
	require.Equal(t, tea.Quit(), cmd())
}

func TestRunModel_EnterTogglesDiffView(t *testing.T) {
	mo := newRunModel()
	mo = applyMsg(t, mo, verdictMsg{verdict: m.Verdict{
		Execution: m.Execution{Case: m.TestCase{Name: "x"}},
		Kind:      m.VerdictFail,
		Diff:      "--- golden\n+++ actual\n@@ -1 +1 @@\n-old\n+new\n",
	}})

	mo = applyMsg(t, mo, tea.KeyMsg{Type: tea.KeyEnter})
	require.True(t, mo.showDiff)
	require.Contains(t, mo.View(), "+new")

	mo = applyMsg(t, mo, tea.KeyMsg{Type: tea.KeyEnter})
	require.False(t, mo.showDiff)
}
