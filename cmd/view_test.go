package cmd

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mouse-blink/gild/internal/adapter"
	m "github.com/mouse-blink/gild/internal/model"
)

func TestViewCmd_PrintsGolden(t *testing.T) {
	root := t.TempDir()

	store := adapter.NewFileExpectationStore(root, "")
	exec := m.Execution{Case: m.TestCase{Name: "borrow/move_out"}}
	require.NoError(t, store.Save(exec, "error[E0507]: cannot move\n"))

	out, err := execute(t, newTestRoot(newViewCmd), "view", "borrow/move_out", root)
	require.NoError(t, err)
	assert.Equal(t, "error[E0507]: cannot move\n", out)
}

func TestViewCmd_RevisionVariant(t *testing.T) {
	root := t.TempDir()

	store := adapter.NewFileExpectationStore(root, "")
	exec := m.Execution{Case: m.TestCase{Name: "gate"}, Revision: "strict"}
	require.NoError(t, store.Save(exec, "error: strict only\n"))

	out, err := execute(t, newTestRoot(newViewCmd), "view", "gate", root, "--revision", "strict")
	require.NoError(t, err)
	assert.Equal(t, "error: strict only\n", out)
}

func TestViewCmd_MissingGolden(t *testing.T) {
	root := t.TempDir()

	_, err := execute(t, newTestRoot(newViewCmd), "view", "ghost", root)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no golden recorded for ghost")
}
