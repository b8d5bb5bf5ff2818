package cmd

import (
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRoot(sub func() *cobra.Command) func() *cobra.Command {
	return func() *cobra.Command {
		cmd := newRootCmd()
		cmd.AddCommand(sub())

		return cmd
	}
}

func TestListCmd_ShowsCasesAndRevisions(t *testing.T) {
	root := writeCorpus(t, "exit 0", map[string]string{
		"plain.sg":        "fn main() {}\n",
		"modes/gate.sg":   "//@ revisions: strict lenient\nfn main() {}\n",
		"notes/README.md": "not a test\n",
	})

	out, err := execute(t, newTestRoot(newListCmd), "list", root)
	require.NoError(t, err)

	assert.Contains(t, out, "plain")
	assert.Contains(t, out, "modes/gate")
	assert.Contains(t, out, "strict")
	assert.Contains(t, out, "lenient")
	assert.NotContains(t, out, "README")
}

func TestListCmd_ReportsBrokenDirectives(t *testing.T) {
	root := writeCorpus(t, "exit 0", map[string]string{
		"good.sg": "fn main() {}\n",
		"bad.sg":  "//@ no-such-directive\nfn main() {}\n",
	})

	out, err := execute(t, newTestRoot(newListCmd), "list", root)
	require.NoError(t, err)

	assert.Contains(t, out, "good")
	assert.Contains(t, out, "ERROR")
	assert.Contains(t, out, "bad")
}
