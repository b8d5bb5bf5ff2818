package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	m "github.com/mouse-blink/gild/internal/model"
)

func TestParseDirectives_Full(t *testing.T) {
	src := []byte(`// A test with everything.
//@ revisions: strict lenient
//@ check-fail
//@ aux: helper.sg shared.sg
//@ timeout: 5s
//@ args: --edition=2

fn main() {}
`)

	d, err := ParseDirectives(src)
	require.NoError(t, err)
	require.Equal(t, []string{"strict", "lenient"}, d.Revisions)
	require.Equal(t, m.ExitFailure, d.ExitClass)
	require.Equal(t, []m.Path{"helper.sg", "shared.sg"}, d.AuxFiles)
	require.Equal(t, 5*time.Second, d.Timeout)
	require.Equal(t, []string{"--edition=2"}, d.ExtraArgs)
}

func TestParseDirectives_DefaultsToCheckPass(t *testing.T) {
	d, err := ParseDirectives([]byte("fn main() {}\n"))
	require.NoError(t, err)
	require.Equal(t, m.ExitSuccess, d.ExitClass)
	require.Empty(t, d.Revisions)
}

func TestParseDirectives_StopsAtFirstCodeLine(t *testing.T) {
	src := []byte("fn main() {}\n//@ check-fail\n")

	d, err := ParseDirectives(src)
	require.NoError(t, err)
	require.Equal(t, m.ExitSuccess, d.ExitClass)
}

func TestParseDirectives_Ignore(t *testing.T) {
	d, err := ParseDirectives([]byte("//@ ignore: flaky on CI\nfn main() {}\n"))
	require.NoError(t, err)
	require.True(t, d.Ignored)
	require.Equal(t, "flaky on CI", d.IgnoreReason)

	d, err = ParseDirectives([]byte("//@ ignore\nfn main() {}\n"))
	require.NoError(t, err)
	require.True(t, d.Ignored)
	require.Empty(t, d.IgnoreReason)
}

func TestParseDirectives_UnknownDirectiveIsError(t *testing.T) {
	_, err := ParseDirectives([]byte("//@ explode: now\n"))
	require.Error(t, err)
	require.Contains(t, err.Error(), "explode")
}

func TestParseDirectives_DuplicateRevisionIsError(t *testing.T) {
	_, err := ParseDirectives([]byte("//@ revisions: a b a\n"))
	require.Error(t, err)
	require.Contains(t, err.Error(), `"a"`)
}

func TestParseDirectives_BadTimeoutIsError(t *testing.T) {
	_, err := ParseDirectives([]byte("//@ timeout: fast\n"))
	require.Error(t, err)
}
