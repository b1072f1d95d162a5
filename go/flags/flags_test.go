package flags

import (
	"testing"

	"github.com/stretchr/testify/require"
)

type innerOpts struct {
	Level string `long:"level" env:"LEVEL" default:"info"`
}

type testOpts struct {
	Name    string     `long:"name" env:"NAME" default:"license"`
	Count   int        `long:"count" env:"COUNT"`
	Samples []int      `long:"sample"`
	Inner   *innerOpts `group:"Inner" namespace:"inner" env-namespace:"INNER"`
}

func TestParseArgs(t *testing.T) {
	opts := &testOpts{}
	rest, err := ParseArgs(opts, []string{"--count", "3", "--inner.level", "debug", "--sample", "1", "--sample", "2", "extra"})
	require.NoError(t, err)
	require.Equal(t, []string{"extra"}, rest)
	require.Equal(t, "license", opts.Name)
	require.Equal(t, 3, opts.Count)
	require.Equal(t, []int{1, 2}, opts.Samples)
	require.Equal(t, "debug", opts.Inner.Level)
}

func TestParseArgsEnv(t *testing.T) {
	t.Setenv("NAME", "coverage")
	t.Setenv("INNER_LEVEL", "warn")
	opts := &testOpts{}
	_, err := ParseArgs(opts, nil)
	require.NoError(t, err)
	require.Equal(t, "coverage", opts.Name)
	require.Equal(t, "warn", opts.Inner.Level)
}

func TestParseArgsErrors(t *testing.T) {
	_, err := ParseArgs(&testOpts{}, []string{"--unknown"})
	require.ErrorContains(t, err, "parsing flags")
	require.False(t, IsHelp(err))

	_, err = ParseArgs(&testOpts{}, []string{"--help"})
	require.True(t, IsHelp(err))
}
