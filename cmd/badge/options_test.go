package main

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/malonaz/badges/go/badges"
	"github.com/malonaz/badges/go/flags"
)

func parse(t *testing.T, args ...string) *badgeOpts {
	t.Helper()
	options := &struct {
		Badge *badgeOpts `group:"Badge"`
	}{}
	_, err := flags.ParseArgs(options, args)
	require.NoError(t, err)
	return options.Badge
}

func TestDefaults(t *testing.T) {
	spec, err := parse(t).spec()
	require.NoError(t, err)
	require.Equal(t, "license", spec.LeftText)
	require.Equal(t, "APACHE", spec.RightText)
	require.Equal(t, badges.StyleFlat, spec.Style)
	require.Equal(t, 1, spec.TrendWidth)
	require.Nil(t, spec.Trend)
	require.False(t, spec.HasCenter())
}

func TestTrend(t *testing.T) {
	spec, err := parse(t, "--trend", "1, 2,3", "--trend-color", "red").spec()
	require.NoError(t, err)
	require.Equal(t, []int{1, 2, 3}, spec.Trend)
	require.Equal(t, "red", spec.TrendColor)

	_, err = parse(t, "--trend", "1,x").spec()
	require.ErrorContains(t, err, `"x"`)
}

func TestStyleChoice(t *testing.T) {
	options := &struct {
		Badge *badgeOpts `group:"Badge"`
	}{}
	_, err := flags.ParseArgs(options, []string{"--style", "plastic"})
	require.Error(t, err)
}

func TestConflictingOptions(t *testing.T) {
	spec, err := parse(t, "--whole-link", "https://a", "--left-link", "https://b").spec()
	require.NoError(t, err)
	_, err = badges.NewComposer(runeCounter{}, nil).Compose(context.Background(), spec)
	require.ErrorIs(t, err, badges.ErrConflictingLink)
}

type runeCounter struct{}

func (runeCounter) TextWidth(text string) float64 { return float64(len(text)) }
