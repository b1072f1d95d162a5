package palette

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestResolve(t *testing.T) {
	tests := []struct {
		color string
		want  string
	}{
		{"brightgreen", "#4c1"},
		{"green", "#97CA00"},
		{"grey", "#555"},
		{"gray", "#555"},
		{"lightgray", "#9f9f9f"},
		{"#abcdef", "#abcdef"},
		{"rgb(1,2,3)", "rgb(1,2,3)"},
		{"not-a-color", "not-a-color"},
		{"", ""},
	}
	for _, tt := range tests {
		t.Run(tt.color, func(t *testing.T) {
			require.Equal(t, tt.want, Resolve(tt.color))
			require.Equal(t, tt.want != tt.color, IsNamed(tt.color))
		})
	}
}
