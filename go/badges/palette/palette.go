// Package palette maps badge color names to hex colors.
package palette

// Same color scheme as the shields.io badges.
var nameToColor = map[string]string{
	"brightgreen": "#4c1",
	"green":       "#97CA00",
	"yellow":      "#dfb317",
	"yellowgreen": "#a4a61d",
	"orange":      "#fe7d37",
	"red":         "#e05d44",
	"blue":        "#007ec6",
	"grey":        "#555",
	"gray":        "#555",
	"lightgrey":   "#9f9f9f",
	"lightgray":   "#9f9f9f",
}

// Resolve returns the hex color for a known name. Any other value is returned
// unchanged and is assumed to already be a valid color expression.
func Resolve(color string) string {
	if hex, ok := nameToColor[color]; ok {
		return hex
	}
	return color
}

// IsNamed reports whether color is a palette name.
func IsNamed(color string) bool {
	_, ok := nameToColor[color]
	return ok
}
