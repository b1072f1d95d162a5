package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/malonaz/badges/go/badges"
)

type badgeOpts struct {
	LeftText   string `long:"left-text" description:"The text to show on the left-hand side of the badge" default:"license"`
	CenterText string `long:"center-text" description:"The text to show in the center of the badge"`
	RightText  string `long:"right-text" description:"The text to show on the right-hand side of the badge" default:"APACHE"`

	LeftColor   string `long:"left-color" description:"The color of the left-hand side of the badge (default #555)"`
	CenterColor string `long:"center-color" description:"The color of the center of the badge (default #9f9f9f)"`
	RightColor  string `long:"right-color" description:"The color of the right-hand side of the badge (default #007ec6)"`

	WholeLink  string `long:"whole-link" description:"The URL to follow when the badge is clicked"`
	LeftLink   string `long:"left-link" description:"The URL to follow when the left-hand side is clicked"`
	CenterLink string `long:"center-link" description:"The URL to follow when the center is clicked"`
	RightLink  string `long:"right-link" description:"The URL to follow when the right-hand side is clicked"`

	WholeTitle  string `long:"whole-title" description:"The title of the whole badge"`
	LeftTitle   string `long:"left-title" description:"The title of the left-hand side"`
	CenterTitle string `long:"center-title" description:"The title of the center"`
	RightTitle  string `long:"right-title" description:"The title of the right-hand side"`

	Logo             string `long:"logo" description:"A URL, data URI or file path of the logo"`
	EmbedLogo        bool   `long:"embed-logo" description:"Embed the logo in the badge"`
	CenterImage      string `long:"center-image" description:"A URL, data URI or file path of the center image"`
	EmbedCenterImage bool   `long:"embed-center-image" description:"Embed the center image in the badge"`
	RightImage       string `long:"right-image" description:"A URL, data URI or file path of the right image"`
	EmbedRightImage  bool   `long:"embed-right-image" description:"Embed the right image in the badge"`

	Trend      string `long:"trend" description:"Comma separated samples to draw as a sparkline, e.g. 1,2,3"`
	TrendColor string `long:"trend-color" description:"The sparkline color. Defaults to the right color"`
	TrendWidth int    `long:"trend-width" description:"The sparkline stroke width" default:"1"`

	Style string `long:"style" description:"The badge style" choice:"flat" choice:"flat-square" default:"flat"`
}

func (o *badgeOpts) spec() (*badges.Spec, error) {
	spec := &badges.Spec{
		LeftText:         o.LeftText,
		CenterText:       o.CenterText,
		RightText:        o.RightText,
		LeftColor:        o.LeftColor,
		CenterColor:      o.CenterColor,
		RightColor:       o.RightColor,
		WholeLink:        o.WholeLink,
		LeftLink:         o.LeftLink,
		CenterLink:       o.CenterLink,
		RightLink:        o.RightLink,
		WholeTitle:       o.WholeTitle,
		LeftTitle:        o.LeftTitle,
		CenterTitle:      o.CenterTitle,
		RightTitle:       o.RightTitle,
		Logo:             o.Logo,
		EmbedLogo:        o.EmbedLogo,
		CenterImage:      o.CenterImage,
		EmbedCenterImage: o.EmbedCenterImage,
		RightImage:       o.RightImage,
		EmbedRightImage:  o.EmbedRightImage,
		TrendColor:       o.TrendColor,
		TrendWidth:       o.TrendWidth,
		Style:            badges.Style(o.Style),
	}
	if o.Trend != "" {
		samples, err := parseSamples(o.Trend)
		if err != nil {
			return nil, err
		}
		spec.Trend = samples
	}
	return spec, nil
}

// parseSamples parses a comma separated list of integers.
func parseSamples(value string) ([]int, error) {
	fields := strings.Split(value, ",")
	samples := make([]int, 0, len(fields))
	for _, field := range fields {
		sample, err := strconv.Atoi(strings.TrimSpace(field))
		if err != nil {
			return nil, fmt.Errorf("parsing trend sample %q: %w", field, err)
		}
		samples = append(samples, sample)
	}
	return samples, nil
}
