package badges

import (
	"errors"
	"fmt"

	"github.com/hashicorp/go-multierror"
)

var (
	// ErrValidation is the parent of every error caused by an inconsistent Spec.
	ErrValidation = errors.New("invalid badge")
	// ErrConflictingLink is returned when a whole-badge link is combined with segment links.
	ErrConflictingLink = fmt.Errorf("%w: conflicting links", ErrValidation)
	// ErrConflictingImage is returned when trend samples are combined with a right image.
	ErrConflictingImage = fmt.Errorf("%w: conflicting images", ErrValidation)
	// ErrUnknownStyle is returned for styles other than flat and flat-square.
	ErrUnknownStyle = fmt.Errorf("%w: unknown style", ErrValidation)
	// ErrInvalidTrend is returned for an empty sample sequence or a negative stroke width.
	ErrInvalidTrend = fmt.Errorf("%w: invalid trend", ErrValidation)
)

// Style selects the badge look.
type Style string

const (
	// StyleFlat has rounded corners and a subtle gradient. It is the default.
	StyleFlat Style = "flat"
	// StyleFlatSquare has square corners and no gradient.
	StyleFlatSquare Style = "flat-square"
)

// Default colors.
const (
	DefaultLeftColor   = "#555"
	DefaultRightColor  = "#007ec6"
	DefaultCenterColor = "#9f9f9f"
)

// Spec describes a badge. Colors are palette names or CSS colors; empty colors use the defaults.
type Spec struct {
	LeftText   string
	CenterText string
	RightText  string

	LeftColor   string
	CenterColor string
	RightColor  string

	// WholeLink may not be combined with LeftLink, CenterLink or RightLink.
	WholeLink  string
	LeftLink   string
	CenterLink string
	RightLink  string

	WholeTitle  string
	LeftTitle   string
	CenterTitle string
	RightTitle  string

	// Image references are URLs, data URIs or file paths. They are embedded as
	// data URIs when the matching Embed flag is set.
	Logo             string
	EmbedLogo        bool
	CenterImage      string
	EmbedCenterImage bool
	// RightImage may not be combined with Trend.
	RightImage      string
	EmbedRightImage bool

	// Trend draws a sparkline of the samples as the right image.
	Trend []int
	// TrendColor defaults to the right color.
	TrendColor string
	// TrendWidth defaults to 1.
	TrendWidth int

	Style Style
}

// Link is either a WholeLink or SegmentLinks.
type Link interface {
	isLink()
}

// WholeLink makes the entire badge a single link.
type WholeLink struct {
	URL string
}

// SegmentLinks links each segment independently. Empty URLs are not linked.
type SegmentLinks struct {
	Left, Center, Right string
}

func (WholeLink) isLink()    {}
func (SegmentLinks) isLink() {}

// Link returns the link layout of s.
func (s *Spec) Link() (Link, error) {
	if s.WholeLink == "" {
		return SegmentLinks{Left: s.LeftLink, Center: s.CenterLink, Right: s.RightLink}, nil
	}
	if s.LeftLink != "" || s.CenterLink != "" || s.RightLink != "" {
		return nil, fmt.Errorf("%w: whole link may not be set with left, center or right link", ErrConflictingLink)
	}
	return WholeLink{URL: s.WholeLink}, nil
}

// HasCenter reports whether the badge has a center segment.
func (s *Spec) HasCenter() bool {
	return s.CenterText != "" || s.CenterImage != ""
}

// Validate returns every inconsistency of s, or nil.
func (s *Spec) Validate() error {
	var result *multierror.Error
	if _, err := s.Link(); err != nil {
		result = multierror.Append(result, err)
	}
	if s.Trend != nil {
		if s.RightImage != "" {
			result = multierror.Append(result, fmt.Errorf("%w: trend may not be set with right image", ErrConflictingImage))
		}
		if len(s.Trend) == 0 {
			result = multierror.Append(result, fmt.Errorf("%w: no samples", ErrInvalidTrend))
		}
		if s.TrendWidth < 0 {
			result = multierror.Append(result, fmt.Errorf("%w: negative stroke width %d", ErrInvalidTrend, s.TrendWidth))
		}
	}
	switch s.Style {
	case "", StyleFlat, StyleFlatSquare:
	default:
		result = multierror.Append(result, fmt.Errorf("%w %q", ErrUnknownStyle, s.Style))
	}
	return result.ErrorOrNil()
}

func (s *Spec) style() Style {
	if s.Style == "" {
		return StyleFlat
	}
	return s.Style
}

func orDefault(value, fallback string) string {
	if value == "" {
		return fallback
	}
	return value
}
