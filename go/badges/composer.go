// Package badges composes shields-style SVG badges.
//
// A Composer measures the text of each segment, resolves the images a Spec
// references, draws the optional trend sparkline and fills the badge template.
// Identical specs produce identical bytes as long as the measurer and the
// referenced images do not change.
package badges

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/malonaz/badges/go/badges/datauri"
	"github.com/malonaz/badges/go/badges/measure"
	"github.com/malonaz/badges/go/badges/palette"
	"github.com/malonaz/badges/go/badges/trend"
)

// ImageResolver turns an image reference into the href placed in the badge.
type ImageResolver interface {
	Resolve(ctx context.Context, reference string, embed bool) (string, error)
}

// Composer builds badge documents. It is safe for concurrent use if its
// measurer and resolver are.
type Composer struct {
	log      *slog.Logger
	measurer measure.Measurer
	resolver ImageResolver
}

// NewComposer returns a composer.
func NewComposer(measurer measure.Measurer, resolver ImageResolver) *Composer {
	return &Composer{
		log:      slog.Default(),
		measurer: measurer,
		resolver: resolver,
	}
}

// NewDefaultComposer returns a composer using the default metrics table and a
// resolver that may read local files.
func NewDefaultComposer() (*Composer, error) {
	measurer, err := measure.Default()
	if err != nil {
		return nil, fmt.Errorf("loading default measurer: %w", err)
	}
	return NewComposer(measurer, datauri.NewResolver()), nil
}

// WithLogger sets this composer's logger.
func (c *Composer) WithLogger(logger *slog.Logger) *Composer {
	c.log = logger
	return c
}

// Compose validates spec and returns the badge SVG document.
func (c *Composer) Compose(ctx context.Context, spec *Spec) ([]byte, error) {
	start := time.Now()
	document, err := c.compose(ctx, spec)
	if err != nil {
		getMetrics().compositionsTotal.WithLabelValues("error").Inc()
		return nil, err
	}
	getMetrics().compositionsTotal.WithLabelValues("ok").Inc()
	getMetrics().compositionSeconds.Observe(time.Since(start).Seconds())
	return document, nil
}

func (c *Composer) compose(ctx context.Context, spec *Spec) ([]byte, error) {
	if err := spec.Validate(); err != nil {
		return nil, err
	}
	link, err := spec.Link()
	if err != nil {
		return nil, err
	}

	logo, err := c.resolve(ctx, "logo", spec.Logo, spec.EmbedLogo)
	if err != nil {
		return nil, err
	}
	centerImage, err := c.resolve(ctx, "center image", spec.CenterImage, spec.EmbedCenterImage)
	if err != nil {
		return nil, err
	}
	rightImage, err := c.resolve(ctx, "right image", spec.RightImage, spec.EmbedRightImage)
	if err != nil {
		return nil, err
	}

	rightColor := orDefault(spec.RightColor, DefaultRightColor)
	right := segmentInput{
		text:      spec.RightText,
		textWidth: c.width(spec.RightText),
		color:     palette.Resolve(rightColor),
		title:     spec.RightTitle,
		href:      rightImage,
		imageW:    iconSize,
		imageH:    iconSize,
		imageY:    iconY,
		shift:     -1,
	}
	if spec.Trend != nil {
		strokeWidth := spec.TrendWidth
		if strokeWidth == 0 {
			strokeWidth = 1
		}
		right.href, err = trend.Render(spec.Trend, orDefault(spec.TrendColor, rightColor), strokeWidth)
		if err != nil {
			return nil, fmt.Errorf("rendering trend: %w", err)
		}
		right.imageW, right.imageH, right.imageY = trend.Width, trend.Height, trendY
	}

	l := &layout{
		Height:     height,
		Rounded:    spec.style() == StyleFlat,
		WholeTitle: spec.WholeTitle,
	}
	left := segmentInput{
		text:      spec.LeftText,
		textWidth: c.width(spec.LeftText),
		color:     palette.Resolve(orDefault(spec.LeftColor, DefaultLeftColor)),
		title:     spec.LeftTitle,
		href:      logo,
		imageW:    iconSize,
		imageH:    iconSize,
		imageY:    iconY,
		shift:     1,
	}
	var center *segmentInput
	if spec.HasCenter() {
		center = &segmentInput{
			text:      spec.CenterText,
			textWidth: c.width(spec.CenterText),
			color:     palette.Resolve(orDefault(spec.CenterColor, DefaultCenterColor)),
			title:     spec.CenterTitle,
			href:      centerImage,
			imageW:    iconSize,
			imageH:    iconSize,
			imageY:    iconY,
			shift:     -1,
		}
	}
	switch link := link.(type) {
	case WholeLink:
		l.WholeLink = link.URL
	case SegmentLinks:
		left.link, right.link = link.Left, link.Right
		if center != nil {
			center.link = link.Center
		}
	}

	l.place(left)
	if center != nil {
		l.place(*center)
	}
	l.place(right)
	c.log.DebugContext(ctx, "laid out badge", "width", l.Width, "segments", len(l.Segments), "style", string(spec.style()))

	filled, err := render(l)
	if err != nil {
		return nil, err
	}
	return normalize(filled)
}

// width returns the display width of text.
func (c *Composer) width(text string) float64 {
	return c.measurer.TextWidth(text) / 10.0
}

func (c *Composer) resolve(ctx context.Context, name, reference string, embed bool) (string, error) {
	if reference == "" {
		return "", nil
	}
	href, err := c.resolver.Resolve(ctx, reference, embed)
	if err != nil {
		return "", fmt.Errorf("resolving %s: %w", name, err)
	}
	return href, nil
}

// Compose builds a badge with the default composer.
func Compose(ctx context.Context, spec *Spec) ([]byte, error) {
	composer, err := NewDefaultComposer()
	if err != nil {
		return nil, err
	}
	return composer.Compose(ctx, spec)
}
