package badges

const (
	height      = 20
	textPadding = 10
	iconSize    = 14
	iconPadding = 3
	imageInset  = 5
	iconY       = 3
	trendY      = 3.5
)

// placedImage is a resolved picture placed inside a segment.
type placedImage struct {
	X, Y          float64
	Width, Height float64
	Href          string
}

// segment is one colored box of the badge. Text coordinates are at 10x scale.
type segment struct {
	X, Width   float64
	Color      string
	Text       string
	TextX      float64
	TextLength float64
	Image      *placedImage
	Link       string
	Title      string
}

// layout is everything the template needs.
type layout struct {
	Width      float64
	Height     float64
	Rounded    bool
	WholeLink  string
	WholeTitle string
	Segments   []*segment
}

// segmentInput is what a segment is built from.
type segmentInput struct {
	text      string
	textWidth float64 // display units
	color     string
	link      string
	title     string
	href      string
	imageW    float64
	imageH    float64
	imageY    float64
	// shift moves the text center; the left segment sits one unit right, others one unit left.
	shift float64
}

// place appends a segment at the current end of l.
func (l *layout) place(in segmentInput) {
	reserved := 0.0
	if in.href != "" {
		reserved = in.imageW
		if in.text != "" {
			reserved += iconPadding
		}
	}

	s := &segment{
		X:     l.Width,
		Width: in.textWidth + textPadding + reserved,
		Color: in.color,
		Text:  in.text,
		Link:  in.link,
		Title: in.title,
	}
	s.TextX = (s.X + imageInset + reserved + in.textWidth/2 + in.shift) * 10
	s.TextLength = in.textWidth * 10
	if in.href != "" {
		s.Image = &placedImage{
			X:      s.X + imageInset,
			Y:      in.imageY,
			Width:  in.imageW,
			Height: in.imageH,
			Href:   in.href,
		}
	}
	l.Segments = append(l.Segments, s)
	l.Width += s.Width
}
