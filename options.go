package pdfgrid

// Option is a functional option for building a Config via NewConfig.
type Option func(*Config)

// WithInterval sets the grid spacing in points.
func WithInterval(interval float64) Option {
	return func(c *Config) {
		c.Interval = interval
	}
}

// WithLineWidth sets the stroke width of grid lines in points.
func WithLineWidth(width float64) Option {
	return func(c *Config) {
		c.LineWidth = width
	}
}

// WithColor sets the line and label color.
func WithColor(r, g, b int) Option {
	return func(c *Config) {
		c.Color = RGBColor{R: r, G: g, B: b}
	}
}

// WithFontSize sets the label font size in points.
func WithFontSize(size float64) Option {
	return func(c *Config) {
		c.FontSize = size
	}
}

// WithLabels sets the label anchor policy and the labelled edges.
func WithLabels(anchor LabelAnchor, edges LabelEdges) Option {
	return func(c *Config) {
		c.Anchor = anchor
		c.Edges = edges
	}
}

// WithLayer draws the grid above (Foreground) or beneath (Background) the page content.
func WithLayer(layer Layer) Option {
	return func(c *Config) {
		c.Layer = layer
	}
}

// WithLandscape rotates portrait pages by 90 degrees onto a landscape canvas.
func WithLandscape(on bool) Option {
	return func(c *Config) {
		c.Landscape = on
	}
}

// WithPageTag stamps a QR code identifying file and page on every page.
func WithPageTag(on bool) Option {
	return func(c *Config) {
		c.Tag = on
	}
}

// WithLogo sets the logo image, its corner and its height in points.
// A height of zero keeps DefaultLogoHeight.
func WithLogo(path string, corner Corner, height float64) Option {
	return func(c *Config) {
		c.Logo.Path = path
		c.Logo.Corner = corner
		if height != 0 {
			c.Logo.Height = height
		}
	}
}

// NewConfig creates a grid configuration using functional options.
// If no options are specified, it yields a 50pt grey grid with 0.5pt lines,
// 8pt labels on the bottom and left edges, drawn in the foreground.
//
// Example:
//
//	cfg := pdfgrid.NewConfig(
//	    pdfgrid.WithInterval(36),
//	    pdfgrid.WithColor(200, 0, 0),
//	    pdfgrid.WithLabels(pdfgrid.AnchorCenter, pdfgrid.EdgesFour),
//	)
func NewConfig(opts ...Option) Config {
	cfg := Config{
		Interval:  DefaultInterval,
		LineWidth: DefaultLineWidth,
		Color:     DefaultColor,
		FontSize:  DefaultFontSize,
		Logo: LogoConfig{
			Corner: TopRight,
			Height: DefaultLogoHeight,
		},
	}
	for _, opt := range opts {
		opt(&cfg)
	}
	return cfg
}
