// Package layout computes what a grid overlay consists of for one page: the
// line segments, the cell labels and the logo rectangle.
//
// Coordinates are in PDF user space: points, origin at the bottom-left corner
// of the page, y growing upwards. The package performs no I/O; callers resolve
// the logo image size beforehand and pass it to Compute.
package layout

import (
	"fmt"
	"math"

	"github.com/lvillar/pdfgrid"
)

// Fixed placement distances in points.
const (
	LabelOffset = 2.0  // gap between a cell's opening line and its label
	EdgeOffset  = 5.0  // gap between a page edge and the labels along it
	LogoMargin  = 15.0 // gap between the logo and both edges of its corner
	TagSize     = 36.0 // side of the square QR page tag
)

// MaxLines bounds the number of lines along one axis of a page.
const MaxLines = 10000

// Page is the geometry of a single page in points.
type Page struct {
	Width, Height float64
}

// Landscape returns p with width and height swapped when p is portrait.
func (p Page) Landscape() Page {
	if p.Height > p.Width {
		return Page{Width: p.Height, Height: p.Width}
	}
	return p
}

// Point is a position in PDF user space.
type Point struct {
	X, Y float64
}

// Segment is a straight line from A to B.
type Segment struct {
	A, B Point
}

// Align is the horizontal alignment of a label relative to its anchor.
type Align int

const (
	AlignLeft Align = iota
	AlignCenter
	AlignRight
)

// Edge identifies the page edge a label runs along.
type Edge int

const (
	EdgeBottom Edge = iota
	EdgeLeft
	EdgeTop
	EdgeRight
)

// Label is a piece of text anchored at a point. Y is the text baseline.
type Label struct {
	Text  string
	At    Point
	Align Align
	Edge  Edge
}

// Rect is an axis-aligned rectangle whose origin is its bottom-left corner.
type Rect struct {
	X, Y, W, H float64
}

// ImageSize is the pixel size of the logo image.
type ImageSize struct {
	Width, Height float64
}

// Layout is everything the compositor draws on one page.
type Layout struct {
	Page   Page
	Lines  []Segment // vertical lines left to right, then horizontal bottom to top
	Labels []Label   // column labels, then row labels; edge by edge
	Logo   *Rect     // nil when no logo is drawn
	Tag    *Rect     // nil unless the page tag is enabled
}

// Columns returns the number of grid cells along the page width.
func (l Layout) Columns(interval float64) int {
	return cells(l.Page.Width, interval)
}

// Rows returns the number of grid cells along the page height.
func (l Layout) Rows(interval float64) int {
	return cells(l.Page.Height, interval)
}

// Compute returns the layout of a grid with the given configuration on page p.
// logo may be nil, in which case no logo rectangle is produced.
func Compute(p Page, cfg pdfgrid.Config, logo *ImageSize) (Layout, error) {
	if cfg.Interval <= 0 || math.IsNaN(cfg.Interval) || math.IsInf(cfg.Interval, 0) {
		return Layout{}, pdfgrid.NewGridError("Compute", pdfgrid.ErrInvalidInterval)
	}
	if !(p.Width > 0 && p.Height > 0) {
		return Layout{}, pdfgrid.NewGridError("Compute", pdfgrid.ErrInvalidPage)
	}
	if n := math.Max(p.Width, p.Height) / cfg.Interval; n > MaxLines {
		return Layout{}, pdfgrid.NewGridError("Compute",
			fmt.Errorf("%w: %g is too fine for a %gx%g page", pdfgrid.ErrInvalidInterval, cfg.Interval, p.Width, p.Height))
	}

	l := Layout{Page: p}

	for _, x := range interior(p.Width, cfg.Interval) {
		l.Lines = append(l.Lines, Segment{A: Point{x, 0}, B: Point{x, p.Height}})
	}
	for _, y := range interior(p.Height, cfg.Interval) {
		l.Lines = append(l.Lines, Segment{A: Point{0, y}, B: Point{p.Width, y}})
	}

	l.Labels = labels(p, cfg)

	if logo != nil {
		r, err := logoRect(p, cfg.Logo, *logo)
		if err != nil {
			return Layout{}, err
		}
		l.Logo = &r
	}
	if cfg.Tag {
		r := tagRect(p, cfg.Logo, logo != nil)
		l.Tag = &r
	}
	return l, nil
}

// interior returns every multiple of interval strictly between 0 and length.
func interior(length, interval float64) []float64 {
	var out []float64
	for k := 1; ; k++ {
		v := float64(k) * interval
		if v >= length {
			return out
		}
		out = append(out, v)
	}
}

// cells returns the number of cells starting at a multiple of interval below length.
func cells(length, interval float64) int {
	if !(length > 0 && interval > 0) {
		return 0
	}
	if n := math.Ceil(length / interval); n > MaxLines {
		return int(n)
	}
	return len(interior(length, interval)) + 1
}
