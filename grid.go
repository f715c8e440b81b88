// Package pdfgrid holds the configuration value shared by the grid layout
// computer, the page compositor and the batch runner.
//
// A Config is an immutable value: build it with NewConfig or load it with the
// config package, validate it once, then pass it to every call that needs it.
package pdfgrid

import (
	"fmt"
	"math"
	"strings"
)

// Defaults applied by NewConfig and the config loader.
const (
	DefaultInterval   = 50.0
	DefaultLineWidth  = 0.5
	DefaultFontSize   = 8.0
	DefaultLogoHeight = 30.0
)

// DefaultColor is the grey used for lines and labels when none is configured.
var DefaultColor = RGBColor{R: 128, G: 128, B: 128}

// RGBColor represents an RGB color value with components in [0, 255].
type RGBColor struct {
	R, G, B int
}

func (c RGBColor) valid() bool {
	in := func(v int) bool { return v >= 0 && v <= 255 }
	return in(c.R) && in(c.G) && in(c.B)
}

// Corner selects the page corner used for logo placement.
type Corner int

const (
	TopRight Corner = iota
	TopLeft
	BottomLeft
	BottomRight
)

var cornerNames = map[Corner]string{
	TopRight:    "top_right",
	TopLeft:     "top_left",
	BottomLeft:  "bottom_left",
	BottomRight: "bottom_right",
}

func (c Corner) String() string {
	if s, ok := cornerNames[c]; ok {
		return s
	}
	return fmt.Sprintf("Corner(%d)", int(c))
}

// ParseCorner parses names such as "top_left". An empty string yields TopRight.
func ParseCorner(s string) (Corner, error) {
	s = normalize(s)
	if s == "" {
		return TopRight, nil
	}
	for c, name := range cornerNames {
		if name == s {
			return c, nil
		}
	}
	return TopRight, fmt.Errorf("%w: unknown corner %q", ErrInvalidParam, s)
}

// LabelAnchor selects where a cell label sits along its axis.
type LabelAnchor int

const (
	// AnchorLine puts the label just past the line that opens the cell.
	AnchorLine LabelAnchor = iota
	// AnchorCenter puts the label at the middle of the cell.
	AnchorCenter
)

// ParseLabelAnchor parses "line" or "center". An empty string yields AnchorLine.
func ParseLabelAnchor(s string) (LabelAnchor, error) {
	switch normalize(s) {
	case "", "line":
		return AnchorLine, nil
	case "center", "centre", "middle":
		return AnchorCenter, nil
	}
	return AnchorLine, fmt.Errorf("%w: unknown label anchor %q", ErrInvalidParam, s)
}

// LabelEdges selects which page edges carry labels.
type LabelEdges int

const (
	// EdgesTwo labels columns along the bottom and rows along the left edge.
	EdgesTwo LabelEdges = iota
	// EdgesFour also labels columns along the top and rows along the right edge.
	EdgesFour
)

// ParseLabelEdges parses "two" or "four" (also "2", "4", "all").
func ParseLabelEdges(s string) (LabelEdges, error) {
	switch normalize(s) {
	case "", "two", "2", "bottom_left":
		return EdgesTwo, nil
	case "four", "4", "all":
		return EdgesFour, nil
	}
	return EdgesTwo, fmt.Errorf("%w: unknown label edges %q", ErrInvalidParam, s)
}

// Layer selects whether the grid is drawn above or beneath the page content.
type Layer int

const (
	Foreground Layer = iota
	Background
)

// ParseLayer parses "foreground" or "background".
func ParseLayer(s string) (Layer, error) {
	switch normalize(s) {
	case "", "foreground", "front", "top":
		return Foreground, nil
	case "background", "back", "bottom":
		return Background, nil
	}
	return Foreground, fmt.Errorf("%w: unknown layer %q", ErrInvalidParam, s)
}

// LogoConfig describes the optional logo stamped on every page.
type LogoConfig struct {
	Path   string  // image file; empty disables the logo
	Corner Corner  // page corner the logo is anchored to
	Height float64 // rendered height in points; width follows the aspect ratio
}

// Config is the grid configuration applied to every page of every file.
type Config struct {
	Interval  float64 // grid spacing in points
	LineWidth float64 // stroke width in points
	Color     RGBColor
	FontSize  float64
	Anchor    LabelAnchor
	Edges     LabelEdges
	Layer     Layer
	Landscape bool // rotate portrait pages to landscape before drawing
	Tag       bool // stamp a QR page tag on every page
	Logo      LogoConfig
}

// Validate reports the first invalid field of c.
func (c Config) Validate() error {
	switch {
	case !positive(c.Interval):
		return NewGridError("Validate", fmt.Errorf("%w: %g", ErrInvalidInterval, c.Interval))
	case !positive(c.LineWidth):
		return NewGridError("Validate", fmt.Errorf("%w: line width %g", ErrInvalidParam, c.LineWidth))
	case !positive(c.FontSize):
		return NewGridError("Validate", fmt.Errorf("%w: font size %g", ErrInvalidParam, c.FontSize))
	case !c.Color.valid():
		return NewGridError("Validate", fmt.Errorf("%w: color %v out of range", ErrInvalidParam, c.Color))
	case c.Logo.Path != "" && !positive(c.Logo.Height):
		return NewGridError("Validate", fmt.Errorf("%w: logo height %g", ErrInvalidParam, c.Logo.Height))
	}
	if _, ok := cornerNames[c.Logo.Corner]; !ok {
		return NewGridError("Validate", fmt.Errorf("%w: logo corner %v", ErrInvalidParam, c.Logo.Corner))
	}
	return nil
}

// positive reports whether v is a finite number greater than zero.
func positive(v float64) bool {
	return v > 0 && !math.IsInf(v, 0)
}

func normalize(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	return strings.ReplaceAll(s, "-", "_")
}
