package layout

import (
	"fmt"

	"github.com/lvillar/pdfgrid"
)

// logoRect sizes the logo to cfg.Height keeping the image aspect ratio and
// anchors it LogoMargin inside the configured corner.
func logoRect(p Page, cfg pdfgrid.LogoConfig, img ImageSize) (Rect, error) {
	if !(img.Width > 0 && img.Height > 0) {
		return Rect{}, pdfgrid.NewGridError("Compute", fmt.Errorf("%w: %gx%g", pdfgrid.ErrInvalidImage, img.Width, img.Height))
	}
	h := cfg.Height
	if h <= 0 {
		h = pdfgrid.DefaultLogoHeight
	}
	w := h * (img.Width / img.Height)

	r := Rect{W: w, H: h}
	switch cfg.Corner {
	case pdfgrid.TopLeft:
		r.X, r.Y = LogoMargin, p.Height-LogoMargin-h
	case pdfgrid.BottomLeft:
		r.X, r.Y = LogoMargin, LogoMargin
	case pdfgrid.BottomRight:
		r.X, r.Y = p.Width-LogoMargin-w, LogoMargin
	default: // TopRight
		r.X, r.Y = p.Width-LogoMargin-w, p.Height-LogoMargin-h
	}
	return r, nil
}

// tagRect places the page tag in the bottom-right corner, or bottom-left when
// a logo already occupies the bottom-right one.
func tagRect(p Page, logo pdfgrid.LogoConfig, hasLogo bool) Rect {
	r := Rect{X: p.Width - LogoMargin - TagSize, Y: LogoMargin, W: TagSize, H: TagSize}
	if hasLogo && logo.Corner == pdfgrid.BottomRight {
		r.X = LogoMargin
	}
	return r
}
