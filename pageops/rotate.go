package pageops

import (
	"codeberg.org/go-pdf/fpdf"
	"codeberg.org/go-pdf/fpdf/contrib/gofpdi"

	"github.com/lvillar/pdfgrid/layout"
)

// placeLandscape draws the imported template of the portrait page src rotated
// 90 degrees clockwise, filling the current page, which must be src.Height
// wide and src.Width tall.
//
// A clockwise quarter turn about (c, c) maps the template box
// [0,w]x[0,h] (top-left origin) onto [2c-h, 2c]x[0, w]; c = h/2 lands it
// exactly on the landscape canvas.
func placeLandscape(pdf *fpdf.Fpdf, imp *gofpdi.Importer, tplID int, src layout.Page) {
	c := src.Height / 2

	pdf.TransformBegin()
	pdf.TransformRotate(-90, c, c)
	imp.UseImportedTemplate(pdf, tplID, 0, 0, src.Width, src.Height)
	pdf.TransformEnd()
}
