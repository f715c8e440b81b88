package pageops

import (
	"bytes"
	"fmt"
	"image"
	"image/draw"
	"image/png"

	"codeberg.org/go-pdf/fpdf"
	"github.com/boombuler/barcode"
	"github.com/boombuler/barcode/qr"

	"github.com/lvillar/pdfgrid/layout"
)

// tagPixels is the raster size of the QR image; the PDF scales it to r.
const tagPixels = 256

// encodeTag renders content as a QR code PNG.
func encodeTag(content string) ([]byte, error) {
	code, err := qr.Encode(content, qr.M, qr.Auto)
	if err != nil {
		return nil, err
	}
	code, err = barcode.Scale(code, tagPixels, tagPixels)
	if err != nil {
		return nil, err
	}
	// qr renders Gray16, fpdf only embeds 8-bit PNGs
	gray := image.NewGray(code.Bounds())
	draw.Draw(gray, gray.Bounds(), code, code.Bounds().Min, draw.Src)
	var buf bytes.Buffer
	if err := png.Encode(&buf, gray); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// drawTag places a QR code encoding content at r on the current page.
func drawTag(pdf *fpdf.Fpdf, page layout.Page, r layout.Rect, content string, pageNum int) error {
	data, err := encodeTag(content)
	if err != nil {
		return fmt.Errorf("pageops: page tag: %w", err)
	}
	opts := fpdf.ImageOptions{ImageType: "PNG"}
	name := fmt.Sprintf("tag:%d", pageNum)
	pdf.RegisterImageOptionsReader(name, opts, bytes.NewReader(data))
	pdf.ImageOptions(name, r.X, page.Height-r.Y-r.H, r.W, r.H, false, opts, 0, "")
	return nil
}
