package pageops

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/draw"
	_ "image/gif"
	_ "image/jpeg"
	"image/png"
	"io/fs"
	"os"

	"codeberg.org/go-pdf/fpdf"
	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"

	"github.com/lvillar/pdfgrid"
	"github.com/lvillar/pdfgrid/layout"
)

// fpdf embeds these formats as they are; anything else is converted to PNG.
var nativeImageTypes = map[string]string{
	"png":  "PNG",
	"jpeg": "JPG",
	"gif":  "GIF",
}

// Logo is a decoded logo image ready to be placed on pages.
type Logo struct {
	Path string
	Size layout.ImageSize // pixel dimensions

	data      []byte
	imageType string
}

// LoadLogo reads the image at path. PNG, JPEG and GIF files are embedded
// unchanged when fpdf accepts them; anything else, including 16-bit and
// interlaced PNGs, is converted to 8-bit PNG.
// A missing file yields an error wrapping pdfgrid.ErrLogoMissing, an image
// that cannot be embedded one wrapping pdfgrid.ErrInvalidImage.
func LoadLogo(path string) (*Logo, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", pdfgrid.ErrLogoMissing, path)
		}
		return nil, fmt.Errorf("pageops: reading logo: %w", err)
	}

	cfg, format, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("pageops: logo %s: %w", path, err)
	}
	if cfg.Width <= 0 || cfg.Height <= 0 {
		return nil, fmt.Errorf("pageops: logo %s: %w", path, pdfgrid.ErrInvalidImage)
	}

	l := &Logo{
		Path: path,
		Size: layout.ImageSize{Width: float64(cfg.Width), Height: float64(cfg.Height)},
		data: data,
	}
	if t, ok := nativeImageTypes[format]; ok && embeds(data, t) == nil {
		l.imageType = t
		return l, nil
	}

	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("pageops: logo %s: %w", path, err)
	}
	rgba := image.NewNRGBA(img.Bounds())
	draw.Draw(rgba, rgba.Bounds(), img, img.Bounds().Min, draw.Src)
	var buf bytes.Buffer
	if err := png.Encode(&buf, rgba); err != nil {
		return nil, fmt.Errorf("pageops: logo %s: %w", path, err)
	}
	if err := embeds(buf.Bytes(), "PNG"); err != nil {
		return nil, fmt.Errorf("pageops: logo %s: %w: %v", path, pdfgrid.ErrInvalidImage, err)
	}
	l.data = buf.Bytes()
	l.imageType = "PNG"
	return l, nil
}

// embeds registers data in a scratch document and returns fpdf's verdict.
// fpdf records image errors on the document, which would fail every page.
func embeds(data []byte, imageType string) error {
	pdf := fpdf.New("P", "pt", "A4", "")
	pdf.RegisterImageOptionsReader("logo", fpdf.ImageOptions{ImageType: imageType}, bytes.NewReader(data))
	return pdf.Error()
}

func (l *Logo) name() string {
	return "logo:" + l.Path
}

func (l *Logo) register(pdf *fpdf.Fpdf) {
	pdf.RegisterImageOptionsReader(l.name(), fpdf.ImageOptions{ImageType: l.imageType}, bytes.NewReader(l.data))
}

// draw places the registered logo at r, given in layout coordinates.
func (l *Logo) draw(pdf *fpdf.Fpdf, page layout.Page, r layout.Rect) {
	pdf.ImageOptions(l.name(), r.X, page.Height-r.Y-r.H, r.W, r.H, false,
		fpdf.ImageOptions{ImageType: l.imageType}, 0, "")
}
