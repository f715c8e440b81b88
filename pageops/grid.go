package pageops

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"codeberg.org/go-pdf/fpdf"
	"codeberg.org/go-pdf/fpdf/contrib/gofpdi"

	"github.com/lvillar/pdfgrid"
	"github.com/lvillar/pdfgrid/layout"
)

const labelFont = "Helvetica"

// AddGrid draws the grid described by cfg onto every page of the PDF at
// inputPath and writes the result to w. It returns the number of pages written.
// Nothing is written to w unless the whole document was composed.
func AddGrid(w io.Writer, inputPath string, cfg pdfgrid.Config, opts ...Option) (int, error) {
	data, pages, err := buildGridPDF(inputPath, cfg, newSettings(opts))
	if err != nil {
		return 0, err
	}
	if _, err := w.Write(data); err != nil {
		return 0, fmt.Errorf("pageops: writing output: %w", err)
	}
	return pages, nil
}

// AddGridToFile draws the grid onto inputPath and saves the result to outputPath.
func AddGridToFile(inputPath, outputPath string, cfg pdfgrid.Config, opts ...Option) (int, error) {
	data, pages, err := buildGridPDF(inputPath, cfg, newSettings(opts))
	if err != nil {
		return 0, err
	}
	if err := writeFileAtomic(outputPath, data); err != nil {
		return 0, err
	}
	return pages, nil
}

// OutputName returns the name of the gridded copy of inputPath: <basename>_grid.pdf.
func OutputName(inputPath string) string {
	base := filepath.Base(inputPath)
	return strings.TrimSuffix(base, filepath.Ext(base)) + "_grid.pdf"
}

func buildGridPDF(inputPath string, cfg pdfgrid.Config, s *settings) (out []byte, pages int, err error) {
	if err := cfg.Validate(); err != nil {
		return nil, 0, err
	}

	data, err := os.ReadFile(inputPath)
	if err != nil {
		return nil, 0, fmt.Errorf("pageops: reading %s: %w", inputPath, err)
	}
	doc, err := Inspect(bytes.NewReader(data))
	if err != nil {
		return nil, 0, fmt.Errorf("pageops: %s: %w", inputPath, err)
	}

	logo := s.logo
	if !s.logoSet && cfg.Logo.Path != "" {
		logo, err = LoadLogo(cfg.Logo.Path)
		if err != nil {
			s.logger.Warn("skipping logo", "path", cfg.Logo.Path, "err", err)
			logo = nil
		}
	}
	prefix := s.tagPrefix
	if prefix == "" {
		prefix = filepath.Base(inputPath)
	}

	// gofpdi panics on input its parser cannot handle
	defer func() {
		if r := recover(); r != nil {
			out, pages = nil, 0
			err = fmt.Errorf("pageops: %s: %w: %v", inputPath, pdfgrid.ErrCorrupted, r)
		}
	}()

	pdf := newBasePDF()
	imp := gofpdi.NewImporter()
	rs := io.ReadSeeker(bytes.NewReader(data))
	if logo != nil {
		logo.register(pdf)
	}

	for i := 1; i <= doc.NumPages(); i++ {
		tplID, src := importPage(pdf, imp, &rs, i, doc.Pages[i-1])

		rotate := cfg.Landscape && src.Height > src.Width
		page := src
		if rotate {
			page = src.Landscape()
		}

		var img *layout.ImageSize
		if logo != nil {
			img = &logo.Size
		}
		l, err := layout.Compute(page, cfg, img)
		if err != nil {
			return nil, 0, err
		}
		s.logger.Debug("page", "file", filepath.Base(inputPath), "page", i,
			"width", page.Width, "height", page.Height, "lines", len(l.Lines), "rotated", rotate)

		pdf.AddPageFormat("P", fpdf.SizeType{Wd: page.Width, Ht: page.Height})

		if cfg.Layer == pdfgrid.Background {
			drawGrid(pdf, l, cfg)
		}
		if rotate {
			placeLandscape(pdf, imp, tplID, src)
		} else {
			imp.UseImportedTemplate(pdf, tplID, 0, 0, src.Width, src.Height)
		}
		if cfg.Layer == pdfgrid.Foreground {
			drawGrid(pdf, l, cfg)
		}

		if logo != nil && l.Logo != nil {
			logo.draw(pdf, page, *l.Logo)
		}
		if l.Tag != nil {
			if err := drawTag(pdf, page, *l.Tag, fmt.Sprintf("%s p%d", prefix, i), i); err != nil {
				return nil, 0, err
			}
		}
	}

	if pdf.Err() {
		return nil, 0, fmt.Errorf("pageops: grid: %w", pdf.Error())
	}
	out, err = renderPDF(pdf)
	if err != nil {
		return nil, 0, fmt.Errorf("pageops: grid: %w", err)
	}
	return out, doc.NumPages(), nil
}

// drawGrid renders lines and labels of l onto the current page.
// Layout coordinates have a bottom-left origin; fpdf's origin is top-left.
func drawGrid(pdf *fpdf.Fpdf, l layout.Layout, cfg pdfgrid.Config) {
	h := l.Page.Height

	pdf.SetDrawColor(cfg.Color.R, cfg.Color.G, cfg.Color.B)
	pdf.SetLineWidth(cfg.LineWidth)
	for _, s := range l.Lines {
		pdf.Line(s.A.X, h-s.A.Y, s.B.X, h-s.B.Y)
	}

	pdf.SetFont(labelFont, "", cfg.FontSize)
	pdf.SetTextColor(cfg.Color.R, cfg.Color.G, cfg.Color.B)
	for _, lb := range l.Labels {
		x := lb.At.X
		switch lb.Align {
		case layout.AlignCenter:
			x -= pdf.GetStringWidth(lb.Text) / 2
		case layout.AlignRight:
			x -= pdf.GetStringWidth(lb.Text)
		}
		pdf.Text(x, h-lb.At.Y, lb.Text)
	}
}
