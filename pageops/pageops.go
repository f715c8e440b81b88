// Package pageops draws grid overlays onto the pages of existing PDF documents.
//
// Input documents are inspected with pdfcpu, then every page is imported as a
// template through the gofpdi contrib package into a new fpdf document, where
// the grid layout computed by the layout package is drawn above or beneath it.
package pageops

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"sync"

	"codeberg.org/go-pdf/fpdf"
	"codeberg.org/go-pdf/fpdf/contrib/gofpdi"
	"github.com/charmbracelet/log"
	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"

	"github.com/lvillar/pdfgrid"
	"github.com/lvillar/pdfgrid/layout"
)

// A4 in points, used when a page reports no usable media box.
const (
	defaultPageWidth  = 595.28
	defaultPageHeight = 841.89
)

var disableConfigDir sync.Once

// Document describes an input PDF.
type Document struct {
	Pages []layout.Page // one entry per page, in order
}

// NumPages returns the number of pages.
func (d Document) NumPages() int {
	return len(d.Pages)
}

// Inspect reads the page count and page geometry of a PDF.
// It fails with pdfgrid.ErrCorrupted when the data cannot be parsed and with
// pdfgrid.ErrNoPages when the document is empty.
func Inspect(r io.ReadSeeker) (Document, error) {
	disableConfigDir.Do(api.DisableConfigDir)

	ctx, err := api.ReadContext(r, model.NewDefaultConfiguration())
	if err != nil {
		return Document{}, fmt.Errorf("%w: %v", pdfgrid.ErrCorrupted, err)
	}
	if err := ctx.EnsurePageCount(); err != nil {
		return Document{}, fmt.Errorf("%w: %v", pdfgrid.ErrCorrupted, err)
	}
	if ctx.PageCount == 0 {
		return Document{}, pdfgrid.ErrNoPages
	}

	dims, err := ctx.PageDims()
	if err != nil {
		return Document{}, fmt.Errorf("%w: %v", pdfgrid.ErrCorrupted, err)
	}
	doc := Document{Pages: make([]layout.Page, ctx.PageCount)}
	for i := range doc.Pages {
		p := layout.Page{Width: defaultPageWidth, Height: defaultPageHeight}
		if i < len(dims) && dims[i].Width > 0 && dims[i].Height > 0 {
			p = layout.Page{Width: dims[i].Width, Height: dims[i].Height}
		}
		doc.Pages[i] = p
	}
	return doc, nil
}

// InspectFile is Inspect for a file on disk.
func InspectFile(path string) (Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Document{}, fmt.Errorf("pageops: reading %s: %w", path, err)
	}
	return Inspect(bytes.NewReader(data))
}

// importPage imports a single page from the source stream into the target PDF.
// Returns the template ID and the media box dimensions, falling back to fallback
// when the importer reports none.
func importPage(pdf *fpdf.Fpdf, imp *gofpdi.Importer, rs *io.ReadSeeker, pageNum int, fallback layout.Page) (tplID int, p layout.Page) {
	tplID = imp.ImportPageFromStream(pdf, rs, pageNum, "/MediaBox")
	p = fallback
	sizes := imp.GetPageSizes()
	if dims, ok := sizes[pageNum]; ok {
		if mb, ok := dims["/MediaBox"]; ok && mb["w"] > 0 && mb["h"] > 0 {
			p = layout.Page{Width: mb["w"], Height: mb["h"]}
		}
	}
	return
}

// newBasePDF returns an empty point-based document without automatic page breaks.
func newBasePDF() *fpdf.Fpdf {
	pdf := fpdf.New("P", "pt", "A4", "")
	pdf.SetAutoPageBreak(false, 0)
	return pdf
}

// renderPDF serializes the finished document into memory.
func renderPDF(pdf *fpdf.Fpdf) ([]byte, error) {
	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// writeFileAtomic writes data next to filename and renames it into place, so
// a failure never leaves a partial output file behind.
func writeFileAtomic(filename string, data []byte) error {
	tmp := filename + ".tmp"
	if err := os.WriteFile(tmp, data, 0644); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("pageops: writing %s: %w", filename, err)
	}
	if err := os.Rename(tmp, filename); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("pageops: writing %s: %w", filename, err)
	}
	return nil
}

// Option configures AddGrid.
type Option func(*settings)

type settings struct {
	logger    *log.Logger
	logo      *Logo
	logoSet   bool
	tagPrefix string
}

// WithLogger sets the logger used for warnings and per-page debug output.
func WithLogger(l *log.Logger) Option {
	return func(s *settings) {
		s.logger = l
	}
}

// WithLogo supplies an already loaded logo, so a batch decodes it only once.
// A nil logo disables the logo even when the Config names one.
func WithLogo(l *Logo) Option {
	return func(s *settings) {
		s.logo = l
		s.logoSet = true
	}
}

// WithTagPrefix sets the text encoded in front of the page number by the QR page tag.
func WithTagPrefix(prefix string) Option {
	return func(s *settings) {
		s.tagPrefix = prefix
	}
}

func newSettings(opts []Option) *settings {
	s := &settings{}
	for _, opt := range opts {
		opt(s)
	}
	if s.logger == nil {
		s.logger = log.New(io.Discard)
	}
	return s
}
