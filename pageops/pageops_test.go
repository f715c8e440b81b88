package pageops_test

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"hash/crc32"
	"image"
	"image/color"
	"image/png"
	"math"
	"os"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"
	"testing"

	"codeberg.org/go-pdf/fpdf"
	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
	"golang.org/x/image/bmp"

	"github.com/lvillar/pdfgrid"
	"github.com/lvillar/pdfgrid/layout"
	"github.com/lvillar/pdfgrid/pageops"
)

// createTestPDF generates a simple test PDF file with the given number of pages.
func createTestPDF(t *testing.T, filename string, numPages int, orientation string) {
	t.Helper()
	pdf := fpdf.New(orientation, "pt", "A4", "")
	pdf.SetFont("Helvetica", "", 14)
	for i := 1; i <= numPages; i++ {
		pdf.AddPage()
		pdf.Text(40, 60, fmt.Sprintf("Page %d of %d", i, numPages))
	}
	if err := pdf.OutputFileAndClose(filename); err != nil {
		t.Fatalf("creating test PDF: %v", err)
	}
}

// createTestImage writes a w x h image with the given encoder.
func createTestImage(t *testing.T, filename string, w, h int, encode func(*os.File, image.Image) error) {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for x := 0; x < w; x++ {
		for y := 0; y < h; y++ {
			img.Set(x, y, color.RGBA{R: uint8(x * 255 / w), G: 80, B: uint8(y * 255 / h), A: 255})
		}
	}
	f, err := os.Create(filename)
	if err != nil {
		t.Fatalf("creating image: %v", err)
	}
	defer f.Close()
	if err := encode(f, img); err != nil {
		t.Fatalf("encoding image: %v", err)
	}
}

func encodePNG(f *os.File, img image.Image) error { return png.Encode(f, img) }
func encodeBMP(f *os.File, img image.Image) error { return bmp.Encode(f, img) }

func near(a, b float64) bool {
	return math.Abs(a-b) < 0.01
}

// pageContent returns the decoded content stream of page pageNr of the PDF at path.
func pageContent(t *testing.T, path string, pageNr int) string {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	ctx, err := api.ReadContext(bytes.NewReader(data), model.NewDefaultConfiguration())
	if err != nil {
		t.Fatalf("reading %s: %v", path, err)
	}
	if err := ctx.EnsurePageCount(); err != nil {
		t.Fatalf("reading %s: %v", path, err)
	}
	d, _, _, err := ctx.PageDict(pageNr, false)
	if err != nil {
		t.Fatalf("%s page %d: %v", path, pageNr, err)
	}
	content, err := ctx.PageContent(d)
	if err != nil {
		t.Fatalf("%s page %d content: %v", path, pageNr, err)
	}
	return string(content)
}

// matrix is a PDF transformation matrix [a b c d e f].
type matrix [6]float64

func (m matrix) apply(p layout.Point) layout.Point {
	return layout.Point{X: m[0]*p.X + m[2]*p.Y + m[4], Y: m[1]*p.X + m[3]*p.Y + m[5]}
}

var cmOp = regexp.MustCompile(`(-?[\d.]+) (-?[\d.]+) (-?[\d.]+) (-?[\d.]+) (-?[\d.]+) (-?[\d.]+) cm`)

// matrices returns the operands of every cm operator in content, in order.
func matrices(t *testing.T, content string) []matrix {
	t.Helper()
	var out []matrix
	for _, m := range cmOp.FindAllStringSubmatch(content, -1) {
		var mx matrix
		for i := range mx {
			v, err := strconv.ParseFloat(m[i+1], 64)
			if err != nil {
				t.Fatalf("parsing %q: %v", m[0], err)
			}
			mx[i] = v
		}
		out = append(out, mx)
	}
	return out
}

func inspect(t *testing.T, path string) pageops.Document {
	t.Helper()
	doc, err := pageops.InspectFile(path)
	if err != nil {
		t.Fatalf("inspecting %s: %v", path, err)
	}
	return doc
}

func TestInspect(t *testing.T) {
	dir := t.TempDir()
	input := filepath.Join(dir, "input.pdf")
	createTestPDF(t, input, 3, "P")

	doc := inspect(t, input)
	if doc.NumPages() != 3 {
		t.Fatalf("expected 3 pages, got %d", doc.NumPages())
	}
	for i, p := range doc.Pages {
		if !near(p.Width, 595.28) || !near(p.Height, 841.89) {
			t.Errorf("page %d: unexpected size %+v", i+1, p)
		}
	}
}

func TestInspectCorrupted(t *testing.T) {
	_, err := pageops.Inspect(bytes.NewReader([]byte("this is not a pdf")))
	if !errors.Is(err, pdfgrid.ErrCorrupted) {
		t.Errorf("expected ErrCorrupted, got %v", err)
	}
}

func TestAddGridToFile(t *testing.T) {
	dir := t.TempDir()
	input := filepath.Join(dir, "plan.pdf")
	output := filepath.Join(dir, "plan_grid.pdf")
	createTestPDF(t, input, 2, "P")

	pages, err := pageops.AddGridToFile(input, output, pdfgrid.NewConfig())
	if err != nil {
		t.Fatalf("add grid: %v", err)
	}
	if pages != 2 {
		t.Errorf("expected 2 pages, got %d", pages)
	}

	doc := inspect(t, output)
	if doc.NumPages() != 2 {
		t.Errorf("expected 2 pages, got %d", doc.NumPages())
	}
	for i, p := range doc.Pages {
		if !near(p.Width, 595.28) || !near(p.Height, 841.89) {
			t.Errorf("page %d: size changed to %+v", i+1, p)
		}
	}

	l, err := layout.Compute(doc.Pages[0], pdfgrid.NewConfig(), nil)
	if err != nil {
		t.Fatal(err)
	}
	for page := 1; page <= 2; page++ {
		content := pageContent(t, output, page)
		if got := strings.Count(content, " l S"); got != len(l.Lines) {
			t.Errorf("page %d: expected %d grid lines, got %d", page, len(l.Lines), got)
		}
		if got := strings.Count(content, ") Tj"); got != len(l.Labels) {
			t.Errorf("page %d: expected %d labels, got %d", page, len(l.Labels), got)
		}
		if !strings.Contains(content, "/GOFPDITPL") {
			t.Errorf("page %d: source page not placed", page)
		}
	}

	origInfo, _ := os.Stat(input)
	gridInfo, _ := os.Stat(output)
	if gridInfo.Size() <= origInfo.Size() {
		t.Errorf("gridded file should be larger: orig=%d, grid=%d", origInfo.Size(), gridInfo.Size())
	}
	if _, err := os.Stat(output + ".tmp"); !os.IsNotExist(err) {
		t.Errorf("temporary file left behind: %v", err)
	}
}

func TestAddGridToWriter(t *testing.T) {
	dir := t.TempDir()
	input := filepath.Join(dir, "input.pdf")
	createTestPDF(t, input, 1, "P")

	cfg := pdfgrid.NewConfig(
		pdfgrid.WithInterval(36),
		pdfgrid.WithColor(200, 0, 0),
		pdfgrid.WithLabels(pdfgrid.AnchorCenter, pdfgrid.EdgesFour),
		pdfgrid.WithLayer(pdfgrid.Background),
	)
	var buf bytes.Buffer
	if _, err := pageops.AddGrid(&buf, input, cfg); err != nil {
		t.Fatalf("add grid: %v", err)
	}

	doc, err := pageops.Inspect(bytes.NewReader(buf.Bytes()))
	if err != nil {
		t.Fatalf("reading output: %v", err)
	}
	if doc.NumPages() != 1 {
		t.Errorf("expected 1 page, got %d", doc.NumPages())
	}
}

func TestAddGridLandscape(t *testing.T) {
	dir := t.TempDir()
	portrait := filepath.Join(dir, "portrait.pdf")
	landscape := filepath.Join(dir, "landscape.pdf")
	createTestPDF(t, portrait, 2, "P")
	createTestPDF(t, landscape, 1, "L")

	cfg := pdfgrid.NewConfig(pdfgrid.WithLandscape(true))
	for _, input := range []string{portrait, landscape} {
		output := filepath.Join(dir, pageops.OutputName(input))
		if _, err := pageops.AddGridToFile(input, output, cfg); err != nil {
			t.Fatalf("%s: %v", input, err)
		}
		for i, p := range inspect(t, output).Pages {
			if !near(p.Width, 841.89) || !near(p.Height, 595.28) {
				t.Errorf("%s page %d: expected landscape A4, got %+v", filepath.Base(input), i+1, p)
			}
		}
	}
}

func TestAddGridLandscapePlacement(t *testing.T) {
	dir := t.TempDir()
	input := filepath.Join(dir, "portrait.pdf")
	output := filepath.Join(dir, "portrait_grid.pdf")
	createTestPDF(t, input, 1, "P")
	src := inspect(t, input).Pages[0]
	w, h := src.Width, src.Height

	cfg := pdfgrid.NewConfig(pdfgrid.WithLandscape(true))
	if _, err := pageops.AddGridToFile(input, output, cfg); err != nil {
		t.Fatalf("add grid: %v", err)
	}

	content := pageContent(t, output, 1)
	cms := matrices(t, content)
	if len(cms) < 2 {
		t.Fatalf("expected rotation and template matrices, got %d in:\n%s", len(cms), content)
	}
	rotation, template := cms[0], cms[1]

	// template corners in form space, source page top-left first
	corners := []layout.Point{{X: 0, Y: h}, {X: w, Y: h}, {X: 0, Y: 0}, {X: w, Y: 0}}
	// clockwise quarter turn: top-left goes to top-right of the landscape page
	want := []layout.Point{{X: h, Y: w}, {X: h, Y: 0}, {X: 0, Y: w}, {X: 0, Y: 0}}
	for i, c := range corners {
		got := rotation.apply(template.apply(c))
		if !near(got.X, want[i].X) || !near(got.Y, want[i].Y) {
			t.Errorf("corner %+v: expected %+v, got %+v", c, want[i], got)
		}
	}

	l, err := layout.Compute(layout.Page{Width: h, Height: w}, cfg, nil)
	if err != nil {
		t.Fatal(err)
	}
	if got := strings.Count(content, " l S"); got != len(l.Lines) {
		t.Errorf("expected %d grid lines, got %d", len(l.Lines), got)
	}
}

func TestAddGridWithLogo(t *testing.T) {
	dir := t.TempDir()
	input := filepath.Join(dir, "input.pdf")
	createTestPDF(t, input, 2, "P")

	for _, tc := range []struct {
		name   string
		encode func(*os.File, image.Image) error
	}{
		{"logo.png", encodePNG},
		{"logo.bmp", encodeBMP},
	} {
		logoPath := filepath.Join(dir, tc.name)
		createTestImage(t, logoPath, 80, 20, tc.encode)

		cfg := pdfgrid.NewConfig(pdfgrid.WithLogo(logoPath, pdfgrid.TopLeft, 30))
		var buf bytes.Buffer
		if _, err := pageops.AddGrid(&buf, input, cfg); err != nil {
			t.Fatalf("%s: %v", tc.name, err)
		}
		if buf.Len() == 0 {
			t.Errorf("%s: empty output", tc.name)
		}
	}
}

// interlace sets the Adam7 flag in the IHDR chunk of a PNG written by
// image/png. A 1x1 image has identical scanlines in both layouts.
func interlace(data []byte) []byte {
	const ihdr = 8 + 4 // after the signature and the chunk length
	out := bytes.Clone(data)
	out[ihdr+4+12] = 1
	binary.BigEndian.PutUint32(out[ihdr+4+13:], crc32.ChecksumIEEE(out[ihdr:ihdr+4+13]))
	return out
}

func TestAddGridInterlacedLogo(t *testing.T) {
	dir := t.TempDir()
	input := filepath.Join(dir, "input.pdf")
	output := filepath.Join(dir, "output.pdf")
	createTestPDF(t, input, 2, "P")

	var buf bytes.Buffer
	img := image.NewNRGBA(image.Rect(0, 0, 1, 1))
	img.Set(0, 0, color.NRGBA{R: 200, G: 30, B: 30, A: 255})
	if err := png.Encode(&buf, img); err != nil {
		t.Fatal(err)
	}
	logoPath := filepath.Join(dir, "logo.png")
	if err := os.WriteFile(logoPath, interlace(buf.Bytes()), 0644); err != nil {
		t.Fatal(err)
	}

	logo, err := pageops.LoadLogo(logoPath)
	if err != nil {
		t.Fatalf("load logo: %v", err)
	}
	if logo.Size != (layout.ImageSize{Width: 1, Height: 1}) {
		t.Errorf("unexpected size %+v", logo.Size)
	}

	cfg := pdfgrid.NewConfig(pdfgrid.WithLogo(logoPath, pdfgrid.BottomRight, 20))
	if _, err := pageops.AddGridToFile(input, output, cfg); err != nil {
		t.Fatalf("add grid: %v", err)
	}
	for page := 1; page <= 2; page++ {
		// source page template and logo
		if got := strings.Count(pageContent(t, output, page), " Do"); got != 2 {
			t.Errorf("page %d: expected 2 placed objects, got %d", page, got)
		}
	}
}

func TestAddGridMissingLogo(t *testing.T) {
	dir := t.TempDir()
	input := filepath.Join(dir, "input.pdf")
	output := filepath.Join(dir, "output.pdf")
	createTestPDF(t, input, 1, "P")

	cfg := pdfgrid.NewConfig(pdfgrid.WithLogo(filepath.Join(dir, "nope.png"), pdfgrid.TopRight, 0))
	if _, err := pageops.AddGridToFile(input, output, cfg); err != nil {
		t.Fatalf("missing logo should not fail the file: %v", err)
	}
	if inspect(t, output).NumPages() != 1 {
		t.Error("expected 1 page")
	}
}

func TestAddGridPageTag(t *testing.T) {
	dir := t.TempDir()
	input := filepath.Join(dir, "input.pdf")
	createTestPDF(t, input, 3, "P")

	var buf bytes.Buffer
	pages, err := pageops.AddGrid(&buf, input, pdfgrid.NewConfig(pdfgrid.WithPageTag(true)),
		pageops.WithTagPrefix("site-plan"))
	if err != nil {
		t.Fatalf("add grid: %v", err)
	}
	if pages != 3 {
		t.Errorf("expected 3 pages, got %d", pages)
	}
}

func TestAddGridCorrupted(t *testing.T) {
	dir := t.TempDir()
	input := filepath.Join(dir, "broken.pdf")
	output := filepath.Join(dir, "broken_grid.pdf")
	if err := os.WriteFile(input, []byte("%PDF-1.4\nnot really\n"), 0644); err != nil {
		t.Fatal(err)
	}

	_, err := pageops.AddGridToFile(input, output, pdfgrid.NewConfig())
	if !errors.Is(err, pdfgrid.ErrCorrupted) {
		t.Errorf("expected ErrCorrupted, got %v", err)
	}
	if _, err := os.Stat(output); !os.IsNotExist(err) {
		t.Errorf("no output expected for a failed file, stat: %v", err)
	}
}

func TestAddGridInvalidConfig(t *testing.T) {
	var buf bytes.Buffer
	_, err := pageops.AddGrid(&buf, "any.pdf", pdfgrid.NewConfig(pdfgrid.WithInterval(0)))
	if !errors.Is(err, pdfgrid.ErrInvalidInterval) {
		t.Errorf("expected ErrInvalidInterval, got %v", err)
	}
	if buf.Len() != 0 {
		t.Error("nothing should be written on error")
	}
}

func TestLoadLogo(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "logo.png")
	createTestImage(t, path, 64, 16, encodePNG)

	logo, err := pageops.LoadLogo(path)
	if err != nil {
		t.Fatalf("load logo: %v", err)
	}
	if logo.Size != (layout.ImageSize{Width: 64, Height: 16}) {
		t.Errorf("unexpected size %+v", logo.Size)
	}

	if _, err := pageops.LoadLogo(filepath.Join(dir, "missing.png")); !errors.Is(err, pdfgrid.ErrLogoMissing) {
		t.Errorf("expected ErrLogoMissing, got %v", err)
	}

	text := filepath.Join(dir, "logo.txt")
	os.WriteFile(text, []byte("not an image"), 0644)
	if _, err := pageops.LoadLogo(text); err == nil {
		t.Error("expected error for non-image logo")
	}
}

func TestOutputName(t *testing.T) {
	tests := map[string]string{
		"plan.pdf":             "plan_grid.pdf",
		"/data/in/Floor 2.PDF": "Floor 2_grid.pdf",
		"archive.v2.pdf":       "archive.v2_grid.pdf",
	}
	for in, want := range tests {
		if got := pageops.OutputName(in); got != want {
			t.Errorf("OutputName(%q) = %q, want %q", in, got, want)
		}
	}
}
