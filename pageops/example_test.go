package pageops_test

import (
	"fmt"
	"os"
	"path/filepath"

	"codeberg.org/go-pdf/fpdf"

	"github.com/lvillar/pdfgrid"
	"github.com/lvillar/pdfgrid/pageops"
)

// createExamplePDF creates a simple floor plan style PDF for use in examples.
func createExamplePDF(filename string) error {
	pdf := fpdf.New("P", "pt", "Letter", "")
	pdf.AddPage()
	pdf.SetLineWidth(2)
	pdf.Rect(72, 72, 468, 648, "D")
	pdf.Line(72, 396, 540, 396)
	pdf.SetFont("Helvetica", "", 18)
	pdf.Text(90, 110, "Ground floor")
	return pdf.OutputFileAndClose(filename)
}

// ExampleAddGridToFile demonstrates overlaying a one-inch grid on a drawing.
func ExampleAddGridToFile() {
	dir, err := os.MkdirTemp("", "pdfgrid")
	if err != nil {
		fmt.Println(err)
		return
	}
	defer os.RemoveAll(dir)

	input := filepath.Join(dir, "floor.pdf")
	if err := createExamplePDF(input); err != nil {
		fmt.Println(err)
		return
	}

	cfg := pdfgrid.NewConfig(
		pdfgrid.WithInterval(72),
		pdfgrid.WithColor(0, 90, 200),
		pdfgrid.WithLabels(pdfgrid.AnchorCenter, pdfgrid.EdgesFour),
	)
	output := filepath.Join(dir, pageops.OutputName(input))
	pages, err := pageops.AddGridToFile(input, output, cfg)
	if err != nil {
		fmt.Println(err)
		return
	}
	fmt.Printf("%s: %d page(s)\n", filepath.Base(output), pages)
	// Output:
	// floor_grid.pdf: 1 page(s)
}
