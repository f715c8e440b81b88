package layout_test

import (
	"fmt"

	"github.com/lvillar/pdfgrid"
	"github.com/lvillar/pdfgrid/layout"
)

// ExampleCompute computes the grid of a US Letter page with a one-inch interval.
func ExampleCompute() {
	cfg := pdfgrid.NewConfig(pdfgrid.WithInterval(72))
	l, err := layout.Compute(layout.Page{Width: 612, Height: 792}, cfg, nil)
	if err != nil {
		fmt.Println(err)
		return
	}
	fmt.Printf("%d lines, %d columns, %d rows\n", len(l.Lines), l.Columns(72), l.Rows(72))
	fmt.Println(l.Labels[0].Text, l.Labels[l.Columns(72)-1].Text)
	fmt.Println(layout.CellAt(300, 400, 72))
	// Output:
	// 18 lines, 9 columns, 11 rows
	// A I
	// E6
}
