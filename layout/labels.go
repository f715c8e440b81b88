package layout

import (
	"math"
	"strconv"

	"github.com/lvillar/pdfgrid"
)

// ColumnLabel returns the letters naming column i (zero-based):
// A..Z, then AA, AB, .. AZ, BA, .. ZZ, AAA and so on.
func ColumnLabel(i int) string {
	if i < 0 {
		return ""
	}
	var buf [16]byte
	n := len(buf)
	for i++; i > 0; i = (i - 1) / 26 {
		n--
		buf[n] = byte('A' + (i-1)%26)
	}
	return string(buf[n:])
}

// RowLabel returns the 1-based number naming row j (zero-based, counted from the bottom).
func RowLabel(j int) string {
	return strconv.Itoa(j + 1)
}

// ColumnAt returns the label of the column containing x.
func ColumnAt(x, interval float64) string {
	return ColumnLabel(int(math.Floor(x / interval)))
}

// RowAt returns the label of the row containing y.
func RowAt(y, interval float64) string {
	return RowLabel(int(math.Floor(y / interval)))
}

// CellAt returns the cell reference, e.g. "C4", of the point (x, y).
func CellAt(x, y, interval float64) string {
	return ColumnAt(x, interval) + RowAt(y, interval)
}

func labels(p Page, cfg pdfgrid.Config) []Label {
	cols := cells(p.Width, cfg.Interval)
	rows := cells(p.Height, cfg.Interval)

	edges := []Edge{EdgeBottom}
	if cfg.Edges == pdfgrid.EdgesFour {
		edges = append(edges, EdgeTop)
	}
	var out []Label
	for _, e := range edges {
		for i := 0; i < cols; i++ {
			out = append(out, columnLabel(p, cfg, i, e))
		}
	}

	edges = []Edge{EdgeLeft}
	if cfg.Edges == pdfgrid.EdgesFour {
		edges = append(edges, EdgeRight)
	}
	for _, e := range edges {
		for j := 0; j < rows; j++ {
			out = append(out, rowLabel(p, cfg, j, e))
		}
	}
	return out
}

func columnLabel(p Page, cfg pdfgrid.Config, i int, e Edge) Label {
	l := Label{Text: ColumnLabel(i), Edge: e, Align: AlignLeft}
	start := float64(i) * cfg.Interval
	if cfg.Anchor == pdfgrid.AnchorCenter {
		l.At.X = (start + math.Min(start+cfg.Interval, p.Width)) / 2
		l.Align = AlignCenter
	} else {
		l.At.X = start + LabelOffset
	}
	if e == EdgeTop {
		l.At.Y = p.Height - EdgeOffset - cfg.FontSize
	} else {
		l.At.Y = EdgeOffset
	}
	return l
}

func rowLabel(p Page, cfg pdfgrid.Config, j int, e Edge) Label {
	l := Label{Text: RowLabel(j), Edge: e, Align: AlignLeft}
	start := float64(j) * cfg.Interval
	if cfg.Anchor == pdfgrid.AnchorCenter {
		// baseline a third of the font size below the middle centers the digits
		l.At.Y = (start+math.Min(start+cfg.Interval, p.Height))/2 - cfg.FontSize/3
	} else {
		l.At.Y = start + LabelOffset
	}
	if e == EdgeRight {
		l.At.X = p.Width - EdgeOffset
		l.Align = AlignRight
	} else {
		l.At.X = EdgeOffset
	}
	return l
}
