package audit

import (
	"strconv"
	"strings"
	"time"
)

// CellKind classifies the underlying value of a workbook cell.
type CellKind int

const (
	CellBlank CellKind = iota
	CellText
	CellNumber
	CellDate
	CellBool
)

func (k CellKind) String() string {
	switch k {
	case CellBlank:
		return "blank"
	case CellText:
		return "text"
	case CellNumber:
		return "number"
	case CellDate:
		return "date"
	case CellBool:
		return "bool"
	default:
		return "unknown"
	}
}

// Cell holds one workbook cell: the raw stored value plus the
// display-formatted text the spreadsheet would show. Number, Date and Bool
// are populated only for the matching kind.
type Cell struct {
	Kind    CellKind
	Raw     string
	Display string
	Number  float64
	Date    time.Time
	Bool    bool
}

// BlankCell is the zero cell returned for out-of-range grid access.
var BlankCell = Cell{Kind: CellBlank}

// TextCell builds a text cell whose display equals its raw value.
func TextCell(value string) Cell {
	if strings.TrimSpace(value) == "" {
		return BlankCell
	}
	return Cell{Kind: CellText, Raw: value, Display: value}
}

// NumberCell builds a numeric cell from a parsed value and its raw form.
func NumberCell(raw string, value float64) Cell {
	return Cell{Kind: CellNumber, Raw: raw, Display: raw, Number: value}
}

// DateCell builds a date-kind cell carrying an already-resolved date.
func DateCell(raw string, t time.Time) Cell {
	return Cell{Kind: CellDate, Raw: raw, Display: raw, Date: t}
}

// BoolCell builds a boolean cell.
func BoolCell(value bool) Cell {
	raw := "0"
	display := "FALSE"
	if value {
		raw = "1"
		display = "TRUE"
	}
	return Cell{Kind: CellBool, Raw: raw, Display: display, Bool: value}
}

// IsBlank reports whether the cell holds no value at all.
func (c Cell) IsBlank() bool {
	return c.Kind == CellBlank || (c.Raw == "" && c.Display == "")
}

// Text returns the value a viewer would read: the display-formatted text
// when present, otherwise the stringified raw value.
func (c Cell) Text() string {
	if c.Display != "" {
		return c.Display
	}
	if c.Raw != "" {
		return c.Raw
	}
	switch c.Kind {
	case CellNumber:
		return strconv.FormatFloat(c.Number, 'f', -1, 64)
	case CellBool:
		if c.Bool {
			return "TRUE"
		}
		return "FALSE"
	}
	return ""
}

// Grid is the rectangular cell matrix of one worksheet. Row 0 is the header
// row; rows 1..N-1 are data rows. All rows have the same width.
type Grid struct {
	Sheet string
	Cells [][]Cell
}

// NewGrid builds a rectangular grid from possibly ragged rows, padding short
// rows with blank cells.
func NewGrid(sheet string, rows [][]Cell) *Grid {
	width := 0
	for _, row := range rows {
		if len(row) > width {
			width = len(row)
		}
	}
	padded := make([][]Cell, len(rows))
	for i, row := range rows {
		out := make([]Cell, width)
		copy(out, row)
		for j := len(row); j < width; j++ {
			out[j] = BlankCell
		}
		padded[i] = out
	}
	return &Grid{Sheet: sheet, Cells: padded}
}

// RowCount returns the total number of rows including the header row.
func (g *Grid) RowCount() int {
	return len(g.Cells)
}

// ColCount returns the grid width.
func (g *Grid) ColCount() int {
	if len(g.Cells) == 0 {
		return 0
	}
	return len(g.Cells[0])
}

// HeaderRow returns row 0, or nil for an empty grid.
func (g *Grid) HeaderRow() []Cell {
	if len(g.Cells) == 0 {
		return nil
	}
	return g.Cells[0]
}

// DataRowCount returns the number of rows below the header.
func (g *Grid) DataRowCount() int {
	if len(g.Cells) <= 1 {
		return 0
	}
	return len(g.Cells) - 1
}

// At returns the cell at (row, col), or a blank cell when out of range.
func (g *Grid) At(row, col int) Cell {
	if row < 0 || row >= len(g.Cells) {
		return BlankCell
	}
	if col < 0 || col >= len(g.Cells[row]) {
		return BlankCell
	}
	return g.Cells[row][col]
}
