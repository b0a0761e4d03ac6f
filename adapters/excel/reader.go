package excel

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"log"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"actionaudit/domain/audit"
	"actionaudit/domain/core"

	"github.com/xuri/excelize/v2"
)

// SupportedExtensions lists the workbook containers the decoder accepts.
var SupportedExtensions = []string{".xlsx", ".xlsm", ".xltx", ".xltm", ".csv"}

// WorkbookDecoder reads uploaded workbook bytes into a typed cell grid.
// Spreadsheet containers go through excelize; CSV goes through encoding/csv
// with every cell treated as text.
type WorkbookDecoder struct{}

// NewWorkbookDecoder creates a new workbook decoder.
func NewWorkbookDecoder() *WorkbookDecoder {
	return &WorkbookDecoder{}
}

// Decode parses the first sheet of a workbook into a grid. The declared
// filename selects the container format; unknown extensions and unreadable
// bytes are format errors.
func (d *WorkbookDecoder) Decode(data []byte, filename string) (*audit.Grid, error) {
	ext := strings.ToLower(filepath.Ext(filename))
	switch ext {
	case ".xlsx", ".xlsm", ".xltx", ".xltm":
		return d.decodeExcel(data, filename)
	case ".csv":
		return d.decodeCSV(data, filename)
	default:
		return nil, core.NewUnsupportedFormatError(ext)
	}
}

// decodeExcel reads the first worksheet with both raw and display-formatted
// values, sampling native cell types to classify each cell.
func (d *WorkbookDecoder) decodeExcel(data []byte, filename string) (*audit.Grid, error) {
	startTime := time.Now()
	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		return nil, core.NewParseError(filename, err)
	}
	defer f.Close()
	log.Printf("[WorkbookDecoder] Workbook opened in %.2fms", float64(time.Since(startTime).Nanoseconds())/1e6)

	sheet := f.GetSheetName(0)
	if sheet == "" {
		return nil, core.NewParseError(filename, fmt.Errorf("workbook has no sheets"))
	}

	readStart := time.Now()
	displayRows, err := f.GetRows(sheet)
	if err != nil {
		return nil, core.NewParseError(filename, err)
	}
	rawRows, err := f.GetRows(sheet, excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, core.NewParseError(filename, err)
	}
	log.Printf("[WorkbookDecoder] Sheet %q read in %.2fms (%d rows)",
		sheet, float64(time.Since(readStart).Nanoseconds())/1e6, len(displayRows))

	rowCount := len(displayRows)
	if len(rawRows) > rowCount {
		rowCount = len(rawRows)
	}

	cells := make([][]audit.Cell, rowCount)
	for r := 0; r < rowCount; r++ {
		width := 0
		if r < len(displayRows) && len(displayRows[r]) > width {
			width = len(displayRows[r])
		}
		if r < len(rawRows) && len(rawRows[r]) > width {
			width = len(rawRows[r])
		}

		row := make([]audit.Cell, width)
		for c := 0; c < width; c++ {
			raw := cellAt(rawRows, r, c)
			display := cellAt(displayRows, r, c)
			row[c] = buildCell(f, sheet, r, c, raw, display)
		}
		cells[r] = row
	}

	grid := audit.NewGrid(sheet, cells)
	log.Printf("[WorkbookDecoder] Workbook processed (%d columns, %d data rows)",
		grid.ColCount(), grid.DataRowCount())
	return grid, nil
}

// decodeCSV reads comma-separated bytes as an all-text grid.
func (d *WorkbookDecoder) decodeCSV(data []byte, filename string) (*audit.Grid, error) {
	reader := csv.NewReader(bytes.NewReader(data))
	reader.FieldsPerRecord = -1 // ragged rows are padded later

	readStart := time.Now()
	records, err := reader.ReadAll()
	if err != nil {
		return nil, core.NewParseError(filename, err)
	}
	log.Printf("[WorkbookDecoder] CSV read in %.2fms (%d rows)",
		float64(time.Since(readStart).Nanoseconds())/1e6, len(records))

	cells := make([][]audit.Cell, len(records))
	for r, record := range records {
		row := make([]audit.Cell, len(record))
		for c, value := range record {
			row[c] = audit.TextCell(strings.TrimSpace(value))
		}
		cells[r] = row
	}

	return audit.NewGrid("csv", cells), nil
}

// cellAt indexes possibly ragged row data, returning "" out of range.
func cellAt(rows [][]string, r, c int) string {
	if r >= len(rows) || c >= len(rows[r]) {
		return ""
	}
	return rows[r][c]
}

// buildCell classifies one cell. The native cell type is the primary
// signal; plain number cells usually report an unset type, so numeric kind
// falls back to parsing the raw value. Shared and inline strings stay text
// even when they look numeric.
func buildCell(f *excelize.File, sheet string, r, c int, raw, display string) audit.Cell {
	if raw == "" && display == "" {
		return audit.BlankCell
	}

	cellType := excelize.CellTypeUnset
	if name, err := excelize.CoordinatesToCellName(c+1, r+1); err == nil {
		if ct, err := f.GetCellType(sheet, name); err == nil {
			cellType = ct
		}
	}

	switch cellType {
	case excelize.CellTypeBool:
		return audit.Cell{Kind: audit.CellBool, Raw: raw, Display: display, Bool: raw == "1"}
	case excelize.CellTypeDate:
		if serial, err := strconv.ParseFloat(raw, 64); err == nil {
			return audit.Cell{Kind: audit.CellDate, Raw: raw, Display: display, Date: audit.SerialToDate(serial)}
		}
		if t, ok := audit.ParseDateText(raw); ok {
			return audit.Cell{Kind: audit.CellDate, Raw: raw, Display: display, Date: t}
		}
		return audit.Cell{Kind: audit.CellText, Raw: raw, Display: display}
	case excelize.CellTypeInlineString, excelize.CellTypeSharedString:
		return audit.Cell{Kind: audit.CellText, Raw: raw, Display: display}
	}

	if number, err := strconv.ParseFloat(raw, 64); err == nil {
		return audit.Cell{Kind: audit.CellNumber, Raw: raw, Display: display, Number: number}
	}
	return audit.Cell{Kind: audit.CellText, Raw: raw, Display: display}
}
