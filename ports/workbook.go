package ports

import (
	"actionaudit/domain/audit"
)

// WorkbookDecoder turns uploaded workbook bytes into a typed cell grid.
// Implementations read the first sheet only; the declared filename selects
// the container format.
type WorkbookDecoder interface {
	Decode(data []byte, filename string) (*audit.Grid, error)
}
