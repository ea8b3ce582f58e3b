package matrix

import (
	"fmt"

	"github.com/xuri/excelize/v2"
)

// CellRef converts a zero-based (row, col) matrix position to an
// A1-style spreadsheet reference, e.g. (0, 0) -> "A1", (2, 3) -> "D3".
// The answer-map matrix records these references so exported answers can
// be written back into the right cells.
func CellRef(row, col int) (string, error) {
	ref, err := excelize.CoordinatesToCellName(col+1, row+1)
	if err != nil {
		return "", fmt.Errorf("cell reference for (%d,%d): %w", row, col, err)
	}
	return ref, nil
}
