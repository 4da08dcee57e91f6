package store

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

var ErrInvalidRange = errors.New("invalid cell range")

// ColumnLetter converts a zero-based column index to its spreadsheet letter
// label: 0 -> "A", 25 -> "Z", 26 -> "AA", 701 -> "ZZ", 702 -> "AAA".
// This is bijective base-26 (there is no digit for zero), so the usual
// base conversion does not apply directly.
func ColumnLetter(index int) string {
	n := index + 1
	var buf [8]byte
	i := len(buf)
	for n > 0 {
		n--
		i--
		buf[i] = byte('A' + n%26)
		n /= 26
	}
	return string(buf[i:])
}

// ColumnIndex is the inverse of ColumnLetter. It returns an error for
// anything other than a run of uppercase letters.
func ColumnIndex(label string) (int, error) {
	if label == "" {
		return 0, fmt.Errorf("%w: empty column label", ErrInvalidRange)
	}
	n := 0
	for _, r := range label {
		if r < 'A' || r > 'Z' {
			return 0, fmt.Errorf("%w: bad column label %q", ErrInvalidRange, label)
		}
		n = n*26 + int(r-'A') + 1
	}
	return n - 1, nil
}

// Range is a rectangular cell range with zero-based, inclusive bounds.
type Range struct {
	StartRow int
	StartCol int
	EndRow   int
	EndCol   int
}

// A1 renders the range in spreadsheet notation ("A5:P5", or "P5" for a
// single cell).
func (r Range) A1() string {
	start := fmt.Sprintf("%s%d", ColumnLetter(r.StartCol), r.StartRow+1)
	if r.StartRow == r.EndRow && r.StartCol == r.EndCol {
		return start
	}
	return fmt.Sprintf("%s:%s%d", start, ColumnLetter(r.EndCol), r.EndRow+1)
}

// ParseRange parses "A5", "A5:P5" style notation back into a Range.
func ParseRange(a1 string) (Range, error) {
	parts := strings.SplitN(a1, ":", 2)
	startCol, startRow, err := parseCell(parts[0])
	if err != nil {
		return Range{}, err
	}
	rng := Range{StartRow: startRow, StartCol: startCol, EndRow: startRow, EndCol: startCol}
	if len(parts) == 2 {
		endCol, endRow, err := parseCell(parts[1])
		if err != nil {
			return Range{}, err
		}
		rng.EndRow, rng.EndCol = endRow, endCol
	}
	if rng.EndRow < rng.StartRow || rng.EndCol < rng.StartCol {
		return Range{}, fmt.Errorf("%w: %q is inverted", ErrInvalidRange, a1)
	}
	return rng, nil
}

func parseCell(cell string) (col, row int, err error) {
	i := 0
	for i < len(cell) && cell[i] >= 'A' && cell[i] <= 'Z' {
		i++
	}
	if i == 0 || i == len(cell) {
		return 0, 0, fmt.Errorf("%w: bad cell %q", ErrInvalidRange, cell)
	}
	col, err = ColumnIndex(cell[:i])
	if err != nil {
		return 0, 0, err
	}
	rowNum, err := strconv.Atoi(cell[i:])
	if err != nil || rowNum < 1 {
		return 0, 0, fmt.Errorf("%w: bad row in cell %q", ErrInvalidRange, cell)
	}
	return col, rowNum - 1, nil
}
