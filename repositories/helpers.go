package repositories

import (
	"strconv"
	"strings"
)

// headerIndex maps normalized header names to their column position.
// Sheets that were edited by hand do not keep canonical column order, so
// every reader resolves positions through this map instead of fixed offsets.
func headerIndex(header []string) map[string]int {
	idx := make(map[string]int, len(header))
	for i, h := range header {
		key := normalizeHeader(h)
		if _, seen := idx[key]; !seen {
			idx[key] = i
		}
	}
	return idx
}

func normalizeHeader(h string) string {
	return strings.ToLower(strings.TrimSpace(h))
}

// cell reads the column named name out of row, tolerating short rows.
func cell(row []string, idx map[string]int, name string) string {
	i, ok := idx[normalizeHeader(name)]
	if !ok || i >= len(row) {
		return ""
	}
	return row[i]
}

func formatNumber(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
