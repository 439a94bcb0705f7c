package core

// convert.go turns raw spreadsheet cells into record fields.
//
// Spreadsheet exports carry a few recurring artifacts:
//   - Excel formula prefixes (="value") on text that looks numeric
//   - Stray quotes around headers
//   - Padding whitespace
//
// Counter columns are coerced, never rejected: anything that is not a plain
// number becomes zero.

import (
	"regexp"
	"strconv"
	"strings"
)

// numericRegex validates a plain number: integer, decimal or scientific notation.
var numericRegex = regexp.MustCompile(`^[+-]?(\d+(\.\d*)?|\.\d+)([eE][+-]?\d+)?$`)

// ParseNumber coerces a counter cell to float64.
// Empty, non-numeric or out-of-range input yields 0.
func ParseNumber(s string) float64 {
	s = strings.TrimSpace(s)
	if s == "" || !numericRegex.MatchString(s) {
		return 0
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0
	}
	return f
}

// HeaderIndex maps column names to their position in a row. Names are
// matched exactly after CleanCell; "agent_id" is not "Agent_ID".
type HeaderIndex map[string]int

// MakeHeaderIndex builds a HeaderIndex from a header row. When a name repeats,
// the first occurrence wins.
func MakeHeaderIndex(header []string) HeaderIndex {
	idx := make(HeaderIndex, len(header))
	for i, h := range header {
		name := CleanCell(h)
		if name == "" {
			continue
		}
		if _, ok := idx[name]; !ok {
			idx[name] = i
		}
	}
	return idx
}

// Lookup returns the position of column name.
func (h HeaderIndex) Lookup(name string) (int, bool) {
	i, ok := h[name]
	return i, ok
}

// Cell returns row[name], or "" when the column is absent or the row is short.
func (h HeaderIndex) Cell(row []string, name string) string {
	i, ok := h.Lookup(name)
	if !ok || i >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[i])
}

// CleanCell removes common spreadsheet artifacts from a cell value:
// - Trims whitespace
// - Removes Excel formula prefix (="...")
// - Removes surrounding quotes
func CleanCell(s string) string {
	s = strings.TrimSpace(s)

	if strings.HasPrefix(s, "=\"") && strings.HasSuffix(s, "\"") && len(s) >= 3 {
		s = s[2 : len(s)-1]
	} else if strings.HasPrefix(s, "=") {
		s = s[1:]
	}

	s = strings.Trim(s, `"'`)
	return strings.TrimSpace(s)
}
