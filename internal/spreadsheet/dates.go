package spreadsheet

import (
	"strconv"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"
)

// Layouts for converted date cells. Whole days drop the clock; values below
// one day are times of day.
const (
	dateLayout     = "2006-01-02"
	dateTimeLayout = "2006-01-02 15:04:05"
	timeLayout     = "15:04:05"
)

// dateCells decides, per style, whether a cell holds an Excel date serial.
type dateCells struct {
	f        *excelize.File
	sheet    string
	date1904 bool
	styles   map[int]bool
}

func newDateCells(f *excelize.File, sheet string) *dateCells {
	d := &dateCells{f: f, sheet: sheet, styles: make(map[int]bool)}
	if props, err := f.GetWorkbookProps(); err == nil && props.Date1904 != nil {
		d.date1904 = *props.Date1904
	}
	return d
}

// convert rewrites date-formatted numeric cells in place. rows must come from
// GetRows on d.sheet, so rows[i][j] is the cell at column j+1, row i+1.
func (d *dateCells) convert(rows [][]string) {
	for i, row := range rows {
		for j, v := range row {
			if v == "" {
				continue
			}
			serial, err := strconv.ParseFloat(v, 64)
			if err != nil {
				continue
			}
			cell, err := excelize.CoordinatesToCellName(j+1, i+1)
			if err != nil || !d.isDate(cell) {
				continue
			}
			t, err := excelize.ExcelDateToTime(serial, d.date1904)
			if err != nil {
				continue
			}
			row[j] = formatDate(serial, t)
		}
	}
}

func (d *dateCells) isDate(cell string) bool {
	id, err := d.f.GetCellStyle(d.sheet, cell)
	if err != nil || id == 0 {
		return false
	}
	if is, ok := d.styles[id]; ok {
		return is
	}

	is := false
	if style, err := d.f.GetStyle(id); err == nil && style != nil {
		if style.CustomNumFmt != nil {
			is = isDateFormatCode(*style.CustomNumFmt)
		} else {
			is = isBuiltInDateFormat(style.NumFmt)
		}
	}
	d.styles[id] = is
	return is
}

// isBuiltInDateFormat reports whether a built-in number format id is a date
// or time format, including the East Asian locale ids.
func isBuiltInDateFormat(id int) bool {
	switch {
	case id >= 14 && id <= 22:
		return true
	case id >= 27 && id <= 36:
		return true
	case id >= 45 && id <= 47:
		return true
	case id >= 50 && id <= 58:
		return true
	}
	return false
}

// isDateFormatCode reports whether a custom format code contains date or
// time tokens outside quoted literals, escapes and bracketed sections.
// Bracketed [h], [mm] and [ss] are elapsed time and count as time tokens.
func isDateFormatCode(code string) bool {
	code = strings.ToLower(code)
	for i := 0; i < len(code); i++ {
		switch c := code[i]; {
		case c == '"':
			end := strings.IndexByte(code[i+1:], '"')
			if end < 0 {
				return false
			}
			i += end + 1
		case c == '[':
			end := strings.IndexByte(code[i+1:], ']')
			if end < 0 {
				return false
			}
			if isElapsed(code[i+1 : i+1+end]) {
				return true
			}
			i += end + 1
		case c == '\\':
			i++
		case c == 'y' || c == 'm' || c == 'd' || c == 'h' || c == 's':
			return true
		}
	}
	return false
}

func isElapsed(token string) bool {
	if token == "" {
		return false
	}
	return strings.Trim(token, string(token[0])) == "" && strings.ContainsRune("hms", rune(token[0]))
}

func formatDate(serial float64, t time.Time) string {
	switch {
	case serial < 1:
		return t.Format(timeLayout)
	case t.Hour() == 0 && t.Minute() == 0 && t.Second() == 0:
		return t.Format(dateLayout)
	default:
		return t.Format(dateTimeLayout)
	}
}
