// Package spreadsheet reads uploaded workbooks and CSV files into a
// core.RawTable.
//
// Only the first worksheet of a workbook is read. The first non-blank row is
// the header. Blank rows inside the data are kept, trailing ones are dropped,
// and short rows are padded to the header width. Cell values are taken raw,
// so numbers are not reformatted by the workbook's display style; cells with
// a date or time number format are converted to date strings.
package spreadsheet

import (
	"bufio"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/JonMunkholm/fielddash/internal/core"
	"github.com/xuri/excelize/v2"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// ErrEmptyFile is returned for uploads with no bytes or no non-blank rows.
var ErrEmptyFile = errors.New("empty file")

// Extensions lists the accepted file extensions, for upload forms.
var Extensions = []string{".xlsx", ".xlsm", ".xltx", ".csv"}

// Read parses r according to fileName's extension. Every failure is a
// *core.ParseError.
func Read(fileName string, r io.Reader) (core.RawTable, error) {
	raw, err := read(fileName, r)
	if err != nil {
		return core.RawTable{}, core.NewParseError(fileName, err)
	}
	return raw, nil
}

func read(fileName string, r io.Reader) (core.RawTable, error) {
	ext := strings.ToLower(filepath.Ext(fileName))
	if !Supported(fileName) {
		return core.RawTable{}, fmt.Errorf("unsupported file type %q", ext)
	}

	br := bufio.NewReader(r)
	if _, err := br.Peek(1); err != nil {
		if errors.Is(err, io.EOF) {
			return core.RawTable{}, ErrEmptyFile
		}
		return core.RawTable{}, fmt.Errorf("read upload: %w", err)
	}

	var (
		rows [][]string
		err  error
	)
	if ext == ".csv" {
		rows, err = readCSV(br)
	} else {
		rows, err = readWorkbook(br)
	}
	if err != nil {
		return core.RawTable{}, err
	}
	return toRawTable(rows)
}

// Supported reports whether fileName has an accepted extension.
func Supported(fileName string) bool {
	ext := strings.ToLower(filepath.Ext(fileName))
	for _, e := range Extensions {
		if ext == e {
			return true
		}
	}
	return false
}

func readWorkbook(r io.Reader) ([][]string, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("open workbook: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, ErrEmptyFile
	}

	rows, err := f.GetRows(sheets[0], excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, fmt.Errorf("read sheet %q: %w", sheets[0], err)
	}
	newDateCells(f, sheets[0]).convert(rows)
	return rows, nil
}

func readCSV(r io.Reader) ([][]string, error) {
	// Strips a UTF-8 BOM and replaces invalid bytes with U+FFFD.
	decoded := transform.NewReader(r, unicode.BOMOverride(unicode.UTF8.NewDecoder()))

	cr := csv.NewReader(decoded)
	cr.FieldsPerRecord = -1
	cr.LazyQuotes = true

	rows, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read csv: %w", err)
	}
	return rows, nil
}

// toRawTable takes the first non-blank row as the header. Blank rows between
// data rows are kept as empty records; trailing blank rows are dropped.
func toRawTable(rows [][]string) (core.RawTable, error) {
	start := 0
	for start < len(rows) && isBlankRow(rows[start]) {
		start++
	}
	if start == len(rows) {
		return core.RawTable{}, ErrEmptyFile
	}

	end := len(rows)
	for end > start+1 && isBlankRow(rows[end-1]) {
		end--
	}

	raw := core.RawTable{Header: rows[start]}
	for _, row := range rows[start+1 : end] {
		raw.Rows = append(raw.Rows, pad(row, len(raw.Header)))
	}
	return raw, nil
}

func isBlankRow(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}

func pad(row []string, width int) []string {
	if len(row) >= width {
		return row
	}
	out := make([]string, width)
	copy(out, row)
	return out
}
