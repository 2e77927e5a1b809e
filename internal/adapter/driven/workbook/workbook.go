// Package workbook extracts raw cell tables from zip-packaged spreadsheets
// (SpreadsheetML). Only cell values are read; styles and formulas are ignored.
package workbook

import (
	"archive/zip"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"iter"
	"strconv"
	"strings"
	"unicode"
)

const (
	sharedStringsPart = "xl/sharedStrings.xml"
	sheetPartFormat   = "xl/worksheets/sheet%d.xml"
)

// ErrSheetNotFound is reported by Sheet.Err when the worksheet part is absent.
var ErrSheetNotFound = errors.New("worksheet not found in workbook")

// Row is one spreadsheet row: column letters to decoded string values.
type Row struct {
	Number int
	Cells  map[string]string
}

// Get returns the value of column col, or "" if the cell is absent.
func (r Row) Get(col string) string {
	return r.Cells[col]
}

// Workbook is an opened spreadsheet container with its shared-string table loaded.
type Workbook struct {
	zr            *zip.Reader
	closer        io.Closer
	sharedStrings []string
	sharedErr     error
}

// Open opens the spreadsheet at path.
func Open(path string) (*Workbook, error) {
	rc, err := zip.OpenReader(path)
	if err != nil {
		return nil, fmt.Errorf("error opening workbook %s: %w", path, err)
	}
	wb := newWorkbook(&rc.Reader)
	wb.closer = rc
	return wb, nil
}

// New reads a spreadsheet container from r.
func New(r io.ReaderAt, size int64) (*Workbook, error) {
	zr, err := zip.NewReader(r, size)
	if err != nil {
		return nil, fmt.Errorf("error reading workbook archive: %w", err)
	}
	return newWorkbook(zr), nil
}

func newWorkbook(zr *zip.Reader) *Workbook {
	wb := &Workbook{zr: zr}
	wb.sharedStrings, wb.sharedErr = readSharedStrings(zr)
	return wb
}

// Close releases the underlying file, if any.
func (w *Workbook) Close() error {
	if w.closer == nil {
		return nil
	}
	return w.closer.Close()
}

// SharedStrings returns the decoded shared-string table (possibly empty).
func (w *Workbook) SharedStrings() []string {
	return w.sharedStrings
}

// SharedStringsErr reports why the shared-string table could not be read.
// A workbook without the part is not an error.
func (w *Workbook) SharedStringsErr() error {
	return w.sharedErr
}

// Sheet returns a reader for worksheet index (1-based, as in sheet<N>.xml).
func (w *Workbook) Sheet(index int) *Sheet {
	return &Sheet{wb: w, index: index, part: fmt.Sprintf(sheetPartFormat, index)}
}

// HasSheet reports whether worksheet index exists in the container.
func (w *Workbook) HasSheet(index int) bool {
	_, err := fs.Stat(w.zr, fmt.Sprintf(sheetPartFormat, index))
	return err == nil
}

// Sheet streams the rows of one worksheet. Like bufio.Scanner, problems found
// while iterating are kept in Err instead of interrupting the caller.
type Sheet struct {
	wb    *Workbook
	index int
	part  string
	err   error
}

// Err returns the first anomaly met by the last iteration.
func (s *Sheet) Err() error { return s.err }

// Rows yields the data rows of the sheet, lazily. The first row present in the
// sheet is the header and is never yielded, whatever its row number.
func (s *Sheet) Rows() iter.Seq[Row] {
	return func(yield func(Row) bool) {
		header := true
		s.scan(func(r Row) bool {
			if header {
				header = false
				return true
			}
			return yield(r)
		})
	}
}

// Header returns the first row present in the sheet. Leading blank rows are
// often left out of the file, so it need not be row 1.
func (s *Sheet) Header() (Row, bool) {
	var header Row
	found := false
	s.scan(func(r Row) bool {
		header, found = r, true
		return false
	})
	return header, found
}

func (s *Sheet) scan(yield func(Row) bool) {
	s.err = nil

	f, err := s.wb.zr.Open(s.part)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			s.err = fmt.Errorf("sheet %d: %w", s.index, ErrSheetNotFound)
		} else {
			s.err = fmt.Errorf("error opening sheet %d: %w", s.index, err)
		}
		return
	}
	defer f.Close()

	dec := xml.NewDecoder(f)
	prev := 0
	for {
		tok, err := dec.Token()
		if err == io.EOF {
			return
		}
		if err != nil {
			s.err = fmt.Errorf("error parsing sheet %d: %w", s.index, err)
			return
		}

		se, ok := tok.(xml.StartElement)
		if !ok || se.Name.Local != "row" {
			continue
		}

		var xr xmlRow
		if err := dec.DecodeElement(&xr, &se); err != nil {
			s.err = fmt.Errorf("error parsing row after %d in sheet %d: %w", prev, s.index, err)
			return
		}

		row := s.wb.decodeRow(xr, prev)
		prev = row.Number
		if !yield(row) {
			return
		}
	}
}

type xmlRow struct {
	Ref   string    `xml:"r,attr"`
	Cells []xmlCell `xml:"c"`
}

type xmlCell struct {
	Ref    string    `xml:"r,attr"`
	Type   string    `xml:"t,attr"`
	Value  *string   `xml:"v"`
	Inline *xmlTexts `xml:"is"`
}

// xmlTexts covers both <si> and <is>: plain <t> or rich-text runs <r><t>.
type xmlTexts struct {
	T    *string `xml:"t"`
	Runs []struct {
		T string `xml:"t"`
	} `xml:"r"`
}

// first returns the first text run, "" when there is none.
func (x *xmlTexts) first() string {
	if x == nil {
		return ""
	}
	if x.T != nil {
		return *x.T
	}
	if len(x.Runs) > 0 {
		return x.Runs[0].T
	}
	return ""
}

func (w *Workbook) decodeRow(xr xmlRow, prev int) Row {
	number, err := strconv.Atoi(xr.Ref)
	if err != nil || number <= 0 {
		number = prev + 1
	}

	row := Row{Number: number, Cells: make(map[string]string, len(xr.Cells))}
	for i, c := range xr.Cells {
		col := columnLetters(c.Ref)
		if col == "" {
			col = ColumnName(i + 1)
		}
		row.Cells[col] = w.cellValue(c)
	}
	return row
}

func (w *Workbook) cellValue(c xmlCell) string {
	if c.Inline != nil {
		return c.Inline.first()
	}

	val := ""
	if c.Value != nil {
		val = *c.Value
	}
	if c.Type == "s" && val != "" {
		if idx, err := strconv.Atoi(strings.TrimSpace(val)); err == nil && idx >= 0 && idx < len(w.sharedStrings) {
			return w.sharedStrings[idx]
		}
	}
	return val
}

// columnLetters strips the row digits from a cell reference: "AA12" -> "AA".
func columnLetters(ref string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsLetter(r) {
			return unicode.ToUpper(r)
		}
		return -1
	}, ref)
}

// ColumnName converts a 1-based column number to its letters: 1 -> "A", 27 -> "AA".
func ColumnName(n int) string {
	name := ""
	for n > 0 {
		n--
		name = string(rune('A'+n%26)) + name
		n /= 26
	}
	return name
}

func readSharedStrings(zr *zip.Reader) ([]string, error) {
	f, err := zr.Open(sharedStringsPart)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("error opening shared strings: %w", err)
	}
	defer f.Close()

	var out []string
	dec := xml.NewDecoder(f)
	for {
		tok, err := dec.Token()
		if err == io.EOF {
			return out, nil
		}
		if err != nil {
			return nil, fmt.Errorf("error parsing shared strings: %w", err)
		}
		se, ok := tok.(xml.StartElement)
		if !ok || se.Name.Local != "si" {
			continue
		}
		var si xmlTexts
		if err := dec.DecodeElement(&si, &se); err != nil {
			return nil, fmt.Errorf("error parsing shared string %d: %w", len(out), err)
		}
		out = append(out, si.first())
	}
}
