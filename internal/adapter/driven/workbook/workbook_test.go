package workbook

import (
	"archive/zip"
	"bytes"
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sheetHeader = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<worksheet xmlns="http://schemas.openxmlformats.org/spreadsheetml/2006/main"><sheetData>`

const sheetFooter = `</sheetData></worksheet>`

func sharedStrings(items ...string) string {
	var b bytes.Buffer
	b.WriteString(`<?xml version="1.0" encoding="UTF-8"?><sst xmlns="http://schemas.openxmlformats.org/spreadsheetml/2006/main">`)
	for _, s := range items {
		b.WriteString(s)
	}
	b.WriteString(`</sst>`)
	return b.String()
}

// buildWorkbook packs the given parts into an in-memory container.
func buildWorkbook(t *testing.T, parts map[string]string) *Workbook {
	t.Helper()
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	for name, content := range parts {
		w, err := zw.Create(name)
		require.NoError(t, err)
		_, err = w.Write([]byte(content))
		require.NoError(t, err)
	}
	require.NoError(t, zw.Close())

	wb, err := New(bytes.NewReader(buf.Bytes()), int64(buf.Len()))
	require.NoError(t, err)
	return wb
}

func TestSheetRowsResolvesCellKinds(t *testing.T) {
	wb := buildWorkbook(t, map[string]string{
		"xl/sharedStrings.xml": sharedStrings(
			`<si><t>alpha</t></si>`,
			`<si><r><t>rich</t></r><r><t>ignored</t></r></si>`,
		),
		"xl/worksheets/sheet1.xml": sheetHeader +
			`<row r="1"><c r="A1" t="s"><v>0</v></c></row>` +
			`<row r="2">` +
			`<c r="A2" t="s"><v>1</v></c>` +
			`<c r="B2" t="inlineStr"><is><t>inline</t></is></c>` +
			`<c r="C2" t="s"><v>99</v></c>` +
			`<c r="D2"><v>42.5</v></c>` +
			`<c r="AA2" t="s"><v>0</v></c>` +
			`</row>` +
			sheetFooter,
	})
	defer wb.Close()

	require.NoError(t, wb.SharedStringsErr())
	assert.Equal(t, []string{"alpha", "rich"}, wb.SharedStrings())

	sh := wb.Sheet(1)
	rows := slices.Collect(sh.Rows())
	require.NoError(t, sh.Err())
	require.Len(t, rows, 1)

	r := rows[0]
	assert.Equal(t, 2, r.Number)
	assert.Equal(t, "rich", r.Get("A"))
	assert.Equal(t, "inline", r.Get("B"))
	assert.Equal(t, "99", r.Get("C"), "out-of-range index keeps the raw value")
	assert.Equal(t, "42.5", r.Get("D"))
	assert.Equal(t, "alpha", r.Get("AA"))
	assert.Equal(t, "", r.Get("Z"))
}

func TestSheetRowsWithoutReferences(t *testing.T) {
	wb := buildWorkbook(t, map[string]string{
		"xl/worksheets/sheet3.xml": sheetHeader +
			`<row><c><v>h</v></c></row>` +
			`<row><c><v>1</v></c><c><v>2</v></c></row>` +
			`<row r="7"><c r="B7"><v>3</v></c></row>` +
			sheetFooter,
	})

	rows := slices.Collect(wb.Sheet(3).Rows())
	require.Len(t, rows, 2)
	assert.Equal(t, 2, rows[0].Number)
	assert.Equal(t, map[string]string{"A": "1", "B": "2"}, rows[0].Cells)
	assert.Equal(t, 7, rows[1].Number)
}

func TestMissingSharedStringsIsNotAnError(t *testing.T) {
	wb := buildWorkbook(t, map[string]string{
		"xl/worksheets/sheet1.xml": sheetHeader +
			`<row r="1"/><row r="2"><c r="A2" t="s"><v>0</v></c></row>` +
			sheetFooter,
	})

	assert.NoError(t, wb.SharedStringsErr())
	assert.Empty(t, wb.SharedStrings())
	rows := slices.Collect(wb.Sheet(1).Rows())
	require.Len(t, rows, 1)
	assert.Equal(t, "0", rows[0].Get("A"))
}

func TestMalformedSharedStringsIsRecorded(t *testing.T) {
	wb := buildWorkbook(t, map[string]string{
		"xl/sharedStrings.xml":     `<sst><si><t>broken</sst>`,
		"xl/worksheets/sheet1.xml": sheetHeader + sheetFooter,
	})

	assert.Error(t, wb.SharedStringsErr())
	assert.Empty(t, wb.SharedStrings())
}

func TestMissingSheet(t *testing.T) {
	wb := buildWorkbook(t, map[string]string{
		"xl/worksheets/sheet1.xml": sheetHeader + sheetFooter,
	})

	assert.True(t, wb.HasSheet(1))
	assert.False(t, wb.HasSheet(26))

	sh := wb.Sheet(26)
	assert.Empty(t, slices.Collect(sh.Rows()))
	assert.ErrorIs(t, sh.Err(), ErrSheetNotFound)

	_, ok := sh.Header()
	assert.False(t, ok)
}

func TestTruncatedSheetKeepsEarlierRows(t *testing.T) {
	wb := buildWorkbook(t, map[string]string{
		"xl/worksheets/sheet1.xml": sheetHeader +
			`<row r="1"/><row r="2"><c r="A2"><v>ok</v></c></row><row r="3"><c r="A3"><v>cut`,
	})

	sh := wb.Sheet(1)
	rows := slices.Collect(sh.Rows())
	require.Len(t, rows, 1)
	assert.Equal(t, "ok", rows[0].Get("A"))
	assert.Error(t, sh.Err())
}

func TestRowsStopsEarly(t *testing.T) {
	wb := buildWorkbook(t, map[string]string{
		"xl/worksheets/sheet1.xml": sheetHeader +
			`<row r="1"/><row r="2"/><row r="3"/><row r="4"/>` +
			sheetFooter,
	})

	var seen []int
	for r := range wb.Sheet(1).Rows() {
		seen = append(seen, r.Number)
		if len(seen) == 2 {
			break
		}
	}
	assert.Equal(t, []int{2, 3}, seen)
}

func TestHeader(t *testing.T) {
	wb := buildWorkbook(t, map[string]string{
		"xl/worksheets/sheet1.xml": sheetHeader +
			`<row r="1"><c r="I1" t="inlineStr"><is><t> Department </t></is></c></row><row r="2"/>` +
			sheetFooter,
	})

	header, ok := wb.Sheet(1).Header()
	require.True(t, ok)
	assert.True(t, IsDepartmentHeader(header))
}

func TestHeaderIsFirstRowPresent(t *testing.T) {
	wb := buildWorkbook(t, map[string]string{
		"xl/worksheets/sheet11.xml": sheetHeader +
			`<row r="2"><c r="I2" t="inlineStr"><is><t>Department</t></is></c></row>` +
			`<row r="3"><c r="I3" t="inlineStr"><is><t>Sales</t></is></c></row>` +
			sheetFooter,
	})

	sh := wb.Sheet(11)
	header, ok := sh.Header()
	require.True(t, ok)
	assert.Equal(t, 2, header.Number)
	assert.True(t, IsDepartmentHeader(header))

	rows := slices.Collect(sh.Rows())
	require.Len(t, rows, 1)
	assert.Equal(t, "Sales", rows[0].Get("I"))
}

func TestCallRecordsDropsNonFiniteDurations(t *testing.T) {
	rows := slices.Values([]Row{
		{Number: 2, Cells: map[string]string{"D": "2025550100", "F": "3105550111", "I": "NaN"}},
		{Number: 3, Cells: map[string]string{"D": "2025550100", "F": "3105550111", "I": "Inf"}},
		{Number: 4, Cells: map[string]string{"D": "2025550100", "F": "3105550111", "I": "60"}},
	})

	calls := slices.Collect(CallRecords(rows))
	require.Len(t, calls, 1)
	assert.Equal(t, 60.0, calls[0].Seconds)

	assert.Zero(t, parseFloat("-Infinity"))
}

func TestColumnName(t *testing.T) {
	assert.Equal(t, "A", ColumnName(1))
	assert.Equal(t, "Z", ColumnName(26))
	assert.Equal(t, "AA", ColumnName(27))
	assert.Equal(t, "AZ", ColumnName(52))
	assert.Equal(t, "", ColumnName(0))
	assert.Equal(t, "AA", columnLetters("aa12"))
}
