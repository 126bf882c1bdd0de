package spreadsheet

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func writeWorkbook(t *testing.T, header []string, rows ...[]interface{}) []byte {
	t.Helper()

	w, err := NewWriter("Departments")
	require.NoError(t, err)
	defer w.Close()

	require.NoError(t, w.WriteHeader(header...))
	for _, r := range rows {
		require.NoError(t, w.WriteRow(r...))
	}

	var buf bytes.Buffer
	require.NoError(t, w.Write(&buf))
	return buf.Bytes()
}

func TestWriteThenRead_RoundTrip(t *testing.T) {
	data := writeWorkbook(t,
		[]string{"ID", "Name"},
		[]interface{}{int64(1), "Math"},
		[]interface{}{int64(2), "Physics"},
	)

	sheet, err := Read(bytes.NewReader(data))
	require.NoError(t, err)

	assert.Equal(t, "Departments", sheet.Name)
	require.Len(t, sheet.Rows, 3)
	assert.Equal(t, Row{"ID", "Name"}, sheet.Rows[0])
	assert.Equal(t, Row{"1", "Math"}, sheet.Rows[1])
	assert.Equal(t, Row{"2", "Physics"}, sheet.Rows[2])
}

func TestWriteHeader_IsBold(t *testing.T) {
	data := writeWorkbook(t, []string{"ID", "Name"})

	f, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err)
	defer f.Close()

	styleID, err := f.GetCellStyle("Departments", "B1")
	require.NoError(t, err)
	style, err := f.GetStyle(styleID)
	require.NoError(t, err)
	require.NotNil(t, style.Font)
	assert.True(t, style.Font.Bold)
}

func TestWrite_IntegerCellsAreNumeric(t *testing.T) {
	data := writeWorkbook(t, []string{"ID"}, []interface{}{int64(42)})

	f, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err)
	defer f.Close()

	typ, err := f.GetCellType("Departments", "A2")
	require.NoError(t, err)
	assert.NotEqual(t, excelize.CellTypeSharedString, typ)
	assert.NotEqual(t, excelize.CellTypeInlineString, typ)
}

func TestRead_NotAWorkbook(t *testing.T) {
	_, err := Read(bytes.NewReader([]byte("definitely not a zip archive")))
	assert.ErrorIs(t, err, ErrUnreadable)
}

func TestRow_Cell(t *testing.T) {
	row := Row{"1", "Math"}

	v, ok := row.Cell(1)
	assert.True(t, ok)
	assert.Equal(t, "Math", v)

	_, ok = row.Cell(2)
	assert.False(t, ok, "缺失的单元格应表现为不存在")

	_, ok = row.Cell(-1)
	assert.False(t, ok)
}

