package spreadsheet

import (
	"errors"
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"
)

var (
	// ErrUnreadable 输入不是可解析的 xlsx 文件
	ErrUnreadable = errors.New("无法解析 Excel 文件")
	// ErrNoSheet 工作簿中没有任何工作表
	ErrNoSheet = errors.New("Excel 文件中没有工作表")
)

// Row 表格中的一行，按 0 起始的列下标访问
type Row []string

// Cell 返回第 col 列的文本；该列不存在时 ok 为 false
func (r Row) Cell(col int) (value string, ok bool) {
	if col < 0 || col >= len(r) {
		return "", false
	}
	return r[col], true
}

// Sheet 只读工作表
type Sheet struct {
	Name string
	Rows []Row
}

// Read 读取工作簿中的第一个工作表
func Read(r io.Reader) (*Sheet, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnreadable, err)
	}
	defer f.Close()

	names := f.GetSheetList()
	if len(names) == 0 {
		return nil, ErrNoSheet
	}

	rows, err := f.GetRows(names[0])
	if err != nil {
		return nil, fmt.Errorf("%w: 读取工作表失败: %v", ErrUnreadable, err)
	}

	sheet := &Sheet{Name: names[0], Rows: make([]Row, 0, len(rows))}
	for _, row := range rows {
		sheet.Rows = append(sheet.Rows, Row(row))
	}
	return sheet, nil
}
