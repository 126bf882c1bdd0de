package spreadsheet

import (
	"fmt"
	"io"
	"unicode/utf8"

	"github.com/xuri/excelize/v2"
)

// 自动列宽的上下限（字符数）
const (
	minColWidth = 8
	maxColWidth = 80
)

// Writer 单工作表 xlsx 写入器
type Writer struct {
	f      *excelize.File
	sheet  string
	row    int
	widths map[int]int
}

// NewWriter 创建只含一个名为 sheetName 的工作表的工作簿
func NewWriter(sheetName string) (*Writer, error) {
	f := excelize.NewFile()
	if err := f.SetSheetName(f.GetSheetName(0), sheetName); err != nil {
		f.Close()
		return nil, fmt.Errorf("创建工作表失败: %w", err)
	}
	return &Writer{f: f, sheet: sheetName, widths: make(map[int]int)}, nil
}

// WriteHeader 写入加粗、灰底的表头行
func (w *Writer) WriteHeader(columns ...string) error {
	values := make([]interface{}, len(columns))
	for i, c := range columns {
		values[i] = c
	}
	if err := w.WriteRow(values...); err != nil {
		return err
	}

	style, err := w.f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"#D9D9D9"}, Pattern: 1},
	})
	if err != nil {
		return fmt.Errorf("创建表头样式失败: %w", err)
	}
	first, _ := excelize.CoordinatesToCellName(1, w.row)
	last, _ := excelize.CoordinatesToCellName(len(columns), w.row)
	return w.f.SetCellStyle(w.sheet, first, last, style)
}

// WriteRow 在下一行依次写入 values，值保留原始类型（整数写为数值单元格）
func (w *Writer) WriteRow(values ...interface{}) error {
	w.row++
	cell, err := excelize.CoordinatesToCellName(1, w.row)
	if err != nil {
		return err
	}
	if err := w.f.SetSheetRow(w.sheet, cell, &values); err != nil {
		return fmt.Errorf("写入第 %d 行失败: %w", w.row, err)
	}
	for i, v := range values {
		if n := utf8.RuneCountInString(fmt.Sprint(v)); n > w.widths[i] {
			w.widths[i] = n
		}
	}
	return nil
}

// Write 按内容设置列宽后把工作簿编码写入 out
func (w *Writer) Write(out io.Writer) error {
	for col, n := range w.widths {
		name, err := excelize.ColumnNumberToName(col + 1)
		if err != nil {
			return err
		}
		width := n + 2
		if width < minColWidth {
			width = minColWidth
		}
		if width > maxColWidth {
			width = maxColWidth
		}
		if err := w.f.SetColWidth(w.sheet, name, name, float64(width)); err != nil {
			return err
		}
	}
	return w.f.Write(out)
}

// Close 释放工作簿资源
func (w *Writer) Close() error {
	return w.f.Close()
}
