package errors

import (
	"errors"
	"fmt"
)

// ── 错误类别 ──
//
// 业务层的所有错误都应能通过 errors.Is 归入下列类别之一，
// Handler 层据此决定响应码；未归类的错误一律视为服务器内部错误。

var (
	// ErrInvalidInput 调用方传入的参数不合法（分页参数、必填字段、超长名称等）
	ErrInvalidInput = errors.New("参数不合法")
	// ErrMalformedRow 表格中的某一行无法解析为合法记录
	ErrMalformedRow = errors.New("表格行格式错误")
	// ErrEmptyWorkbook 工作簿没有工作表或没有数据行
	ErrEmptyWorkbook = errors.New("Excel 文件无数据行")
	// ErrAlreadyExists 违反唯一性约束
	ErrAlreadyExists = errors.New("记录已存在")
	// ErrNotFound 记录不存在
	ErrNotFound = errors.New("记录不存在")
)

// RowError 携带行号（从 1 开始，表头为第 1 行）的表格解析错误
type RowError struct {
	Row    int
	Reason string
}

func (e *RowError) Error() string {
	return fmt.Sprintf("第 %d 行: %s", e.Row, e.Reason)
}

// Is 使 errors.Is(err, ErrMalformedRow) 对 RowError 成立
func (e *RowError) Is(target error) bool {
	return target == ErrMalformedRow
}

// NewRowError 创建行级解析错误
func NewRowError(row int, format string, args ...interface{}) error {
	return &RowError{Row: row, Reason: fmt.Sprintf(format, args...)}
}

type kindError struct {
	kind error
	msg  string
}

func (e *kindError) Error() string { return e.msg }
func (e *kindError) Unwrap() error { return e.kind }

// New 定义归属于 kind 类别的业务错误，Error() 只返回 msg
func New(kind error, msg string) error {
	return &kindError{kind: kind, msg: msg}
}

// Kind 返回 err 所属的错误类别，无法归类时返回 nil
func Kind(err error) error {
	for _, kind := range []error{ErrMalformedRow, ErrEmptyWorkbook, ErrAlreadyExists, ErrNotFound, ErrInvalidInput} {
		if errors.Is(err, kind) {
			return kind
		}
	}
	return nil
}

// Wrap 为类别错误附加上下文信息，保留 errors.Is 匹配
func Wrap(kind error, format string, args ...interface{}) error {
	return fmt.Errorf("%w: %s", kind, fmt.Sprintf(format, args...))
}
