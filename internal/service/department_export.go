package service

import (
	"bytes"
	"context"
	"errors"
	"strings"

	"go.uber.org/zap"

	"campus-lms/backend/internal/model"
	"campus-lms/backend/internal/spreadsheet"
	applogger "campus-lms/backend/pkg/logger"
)

// ErrSpreadsheetGenerateFail 工作簿编码失败
var ErrSpreadsheetGenerateFail = errors.New("生成 Excel 文件失败")

const (
	departmentSheetName      = "Departments"
	departmentExportFilename = "departments.xlsx"
	templateFilename         = "department_template.xlsx"
)

var departmentExportHeader = []string{
	"ID", "Name", "Location", "Users Count", "Courses Count", "User Names", "Course Names",
}

// 用户名以 "," 连接、课程名以 ", " 连接，下游按此格式解析，不可统一
const (
	userNameSeparator   = ","
	courseNameSeparator = ", "
)

// ═══════════════════════════════════════════════════════════
// ExportToSpreadsheet 把给定部门写成单工作表 xlsx
// ═══════════════════════════════════════════════════════════
//
// 输出格式：
//   - Sheet "Departments"，第 1 行为加粗表头
//   - 每个部门一行，顺序与入参一致
//   - 无地点、无用户、无课程时对应单元格写 "N/A"
//
// 返回值：buf（Excel 内容）, filename（建议文件名）, error

func (s *departmentService) ExportToSpreadsheet(ctx context.Context, depts []model.Department) (*bytes.Buffer, string, error) {
	log := applogger.For(ctx, s.logger)

	w, err := spreadsheet.NewWriter(departmentSheetName)
	if err != nil {
		log.Error("创建工作簿失败", zap.Error(err))
		return nil, "", ErrSpreadsheetGenerateFail
	}
	defer w.Close()

	if err := w.WriteHeader(departmentExportHeader...); err != nil {
		log.Error("写入表头失败", zap.Error(err))
		return nil, "", ErrSpreadsheetGenerateFail
	}
	for i := range depts {
		if err := w.WriteRow(departmentExportRow(&depts[i])...); err != nil {
			log.Error("写入部门行失败", zap.Int64("department_id", depts[i].ID), zap.Error(err))
			return nil, "", ErrSpreadsheetGenerateFail
		}
	}

	buf := new(bytes.Buffer)
	if err := w.Write(buf); err != nil {
		log.Error("编码工作簿失败", zap.Error(err))
		return nil, "", ErrSpreadsheetGenerateFail
	}

	departmentExportRows.Add(float64(len(depts)))
	log.Info("部门导出完成", zap.Int("rows", len(depts)), zap.Int("bytes", buf.Len()))
	return buf, departmentExportFilename, nil
}

// Template 生成导入模板：表头 "Name" 与一行示例
func (s *departmentService) Template(ctx context.Context) (*bytes.Buffer, string, error) {
	log := applogger.For(ctx, s.logger)

	w, err := spreadsheet.NewWriter(departmentSheetName)
	if err != nil {
		return nil, "", ErrSpreadsheetGenerateFail
	}
	defer w.Close()

	if err := w.WriteHeader("Name"); err != nil {
		return nil, "", ErrSpreadsheetGenerateFail
	}
	if err := w.WriteRow("Example Department"); err != nil {
		return nil, "", ErrSpreadsheetGenerateFail
	}

	buf := new(bytes.Buffer)
	if err := w.Write(buf); err != nil {
		log.Error("编码模板失败", zap.Error(err))
		return nil, "", ErrSpreadsheetGenerateFail
	}
	return buf, templateFilename, nil
}

// departmentExportRow 单个部门对应的导出行
func departmentExportRow(d *model.Department) []interface{} {
	location := model.NotAvailable
	if d.Location != nil {
		location = d.Location.Name
	}

	userNames := make([]string, 0, len(d.Users))
	for _, u := range d.Users {
		userNames = append(userNames, u.Username)
	}
	courseNames := make([]string, 0, len(d.Courses))
	for _, c := range d.Courses {
		courseNames = append(courseNames, c.Name)
	}

	return []interface{}{
		d.ID,
		d.Name,
		location,
		len(d.Users),
		len(d.Courses),
		joinOrNA(userNames, userNameSeparator),
		joinOrNA(courseNames, courseNameSeparator),
	}
}

func joinOrNA(items []string, sep string) string {
	if len(items) == 0 {
		return model.NotAvailable
	}
	return strings.Join(items, sep)
}
