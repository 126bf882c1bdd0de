package service

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"campus-lms/backend/internal/model"
	"campus-lms/backend/internal/spreadsheet"
)

func readExport(t *testing.T, buf *bytes.Buffer) *spreadsheet.Sheet {
	t.Helper()
	sheet, err := spreadsheet.Read(bytes.NewReader(buf.Bytes()))
	require.NoError(t, err)
	return sheet
}

func TestExportToSpreadsheet_Layout(t *testing.T) {
	svc, _, _ := setupTestDepartmentService()

	depts := []model.Department{
		{
			ID:       1,
			Name:     "Math",
			Location: &model.Location{ID: 3, Name: "Building A"},
			Users:    []model.User{{ID: 1, Username: "alice"}, {ID: 2, Username: "bob"}},
			Courses:  []model.Course{{ID: 5, Name: "Algebra"}, {ID: 6, Name: "Calculus"}},
		},
		{ID: 2, Name: "Physics"},
	}

	buf, filename, err := svc.ExportToSpreadsheet(context.Background(), depts)
	require.NoError(t, err)
	assert.Equal(t, "departments.xlsx", filename)

	sheet := readExport(t, buf)
	assert.Equal(t, "Departments", sheet.Name)
	require.Len(t, sheet.Rows, 3)
	assert.Equal(t, spreadsheet.Row{
		"ID", "Name", "Location", "Users Count", "Courses Count", "User Names", "Course Names",
	}, sheet.Rows[0])
	assert.Equal(t, spreadsheet.Row{
		"1", "Math", "Building A", "2", "2", "alice,bob", "Algebra, Calculus",
	}, sheet.Rows[1])
	assert.Equal(t, spreadsheet.Row{
		"2", "Physics", "N/A", "0", "0", "N/A", "N/A",
	}, sheet.Rows[2])
}

func TestExportToSpreadsheet_Empty(t *testing.T) {
	svc, _, _ := setupTestDepartmentService()

	buf, _, err := svc.ExportToSpreadsheet(context.Background(), nil)
	require.NoError(t, err)

	sheet := readExport(t, buf)
	require.Len(t, sheet.Rows, 1, "无部门时只有表头")
}

func TestTemplate(t *testing.T) {
	svc, _, _ := setupTestDepartmentService()

	buf, filename, err := svc.Template(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "department_template.xlsx", filename)

	sheet := readExport(t, buf)
	require.Len(t, sheet.Rows, 2)
	assert.Equal(t, spreadsheet.Row{"Name"}, sheet.Rows[0])
	assert.Equal(t, spreadsheet.Row{"Example Department"}, sheet.Rows[1])
}
