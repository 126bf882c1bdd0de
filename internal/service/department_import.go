package service

import (
	"context"
	"errors"
	"io"
	"strings"
	"unicode/utf8"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"campus-lms/backend/internal/model"
	"campus-lms/backend/internal/repository"
	"campus-lms/backend/internal/spreadsheet"
	applogger "campus-lms/backend/pkg/logger"
	pkgerrors "campus-lms/backend/pkg/errors"
)

// 导入表格列位置（0 起始）：第 0 列为 ID，导入时忽略
const (
	importColName     = 1
	importColLocation = 2
)

// defaultMaxImportRows 未配置时单次导入的数据行上限
const defaultMaxImportRows = 1000

// importCandidate 解析后待落库的一行
type importCandidate struct {
	row  int
	dept *model.Department
}

// ────────────────────── 行解析 ──────────────────────

// parseDepartmentRow 把表格中的一行解析为待保存的部门（未落库，不含 ID 与关联）。
// rowNumber 为 1 起始的表格行号，仅用于错误定位。
func parseDepartmentRow(row spreadsheet.Row, rowNumber int) (*model.Department, error) {
	name, _ := row.Cell(importColName)
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, pkgerrors.NewRowError(rowNumber, "部门名称为空")
	}
	if utf8.RuneCountInString(name) > model.DepartmentNameMaxLen {
		return nil, pkgerrors.NewRowError(rowNumber, "部门名称超过 %d 个字符", model.DepartmentNameMaxLen)
	}

	dept := &model.Department{Name: name}

	locName, _ := row.Cell(importColLocation)
	locName = strings.TrimSpace(locName)
	if locName != "" && locName != model.NotAvailable {
		dept.Location = &model.Location{Name: locName, Address: model.NotAvailable}
	}
	return dept, nil
}

// parseDepartmentSheet 校验整张表并返回待落库的行，任一行不合法即整体失败。
// 没有任何单元格的行跳过，其余行（包括只有空白字符的行）都必须能解析；
// 同一表格内重名的部门合并，后出现的行覆盖先出现的行。
func parseDepartmentSheet(sheet *spreadsheet.Sheet, maxRows int) ([]importCandidate, error) {
	if sheet == nil || len(sheet.Rows) <= 1 {
		return nil, pkgerrors.ErrEmptyWorkbook
	}

	dataRows := sheet.Rows[1:]
	if maxRows > 0 && len(dataRows) > maxRows {
		return nil, pkgerrors.Wrap(pkgerrors.ErrInvalidInput, "数据行数 %d 超过上限 %d", len(dataRows), maxRows)
	}

	candidates := make([]importCandidate, 0, len(dataRows))
	byName := make(map[string]int, len(dataRows))
	for i, row := range dataRows {
		rowNumber := i + 2 // 表头占第 1 行
		if len(row) == 0 {
			continue
		}

		dept, err := parseDepartmentRow(row, rowNumber)
		if err != nil {
			return nil, err
		}
		if err := ValidateDepartment(dept); err != nil {
			return nil, pkgerrors.NewRowError(rowNumber, "%v", err)
		}

		if idx, ok := byName[dept.Name]; ok {
			candidates[idx] = importCandidate{row: rowNumber, dept: dept}
			continue
		}
		byName[dept.Name] = len(candidates)
		candidates = append(candidates, importCandidate{row: rowNumber, dept: dept})
	}

	if len(candidates) == 0 {
		return nil, pkgerrors.ErrEmptyWorkbook
	}
	return candidates, nil
}

// ────────────────────── 导入 ──────────────────────

// ImportFromSpreadsheet 读取上传的工作簿并批量 upsert 部门。
//
// 全部行先解析校验，再在单个事务内落库：任一行失败则不写入任何数据。
// 已存在的同名部门只更新地点，原有用户、课程关联保持不变。
func (s *departmentService) ImportFromSpreadsheet(ctx context.Context, r io.Reader) (result []model.Department, err error) {
	log := applogger.For(ctx, s.logger)

	defer func() { recordImport(err) }()

	sheet, err := spreadsheet.Read(r)
	switch {
	case errors.Is(err, spreadsheet.ErrNoSheet):
		return nil, pkgerrors.ErrEmptyWorkbook
	case err != nil:
		return nil, pkgerrors.Wrap(pkgerrors.ErrInvalidInput, "%v", err)
	}

	candidates, err := parseDepartmentSheet(sheet, s.maxImportRows)
	if err != nil {
		log.Info("部门导入校验未通过", zap.String("sheet", sheet.Name), zap.Error(err))
		return nil, err
	}

	batch := make([]*model.Department, 0, len(candidates))
	for _, c := range candidates {
		batch = append(batch, c.dept)
	}

	var inserted, updated int
	err = s.repo.Transaction(ctx, func(tx *repository.Repository) error {
		inserted, updated = 0, 0
		for _, dept := range batch {
			existing, err := tx.Department.GetByName(ctx, dept.Name)
			switch {
			case err == nil:
				dept.ID = existing.ID
				updated++
			case errors.Is(err, gorm.ErrRecordNotFound):
				inserted++
			default:
				return err
			}

			loc, err := ResolveLocation(ctx, tx.Location, dept.Location)
			if err != nil {
				return err
			}
			dept.Location = loc
			dept.LocationID = nil
		}
		return tx.Department.SaveAll(ctx, batch)
	})
	if err != nil {
		if errors.Is(err, pkgerrors.ErrAlreadyExists) {
			return nil, ErrDepartmentNameExists
		}
		log.Error("部门导入落库失败", zap.Int("rows", len(batch)), zap.Error(err))
		return nil, err
	}

	departmentImportRows.WithLabelValues("insert").Add(float64(inserted))
	departmentImportRows.WithLabelValues("update").Add(float64(updated))
	log.Info("部门导入完成",
		zap.String("sheet", sheet.Name),
		zap.Int("inserted", inserted),
		zap.Int("updated", updated),
	)

	result = make([]model.Department, 0, len(batch))
	for _, dept := range batch {
		result = append(result, *dept)
	}
	return result, nil
}
