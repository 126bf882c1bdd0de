package repository

import (
	"context"

	"gorm.io/gorm"

	"campus-lms/backend/internal/model"
)

// LocationRepository 地点数据访问接口
type LocationRepository interface {
	Create(ctx context.Context, loc *model.Location) error
	GetByID(ctx context.Context, id int64) (*model.Location, error)
	GetByName(ctx context.Context, name string) (*model.Location, error)
	List(ctx context.Context) ([]model.Location, error)
}

type locationRepo struct {
	db *gorm.DB
}

// NewLocationRepo 创建 LocationRepository 实例
func NewLocationRepo(db *gorm.DB) LocationRepository {
	return &locationRepo{db: db}
}

func (r *locationRepo) Create(ctx context.Context, loc *model.Location) error {
	return translateError(r.db.WithContext(ctx).Create(loc).Error)
}

func (r *locationRepo) GetByID(ctx context.Context, id int64) (*model.Location, error) {
	var loc model.Location
	err := r.db.WithContext(ctx).
		Where("id = ?", id).
		First(&loc).Error
	if err != nil {
		return nil, err
	}
	return &loc, nil
}

// GetByName 按名称精确查找；同名记录多于一条时取最早创建的一条
func (r *locationRepo) GetByName(ctx context.Context, name string) (*model.Location, error) {
	var loc model.Location
	err := r.db.WithContext(ctx).
		Where("name = ?", name).
		Order("id ASC").
		First(&loc).Error
	if err != nil {
		return nil, err
	}
	return &loc, nil
}

func (r *locationRepo) List(ctx context.Context) ([]model.Location, error) {
	var locations []model.Location
	err := r.db.WithContext(ctx).
		Order("name ASC, id ASC").
		Find(&locations).Error
	return locations, err
}
