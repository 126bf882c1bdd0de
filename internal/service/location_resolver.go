package service

import (
	"context"
	"errors"
	"strings"

	"gorm.io/gorm"

	"campus-lms/backend/internal/model"
	"campus-lms/backend/internal/repository"
)

// ResolveLocation 按名称查找地点，不存在时以默认地址创建。
//
// candidate 为 nil 或名称为空白时返回 (nil, nil)，表示"无地点"。
// 名称按原样精确匹配；同名多条时取最早创建的一条。
// store 由调用方传入，导入与创建时传入事务内的仓储。
func ResolveLocation(ctx context.Context, store repository.LocationRepository, candidate *model.Location) (*model.Location, error) {
	if candidate == nil || strings.TrimSpace(candidate.Name) == "" {
		return nil, nil
	}

	existing, err := store.GetByName(ctx, candidate.Name)
	if err == nil {
		locationResolveTotal.WithLabelValues("hit").Inc()
		return existing, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	loc := &model.Location{
		Name:    candidate.Name,
		Address: model.NotAvailable,
	}
	if err := store.Create(ctx, loc); err != nil {
		return nil, err
	}
	locationResolveTotal.WithLabelValues("created").Inc()
	return loc, nil
}
