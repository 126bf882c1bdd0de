package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"campus-lms/backend/internal/model"
	"campus-lms/backend/internal/repository"
	pkgerrors "campus-lms/backend/pkg/errors"
)

func setupTestLocationService() (LocationService, *mockLocationRepo) {
	locRepo := newMockLocationRepo()
	repo := &repository.Repository{
		Department: newMockDeptRepo(),
		Location:   locRepo,
	}
	return NewLocationService(repo, zap.NewNop()), locRepo
}

func TestLocationService_GetByID(t *testing.T) {
	svc, locRepo := setupTestLocationService()
	loc := locRepo.seed(model.Location{Name: "Building A", Address: "1 Main St"})

	got, err := svc.GetByID(context.Background(), loc.ID)
	require.NoError(t, err)
	assert.Equal(t, "1 Main St", got.Address)

	_, err = svc.GetByID(context.Background(), 404)
	assert.ErrorIs(t, err, ErrLocationNotFound)
	assert.ErrorIs(t, err, pkgerrors.ErrNotFound)
}

func TestLocationService_List_SortedByName(t *testing.T) {
	svc, locRepo := setupTestLocationService()
	locRepo.seed(model.Location{Name: "Lab"})
	locRepo.seed(model.Location{Name: "Annex"})

	list, err := svc.List(context.Background())
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "Annex", list[0].Name)
}

// ── ResolveLocation ──

func TestResolveLocation(t *testing.T) {
	ctx := context.Background()
	locRepo := newMockLocationRepo()
	first := locRepo.seed(model.Location{Name: "Building A", Address: "1 Main St"})
	locRepo.seed(model.Location{Name: "Building A", Address: "duplicate"})

	t.Run("nil 表示无地点", func(t *testing.T) {
		loc, err := ResolveLocation(ctx, locRepo, nil)
		require.NoError(t, err)
		assert.Nil(t, loc)
	})

	t.Run("空白名称表示无地点", func(t *testing.T) {
		loc, err := ResolveLocation(ctx, locRepo, &model.Location{Name: "  "})
		require.NoError(t, err)
		assert.Nil(t, loc)
	})

	t.Run("同名取最早的一条", func(t *testing.T) {
		loc, err := ResolveLocation(ctx, locRepo, &model.Location{Name: "Building A", Address: "ignored"})
		require.NoError(t, err)
		assert.Equal(t, first.ID, loc.ID)
		assert.Equal(t, "1 Main St", loc.Address)
	})

	t.Run("不存在时以默认地址创建", func(t *testing.T) {
		loc, err := ResolveLocation(ctx, locRepo, &model.Location{Name: "Lab 3", Address: "somewhere"})
		require.NoError(t, err)
		assert.NotZero(t, loc.ID)
		assert.Equal(t, model.NotAvailable, loc.Address)
		assert.Equal(t, 1, locRepo.creates)

		again, err := ResolveLocation(ctx, locRepo, &model.Location{Name: "Lab 3"})
		require.NoError(t, err)
		assert.Equal(t, loc.ID, again.ID)
		assert.Equal(t, 1, locRepo.creates)
	})
}
