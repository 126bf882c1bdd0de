//go:build integration

package repository_test

import (
	"context"
	"errors"
	"fmt"
	"os"
	"testing"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	pkgerrors "campus-lms/backend/pkg/errors"

	"campus-lms/backend/internal/model"
	"campus-lms/backend/internal/repository"
)

// ═══════════════════════════════════════════════════════════
// Test Setup
// ═══════════════════════════════════════════════════════════

var testDB *gorm.DB

func TestMain(m *testing.M) {
	dsn := os.Getenv("TEST_DATABASE_DSN")
	if dsn == "" {
		dsn = "host=localhost port=5433 user=campus_lms password=campus_lms_password dbname=campus_lms_test sslmode=disable TimeZone=Asia/Shanghai"
	}

	var err error
	testDB, err = gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "无法连接测试数据库: %v\n", err)
		os.Exit(1)
	}

	// 自动迁移测试表结构
	err = testDB.AutoMigrate(
		&model.Location{},
		&model.User{},
		&model.Course{},
		&model.Department{},
	)
	if err != nil {
		fmt.Fprintf(os.Stderr, "AutoMigrate 失败: %v\n", err)
		os.Exit(1)
	}

	code := m.Run()
	os.Exit(code)
}

func uniqueName(prefix string) string {
	return fmt.Sprintf("%s-%d", prefix, time.Now().UnixNano())
}

// setupTestData 创建一个地点、两个用户、一门课程，返回清理函数
func setupTestData(t *testing.T) (loc *model.Location, users []model.User, course *model.Course, cleanup func()) {
	t.Helper()
	ctx := context.Background()

	loc = &model.Location{Name: uniqueName("测试地点"), Address: model.NotAvailable}
	if err := testDB.WithContext(ctx).Create(loc).Error; err != nil {
		t.Fatalf("创建地点失败: %v", err)
	}

	base := time.Now().UnixNano() % 1_000_000_000
	users = []model.User{
		{ID: base + 1, Username: "alice"},
		{ID: base + 2, Username: "bob"},
	}
	if err := testDB.WithContext(ctx).Create(&users).Error; err != nil {
		t.Fatalf("创建用户失败: %v", err)
	}

	course = &model.Course{ID: base + 3, Name: "Algebra"}
	if err := testDB.WithContext(ctx).Create(course).Error; err != nil {
		t.Fatalf("创建课程失败: %v", err)
	}

	cleanup = func() {
		testDB.Exec("DELETE FROM department_users WHERE user_id IN ?", []int64{users[0].ID, users[1].ID})
		testDB.Exec("DELETE FROM department_courses WHERE course_id = ?", course.ID)
		testDB.Exec("DELETE FROM departments WHERE location_id = ?", loc.ID)
		testDB.Exec("DELETE FROM users WHERE id IN ?", []int64{users[0].ID, users[1].ID})
		testDB.Exec("DELETE FROM courses WHERE id = ?", course.ID)
		testDB.Exec("DELETE FROM locations WHERE id = ?", loc.ID)
	}
	return loc, users, course, cleanup
}

// ═══════════════════════════════════════════════════════════
// Transaction
// ═══════════════════════════════════════════════════════════

func TestTransaction_Rollback(t *testing.T) {
	ctx := context.Background()
	repo := repository.NewRepository(testDB)
	name := uniqueName("回滚部门")

	sentinel := errors.New("abort")
	err := repo.Transaction(ctx, func(tx *repository.Repository) error {
		if err := tx.Department.SaveAll(ctx, []*model.Department{{Name: name}}); err != nil {
			return err
		}
		return sentinel
	})
	if !errors.Is(err, sentinel) {
		t.Fatalf("期望返回 sentinel，实际: %v", err)
	}

	if _, err := repo.Department.GetByName(ctx, name); !errors.Is(err, gorm.ErrRecordNotFound) {
		t.Errorf("回滚后部门不应存在，实际: %v", err)
	}
}

// ═══════════════════════════════════════════════════════════
// Department
// ═══════════════════════════════════════════════════════════

func TestDepartment_SaveReplacesLinks(t *testing.T) {
	ctx := context.Background()
	repo := repository.NewRepository(testDB)
	loc, users, course, cleanup := setupTestData(t)
	defer cleanup()

	dept := &model.Department{Name: uniqueName("数学"), Location: loc, Users: users}
	if err := repo.Department.Save(ctx, dept); err != nil {
		t.Fatalf("Save 失败: %v", err)
	}
	createdAt := dept.CreatedAt

	dept.Users = users[:1]
	dept.Courses = []model.Course{*course}
	if err := repo.Department.Save(ctx, dept); err != nil {
		t.Fatalf("二次 Save 失败: %v", err)
	}

	got, err := repo.Department.GetByID(ctx, dept.ID)
	if err != nil {
		t.Fatalf("GetByID 失败: %v", err)
	}
	if len(got.Users) != 1 || got.Users[0].ID != users[0].ID {
		t.Errorf("期望只剩 alice，实际: %+v", got.Users)
	}
	if len(got.Courses) != 1 {
		t.Errorf("期望 1 门课程，实际: %d", len(got.Courses))
	}
	if got.Location == nil || got.Location.ID != loc.ID {
		t.Errorf("地点未正确关联: %+v", got.Location)
	}
	if !got.CreatedAt.Equal(createdAt) {
		t.Errorf("更新不应改写 created_at: %v -> %v", createdAt, got.CreatedAt)
	}
}

func TestDepartment_SaveAllKeepsLinks(t *testing.T) {
	ctx := context.Background()
	repo := repository.NewRepository(testDB)
	loc, users, _, cleanup := setupTestData(t)
	defer cleanup()

	dept := &model.Department{Name: uniqueName("物理"), Users: users}
	if err := repo.Department.Save(ctx, dept); err != nil {
		t.Fatalf("Save 失败: %v", err)
	}

	upsert := &model.Department{ID: dept.ID, Name: dept.Name, Location: loc}
	if err := repo.Department.SaveAll(ctx, []*model.Department{upsert}); err != nil {
		t.Fatalf("SaveAll 失败: %v", err)
	}

	got, err := repo.Department.GetByID(ctx, dept.ID)
	if err != nil {
		t.Fatalf("GetByID 失败: %v", err)
	}
	if len(got.Users) != 2 {
		t.Errorf("SaveAll 不应改动用户关联，实际: %d", len(got.Users))
	}
	if got.LocationID == nil || *got.LocationID != loc.ID {
		t.Errorf("SaveAll 应更新地点")
	}
}

func TestDepartment_UniqueName(t *testing.T) {
	ctx := context.Background()
	repo := repository.NewRepository(testDB)
	name := uniqueName("重名")
	defer testDB.Exec("DELETE FROM departments WHERE name = ?", name)

	if err := repo.Department.Save(ctx, &model.Department{Name: name}); err != nil {
		t.Fatalf("首次 Save 失败: %v", err)
	}
	err := repo.Department.Save(ctx, &model.Department{Name: name})
	if !errors.Is(err, pkgerrors.ErrAlreadyExists) {
		t.Errorf("期望 ErrAlreadyExists，实际: %v", err)
	}
}

func TestDepartment_DeleteKeepsLocationAndUsers(t *testing.T) {
	ctx := context.Background()
	repo := repository.NewRepository(testDB)
	loc, users, _, cleanup := setupTestData(t)
	defer cleanup()

	dept := &model.Department{Name: uniqueName("历史"), Location: loc, Users: users}
	if err := repo.Department.Save(ctx, dept); err != nil {
		t.Fatalf("Save 失败: %v", err)
	}
	if err := repo.Department.Delete(ctx, dept); err != nil {
		t.Fatalf("Delete 失败: %v", err)
	}

	if _, err := repo.Location.GetByID(ctx, loc.ID); err != nil {
		t.Errorf("删除部门不应删除地点: %v", err)
	}
	var n int64
	testDB.Model(&model.User{}).Where("id IN ?", []int64{users[0].ID, users[1].ID}).Count(&n)
	if n != 2 {
		t.Errorf("删除部门不应删除用户，剩余 %d", n)
	}
	if err := repo.Department.Delete(ctx, dept); !errors.Is(err, gorm.ErrRecordNotFound) {
		t.Errorf("重复删除应返回 ErrRecordNotFound，实际: %v", err)
	}
}

func TestDepartment_FindPageCaseInsensitive(t *testing.T) {
	ctx := context.Background()
	repo := repository.NewRepository(testDB)
	tag := uniqueName("Zeta")
	names := []string{tag + "-Math", "APPLIED-" + tag + "-MATH"}
	for _, n := range names {
		if err := repo.Department.Save(ctx, &model.Department{Name: n}); err != nil {
			t.Fatalf("Save 失败: %v", err)
		}
	}
	defer testDB.Exec("DELETE FROM departments WHERE name IN ?", names)

	items, total, err := repo.Department.FindPage(ctx, repository.DepartmentFilter{NameContains: tag + "-math"}, 0, 10)
	if err != nil {
		t.Fatalf("FindPage 失败: %v", err)
	}
	if total != 2 || len(items) != 2 {
		t.Errorf("期望匹配 2 条，实际 total=%d len=%d", total, len(items))
	}
}
