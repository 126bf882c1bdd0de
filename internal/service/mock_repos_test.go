package service

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"gorm.io/gorm"

	"campus-lms/backend/internal/model"
	"campus-lms/backend/internal/repository"
	pkgerrors "campus-lms/backend/pkg/errors"
)

// ── Mock DepartmentRepository ──

type mockDeptRepo struct {
	departments map[int64]*model.Department
	nextID      int64
	// saveCalls 记录 Save / SaveAll 被调用的次数
	saveCalls int
	// failWith 非 nil 时所有读写操作直接返回该错误
	failWith error
	// userNames / courseNames 模拟 GetByID 预加载关联时补齐的用户名与课程名
	userNames   map[int64]string
	courseNames map[int64]string
}

func newMockDeptRepo() *mockDeptRepo {
	return &mockDeptRepo{departments: make(map[int64]*model.Department), nextID: 1}
}

// seed 直接写入一条部门记录，返回其 ID
func (m *mockDeptRepo) seed(dept model.Department) int64 {
	if dept.ID == 0 {
		dept.ID = m.nextID
	}
	if dept.ID >= m.nextID {
		m.nextID = dept.ID + 1
	}
	if dept.Location != nil {
		dept.LocationID = &dept.Location.ID
	}
	m.departments[dept.ID] = &dept
	return dept.ID
}

func (m *mockDeptRepo) GetByID(_ context.Context, id int64) (*model.Department, error) {
	if m.failWith != nil {
		return nil, m.failWith
	}
	if d, ok := m.departments[id]; ok {
		cp := *d
		m.preload(&cp)
		return &cp, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockDeptRepo) preload(d *model.Department) {
	users := make([]model.User, len(d.Users))
	for i, u := range d.Users {
		if name, ok := m.userNames[u.ID]; ok {
			u.Username = name
		}
		users[i] = u
	}
	courses := make([]model.Course, len(d.Courses))
	for i, c := range d.Courses {
		if name, ok := m.courseNames[c.ID]; ok {
			c.Name = name
		}
		courses[i] = c
	}
	d.Users, d.Courses = users, courses
}

func (m *mockDeptRepo) GetByName(_ context.Context, name string) (*model.Department, error) {
	if m.failWith != nil {
		return nil, m.failWith
	}
	for _, d := range m.departments {
		if d.Name == name {
			cp := *d
			return &cp, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockDeptRepo) sorted() []model.Department {
	result := make([]model.Department, 0, len(m.departments))
	for _, d := range m.departments {
		result = append(result, *d)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ID < result[j].ID })
	return result
}

func (m *mockDeptRepo) FindPage(_ context.Context, filter repository.DepartmentFilter, page, size int) ([]model.Department, int64, error) {
	if m.failWith != nil {
		return nil, 0, m.failWith
	}
	var matched []model.Department
	needle := strings.ToLower(filter.NameContains)
	for _, d := range m.sorted() {
		if strings.Contains(strings.ToLower(d.Name), needle) {
			matched = append(matched, d)
		}
	}

	total := int64(len(matched))
	start := page * size
	if start >= len(matched) {
		return []model.Department{}, total, nil
	}
	end := start + size
	if end > len(matched) {
		end = len(matched)
	}
	return matched[start:end], total, nil
}

func (m *mockDeptRepo) FindAll(_ context.Context) ([]model.Department, error) {
	if m.failWith != nil {
		return nil, m.failWith
	}
	return m.sorted(), nil
}

// saveRow 模拟唯一约束与"只写名称和地点"的行级写入
func (m *mockDeptRepo) saveRow(dept *model.Department, keepLinks bool) error {
	for _, d := range m.departments {
		if d.Name == dept.Name && d.ID != dept.ID {
			return fmt.Errorf("%w: duplicate key uk_departments_name", pkgerrors.ErrAlreadyExists)
		}
	}
	if dept.Location != nil {
		dept.LocationID = &dept.Location.ID
	}

	if dept.ID == 0 {
		dept.ID = m.nextID
		m.nextID++
	} else if _, ok := m.departments[dept.ID]; !ok {
		return gorm.ErrRecordNotFound
	}

	cp := *dept
	if existing, ok := m.departments[dept.ID]; ok && keepLinks {
		cp.Users = existing.Users
		cp.Courses = existing.Courses
	} else if !ok && keepLinks {
		cp.Users, cp.Courses = nil, nil
	}
	m.departments[dept.ID] = &cp
	return nil
}

func (m *mockDeptRepo) Save(_ context.Context, dept *model.Department) error {
	if m.failWith != nil {
		return m.failWith
	}
	m.saveCalls++
	return m.saveRow(dept, false)
}

func (m *mockDeptRepo) SaveAll(_ context.Context, depts []*model.Department) error {
	if m.failWith != nil {
		return m.failWith
	}
	m.saveCalls++
	for _, d := range depts {
		if err := m.saveRow(d, true); err != nil {
			return err
		}
	}
	return nil
}

func (m *mockDeptRepo) Delete(_ context.Context, dept *model.Department) error {
	if m.failWith != nil {
		return m.failWith
	}
	if _, ok := m.departments[dept.ID]; !ok {
		return gorm.ErrRecordNotFound
	}
	delete(m.departments, dept.ID)
	return nil
}

func (m *mockDeptRepo) Count(_ context.Context) (int64, error) {
	if m.failWith != nil {
		return 0, m.failWith
	}
	return int64(len(m.departments)), nil
}

// ── Mock LocationRepository ──

type mockLocationRepo struct {
	locations map[int64]*model.Location
	nextID    int64
	creates   int
}

func newMockLocationRepo() *mockLocationRepo {
	return &mockLocationRepo{locations: make(map[int64]*model.Location), nextID: 1}
}

func (m *mockLocationRepo) seed(loc model.Location) *model.Location {
	if loc.ID == 0 {
		loc.ID = m.nextID
	}
	if loc.ID >= m.nextID {
		m.nextID = loc.ID + 1
	}
	m.locations[loc.ID] = &loc
	cp := loc
	return &cp
}

func (m *mockLocationRepo) Create(_ context.Context, loc *model.Location) error {
	m.creates++
	loc.ID = m.nextID
	m.nextID++
	cp := *loc
	m.locations[loc.ID] = &cp
	return nil
}

func (m *mockLocationRepo) GetByID(_ context.Context, id int64) (*model.Location, error) {
	if l, ok := m.locations[id]; ok {
		cp := *l
		return &cp, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockLocationRepo) GetByName(_ context.Context, name string) (*model.Location, error) {
	var found *model.Location
	for _, l := range m.locations {
		if l.Name == name && (found == nil || l.ID < found.ID) {
			found = l
		}
	}
	if found == nil {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *found
	return &cp, nil
}

func (m *mockLocationRepo) List(_ context.Context) ([]model.Location, error) {
	result := make([]model.Location, 0, len(m.locations))
	for _, l := range m.locations {
		result = append(result, *l)
	}
	sort.Slice(result, func(i, j int) bool {
		if result[i].Name != result[j].Name {
			return result[i].Name < result[j].Name
		}
		return result[i].ID < result[j].ID
	})
	return result, nil
}
