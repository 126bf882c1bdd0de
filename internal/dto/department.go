package dto

// ── 部门模块 DTO ──

// DepartmentListRequest 部门分页查询参数（page 从 0 开始）
type DepartmentListRequest struct {
	Search string `form:"search"`
	Page   int    `form:"page,default=0"`
	Size   int    `form:"size,default=20"`
}

// DepartmentExportRequest 导出参数：未提供 size 时导出全部部门
type DepartmentExportRequest struct {
	Search string `form:"search"`
	Page   int    `form:"page,default=0"`
	Size   *int   `form:"size"`
}

// LocationRef 部门请求中的地点：带 id 时引用已有地点，否则按 name 查找或创建
type LocationRef struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// DepartmentRequest 创建 / 更新部门请求（更新为全量覆盖）
type DepartmentRequest struct {
	Name      string       `json:"name"`
	Location  *LocationRef `json:"location"`
	UserIDs   []int64      `json:"user_ids"   binding:"omitempty,dive,gt=0"`
	CourseIDs []int64      `json:"course_ids" binding:"omitempty,dive,gt=0"`
}

// DeleteDepartmentsRequest 批量删除请求
type DeleteDepartmentsRequest struct {
	IDs []int64 `json:"ids"`
}

// UserBrief 部门内用户摘要
type UserBrief struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`
}

// CourseBrief 部门内课程摘要
type CourseBrief struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// DepartmentResponse 部门信息响应
type DepartmentResponse struct {
	ID        int64             `json:"id"`
	Name      string            `json:"name"`
	Location  *LocationResponse `json:"location"`
	Users     []UserBrief       `json:"users"`
	Courses   []CourseBrief     `json:"courses"`
	CreatedAt string            `json:"created_at,omitempty"`
	UpdatedAt string            `json:"updated_at,omitempty"`
}

// ImportDepartmentsResponse 导入结果
type ImportDepartmentsResponse struct {
	Imported    int                  `json:"imported"`
	Departments []DepartmentResponse `json:"departments"`
}

// ExistsResponse 名称占用检查结果
type ExistsResponse struct {
	Exists bool `json:"exists"`
}

// CountResponse 计数结果
type CountResponse struct {
	Count int64 `json:"count"`
}
