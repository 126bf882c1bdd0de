package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"campus-lms/backend/pkg/response"
)

// ParseIDParam 解析路径参数 :id 为正整数。
// 解析失败时写入 400 响应并返回 false，调用方应直接 return。
func ParseIDParam(c *gin.Context, message string) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		response.BadRequest(c, 10001, message)
		return 0, false
	}
	return id, true
}
