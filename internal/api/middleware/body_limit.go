package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"campus-lms/backend/pkg/response"
)

// BodyLimit 上传请求体大小限制中间件（部门导入使用 server.max_upload_mb）
// Content-Length 已超限时直接返回 413；分块上传由 MaxBytesReader 截断，
// 读取失败时 Handler 识别 *http.MaxBytesError 并返回 413
func BodyLimit(maxBytes int64) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.ContentLength > maxBytes {
			response.Error(c, http.StatusRequestEntityTooLarge, 10005, "上传文件过大")
			c.Abort()
			return
		}
		if c.Request.Body != nil {
			c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxBytes)
		}

		c.Next()
	}
}
