package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	applogger "campus-lms/backend/pkg/logger"
)

const (
	requestIDKey    = "request_id"
	requestIDHeader = "X-Request-ID"
	// 外部传入的 Request-ID 最大长度，超出则重新生成
	requestIDMaxLen = 64
)

// RequestID 请求追踪 ID 中间件
// 优先沿用调用方的 X-Request-ID，否则生成 UUID；
// ID 同时写入 gin.Context、响应头与 Request.Context，导入导出等业务日志据此关联请求
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		rid := c.GetHeader(requestIDHeader)
		if rid == "" || len(rid) > requestIDMaxLen {
			rid = uuid.New().String()
		}

		c.Set(requestIDKey, rid)
		c.Header(requestIDHeader, rid)
		c.Request = c.Request.WithContext(applogger.WithRequestID(c.Request.Context(), rid))

		c.Next()
	}
}
