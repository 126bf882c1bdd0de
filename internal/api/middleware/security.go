package middleware

import (
	"github.com/gin-gonic/gin"
)

// SecurityHeaders 安全 HTTP 头中间件
// 本服务只返回 JSON 与 xlsx 附件，不渲染页面：CSP 拒绝一切资源加载，
// 响应一律不缓存（导出的表格包含部门成员信息）
func SecurityHeaders() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("X-Frame-Options", "DENY")
		c.Header("X-Content-Type-Options", "nosniff")
		c.Header("Referrer-Policy", "no-referrer")
		c.Header("Content-Security-Policy", "default-src 'none'; frame-ancestors 'none'")
		c.Header("Cache-Control", "no-store")
		// 附件在 IE/旧版 Edge 中不直接打开
		c.Header("X-Download-Options", "noopen")

		c.Next()
	}
}
