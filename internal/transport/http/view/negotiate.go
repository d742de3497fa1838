package view

import (
	"strings"

	"github.com/gin-gonic/gin"
)

// WantsJSON 脚本客户端的判定：Accept 前缀、fetch 标记，
// 或者请求体本身就是 JSON。
func WantsJSON(c *gin.Context) bool {
	if strings.HasPrefix(c.GetHeader("Accept"), "application/json") {
		return true
	}
	if c.GetHeader("X-Requested-With") == "fetch" {
		return true
	}
	return strings.HasPrefix(c.ContentType(), "application/json")
}
