package view

import (
	"net/url"
	"strings"

	"github.com/gin-gonic/gin"
)

const flashCookie = "devtasks_flash"

// Flash 一次性提示，种在 cookie 里，下一次渲染取走
type Flash struct {
	Category string // success / info / warning / danger
	Message  string
}

func SetFlash(c *gin.Context, category, message string) {
	v := url.QueryEscape(category + "|" + message)
	c.SetCookie(flashCookie, v, 60, "/", "", false, true)
}

func PopFlash(c *gin.Context) *Flash {
	raw, err := c.Cookie(flashCookie)
	if err != nil || raw == "" {
		return nil
	}
	c.SetCookie(flashCookie, "", -1, "/", "", false, true)
	v, err := url.QueryUnescape(raw)
	if err != nil {
		return nil
	}
	cat, msg, ok := strings.Cut(v, "|")
	if !ok {
		return &Flash{Category: "info", Message: v}
	}
	return &Flash{Category: cat, Message: msg}
}
