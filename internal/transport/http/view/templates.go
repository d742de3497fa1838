package view

import (
	"embed"
	"html/template"
	"strings"

	"github.com/gin-gonic/gin"

	"devtasks/internal/domain"
)

//go:embed templates/*.tmpl
var tmplFS embed.FS

var funcs = template.FuncMap{
	"fmtTime": func(t interface{ Format(string) string }) string {
		return t.Format("2006-01-02 15:04")
	},
}

var tmpl = template.Must(template.New("").Funcs(funcs).ParseFS(tmplFS, "templates/*.tmpl"))

// Templates 全部内嵌模板，挂到 gin 引擎上
func Templates() *template.Template { return tmpl }

// RenderTaskItem 渲染单条任务片段，add 接口 JSON 流里回传给前端插入
func RenderTaskItem(t domain.Task) (string, error) {
	var b strings.Builder
	if err := tmpl.ExecuteTemplate(&b, "task_item.tmpl", t); err != nil {
		return "", err
	}
	return b.String(), nil
}

// HTML 统一注入 flash 后渲染页面
func HTML(c *gin.Context, status int, name string, data gin.H) {
	if data == nil {
		data = gin.H{}
	}
	if _, ok := data["Flash"]; !ok {
		data["Flash"] = PopFlash(c)
	}
	c.HTML(status, name, data)
}
