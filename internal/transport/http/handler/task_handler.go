package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"devtasks/internal/service"
	mdw "devtasks/internal/transport/http/middleware"
	"devtasks/internal/transport/http/view"
)

type TaskHandler struct {
	svc *service.TaskService
	log *zap.Logger
}

func NewTaskHandler(svc *service.TaskService, log *zap.Logger) *TaskHandler {
	return &TaskHandler{svc: svc, log: log}
}

func (h *TaskHandler) Index(c *gin.Context) {
	u := mdw.CurrentUser(c)
	status := c.Query("status")
	tasks, err := h.svc.List(u.ID, service.ParseFilter(status))
	if err != nil {
		fail(c, err, "/")
		return
	}
	counts, err := h.svc.Counts(u.ID)
	if err != nil {
		fail(c, err, "/")
		return
	}
	view.HTML(c, http.StatusOK, "index.tmpl", gin.H{
		"Title":  "My Tasks",
		"User":   u,
		"Tasks":  tasks,
		"Status": status,
		"Counts": counts,
	})
}

// Add 双路渲染：页面流 flash+redirect，脚本流 201 带任务片段和计数
func (h *TaskHandler) Add(c *gin.Context) {
	var in struct {
		Title       string `form:"title" json:"title"`
		Description string `form:"description" json:"description"`
	}
	_ = c.ShouldBind(&in)

	u := mdw.CurrentUser(c)
	t, err := h.svc.Create(u.ID, in.Title, in.Description)
	if err != nil {
		fail(c, err, "/")
		return
	}

	if view.WantsJSON(c) {
		html, err := view.RenderTaskItem(*t)
		if err != nil {
			h.log.Error("render task item", zap.Error(err))
		}
		counts, err := h.svc.Counts(u.ID)
		if err != nil {
			fail(c, err, "/")
			return
		}
		c.JSON(http.StatusCreated, gin.H{
			"status": "ok",
			"task": gin.H{
				"id":          t.ID,
				"title":       t.Title,
				"description": t.Description,
				"created_at":  t.CreatedAt.Format(time.DateTime),
				"completed":   t.Completed,
			},
			"html":   html,
			"counts": counts,
		})
		return
	}
	view.SetFlash(c, "success", "Task added")
	c.Redirect(http.StatusFound, "/")
}

func (h *TaskHandler) Toggle(c *gin.Context) {
	u := mdw.CurrentUser(c)
	t, err := h.svc.Toggle(u.ID, c.Param("id"))
	if err != nil {
		fail(c, err, "/")
		return
	}
	if view.WantsJSON(c) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "completed": t.Completed})
		return
	}
	c.Redirect(http.StatusFound, "/")
}

func (h *TaskHandler) Delete(c *gin.Context) {
	u := mdw.CurrentUser(c)
	if err := h.svc.Delete(u.ID, c.Param("id")); err != nil {
		fail(c, err, "/")
		return
	}
	if view.WantsJSON(c) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
		return
	}
	view.SetFlash(c, "info", "Task deleted")
	c.Redirect(http.StatusFound, "/")
}
