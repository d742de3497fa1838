package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"devtasks/internal/service"
	mdw "devtasks/internal/transport/http/middleware"
	"devtasks/internal/transport/http/view"
)

type AdminHandler struct {
	svc *service.AdminService
}

func NewAdminHandler(svc *service.AdminService) *AdminHandler {
	return &AdminHandler{svc: svc}
}

func (h *AdminHandler) Dashboard(c *gin.Context) {
	d, err := h.svc.Dashboard(c.Request.Context())
	if err != nil {
		fail(c, err, "/")
		return
	}
	view.HTML(c, http.StatusOK, "admin_dashboard.tmpl", gin.H{
		"Title":     "Admin",
		"User":      mdw.CurrentUser(c),
		"Dashboard": d,
	})
}

func (h *AdminHandler) CreateUser(c *gin.Context) {
	var in struct {
		Email    string `form:"email" json:"email"`
		Password string `form:"password" json:"password"`
		IsAdmin  string `form:"is_admin" json:"is_admin"`
	}
	_ = c.ShouldBind(&in)
	isAdmin := in.IsAdmin == "1" || in.IsAdmin == "on" || in.IsAdmin == "true"

	u, err := h.svc.CreateUser(in.Email, in.Password, isAdmin)
	if err != nil {
		fail(c, err, "/admin/")
		return
	}
	if view.WantsJSON(c) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "user": gin.H{
			"id":       u.ID,
			"email":    u.Email,
			"is_admin": u.IsAdmin,
			"tasks":    0,
		}})
		return
	}
	view.SetFlash(c, "success", "User created")
	c.Redirect(http.StatusFound, "/admin/")
}

func (h *AdminHandler) ShowEditUser(c *gin.Context) {
	u, err := h.svc.GetUser(c.Param("id"))
	if err != nil {
		fail(c, err, "/admin/")
		return
	}
	view.HTML(c, http.StatusOK, "admin_user_edit.tmpl", gin.H{
		"Title":  "Edit User",
		"User":   mdw.CurrentUser(c),
		"Target": u,
	})
}

func (h *AdminHandler) EditUser(c *gin.Context) {
	id := c.Param("id")
	var in struct {
		Email       string `form:"email" json:"email"`
		Name        string `form:"name" json:"name"`
		IsAdmin     string `form:"is_admin" json:"is_admin"`
		NewPassword string `form:"new_password" json:"new_password"`
	}
	_ = c.ShouldBind(&in)

	if _, err := h.svc.EditUser(id, service.UserEdit{
		Email:       in.Email,
		Name:        in.Name,
		IsAdmin:     in.IsAdmin == "1" || in.IsAdmin == "on" || in.IsAdmin == "true",
		NewPassword: in.NewPassword,
	}); err != nil {
		fail(c, err, "/admin/user/"+id+"/edit")
		return
	}
	view.SetFlash(c, "success", "User updated")
	c.Redirect(http.StatusFound, "/admin/")
}

func (h *AdminHandler) DeleteUser(c *gin.Context) {
	actor := mdw.CurrentUser(c)
	if err := h.svc.DeleteUser(c.Request.Context(), actor.ID, c.Param("id")); err != nil {
		fail(c, err, "/admin/")
		return
	}
	if view.WantsJSON(c) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
		return
	}
	view.SetFlash(c, "info", "User deleted")
	c.Redirect(http.StatusFound, "/admin/")
}
