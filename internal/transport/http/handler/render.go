package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"devtasks/internal/domain"
	"devtasks/internal/transport/http/view"
)

// statusOf 业务错误 → HTTP 状态码
func statusOf(err error) int {
	switch {
	case errors.Is(err, domain.ErrValidation),
		errors.Is(err, domain.ErrDuplicateEmail),
		errors.Is(err, domain.ErrEmailMissing),
		errors.Is(err, domain.ErrSelfDeletion):
		return http.StatusBadRequest
	case errors.Is(err, domain.ErrInvalidCredentials):
		return http.StatusUnauthorized
	case errors.Is(err, domain.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrForbidden):
		return http.StatusForbidden
	}
	return http.StatusInternalServerError
}

// fail 业务失败的统一出口：脚本流回 JSON 错误，
// 页面流 flash 后跳回 redirectTo。基础设施错误不泄露细节。
func fail(c *gin.Context, err error, redirectTo string) {
	status := statusOf(err)
	msg := err.Error()
	category := "danger"
	if status == http.StatusInternalServerError {
		msg = "something went wrong"
	}
	if errors.Is(err, domain.ErrDuplicateEmail) || errors.Is(err, domain.ErrSelfDeletion) {
		category = "warning"
	}
	if view.WantsJSON(c) {
		c.JSON(status, gin.H{"status": "error", "message": msg})
		return
	}
	view.SetFlash(c, category, msg)
	c.Redirect(http.StatusFound, redirectTo)
}
