package handler

import (
	"errors"
	"net/http"

	"Debt_BBS/internal/pkg"

	"github.com/gin-gonic/gin"
)

// respondErr 错误分类 → HTTP 状态码。文案直接用 service 层的固定消息
func respondErr(c *gin.Context, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, pkg.ErrNotFound):
		status = http.StatusNotFound
	case errors.Is(err, pkg.ErrForbidden):
		status = http.StatusForbidden
	case errors.Is(err, pkg.ErrThreadClosed),
		errors.Is(err, pkg.ErrValidation),
		errors.Is(err, pkg.ErrDuplicateBan):
		status = http.StatusBadRequest
	case errors.Is(err, pkg.ErrStorage):
		status = http.StatusInternalServerError
	}
	c.JSON(status, gin.H{"msg": err.Error()})
}
