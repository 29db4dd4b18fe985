package handler

import (
	"net/http"
	"strconv"

	"Debt_BBS/internal/middleware"
	"Debt_BBS/internal/service"

	"github.com/gin-gonic/gin"
)

type AdminHandler struct {
	svc    *service.AdminService
	board  *service.BoardService
	modSvc *service.ModerationService
}

type CreateThreadReq struct {
	ThreadNumber int    `json:"thread_number"`
	Title        string `json:"title"`
	Body         string `json:"body"`
}

type AddBanReq struct {
	IPAddress string `json:"ip_address"`
	Reason    string `json:"reason"`
	Duration  int    `json:"duration"` // 天数，0 为永久
}

type ChangePasswordReq struct {
	OldPassword string `json:"old_password"`
	NewPassword string `json:"new_password"`
}

func NewAdminHandler(svc *service.AdminService, board *service.BoardService, modSvc *service.ModerationService) *AdminHandler {
	return &AdminHandler{svc: svc, board: board, modSvc: modSvc}
}

// Login 登录接口
func (h *AdminHandler) Login(c *gin.Context) {
	var req struct {
		Username string `json:"username"`
		Password string `json:"password"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"msg": "invalid params"})
		return
	}

	token, err := h.svc.Login(req.Username, req.Password)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"msg": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"AccessToken": token.AccessToken, "RefreshToken": token.RefreshToken})
}

func (h *AdminHandler) Logout(c *gin.Context) {
	adminID, ok := middleware.AdminID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"msg": "unauthorized"})
		return
	}

	if err := h.svc.Logout(adminID); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"msg": "logout failed"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"msg": "ok"})
}

// TokenRefresh 用 refresh 换新 access
func (h *AdminHandler) TokenRefresh(c *gin.Context) {
	var req struct {
		RefreshToken string `json:"refreshToken"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"msg": "invalid params"})
		return
	}

	token, err := h.svc.Refresh(req.RefreshToken)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"msg": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"AccessToken": token.AccessToken, "RefreshToken": token.RefreshToken})
}

func (h *AdminHandler) ChangePassword(c *gin.Context) {
	var req ChangePasswordReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"msg": "invalid params"})
		return
	}

	adminID, ok := middleware.AdminID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"msg": "unauthorized"})
		return
	}

	if err := h.svc.ChangePassword(adminID, req.OldPassword, req.NewPassword); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"msg": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"msg": "change password successfully"})
}

// CreateThread 建串（管理员专用）
func (h *AdminHandler) CreateThread(c *gin.Context) {
	var req CreateThreadReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"msg": "invalid params"})
		return
	}

	thread, err := h.board.CreateThread(req.ThreadNumber, req.Title, req.Body)
	if err != nil {
		respondErr(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"id": thread.ID, "title": thread.Title})
}

// DeleteThread 删串（级联删回复）
func (h *AdminHandler) DeleteThread(c *gin.Context) {
	threadID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"msg": "スレッドIDが不正です"})
		return
	}
	adminID, _ := middleware.AdminID(c)

	if err := h.modSvc.DeleteThread(adminID, threadID); err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"msg": "スレッドを削除しました"})
}

// DeletePost 逻辑删除单条回复
func (h *AdminHandler) DeletePost(c *gin.Context) {
	postID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"msg": "投稿IDが不正です"})
		return
	}
	adminID, _ := middleware.AdminID(c)

	if err := h.modSvc.DeletePost(adminID, postID); err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"msg": "レスを削除しました"})
}

// AddBan IP 封禁
func (h *AdminHandler) AddBan(c *gin.Context) {
	var req AddBanReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"msg": "invalid params"})
		return
	}
	adminID, _ := middleware.AdminID(c)

	ban, err := h.modSvc.AddBan(adminID, req.IPAddress, req.Reason, req.Duration)
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"id": ban.ID, "msg": "IP規制を追加しました"})
}

// RemoveBan 解除封禁（幂等）
func (h *AdminHandler) RemoveBan(c *gin.Context) {
	banID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"msg": "規制IDが不正です"})
		return
	}
	adminID, _ := middleware.AdminID(c)

	if err := h.modSvc.RemoveBan(adminID, banID); err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"msg": "IP規制を解除しました"})
}

func (h *AdminHandler) ListBans(c *gin.Context) {
	list, err := h.modSvc.ListBans()
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"bans": list})
}

// ListPersonas 发帖表单的人格目录
func (h *AdminHandler) ListPersonas(c *gin.Context) {
	list, err := h.board.Personas()
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"personas": list})
}
