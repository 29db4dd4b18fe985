package handler

import (
	"net/http"
	"strconv"

	"Debt_BBS/internal/middleware"
	"Debt_BBS/internal/service"

	"github.com/gin-gonic/gin"
)

type BoardHandler struct {
	svc *service.BoardService
}

type SubmitPostReq struct {
	Name    string  `json:"name"`
	Email   string  `json:"email"`
	Body    string  `json:"body"`
	Persona *uint64 `json:"persona"` // 仅管理员会话下生效
}

func NewBoardHandler(svc *service.BoardService) *BoardHandler {
	return &BoardHandler{svc: svc}
}

// ListThreads 串一览，按勢い降序
func (h *BoardHandler) ListThreads(c *gin.Context) {
	list, err := h.svc.ListThreadsByMomentum()
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"threads": list})
}

// GetThread 整串展示（渲染后的正文）
func (h *BoardHandler) GetThread(c *gin.Context) {
	threadID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"msg": "スレッドが見つかりません"})
		return
	}

	page, err := h.svc.ThreadView(threadID, middleware.IsModerator(c))
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, page)
}

// SubmitPost 匿名投稿口。管理员带 token 访问时走管理员路径
func (h *BoardHandler) SubmitPost(c *gin.Context) {
	threadID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"msg": "スレッドIDが不正です"})
		return
	}

	var req SubmitPostReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"msg": "invalid params"})
		return
	}

	isModerator := middleware.IsModerator(c)
	number, err := h.svc.SubmitPost(threadID, c.ClientIP(), isModerator,
		req.Name, req.Email, req.Body, req.Persona)
	if err != nil {
		respondErr(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"post_number": number})
}
