package router

import (
	"Debt_BBS/internal/handler"
	"Debt_BBS/internal/middleware"
	"Debt_BBS/internal/service"

	"github.com/gin-gonic/gin"
)

func InitRouter(board *service.BoardService, admin *service.AdminService, mod *service.ModerationService) *gin.Engine {
	r := gin.Default()

	boardHandler := handler.NewBoardHandler(board)
	adminHandler := handler.NewAdminHandler(admin, board, mod)

	// 匿名面接口。OptionalAuth：管理员带 token 访问同一个口
	boardGroup := r.Group("/api/board")
	boardGroup.Use(middleware.OptionalAuthMiddleware())
	{
		boardGroup.GET("/threads", boardHandler.ListThreads)
		boardGroup.GET("/threads/:id", boardHandler.GetThread)
		boardGroup.POST("/threads/:id/posts", boardHandler.SubmitPost)
	}

	// 管理员登录相关
	adminGroup := r.Group("/api/admin")
	{
		adminGroup.POST("/login", adminHandler.Login)
		adminGroup.POST("/token/refresh", adminHandler.TokenRefresh)
	}

	// 管理员登录态接口
	authGroup := r.Group("/api/admin")
	authGroup.Use(middleware.AuthMiddleware())
	{
		authGroup.POST("/logout", adminHandler.Logout)
		authGroup.POST("/change-password", adminHandler.ChangePassword)

		authGroup.POST("/threads", adminHandler.CreateThread)
		authGroup.DELETE("/threads/:id", adminHandler.DeleteThread)
		authGroup.DELETE("/posts/:id", adminHandler.DeletePost)

		authGroup.GET("/bans", adminHandler.ListBans)
		authGroup.POST("/bans", adminHandler.AddBan)
		authGroup.DELETE("/bans/:id", adminHandler.RemoveBan)

		authGroup.GET("/personas", adminHandler.ListPersonas)
	}

	return r
}
