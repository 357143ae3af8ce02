package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/pucknotes/server/internal/app/controllers"
	"github.com/pucknotes/server/internal/app/models/dto"
	"github.com/pucknotes/server/internal/middleware"
)

// Controllers bundles every handler the router mounts
type Controllers struct {
	Auth         *controllers.AuthController
	Notes        *controllers.NoteController
	Comments     *controllers.CommentController
	NoteLikes    *controllers.EngagementController
	CommentLikes *controllers.EngagementController
	Reports      *controllers.ReportController
}

// SetupRouter configures all application routes. Every route sees the acting account,
// if any; the services decide what anonymous callers may do.
func SetupRouter(router *gin.Engine, c Controllers, authMiddleware *middleware.AuthMiddleware) {
	v1 := router.Group("/api/v1")
	v1.Use(authMiddleware.LoadAccount())

	auth := v1.Group("/auth")
	{
		auth.POST("/login", c.Auth.Login)
		auth.POST("/logout", c.Auth.Logout)
	}
	v1.GET("/session", c.Auth.Session)

	notes := v1.Group("/notes")
	{
		notes.GET("", c.Notes.ListNotes)
		notes.POST("", c.Notes.CreateNote)
		notes.GET("/:id", c.Notes.GetNote)
		notes.PUT("/:id", c.Notes.UpdateNote)
		notes.DELETE("/:id", c.Notes.DeleteNote)
		notes.GET("/:id/file", c.Notes.DownloadFile)

		notes.GET("/:id/like", c.NoteLikes.HasLiked)
		notes.PUT("/:id/like", c.NoteLikes.Like)
		notes.DELETE("/:id/like", c.NoteLikes.Unlike)
		notes.GET("/:id/likes", c.NoteLikes.TotalLikes)
	}

	comments := v1.Group("/comments")
	{
		comments.GET("", c.Comments.ListComments)
		comments.POST("", c.Comments.CreateComment)
		comments.GET("/:id", c.Comments.GetComment)
		comments.PUT("/:id", c.Comments.UpdateComment)
		comments.DELETE("/:id", c.Comments.DeleteComment)

		comments.GET("/:id/like", c.CommentLikes.HasLiked)
		comments.PUT("/:id/like", c.CommentLikes.Like)
		comments.DELETE("/:id/like", c.CommentLikes.Unlike)
		comments.GET("/:id/likes", c.CommentLikes.TotalLikes)
	}

	reports := v1.Group("/reports")
	{
		reports.GET("", c.Reports.ListReports)
		reports.POST("", c.Reports.CreateReport)
		reports.DELETE("/:id", c.Reports.DeleteReport)
	}

	// Health check endpoint (public)
	health := func(ctx *gin.Context) {
		ctx.JSON(http.StatusOK, dto.NewSuccessResponse(gin.H{"status": "ok"}))
	}
	router.GET("/health", health)
	v1.GET("/health", health)
}
