package routes

import (
	"net/http"

	"notehub_backend/internal/handlers"

	"github.com/gin-gonic/gin"
)

// RegisterRoutes wires every HTTP route. authMW validates the access token;
// verifiedMW additionally requires a confirmed email and guards all note,
// category and tag resources.
func RegisterRoutes(
	router *gin.Engine,
	appHandlers *handlers.AppHandlers,
	authMW gin.HandlerFunc,
	verifiedMW gin.HandlerFunc,
) {
	router.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api := router.Group("/api/v1")

	auth := api.Group("/auth")
	{
		auth.POST("/signup", appHandlers.AuthHandler.Signup)
		auth.POST("/login", appHandlers.AuthHandler.Login)
		auth.POST("/refresh-token", appHandlers.AuthHandler.Refresh)
		auth.POST("/logout", appHandlers.AuthHandler.Logout)
		auth.POST("/verify-email", appHandlers.AuthHandler.VerifyEmail)
		auth.POST("/forgot-password", appHandlers.AuthHandler.ForgotPassword)
		auth.POST("/reset-password", appHandlers.AuthHandler.ResetPassword)

		authed := auth.Group("")
		authed.Use(authMW)
		{
			authed.GET("/me", appHandlers.AuthHandler.Me)
			authed.POST("/send-verification-email", appHandlers.AuthHandler.SendVerificationEmail)
			authed.POST("/change-password", appHandlers.AuthHandler.ChangePassword)
		}
	}

	notes := api.Group("/notes")
	notes.Use(authMW, verifiedMW)
	{
		notes.GET("", appHandlers.NoteHandler.Index)
		notes.POST("", appHandlers.NoteHandler.Create)
		notes.GET("/:id", appHandlers.NoteHandler.Show)
		notes.PATCH("/:id", appHandlers.NoteHandler.Update)
		notes.DELETE("/:id", appHandlers.NoteHandler.Destroy)
		notes.GET("/:id/category", appHandlers.NoteHandler.ShowCategory)
		notes.GET("/:id/tags", appHandlers.NoteHandler.IndexTags)
	}

	categories := api.Group("/categories")
	categories.Use(authMW, verifiedMW)
	{
		categories.GET("", appHandlers.CategoryHandler.Index)
		categories.POST("", appHandlers.CategoryHandler.Create)
		categories.GET("/:id", appHandlers.CategoryHandler.Show)
		categories.PATCH("/:id", appHandlers.CategoryHandler.Update)
		categories.DELETE("/:id", appHandlers.CategoryHandler.Destroy)
		categories.GET("/:id/notes", appHandlers.CategoryHandler.IndexNotes)
	}

	tags := api.Group("/tags")
	tags.Use(authMW, verifiedMW)
	{
		tags.GET("", appHandlers.TagHandler.Index)
		tags.POST("", appHandlers.TagHandler.Create)
		tags.GET("/:id", appHandlers.TagHandler.Show)
		tags.PATCH("/:id", appHandlers.TagHandler.Update)
		tags.DELETE("/:id", appHandlers.TagHandler.Destroy)
		tags.GET("/:id/notes", appHandlers.TagHandler.IndexNotes)
	}
}
