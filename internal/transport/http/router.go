package httptransport

import (
	"log/slog"

	"github.com/gin-gonic/gin"
	"github.com/shahadathhs/blogman/internal/auth"
	"github.com/shahadathhs/blogman/internal/domain"
	"github.com/shahadathhs/blogman/internal/transport/http/handler"
	"github.com/shahadathhs/blogman/internal/transport/http/middleware"

	sloggin "github.com/samber/slog-gin"
)

func NewRouter(
	logger *slog.Logger,
	tokens *auth.TokenIssuer,
	authHandler *handler.AuthHandler,
	userHandler *handler.UserHandler,
	blogHandler *handler.BlogHandler,
	tagHandler *handler.TagHandler,
) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.Security())
	r.Use(sloggin.New(logger))
	r.Use(middleware.Metrics())

	authMW := middleware.Auth(tokens)
	adminOnly := middleware.RequireRole(domain.RoleAdmin)

	// Auth routes
	authGroup := r.Group("/auth")
	authGroup.POST("/register", authHandler.Register)
	authGroup.GET("/verify", authHandler.VerifyEmail)
	authGroup.POST("/login", authHandler.Login)
	authGroup.POST("/forgot-password", authHandler.ForgotPassword)
	authGroup.POST("/new-password", authHandler.SetNewPassword)
	authGroup.POST("/reset-password", authMW, authHandler.ResetPassword)
	authGroup.POST("/google", authHandler.GoogleLogin)
	authGroup.POST("/email-login/request", authHandler.SendLoginCode)
	authGroup.POST("/email-login/verify", authHandler.VerifyLoginCode)

	// User routes
	users := r.Group("/users", authMW)
	users.GET("", adminOnly, userHandler.List)
	users.GET("/me/profile", userHandler.GetProfile)
	users.PATCH("/me/profile", userHandler.UpdateProfile)
	users.GET("/:id", userHandler.GetByID)
	users.DELETE("/:id", adminOnly, userHandler.Deactivate)

	// Blog routes — reads are public, writes require a session
	r.GET("/blogs", blogHandler.List)
	r.GET("/blogs/:id", blogHandler.Get)
	blogs := r.Group("/blogs", authMW)
	blogs.POST("", blogHandler.Create)
	blogs.PATCH("/:id", blogHandler.Update)
	blogs.PATCH("/:id/publish", blogHandler.TogglePublish)
	blogs.DELETE("/:id", blogHandler.Delete)

	// Tag routes — reads are public, writes are admin-only
	r.GET("/tags", tagHandler.List)
	r.GET("/tags/search", tagHandler.Search)
	r.GET("/tags/:id", tagHandler.GetByID)
	tags := r.Group("/tags", authMW, adminOnly)
	tags.POST("", tagHandler.Create)
	tags.PATCH("/:id", tagHandler.Update)
	tags.DELETE("/:id", tagHandler.Delete)

	return r
}
