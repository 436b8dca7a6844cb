package router

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/slugnest-dev/slugnest/internal/handlers"
	"github.com/slugnest-dev/slugnest/internal/middleware"
	"github.com/slugnest-dev/slugnest/internal/types"
)

func NewRouter() *gin.Engine {
	r := gin.Default()

	r.Use(cors.New(cors.Config{
		AllowOrigins:     types.AllowedOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "HEAD", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Length", "Content-Type", "Authorization", "Accept", "X-Requested-With"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	r.GET("/health", handlers.HealthCheck)

	listings := r.Group("/listings")
	{
		listings.GET("", handlers.ListHouses)
		listings.POST("", handlers.CreateHouse)
		listings.GET("/:id", handlers.GetHouse)
		listings.PUT("/:id", handlers.UpdateHouse)
		listings.PATCH("/:id", handlers.PatchHouse)
		listings.DELETE("/:id", handlers.DeleteHouse)
	}

	saved := r.Group("/saved", middleware.AuthMiddleware())
	{
		saved.GET("", handlers.ListSavedHouses)
		saved.POST("", handlers.SaveHouse)
		saved.DELETE("/:house_id", handlers.UnsaveHouse)
	}

	auth := r.Group("/auth")
	{
		auth.POST("/register", handlers.Register)
		auth.POST("/login", handlers.Login)
		auth.POST("/logout", handlers.Logout)
		auth.POST("/refresh", handlers.Refresh)
		auth.POST("/password-recovery", handlers.RequestPasswordRecovery)
		auth.POST("/password-reset/confirm", handlers.ConfirmPasswordReset)
		auth.GET("/me", middleware.AuthMiddleware(), handlers.Me)
	}

	return r
}
