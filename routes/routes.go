package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"inkpost/controllers"
	"inkpost/handlers"
	"inkpost/middleware"
	"inkpost/utils"
)

type Controllers struct {
	Auth      *controllers.AuthController
	Blogs     *controllers.BlogController
	Users     *controllers.UserController
	WebSocket *handlers.WebSocketHandler
}

func SetupRoutes(r *gin.Engine, jwt *utils.JWTManager, ctrl Controllers) {
	authRequired := middleware.AuthRequired(jwt)
	authOptional := middleware.AuthOptional(jwt)

	api := r.Group("/api/v1")
	{
		api.GET("/health", func(c *gin.Context) {
			c.JSON(http.StatusOK, gin.H{"status": "ok"})
		})

		auth := api.Group("/auth")
		{
			auth.POST("/register", ctrl.Auth.Register)
			auth.POST("/login", ctrl.Auth.Login)
			auth.POST("/logout", ctrl.Auth.Logout)
			auth.GET("/me", authRequired, ctrl.Auth.Me)
			auth.GET("/ws", authRequired, ctrl.WebSocket.HandleWebSocket)
		}

		blogs := api.Group("/blogs")
		{
			blogs.GET("", authOptional, ctrl.Blogs.ListBlogs)
			blogs.GET("/id/:id", authOptional, ctrl.Blogs.GetBlogByID)
			blogs.GET("/:slug", authOptional, ctrl.Blogs.GetBlogBySlug)
			blogs.POST("", authRequired, ctrl.Blogs.CreateBlog)
			blogs.PUT("/:id", authRequired, ctrl.Blogs.UpdateBlog)
			blogs.DELETE("/:id", authRequired, ctrl.Blogs.DeleteBlog)
			blogs.POST("/:id/like", authRequired, ctrl.Blogs.ToggleLike)
		}

		users := api.Group("/users")
		{
			users.PUT("/profile", authRequired, ctrl.Users.UpdateProfile)
			users.POST("/deactivate", authRequired, ctrl.Users.Deactivate)
			users.GET("/:username", authOptional, ctrl.Users.GetProfile)
		}
	}

	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
}
