package router

import (
	"time"

	"blogapp/controllers"
	"blogapp/middlewares"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

func SetupRouter() *gin.Engine {
	r := gin.Default()

	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: false,
		MaxAge:           12 * time.Hour,
	}))

	api := r.Group("/api/v1")

	auth := api.Group("/auth")
	{
		auth.POST("/register", controllers.Register)
		auth.POST("/login", controllers.Login)
	}

	blog := api.Group("/blog")
	{
		// 读路径：匿名可访问，带凭证则做个性化装饰
		blog.GET("/bulk", middlewares.OptionalAuthMiddleware(), controllers.GetFeed)
		blog.GET("/tags/filter", middlewares.OptionalAuthMiddleware(), controllers.GetFeedByTag)
		blog.GET("/tags/trend", controllers.GetTrendingTags)
		blog.GET("/:id/comments", controllers.GetComments)
		blog.GET("/:id/views", controllers.GetArticleViews)
		blog.POST("/:id/view", middlewares.OptionalAuthMiddleware(), controllers.RecordView)

		// 写路径：先核验身份，角色/归属判定在各 handler 里重新查库
		authed := blog.Group("", middlewares.AuthMiddleware())
		{
			authed.POST("", controllers.CreateArticle)
			authed.PUT("/:id", controllers.UpdateArticle)
			authed.DELETE("/:id", controllers.DeleteArticle)
			authed.POST("/:id/like", controllers.LikeArticle)
			authed.DELETE("/:id/like", controllers.UnlikeArticle)
			authed.POST("/:id/save", controllers.SaveArticle)
			authed.DELETE("/:id/save", controllers.UnsaveArticle)
			authed.POST("/:id/comments", controllers.CreateComment)
		}
	}

	user := api.Group("/user", middlewares.AuthMiddleware())
	{
		user.POST("/:id/follow", controllers.FollowUser)
		user.DELETE("/:id/follow", controllers.UnfollowUser)
	}

	return r
}
