package router

import (
	"fmt"
	"strings"

	"github.com/blogpostapp/backend/internal/cache"
	"github.com/blogpostapp/backend/internal/config"
	apihandlers "github.com/blogpostapp/backend/internal/http/handlers/api"
	"github.com/blogpostapp/backend/internal/logger"
	"github.com/blogpostapp/backend/internal/provider"

	"github.com/gin-gonic/gin"
)

// SetupRouter 初始化路由
func SetupRouter(cfg *config.Config, c *provider.Container) *gin.Engine {
	log := logger.L
	if log == nil {
		log = logger.Init(cfg.Server.Mode, cfg.Log.ToLoggerOptions())
	}
	r := gin.New()

	handler := apihandlers.New(c)

	redisPrefix := strings.TrimSpace(cfg.Redis.Prefix)
	if redisPrefix == "" {
		redisPrefix = "blog"
	}
	commentRule := RateLimitRule{
		Prefix:        fmt.Sprintf("%s:rate:comment", redisPrefix),
		WindowSeconds: cfg.Security.CommentRateLimit.WindowSeconds,
		MaxRequests:   cfg.Security.CommentRateLimit.MaxRequests,
	}
	redisClient := cache.Client()

	// 中间件
	r.Use(gin.Recovery())
	r.Use(RequestIDMiddleware())
	r.Use(LoggerMiddleware(log))
	r.Use(CORSMiddleware(cfg.CORS))

	// API 路由组
	apiV1 := r.Group("/api/v1")
	{
		posts := apiV1.Group("/posts")
		{
			posts.GET("", handler.GetAllPosts)
			posts.GET("/published", handler.GetPublishedPosts)
			posts.GET("/slug/:slug", handler.GetPostBySlug)
			posts.GET("/author/:author", handler.GetPostsByAuthor)
			posts.GET("/search", handler.SearchPosts)
			posts.GET("/tags", handler.GetPostsByTags)
			posts.GET("/tags/all", handler.GetAllTags)
			posts.GET("/status/:status", handler.GetPostsByStatus)
			posts.GET("/stats/count", handler.GetPostCount)
			posts.GET("/:id", handler.GetPostByID)
			posts.POST("", handler.CreatePost)
			posts.PUT("/:id", handler.UpdatePost)
			posts.PATCH("/:id/publish", handler.PublishPost)
			posts.PATCH("/:id/archive", handler.ArchivePost)
			posts.DELETE("/:id", handler.DeletePost)
		}

		comments := apiV1.Group("/comments")
		{
			comments.GET("/post/:postId", handler.GetCommentsByPostID)
			comments.GET("/post/:postId/count", handler.GetCommentCountByPostID)
			comments.POST("/post/:postId",
				RateLimitMiddleware(redisClient, commentRule, KeyByIP),
				handler.CreateComment)
			comments.GET("/:id", handler.GetCommentByID)
			comments.PUT("/:id", handler.UpdateComment)
			comments.DELETE("/:id", handler.DeleteComment)
		}
	}

	// 健康检查
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	return r
}
