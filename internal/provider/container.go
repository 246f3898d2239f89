package provider

import (
	"github.com/blogpostapp/backend/internal/cache"
	"github.com/blogpostapp/backend/internal/config"
	"github.com/blogpostapp/backend/internal/logger"
	"github.com/blogpostapp/backend/internal/models"
	"github.com/blogpostapp/backend/internal/repository"
	"github.com/blogpostapp/backend/internal/service"
)

// Container 依赖注入容器
type Container struct {
	Config *config.Config

	// Repositories
	PostRepo    repository.PostRepository
	CommentRepo repository.CommentRepository

	// Services
	PostService    *service.PostService
	CommentService *service.CommentService
}

// NewContainer 初始化容器
func NewContainer(cfg *config.Config) *Container {
	// 初始化缓存
	if err := cache.InitRedis(&cfg.Redis); err != nil {
		logger.Warnw("provider_init_redis_failed", "error", err)
	}

	c := &Container{Config: cfg}

	// 1. 初始化 Repositories
	c.initRepositories()

	// 2. 初始化 Services
	c.initServices()

	return c
}

func (c *Container) initRepositories() {
	db := models.DB
	c.PostRepo = repository.NewPostRepository(db)
	c.CommentRepo = repository.NewCommentRepository(db)
}

func (c *Container) initServices() {
	c.PostService = service.NewPostService(c.PostRepo)
	c.CommentService = service.NewCommentService(c.CommentRepo, c.PostRepo)
}
