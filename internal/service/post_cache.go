package service

import (
	"context"
	"fmt"

	"github.com/blogpostapp/backend/internal/cache"
	"github.com/blogpostapp/backend/internal/logger"
	"github.com/blogpostapp/backend/internal/models"
)

// 缓存键约定：发布列表按页参数区分，slug 详情按 slug 区分，标签集合单键。
// 条目不设置过期时间，一致性完全依赖写操作后的显式失效。
const (
	publishedPostsCachePrefix = "posts:published:"
	postSlugCachePrefix       = "posts:slug:"
	allTagsCacheKey           = "posts:tags"
)

func publishedPostsCacheKey(page, pageSize int) string {
	return fmt.Sprintf("%s%d:%d", publishedPostsCachePrefix, page, pageSize)
}

func postSlugCacheKey(slug string) string {
	return postSlugCachePrefix + slug
}

// cachedPostPage 发布列表的缓存载荷
type cachedPostPage struct {
	Items []models.Post `json:"items"`
	Total int64         `json:"total"`
}

func evictPublishedPosts(ctx context.Context) {
	if err := cache.DelPrefix(ctx, publishedPostsCachePrefix); err != nil {
		logger.Warnw("cache_evict_published_posts_failed", "error", err)
	}
}

func evictPostSlugs(ctx context.Context) {
	if err := cache.DelPrefix(ctx, postSlugCachePrefix); err != nil {
		logger.Warnw("cache_evict_post_slugs_failed", "error", err)
	}
}

func evictAllTags(ctx context.Context) {
	if err := cache.Del(ctx, allTagsCacheKey); err != nil {
		logger.Warnw("cache_evict_all_tags_failed", "error", err)
	}
}
