package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/blogpostapp/backend/internal/cache"
	"github.com/blogpostapp/backend/internal/logger"
	"github.com/blogpostapp/backend/internal/models"
	"github.com/blogpostapp/backend/internal/repository"

	"gorm.io/gorm"
)

// PostService 文章业务服务
type PostService struct {
	repo repository.PostRepository
}

// NewPostService 创建文章服务
func NewPostService(repo repository.PostRepository) *PostService {
	return &PostService{repo: repo}
}

// CreatePostInput 创建文章输入
type CreatePostInput struct {
	Title   string
	Content string
	Author  string
	Summary string
	Status  string // 为空时默认 DRAFT
	Tags    []string
}

// UpdatePostInput 更新文章输入，nil 字段保持原值
type UpdatePostInput struct {
	Title   *string
	Content *string
	Author  *string
	Summary *string
	Status  *string
	Tags    *[]string
}

// GetAllPosts 获取文章列表，支持排序参数
func (s *PostService) GetAllPosts(page, pageSize int, sortBy, sortDir string) ([]models.Post, int64, error) {
	return s.repo.List(repository.PostListFilter{
		Page:     page,
		PageSize: pageSize,
		SortBy:   sortBy,
		SortDir:  sortDir,
	})
}

// GetPublishedPosts 获取已发布文章列表（按创建时间倒序，带缓存）
func (s *PostService) GetPublishedPosts(ctx context.Context, page, pageSize int) ([]models.Post, int64, error) {
	key := publishedPostsCacheKey(page, pageSize)

	var cached cachedPostPage
	if hit, err := cache.GetJSON(ctx, key, &cached); err != nil {
		logger.Warnw("cache_get_published_posts_failed", "error", err)
	} else if hit {
		return cached.Items, cached.Total, nil
	}

	posts, total, err := s.repo.List(repository.PostListFilter{
		Page:     page,
		PageSize: pageSize,
		Status:   models.PostStatusPublished,
	})
	if err != nil {
		return nil, 0, err
	}

	if err := cache.SetJSON(ctx, key, cachedPostPage{Items: posts, Total: total}, 0); err != nil {
		logger.Warnw("cache_set_published_posts_failed", "error", err)
	}
	return posts, total, nil
}

// GetPostByID 根据 ID 获取文章
func (s *PostService) GetPostByID(id uint) (*models.Post, error) {
	post, err := s.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if post == nil {
		return nil, ErrPostNotFound
	}
	return post, nil
}

// GetPostBySlug 根据 slug 获取文章（带缓存，未命中不做负缓存）
func (s *PostService) GetPostBySlug(ctx context.Context, slug string) (*models.Post, error) {
	key := postSlugCacheKey(slug)

	var cached models.Post
	if hit, err := cache.GetJSON(ctx, key, &cached); err != nil {
		logger.Warnw("cache_get_post_by_slug_failed", "error", err)
	} else if hit {
		return &cached, nil
	}

	post, err := s.repo.GetBySlug(slug)
	if err != nil {
		return nil, err
	}
	if post == nil {
		return nil, ErrPostNotFound
	}

	if err := cache.SetJSON(ctx, key, post, 0); err != nil {
		logger.Warnw("cache_set_post_by_slug_failed", "error", err)
	}
	return post, nil
}

// GetPostsByAuthor 按作者模糊查询文章
func (s *PostService) GetPostsByAuthor(author string, page, pageSize int) ([]models.Post, int64, error) {
	return s.repo.List(repository.PostListFilter{
		Page:           page,
		PageSize:       pageSize,
		AuthorContains: author,
	})
}

// SearchPosts 在已发布文章的标题与正文中检索关键词
func (s *PostService) SearchPosts(keyword string, page, pageSize int) ([]models.Post, int64, error) {
	return s.repo.List(repository.PostListFilter{
		Page:     page,
		PageSize: pageSize,
		Status:   models.PostStatusPublished,
		Keyword:  keyword,
	})
}

// GetPostsByTags 按标签查询已发布文章（标签集合取交集）
func (s *PostService) GetPostsByTags(tags []string, page, pageSize int) ([]models.Post, int64, error) {
	return s.repo.List(repository.PostListFilter{
		Page:     page,
		PageSize: pageSize,
		Status:   models.PostStatusPublished,
		Tags:     tags,
	})
}

// GetPostsByStatus 按状态查询文章
func (s *PostService) GetPostsByStatus(status string, page, pageSize int) ([]models.Post, int64, error) {
	if !models.IsValidPostStatus(status) {
		return nil, 0, ErrInvalidStatus
	}
	return s.repo.List(repository.PostListFilter{
		Page:     page,
		PageSize: pageSize,
		Status:   status,
	})
}

// GetAllTags 获取已发布文章的全部标签（带缓存）
func (s *PostService) GetAllTags(ctx context.Context) ([]string, error) {
	var cached []string
	if hit, err := cache.GetJSON(ctx, allTagsCacheKey, &cached); err != nil {
		logger.Warnw("cache_get_all_tags_failed", "error", err)
	} else if hit {
		return cached, nil
	}

	tags, err := s.repo.DistinctTagsByStatus(models.PostStatusPublished)
	if err != nil {
		return nil, err
	}

	if err := cache.SetJSON(ctx, allTagsCacheKey, tags, 0); err != nil {
		logger.Warnw("cache_set_all_tags_failed", "error", err)
	}
	return tags, nil
}

// CreatePost 创建文章；校验通过后生成 slug，写入后失效发布列表与标签缓存
func (s *PostService) CreatePost(ctx context.Context, input CreatePostInput) (*models.Post, error) {
	if violations := validatePostFields(input.Title, input.Content, input.Author, input.Summary); len(violations) > 0 {
		return nil, &ValidationError{Violations: violations}
	}

	status := strings.TrimSpace(input.Status)
	if status == "" {
		status = models.PostStatusDraft
	}
	if !models.IsValidPostStatus(status) {
		return nil, ErrInvalidStatus
	}

	slug, err := s.resolveUniqueSlug(input.Title, nil)
	if err != nil {
		return nil, err
	}

	post := models.Post{
		Title:   input.Title,
		Slug:    slug,
		Content: input.Content,
		Author:  input.Author,
		Summary: input.Summary,
		Tags:    input.Tags,
	}
	post.SetStatus(status, time.Now())

	if err := s.repo.Create(&post); err != nil {
		return nil, err
	}

	evictPublishedPosts(ctx)
	evictAllTags(ctx)
	return &post, nil
}

// UpdatePost 更新文章；仅覆盖传入的字段，标题变更时重新生成 slug
func (s *PostService) UpdatePost(ctx context.Context, id uint, input UpdatePostInput) (*models.Post, error) {
	if input.Status != nil && !models.IsValidPostStatus(*input.Status) {
		return nil, ErrInvalidStatus
	}

	var updated *models.Post
	err := s.repo.Transaction(func(tx *gorm.DB) error {
		repoTx := s.repo.WithTx(tx)

		post, err := repoTx.GetByID(id)
		if err != nil {
			return err
		}
		if post == nil {
			return ErrPostNotFound
		}

		if input.Title != nil && *input.Title != post.Title {
			post.Title = *input.Title
			slug, err := s.slugForRepo(repoTx, *input.Title, &id)
			if err != nil {
				return err
			}
			post.Slug = slug
		}
		if input.Content != nil {
			post.Content = *input.Content
		}
		if input.Author != nil {
			post.Author = *input.Author
		}
		if input.Summary != nil {
			post.Summary = *input.Summary
		}
		if input.Tags != nil {
			post.Tags = *input.Tags
		}
		if input.Status != nil {
			post.SetStatus(*input.Status, time.Now())
		}

		if violations := validatePostFields(post.Title, post.Content, post.Author, post.Summary); len(violations) > 0 {
			return &ValidationError{Violations: violations}
		}

		if err := repoTx.Update(post); err != nil {
			return err
		}
		updated = post
		return nil
	})
	if err != nil {
		return nil, err
	}

	evictPublishedPosts(ctx)
	evictPostSlugs(ctx)
	evictAllTags(ctx)
	return updated, nil
}

// PublishPost 发布文章；首次发布写入发布时间，重复发布不改动
func (s *PostService) PublishPost(ctx context.Context, id uint) (*models.Post, error) {
	return s.transition(ctx, id, models.PostStatusPublished)
}

// ArchivePost 归档文章；可重复调用
func (s *PostService) ArchivePost(ctx context.Context, id uint) (*models.Post, error) {
	return s.transition(ctx, id, models.PostStatusArchived)
}

// transition 状态流转通过单条原子 UPDATE 完成，发布与归档共用。
// 按与原有行为一致的约定，状态流转不失效标签缓存。
func (s *PostService) transition(ctx context.Context, id uint, status string) (*models.Post, error) {
	affected, err := s.repo.TransitionStatus(id, status, time.Now())
	if err != nil {
		return nil, err
	}
	if affected == 0 {
		return nil, ErrPostNotFound
	}

	evictPublishedPosts(ctx)
	evictPostSlugs(ctx)

	post, err := s.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if post == nil {
		return nil, ErrPostNotFound
	}
	return post, nil
}

// DeletePost 删除文章并级联删除评论与标签
func (s *PostService) DeletePost(ctx context.Context, id uint) error {
	post, err := s.repo.GetByID(id)
	if err != nil {
		return err
	}
	if post == nil {
		return ErrPostNotFound
	}

	if err := s.repo.Delete(id); err != nil {
		return err
	}

	evictPublishedPosts(ctx)
	evictPostSlugs(ctx)
	evictAllTags(ctx)
	return nil
}

// IncrementViewCount 浏览量加一，返回更新后的文章。
// 浏览量不参与任何缓存查询的过滤条件，这里不做缓存失效，
// 列表缓存中的计数允许滞后。
func (s *PostService) IncrementViewCount(id uint) (*models.Post, error) {
	affected, err := s.repo.IncrementViewCount(id)
	if err != nil {
		return nil, err
	}
	if affected == 0 {
		return nil, ErrPostNotFound
	}

	post, err := s.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if post == nil {
		return nil, ErrPostNotFound
	}
	return post, nil
}

// GetPostCount 统计指定状态的文章数
func (s *PostService) GetPostCount(status string) (int64, error) {
	if !models.IsValidPostStatus(status) {
		return 0, ErrInvalidStatus
	}
	return s.repo.CountByStatus(status)
}

// resolveUniqueSlug 由标题生成 slug；冲突时追加数字后缀（-2、-3 …）
func (s *PostService) resolveUniqueSlug(title string, excludeID *uint) (string, error) {
	return s.slugForRepo(s.repo, title, excludeID)
}

func (s *PostService) slugForRepo(repo repository.PostRepository, title string, excludeID *uint) (string, error) {
	base := models.DeriveSlug(title)
	candidate := base
	for suffix := 2; ; suffix++ {
		count, err := repo.CountBySlug(candidate, excludeID)
		if err != nil {
			return "", err
		}
		if count == 0 {
			return candidate, nil
		}
		candidate = fmt.Sprintf("%s-%d", base, suffix)
	}
}
