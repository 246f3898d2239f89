package api

import (
	"strconv"
	"strings"

	"github.com/blogpostapp/backend/internal/http/handlers/shared"
	"github.com/blogpostapp/backend/internal/http/response"
	"github.com/blogpostapp/backend/internal/service"

	"github.com/gin-gonic/gin"
)

// parsePagination 读取分页参数（页码从 0 开始）
func parsePagination(c *gin.Context) (int, int) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "0"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("size", "10"))
	return shared.NormalizePagination(page, pageSize)
}

func parseIDParam(c *gin.Context, name string) (uint, bool) {
	raw := c.Param(name)
	id, err := strconv.ParseUint(raw, 10, 64)
	if err != nil || id == 0 {
		respondError(c, response.CodeBadRequest, "invalid id", nil)
		return 0, false
	}
	return uint(id), true
}

// GetAllPosts 获取文章列表，支持排序参数
func (h *Handler) GetAllPosts(c *gin.Context) {
	page, pageSize := parsePagination(c)
	sortBy := c.DefaultQuery("sortBy", "createdAt")
	sortDir := c.DefaultQuery("sortDir", "desc")

	posts, total, err := h.PostService.GetAllPosts(page, pageSize, sortBy, sortDir)
	if err != nil {
		respondError(c, response.CodeInternal, "failed to fetch posts", err)
		return
	}

	response.SuccessWithPage(c, posts, response.NewPagination(page, pageSize, total))
}

// GetPublishedPosts 获取已发布文章列表（带缓存）
func (h *Handler) GetPublishedPosts(c *gin.Context) {
	page, pageSize := parsePagination(c)

	posts, total, err := h.PostService.GetPublishedPosts(c.Request.Context(), page, pageSize)
	if err != nil {
		respondError(c, response.CodeInternal, "failed to fetch posts", err)
		return
	}

	response.SuccessWithPage(c, posts, response.NewPagination(page, pageSize, total))
}

// GetPostByID 获取文章详情；每次访问浏览量加一，返回访问前的快照
func (h *Handler) GetPostByID(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	post, err := h.PostService.GetPostByID(id)
	if err != nil {
		respondWithMappedError(c, err, postErrorRules, "failed to fetch post")
		return
	}

	if _, err := h.PostService.IncrementViewCount(id); err != nil {
		shared.RequestLog(c).Warnw("increment_view_count_failed", "post_id", id, "error", err)
	}

	response.Success(c, post)
}

// GetPostBySlug 根据 slug 获取文章详情（带缓存）
func (h *Handler) GetPostBySlug(c *gin.Context) {
	slug := c.Param("slug")

	post, err := h.PostService.GetPostBySlug(c.Request.Context(), slug)
	if err != nil {
		respondWithMappedError(c, err, postErrorRules, "failed to fetch post")
		return
	}

	response.Success(c, post)
}

// GetPostsByAuthor 按作者模糊查询文章
func (h *Handler) GetPostsByAuthor(c *gin.Context) {
	page, pageSize := parsePagination(c)
	author := c.Param("author")

	posts, total, err := h.PostService.GetPostsByAuthor(author, page, pageSize)
	if err != nil {
		respondError(c, response.CodeInternal, "failed to fetch posts", err)
		return
	}

	response.SuccessWithPage(c, posts, response.NewPagination(page, pageSize, total))
}

// SearchPosts 在已发布文章的标题与正文中检索关键词
func (h *Handler) SearchPosts(c *gin.Context) {
	page, pageSize := parsePagination(c)
	keyword := strings.TrimSpace(c.Query("keyword"))

	posts, total, err := h.PostService.SearchPosts(keyword, page, pageSize)
	if err != nil {
		respondError(c, response.CodeInternal, "failed to search posts", err)
		return
	}

	response.SuccessWithPage(c, posts, response.NewPagination(page, pageSize, total))
}

// GetPostsByTags 按标签查询已发布文章
func (h *Handler) GetPostsByTags(c *gin.Context) {
	page, pageSize := parsePagination(c)

	tags := splitTags(c.Query("tags"))
	if len(tags) == 0 {
		respondError(c, response.CodeBadRequest, "tags parameter is required", nil)
		return
	}

	posts, total, err := h.PostService.GetPostsByTags(tags, page, pageSize)
	if err != nil {
		respondError(c, response.CodeInternal, "failed to fetch posts", err)
		return
	}

	response.SuccessWithPage(c, posts, response.NewPagination(page, pageSize, total))
}

// GetAllTags 获取已发布文章的全部标签（带缓存）
func (h *Handler) GetAllTags(c *gin.Context) {
	tags, err := h.PostService.GetAllTags(c.Request.Context())
	if err != nil {
		respondError(c, response.CodeInternal, "failed to fetch tags", err)
		return
	}

	response.Success(c, tags)
}

// GetPostsByStatus 按状态查询文章
func (h *Handler) GetPostsByStatus(c *gin.Context) {
	page, pageSize := parsePagination(c)
	status := c.Param("status")

	posts, total, err := h.PostService.GetPostsByStatus(status, page, pageSize)
	if err != nil {
		respondWithMappedError(c, err, postErrorRules, "failed to fetch posts")
		return
	}

	response.SuccessWithPage(c, posts, response.NewPagination(page, pageSize, total))
}

// CreatePostRequest 创建文章请求
type CreatePostRequest struct {
	Title   string   `json:"title"`
	Content string   `json:"content"`
	Author  string   `json:"author"`
	Summary string   `json:"summary"`
	Status  string   `json:"status"`
	Tags    []string `json:"tags"`
}

// CreatePost 创建文章
func (h *Handler) CreatePost(c *gin.Context) {
	var req CreatePostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "invalid request body", err)
		return
	}

	post, err := h.PostService.CreatePost(c.Request.Context(), service.CreatePostInput{
		Title:   req.Title,
		Content: req.Content,
		Author:  req.Author,
		Summary: req.Summary,
		Status:  req.Status,
		Tags:    req.Tags,
	})
	if err != nil {
		respondWithMappedError(c, err, postErrorRules, "failed to create post")
		return
	}

	response.Created(c, post)
}

// UpdatePostRequest 更新文章请求，未出现的字段保持原值
type UpdatePostRequest struct {
	Title   *string   `json:"title"`
	Content *string   `json:"content"`
	Author  *string   `json:"author"`
	Summary *string   `json:"summary"`
	Status  *string   `json:"status"`
	Tags    *[]string `json:"tags"`
}

// UpdatePost 更新文章
func (h *Handler) UpdatePost(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req UpdatePostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "invalid request body", err)
		return
	}

	post, err := h.PostService.UpdatePost(c.Request.Context(), id, service.UpdatePostInput{
		Title:   req.Title,
		Content: req.Content,
		Author:  req.Author,
		Summary: req.Summary,
		Status:  req.Status,
		Tags:    req.Tags,
	})
	if err != nil {
		respondWithMappedError(c, err, postErrorRules, "failed to update post")
		return
	}

	response.Success(c, post)
}

// PublishPost 发布文章
func (h *Handler) PublishPost(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	post, err := h.PostService.PublishPost(c.Request.Context(), id)
	if err != nil {
		respondWithMappedError(c, err, postErrorRules, "failed to publish post")
		return
	}

	response.Success(c, post)
}

// ArchivePost 归档文章
func (h *Handler) ArchivePost(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	post, err := h.PostService.ArchivePost(c.Request.Context(), id)
	if err != nil {
		respondWithMappedError(c, err, postErrorRules, "failed to archive post")
		return
	}

	response.Success(c, post)
}

// DeletePost 删除文章及其评论与标签
func (h *Handler) DeletePost(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.PostService.DeletePost(c.Request.Context(), id); err != nil {
		respondWithMappedError(c, err, postErrorRules, "failed to delete post")
		return
	}

	response.Success(c, nil)
}

// GetPostCount 统计指定状态的文章数
func (h *Handler) GetPostCount(c *gin.Context) {
	status := c.Query("status")

	count, err := h.PostService.GetPostCount(status)
	if err != nil {
		respondWithMappedError(c, err, postErrorRules, "failed to count posts")
		return
	}

	response.Success(c, gin.H{"status": status, "count": count})
}

func splitTags(raw string) []string {
	parts := strings.Split(raw, ",")
	tags := make([]string, 0, len(parts))
	for _, part := range parts {
		tag := strings.TrimSpace(part)
		if tag != "" {
			tags = append(tags, tag)
		}
	}
	return tags
}
