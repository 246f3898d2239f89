package api

import (
	"github.com/blogpostapp/backend/internal/http/response"
	"github.com/blogpostapp/backend/internal/service"

	"github.com/gin-gonic/gin"
)

// CommentRequest 创建/更新评论请求
type CommentRequest struct {
	Content     string `json:"content"`
	AuthorName  string `json:"author_name"`
	AuthorEmail string `json:"author_email"`
}

func (r CommentRequest) toInput() service.CommentInput {
	return service.CommentInput{
		Content:     r.Content,
		AuthorName:  r.AuthorName,
		AuthorEmail: r.AuthorEmail,
	}
}

// GetCommentsByPostID 按文章分页获取评论（按创建时间倒序）
func (h *Handler) GetCommentsByPostID(c *gin.Context) {
	postID, ok := parseIDParam(c, "postId")
	if !ok {
		return
	}
	page, pageSize := parsePagination(c)

	comments, total, err := h.CommentService.GetCommentsByPostID(postID, page, pageSize)
	if err != nil {
		respondError(c, response.CodeInternal, "failed to fetch comments", err)
		return
	}

	response.SuccessWithPage(c, comments, response.NewPagination(page, pageSize, total))
}

// GetCommentByID 获取评论详情
func (h *Handler) GetCommentByID(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	comment, err := h.CommentService.GetCommentByID(id)
	if err != nil {
		respondWithMappedError(c, err, commentErrorRules, "failed to fetch comment")
		return
	}

	response.Success(c, comment)
}

// CreateComment 在指定文章下创建评论
func (h *Handler) CreateComment(c *gin.Context) {
	postID, ok := parseIDParam(c, "postId")
	if !ok {
		return
	}

	var req CommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "invalid request body", err)
		return
	}

	comment, err := h.CommentService.CreateComment(postID, req.toInput())
	if err != nil {
		respondWithMappedError(c, err, commentErrorRules, "failed to create comment")
		return
	}

	response.Created(c, comment)
}

// UpdateComment 更新评论；评论与文章的关联不可变更
func (h *Handler) UpdateComment(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req CommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "invalid request body", err)
		return
	}

	comment, err := h.CommentService.UpdateComment(id, req.toInput())
	if err != nil {
		respondWithMappedError(c, err, commentErrorRules, "failed to update comment")
		return
	}

	response.Success(c, comment)
}

// DeleteComment 删除评论
func (h *Handler) DeleteComment(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.CommentService.DeleteComment(id); err != nil {
		respondWithMappedError(c, err, commentErrorRules, "failed to delete comment")
		return
	}

	response.Success(c, nil)
}

// GetCommentCountByPostID 统计文章评论数；文章不存在时计数为 0
func (h *Handler) GetCommentCountByPostID(c *gin.Context) {
	postID, ok := parseIDParam(c, "postId")
	if !ok {
		return
	}

	count, err := h.CommentService.GetCommentCountByPostID(postID)
	if err != nil {
		respondError(c, response.CodeInternal, "failed to count comments", err)
		return
	}

	response.Success(c, gin.H{"post_id": postID, "count": count})
}
