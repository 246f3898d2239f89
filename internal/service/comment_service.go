package service

import (
	"github.com/blogpostapp/backend/internal/models"
	"github.com/blogpostapp/backend/internal/repository"
)

// CommentService 评论业务服务
type CommentService struct {
	repo     repository.CommentRepository
	postRepo repository.PostRepository
}

// NewCommentService 创建评论服务
func NewCommentService(repo repository.CommentRepository, postRepo repository.PostRepository) *CommentService {
	return &CommentService{repo: repo, postRepo: postRepo}
}

// CommentInput 创建/更新评论输入
type CommentInput struct {
	Content     string
	AuthorName  string
	AuthorEmail string
}

// GetCommentsByPostID 按文章分页获取评论，固定按创建时间倒序
func (s *CommentService) GetCommentsByPostID(postID uint, page, pageSize int) ([]models.Comment, int64, error) {
	return s.repo.ListByPostID(postID, page, pageSize)
}

// GetCommentByID 根据 ID 获取评论
func (s *CommentService) GetCommentByID(id uint) (*models.Comment, error) {
	comment, err := s.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if comment == nil {
		return nil, ErrCommentNotFound
	}
	return comment, nil
}

// CreateComment 在指定文章下创建评论；文章不存在时不产生任何写入
func (s *CommentService) CreateComment(postID uint, input CommentInput) (*models.Comment, error) {
	if violations := validateCommentFields(input.Content, input.AuthorName, input.AuthorEmail); len(violations) > 0 {
		return nil, &ValidationError{Violations: violations}
	}

	post, err := s.postRepo.GetByID(postID)
	if err != nil {
		return nil, err
	}
	if post == nil {
		return nil, ErrPostNotFound
	}

	comment := models.Comment{
		Content:     input.Content,
		AuthorName:  input.AuthorName,
		AuthorEmail: input.AuthorEmail,
		PostID:      post.ID,
	}
	if err := s.repo.Create(&comment); err != nil {
		return nil, err
	}
	return &comment, nil
}

// UpdateComment 更新评论内容；评论与文章的关联不可变更
func (s *CommentService) UpdateComment(id uint, input CommentInput) (*models.Comment, error) {
	if violations := validateCommentFields(input.Content, input.AuthorName, input.AuthorEmail); len(violations) > 0 {
		return nil, &ValidationError{Violations: violations}
	}

	comment, err := s.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if comment == nil {
		return nil, ErrCommentNotFound
	}

	comment.Content = input.Content
	comment.AuthorName = input.AuthorName
	comment.AuthorEmail = input.AuthorEmail

	if err := s.repo.Update(comment); err != nil {
		return nil, err
	}
	return comment, nil
}

// DeleteComment 删除评论
func (s *CommentService) DeleteComment(id uint) error {
	comment, err := s.repo.GetByID(id)
	if err != nil {
		return err
	}
	if comment == nil {
		return ErrCommentNotFound
	}
	return s.repo.Delete(id)
}

// GetCommentCountByPostID 统计文章评论数；文章不存在时返回 0 而非报错
func (s *CommentService) GetCommentCountByPostID(postID uint) (int64, error) {
	return s.repo.CountByPostID(postID)
}
