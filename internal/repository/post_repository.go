package repository

import (
	"errors"
	"strings"
	"time"

	"github.com/blogpostapp/backend/internal/models"

	"gorm.io/gorm"
)

// PostRepository 文章数据访问接口
type PostRepository interface {
	List(filter PostListFilter) ([]models.Post, int64, error)
	GetByID(id uint) (*models.Post, error)
	GetBySlug(slug string) (*models.Post, error)
	Create(post *models.Post) error
	Update(post *models.Post) error
	Delete(id uint) error
	CountBySlug(slug string, excludeID *uint) (int64, error)
	CountByStatus(status string) (int64, error)
	DistinctTagsByStatus(status string) ([]string, error)
	IncrementViewCount(id uint) (int64, error)
	TransitionStatus(id uint, status string, now time.Time) (int64, error)
	Transaction(fn func(tx *gorm.DB) error) error
	WithTx(tx *gorm.DB) PostRepository
}

// GormPostRepository GORM 实现
type GormPostRepository struct {
	db *gorm.DB
}

// NewPostRepository 创建文章仓库
func NewPostRepository(db *gorm.DB) *GormPostRepository {
	return &GormPostRepository{db: db}
}

// WithTx 返回绑定事务的仓库
func (r *GormPostRepository) WithTx(tx *gorm.DB) PostRepository {
	if tx == nil {
		return r
	}
	return &GormPostRepository{db: tx}
}

// Transaction 在单个事务内执行 fn
func (r *GormPostRepository) Transaction(fn func(tx *gorm.DB) error) error {
	return r.db.Transaction(fn)
}

// List 文章列表，返回当前页数据与总数
func (r *GormPostRepository) List(filter PostListFilter) ([]models.Post, int64, error) {
	query := r.db.Model(&models.Post{})

	if status := strings.TrimSpace(filter.Status); status != "" {
		query = query.Where("posts.status = ?", status)
	}
	if author := strings.TrimSpace(filter.AuthorContains); author != "" {
		query = query.Where("LOWER(posts.author) LIKE ?", "%"+strings.ToLower(author)+"%")
	}
	if keyword := strings.TrimSpace(filter.Keyword); keyword != "" {
		like := "%" + strings.ToLower(keyword) + "%"
		query = query.Where("LOWER(posts.title) LIKE ? OR LOWER(posts.content) LIKE ?", like, like)
	}
	if len(filter.Tags) > 0 {
		// 标签交集通过子查询匹配，避免 JOIN 产生重复行
		sub := r.db.Model(&models.PostTag{}).Select("post_id").Where("tag IN ?", filter.Tags)
		query = query.Where("posts.id IN (?)", sub)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	query = applyPagination(query, filter.Page, filter.PageSize)

	var posts []models.Post
	if err := query.Order(resolveOrderClause(filter.SortBy, filter.SortDir)).Find(&posts).Error; err != nil {
		return nil, 0, err
	}
	if err := r.loadTags(posts); err != nil {
		return nil, 0, err
	}
	return posts, total, nil
}

// GetByID 根据 ID 获取文章，未命中返回 nil
func (r *GormPostRepository) GetByID(id uint) (*models.Post, error) {
	var post models.Post
	if err := r.db.First(&post, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	if err := r.loadTagsInto(&post); err != nil {
		return nil, err
	}
	return &post, nil
}

// GetBySlug 根据 slug 获取文章，未命中返回 nil
func (r *GormPostRepository) GetBySlug(slug string) (*models.Post, error) {
	var post models.Post
	if err := r.db.Where("slug = ?", slug).First(&post).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	if err := r.loadTagsInto(&post); err != nil {
		return nil, err
	}
	return &post, nil
}

// Create 创建文章及其标签（单事务）
func (r *GormPostRepository) Create(post *models.Post) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(post).Error; err != nil {
			return err
		}
		return replaceTags(tx, post.ID, post.Tags)
	})
}

// Update 保存文章并整体替换标签（单事务）
func (r *GormPostRepository) Update(post *models.Post) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Save(post).Error; err != nil {
			return err
		}
		if err := tx.Where("post_id = ?", post.ID).Delete(&models.PostTag{}).Error; err != nil {
			return err
		}
		return replaceTags(tx, post.ID, post.Tags)
	})
}

// Delete 删除文章，级联删除评论与标签（单事务）
func (r *GormPostRepository) Delete(id uint) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("post_id = ?", id).Delete(&models.Comment{}).Error; err != nil {
			return err
		}
		if err := tx.Where("post_id = ?", id).Delete(&models.PostTag{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Post{}, id).Error
	})
}

// CountBySlug 统计 slug 数量，可排除指定文章
func (r *GormPostRepository) CountBySlug(slug string, excludeID *uint) (int64, error) {
	var count int64
	query := r.db.Model(&models.Post{}).Where("slug = ?", slug)
	if excludeID != nil {
		query = query.Where("id != ?", *excludeID)
	}
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// CountByStatus 统计指定状态的文章数
func (r *GormPostRepository) CountByStatus(status string) (int64, error) {
	var count int64
	if err := r.db.Model(&models.Post{}).Where("status = ?", status).Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// DistinctTagsByStatus 查询指定状态文章的全部去重标签
func (r *GormPostRepository) DistinctTagsByStatus(status string) ([]string, error) {
	tags := make([]string, 0)
	err := r.db.Model(&models.PostTag{}).
		Distinct("post_tags.tag").
		Joins("JOIN posts ON posts.id = post_tags.post_id").
		Where("posts.status = ?", status).
		Order("post_tags.tag").
		Pluck("post_tags.tag", &tags).Error
	if err != nil {
		return nil, err
	}
	return tags, nil
}

// IncrementViewCount 浏览量原子加一，返回受影响行数
func (r *GormPostRepository) IncrementViewCount(id uint) (int64, error) {
	result := r.db.Model(&models.Post{}).
		Where("id = ?", id).
		UpdateColumn("view_count", gorm.Expr("view_count + 1"))
	return result.RowsAffected, result.Error
}

// TransitionStatus 原子更新状态；发布时间仅在首次发布时写入
func (r *GormPostRepository) TransitionStatus(id uint, status string, now time.Time) (int64, error) {
	updates := map[string]interface{}{
		"status":     status,
		"updated_at": now,
	}
	if status == models.PostStatusPublished {
		updates["published_at"] = gorm.Expr("COALESCE(published_at, ?)", now)
	}
	result := r.db.Model(&models.Post{}).Where("id = ?", id).Updates(updates)
	return result.RowsAffected, result.Error
}

func replaceTags(tx *gorm.DB, postID uint, tags []string) error {
	rows := buildTagRows(postID, tags)
	if len(rows) == 0 {
		return nil
	}
	return tx.Create(&rows).Error
}

// buildTagRows 去重并丢弃空白标签
func buildTagRows(postID uint, tags []string) []models.PostTag {
	seen := make(map[string]struct{}, len(tags))
	rows := make([]models.PostTag, 0, len(tags))
	for _, tag := range tags {
		trimmed := strings.TrimSpace(tag)
		if trimmed == "" {
			continue
		}
		if _, ok := seen[trimmed]; ok {
			continue
		}
		seen[trimmed] = struct{}{}
		rows = append(rows, models.PostTag{PostID: postID, Tag: trimmed})
	}
	return rows
}

func (r *GormPostRepository) loadTagsInto(post *models.Post) error {
	if post == nil {
		return nil
	}
	tags := make([]string, 0)
	err := r.db.Model(&models.PostTag{}).
		Where("post_id = ?", post.ID).
		Order("tag").
		Pluck("tag", &tags).Error
	if err != nil {
		return err
	}
	post.Tags = tags
	return nil
}

func (r *GormPostRepository) loadTags(posts []models.Post) error {
	if len(posts) == 0 {
		return nil
	}
	ids := make([]uint, 0, len(posts))
	for i := range posts {
		ids = append(ids, posts[i].ID)
	}
	var rows []models.PostTag
	if err := r.db.Where("post_id IN ?", ids).Order("tag").Find(&rows).Error; err != nil {
		return err
	}
	byPost := make(map[uint][]string, len(posts))
	for _, row := range rows {
		byPost[row.PostID] = append(byPost[row.PostID], row.Tag)
	}
	for i := range posts {
		tags := byPost[posts[i].ID]
		if tags == nil {
			tags = make([]string, 0)
		}
		posts[i].Tags = tags
	}
	return nil
}
