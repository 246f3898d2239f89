package models

import (
	"regexp"
	"strings"
	"time"
)

// 文章状态
const (
	PostStatusDraft     = "DRAFT"
	PostStatusPublished = "PUBLISHED"
	PostStatusArchived  = "ARCHIVED"
)

// Post 博客文章表
type Post struct {
	ID          uint       `gorm:"primarykey" json:"id"`                       // 主键
	Title       string     `gorm:"not null" json:"title"`                      // 标题
	Slug        string     `gorm:"uniqueIndex;not null" json:"slug"`           // 唯一标识，由标题生成
	Content     string     `gorm:"type:text;not null" json:"content"`          // 正文
	Author      string     `gorm:"not null;index" json:"author"`               // 作者
	Summary     string     `json:"summary"`                                    // 摘要
	Status      string     `gorm:"not null;index;default:DRAFT" json:"status"` // DRAFT/PUBLISHED/ARCHIVED
	ViewCount   int64      `gorm:"not null;default:0" json:"view_count"`       // 浏览量
	CreatedAt   time.Time  `gorm:"index" json:"created_at"`                    // 创建时间
	UpdatedAt   time.Time  `json:"updated_at"`                                 // 更新时间
	PublishedAt *time.Time `json:"published_at"`                               // 首次发布时间，只写一次

	// 标签通过 post_tags 表持久化，读写由仓库层负责
	Tags []string `gorm:"-" json:"tags"`
}

// TableName 指定表名
func (Post) TableName() string {
	return "posts"
}

// PostTag 文章标签关联表
type PostTag struct {
	ID     uint   `gorm:"primarykey"`
	PostID uint   `gorm:"not null;index:idx_post_tags_post_id;index:idx_post_tags_post_tag,unique"`
	Tag    string `gorm:"not null;index;index:idx_post_tags_post_tag,unique"`
}

// TableName 指定表名
func (PostTag) TableName() string {
	return "post_tags"
}

// IsValidPostStatus 判断状态取值是否合法
func IsValidPostStatus(status string) bool {
	switch status {
	case PostStatusDraft, PostStatusPublished, PostStatusArchived:
		return true
	}
	return false
}

var (
	slugStripPattern    = regexp.MustCompile(`[^a-z0-9\s]`)
	slugSpacePattern    = regexp.MustCompile(`\s+`)
	slugCollapsePattern = regexp.MustCompile(`-+`)
)

// DeriveSlug 由标题生成 URL 标识：小写、去除非字母数字、空白折叠为连字符
func DeriveSlug(title string) string {
	slug := strings.ToLower(title)
	slug = slugStripPattern.ReplaceAllString(slug, "")
	slug = slugSpacePattern.ReplaceAllString(slug, "-")
	slug = slugCollapsePattern.ReplaceAllString(slug, "-")
	return strings.Trim(slug, "-")
}

// SetStatus 变更文章状态，首次发布时记录发布时间（此后不再覆盖）
func (p *Post) SetStatus(status string, now time.Time) {
	p.Status = status
	if status == PostStatusPublished && p.PublishedAt == nil {
		publishedAt := now
		p.PublishedAt = &publishedAt
	}
}

// IncrementViewCount 浏览量加一（并发安全由仓库层的原子更新保证）
func (p *Post) IncrementViewCount() {
	p.ViewCount++
}
