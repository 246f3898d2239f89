package models

import "time"

// Comment 文章评论表
type Comment struct {
	ID          uint      `gorm:"primarykey" json:"id"`              // 主键
	Content     string    `gorm:"not null" json:"content"`           // 评论内容
	AuthorName  string    `gorm:"not null" json:"author_name"`       // 评论人
	AuthorEmail string    `json:"author_email"`                      // 评论人邮箱（可选）
	PostID      uint      `gorm:"not null;index" json:"post_id"`     // 所属文章
	CreatedAt   time.Time `gorm:"index" json:"created_at"`           // 创建时间
}

// TableName 指定表名
func (Comment) TableName() string {
	return "comments"
}
