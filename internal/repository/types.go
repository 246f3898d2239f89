package repository

import "strings"

// PostListFilter 文章列表查询条件
type PostListFilter struct {
	Page     int // 从 0 开始
	PageSize int

	Status         string   // 精确匹配状态
	AuthorContains string   // 作者模糊匹配（不区分大小写）
	Keyword        string   // 标题/正文关键词（不区分大小写），仅配合 Status 使用
	Tags           []string // 标签交集匹配

	SortBy  string // createdAt/updatedAt/title/author/viewCount/publishedAt
	SortDir string // asc/desc，默认 desc
}

// 允许排序的字段与实际列名的映射
var sortableColumns = map[string]string{
	"createdAt":   "created_at",
	"updatedAt":   "updated_at",
	"publishedAt": "published_at",
	"viewCount":   "view_count",
	"title":       "title",
	"author":      "author",
}

// resolveOrderClause 将对外的排序参数转换为 SQL 排序子句，未知字段回落到创建时间
func resolveOrderClause(sortBy, sortDir string) string {
	column, ok := sortableColumns[strings.TrimSpace(sortBy)]
	if !ok {
		column = "created_at"
	}
	// 未指定方向时默认降序，显式指定但不是 desc 的一律按升序处理
	trimmed := strings.TrimSpace(sortDir)
	direction := "ASC"
	if trimmed == "" || strings.EqualFold(trimmed, "desc") {
		direction = "DESC"
	}
	return column + " " + direction
}
