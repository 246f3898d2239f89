package service

import (
	"strings"
	"unicode/utf8"
)

const (
	titleMinLen   = 5
	titleMaxLen   = 100
	contentMinLen = 10
	authorMinLen  = 2
	authorMaxLen  = 50
	summaryMaxLen = 200

	commentMinLen      = 1
	commentMaxLen      = 500
	commentEmailMaxLen = 100
)

// validatePostFields 校验文章字段，返回全部违规项（而非遇错即停）
func validatePostFields(title, content, author, summary string) []FieldViolation {
	violations := make([]FieldViolation, 0)

	if strings.TrimSpace(title) == "" {
		violations = append(violations, FieldViolation{Field: "title", Message: "Title is required"})
	} else if length := utf8.RuneCountInString(title); length < titleMinLen || length > titleMaxLen {
		violations = append(violations, FieldViolation{Field: "title", Message: "Title must be between 5 and 100 characters"})
	}

	if strings.TrimSpace(content) == "" {
		violations = append(violations, FieldViolation{Field: "content", Message: "Content is required"})
	} else if utf8.RuneCountInString(content) < contentMinLen {
		violations = append(violations, FieldViolation{Field: "content", Message: "Content must be at least 10 characters"})
	}

	if strings.TrimSpace(author) == "" {
		violations = append(violations, FieldViolation{Field: "author", Message: "Author is required"})
	} else if length := utf8.RuneCountInString(author); length < authorMinLen || length > authorMaxLen {
		violations = append(violations, FieldViolation{Field: "author", Message: "Author name must be between 2 and 50 characters"})
	}

	if utf8.RuneCountInString(summary) > summaryMaxLen {
		violations = append(violations, FieldViolation{Field: "summary", Message: "Summary cannot exceed 200 characters"})
	}

	return violations
}

// validateCommentFields 校验评论字段，返回全部违规项
func validateCommentFields(content, authorName, authorEmail string) []FieldViolation {
	violations := make([]FieldViolation, 0)

	if strings.TrimSpace(content) == "" {
		violations = append(violations, FieldViolation{Field: "content", Message: "Content is required"})
	} else if length := utf8.RuneCountInString(content); length < commentMinLen || length > commentMaxLen {
		violations = append(violations, FieldViolation{Field: "content", Message: "Comment must be between 1 and 500 characters"})
	}

	if strings.TrimSpace(authorName) == "" {
		violations = append(violations, FieldViolation{Field: "author_name", Message: "Author name is required"})
	} else if length := utf8.RuneCountInString(authorName); length < authorMinLen || length > authorMaxLen {
		violations = append(violations, FieldViolation{Field: "author_name", Message: "Author name must be between 2 and 50 characters"})
	}

	if utf8.RuneCountInString(authorEmail) > commentEmailMaxLen {
		violations = append(violations, FieldViolation{Field: "author_email", Message: "Email cannot exceed 100 characters"})
	}

	return violations
}
