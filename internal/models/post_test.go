package models

import (
	"testing"
	"time"
)

func TestDeriveSlug(t *testing.T) {
	cases := []struct {
		title string
		want  string
	}{
		{"Welcome to Our Blog", "welcome-to-our-blog"},
		{"Hello, World!", "hello-world"},
		{"  Spaces   Everywhere  ", "spaces-everywhere"},
		{"Go 1.25 发布", "go-125"},
		{"UPPER case TiTle", "upper-case-title"},
		{"dash-in-title", "dashintitle"},
		{"!!!", ""},
	}
	for _, tc := range cases {
		if got := DeriveSlug(tc.title); got != tc.want {
			t.Fatalf("DeriveSlug(%q) want %q got %q", tc.title, tc.want, got)
		}
	}
}

func TestSetStatusRecordsFirstPublishOnly(t *testing.T) {
	post := Post{Status: PostStatusDraft}
	first := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)

	post.SetStatus(PostStatusPublished, first)
	if post.PublishedAt == nil || !post.PublishedAt.Equal(first) {
		t.Fatalf("first publish should record published_at, got %v", post.PublishedAt)
	}

	post.SetStatus(PostStatusArchived, first.Add(time.Hour))
	if post.Status != PostStatusArchived {
		t.Fatalf("status want %s got %s", PostStatusArchived, post.Status)
	}

	post.SetStatus(PostStatusPublished, first.Add(2*time.Hour))
	if !post.PublishedAt.Equal(first) {
		t.Fatalf("republish must not move published_at, got %v", post.PublishedAt)
	}
}

func TestIsValidPostStatus(t *testing.T) {
	for _, status := range []string{PostStatusDraft, PostStatusPublished, PostStatusArchived} {
		if !IsValidPostStatus(status) {
			t.Fatalf("status %s should be valid", status)
		}
	}
	for _, status := range []string{"", "draft", "DELETED"} {
		if IsValidPostStatus(status) {
			t.Fatalf("status %q should be invalid", status)
		}
	}
}
