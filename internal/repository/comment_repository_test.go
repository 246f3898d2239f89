package repository

import (
	"fmt"
	"testing"
	"time"

	"github.com/blogpostapp/backend/internal/models"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
)

func setupCommentRepositoryTest(t *testing.T) (*GormCommentRepository, *gorm.DB) {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite failed: %v", err)
	}
	if err := db.AutoMigrate(&models.Post{}, &models.Comment{}); err != nil {
		t.Fatalf("migrate failed: %v", err)
	}
	return NewCommentRepository(db), db
}

func TestCommentRepositoryListOrderedByNewest(t *testing.T) {
	repo, db := setupCommentRepositoryTest(t)
	base := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	for i := 0; i < 3; i++ {
		comment := &models.Comment{Content: fmt.Sprintf("comment %d", i), AuthorName: "bob", PostID: 1}
		if err := repo.Create(comment); err != nil {
			t.Fatalf("create comment failed: %v", err)
		}
		if err := db.Model(&models.Comment{}).Where("id = ?", comment.ID).
			UpdateColumn("created_at", base.Add(time.Duration(i)*time.Minute)).Error; err != nil {
			t.Fatalf("backdate comment failed: %v", err)
		}
	}
	// 其他文章的评论不应混入
	if err := repo.Create(&models.Comment{Content: "other", AuthorName: "eve", PostID: 2}); err != nil {
		t.Fatalf("create other comment failed: %v", err)
	}

	comments, total, err := repo.ListByPostID(1, 0, 2)
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if total != 3 || len(comments) != 2 {
		t.Fatalf("want total=3 len=2 got total=%d len=%d", total, len(comments))
	}
	if comments[0].Content != "comment 2" || comments[1].Content != "comment 1" {
		t.Fatalf("comments should be newest first, got %v", comments)
	}

	comments, _, err = repo.ListByPostID(1, 1, 2)
	if err != nil {
		t.Fatalf("list page 1 failed: %v", err)
	}
	if len(comments) != 1 || comments[0].Content != "comment 0" {
		t.Fatalf("page 1 want [comment 0] got %v", comments)
	}
}

func TestCommentRepositoryGetUpdateDelete(t *testing.T) {
	repo, _ := setupCommentRepositoryTest(t)
	comment := &models.Comment{Content: "first", AuthorName: "bob", AuthorEmail: "bob@example.com", PostID: 1}
	if err := repo.Create(comment); err != nil {
		t.Fatalf("create failed: %v", err)
	}

	got, err := repo.GetByID(comment.ID)
	if err != nil {
		t.Fatalf("get failed: %v", err)
	}
	if got == nil || got.Content != "first" {
		t.Fatalf("get want first got %v", got)
	}

	got.Content = "edited"
	if err := repo.Update(got); err != nil {
		t.Fatalf("update failed: %v", err)
	}
	got, err = repo.GetByID(comment.ID)
	if err != nil {
		t.Fatalf("get after update failed: %v", err)
	}
	if got.Content != "edited" {
		t.Fatalf("content want edited got %s", got.Content)
	}

	if err := repo.Delete(comment.ID); err != nil {
		t.Fatalf("delete failed: %v", err)
	}
	got, err = repo.GetByID(comment.ID)
	if err != nil {
		t.Fatalf("get after delete failed: %v", err)
	}
	if got != nil {
		t.Fatalf("deleted comment should be nil")
	}
}

func TestCommentRepositoryCountByPostID(t *testing.T) {
	repo, _ := setupCommentRepositoryTest(t)
	for i := 0; i < 2; i++ {
		if err := repo.Create(&models.Comment{Content: "c", AuthorName: "bob", PostID: 7}); err != nil {
			t.Fatalf("create failed: %v", err)
		}
	}

	count, err := repo.CountByPostID(7)
	if err != nil {
		t.Fatalf("count failed: %v", err)
	}
	if count != 2 {
		t.Fatalf("count want 2 got %d", count)
	}

	count, err = repo.CountByPostID(999)
	if err != nil {
		t.Fatalf("count missing failed: %v", err)
	}
	if count != 0 {
		t.Fatalf("missing post count want 0 got %d", count)
	}
}
