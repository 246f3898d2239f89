package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/blogpostapp/backend/internal/models"
	"github.com/blogpostapp/backend/internal/repository"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
)

func setupPostServiceTest(t *testing.T) (*PostService, *gorm.DB) {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite failed: %v", err)
	}
	if err := db.AutoMigrate(&models.Post{}, &models.PostTag{}, &models.Comment{}); err != nil {
		t.Fatalf("migrate failed: %v", err)
	}
	return NewPostService(repository.NewPostRepository(db)), db
}

func validCreateInput() CreatePostInput {
	return CreatePostInput{
		Title:   "Welcome to Our Blog",
		Content: "This is a long enough content body.",
		Author:  "alice",
		Summary: "intro",
		Tags:    []string{"go", "web"},
	}
}

func TestCreatePostDefaultsAndSlug(t *testing.T) {
	svc, _ := setupPostServiceTest(t)
	ctx := context.Background()

	post, err := svc.CreatePost(ctx, validCreateInput())
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if post.Status != models.PostStatusDraft {
		t.Fatalf("default status want DRAFT got %s", post.Status)
	}
	if post.Slug != "welcome-to-our-blog" {
		t.Fatalf("slug want welcome-to-our-blog got %s", post.Slug)
	}
	if post.ViewCount != 0 {
		t.Fatalf("new post view count want 0 got %d", post.ViewCount)
	}
	if post.PublishedAt != nil {
		t.Fatalf("draft should have no published_at")
	}

	got, err := svc.GetPostByID(post.ID)
	if err != nil {
		t.Fatalf("round trip get failed: %v", err)
	}
	if got.Title != post.Title || len(got.Tags) != 2 {
		t.Fatalf("round trip mismatch: %v", got)
	}
}

func TestCreatePostCollectsAllViolations(t *testing.T) {
	svc, db := setupPostServiceTest(t)

	_, err := svc.CreatePost(context.Background(), CreatePostInput{
		Title:   "hi",
		Content: "short",
		Author:  "x",
		Summary: strings.Repeat("s", 201),
	})
	ve, ok := AsValidationError(err)
	if !ok {
		t.Fatalf("want validation error got %v", err)
	}
	if len(ve.Violations) != 4 {
		t.Fatalf("want 4 violations got %d: %v", len(ve.Violations), ve.Violations)
	}
	wantMessages := map[string]string{
		"title":   "Title must be between 5 and 100 characters",
		"content": "Content must be at least 10 characters",
		"author":  "Author name must be between 2 and 50 characters",
		"summary": "Summary cannot exceed 200 characters",
	}
	for _, v := range ve.Violations {
		if wantMessages[v.Field] != v.Message {
			t.Fatalf("field %s message want %q got %q", v.Field, wantMessages[v.Field], v.Message)
		}
	}

	var count int64
	if err := db.Model(&models.Post{}).Count(&count).Error; err != nil {
		t.Fatalf("count failed: %v", err)
	}
	if count != 0 {
		t.Fatalf("invalid input must not persist, got %d posts", count)
	}
}

func TestCreatePostRejectsInvalidStatus(t *testing.T) {
	svc, _ := setupPostServiceTest(t)
	input := validCreateInput()
	input.Status = "REMOVED"

	_, err := svc.CreatePost(context.Background(), input)
	if !errors.Is(err, ErrInvalidStatus) {
		t.Fatalf("want ErrInvalidStatus got %v", err)
	}
}

func TestCreatePostSlugCollisionAppendsSuffix(t *testing.T) {
	svc, _ := setupPostServiceTest(t)
	ctx := context.Background()

	first, err := svc.CreatePost(ctx, validCreateInput())
	if err != nil {
		t.Fatalf("create first failed: %v", err)
	}
	second, err := svc.CreatePost(ctx, validCreateInput())
	if err != nil {
		t.Fatalf("create second failed: %v", err)
	}
	third, err := svc.CreatePost(ctx, validCreateInput())
	if err != nil {
		t.Fatalf("create third failed: %v", err)
	}

	if first.Slug != "welcome-to-our-blog" || second.Slug != "welcome-to-our-blog-2" || third.Slug != "welcome-to-our-blog-3" {
		t.Fatalf("slug sequence wrong: %s / %s / %s", first.Slug, second.Slug, third.Slug)
	}
}

func TestUpdatePostPartialFieldsAndSlugRegeneration(t *testing.T) {
	svc, _ := setupPostServiceTest(t)
	ctx := context.Background()

	post, err := svc.CreatePost(ctx, validCreateInput())
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}

	newSummary := "updated summary"
	updated, err := svc.UpdatePost(ctx, post.ID, UpdatePostInput{Summary: &newSummary})
	if err != nil {
		t.Fatalf("partial update failed: %v", err)
	}
	if updated.Summary != newSummary {
		t.Fatalf("summary want %q got %q", newSummary, updated.Summary)
	}
	if updated.Title != post.Title || updated.Slug != post.Slug {
		t.Fatalf("untouched fields must keep values: %v", updated)
	}

	newTitle := "A Completely New Title"
	updated, err = svc.UpdatePost(ctx, post.ID, UpdatePostInput{Title: &newTitle})
	if err != nil {
		t.Fatalf("title update failed: %v", err)
	}
	if updated.Slug != "a-completely-new-title" {
		t.Fatalf("slug should follow title, got %s", updated.Slug)
	}

	_, err = svc.UpdatePost(ctx, 999, UpdatePostInput{Summary: &newSummary})
	if !errors.Is(err, ErrPostNotFound) {
		t.Fatalf("want ErrPostNotFound got %v", err)
	}
}

func TestUpdatePostRejectsInvalidResult(t *testing.T) {
	svc, _ := setupPostServiceTest(t)
	ctx := context.Background()

	post, err := svc.CreatePost(ctx, validCreateInput())
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}

	badTitle := "hi"
	_, err = svc.UpdatePost(ctx, post.ID, UpdatePostInput{Title: &badTitle})
	if _, ok := AsValidationError(err); !ok {
		t.Fatalf("want validation error got %v", err)
	}

	got, err := svc.GetPostByID(post.ID)
	if err != nil {
		t.Fatalf("get failed: %v", err)
	}
	if got.Title != post.Title {
		t.Fatalf("failed update must not persist, title got %s", got.Title)
	}
}

func TestPublishAndArchiveLifecycle(t *testing.T) {
	svc, _ := setupPostServiceTest(t)
	ctx := context.Background()

	post, err := svc.CreatePost(ctx, validCreateInput())
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}

	published, err := svc.PublishPost(ctx, post.ID)
	if err != nil {
		t.Fatalf("publish failed: %v", err)
	}
	if published.Status != models.PostStatusPublished || published.PublishedAt == nil {
		t.Fatalf("publish result wrong: %v", published)
	}
	firstPublished := *published.PublishedAt

	archived, err := svc.ArchivePost(ctx, post.ID)
	if err != nil {
		t.Fatalf("archive failed: %v", err)
	}
	if archived.Status != models.PostStatusArchived {
		t.Fatalf("archive status wrong: %s", archived.Status)
	}

	republished, err := svc.PublishPost(ctx, post.ID)
	if err != nil {
		t.Fatalf("republish failed: %v", err)
	}
	if !republished.PublishedAt.Equal(firstPublished) {
		t.Fatalf("republish must not move published_at: want %v got %v", firstPublished, republished.PublishedAt)
	}

	if _, err := svc.PublishPost(ctx, 999); !errors.Is(err, ErrPostNotFound) {
		t.Fatalf("publish missing want ErrPostNotFound got %v", err)
	}
	if _, err := svc.ArchivePost(ctx, 999); !errors.Is(err, ErrPostNotFound) {
		t.Fatalf("archive missing want ErrPostNotFound got %v", err)
	}
}

func TestIncrementViewCountAccumulates(t *testing.T) {
	svc, _ := setupPostServiceTest(t)
	ctx := context.Background()

	post, err := svc.CreatePost(ctx, validCreateInput())
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}

	var latest *models.Post
	for i := 0; i < 5; i++ {
		latest, err = svc.IncrementViewCount(post.ID)
		if err != nil {
			t.Fatalf("increment failed: %v", err)
		}
	}
	if latest.ViewCount != 5 {
		t.Fatalf("view count want 5 got %d", latest.ViewCount)
	}

	if _, err := svc.IncrementViewCount(999); !errors.Is(err, ErrPostNotFound) {
		t.Fatalf("increment missing want ErrPostNotFound got %v", err)
	}
}

func TestQueryPassthroughsAndCounts(t *testing.T) {
	svc, _ := setupPostServiceTest(t)
	ctx := context.Background()

	input := validCreateInput()
	input.Status = models.PostStatusPublished
	input.Title = "Go Concurrency Deep Dive"
	input.Tags = []string{"go", "concurrency"}
	if _, err := svc.CreatePost(ctx, input); err != nil {
		t.Fatalf("create published failed: %v", err)
	}
	if _, err := svc.CreatePost(ctx, validCreateInput()); err != nil {
		t.Fatalf("create draft failed: %v", err)
	}

	posts, total, err := svc.GetPublishedPosts(ctx, 0, 10)
	if err != nil {
		t.Fatalf("published failed: %v", err)
	}
	if total != 1 || posts[0].Status != models.PostStatusPublished {
		t.Fatalf("published want 1 got total=%d", total)
	}

	_, total, err = svc.SearchPosts("concurrency", 0, 10)
	if err != nil {
		t.Fatalf("search failed: %v", err)
	}
	if total != 1 {
		t.Fatalf("search want 1 got %d", total)
	}

	_, total, err = svc.GetPostsByTags([]string{"concurrency"}, 0, 10)
	if err != nil {
		t.Fatalf("tags failed: %v", err)
	}
	if total != 1 {
		t.Fatalf("tags want 1 got %d", total)
	}

	_, total, err = svc.GetPostsByAuthor("ALI", 0, 10)
	if err != nil {
		t.Fatalf("author failed: %v", err)
	}
	if total != 2 {
		t.Fatalf("author want 2 got %d", total)
	}

	if _, _, err := svc.GetPostsByStatus("bogus", 0, 10); !errors.Is(err, ErrInvalidStatus) {
		t.Fatalf("invalid status want ErrInvalidStatus got %v", err)
	}

	count, err := svc.GetPostCount(models.PostStatusDraft)
	if err != nil {
		t.Fatalf("count failed: %v", err)
	}
	if count != 1 {
		t.Fatalf("draft count want 1 got %d", count)
	}
	if _, err := svc.GetPostCount("bogus"); !errors.Is(err, ErrInvalidStatus) {
		t.Fatalf("count invalid status want ErrInvalidStatus got %v", err)
	}

	tags, err := svc.GetAllTags(ctx)
	if err != nil {
		t.Fatalf("all tags failed: %v", err)
	}
	if len(tags) != 2 {
		t.Fatalf("published tags want 2 got %v", tags)
	}
}

func TestGetPostBySlugAndDelete(t *testing.T) {
	svc, db := setupPostServiceTest(t)
	ctx := context.Background()

	post, err := svc.CreatePost(ctx, validCreateInput())
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if err := db.Create(&models.Comment{Content: "hello", AuthorName: "bob", PostID: post.ID}).Error; err != nil {
		t.Fatalf("create comment failed: %v", err)
	}

	got, err := svc.GetPostBySlug(ctx, post.Slug)
	if err != nil {
		t.Fatalf("get by slug failed: %v", err)
	}
	if got.ID != post.ID {
		t.Fatalf("slug lookup want %d got %d", post.ID, got.ID)
	}

	if _, err := svc.GetPostBySlug(ctx, "missing"); !errors.Is(err, ErrPostNotFound) {
		t.Fatalf("missing slug want ErrPostNotFound got %v", err)
	}

	if err := svc.DeletePost(ctx, post.ID); err != nil {
		t.Fatalf("delete failed: %v", err)
	}
	if _, err := svc.GetPostByID(post.ID); !errors.Is(err, ErrPostNotFound) {
		t.Fatalf("deleted post want ErrPostNotFound got %v", err)
	}
	var comments int64
	if err := db.Model(&models.Comment{}).Where("post_id = ?", post.ID).Count(&comments).Error; err != nil {
		t.Fatalf("count comments failed: %v", err)
	}
	if comments != 0 {
		t.Fatalf("delete should cascade comments, got %d", comments)
	}
	if err := svc.DeletePost(ctx, post.ID); !errors.Is(err, ErrPostNotFound) {
		t.Fatalf("double delete want ErrPostNotFound got %v", err)
	}
}
