package page

import (
	"context"
	"testing"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"

	"github.com/simp-lee/cmsbase/internal/domain"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}
	if err := db.AutoMigrate(&domain.Page{}); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}

func createPage(t *testing.T, repo domain.PageContentRepository, title, slug string, published bool) *domain.Page {
	t.Helper()
	p := &domain.Page{Title: title, Slug: slug, Published: published}
	if err := repo.Create(context.Background(), p); err != nil {
		t.Fatalf("create page %s: %v", slug, err)
	}
	return p
}

func TestGetPublishedBySlug(t *testing.T) {
	db := setupTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()

	createPage(t, repo, "About", "about", true)
	createPage(t, repo, "Secret Draft", "secret", false)

	got, err := repo.GetPublishedBySlug(ctx, "about")
	if err != nil {
		t.Fatalf("GetPublishedBySlug: %v", err)
	}
	if got.Title != "About" {
		t.Errorf("Title=%q; want About", got.Title)
	}

	// An unpublished page reads as missing through the public lookup.
	if _, err := repo.GetPublishedBySlug(ctx, "secret"); !domain.IsNotFound(err) {
		t.Errorf("expected ErrNotFound for draft, got %v", err)
	}

	// The editorial lookup still resolves it.
	if _, err := repo.GetBySlug(ctx, "secret"); err != nil {
		t.Errorf("GetBySlug should see drafts: %v", err)
	}
}

func TestListPublished(t *testing.T) {
	db := setupTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()

	createPage(t, repo, "About", "about", true)
	createPage(t, repo, "Contact", "contact", true)
	createPage(t, repo, "Draft", "draft", false)

	published, err := repo.ListPublished(ctx, domain.PageRequest{Page: 1, PageSize: 10})
	if err != nil {
		t.Fatalf("ListPublished: %v", err)
	}
	if published.TotalItems != 2 {
		t.Errorf("published Total=%d; want 2", published.TotalItems)
	}

	all, err := repo.List(ctx, domain.PageRequest{Page: 1, PageSize: 10})
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if all.TotalItems != 3 {
		t.Errorf("all Total=%d; want 3", all.TotalItems)
	}
}

func TestSoftDeleteHidesFromPublicLookups(t *testing.T) {
	db := setupTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()

	p := createPage(t, repo, "About", "about", true)
	if err := repo.SoftDelete(ctx, p.ID); err != nil {
		t.Fatalf("SoftDelete: %v", err)
	}

	if _, err := repo.GetPublishedBySlug(ctx, "about"); !domain.IsNotFound(err) {
		t.Errorf("expected ErrNotFound for deleted page, got %v", err)
	}

	published, err := repo.ListPublished(ctx, domain.PageRequest{Page: 1, PageSize: 10})
	if err != nil {
		t.Fatalf("ListPublished: %v", err)
	}
	if published.TotalItems != 0 {
		t.Errorf("Total=%d after delete; want 0", published.TotalItems)
	}
}

func TestRestoreKeepsPublishedFlag(t *testing.T) {
	db := setupTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()

	p := createPage(t, repo, "About", "about", true)
	if err := repo.SoftDelete(ctx, p.ID); err != nil {
		t.Fatalf("SoftDelete: %v", err)
	}
	if err := repo.Restore(ctx, p.ID); err != nil {
		t.Fatalf("Restore: %v", err)
	}

	got, err := repo.GetPublishedBySlug(ctx, "about")
	if err != nil {
		t.Fatalf("GetPublishedBySlug after restore: %v", err)
	}
	if !got.Published {
		t.Error("restore must not clear the published flag")
	}
}
