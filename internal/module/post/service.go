package post

import (
	"context"
	"strings"
	"time"

	"github.com/simp-lee/cmsbase/internal/domain"
	"github.com/simp-lee/cmsbase/internal/pkg"
)

// CreateInput carries the fields accepted when creating a post.
type CreateInput struct {
	Title        string
	Slug         string
	Content      string
	Status       domain.PostStatus
	CategoryID   *uint
	CoverMediaID *uint
}

// UpdateInput is the typed partial update for a post. Nil fields are left
// unchanged. A CategoryID or CoverMediaID pointing at zero clears the
// reference; zero is never a valid entity id.
type UpdateInput struct {
	Title        *string
	Slug         *string
	Content      *string
	Status       *domain.PostStatus
	CategoryID   *uint
	CoverMediaID *uint
}

// Service defines the business operations for posts.
type Service interface {
	Create(ctx context.Context, authorID uint, in CreateInput) (*domain.Post, error)
	Get(ctx context.Context, id uint) (*domain.Post, error)
	GetBySlug(ctx context.Context, slug string) (*domain.Post, error)
	List(ctx context.Context, req domain.PageRequest) (*domain.PageResult[domain.Post], error)
	Update(ctx context.Context, id uint, in UpdateInput) (*domain.Post, error)
	Publish(ctx context.Context, id uint) (*domain.Post, error)
	Unpublish(ctx context.Context, id uint) (*domain.Post, error)
	Delete(ctx context.Context, id uint) (*domain.Post, error)
	Restore(ctx context.Context, id uint) (*domain.Post, error)
}

// postService implements Service.
type postService struct {
	repo       domain.PostRepository
	categories domain.CategoryRepository
	media      domain.MediaRepository
}

// NewService creates a new post Service. Category and media repositories
// are used to validate references before a post points at them.
func NewService(repo domain.PostRepository, categories domain.CategoryRepository, media domain.MediaRepository) Service {
	return &postService{repo: repo, categories: categories, media: media}
}

// Create persists a new post authored by the given user. When no slug is
// supplied one is derived from the title and probed until unique. Creating
// directly in published state stamps the publication time.
func (s *postService) Create(ctx context.Context, authorID uint, in CreateInput) (*domain.Post, error) {
	title := strings.TrimSpace(in.Title)
	if title == "" {
		return nil, domain.NewAppError(domain.CodeValidation, "title is required", nil)
	}

	status := in.Status
	if status == "" {
		status = domain.StatusDraft
	}
	if !status.Valid() {
		return nil, domain.NewAppError(domain.CodeValidation, "invalid post status", nil)
	}

	if err := s.checkReferences(ctx, in.CategoryID, in.CoverMediaID); err != nil {
		return nil, err
	}

	slug, err := s.resolveSlug(ctx, in.Slug, title, 0)
	if err != nil {
		return nil, err
	}

	post := &domain.Post{
		Title:        title,
		Slug:         slug,
		Content:      in.Content,
		Status:       status,
		AuthorID:     authorID,
		CategoryID:   in.CategoryID,
		CoverMediaID: in.CoverMediaID,
	}
	if status == domain.StatusPublished {
		now := time.Now()
		post.PublishedAt = &now
	}

	if err := s.repo.Create(ctx, post); err != nil {
		if domain.IsAlreadyExists(err) {
			return nil, domain.NewAppError(domain.CodeAlreadyExists, "slug already exists", err)
		}
		return nil, err
	}
	return post, nil
}

// Get retrieves an active post by ID.
func (s *postService) Get(ctx context.Context, id uint) (*domain.Post, error) {
	return s.repo.GetByID(ctx, id)
}

// GetBySlug retrieves an active post by slug.
func (s *postService) GetBySlug(ctx context.Context, slug string) (*domain.Post, error) {
	return s.repo.GetBySlug(ctx, slug)
}

// List retrieves a page of active posts.
func (s *postService) List(ctx context.Context, req domain.PageRequest) (*domain.PageResult[domain.Post], error) {
	return s.repo.List(ctx, req)
}

// Update applies a partial update to an active post. Changing the title
// without supplying a slug regenerates the slug from the new title.
func (s *postService) Update(ctx context.Context, id uint, in UpdateInput) (*domain.Post, error) {
	post, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := s.checkReferences(ctx, in.CategoryID, in.CoverMediaID); err != nil {
		return nil, err
	}

	titleChanged := false
	if in.Title != nil {
		title := strings.TrimSpace(*in.Title)
		if title == "" {
			return nil, domain.NewAppError(domain.CodeValidation, "title is required", nil)
		}
		titleChanged = title != post.Title
		post.Title = title
	}

	switch {
	case in.Slug != nil && *in.Slug != post.Slug:
		taken, err := s.repo.SlugExists(ctx, *in.Slug, post.ID)
		if err != nil {
			return nil, err
		}
		if taken {
			return nil, domain.NewAppError(domain.CodeAlreadyExists, "slug already exists", nil)
		}
		post.Slug = *in.Slug
	case in.Slug == nil && titleChanged:
		slug, err := pkg.UniqueSlug(ctx, pkg.Slugify(post.Title), func(ctx context.Context, slug string) (bool, error) {
			return s.repo.SlugExists(ctx, slug, post.ID)
		})
		if err != nil {
			return nil, err
		}
		post.Slug = slug
	}

	if in.Content != nil {
		post.Content = *in.Content
	}
	if in.Status != nil {
		if !in.Status.Valid() {
			return nil, domain.NewAppError(domain.CodeValidation, "invalid post status", nil)
		}
		if *in.Status == domain.StatusPublished && post.Status != domain.StatusPublished {
			now := time.Now()
			post.PublishedAt = &now
		}
		post.Status = *in.Status
	}
	if in.CategoryID != nil {
		if *in.CategoryID == 0 {
			post.CategoryID = nil
		} else {
			post.CategoryID = in.CategoryID
		}
	}
	if in.CoverMediaID != nil {
		if *in.CoverMediaID == 0 {
			post.CoverMediaID = nil
		} else {
			post.CoverMediaID = in.CoverMediaID
		}
	}

	if err := s.repo.Update(ctx, post); err != nil {
		if domain.IsAlreadyExists(err) {
			return nil, domain.NewAppError(domain.CodeAlreadyExists, "slug already exists", err)
		}
		return nil, err
	}
	return s.repo.GetByID(ctx, post.ID)
}

// Publish transitions a post to the published state. The publication time
// is stamped on every call, publishing an already-published post included.
func (s *postService) Publish(ctx context.Context, id uint) (*domain.Post, error) {
	post, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	now := time.Now()
	post.Status = domain.StatusPublished
	post.PublishedAt = &now
	if err := s.repo.Update(ctx, post); err != nil {
		return nil, err
	}
	return s.repo.GetByID(ctx, post.ID)
}

// Unpublish reverts a post to draft. The publication time is kept as a
// record of the last time the post was live.
func (s *postService) Unpublish(ctx context.Context, id uint) (*domain.Post, error) {
	post, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	post.Status = domain.StatusDraft
	if err := s.repo.Update(ctx, post); err != nil {
		return nil, err
	}
	return s.repo.GetByID(ctx, post.ID)
}

// Delete soft-deletes an active post and returns its final state.
func (s *postService) Delete(ctx context.Context, id uint) (*domain.Post, error) {
	if err := s.repo.SoftDelete(ctx, id); err != nil {
		return nil, err
	}
	return s.repo.GetAnyByID(ctx, id)
}

// Restore brings a soft-deleted post back and returns it.
func (s *postService) Restore(ctx context.Context, id uint) (*domain.Post, error) {
	if err := s.repo.Restore(ctx, id); err != nil {
		return nil, err
	}
	return s.repo.GetByID(ctx, id)
}

// resolveSlug picks the slug for a post: an explicit slug must be free,
// otherwise one is derived from the title and probed until unique.
func (s *postService) resolveSlug(ctx context.Context, explicit, title string, excludeID uint) (string, error) {
	if explicit != "" {
		taken, err := s.repo.SlugExists(ctx, explicit, excludeID)
		if err != nil {
			return "", err
		}
		if taken {
			return "", domain.NewAppError(domain.CodeAlreadyExists, "slug already exists", nil)
		}
		return explicit, nil
	}
	return pkg.UniqueSlug(ctx, pkg.Slugify(title), func(ctx context.Context, slug string) (bool, error) {
		return s.repo.SlugExists(ctx, slug, excludeID)
	})
}

// checkReferences verifies that the referenced category and cover media
// exist before a post points at them. A zero id means the reference is
// being cleared and needs no lookup.
func (s *postService) checkReferences(ctx context.Context, categoryID, coverMediaID *uint) error {
	if categoryID != nil && *categoryID != 0 {
		if _, err := s.categories.GetByID(ctx, *categoryID); err != nil {
			if domain.IsNotFound(err) {
				return domain.NewAppError(domain.CodeValidation, "category not found", err)
			}
			return err
		}
	}
	if coverMediaID != nil && *coverMediaID != 0 {
		if _, err := s.media.GetByID(ctx, *coverMediaID); err != nil {
			if domain.IsNotFound(err) {
				return domain.NewAppError(domain.CodeValidation, "cover media not found", err)
			}
			return err
		}
	}
	return nil
}
