package page

import (
	"context"
	"strings"

	"github.com/simp-lee/cmsbase/internal/domain"
	"github.com/simp-lee/cmsbase/internal/pkg"
)

// CreateInput carries the fields accepted when creating a page.
type CreateInput struct {
	Title     string
	Slug      string
	Content   string
	Published bool
}

// UpdateInput is the typed partial update for a page. Nil fields are left
// unchanged.
type UpdateInput struct {
	Title     *string
	Slug      *string
	Content   *string
	Published *bool
}

// Service defines the business operations for pages.
type Service interface {
	Create(ctx context.Context, in CreateInput) (*domain.Page, error)
	Get(ctx context.Context, id uint) (*domain.Page, error)
	GetBySlug(ctx context.Context, slug string) (*domain.Page, error)
	GetPublishedBySlug(ctx context.Context, slug string) (*domain.Page, error)
	List(ctx context.Context, req domain.PageRequest) (*domain.PageResult[domain.Page], error)
	ListPublished(ctx context.Context, req domain.PageRequest) (*domain.PageResult[domain.Page], error)
	Update(ctx context.Context, id uint, in UpdateInput) (*domain.Page, error)
	Publish(ctx context.Context, id uint) (*domain.Page, error)
	Unpublish(ctx context.Context, id uint) (*domain.Page, error)
	Delete(ctx context.Context, id uint) (*domain.Page, error)
	Restore(ctx context.Context, id uint) (*domain.Page, error)
}

// pageService implements Service.
type pageService struct {
	repo domain.PageContentRepository
}

// NewService creates a new page Service with the given repository.
func NewService(repo domain.PageContentRepository) Service {
	return &pageService{repo: repo}
}

// Create persists a new page. When no slug is supplied one is derived from
// the title and probed until unique.
func (s *pageService) Create(ctx context.Context, in CreateInput) (*domain.Page, error) {
	title := strings.TrimSpace(in.Title)
	if title == "" {
		return nil, domain.NewAppError(domain.CodeValidation, "title is required", nil)
	}

	slug, err := s.resolveSlug(ctx, in.Slug, title, 0)
	if err != nil {
		return nil, err
	}

	page := &domain.Page{
		Title:     title,
		Slug:      slug,
		Content:   in.Content,
		Published: in.Published,
	}
	if err := s.repo.Create(ctx, page); err != nil {
		if domain.IsAlreadyExists(err) {
			return nil, domain.NewAppError(domain.CodeAlreadyExists, "slug already exists", err)
		}
		return nil, err
	}
	return page, nil
}

// Get retrieves an active page by ID.
func (s *pageService) Get(ctx context.Context, id uint) (*domain.Page, error) {
	return s.repo.GetByID(ctx, id)
}

// GetBySlug retrieves an active page by slug, published or not.
func (s *pageService) GetBySlug(ctx context.Context, slug string) (*domain.Page, error) {
	return s.repo.GetBySlug(ctx, slug)
}

// GetPublishedBySlug retrieves a published page by slug. Unpublished pages
// are indistinguishable from missing ones.
func (s *pageService) GetPublishedBySlug(ctx context.Context, slug string) (*domain.Page, error) {
	return s.repo.GetPublishedBySlug(ctx, slug)
}

// List retrieves a page of active pages.
func (s *pageService) List(ctx context.Context, req domain.PageRequest) (*domain.PageResult[domain.Page], error) {
	return s.repo.List(ctx, req)
}

// ListPublished retrieves a page of published pages only.
func (s *pageService) ListPublished(ctx context.Context, req domain.PageRequest) (*domain.PageResult[domain.Page], error) {
	return s.repo.ListPublished(ctx, req)
}

// Update applies a partial update to an active page. Changing the title
// without supplying a slug regenerates the slug from the new title.
func (s *pageService) Update(ctx context.Context, id uint, in UpdateInput) (*domain.Page, error) {
	page, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	titleChanged := false
	if in.Title != nil {
		title := strings.TrimSpace(*in.Title)
		if title == "" {
			return nil, domain.NewAppError(domain.CodeValidation, "title is required", nil)
		}
		titleChanged = title != page.Title
		page.Title = title
	}

	switch {
	case in.Slug != nil && *in.Slug != page.Slug:
		taken, err := s.repo.SlugExists(ctx, *in.Slug, page.ID)
		if err != nil {
			return nil, err
		}
		if taken {
			return nil, domain.NewAppError(domain.CodeAlreadyExists, "slug already exists", nil)
		}
		page.Slug = *in.Slug
	case in.Slug == nil && titleChanged:
		slug, err := pkg.UniqueSlug(ctx, pkg.Slugify(page.Title), func(ctx context.Context, slug string) (bool, error) {
			return s.repo.SlugExists(ctx, slug, page.ID)
		})
		if err != nil {
			return nil, err
		}
		page.Slug = slug
	}

	if in.Content != nil {
		page.Content = *in.Content
	}
	if in.Published != nil {
		page.Published = *in.Published
	}

	if err := s.repo.Update(ctx, page); err != nil {
		if domain.IsAlreadyExists(err) {
			return nil, domain.NewAppError(domain.CodeAlreadyExists, "slug already exists", err)
		}
		return nil, err
	}
	return page, nil
}

// Publish makes a page publicly visible.
func (s *pageService) Publish(ctx context.Context, id uint) (*domain.Page, error) {
	return s.setPublished(ctx, id, true)
}

// Unpublish hides a page from public lookups.
func (s *pageService) Unpublish(ctx context.Context, id uint) (*domain.Page, error) {
	return s.setPublished(ctx, id, false)
}

func (s *pageService) setPublished(ctx context.Context, id uint, published bool) (*domain.Page, error) {
	page, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	page.Published = published
	if err := s.repo.Update(ctx, page); err != nil {
		return nil, err
	}
	return page, nil
}

// Delete soft-deletes an active page and returns its final state.
func (s *pageService) Delete(ctx context.Context, id uint) (*domain.Page, error) {
	if err := s.repo.SoftDelete(ctx, id); err != nil {
		return nil, err
	}
	return s.repo.GetAnyByID(ctx, id)
}

// Restore brings a soft-deleted page back and returns it.
func (s *pageService) Restore(ctx context.Context, id uint) (*domain.Page, error) {
	if err := s.repo.Restore(ctx, id); err != nil {
		return nil, err
	}
	return s.repo.GetByID(ctx, id)
}

// resolveSlug picks the slug for a page: an explicit slug must be free,
// otherwise one is derived from the title and probed until unique.
func (s *pageService) resolveSlug(ctx context.Context, explicit, title string, excludeID uint) (string, error) {
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
