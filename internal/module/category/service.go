package category

import (
	"context"
	"strings"

	"github.com/simp-lee/cmsbase/internal/domain"
	"github.com/simp-lee/cmsbase/internal/pkg"
)

// UpdateInput is the typed partial update for a category. Nil fields are
// left unchanged.
type UpdateInput struct {
	Name *string
	Slug *string
}

// Service defines the business operations for categories.
type Service interface {
	Create(ctx context.Context, name, slug string) (*domain.Category, error)
	Get(ctx context.Context, id uint) (*domain.Category, error)
	GetBySlug(ctx context.Context, slug string) (*domain.Category, error)
	List(ctx context.Context, req domain.PageRequest) (*domain.PageResult[domain.Category], error)
	Update(ctx context.Context, id uint, in UpdateInput) (*domain.Category, error)
	Delete(ctx context.Context, id uint) (*domain.Category, error)
	Restore(ctx context.Context, id uint) (*domain.Category, error)
}

// categoryService implements Service.
type categoryService struct {
	repo domain.CategoryRepository
}

// NewService creates a new category Service with the given repository.
func NewService(repo domain.CategoryRepository) Service {
	return &categoryService{repo: repo}
}

// Create persists a new category. Category names are unique
// case-insensitively among active categories; the slug is derived from the
// name unless one was supplied.
func (s *categoryService) Create(ctx context.Context, name, slug string) (*domain.Category, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, domain.NewAppError(domain.CodeValidation, "name is required", nil)
	}

	taken, err := s.repo.NameExists(ctx, name, 0)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, domain.NewAppError(domain.CodeAlreadyExists, "category with this name already exists", nil)
	}

	finalSlug, err := s.resolveSlug(ctx, slug, name, 0)
	if err != nil {
		return nil, err
	}

	category := domain.Category{Name: name, Slug: finalSlug}
	if err := s.repo.Create(ctx, &category); err != nil {
		if domain.IsAlreadyExists(err) {
			return nil, domain.NewAppError(domain.CodeAlreadyExists, "slug already exists", err)
		}
		return nil, err
	}
	return &category, nil
}

func (s *categoryService) Get(ctx context.Context, id uint) (*domain.Category, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *categoryService) GetBySlug(ctx context.Context, slug string) (*domain.Category, error) {
	return s.repo.GetBySlug(ctx, slug)
}

func (s *categoryService) List(ctx context.Context, req domain.PageRequest) (*domain.PageResult[domain.Category], error) {
	return s.repo.List(ctx, req)
}

// Update applies a typed partial update. A changed name without an explicit
// slug regenerates the slug; an explicit slug must be free among all other
// category rows.
func (s *categoryService) Update(ctx context.Context, id uint, in UpdateInput) (*domain.Category, error) {
	category, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	nameChanged := false
	if in.Name != nil {
		name := strings.TrimSpace(*in.Name)
		if name == "" {
			return nil, domain.NewAppError(domain.CodeValidation, "name must not be empty", nil)
		}
		if name != category.Name {
			taken, err := s.repo.NameExists(ctx, name, id)
			if err != nil {
				return nil, err
			}
			if taken {
				return nil, domain.NewAppError(domain.CodeAlreadyExists, "category with this name already exists", nil)
			}
			category.Name = name
			nameChanged = true
		}
	}

	switch {
	case in.Slug != nil && *in.Slug != category.Slug:
		taken, err := s.repo.SlugExists(ctx, *in.Slug, id)
		if err != nil {
			return nil, err
		}
		if taken {
			return nil, domain.NewAppError(domain.CodeAlreadyExists, "slug already exists", nil)
		}
		category.Slug = *in.Slug
	case in.Slug == nil && nameChanged:
		slug, err := pkg.UniqueSlug(ctx, pkg.Slugify(category.Name), func(ctx context.Context, s2 string) (bool, error) {
			return s.repo.SlugExists(ctx, s2, id)
		})
		if err != nil {
			return nil, err
		}
		category.Slug = slug
	}

	if err := s.repo.Update(ctx, category); err != nil {
		if domain.IsAlreadyExists(err) {
			return nil, domain.NewAppError(domain.CodeAlreadyExists, "slug already exists", err)
		}
		return nil, err
	}
	return category, nil
}

// Delete soft-deletes the category and returns it as stored. The
// referential guard against active posts lives in the repository, inside
// the delete transaction.
func (s *categoryService) Delete(ctx context.Context, id uint) (*domain.Category, error) {
	if err := s.repo.SoftDelete(ctx, id); err != nil {
		return nil, err
	}
	return s.repo.GetAnyByID(ctx, id)
}

// Restore revives a soft-deleted category.
func (s *categoryService) Restore(ctx context.Context, id uint) (*domain.Category, error) {
	if err := s.repo.Restore(ctx, id); err != nil {
		return nil, err
	}
	return s.repo.GetByID(ctx, id)
}

// resolveSlug returns the explicit slug when given (verifying it is free)
// or derives a unique one from the title.
func (s *categoryService) resolveSlug(ctx context.Context, explicit, title string, excludeID uint) (string, error) {
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
