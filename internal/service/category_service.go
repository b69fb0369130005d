package service

import (
	"errors"
	"fmt"
	"time"

	"newsroom-backend/internal/models"
	"newsroom-backend/internal/repository"
	"newsroom-backend/pkg/cache"
	"newsroom-backend/pkg/validator"

	"gorm.io/gorm"
)

const categoriesCacheKey = "categories:active"

type CategoryService struct {
	categoryRepo repository.CategoryRepository
	cache        *cache.Cache
}

func NewCategoryService(categoryRepo repository.CategoryRepository, cacheService *cache.Cache) *CategoryService {
	return &CategoryService{
		categoryRepo: categoryRepo,
		cache:        cacheService,
	}
}

// Create persists a new category. Slug uniqueness is enforced by the unique
// index on the slug column: the single insert attempt either succeeds or
// reports a duplicate key, which surfaces as ErrSlugTaken. There is no
// pre-insert existence check, so two concurrent creations with the same
// candidate cannot both succeed.
func (s *CategoryService) Create(req models.CreateCategoryRequest) (*models.Category, error) {
	if req.Name == "" {
		return nil, errors.New("category name is required")
	}

	slug, err := resolveSlug(req.Slug, req.Name, 0)
	if err != nil {
		return nil, err
	}

	category := &models.Category{
		Name:        validator.SanitizeString(req.Name),
		Slug:        slug,
		Description: validator.SanitizeString(req.Description),
		Active:      true,
	}

	if err := s.categoryRepo.Create(category); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, fmt.Errorf("category %q: %w", slug, ErrSlugTaken)
		}
		return nil, fmt.Errorf("failed to create category: %w", err)
	}

	if s.cache != nil {
		s.cache.Delete(categoriesCacheKey)
	}

	return category, nil
}

func (s *CategoryService) GetBySlug(slug string) (*models.Category, error) {
	if s.cache != nil {
		var category models.Category
		cacheKey := fmt.Sprintf("category:slug:%s", slug)
		if err := s.cache.Get(cacheKey, &category); err == nil {
			return &category, nil
		}
	}

	category, err := s.categoryRepo.GetBySlug(slug)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCategoryNotFound
		}
		return nil, err
	}

	if s.cache != nil {
		s.cache.Set(fmt.Sprintf("category:slug:%s", slug), category, 2*time.Hour)
	}

	return category, nil
}

func (s *CategoryService) GetAllActive() ([]models.Category, error) {
	if s.cache != nil {
		var categories []models.Category
		if err := s.cache.Get(categoriesCacheKey, &categories); err == nil {
			return categories, nil
		}
	}

	categories, err := s.categoryRepo.GetAllActive()
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		s.cache.Set(categoriesCacheKey, categories, 2*time.Hour)
	}

	return categories, nil
}
