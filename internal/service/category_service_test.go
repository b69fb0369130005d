package service

import (
	"errors"
	"sort"
	"testing"

	"newsroom-backend/internal/models"
	"newsroom-backend/internal/repository"
	"newsroom-backend/pkg/validator"

	"gorm.io/gorm"
)

func init() {
	validator.Init()
}

// memoryCategoryRepository emulates the unique index on the slug column:
// inserting a duplicate slug fails the same way the translated gorm error
// does against postgres.
type memoryCategoryRepository struct {
	nextID     uint
	categories map[string]*models.Category
}

func newMemoryCategoryRepository() *memoryCategoryRepository {
	return &memoryCategoryRepository{nextID: 1, categories: make(map[string]*models.Category)}
}

func (m *memoryCategoryRepository) Create(category *models.Category) error {
	if _, ok := m.categories[category.Slug]; ok {
		return gorm.ErrDuplicatedKey
	}
	category.ID = m.nextID
	m.nextID++
	stored := *category
	m.categories[category.Slug] = &stored
	return nil
}

func (m *memoryCategoryRepository) GetByID(id uint) (*models.Category, error) {
	for _, category := range m.categories {
		if category.ID == id {
			result := *category
			return &result, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *memoryCategoryRepository) GetBySlug(slug string) (*models.Category, error) {
	if category, ok := m.categories[slug]; ok {
		result := *category
		return &result, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *memoryCategoryRepository) GetAllActive() ([]models.Category, error) {
	var result []models.Category
	for _, category := range m.categories {
		if category.Active {
			result = append(result, *category)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Name < result[j].Name })
	return result, nil
}

var _ repository.CategoryRepository = (*memoryCategoryRepository)(nil)

func TestCategoryService_CreateDerivesSlug(t *testing.T) {
	service := NewCategoryService(newMemoryCategoryRepository(), nil)

	category, err := service.Create(models.CreateCategoryRequest{Name: "Tech & Science"})
	if err != nil {
		t.Fatalf("Create returned error: %v", err)
	}
	if category.Slug != "tech-science" {
		t.Fatalf("expected slug %q, got %q", "tech-science", category.Slug)
	}
	if !category.Active {
		t.Fatalf("new categories should default to active")
	}
}

func TestCategoryService_CreateUsesExplicitSlugVerbatim(t *testing.T) {
	repo := newMemoryCategoryRepository()
	service := NewCategoryService(repo, nil)

	category, err := service.Create(models.CreateCategoryRequest{Name: "World News", Slug: "world"})
	if err != nil {
		t.Fatalf("Create returned error: %v", err)
	}
	if category.Slug != "world" {
		t.Fatalf("explicit slug must be kept verbatim, got %q", category.Slug)
	}

	stored, err := repo.GetBySlug("world")
	if err != nil {
		t.Fatalf("expected persisted record under explicit slug: %v", err)
	}
	if stored.Name != "World News" {
		t.Fatalf("unexpected stored name %q", stored.Name)
	}
}

func TestCategoryService_CreateRejectsDuplicateSlug(t *testing.T) {
	repo := newMemoryCategoryRepository()
	service := NewCategoryService(repo, nil)

	if _, err := service.Create(models.CreateCategoryRequest{Name: "Technology"}); err != nil {
		t.Fatalf("first create failed: %v", err)
	}

	// "Technology" and "technology" normalize to the same slug.
	_, err := service.Create(models.CreateCategoryRequest{Name: "technology"})
	if !errors.Is(err, ErrSlugTaken) {
		t.Fatalf("expected ErrSlugTaken, got %v", err)
	}

	if len(repo.categories) != 1 {
		t.Fatalf("conflict must not persist a record, have %d", len(repo.categories))
	}
}

func TestCategoryService_CreateRejectsDegenerateSlug(t *testing.T) {
	service := NewCategoryService(newMemoryCategoryRepository(), nil)

	_, err := service.Create(models.CreateCategoryRequest{Name: "!!!"})
	if !errors.Is(err, ErrEmptySlug) {
		t.Fatalf("expected ErrEmptySlug, got %v", err)
	}
}

func TestCategoryService_CreateRejectsMalformedExplicitSlug(t *testing.T) {
	service := NewCategoryService(newMemoryCategoryRepository(), nil)

	_, err := service.Create(models.CreateCategoryRequest{Name: "World", Slug: "Not A Slug"})
	if !errors.Is(err, ErrInvalidSlug) {
		t.Fatalf("expected ErrInvalidSlug, got %v", err)
	}
}

func TestCategoryService_GetBySlugNotFound(t *testing.T) {
	service := NewCategoryService(newMemoryCategoryRepository(), nil)

	_, err := service.GetBySlug("missing")
	if !errors.Is(err, ErrCategoryNotFound) {
		t.Fatalf("expected ErrCategoryNotFound, got %v", err)
	}
}

func TestCategoryService_GetAllActiveSorted(t *testing.T) {
	service := NewCategoryService(newMemoryCategoryRepository(), nil)

	for _, name := range []string{"World", "Business", "Sports"} {
		if _, err := service.Create(models.CreateCategoryRequest{Name: name}); err != nil {
			t.Fatalf("create %q failed: %v", name, err)
		}
	}

	categories, err := service.GetAllActive()
	if err != nil {
		t.Fatalf("GetAllActive returned error: %v", err)
	}
	if len(categories) != 3 {
		t.Fatalf("expected 3 categories, got %d", len(categories))
	}
	for i := 1; i < len(categories); i++ {
		if categories[i-1].Name > categories[i].Name {
			t.Fatalf("expected categories sorted by name, got %v", categories)
		}
	}
}
