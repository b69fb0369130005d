package repository

import (
	"newsroom-backend/internal/models"

	"gorm.io/gorm"
)

type ArticleRepository interface {
	Create(article *models.Article) error
	GetByID(id uint) (*models.Article, error)
	GetBySlug(slug string) (*models.Article, error)
	ListPublished(params models.ArticleListParams) ([]models.Article, error)
}

type articleRepository struct {
	db *gorm.DB
}

func NewArticleRepository(db *gorm.DB) ArticleRepository {
	return &articleRepository{db: db}
}

func (r *articleRepository) Create(article *models.Article) error {
	return r.db.Create(article).Error
}

func (r *articleRepository) GetByID(id uint) (*models.Article, error) {
	var article models.Article
	err := r.db.First(&article, id).Error
	return &article, err
}

func (r *articleRepository) GetBySlug(slug string) (*models.Article, error) {
	var article models.Article
	err := r.db.Where("slug = ?", slug).First(&article).Error
	return &article, err
}

func (r *articleRepository) ListPublished(params models.ArticleListParams) ([]models.Article, error) {
	query := r.db.Model(&models.Article{}).Where("published = ?", true)

	if params.Category != "" {
		// The filter matches either the category reference or any tag, the
		// same way the public feed treats both as topic labels.
		query = query.Where(
			"category_slug = @label OR EXISTS (SELECT 1 FROM jsonb_array_elements_text(tags) AS tag WHERE tag = @label)",
			map[string]interface{}{"label": params.Category},
		)
	}

	if params.Query != "" {
		pattern := "%" + params.Query + "%"
		query = query.Where(
			"title ILIKE ? OR summary ILIKE ? OR content ILIKE ?",
			pattern, pattern, pattern,
		)
	}

	var articles []models.Article
	err := query.
		Order("COALESCE(published_at, created_at) DESC").
		Limit(params.Limit).
		Find(&articles).Error
	return articles, err
}
