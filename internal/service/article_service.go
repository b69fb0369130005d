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

const (
	// contentPreviewLen is the list-view content cutoff.
	contentPreviewLen = 500

	defaultListLimit = 20
	maxListLimit     = 100

	recentArticlesCacheKey = "articles:recent"
)

type ArticleService struct {
	articleRepo repository.ArticleRepository
	cache       *cache.Cache

	// now is swappable for tests.
	now func() time.Time
}

func NewArticleService(articleRepo repository.ArticleRepository, cacheService *cache.Cache) *ArticleService {
	return &ArticleService{
		articleRepo: articleRepo,
		cache:       cacheService,
		now:         time.Now,
	}
}

// Create persists a new article. The slug is derived from the title (capped
// at 120 characters) unless the request carries an explicit one, and the
// publish time defaults to now. Uniqueness rides on the slug column's unique
// index; a duplicate key on the insert surfaces as ErrSlugTaken and nothing
// is persisted.
func (s *ArticleService) Create(req models.CreateArticleRequest) (*models.Article, error) {
	if req.Title == "" {
		return nil, errors.New("article title is required")
	}
	if req.Content == "" {
		return nil, errors.New("article content is required")
	}

	if req.ImageURL != "" && !validator.ValidateURL(req.ImageURL) {
		return nil, ErrInvalidImageURL
	}

	slug, err := resolveSlug(req.Slug, req.Title, articleSlugMaxLen)
	if err != nil {
		return nil, err
	}

	publishedAt := req.PublishedAt
	if publishedAt == nil {
		ts := s.now().UTC()
		publishedAt = &ts
	}

	article := &models.Article{
		Title:        validator.SanitizeString(req.Title),
		Slug:         slug,
		Summary:      validator.SanitizeString(req.Summary),
		Content:      validator.SanitizeHTML(req.Content),
		Author:       validator.SanitizeString(req.Author),
		CategorySlug: req.Category,
		ImageURL:     req.ImageURL,
		Tags:         req.Tags,
		Published:    true,
		PublishedAt:  publishedAt,
	}

	if err := s.articleRepo.Create(article); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, fmt.Errorf("article %q: %w", slug, ErrSlugTaken)
		}
		return nil, fmt.Errorf("failed to create article: %w", err)
	}

	if s.cache != nil {
		s.cache.Delete(recentArticlesCacheKey)
	}

	return article, nil
}

// List returns published articles, newest first, with content cut down to a
// preview. Only the unfiltered default listing is cached; filtered queries
// go straight to storage.
func (s *ArticleService) List(params models.ArticleListParams) ([]models.Article, error) {
	if params.Limit <= 0 {
		params.Limit = defaultListLimit
	}
	if params.Limit > maxListLimit {
		params.Limit = maxListLimit
	}

	cacheable := params.Category == "" && params.Query == "" && params.Limit == defaultListLimit
	if cacheable && s.cache != nil {
		var articles []models.Article
		if err := s.cache.Get(recentArticlesCacheKey, &articles); err == nil {
			return articles, nil
		}
	}

	articles, err := s.articleRepo.ListPublished(params)
	if err != nil {
		return nil, err
	}

	for i := range articles {
		articles[i].Content = previewContent(articles[i].Content)
	}

	if cacheable && s.cache != nil {
		s.cache.Set(recentArticlesCacheKey, articles, 5*time.Minute)
	}

	return articles, nil
}

func (s *ArticleService) GetByID(id uint) (*models.Article, error) {
	article, err := s.articleRepo.GetByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrArticleNotFound
		}
		return nil, err
	}
	return article, nil
}

func (s *ArticleService) GetBySlug(slug string) (*models.Article, error) {
	if s.cache != nil {
		var article models.Article
		cacheKey := fmt.Sprintf("article:slug:%s", slug)
		if err := s.cache.Get(cacheKey, &article); err == nil {
			return &article, nil
		}
	}

	article, err := s.articleRepo.GetBySlug(slug)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrArticleNotFound
		}
		return nil, err
	}

	if s.cache != nil {
		s.cache.Set(fmt.Sprintf("article:slug:%s", slug), article, 30*time.Minute)
	}

	return article, nil
}

func previewContent(content string) string {
	runes := []rune(content)
	if len(runes) <= contentPreviewLen {
		return content
	}
	return string(runes[:contentPreviewLen]) + "..."
}
