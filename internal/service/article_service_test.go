package service

import (
	"errors"
	"sort"
	"strings"
	"testing"
	"time"

	"newsroom-backend/internal/models"
	"newsroom-backend/internal/repository"

	"gorm.io/gorm"
)

type memoryArticleRepository struct {
	nextID   uint
	articles map[string]*models.Article
}

func newMemoryArticleRepository() *memoryArticleRepository {
	return &memoryArticleRepository{nextID: 1, articles: make(map[string]*models.Article)}
}

func (m *memoryArticleRepository) Create(article *models.Article) error {
	if _, ok := m.articles[article.Slug]; ok {
		return gorm.ErrDuplicatedKey
	}
	article.ID = m.nextID
	m.nextID++
	stored := *article
	m.articles[article.Slug] = &stored
	return nil
}

func (m *memoryArticleRepository) GetByID(id uint) (*models.Article, error) {
	for _, article := range m.articles {
		if article.ID == id {
			result := *article
			return &result, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *memoryArticleRepository) GetBySlug(slug string) (*models.Article, error) {
	if article, ok := m.articles[slug]; ok {
		result := *article
		return &result, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *memoryArticleRepository) ListPublished(params models.ArticleListParams) ([]models.Article, error) {
	var result []models.Article
	for _, article := range m.articles {
		if !article.Published {
			continue
		}
		if params.Category != "" && !matchesLabel(article, params.Category) {
			continue
		}
		if params.Query != "" && !strings.Contains(strings.ToLower(article.Title), strings.ToLower(params.Query)) {
			continue
		}
		result = append(result, *article)
	}
	sort.Slice(result, func(i, j int) bool {
		return publishedOrCreated(result[i]).After(publishedOrCreated(result[j]))
	})
	if params.Limit > 0 && len(result) > params.Limit {
		result = result[:params.Limit]
	}
	return result, nil
}

func matchesLabel(article *models.Article, label string) bool {
	if article.CategorySlug == label {
		return true
	}
	for _, tag := range article.Tags {
		if tag == label {
			return true
		}
	}
	return false
}

func publishedOrCreated(article models.Article) time.Time {
	if article.PublishedAt != nil {
		return *article.PublishedAt
	}
	return article.CreatedAt
}

var _ repository.ArticleRepository = (*memoryArticleRepository)(nil)

func newTestArticleService(repo repository.ArticleRepository) *ArticleService {
	return NewArticleService(repo, nil)
}

func TestArticleService_CreateDerivesSlugFromTitle(t *testing.T) {
	service := newTestArticleService(newMemoryArticleRepository())

	article, err := service.Create(models.CreateArticleRequest{
		Title:   "Tech Giants Unveil Next-Gen AI Chips!!",
		Content: "Major semiconductor companies announced...",
		Author:  "News Desk",
	})
	if err != nil {
		t.Fatalf("Create returned error: %v", err)
	}
	if article.Slug != "tech-giants-unveil-next-gen-ai-chips" {
		t.Fatalf("unexpected slug %q", article.Slug)
	}
	if article.PublishedAt == nil {
		t.Fatalf("publish time must default to now")
	}
	if !article.Published {
		t.Fatalf("new articles should default to published")
	}
}

func TestArticleService_CreateTruncatesLongTitles(t *testing.T) {
	service := newTestArticleService(newMemoryArticleRepository())

	// 130-character title; the slug must come out at 120 or fewer with a
	// clean tail.
	title := strings.TrimSpace(strings.Repeat("breaking news ", 10))
	article, err := service.Create(models.CreateArticleRequest{
		Title:   title,
		Content: "body",
		Author:  "desk",
	})
	if err != nil {
		t.Fatalf("Create returned error: %v", err)
	}
	if len(article.Slug) > 120 {
		t.Fatalf("slug exceeds 120 characters: %d", len(article.Slug))
	}
	if strings.HasSuffix(article.Slug, "-") {
		t.Fatalf("slug has a trailing hyphen after truncation: %q", article.Slug)
	}
}

func TestArticleService_CreateKeepsExplicitPublishTime(t *testing.T) {
	service := newTestArticleService(newMemoryArticleRepository())

	ts := time.Date(2025, 3, 14, 9, 0, 0, 0, time.UTC)
	article, err := service.Create(models.CreateArticleRequest{
		Title:       "Markets rally as inflation cools",
		Content:     "Stocks across major indices rose today...",
		Author:      "Finance Team",
		PublishedAt: &ts,
	})
	if err != nil {
		t.Fatalf("Create returned error: %v", err)
	}
	if article.PublishedAt == nil || !article.PublishedAt.Equal(ts) {
		t.Fatalf("expected publish time %v kept, got %v", ts, article.PublishedAt)
	}
}

func TestArticleService_CreateRejectsDuplicateSlug(t *testing.T) {
	repo := newMemoryArticleRepository()
	service := newTestArticleService(repo)

	first := models.CreateArticleRequest{
		Title:   "Historic win in championship final",
		Content: "In a thrilling finale...",
		Author:  "Sports Desk",
	}
	if _, err := service.Create(first); err != nil {
		t.Fatalf("first create failed: %v", err)
	}

	_, err := service.Create(models.CreateArticleRequest{
		Title:   "Historic Win in Championship Final",
		Content: "different body",
		Author:  "Sports Desk",
	})
	if !errors.Is(err, ErrSlugTaken) {
		t.Fatalf("expected ErrSlugTaken, got %v", err)
	}
	if len(repo.articles) != 1 {
		t.Fatalf("conflict must not persist a record, have %d", len(repo.articles))
	}
}

func TestArticleService_ListTruncatesContent(t *testing.T) {
	repo := newMemoryArticleRepository()
	service := newTestArticleService(repo)

	long := strings.Repeat("a", 600)
	if _, err := service.Create(models.CreateArticleRequest{
		Title:   "A very long story",
		Content: long,
		Author:  "desk",
	}); err != nil {
		t.Fatalf("create failed: %v", err)
	}

	articles, err := service.List(models.ArticleListParams{})
	if err != nil {
		t.Fatalf("List returned error: %v", err)
	}
	if len(articles) != 1 {
		t.Fatalf("expected one article, got %d", len(articles))
	}
	if got := articles[0].Content; !strings.HasSuffix(got, "...") || len([]rune(got)) != 503 {
		t.Fatalf("expected 500-char preview with ellipsis, got %d chars", len([]rune(got)))
	}

	stored, err := service.GetBySlug(articles[0].Slug)
	if err != nil {
		t.Fatalf("GetBySlug failed: %v", err)
	}
	if len(stored.Content) != 600 {
		t.Fatalf("detail view must keep the full content, got %d chars", len(stored.Content))
	}
}

func TestArticleService_ListFiltersByCategoryOrTag(t *testing.T) {
	service := newTestArticleService(newMemoryArticleRepository())

	seedArticles := []models.CreateArticleRequest{
		{Title: "Chip breakthrough", Content: "c", Author: "a", Category: "technology"},
		{Title: "Tagged only", Content: "c", Author: "a", Category: "business", Tags: []string{"technology"}},
		{Title: "Unrelated", Content: "c", Author: "a", Category: "sports"},
	}
	for _, req := range seedArticles {
		if _, err := service.Create(req); err != nil {
			t.Fatalf("create %q failed: %v", req.Title, err)
		}
	}

	articles, err := service.List(models.ArticleListParams{Category: "technology"})
	if err != nil {
		t.Fatalf("List returned error: %v", err)
	}
	if len(articles) != 2 {
		t.Fatalf("expected category filter to match category and tags, got %d results", len(articles))
	}
}

func TestArticleService_ListClampsLimit(t *testing.T) {
	repo := newMemoryArticleRepository()
	service := newTestArticleService(repo)

	captured := &limitCapturingRepository{inner: repo}
	service.articleRepo = captured

	if _, err := service.List(models.ArticleListParams{Limit: 10_000}); err != nil {
		t.Fatalf("List returned error: %v", err)
	}
	if captured.lastLimit != 100 {
		t.Fatalf("expected limit clamped to 100, got %d", captured.lastLimit)
	}

	if _, err := service.List(models.ArticleListParams{Query: "x"}); err != nil {
		t.Fatalf("List returned error: %v", err)
	}
	if captured.lastLimit != 20 {
		t.Fatalf("expected default limit 20, got %d", captured.lastLimit)
	}
}

type limitCapturingRepository struct {
	inner     repository.ArticleRepository
	lastLimit int
}

func (r *limitCapturingRepository) Create(article *models.Article) error {
	return r.inner.Create(article)
}

func (r *limitCapturingRepository) GetByID(id uint) (*models.Article, error) {
	return r.inner.GetByID(id)
}

func (r *limitCapturingRepository) GetBySlug(slug string) (*models.Article, error) {
	return r.inner.GetBySlug(slug)
}

func (r *limitCapturingRepository) ListPublished(params models.ArticleListParams) ([]models.Article, error) {
	r.lastLimit = params.Limit
	return r.inner.ListPublished(params)
}

