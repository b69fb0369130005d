package seed

import (
	"errors"

	"newsroom-backend/internal/models"
	"newsroom-backend/internal/service"
	"newsroom-backend/pkg/logger"
)

var defaultCategories = []models.CreateCategoryRequest{
	{Name: "World", Slug: "world"},
	{Name: "Business", Slug: "business"},
	{Name: "Technology", Slug: "technology"},
	{Name: "Sports", Slug: "sports"},
	{Name: "Entertainment", Slug: "entertainment"},
}

var sampleArticles = []models.CreateArticleRequest{
	{
		Title:    "Tech giants unveil next-gen AI chips",
		Summary:  "A new wave of processors promises faster, greener AI.",
		Content:  "Major semiconductor companies announced...",
		Author:   "News Desk",
		Category: "technology",
		ImageURL: "https://images.unsplash.com/photo-1550751827-4bd374c3f58b?q=80&w=1200&auto=format&fit=crop",
		Tags:     []string{"ai", "chips", "semiconductor"},
	},
	{
		Title:    "Markets rally as inflation cools",
		Summary:  "Global markets see gains after latest CPI data.",
		Content:  "Stocks across major indices rose today...",
		Author:   "Finance Team",
		Category: "business",
		ImageURL: "https://images.unsplash.com/photo-1559526324-593bc073d938?q=80&w=1200&auto=format&fit=crop",
		Tags:     []string{"markets", "inflation"},
	},
	{
		Title:    "Historic win in championship final",
		Summary:  "An underdog story captures fans worldwide.",
		Content:  "In a thrilling finale, the underdogs clinched...",
		Author:   "Sports Desk",
		Category: "sports",
		ImageURL: "https://images.unsplash.com/photo-1502877338535-766e1452684a?q=80&w=1200&auto=format&fit=crop",
		Tags:     []string{"final", "championship"},
	},
}

// EnsureDefaultCategories creates the standard news sections at startup.
// Creation is idempotent: a slug conflict means the category is already
// there and is not an error.
func EnsureDefaultCategories(categoryService *service.CategoryService) {
	if categoryService == nil {
		return
	}

	created := 0
	for _, req := range defaultCategories {
		if _, err := categoryService.Create(req); err != nil {
			if errors.Is(err, service.ErrSlugTaken) {
				continue
			}
			logger.Error(err, "Failed to seed default category", map[string]interface{}{
				"name": req.Name,
			})
			continue
		}
		created++
	}

	if created > 0 {
		logger.Info("Seeded default categories", map[string]interface{}{"created": created})
	}
}

// SampleData inserts demo articles, skipping ones whose slug already exists.
// It returns how many articles were created.
func SampleData(categoryService *service.CategoryService, articleService *service.ArticleService) (int, error) {
	EnsureDefaultCategories(categoryService)

	created := 0
	for _, req := range sampleArticles {
		if _, err := articleService.Create(req); err != nil {
			if errors.Is(err, service.ErrSlugTaken) {
				continue
			}
			return created, err
		}
		created++
	}

	return created, nil
}
