package handlers

import (
	"net/http"

	"newsroom-backend/internal/seed"
	"newsroom-backend/internal/service"

	"github.com/gin-gonic/gin"
)

type SeedHandler struct {
	categoryService *service.CategoryService
	articleService  *service.ArticleService
}

func NewSeedHandler(categoryService *service.CategoryService, articleService *service.ArticleService) *SeedHandler {
	return &SeedHandler{
		categoryService: categoryService,
		articleService:  articleService,
	}
}

func (h *SeedHandler) Seed(c *gin.Context) {
	created, err := seed.SampleData(h.categoryService, h.articleService)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "ok", "created": created})
}
