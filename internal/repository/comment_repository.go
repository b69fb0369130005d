package repository

import (
	"newsroom-backend/internal/models"

	"gorm.io/gorm"
)

type CommentRepository interface {
	Create(comment *models.Comment) error
	GetApprovedByArticleID(articleID uint) ([]models.Comment, error)
}

type commentRepository struct {
	db *gorm.DB
}

func NewCommentRepository(db *gorm.DB) CommentRepository {
	return &commentRepository{db: db}
}

func (r *commentRepository) Create(comment *models.Comment) error {
	return r.db.Create(comment).Error
}

func (r *commentRepository) GetApprovedByArticleID(articleID uint) ([]models.Comment, error) {
	var comments []models.Comment
	err := r.db.
		Where("article_id = ? AND approved = ?", articleID, true).
		Order("created_at ASC").
		Find(&comments).Error
	return comments, err
}
