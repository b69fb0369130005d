package service

import (
	"errors"
	"fmt"

	"newsroom-backend/internal/models"
	"newsroom-backend/internal/repository"
	"newsroom-backend/pkg/validator"

	"gorm.io/gorm"
)

type CommentService struct {
	commentRepo repository.CommentRepository
	articleRepo repository.ArticleRepository
}

func NewCommentService(commentRepo repository.CommentRepository, articleRepo repository.ArticleRepository) *CommentService {
	return &CommentService{
		commentRepo: commentRepo,
		articleRepo: articleRepo,
	}
}

func (s *CommentService) Create(articleID uint, req models.CreateCommentRequest) (*models.Comment, error) {
	if _, err := s.articleRepo.GetByID(articleID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrArticleNotFound
		}
		return nil, fmt.Errorf("failed to verify article: %w", err)
	}

	message := validator.SanitizeString(req.Message)
	if message == "" {
		return nil, errors.New("comment message is empty after sanitization")
	}

	comment := &models.Comment{
		ArticleID: articleID,
		Name:      validator.SanitizeString(req.Name),
		Message:   message,
		Approved:  true,
	}

	if err := s.commentRepo.Create(comment); err != nil {
		return nil, fmt.Errorf("failed to create comment: %w", err)
	}

	return comment, nil
}

func (s *CommentService) GetApproved(articleID uint) ([]models.Comment, error) {
	if _, err := s.articleRepo.GetByID(articleID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrArticleNotFound
		}
		return nil, fmt.Errorf("failed to verify article: %w", err)
	}

	return s.commentRepo.GetApprovedByArticleID(articleID)
}
