package models

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"time"

	"gorm.io/gorm"
)

type Category struct {
	ID        uint           `gorm:"primarykey" json:"id"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	Name        string `gorm:"uniqueIndex;not null" json:"name"`
	Slug        string `gorm:"uniqueIndex;not null" json:"slug"`
	Description string `json:"description"`
	Active      bool   `gorm:"default:true" json:"is_active"`
}

type Article struct {
	ID        uint           `gorm:"primarykey" json:"id"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	Title   string `gorm:"not null" json:"title"`
	Slug    string `gorm:"uniqueIndex;not null;size:120" json:"slug"`
	Summary string `json:"summary"`
	Content string `gorm:"type:text;not null" json:"content"`
	Author  string `gorm:"not null" json:"author"`

	// CategorySlug references a category by slug. The reference is loose on
	// purpose: articles keep their category label even if the category row
	// is later deactivated.
	CategorySlug string     `gorm:"index" json:"category"`
	ImageURL     string     `json:"image_url"`
	Tags         StringList `gorm:"type:jsonb" json:"tags"`
	Published    bool       `gorm:"default:true" json:"is_published"`
	PublishedAt  *time.Time `gorm:"index" json:"published_at,omitempty"`

	Comments []Comment `gorm:"foreignKey:ArticleID" json:"comments,omitempty"`
}

type Comment struct {
	ID        uint           `gorm:"primarykey" json:"id"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	ArticleID uint   `gorm:"not null;index" json:"article_id"`
	Name      string `gorm:"not null" json:"name"`
	Message   string `gorm:"type:text;not null" json:"message"`
	Approved  bool   `gorm:"default:true" json:"is_approved"`
}

// StringList stores a string slice as a JSONB column.
type StringList []string

func (l StringList) Value() (driver.Value, error) {
	if l == nil {
		return "[]", nil
	}
	data, err := json.Marshal(l)
	if err != nil {
		return nil, err
	}
	return string(data), nil
}

func (l *StringList) Scan(value interface{}) error {
	if value == nil {
		*l = StringList{}
		return nil
	}

	var data []byte
	switch v := value.(type) {
	case []byte:
		data = v
	case string:
		data = []byte(v)
	default:
		return errors.New("unsupported type for StringList")
	}

	return json.Unmarshal(data, l)
}

type CreateCategoryRequest struct {
	Name        string `json:"name" binding:"required"`
	Slug        string `json:"slug"`
	Description string `json:"description"`
}

type CreateArticleRequest struct {
	Title       string     `json:"title" binding:"required"`
	Slug        string     `json:"slug"`
	Summary     string     `json:"summary"`
	Content     string     `json:"content" binding:"required"`
	Author      string     `json:"author" binding:"required"`
	Category    string     `json:"category"`
	ImageURL    string     `json:"image_url"`
	Tags        []string   `json:"tags"`
	PublishedAt *time.Time `json:"published_at"`
}

type CreateCommentRequest struct {
	Name    string `json:"name" binding:"required"`
	Message string `json:"message" binding:"required"`
}

// ArticleListParams carries the supported list filters. Limit is clamped to
// 1..100 by the service.
type ArticleListParams struct {
	Category string
	Query    string
	Limit    int
}
