package service

import "errors"

var (
	ErrSlugTaken        = errors.New("slug already exists")
	ErrEmptySlug        = errors.New("slug is empty after normalization")
	ErrInvalidSlug      = errors.New("slug contains invalid characters")
	ErrCategoryNotFound = errors.New("category not found")
	ErrArticleNotFound  = errors.New("article not found")
	ErrInvalidImageURL  = errors.New("image_url is not a valid http(s) URL")
)
