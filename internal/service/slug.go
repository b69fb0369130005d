package service

import (
	"newsroom-backend/pkg/utils"
	"newsroom-backend/pkg/validator"
)

// articleSlugMaxLen caps article slugs derived from titles.
const articleSlugMaxLen = 120

// resolveSlug picks the slug candidate for a new record: an explicit slug is
// used verbatim (never renormalized), otherwise the display text is
// normalized. maxLen applies only to the derived form. A degenerate result
// is rejected before any storage call.
func resolveSlug(explicit, display string, maxLen int) (string, error) {
	if explicit != "" {
		if !validator.IsValidSlug(explicit) {
			return "", ErrInvalidSlug
		}
		return explicit, nil
	}

	slug := utils.GenerateSlugWithLimit(display, maxLen)
	if slug == "" {
		return "", ErrEmptySlug
	}
	return slug, nil
}
