package httputil

import (
	"github.com/gin-gonic/gin"
	validation "github.com/jellydator/validation"

	apperrors "github.com/allisson/utilkit/internal/errors"
)

const (
	// DefaultPageLimit is the page size used when the limit query parameter is absent.
	DefaultPageLimit = 100
	// MaxPageLimit caps the page size of key listings.
	MaxPageLimit = 500
)

// Page is an offset window over a sorted listing, bound from ?offset=&limit=.
type Page struct {
	Offset int `form:"offset,default=0"`
	Limit  int `form:"limit,default=100"`
}

// Validate checks the offset is non-negative and the limit is within 1..MaxPageLimit.
func (p Page) Validate() error {
	return validation.ValidateStruct(&p,
		validation.Field(&p.Offset, validation.Min(0)),
		validation.Field(&p.Limit, validation.Required, validation.Max(MaxPageLimit)),
	)
}

// Bounds clamps the window to a listing of total entries and returns the slice bounds.
func (p Page) Bounds(total int) (start, end int) {
	start = min(p.Offset, total)
	end = min(start+p.Limit, total)
	return start, end
}

// ParsePage binds and validates the pagination query parameters. Malformed or out of
// range values fail with ErrInvalidInput.
func ParsePage(c *gin.Context) (Page, error) {
	var page Page
	if err := c.ShouldBindQuery(&page); err != nil {
		return Page{}, apperrors.Wrap(apperrors.ErrInvalidInput, "offset and limit must be integers")
	}
	if err := page.Validate(); err != nil {
		return Page{}, apperrors.Wrap(apperrors.ErrInvalidInput, err.Error())
	}
	return page, nil
}
