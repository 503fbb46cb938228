package httputil

import (
	"fmt"

	"github.com/gin-gonic/gin"
	validation "github.com/jellydator/validation"
)

// Page size bounds of the list endpoints.
const (
	DefaultPageLimit = 50
	MaxPageLimit     = 100
)

type pageQuery struct {
	Offset int `form:"offset,default=0" json:"offset"`
	Limit  int `form:"limit,default=50" json:"limit"`
}

// ParsePagination reads the offset and limit query parameters. Offset defaults to 0 and
// must not be negative; limit defaults to DefaultPageLimit and must be within
// 1..MaxPageLimit.
func ParsePagination(c *gin.Context) (offset, limit int, err error) {
	var q pageQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		return 0, 0, fmt.Errorf("invalid pagination: offset and limit must be integers")
	}

	err = validation.ValidateStruct(&q,
		validation.Field(&q.Offset, validation.Min(0)),
		validation.Field(&q.Limit, validation.Required, validation.Min(1), validation.Max(MaxPageLimit)),
	)
	if err != nil {
		return 0, 0, fmt.Errorf("invalid pagination: %w", err)
	}

	return q.Offset, q.Limit, nil
}
