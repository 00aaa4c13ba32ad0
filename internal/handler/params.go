package handler

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stemsi/tutorhub-backend/internal/timezone"
)

// paramID parses a positive integer path parameter.
func paramID(c *gin.Context, name string) (int, bool) {
	id, err := strconv.Atoi(c.Param(name))
	if err != nil || id < 1 {
		return 0, false
	}
	return id, true
}

// queryInt parses an optional positive integer query parameter. A missing
// value yields nil; a malformed one yields ok=false.
func queryInt(c *gin.Context, key string) (v *int, ok bool) {
	raw := c.Query(key)
	if raw == "" {
		return nil, true
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 1 {
		return nil, false
	}
	return &n, true
}

// queryDate parses an optional YYYY-MM-DD query parameter.
func queryDate(c *gin.Context, key string) (v *time.Time, ok bool) {
	raw := c.Query(key)
	if raw == "" {
		return nil, true
	}
	d, err := timezone.ParseDate(raw)
	if err != nil {
		return nil, false
	}
	return &d, true
}

type pageQuery struct {
	Page    int `form:"page" binding:"omitempty,min=1"`
	PerPage int `form:"per_page" binding:"omitempty,min=1,max=100"`
}
