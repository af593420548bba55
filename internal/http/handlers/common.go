package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
)

// BindJSONOrError ensures the body is present and parsable. On failure it
// writes the 400 itself and returns false.
func BindJSONOrError[T any](c *gin.Context, dst *T) bool {
	if c.Request.Body == nil {
		respondError(c, http.StatusBadRequest, "validation_error", "request body is required")
		return false
	}
	if err := c.ShouldBindJSON(dst); err != nil {
		respondError(c, http.StatusBadRequest, "validation_error", "invalid request body: "+err.Error())
		return false
	}
	return true
}

// paramInt64 parses a numeric path parameter, writing the 400 on failure.
func paramInt64(c *gin.Context, name string) (int64, bool) {
	v, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || v <= 0 {
		respondError(c, http.StatusBadRequest, "validation_error", name+" must be a positive integer")
		return 0, false
	}
	return v, true
}

// queryBool reads an optional boolean query parameter; nil means absent.
func queryBool(c *gin.Context, name string) (*bool, bool) {
	raw, exists := c.GetQuery(name)
	if !exists || raw == "" {
		return nil, true
	}
	v, err := strconv.ParseBool(raw)
	if err != nil {
		respondError(c, http.StatusBadRequest, "validation_error", name+" must be true or false")
		return nil, false
	}
	return &v, true
}

// queryFloat reads an optional float query parameter; nil means absent.
func queryFloat(c *gin.Context, name string) (*float64, bool) {
	raw, exists := c.GetQuery(name)
	if !exists || raw == "" {
		return nil, true
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		respondError(c, http.StatusBadRequest, "validation_error", name+" must be a number")
		return nil, false
	}
	return &v, true
}
