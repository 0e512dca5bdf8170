package handler

import (
	"errors"
	"io"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// ParseIDParam parses a UUID path parameter
func ParseIDParam(c *gin.Context, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		return uuid.Nil, false
	}
	return id, true
}

// bindOptionalJSON binds the request body, treating an empty body as a zero value
func bindOptionalJSON(c *gin.Context, obj interface{}) error {
	if err := c.ShouldBindJSON(obj); err != nil && !errors.Is(err, io.EOF) {
		return err
	}
	return nil
}
