package apperror

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGetAppErrorUnwraps(t *testing.T) {
	wrapped := fmt.Errorf("closing sale: %w", NewNotFoundError("Sale"))

	appErr := GetAppError(wrapped, "Failed to close sale")
	assert.Equal(t, http.StatusNotFound, appErr.Code)
	assert.Equal(t, "Sale not found", appErr.Message)
	assert.True(t, IsAppError(wrapped))
}

func TestGetAppErrorHidesUnknownErrors(t *testing.T) {
	appErr := GetAppError(errors.New("pq: connection refused"), "Failed to list sales")
	assert.Equal(t, http.StatusInternalServerError, appErr.Code)
	assert.Equal(t, "Failed to list sales", appErr.Message)

	appErr = GetAppError(errors.New("boom"), "")
	assert.Equal(t, ErrInternalServer.Message, appErr.Message)
}
