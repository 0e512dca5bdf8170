package response

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sangkips/bytechef-api/pkg/apperror"
)

// ErrorResponse is the body of every failed request
type ErrorResponse struct {
	Error string `json:"error"`
}

// MessageResponse is the body of operations that only report an outcome
type MessageResponse struct {
	Message string `json:"message"`
}

// OK sends a 200 response with data as the body
func OK(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, data)
}

// Message sends a 200 {message} response
func Message(c *gin.Context, message string) {
	c.JSON(http.StatusOK, MessageResponse{Message: message})
}

// Error sends an error response. AppErrors keep their code and message;
// anything else becomes a 500 with fallback and is attached to the context
// so the logger middleware records it.
func Error(c *gin.Context, err error, fallback string) {
	appErr := apperror.GetAppError(err, fallback)
	if appErr.Code >= http.StatusInternalServerError {
		_ = c.Error(err)
	}
	ErrorWithCode(c, appErr.Code, appErr.Message)
}

// ErrorWithCode sends an error response with a specific status code
func ErrorWithCode(c *gin.Context, statusCode int, message string) {
	c.JSON(statusCode, ErrorResponse{Error: message})
}

// AbortWithError writes the error body and stops the handler chain
func AbortWithError(c *gin.Context, statusCode int, message string) {
	c.AbortWithStatusJSON(statusCode, ErrorResponse{Error: message})
}

// BadRequest sends a 400 Bad Request response
func BadRequest(c *gin.Context, message string) {
	ErrorWithCode(c, http.StatusBadRequest, message)
}

// NotFound sends a 404 Not Found response
func NotFound(c *gin.Context, message string) {
	ErrorWithCode(c, http.StatusNotFound, message)
}
