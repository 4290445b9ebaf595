package utils

import (
	"github.com/gin-gonic/gin"
)

// Error responses use the {"detail": string} shape the frontend already
// consumes.
func Detail(c *gin.Context, code int, message string) {
	c.JSON(code, gin.H{"detail": message})
}

// BadRequest writes a 400.
func BadRequest(c *gin.Context, message string) {
	if message == "" {
		message = "Invalid input."
	}
	Detail(c, 400, message)
}

// Unauthorized writes a 401.
func Unauthorized(c *gin.Context, message string) {
	if message == "" {
		message = "Authentication credentials were not provided."
	}
	Detail(c, 401, message)
}

// Forbidden writes a 403.
func Forbidden(c *gin.Context, message string) {
	if message == "" {
		message = "You do not have permission to perform this action."
	}
	Detail(c, 403, message)
}

// NotFound writes a 404.
func NotFound(c *gin.Context, message string) {
	if message == "" {
		message = "Not found."
	}
	Detail(c, 404, message)
}

// InternalServerError writes a 500 carrying the upstream error message.
func InternalServerError(c *gin.Context, message string) {
	if message == "" {
		message = "Internal server error."
	}
	Detail(c, 500, message)
}

// ServiceUnavailable writes a 503.
func ServiceUnavailable(c *gin.Context, message string) {
	if message == "" {
		message = "Service unavailable."
	}
	Detail(c, 503, message)
}
