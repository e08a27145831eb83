package util

import (
	"github.com/gin-gonic/gin"
)

// Business codes carried alongside the HTTP status in error bodies.
const (
	CodeOK           = 0
	CodeInvalidParam = 40001
	CodeAuth         = 40101
	CodeNotFound     = 40401
	CodeServerErr    = 50001
)

// JSON writes data as the response body with the given status.
func JSON(c *gin.Context, httpStatus int, data any) {
	c.JSON(httpStatus, data)
}

// Error writes the common error body and records msg on the context for the
// request logger.
func Error(c *gin.Context, httpStatus int, code int, msg string) {
	_ = c.Error(errString(msg))
	c.JSON(httpStatus, gin.H{
		"code":    code,
		"message": msg,
	})
}

type errString string

func (e errString) Error() string { return string(e) }
