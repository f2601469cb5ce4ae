package utils

import (
	"github.com/gin-gonic/gin"
)

// Error body shape kept from the original API: a human message plus the raw
// underlying error text.
type ErrorBody struct {
	Message string `json:"message"`
	Error   string `json:"error,omitempty"`
}

type MessageBody struct {
	Message string `json:"message"`
}

func MessageResponse(c *gin.Context, code int, message string) {
	c.JSON(code, MessageBody{Message: message})
}

// ErrorResponse writes {message, error}. A nil err leaves the error field out.
func ErrorResponse(c *gin.Context, code int, message string, err error) {
	body := ErrorBody{Message: message}
	if err != nil {
		body.Error = err.Error()
	}
	c.JSON(code, body)
}
