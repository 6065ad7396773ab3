// Package response defines the JSON envelope every handler writes. Payloads
// ride under "data"; failures carry a stable machine code next to the human
// message so clients can branch without parsing prose.
package response

import "github.com/gin-gonic/gin"

type envelope struct {
	Success bool       `json:"success"`
	Data    any        `json:"data,omitempty"`
	Error   *errorBody `json:"error,omitempty"`
}

type errorBody struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Details any    `json:"details,omitempty"`
}

func Success(c *gin.Context, status int, data any) {
	c.JSON(status, envelope{Success: true, Data: data})
}

func Error(c *gin.Context, status int, code, message string) {
	c.JSON(status, envelope{Error: &errorBody{Code: code, Message: message}})
}

// ErrorWithDetails is Error plus a structured payload, typically the
// per-field map from a failed request validation.
func ErrorWithDetails(c *gin.Context, status int, code, message string, details any) {
	c.JSON(status, envelope{Error: &errorBody{Code: code, Message: message, Details: details}})
}
