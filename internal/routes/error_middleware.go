package routes

import (
	"errors"
	"log/slog"
	"strings"

	"github.com/gin-gonic/gin"

	"visitor-pass-console/internal/model"
)

type errorStruct struct {
	Succeed bool              `json:"success"`
	Status  string            `json:"status"`
	Message string            `json:"message,omitempty"`
	Code    []string          `json:"code,omitempty"`
	Fields  map[string]string `json:"fields,omitempty"`
}

// ErrorHandler captures errors and returns a consistent JSON error response
// with appropriate HTTP status codes based on the error type
func ErrorHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next() // Process the request first

		if len(c.Errors) == 0 {
			return
		}

		// Use the last error (most recent)
		err := c.Errors.Last().Err

		statusCode := GetErrorStatus(err)
		errorInfo := GetErrorInfo(err)

		if statusCode >= 500 {
			slog.Error("Request failed with server error",
				"error", err,
				"status", statusCode,
				"path", c.Request.URL.Path,
				"method", c.Request.Method,
			)
		} else if statusCode >= 400 && !errors.Is(err, ErrForbidden) {
			slog.Warn("Request failed with client error",
				"error", err,
				"status", statusCode,
				"path", c.Request.URL.Path,
				"method", c.Request.Method,
			)
		}

		// Only send the response if it hasn't been written yet
		if c.Writer.Written() {
			return
		}

		response := errorStruct{
			Succeed: false,
			Status:  "error",
			Message: errorInfo.Message,
		}

		// Collect all the stop codes from all wrapped errors
		for _, e := range c.Errors {
			response.Code = append(response.Code, GetErrorInfo(e.Err).StopCodes...)
		}

		var validationErr *model.ValidationError
		if errors.As(err, &validationErr) {
			response.Fields = validationErr.Fields
		}

		if wantsHTML(c) {
			slog.Debug("Returning error page HTML", "code", statusCode, "message", errorInfo.Message)
			HTML(c, statusCode, "error", gin.H{"Error": response})
			c.Abort()
			return
		}
		c.AbortWithStatusJSON(statusCode, response)
	}
}

// wantsHTML reports whether the client asked for a page rather than JSON.
func wantsHTML(c *gin.Context) bool {
	accept := c.GetHeader("Accept")
	return strings.Contains(accept, "text/html") && !strings.Contains(accept, "application/json")
}

// AbortWithError is a helper function to abort the request with an error
// and add it to the Gin error chain for the ErrorHandler middleware
func AbortWithError(c *gin.Context, err error) {
	statusCode := GetErrorStatus(err)
	c.Error(err)
	c.Abort()
	// Set the status code so gin knows not to send 200
	c.Status(statusCode)
}
