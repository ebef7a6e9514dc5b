package utils

import (
	"fmt"
	"strings"

	"github.com/gin-gonic/gin"
)

func scheme(c *gin.Context) string {
	if c.Request.TLS != nil || c.GetHeader("X-Forwarded-Proto") == "https" {
		return "https"
	}
	return "http"
}

// GetBaseURL automatically detects the base URL from the request
func GetBaseURL(c *gin.Context, configBaseURL string) string {
	// If BaseURL is explicitly configured, use it
	if configBaseURL != "" {
		return strings.TrimSuffix(configBaseURL, "/")
	}
	return fmt.Sprintf("%s://%s", scheme(c), c.Request.Host)
}
