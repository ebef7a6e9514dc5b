package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"visitor-pass-console/internal/utils"
)

func Health(r *gin.RouterGroup) {
	r.GET("/health", func(c *gin.Context) {
		msg := c.Query("ping")
		if msg == "" {
			msg = "pong"
		}

		_, authenticated := currentOperator(c)
		c.JSON(http.StatusOK, gin.H{
			"message":       msg,
			"version":       utils.GetVersion(),
			"authenticated": authenticated,
		})
	})
}
