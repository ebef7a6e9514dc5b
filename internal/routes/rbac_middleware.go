package routes

import (
	"github.com/gin-gonic/gin"

	"visitor-pass-console/internal/access"
	"visitor-pass-console/internal/model"
)

// RequirePage creates middleware that applies the page policy to the signed-in
// operator. A deny is answered with the notice and not logged.
func RequirePage(page string) gin.HandlerFunc {
	return func(c *gin.Context) {
		var op *model.Operator
		if current, ok := currentOperator(c); ok {
			op = &current
		}

		policy := c.MustGet(policyKey).(*access.Policy)
		if policy.Check(op, page) == access.Deny {
			AbortWithError(c, ErrForbidden)
			return
		}

		c.Next()
	}
}
