package routes

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"visitor-pass-console/internal/collection"
	"visitor-pass-console/internal/model"
)

// Operator responses never carry the password.
func (h *Handler) operatorRoutes(r *gin.RouterGroup) {
	operators := h.console.Operators
	r.GET("", listHandler(operators.Collection, model.Operator.Redacted))
	r.POST("", h.addOperator)
	r.GET("/:id", getHandler(operators.Collection, model.Operator.Redacted))
	r.PATCH("/:id", h.updateOperator)
	r.DELETE("/:id", deleteHandler(operators.Collection))
}

func usernameTaken() error {
	return &model.ValidationError{Fields: map[string]string{"username": "is already taken"}}
}

func (h *Handler) addOperator(c *gin.Context) {
	var in model.OperatorInput
	if !bindJSON(c, &in) {
		return
	}
	if err := in.Validate(); err != nil {
		AbortWithError(c, err)
		return
	}

	ctx := c.Request.Context()
	if h.console.Operators.UsernameTaken(ctx, in.Username, "") {
		AbortWithError(c, usernameTaken())
		return
	}

	op, err := h.console.Operators.Add(ctx, in)
	if err != nil {
		AbortWithError(c, fmt.Errorf("%w: %v", ErrInternalServer, err))
		return
	}
	h.logger.Info("Operator added", "username", op.Username, "role", op.Role)
	c.JSON(http.StatusCreated, op.Redacted())
}

func (h *Handler) updateOperator(c *gin.Context) {
	var patch model.OperatorPatch
	if !bindJSON(c, &patch) {
		return
	}

	ctx := c.Request.Context()
	id := c.Param("id")
	existing, ok := h.console.Operators.Find(ctx, id)
	if !ok {
		AbortWithError(c, collection.ErrNotFound)
		return
	}
	if err := patch.ValidateAgainst(existing); err != nil {
		AbortWithError(c, err)
		return
	}
	if patch.Username != nil && h.console.Operators.UsernameTaken(ctx, *patch.Username, id) {
		AbortWithError(c, usernameTaken())
		return
	}

	op, ok, err := h.console.Operators.Update(ctx, id, patch)
	if err != nil {
		AbortWithError(c, fmt.Errorf("%w: %v", ErrInternalServer, err))
		return
	}
	if !ok {
		AbortWithError(c, collection.ErrNotFound)
		return
	}
	c.JSON(http.StatusOK, op.Redacted())
}
