package routes

import (
	"github.com/gin-gonic/gin"
)

func (h *Handler) employeeRoutes(r *gin.RouterGroup) {
	employees := h.console.Employees
	r.GET("", listHandler(employees.Collection, nil))
	r.POST("", addHandler(employees.Add))
	r.GET("/:id", getHandler(employees.Collection, nil))
	r.PATCH("/:id", updateHandler(employees.Collection, employees.Update))
	r.DELETE("/:id", deleteHandler(employees.Collection))
}
