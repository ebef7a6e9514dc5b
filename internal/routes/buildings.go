package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

func (h *Handler) buildingRoutes(r *gin.RouterGroup) {
	buildings := h.console.Buildings
	r.GET("", listHandler(buildings.Collection, nil))
	r.POST("", addHandler(buildings.Add))
	r.GET("/:id", getHandler(buildings.Collection, nil))
	r.PATCH("/:id", updateHandler(buildings.Collection, buildings.Update))
	r.DELETE("/:id", deleteHandler(buildings.Collection))
}

func (h *Handler) buildingNames(c *gin.Context) {
	names := h.console.Buildings.Names(c.Request.Context())
	if names == nil {
		names = []string{}
	}
	c.JSON(http.StatusOK, names)
}
