package routes

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"visitor-pass-console/internal/access"
	"visitor-pass-console/internal/console"
)

// recordPages renders the read-only list page of each collection.
func (h *Handler) recordPages(r *gin.RouterGroup) {
	tables := map[string]func(ctx context.Context) console.Table{
		access.PageVisitors: func(ctx context.Context) console.Table {
			return console.VisitorTable(h.console.Visitors.List(ctx))
		},
		access.PageEmployees: func(ctx context.Context) console.Table {
			return console.EmployeeTable(h.console.Employees.List(ctx))
		},
		access.PageBuildings: func(ctx context.Context) console.Table {
			return console.BuildingTable(h.console.Buildings.List(ctx))
		},
		access.PageOperators: func(ctx context.Context) console.Table {
			ops := h.console.Operators.List(ctx)
			for i := range ops {
				ops[i] = ops[i].Redacted()
			}
			return console.OperatorTable(ops)
		},
	}

	for name, table := range tables {
		page, ok := h.console.Policy.Page(name)
		if !ok || page.Path == "" || page.Path == "/" {
			continue
		}
		r.GET(page.Path, RequirePage(name), func(c *gin.Context) {
			HTML(c, http.StatusOK, "records", gin.H{
				"Title": page.Title,
				"Table": table(c.Request.Context()),
			})
		})
	}
}
