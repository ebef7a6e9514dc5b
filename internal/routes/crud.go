package routes

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"visitor-pass-console/internal/collection"
	"visitor-pass-console/internal/model"
)

type input interface {
	Validate() error
}

type patch[T any] interface {
	ValidateAgainst(T) error
}

func listHandler[T model.Entity](col *collection.Collection[T], view func(T) T) gin.HandlerFunc {
	return func(c *gin.Context) {
		items := col.List(c.Request.Context())
		if items == nil {
			items = []T{}
		}
		if view != nil {
			for i := range items {
				items[i] = view(items[i])
			}
		}
		c.JSON(http.StatusOK, items)
	}
}

func getHandler[T model.Entity](col *collection.Collection[T], view func(T) T) gin.HandlerFunc {
	return func(c *gin.Context) {
		item, ok := col.Find(c.Request.Context(), c.Param("id"))
		if !ok {
			AbortWithError(c, collection.ErrNotFound)
			return
		}
		if view != nil {
			item = view(item)
		}
		c.JSON(http.StatusOK, item)
	}
}

func deleteHandler[T model.Entity](col *collection.Collection[T]) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !col.Delete(c.Request.Context(), c.Param("id")) {
			AbortWithError(c, collection.ErrNotFound)
			return
		}
		c.Status(http.StatusNoContent)
	}
}

// addHandler validates the form before add stores it.
func addHandler[I input, T any](add func(context.Context, I) T) gin.HandlerFunc {
	return func(c *gin.Context) {
		var in I
		if !bindJSON(c, &in) {
			return
		}
		if err := in.Validate(); err != nil {
			AbortWithError(c, err)
			return
		}
		c.JSON(http.StatusCreated, add(c.Request.Context(), in))
	}
}

// updateHandler validates the merged record before update applies the patch.
func updateHandler[T model.Entity, P patch[T]](col *collection.Collection[T], update func(context.Context, string, P) (T, bool)) gin.HandlerFunc {
	return func(c *gin.Context) {
		var p P
		if !bindJSON(c, &p) {
			return
		}

		ctx := c.Request.Context()
		id := c.Param("id")
		existing, ok := col.Find(ctx, id)
		if !ok {
			AbortWithError(c, collection.ErrNotFound)
			return
		}
		if err := p.ValidateAgainst(existing); err != nil {
			AbortWithError(c, err)
			return
		}

		item, ok := update(ctx, id, p)
		if !ok {
			AbortWithError(c, collection.ErrNotFound)
			return
		}
		c.JSON(http.StatusOK, item)
	}
}
