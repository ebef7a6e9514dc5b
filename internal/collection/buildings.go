package collection

import (
	"context"

	"visitor-pass-console/internal/model"
	"visitor-pass-console/internal/storage"
	"visitor-pass-console/internal/store"
)

type Buildings struct {
	*Collection[model.Building]
}

func NewBuildings(provider storage.Provider, opts ...Option) *Buildings {
	return &Buildings{Collection: newCollection[model.Building](provider, store.KeyBuildings, opts)}
}

func (r *Buildings) Add(ctx context.Context, in model.BuildingInput) model.Building {
	return r.add(ctx, in.Building)
}

func (r *Buildings) Update(ctx context.Context, id string, patch model.BuildingPatch) (model.Building, bool) {
	return r.update(ctx, id, patch.Apply)
}

// Names lists building names in collection order, for destination menus.
func (r *Buildings) Names(ctx context.Context) []string {
	buildings := r.List(ctx)
	names := make([]string, 0, len(buildings))
	for _, b := range buildings {
		names = append(names, b.Name)
	}
	return names
}
