package collection

import (
	"context"

	"visitor-pass-console/internal/model"
	"visitor-pass-console/internal/storage"
	"visitor-pass-console/internal/store"
)

type Employees struct {
	*Collection[model.Employee]
}

func NewEmployees(provider storage.Provider, opts ...Option) *Employees {
	return &Employees{Collection: newCollection[model.Employee](provider, store.KeyEmployees, opts)}
}

func (r *Employees) Add(ctx context.Context, in model.EmployeeInput) model.Employee {
	return r.add(ctx, in.Employee)
}

func (r *Employees) Update(ctx context.Context, id string, patch model.EmployeePatch) (model.Employee, bool) {
	return r.update(ctx, id, patch.Apply)
}
