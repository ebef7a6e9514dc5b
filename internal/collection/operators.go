package collection

import (
	"context"
	"fmt"

	"visitor-pass-console/internal/credential"
	"visitor-pass-console/internal/model"
	"visitor-pass-console/internal/storage"
	"visitor-pass-console/internal/store"
)

// Operators is the operator account list. Passwords pass through hasher
// before they are stored.
type Operators struct {
	*Collection[model.Operator]
	hasher credential.Hasher
}

func NewOperators(provider storage.Provider, hasher credential.Hasher, opts ...Option) *Operators {
	r := &Operators{
		Collection: newCollection[model.Operator](provider, store.KeyOperators, opts),
		hasher:     hasher,
	}
	r.seed = r.defaultOperators
	return r
}

// defaultOperators are written the first time the operator slot is read.
func (r *Operators) defaultOperators() []model.Operator {
	createdAt := model.FormatTimestamp(r.clock.Now())
	seeds := []model.Operator{
		{
			ID:          "1",
			FullName:    "System Administrator",
			Username:    "admin",
			Password:    "admin123",
			Role:        model.RoleAdmin,
			Permissions: []string{model.PermissionAll},
			Shift:       model.ShiftMorning,
			Status:      model.StatusActive,
			CreatedAt:   createdAt,
		},
		{
			ID:          "2",
			FullName:    "Duty Operator",
			Username:    "operator",
			Password:    "pass123",
			Role:        model.RoleOperator,
			Permissions: []string{model.PermissionViewVisitors, model.PermissionManageVisitors},
			Shift:       model.ShiftMorning,
			Status:      model.StatusActive,
			CreatedAt:   createdAt,
		},
	}

	for i := range seeds {
		hashed, err := r.hasher.Hash(seeds[i].Password)
		if err != nil {
			r.logger.Error("Failed to hash seed password", "username", seeds[i].Username, "error", err)
			continue
		}
		seeds[i].Password = hashed
	}
	return seeds
}

func (r *Operators) Add(ctx context.Context, in model.OperatorInput) (model.Operator, error) {
	hashed, err := r.hasher.Hash(in.Password)
	if err != nil {
		return model.Operator{}, fmt.Errorf("hash password: %w", err)
	}
	in.Password = hashed
	return r.add(ctx, in.Operator), nil
}

func (r *Operators) Update(ctx context.Context, id string, patch model.OperatorPatch) (model.Operator, bool, error) {
	if patch.Password != nil {
		hashed, err := r.hasher.Hash(*patch.Password)
		if err != nil {
			return model.Operator{}, false, fmt.Errorf("hash password: %w", err)
		}
		patch.Password = &hashed
	}
	op, ok := r.update(ctx, id, patch.Apply)
	return op, ok, nil
}

// Active returns the active operator matching username and password.
// Disabled accounts and wrong passwords are indistinguishable to the caller.
func (r *Operators) Active(ctx context.Context, username, password string) (model.Operator, bool) {
	for _, op := range r.List(ctx) {
		if op.Username == username && op.Status == model.StatusActive && r.hasher.Verify(op.Password, password) {
			return op, true
		}
	}
	return model.Operator{}, false
}

// UsernameTaken reports whether an operator other than exceptID uses username.
func (r *Operators) UsernameTaken(ctx context.Context, username, exceptID string) bool {
	for _, op := range r.List(ctx) {
		if op.Username == username && op.ID != exceptID {
			return true
		}
	}
	return false
}
