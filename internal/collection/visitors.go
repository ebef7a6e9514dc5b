package collection

import (
	"context"
	"fmt"

	"visitor-pass-console/internal/model"
	"visitor-pass-console/internal/storage"
	"visitor-pass-console/internal/store"
)

type Visitors struct {
	*Collection[model.Visitor]
}

func NewVisitors(provider storage.Provider, opts ...Option) *Visitors {
	return &Visitors{Collection: newCollection[model.Visitor](provider, store.KeyVisitors, opts)}
}

// Add registers a visitor. New visitors are always pending.
func (r *Visitors) Add(ctx context.Context, in model.VisitorInput) model.Visitor {
	return r.add(ctx, in.Visitor)
}

func (r *Visitors) Update(ctx context.Context, id string, patch model.VisitorPatch) (model.Visitor, bool) {
	return r.update(ctx, id, patch.Apply)
}

// Decide records an operator decision on a visitor.
func (r *Visitors) Decide(ctx context.Context, id string, status model.VisitorStatus) (model.Visitor, error) {
	var transitionErr error
	v, ok := r.update(ctx, id, func(v *model.Visitor) {
		if !v.Status.CanBecome(status) {
			transitionErr = fmt.Errorf("%w: %s to %s", model.ErrInvalidTransition, v.Status, status)
			return
		}
		v.Status = status
	})
	if !ok {
		return model.Visitor{}, ErrNotFound
	}
	if transitionErr != nil {
		return v, transitionErr
	}
	return v, nil
}

func (r *Visitors) Approve(ctx context.Context, id string) (model.Visitor, error) {
	return r.Decide(ctx, id, model.VisitorApproved)
}

func (r *Visitors) Deny(ctx context.Context, id string) (model.Visitor, error) {
	return r.Decide(ctx, id, model.VisitorDenied)
}

func (r *Visitors) Complete(ctx context.Context, id string) (model.Visitor, error) {
	return r.Decide(ctx, id, model.VisitorCompleted)
}
