// Package console assembles the storage provider, the four collections and
// the page policy shared by the HTTP server and the CLI.
package console

import (
	"context"
	"fmt"
	"log/slog"

	"visitor-pass-console/internal/access"
	"visitor-pass-console/internal/collection"
	"visitor-pass-console/internal/config"
	"visitor-pass-console/internal/credential"
	"visitor-pass-console/internal/dashboard"
	"visitor-pass-console/internal/storage"
)

type Console struct {
	Provider  storage.Provider
	Visitors  *collection.Visitors
	Employees *collection.Employees
	Buildings *collection.Buildings
	Operators *collection.Operators
	Policy    *access.Policy

	clock collection.Clock
}

// Open connects the configured storage backend and builds a console on it.
func Open(ctx context.Context, cfg *config.Config) (*Console, error) {
	provider, err := storage.NewProvider(ctx, &cfg.Storage)
	if err != nil {
		return nil, fmt.Errorf("failed to open storage: %w", err)
	}

	policy, err := access.LoadPolicy(cfg.Access.PolicyFile)
	if err != nil {
		provider.Close()
		return nil, err
	}

	c := New(provider, credential.New(cfg.Auth.PasswordHashing), policy)
	slog.Debug("Console opened", "storage", cfg.Storage.Type)
	return c, nil
}

// New builds a console on an open provider.
func New(provider storage.Provider, hasher credential.Hasher, policy *access.Policy, opts ...collection.Option) *Console {
	// One id source for every collection keeps ids unique across them.
	opts = append([]collection.Option{collection.WithIDGenerator(&collection.TimestampIDs{})}, opts...)

	return &Console{
		Provider:  provider,
		Visitors:  collection.NewVisitors(provider, opts...),
		Employees: collection.NewEmployees(provider, opts...),
		Buildings: collection.NewBuildings(provider, opts...),
		Operators: collection.NewOperators(provider, hasher, opts...),
		Policy:    policy,
		clock:     collection.ClockOf(opts...),
	}
}

// Dashboard aggregates the current collections.
func (c *Console) Dashboard(ctx context.Context) dashboard.Summary {
	return dashboard.Build(c.clock.Now(), c.Visitors.List(ctx), c.Employees.List(ctx), c.Buildings.Len(ctx))
}

func (c *Console) Close() error {
	return c.Provider.Close()
}
