// Package auth resolves bearer tokens to principals and answers
// permission and channel-scope checks for them.
package auth

import (
	"context"
	"crypto/subtle"
	"fmt"
	"slices"

	"github.com/BurntSushi/toml"

	"github.com/groblegark/orderledger/internal/model"
)

// Kind distinguishes human staff accounts from installed apps.
type Kind string

const (
	KindStaff Kind = "staff"
	KindApp   Kind = "app"
)

// Permission names a capability a principal may hold.
type Permission string

const (
	// PermManageOrders is required for every order mutation.
	PermManageOrders Permission = "manage_orders"
)

// Principal is an authenticated caller: a staff user or an app.
type Principal struct {
	Name        string       `toml:"name"`
	Kind        Kind         `toml:"kind"`
	Token       string       `toml:"token"`
	Permissions []Permission `toml:"permissions"`

	// Channels limits the principal to specific sales channels.
	// Empty means unrestricted.
	Channels []string `toml:"channels"`
}

// Has reports whether the principal holds the given permission.
func (p *Principal) Has(perm Permission) bool {
	return slices.Contains(p.Permissions, perm)
}

// CanAccessChannel reports whether the principal may act on orders in the
// given channel.
func (p *Principal) CanAccessChannel(channelID string) bool {
	if len(p.Channels) == 0 {
		return true
	}
	return slices.Contains(p.Channels, channelID)
}

// Actor returns the audit identity recorded on events created by this
// principal. Exactly one of UserID or AppID is set.
func (p *Principal) Actor() model.Actor {
	if p.Kind == KindApp {
		return model.Actor{AppID: p.Name}
	}
	return model.Actor{UserID: p.Name}
}

// Registry maps bearer tokens to principals.
type Registry struct {
	principals []*Principal
}

func NewRegistry(principals ...*Principal) *Registry {
	return &Registry{principals: principals}
}

// Empty reports whether the registry holds no principals. An empty registry
// disables authentication entirely.
func (r *Registry) Empty() bool {
	return r == nil || len(r.principals) == 0
}

// Lookup resolves a bearer token to its principal. Every registered token is
// compared in constant time so lookup duration does not leak which token
// prefix matched.
func (r *Registry) Lookup(token string) (*Principal, bool) {
	if r == nil {
		return nil, false
	}
	var found *Principal
	for _, p := range r.principals {
		if subtle.ConstantTimeCompare([]byte(token), []byte(p.Token)) == 1 {
			found = p
		}
	}
	return found, found != nil
}

// registryFile is the on-disk TOML shape.
type registryFile struct {
	Principals []*Principal `toml:"principal"`
}

// LoadRegistry reads principals from a TOML file:
//
//	[[principal]]
//	name = "alice"
//	kind = "staff"
//	token = "secret"
//	permissions = ["manage_orders"]
//	channels = ["default"]
func LoadRegistry(path string) (*Registry, error) {
	var file registryFile
	if _, err := toml.DecodeFile(path, &file); err != nil {
		return nil, fmt.Errorf("loading auth file %s: %w", path, err)
	}
	for i, p := range file.Principals {
		if p.Name == "" {
			return nil, fmt.Errorf("auth file %s: principal %d has no name", path, i)
		}
		if p.Kind != KindStaff && p.Kind != KindApp {
			return nil, fmt.Errorf("auth file %s: principal %q has invalid kind %q", path, p.Name, p.Kind)
		}
		if p.Token == "" {
			return nil, fmt.Errorf("auth file %s: principal %q has no token", path, p.Name)
		}
	}
	return NewRegistry(file.Principals...), nil
}

type contextKey struct{}

// WithPrincipal attaches the authenticated principal to the context.
func WithPrincipal(ctx context.Context, p *Principal) context.Context {
	return context.WithValue(ctx, contextKey{}, p)
}

// FromContext returns the authenticated principal, if any.
func FromContext(ctx context.Context) (*Principal, bool) {
	p, ok := ctx.Value(contextKey{}).(*Principal)
	return p, ok
}
