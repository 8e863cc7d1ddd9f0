package auth

import (
	"errors"
	"net/http"
	"slices"
)

// ErrUnauthenticated is returned by a resolver when the request carries no
// valid credential.
var ErrUnauthenticated = errors.New("unauthenticated")

// IdentityResolver resolves the caller's identity from a request.
type IdentityResolver interface {
	Resolve(r *http.Request) (*Identity, error)
}

// MockIdentityID is the id of the identity MockResolver attaches.
const MockIdentityID = "user123"

// MockResolver ignores the request and always resolves to a fixed identity
// with role user. It never returns ErrUnauthenticated.
type MockResolver struct{}

// NewMockResolver returns a MockResolver.
func NewMockResolver() *MockResolver {
	return &MockResolver{}
}

// Resolve implements IdentityResolver.
func (*MockResolver) Resolve(*http.Request) (*Identity, error) {
	return NewIdentity(MockIdentityID, RoleUser), nil
}

// StaticResolver resolves every request to a preconfigured identity.
// A nil Identity yields ErrUnauthenticated.
type StaticResolver struct {
	Identity *Identity
}

// Resolve implements IdentityResolver.
func (s StaticResolver) Resolve(*http.Request) (*Identity, error) {
	if s.Identity == nil {
		return nil, ErrUnauthenticated
	}
	id := *s.Identity
	id.Permissions = slices.Clone(s.Identity.Permissions)
	return &id, nil
}
