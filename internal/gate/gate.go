// Package gate decides what a visitor of the admin page may see, based on
// the signed-in identity and the single allowlisted admin email.
package gate

import (
	"strings"
	"sync"
)

type State string

const (
	StateLoading         State = "loading"
	StateUnauthenticated State = "unauthenticated"
	StateUnauthorized    State = "unauthorized"
	StateAuthorized      State = "authorized"
)

// View is what the page renders for a state.
type View string

const (
	ViewPlaceholder  View = "placeholder"
	ViewLogin        View = "login"
	ViewAccessDenied View = "access_denied"
	ViewDashboard    View = "dashboard"
)

func (s State) View() View {
	switch s {
	case StateUnauthenticated:
		return ViewLogin
	case StateUnauthorized:
		return ViewAccessDenied
	case StateAuthorized:
		return ViewDashboard
	default:
		return ViewPlaceholder
	}
}

// Identity is a resolved signed-in user.
type Identity struct {
	UserID string
	Email  string
}

// Gate starts in StateLoading and moves once the identity resolves.
// Unauthorized is terminal; nothing but a sign-out would leave it.
type Gate struct {
	mu         sync.RWMutex
	adminEmail string
	state      State
}

func New(adminEmail string) *Gate {
	return &Gate{adminEmail: normalize(adminEmail), state: StateLoading}
}

// Begin marks identity resolution as in flight.
func (g *Gate) Begin() {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.state == StateUnauthorized {
		return
	}
	g.state = StateLoading
}

// Resolve records the resolved identity; nil means nobody is signed in.
func (g *Gate) Resolve(identity *Identity) State {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.state == StateUnauthorized {
		return g.state
	}
	g.state = Evaluate(identity, g.adminEmail)
	return g.state
}

func (g *Gate) State() State {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.state
}

// Evaluate is the stateless core of the gate.
func Evaluate(identity *Identity, adminEmail string) State {
	if identity == nil {
		return StateUnauthenticated
	}
	admin := normalize(adminEmail)
	if admin == "" || normalize(identity.Email) != admin {
		return StateUnauthorized
	}
	return StateAuthorized
}

func normalize(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
