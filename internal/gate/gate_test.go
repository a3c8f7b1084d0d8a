package gate

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

const admin = "owner@shop.test"

func TestEvaluate(t *testing.T) {
	tests := []struct {
		name     string
		identity *Identity
		want     State
		view     View
	}{
		{"signed out", nil, StateUnauthenticated, ViewLogin},
		{"other user", &Identity{Email: "someone@shop.test"}, StateUnauthorized, ViewAccessDenied},
		{"admin", &Identity{Email: admin}, StateAuthorized, ViewDashboard},
		{"admin with different case", &Identity{Email: " Owner@Shop.test "}, StateAuthorized, ViewDashboard},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Evaluate(tt.identity, admin)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.view, got.View())
		})
	}
}

func TestEvaluate_NoAdminConfigured(t *testing.T) {
	assert.Equal(t, StateUnauthorized, Evaluate(&Identity{Email: admin}, ""))
}

func TestGate_Lifecycle(t *testing.T) {
	g := New(admin)
	assert.Equal(t, StateLoading, g.State())
	assert.Equal(t, ViewPlaceholder, g.State().View())

	assert.Equal(t, StateUnauthenticated, g.Resolve(nil))

	g.Begin()
	assert.Equal(t, StateLoading, g.State())
	assert.Equal(t, StateAuthorized, g.Resolve(&Identity{UserID: "1", Email: admin}))
}

func TestGate_UnauthorizedIsTerminal(t *testing.T) {
	g := New(admin)
	assert.Equal(t, StateUnauthorized, g.Resolve(&Identity{Email: "intruder@shop.test"}))

	g.Begin()
	assert.Equal(t, StateUnauthorized, g.State())
	assert.Equal(t, StateUnauthorized, g.Resolve(&Identity{Email: admin}))
}
