package identity

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stocktally/backend/internal/domain/shared"
)

func TestParseRole(t *testing.T) {
	t.Run("parses known roles", func(t *testing.T) {
		for _, name := range []string{"viewer", "operator", "manager"} {
			role, err := ParseRole(name)
			require.NoError(t, err)
			assert.Equal(t, name, role.String())
		}
	})

	t.Run("rejects unknown role", func(t *testing.T) {
		_, err := ParseRole("admin")

		require.Error(t, err)
		assert.True(t, shared.IsValidation(err))
	})
}

func TestRole_AtLeast(t *testing.T) {
	tests := []struct {
		role     Role
		min      Role
		expected bool
	}{
		{RoleViewer, RoleViewer, true},
		{RoleViewer, RoleOperator, false},
		{RoleViewer, RoleManager, false},
		{RoleOperator, RoleViewer, true},
		{RoleOperator, RoleOperator, true},
		{RoleOperator, RoleManager, false},
		{RoleManager, RoleViewer, true},
		{RoleManager, RoleOperator, true},
		{RoleManager, RoleManager, true},
	}

	for _, tt := range tests {
		t.Run(tt.role.String()+" at least "+tt.min.String(), func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.role.AtLeast(tt.min))
		})
	}
}

func TestActor_RequireRole(t *testing.T) {
	actor, err := NewActor(uuid.New(), uuid.New(), "Jane Doe", RoleOperator)
	require.NoError(t, err)

	t.Run("allows equal or lower requirement", func(t *testing.T) {
		assert.NoError(t, actor.RequireRole(RoleViewer))
		assert.NoError(t, actor.RequireRole(RoleOperator))
	})

	t.Run("forbids higher requirement", func(t *testing.T) {
		err := actor.RequireRole(RoleManager)

		require.Error(t, err)
		assert.True(t, shared.IsForbidden(err))
		assert.Contains(t, err.Error(), "manager")
	})
}

func TestNewActor(t *testing.T) {
	t.Run("fails with empty tenant ID", func(t *testing.T) {
		_, err := NewActor(uuid.Nil, uuid.New(), "Jane", RoleViewer)
		require.Error(t, err)
	})

	t.Run("fails with invalid role", func(t *testing.T) {
		_, err := NewActor(uuid.New(), uuid.New(), "Jane", Role("root"))
		require.Error(t, err)
	})
}
