package auth

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stocktally/backend/internal/domain/identity"
	"github.com/stocktally/backend/internal/infrastructure/config"
)

func newTestService(expiration time.Duration) *JWTService {
	return NewJWTService(config.JWTConfig{
		Secret:          "test-secret-test-secret-test-secret",
		TokenExpiration: expiration,
		Issuer:          "stocktally-test",
	})
}

func TestJWTService_RoundTrip(t *testing.T) {
	service := newTestService(time.Hour)
	actor, err := identity.NewActor(uuid.New(), uuid.New(), "Jane Doe", identity.RoleManager)
	require.NoError(t, err)

	token, err := service.Generate(actor)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := service.Validate(token)
	require.NoError(t, err)

	parsed, err := claims.Actor()
	require.NoError(t, err)
	assert.Equal(t, actor.TenantID, parsed.TenantID)
	assert.Equal(t, actor.UserID, parsed.UserID)
	assert.Equal(t, actor.Name, parsed.Name)
	assert.Equal(t, actor.Role, parsed.Role)
}

func TestJWTService_Validate(t *testing.T) {
	t.Run("rejects garbage", func(t *testing.T) {
		service := newTestService(time.Hour)

		_, err := service.Validate("not-a-token")

		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("rejects an expired token", func(t *testing.T) {
		service := newTestService(-time.Minute)
		actor, err := identity.NewActor(uuid.New(), uuid.New(), "Jane", identity.RoleViewer)
		require.NoError(t, err)

		token, err := service.Generate(actor)
		require.NoError(t, err)

		_, err = service.Validate(token)

		assert.ErrorIs(t, err, ErrExpiredToken)
	})

	t.Run("rejects a token signed with another secret", func(t *testing.T) {
		other := NewJWTService(config.JWTConfig{
			Secret:          "another-secret-another-secret-xx",
			TokenExpiration: time.Hour,
			Issuer:          "stocktally-test",
		})
		actor, err := identity.NewActor(uuid.New(), uuid.New(), "Jane", identity.RoleViewer)
		require.NoError(t, err)

		token, err := other.Generate(actor)
		require.NoError(t, err)

		_, err = newTestService(time.Hour).Validate(token)

		assert.ErrorIs(t, err, ErrInvalidToken)
	})
}

func TestClaims_Actor(t *testing.T) {
	t.Run("rejects an unknown role", func(t *testing.T) {
		claims := &Claims{
			TenantID: uuid.New().String(),
			UserID:   uuid.New().String(),
			Name:     "Jane",
			Role:     "superuser",
		}

		_, err := claims.Actor()

		assert.ErrorIs(t, err, ErrInvalidClaims)
	})
}
