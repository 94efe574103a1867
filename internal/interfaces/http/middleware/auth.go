package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/stocktally/backend/internal/domain/identity"
	"github.com/stocktally/backend/internal/infrastructure/auth"
	"github.com/stocktally/backend/internal/interfaces/http/dto"
)

// ActorKey is the gin context key under which the authenticated actor is stored
const ActorKey = "actor"

// Auth validates the bearer token and stores the resulting actor on the
// request context. Requests without a valid token are rejected.
func Auth(jwtService *auth.JWTService) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" {
			abortUnauthorized(c, "Missing Authorization header")
			return
		}

		parts := strings.SplitN(header, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			abortUnauthorized(c, "Authorization header must be a Bearer token")
			return
		}

		claims, err := jwtService.Validate(parts[1])
		if err != nil {
			abortUnauthorized(c, "Invalid or expired token")
			return
		}

		actor, err := claims.Actor()
		if err != nil {
			abortUnauthorized(c, "Invalid token claims")
			return
		}

		c.Set(ActorKey, actor)
		c.Next()
	}
}

// GetActor returns the authenticated actor stored by the Auth middleware
func GetActor(c *gin.Context) (identity.Actor, bool) {
	value, exists := c.Get(ActorKey)
	if !exists {
		return identity.Actor{}, false
	}
	actor, ok := value.(identity.Actor)
	return actor, ok
}

func abortUnauthorized(c *gin.Context, message string) {
	c.AbortWithStatusJSON(http.StatusUnauthorized, dto.NewErrorResponse(dto.ErrCodeUnauthorized, message))
}
