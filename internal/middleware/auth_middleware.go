package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/wirahusada/portal-backend/internal/app/models/dto"
	"github.com/wirahusada/portal-backend/internal/pkg/auth"
)

// Guard messages
const (
	MsgTokenRequired = "Access token required"
	MsgTokenInvalid  = "Invalid or expired token"
)

const studentKey = "student"

// TokenVerifier decodes a bearer token into its claims
type TokenVerifier interface {
	VerifyToken(token string) (*auth.Claims, error)
}

// AuthMiddleware guards routes that need an authenticated student
type AuthMiddleware struct {
	tokens TokenVerifier
	logger zerolog.Logger
}

// NewAuthMiddleware creates a new AuthMiddleware
func NewAuthMiddleware(tokens TokenVerifier, logger zerolog.Logger) *AuthMiddleware {
	return &AuthMiddleware{
		tokens: tokens,
		logger: logger,
	}
}

// JWTAuth rejects requests without a valid bearer token and attaches the
// token's identity to the context
func (m *AuthMiddleware) JWTAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		token := auth.ExtractBearerToken(c.GetHeader("Authorization"))
		if token == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, dto.NewErrorResponse(MsgTokenRequired))
			return
		}

		claims, err := m.tokens.VerifyToken(token)
		if err != nil {
			m.logger.Debug().Err(err).Str("path", c.FullPath()).Msg("Rejected bearer token")
			c.AbortWithStatusJSON(http.StatusForbidden, dto.NewErrorResponse(MsgTokenInvalid))
			return
		}

		c.Set(studentKey, claims.Identity)
		c.Next()
	}
}

// CurrentStudent returns the identity attached by JWTAuth
func CurrentStudent(c *gin.Context) (auth.Identity, bool) {
	v, ok := c.Get(studentKey)
	if !ok {
		return auth.Identity{}, false
	}
	identity, ok := v.(auth.Identity)
	return identity, ok && identity.NRM != ""
}
