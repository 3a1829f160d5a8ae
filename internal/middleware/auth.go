package middleware

import (
	"context"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/Manohar-jami/Job-Portal-Api/internal/apperrors"
	"github.com/Manohar-jami/Job-Portal-Api/internal/auth"
	"github.com/Manohar-jami/Job-Portal-Api/internal/response"
)

const principalKey = "principal"

type Authenticator interface {
	Authenticate(ctx context.Context, accessToken string) (*auth.Principal, error)
}

// RequireAuth rejects requests without a valid bearer access token and
// stores the caller in the gin context.
func RequireAuth(authenticator Authenticator) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" {
			response.Error(c, apperrors.Unauthorized("Authentication credentials were not provided."))
			return
		}
		parts := strings.SplitN(header, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") || strings.TrimSpace(parts[1]) == "" {
			response.Error(c, apperrors.Unauthorized("Invalid Authorization header format"))
			return
		}

		principal, err := authenticator.Authenticate(c.Request.Context(), strings.TrimSpace(parts[1]))
		if err != nil {
			response.Error(c, err)
			return
		}

		c.Set(principalKey, *principal)
		logger := zerolog.Ctx(c.Request.Context()).With().
			Uint("user_id", principal.UserID).
			Str("role", string(principal.Role)).
			Logger()
		c.Request = c.Request.WithContext(logger.WithContext(c.Request.Context()))
		c.Next()
	}
}

// PrincipalFrom returns the caller stored by RequireAuth.
func PrincipalFrom(c *gin.Context) (auth.Principal, bool) {
	v, ok := c.Get(principalKey)
	if !ok {
		return auth.Principal{}, false
	}
	p, ok := v.(auth.Principal)
	return p, ok
}
