// Package response renders service errors as JSON bodies.
package response

import (
	"errors"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/Manohar-jami/Job-Portal-Api/internal/apperrors"
)

// Error writes {"error": msg} (plus "fields" for validation errors) and aborts
// the chain. Internal causes are logged, never returned to the client.
func Error(c *gin.Context, err error) {
	var appErr *apperrors.Error
	if !errors.As(err, &appErr) {
		appErr = apperrors.Internal("Internal server error", err)
	}
	logger := zerolog.Ctx(c.Request.Context())
	switch appErr.Kind {
	case apperrors.KindInternal, apperrors.KindUpstream:
		logger.Error().Err(err).Str("path", c.Request.URL.Path).Msg(appErr.Message)
	default:
		logger.Debug().Err(err).Str("path", c.Request.URL.Path).Msg("request rejected")
	}

	body := gin.H{"error": appErr.Message}
	if appErr.Kind == apperrors.KindInternal {
		body["error"] = "Internal server error"
	}
	if len(appErr.Fields) > 0 {
		body["fields"] = appErr.Fields
	}
	_ = c.Error(err)
	c.AbortWithStatusJSON(appErr.Kind.HTTPStatus(), body)
}
