package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/wirahusada/portal-backend/internal/app/models/dto"
	"github.com/wirahusada/portal-backend/internal/pkg/apperrors"
	"github.com/wirahusada/portal-backend/internal/pkg/logger"
)

// StatusForKind maps an error kind to its HTTP status
func StatusForKind(kind apperrors.Kind) int {
	switch kind {
	case apperrors.KindValidation:
		return http.StatusBadRequest
	case apperrors.KindUnauthorized:
		return http.StatusUnauthorized
	case apperrors.KindForbidden:
		return http.StatusForbidden
	case apperrors.KindNotFound:
		return http.StatusNotFound
	case apperrors.KindConflict:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

// HandleAPIError renders err as a failed envelope. The envelope message is
// fallbackMessage when given, otherwise the error's own message; the error's
// message is always listed in errors.
func HandleAPIError(c *gin.Context, fallbackMessage string, err error) {
	kind := apperrors.KindOf(err)
	status := StatusForKind(kind)
	detail := apperrors.MessageOf(err)

	message := fallbackMessage
	if message == "" {
		message = detail
	}

	if status >= http.StatusInternalServerError {
		logger.Error().
			Err(err).
			Str("method", c.Request.Method).
			Str("path", c.Request.URL.Path).
			Str("request_id", RequestIDFrom(c)).
			Msg("Request failed")
	}

	c.AbortWithStatusJSON(status, dto.NewErrorResponse(message, detail))
}

// Recovery turns a panic into a 500 envelope
func Recovery() gin.HandlerFunc {
	return gin.CustomRecovery(func(c *gin.Context, recovered interface{}) {
		logger.Error().
			Interface("panic", recovered).
			Str("path", c.Request.URL.Path).
			Str("request_id", RequestIDFrom(c)).
			Msg("Recovered from panic")
		c.AbortWithStatusJSON(http.StatusInternalServerError, dto.NewErrorResponse("Internal server error"))
	})
}

// NoRoute answers unknown paths with the envelope
func NoRoute(c *gin.Context) {
	c.JSON(http.StatusNotFound, dto.NewErrorResponse("Route not found", c.Request.Method+" "+c.Request.URL.Path))
}
