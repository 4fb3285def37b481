package middleware

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/wirahusada/portal-backend/internal/app/models/dto"
	"github.com/wirahusada/portal-backend/internal/pkg/validation"
)

// BindJSON binds and validates the request body into obj. On failure it
// writes a 400 envelope and returns false. The errors list is details when
// given, otherwise one line per failed field.
func BindJSON(c *gin.Context, obj interface{}, message string, details ...string) bool {
	if err := c.ShouldBindJSON(obj); err != nil {
		abortBinding(c, err, message, details)
		return false
	}
	return true
}

// BindQuery binds and validates query parameters into obj
func BindQuery(c *gin.Context, obj interface{}, message string, details ...string) bool {
	if err := c.ShouldBindQuery(obj); err != nil {
		abortBinding(c, err, message, details)
		return false
	}
	return true
}

func abortBinding(c *gin.Context, err error, message string, details []string) {
	if len(details) == 0 {
		details = bindingErrors(err)
	}
	c.AbortWithStatusJSON(http.StatusBadRequest, dto.NewErrorResponse(message, details...))
}

func bindingErrors(err error) []string {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		out := make([]string, 0, len(verrs))
		for _, e := range verrs {
			out = append(out, validation.FormatFieldError(e))
		}
		return out
	}
	return []string{"Invalid request format"}
}
