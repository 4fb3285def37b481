package validation

import (
	"fmt"
	"regexp"
	"sync"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

// Validation rule patterns
var (
	// UsernamePattern allows letters and digits only
	UsernamePattern = regexp.MustCompile(`^[a-zA-Z0-9]+$`)

	// ISODatePattern is the YYYY-MM-DD shape
	ISODatePattern = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)
)

// Custom tag names
const (
	TagISODate  = "isodate"
	TagUsername = "alphanum_username"
)

var (
	standalone     *validator.Validate
	standaloneOnce sync.Once
	ginOnce        sync.Once
	ginErr         error
)

func isoDate(fl validator.FieldLevel) bool {
	return ISODatePattern.MatchString(fl.Field().String())
}

func username(fl validator.FieldLevel) bool {
	return UsernamePattern.MatchString(fl.Field().String())
}

// Register adds the custom rules to v
func Register(v *validator.Validate) error {
	if err := v.RegisterValidation(TagISODate, isoDate); err != nil {
		return fmt.Errorf("register %s: %w", TagISODate, err)
	}
	if err := v.RegisterValidation(TagUsername, username); err != nil {
		return fmt.Errorf("register %s: %w", TagUsername, err)
	}
	return nil
}

// RegisterGinValidators installs the custom rules on gin's binding validator
func RegisterGinValidators() error {
	ginOnce.Do(func() {
		v, ok := binding.Validator.Engine().(*validator.Validate)
		if !ok {
			ginErr = fmt.Errorf("unexpected binding engine %T", binding.Validator.Engine())
			return
		}
		ginErr = Register(v)
	})
	return ginErr
}

// Validator returns a shared validator carrying the custom rules
func Validator() *validator.Validate {
	standaloneOnce.Do(func() {
		standalone = validator.New()
		if err := Register(standalone); err != nil {
			panic(err)
		}
	})
	return standalone
}

// ValidateEmail checks an email address
func ValidateEmail(email string) error {
	return Validator().Var(email, "required,email")
}

// FormatFieldError renders one validation failure as a short sentence
func FormatFieldError(e validator.FieldError) string {
	switch e.Tag() {
	case "required":
		return e.Field() + " is required"
	case "min":
		return e.Field() + " must be at least " + e.Param()
	case "max":
		return e.Field() + " must be at most " + e.Param()
	case "email":
		return e.Field() + " must be a valid email address"
	case "oneof":
		return e.Field() + " must be one of: " + e.Param()
	case TagISODate:
		return e.Field() + " must use the YYYY-MM-DD format"
	case TagUsername:
		return e.Field() + " may only contain letters and digits"
	default:
		return e.Field() + " validation failed: " + e.Tag()
	}
}
