package handler

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

// echoValidator wraps go-playground/validator so Echo can call c.Validate(req).
type echoValidator struct {
	v *validator.Validate
}

// NewValidator returns an echoValidator ready to be assigned to echo.Echo.Validator.
// Violations are reported with the JSON field name.
func NewValidator() *echoValidator {
	v := validator.New()
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return &echoValidator{v: v}
}

// Violation is a single failed rule.
type Violation struct {
	Field string
	Tag   string
	Param string
}

// ValidationError keeps every violation so handlers can pick the message
// their endpoint returns.
type ValidationError struct {
	Violations []Violation
}

func (e *ValidationError) Error() string {
	msgs := make([]string, 0, len(e.Violations))
	for _, v := range e.Violations {
		msgs = append(msgs, v.message())
	}
	return strings.Join(msgs, "; ")
}

// Validate satisfies the echo.Validator interface.
func (ev *echoValidator) Validate(i any) error {
	err := ev.v.Struct(i)
	if err == nil {
		return nil
	}

	var ve validator.ValidationErrors
	if !errors.As(err, &ve) {
		return err
	}
	out := &ValidationError{Violations: make([]Violation, 0, len(ve))}
	for _, fe := range ve {
		out.Violations = append(out.Violations, Violation{Field: fe.Field(), Tag: fe.Tag(), Param: fe.Param()})
	}
	return out
}

func (v Violation) message() string {
	switch v.Tag {
	case "required":
		return v.Field + " is required"
	case "gte":
		return fmt.Sprintf("%s must be at least %s", v.Field, v.Param)
	case "oneof":
		return fmt.Sprintf("%s must be one of: %s", v.Field, v.Param)
	default:
		return fmt.Sprintf("%s failed validation (%s)", v.Field, v.Tag)
	}
}
