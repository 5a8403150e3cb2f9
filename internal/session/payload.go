package session

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

// ErrSurfaceUnavailable is wrapped by a StartupError when the rendering
// surface handle could not be resolved.
var ErrSurfaceUnavailable = errors.New("rendering surface unavailable")

// Payload is what the caller hands over to open an editing session. Pointer
// fields distinguish "missing" from zero values.
type Payload struct {
	FieldText  *string  `json:"fieldText" yaml:"fieldText" validate:"required"`
	FieldIndex *int     `json:"fieldIndex" yaml:"fieldIndex" validate:"required,min=0"`
	AllFields  []string `json:"allFields" yaml:"allFields" validate:"required"`
	ModelID    *int64   `json:"modelId" yaml:"modelId" validate:"required"`
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	// Report wire names rather than Go field names.
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name, _, _ := strings.Cut(fld.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// Validate checks p all-or-nothing. It returns a *StartupError listing every
// missing or invalid field, or nil.
func (p Payload) Validate() error {
	if err := validate.Struct(p); err != nil {
		var verrs validator.ValidationErrors
		if !errors.As(err, &verrs) {
			return &StartupError{Reason: "invalid startup payload", Err: err}
		}
		fields := make([]string, 0, len(verrs))
		for _, fe := range verrs {
			fields = append(fields, fe.Field())
		}
		return &StartupError{Fields: fields, Reason: "missing or invalid startup fields", Err: err}
	}
	if *p.FieldIndex >= len(p.AllFields) {
		return &StartupError{
			Fields: []string{"fieldIndex"},
			Reason: fmt.Sprintf("field index %d out of range for %d fields", *p.FieldIndex, len(p.AllFields)),
		}
	}
	return nil
}

// StartupError means a session could not be opened. No partial session exists
// when it is returned.
type StartupError struct {
	Fields []string
	Reason string
	Err    error
}

func (e *StartupError) Error() string {
	msg := "cannot start editor session: " + e.Reason
	if len(e.Fields) > 0 {
		msg += " (" + strings.Join(e.Fields, ", ") + ")"
	}
	return msg
}

func (e *StartupError) Unwrap() error {
	return e.Err
}
