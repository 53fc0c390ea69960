package factory

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

// =============================================================================
// SENTINEL ERRORS - Use with errors.Is()
// =============================================================================

// ErrInvalidInput is returned for malformed or out-of-range request bodies.
var ErrInvalidInput = errors.New("invalid input")

// =============================================================================
// STRUCTURED ERRORS
// =============================================================================

// FieldIssue is one failed rule on one JSON field.
type FieldIssue struct {
	Field string `json:"field"`
	Rule  string `json:"rule"`
	Param string `json:"param,omitempty"`
}

func (i FieldIssue) String() string {
	if i.Param == "" {
		return fmt.Sprintf("%s (%s)", i.Field, i.Rule)
	}
	return fmt.Sprintf("%s (%s=%s)", i.Field, i.Rule, i.Param)
}

// ValidationError lists every field that failed validation.
type ValidationError struct {
	Issues []FieldIssue
}

func (e *ValidationError) Error() string {
	parts := make([]string, 0, len(e.Issues))
	for _, i := range e.Issues {
		parts = append(parts, i.String())
	}
	return "invalid input: " + strings.Join(parts, ", ")
}

func (e *ValidationError) Unwrap() error {
	return ErrInvalidInput
}

func (e *ValidationError) add(field, rule, param string) {
	e.Issues = append(e.Issues, FieldIssue{Field: field, Rule: rule, Param: param})
}

// errOrNil keeps a typed nil from escaping as a non-nil error.
func (e *ValidationError) errOrNil() error {
	if len(e.Issues) == 0 {
		return nil
	}
	return e
}

// fromValidator converts validator output to a ValidationError.
func fromValidator(err error) *ValidationError {
	verr := &ValidationError{}
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		verr.add("body", "invalid", err.Error())
		return verr
	}
	for _, fe := range fieldErrs {
		verr.add(fieldPath(fe.Namespace()), fe.Tag(), fe.Param())
	}
	return verr
}

// fieldPath drops the root struct name: "PayrollJSON.overtime.hours" -> "overtime.hours".
func fieldPath(ns string) string {
	if i := strings.IndexByte(ns, '.'); i >= 0 {
		return ns[i+1:]
	}
	return ns
}
