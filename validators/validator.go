package validators

import (
	"errors"
	"strconv"

	goserializer "github.com/reoring/goserializer"
	"github.com/reoring/goserializer/i18n"
)

// Validator is one atomic pass/fail check over a raw value.
type Validator interface {
	Validate(v any) error
}

// Func adapts a plain function to a Validator.
type Func func(v any) error

func (f Func) Validate(v any) error { return f(v) }

// ValidationError carries one human readable failure.
type ValidationError struct {
	Code    string
	Message string
	Params  map[string]any
}

func (e *ValidationError) Error() string { return e.Message }

// AsValidationError extracts a *ValidationError from err. Plain errors are
// wrapped with CodeInvalidType so a custom Func can return any error.
func AsValidationError(err error) (*ValidationError, bool) {
	if err == nil {
		return nil, false
	}
	var ve *ValidationError
	if errors.As(err, &ve) {
		return ve, true
	}
	return &ValidationError{Code: goserializer.CodeInvalidType, Message: err.Error()}, true
}

func fail(code, key string, data map[string]string, params map[string]any) error {
	return &ValidationError{Code: code, Message: i18n.T(key, data), Params: params}
}

type presence struct{ required bool }

// Presence fails when required is set and the value is absent. Explicit
// empty values pass.
func Presence(required bool) Validator { return presence{required: required} }

func (p presence) Validate(v any) error {
	if p.required && goserializer.IsAbsent(v) {
		return fail(goserializer.CodeRequired, i18n.KeyRequired, nil, nil)
	}
	return nil
}

type minValue struct{ n int }

// MinValue fails when the value, coerced to an integer, is less than n.
func MinValue(n int) Validator { return minValue{n: n} }

func (m minValue) Validate(v any) error {
	if goserializer.IsAbsent(v) {
		return nil
	}
	i, ok := ToInt(v)
	if !ok {
		return fail(goserializer.CodeInvalidType, i18n.KeyInteger, nil, nil)
	}
	if i < m.n {
		return fail(goserializer.CodeTooSmall, i18n.KeyMinValue,
			map[string]string{"min": strconv.Itoa(m.n)},
			map[string]any{"min": m.n, "got": i})
	}
	return nil
}

type maxValue struct{ n int }

// MaxValue fails when the value, coerced to an integer, is greater than n.
func MaxValue(n int) Validator { return maxValue{n: n} }

func (m maxValue) Validate(v any) error {
	if goserializer.IsAbsent(v) {
		return nil
	}
	i, ok := ToInt(v)
	if !ok {
		return fail(goserializer.CodeInvalidType, i18n.KeyInteger, nil, nil)
	}
	if i > m.n {
		return fail(goserializer.CodeTooBig, i18n.KeyMaxValue,
			map[string]string{"max": strconv.Itoa(m.n)},
			map[string]any{"max": m.n, "got": i})
	}
	return nil
}

type minLength struct{ n int }

// MinLength fails when the value is shorter than n.
func MinLength(n int) Validator { return minLength{n: n} }

func (m minLength) Validate(v any) error {
	if goserializer.IsAbsent(v) {
		return nil
	}
	l, ok := Length(v)
	if !ok {
		return fail(goserializer.CodeInvalidType, i18n.KeyLength, nil, nil)
	}
	if l < m.n {
		return fail(goserializer.CodeTooShort, i18n.KeyMinLength,
			map[string]string{"min": strconv.Itoa(m.n)},
			map[string]any{"min": m.n, "got": l})
	}
	return nil
}

type maxLength struct{ n int }

// MaxLength fails when the value is longer than n.
func MaxLength(n int) Validator { return maxLength{n: n} }

func (m maxLength) Validate(v any) error {
	if goserializer.IsAbsent(v) {
		return nil
	}
	l, ok := Length(v)
	if !ok {
		return fail(goserializer.CodeInvalidType, i18n.KeyLength, nil, nil)
	}
	if l > m.n {
		return fail(goserializer.CodeTooLong, i18n.KeyMaxLength,
			map[string]string{"max": strconv.Itoa(m.n)},
			map[string]any{"max": m.n, "got": l})
	}
	return nil
}

type integer struct{}

// Integer fails when the value cannot be coerced to an integer.
func Integer() Validator { return integer{} }

func (integer) Validate(v any) error {
	if goserializer.IsAbsent(v) {
		return nil
	}
	if _, ok := ToInt(v); !ok {
		return fail(goserializer.CodeInvalidType, i18n.KeyInteger, nil, nil)
	}
	return nil
}

type boolean struct{}

// Boolean fails when the value is neither a bool nor one of the accepted
// tokens (see ToBool).
func Boolean() Validator { return boolean{} }

func (boolean) Validate(v any) error {
	if goserializer.IsAbsent(v) {
		return nil
	}
	if _, ok := ToBool(v); !ok {
		return fail(goserializer.CodeInvalidType, i18n.KeyBoolean, nil, nil)
	}
	return nil
}
