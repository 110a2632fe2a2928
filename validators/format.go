package validators

import (
	"fmt"
	"net/url"
	"reflect"
	"strings"

	"github.com/google/uuid"

	goserializer "github.com/reoring/goserializer"
	"github.com/reoring/goserializer/i18n"
)

type urlValidator struct{}

// URL fails when the value is not a string that parses as a URL with a
// scheme.
func URL() Validator { return urlValidator{} }

func (urlValidator) Validate(v any) error {
	if goserializer.IsAbsent(v) {
		return nil
	}
	s, ok := v.(string)
	if !ok {
		return fail(goserializer.CodeInvalidFormat, i18n.KeyURL, nil, nil)
	}
	u, err := url.Parse(s)
	if err != nil || u.Scheme == "" {
		return fail(goserializer.CodeInvalidFormat, i18n.KeyURL, nil, map[string]any{"format": "uri"})
	}
	return nil
}

type uuidValidator struct{}

// UUID fails when the value is not a string holding a UUID.
func UUID() Validator { return uuidValidator{} }

func (uuidValidator) Validate(v any) error {
	if goserializer.IsAbsent(v) {
		return nil
	}
	s, ok := v.(string)
	if !ok {
		return fail(goserializer.CodeInvalidFormat, i18n.KeyUUID, nil, nil)
	}
	if _, err := uuid.Parse(s); err != nil {
		return fail(goserializer.CodeInvalidFormat, i18n.KeyUUID, nil, map[string]any{"format": "uuid"})
	}
	return nil
}

type choice struct {
	choices []any
	label   string
}

// Choice fails when a present value is not one of choices. Absent values
// pass; Presence decides whether absence is acceptable.
func Choice(choices ...any) Validator {
	labels := make([]string, len(choices))
	for i, c := range choices {
		labels[i] = fmt.Sprint(c)
	}
	return choice{choices: append([]any(nil), choices...), label: strings.Join(labels, ", ")}
}

func (c choice) Validate(v any) error {
	if goserializer.IsAbsent(v) {
		return nil
	}
	if Contains(c.choices, v) {
		return nil
	}
	return fail(goserializer.CodeInvalidEnum, i18n.KeyChoice,
		map[string]string{"choices": c.label},
		map[string]any{"choices": c.choices})
}

// Contains reports whether v equals one of set.
func Contains(set []any, v any) bool {
	for _, c := range set {
		if equal(c, v) {
			return true
		}
	}
	return false
}

func equal(a, b any) bool {
	if a == nil || b == nil {
		return a == b
	}
	ta, tb := reflect.TypeOf(a), reflect.TypeOf(b)
	if ta == tb && ta.Comparable() {
		return a == b
	}
	if fa, ok := number(a); ok {
		if fb, ok := number(b); ok {
			return fa == fb
		}
	}
	return reflect.DeepEqual(a, b)
}

type float64er interface {
	Float64() (float64, error)
}

// number reads Go numeric kinds and json.Number. Strings are not numbers
// here: "1" and 1 are different choices.
func number(v any) (float64, bool) {
	if n, ok := v.(float64er); ok {
		f, err := n.Float64()
		return f, err == nil
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return float64(rv.Int()), true
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return float64(rv.Uint()), true
	case reflect.Float32, reflect.Float64:
		return rv.Float(), true
	}
	return 0, false
}
