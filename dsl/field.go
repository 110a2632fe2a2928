package dsl

import (
	"fmt"

	"github.com/google/uuid"

	goserializer "github.com/reoring/goserializer"
	"github.com/reoring/goserializer/validators"
)

// Kind tags a field variant.
type Kind int

const (
	KindChar Kind = iota
	KindInteger
	KindBoolean
	KindURL
	KindChoice
	KindUUID
	KindNested
)

var kindNames = [...]string{
	KindChar:    "char",
	KindInteger: "integer",
	KindBoolean: "boolean",
	KindURL:     "url",
	KindChoice:  "choice",
	KindUUID:    "uuid",
	KindNested:  "nested",
}

func (k Kind) String() string {
	if k >= 0 && int(k) < len(kindNames) {
		return kindNames[k]
	}
	return fmt.Sprintf("kind(%d)", int(k))
}

// Field declares the rules of one schema attribute. The chain methods
// configure the receiver; Build copies the configuration, so changing a
// Field afterwards does not affect schemas already built from it.
type Field struct {
	kind      Kind
	minLength *int
	maxLength *int
	minValue  *int
	maxValue  *int
	choices   []any
	child     *Schema
	many      bool
	misuse    []string
}

// Char declares a text field. Values pass through unchanged.
func Char() *Field { return &Field{kind: KindChar} }

// Integer declares an integer field. Values are coerced to int.
func Integer() *Field { return &Field{kind: KindInteger} }

// Boolean declares a boolean field accepting bools and the tokens
// true/True/1 and false/False/0.
func Boolean() *Field { return &Field{kind: KindBoolean} }

// URL declares a field holding a URL with a scheme.
func URL() *Field { return &Field{kind: KindURL} }

// Choice declares a field restricted to choices. At least one choice is
// required; Build reports an empty set.
func Choice(choices ...any) *Field {
	return &Field{kind: KindChoice, choices: append([]any(nil), choices...)}
}

// UUID declares a field holding a UUID, coerced to its canonical form.
func UUID() *Field { return &Field{kind: KindUUID} }

// Nested declares a field validated by another schema. The raw value is a
// sub-record (or a list of them after Many).
func Nested(s *Schema) *Field { return &Field{kind: KindNested, child: s} }

// Kind returns the variant tag.
func (f *Field) Kind() Kind { return f.kind }

// MinLength sets the minimum length of a Char field.
func (f *Field) MinLength(n int) *Field {
	f.only("min_length", KindChar)
	f.minLength = &n
	return f
}

// MaxLength sets the maximum length of a Char field.
func (f *Field) MaxLength(n int) *Field {
	f.only("max_length", KindChar)
	f.maxLength = &n
	return f
}

// Min sets the lower bound of an Integer field.
func (f *Field) Min(n int) *Field {
	f.only("min_value", KindInteger)
	f.minValue = &n
	return f
}

// Max sets the upper bound of an Integer field.
func (f *Field) Max(n int) *Field {
	f.only("max_value", KindInteger)
	f.maxValue = &n
	return f
}

// Many makes a Nested field expect a list of sub-records.
func (f *Field) Many() *Field {
	f.only("many", KindNested)
	f.many = true
	return f
}

func (f *Field) only(opt string, k Kind) {
	if f.kind != k {
		f.misuse = append(f.misuse, fmt.Sprintf("%s does not apply to %s fields", opt, f.kind))
	}
}

// compiledField is the immutable rule set a schema holds per field.
type compiledField struct {
	name       string
	kind       Kind
	required   bool
	validators []validators.Validator
	coerce     func(any) any
	def        any
	hasDefault bool
	declared   bool // default set explicitly
	child      *Schema
	many       bool
	spec       Field
}

// compile validates the declaration and assembles the validator chain,
// which always starts with the presence check.
func (f *Field) compile(name string, required bool, def any, hasDefault bool) (*compiledField, error) {
	if len(f.misuse) > 0 {
		return nil, configErr("field %q: %s", name, f.misuse[0])
	}
	cf := &compiledField{
		name:       name,
		kind:       f.kind,
		required:   required,
		validators: []validators.Validator{validators.Presence(required)},
		coerce:     identity,
		spec:       *f,
	}
	switch f.kind {
	case KindChar:
		if err := checkRange(name, "length", f.minLength, f.maxLength, true); err != nil {
			return nil, err
		}
		if f.minLength != nil {
			cf.validators = append(cf.validators, validators.MinLength(*f.minLength))
		}
		if f.maxLength != nil {
			cf.validators = append(cf.validators, validators.MaxLength(*f.maxLength))
		}
		cf.def = ""
	case KindInteger:
		if err := checkRange(name, "value", f.minValue, f.maxValue, false); err != nil {
			return nil, err
		}
		cf.validators = append(cf.validators, validators.Integer())
		if f.minValue != nil {
			cf.validators = append(cf.validators, whenInteger{validators.MinValue(*f.minValue)})
		}
		if f.maxValue != nil {
			cf.validators = append(cf.validators, whenInteger{validators.MaxValue(*f.maxValue)})
		}
		cf.coerce = coerceInt
		cf.def = 0
	case KindBoolean:
		cf.validators = append(cf.validators, validators.Boolean())
		cf.coerce = coerceBool
		cf.def = false
	case KindURL:
		cf.validators = append(cf.validators, validators.URL())
		cf.def = ""
	case KindChoice:
		if len(f.choices) == 0 {
			return nil, configErr("field %q: choice field requires at least one choice", name)
		}
		cf.validators = append(cf.validators, validators.Choice(f.choices...))
	case KindUUID:
		cf.validators = append(cf.validators, validators.UUID())
		cf.coerce = coerceUUID
		cf.def = ""
	case KindNested:
		if f.child == nil {
			return nil, configErr("field %q: nested field requires a schema", name)
		}
		cf.child = f.child
		cf.many = f.many
	default:
		return nil, configErr("field %q: unknown field kind %s", name, f.kind)
	}
	cf.hasDefault = cf.def != nil
	if hasDefault {
		if def == nil {
			return nil, configErr("field %q: default must not be nil", name)
		}
		if f.kind == KindNested {
			return nil, configErr("field %q: nested fields cannot declare a default", name)
		}
		if fs := cf.check(def, false); len(fs) > 0 {
			return nil, configErr("field %q: default %v is invalid: %s", name, def, fs[0].Message)
		}
		cf.def = def
		cf.hasDefault = true
		cf.declared = true
	}
	return cf, nil
}

func checkRange(name, what string, lo, hi *int, nonNegative bool) error {
	if nonNegative {
		if lo != nil && *lo < 0 {
			return configErr("field %q: min %s must not be negative", name, what)
		}
		if hi != nil && *hi < 0 {
			return configErr("field %q: max %s must not be negative", name, what)
		}
	}
	if lo != nil && hi != nil && *lo > *hi {
		return configErr("field %q: min %s %d exceeds max %s %d", name, what, *lo, what, *hi)
	}
	return nil
}

// check runs every validator in order and collects the failures. With
// failFast it stops after the first one.
func (cf *compiledField) check(v any, failFast bool) []goserializer.Failure {
	var out []goserializer.Failure
	for _, vd := range cf.validators {
		err := vd.Validate(v)
		if err == nil {
			continue
		}
		ve, _ := validators.AsValidationError(err)
		out = append(out, goserializer.Failure{Code: ve.Code, Message: ve.Message, Params: ve.Params})
		if failFast {
			break
		}
	}
	return out
}

// defaultValue returns the coerced default for an absent optional field.
func (cf *compiledField) defaultValue() any {
	if goserializer.IsAbsent(cf.def) {
		return cf.def
	}
	return cf.coerce(cf.def)
}

// whenInteger runs a bound check only on values that are integers, so a
// non-integer reports a single invalid_type failure.
type whenInteger struct{ validators.Validator }

func (w whenInteger) Validate(v any) error {
	if _, ok := validators.ToInt(v); !ok {
		return nil
	}
	return w.Validator.Validate(v)
}

func identity(v any) any { return v }

func coerceInt(v any) any {
	i, _ := validators.ToInt(v)
	return i
}

func coerceBool(v any) any {
	b, _ := validators.ToBool(v)
	return b
}

func coerceUUID(v any) any {
	s, _ := v.(string)
	id, err := uuid.Parse(s)
	if err != nil {
		return s
	}
	return id.String()
}
