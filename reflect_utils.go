package goserializer

import "reflect"

type missing struct{}

func (missing) String() string { return "<missing>" }

// Missing is the sentinel for "no value supplied". It differs from an
// explicitly supplied empty string or zero.
var Missing any = missing{}

// IsAbsent reports whether v is Missing or nil. JSON null counts as absent.
func IsAbsent(v any) bool {
	if v == nil {
		return true
	}
	_, ok := v.(missing)
	return ok
}

// Mapping is implemented by record types that are not Go maps.
type Mapping interface {
	Get(key string) (any, bool)
}

// IsMapping reports whether v can be read as a record.
func IsMapping(v any) bool {
	switch t := v.(type) {
	case map[string]any, Mapping:
		return true
	case nil:
		return false
	default:
		rv := reflect.ValueOf(t)
		return rv.Kind() == reflect.Map && rv.Type().Key().Kind() == reflect.String
	}
}

// Lookup extracts key from a mapping-like record. It returns Missing when
// the key is absent or rec is not a mapping.
func Lookup(rec any, key string) any {
	switch t := rec.(type) {
	case map[string]any:
		if v, ok := t[key]; ok {
			return v
		}
		return Missing
	case *Record:
		if v, ok := t.Get(key); ok {
			return v
		}
		return Missing
	case Mapping:
		if v, ok := t.Get(key); ok {
			return v
		}
		return Missing
	case nil:
		return Missing
	}
	rv := reflect.ValueOf(rec)
	if rv.Kind() != reflect.Map || rv.Type().Key().Kind() != reflect.String {
		return Missing
	}
	mv := rv.MapIndex(reflect.ValueOf(key).Convert(rv.Type().Key()))
	if !mv.IsValid() {
		return Missing
	}
	return mv.Interface()
}

// Records normalizes a many-mode input into a slice. ok is false when v is
// not a sequence. Byte slices are raw payloads, not sequences.
func Records(v any) ([]any, bool) {
	switch t := v.(type) {
	case []any:
		return t, true
	case []map[string]any:
		out := make([]any, len(t))
		for i := range t {
			out[i] = t[i]
		}
		return out, true
	case []*Record:
		out := make([]any, len(t))
		for i := range t {
			out[i] = t[i]
		}
		return out, true
	case nil:
		return nil, true
	case []byte:
		return nil, false
	}
	rv := reflect.ValueOf(v)
	if rv.Kind() != reflect.Slice && rv.Kind() != reflect.Array {
		return nil, false
	}
	if rv.Kind() == reflect.Slice && rv.Type().Elem().Kind() == reflect.Uint8 {
		return nil, false
	}
	out := make([]any, rv.Len())
	for i := range out {
		out[i] = rv.Index(i).Interface()
	}
	return out, true
}
