package validators

import (
	"math"
	"reflect"
	"strconv"
	"strings"
	"unicode/utf8"
)

var (
	truthy = map[string]bool{"true": true, "True": true, "1": true}
	falsy  = map[string]bool{"false": true, "False": true, "0": true}
)

type int64er interface {
	Int64() (int64, error)
}

// ToInt converts v to an int. Accepted: Go integer types in range, integral
// floats, decimal strings (surrounding spaces ignored) and json.Number.
// Booleans are rejected.
func ToInt(v any) (int, bool) {
	switch t := v.(type) {
	case int:
		return t, true
	case int8:
		return int(t), true
	case int16:
		return int(t), true
	case int32:
		return int(t), true
	case int64:
		return int64ToInt(t)
	case uint:
		return uintToInt(uint64(t))
	case uint8:
		return int(t), true
	case uint16:
		return int(t), true
	case uint32:
		return uintToInt(uint64(t))
	case uint64:
		return uintToInt(t)
	case float32:
		return floatToInt(float64(t))
	case float64:
		return floatToInt(t)
	case string:
		return parseInt(t)
	case bool:
		return 0, false
	case int64er:
		i, err := t.Int64()
		if err != nil {
			return 0, false
		}
		return int64ToInt(i)
	}
	rv := reflect.ValueOf(v)
	if rv.IsValid() && rv.Kind() == reflect.String {
		return parseInt(rv.String())
	}
	return 0, false
}

func parseInt(s string) (int, bool) {
	i, err := strconv.ParseInt(strings.TrimSpace(s), 10, strconv.IntSize)
	if err != nil {
		return 0, false
	}
	return int(i), true
}

func int64ToInt(i int64) (int, bool) {
	if i < math.MinInt || i > math.MaxInt {
		return 0, false
	}
	return int(i), true
}

func uintToInt(u uint64) (int, bool) {
	if u > math.MaxInt {
		return 0, false
	}
	return int(u), true
}

func floatToInt(f float64) (int, bool) {
	if math.IsNaN(f) || math.IsInf(f, 0) || f != math.Trunc(f) {
		return 0, false
	}
	if f < math.MinInt || f >= math.MaxInt {
		return 0, false
	}
	return int(f), true
}

// ToBool converts v to a bool. Accepted: bool, the tokens
// "true"/"True"/"1" and "false"/"False"/"0" (also as json.Number), and the
// integers 1 and 0.
func ToBool(v any) (bool, bool) {
	switch t := v.(type) {
	case bool:
		return t, true
	case string:
		return tokenBool(t)
	}
	rv := reflect.ValueOf(v)
	if !rv.IsValid() {
		return false, false
	}
	switch rv.Kind() {
	case reflect.String:
		return tokenBool(rv.String())
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		i, ok := ToInt(v)
		if !ok {
			return false, false
		}
		switch i {
		case 1:
			return true, true
		case 0:
			return false, true
		}
	}
	return false, false
}

func tokenBool(s string) (bool, bool) {
	if truthy[s] {
		return true, true
	}
	if falsy[s] {
		return false, true
	}
	return false, false
}

type lener interface {
	Len() int
}

// Length returns the length of strings (in runes), slices, arrays and maps.
func Length(v any) (int, bool) {
	switch t := v.(type) {
	case string:
		return utf8.RuneCountInString(t), true
	case lener:
		return t.Len(), true
	}
	rv := reflect.ValueOf(v)
	if !rv.IsValid() {
		return 0, false
	}
	switch rv.Kind() {
	case reflect.String:
		return utf8.RuneCountInString(rv.String()), true
	case reflect.Slice, reflect.Array, reflect.Map:
		return rv.Len(), true
	}
	return 0, false
}
