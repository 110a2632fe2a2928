package goserializer

import (
	"bytes"

	j "github.com/goccy/go-json"
	"github.com/mitchellh/mapstructure"
)

// Record is an ordered output record. Keys keep the order in which the
// schema wrote them, which is the schema's field order.
type Record struct {
	keys   []string
	values map[string]any
}

// NewRecord returns an empty Record with room for n keys.
func NewRecord(n int) *Record {
	return &Record{keys: make([]string, 0, n), values: make(map[string]any, n)}
}

// Set writes k. An existing key keeps its position.
func (r *Record) Set(k string, v any) {
	if _, ok := r.values[k]; !ok {
		r.keys = append(r.keys, k)
	}
	r.values[k] = v
}

// Get returns the value stored at k.
func (r *Record) Get(k string) (any, bool) {
	if r == nil {
		return nil, false
	}
	v, ok := r.values[k]
	return v, ok
}

// Keys returns the keys in insertion order.
func (r *Record) Keys() []string {
	if r == nil {
		return nil
	}
	return append([]string(nil), r.keys...)
}

func (r *Record) Len() int {
	if r == nil {
		return 0
	}
	return len(r.keys)
}

// Map converts the record (and nested records) into plain maps.
func (r *Record) Map() map[string]any {
	if r == nil {
		return nil
	}
	out := make(map[string]any, len(r.keys))
	for _, k := range r.keys {
		out[k] = plain(r.values[k])
	}
	return out
}

func plain(v any) any {
	switch t := v.(type) {
	case *Record:
		return t.Map()
	case []*Record:
		out := make([]any, len(t))
		for i, r := range t {
			out[i] = r.Map()
		}
		return out
	default:
		return v
	}
}

// Decode copies the record into out, a pointer to a struct or map. Struct
// fields are matched by their json tag; nested records fill nested structs
// and slices.
func (r *Record) Decode(out any) error {
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		TagName: "json",
		Result:  out,
	})
	if err != nil {
		return err
	}
	return dec.Decode(r.Map())
}

// MarshalJSON emits a JSON object with keys in insertion order.
func (r *Record) MarshalJSON() ([]byte, error) {
	if r == nil {
		return []byte("null"), nil
	}
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, k := range r.keys {
		if i > 0 {
			buf.WriteByte(',')
		}
		kb, err := j.Marshal(k)
		if err != nil {
			return nil, err
		}
		buf.Write(kb)
		buf.WriteByte(':')
		vb, err := j.Marshal(r.values[k])
		if err != nil {
			return nil, err
		}
		buf.Write(vb)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}
