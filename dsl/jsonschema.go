package dsl

import (
	js "github.com/reoring/goserializer/jsonschema"
)

// JSONSchema projects the schema into a JSON Schema object. Properties are
// listed in field order via propertyOrder.
func (s *Schema) JSONSchema() (*js.Schema, error) {
	out, err := s.objectSchema()
	if err != nil {
		return nil, err
	}
	out.Schema = js.Draft
	return out, nil
}

func (s *Schema) objectSchema() (*js.Schema, error) {
	out := &js.Schema{
		Title:      s.name,
		Type:       "object",
		Properties: make(map[string]*js.Schema, len(s.fields)),
	}
	for _, f := range s.fields {
		ps, err := f.jsonSchema()
		if err != nil {
			return nil, err
		}
		out.Properties[f.name] = ps
		out.PropertyOrder = append(out.PropertyOrder, f.name)
		if f.required {
			out.Required = append(out.Required, f.name)
		}
	}
	return out, nil
}

func (cf *compiledField) jsonSchema() (*js.Schema, error) {
	spec := cf.spec
	var out *js.Schema
	switch cf.kind {
	case KindChar:
		out = &js.Schema{Type: "string", MinLength: spec.minLength, MaxLength: spec.maxLength}
	case KindInteger:
		out = &js.Schema{Type: "integer", Minimum: spec.minValue, Maximum: spec.maxValue}
	case KindBoolean:
		out = &js.Schema{Type: "boolean"}
	case KindURL:
		out = &js.Schema{Type: "string", Format: "uri"}
	case KindUUID:
		out = &js.Schema{Type: "string", Format: "uuid"}
	case KindChoice:
		out = &js.Schema{Enum: append([]any(nil), spec.choices...)}
	case KindNested:
		child, err := cf.child.objectSchema()
		if err != nil {
			return nil, err
		}
		if cf.many {
			return &js.Schema{Type: "array", Items: child}, nil
		}
		return child, nil
	default:
		return nil, configErr("field %q: unknown field kind %s", cf.name, cf.kind)
	}
	if cf.declared {
		out.Default = cf.def
	}
	return out, nil
}
