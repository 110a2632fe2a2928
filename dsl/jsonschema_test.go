package dsl_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	g "github.com/reoring/goserializer/dsl"
	js "github.com/reoring/goserializer/jsonschema"
)

func TestJSONSchema_Snapshot(t *testing.T) {
	address := g.Serializer("Address").Field("zip", g.Integer()).MustBuild()
	s := g.Serializer("Profile").
		Field("name", g.Char().MinLength(1).MaxLength(20)).
		Field("age", g.Integer().Min(0).Max(150)).Optional().Default(18).
		Field("active", g.Boolean()).
		Field("home", g.URL()).Optional().
		Field("id", g.UUID()).
		Field("role", g.Choice("admin", "user")).
		Field("addresses", g.Nested(address).Many()).Optional().
		MustBuild()

	doc, err := s.JSONSchema()
	require.NoError(t, err)
	assert.Equal(t, js.Draft, doc.Schema)
	assert.Equal(t, []string{"name", "age", "active", "home", "id", "role", "addresses"}, doc.PropertyOrder)
	assert.Equal(t, []string{"name", "active", "id", "role"}, doc.Required)

	assert.JSONEq(t, `{
		"$schema": "https://json-schema.org/draft/2020-12/schema",
		"title": "Profile",
		"type": "object",
		"properties": {
			"name": {"type": "string", "minLength": 1, "maxLength": 20},
			"age": {"type": "integer", "minimum": 0, "maximum": 150, "default": 18},
			"active": {"type": "boolean"},
			"home": {"type": "string", "format": "uri"},
			"id": {"type": "string", "format": "uuid"},
			"role": {"enum": ["admin", "user"]},
			"addresses": {
				"type": "array",
				"items": {
					"title": "Address",
					"type": "object",
					"properties": {"zip": {"type": "integer"}},
					"propertyOrder": ["zip"],
					"required": ["zip"]
				}
			}
		},
		"propertyOrder": ["name", "age", "active", "home", "id", "role", "addresses"],
		"required": ["name", "active", "id", "role"]
	}`, mustJSON(t, doc))
}

func TestJSONSchema_InheritedFieldsFirst(t *testing.T) {
	base := g.Serializer("Base").Field("char_field", g.Char().MaxLength(20)).MustBuild()
	s := g.Serializer("Example").Extends(base).Field("int_field", g.Integer()).MustBuild()

	doc, err := s.JSONSchema()
	require.NoError(t, err)
	assert.Equal(t, []string{"char_field", "int_field"}, doc.PropertyOrder)
	require.NotNil(t, doc.Properties["char_field"].MaxLength)
	assert.Equal(t, 20, *doc.Properties["char_field"].MaxLength)
}
