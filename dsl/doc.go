// Package dsl declares serializers: named, ordered sets of typed fields that
// validate untyped records and normalize them into ordered output records.
//
// Overview
//   - Fields: Char()/Integer()/Boolean()/URL()/UUID()/Choice(...)/Nested(schema) with
//     MinLength/MaxLength, Min/Max and Many options.
//   - Builder API: Serializer(name).Extends(parents...).Field(name, f).Optional().Default(v) ... Build()/MustBuild().
//   - Inheritance: parent fields come first, parents left to right; a redeclared name keeps
//     its first position and takes the last rule.
//   - Validation: Schema.Bind(data, opts)/Validate/Parse produce a *goserializer.Record
//     (or []*goserializer.Record with Options.Many) or a goserializer.ErrorList.
//   - Definitions: LoadYAML/LoadJSON build a Registry of schemas from a document.
//   - JSON Schema: Schema.JSONSchema() exports the field table.
//
// File layout (roles)
//   - field.go: Field variants, option misuse tracking, compilation into validator chains and coercions.
//   - serializer_builder.go: serializerBuilder/fieldStep and Build/MustBuild.
//   - schema.go: Schema accessors, the per-record binding context, Instance.
//   - jsonschema.go: JSON Schema projection.
//   - load.go: YAML/JSON definitions and Registry.
//   - errors.go: ErrSchemaConfig.
//
// Design guidelines
//   - Schemas and compiled fields are immutable after Build and safe for concurrent use.
//   - Every field runs all of its validators; Options.FailFast stops at the first failure.
//   - Definition mistakes surface at Build as ErrSchemaConfig, never during validation.
//
// Example (quickstart)
//
//	example := dsl.Serializer("Example").
//	    Field("int_field", dsl.Integer().Min(2).Max(5)).
//	    Field("choice_field", dsl.Choice("some", "choices")).
//	    MustBuild()
//
//	out, err := example.Validate(ctx, map[string]any{"int_field": "3", "choice_field": "some"})
//	if el, ok := goserializer.AsErrorList(err); ok {
//	    // [{"int_field": [...]}, ...]
//	    _ = el
//	}
//	rec := out.(*goserializer.Record) // {"int_field":3,"choice_field":"some"}
package dsl
