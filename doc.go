// Package goserializer provides:
//
// - Declarative schemas (ordered, typed fields with constraints) built in dsl/
// - Validation plus coercion of untyped records into normalized Records
// - A stable error model: ErrorList ({field: [messages]} entries) and coded Issues
// - Input decoding for JSON and YAML under source/
//
// Design policy:
// - Keep only the public result/error model in the root package.
// - Place field variants and schema builders under dsl/, validators under validators/.
// - Schemas are immutable once built; per-record state lives in the run.
//
// Typical usage:
//
//	s := dsl.Serializer("Example").
//		Field("int_field", dsl.Integer().Min(2).Max(5)).
//		Field("choice_field", dsl.Choice("some", "choices")).
//		MustBuild()
//
//	out, err := s.Bind(data).Data()
//	if el, ok := goserializer.AsErrorList(err); ok {
//		// el is the ordered error list
//	}
package goserializer
