// Package validators implements the atomic checks applied to one raw field
// value. Every validator is stateless and safe to share: the same instance
// serves every record a schema processes.
//
// A validator receives the raw value, or goserializer.Missing when no value
// was supplied, and returns nil or a *ValidationError. Apart from Presence,
// validators pass absent values; presence is checked separately.
//
// The coercion helpers (ToInt, ToBool, Length) are shared with the field
// variants in dsl so that a value accepted by validation is always coerced
// to the same native value.
package validators
