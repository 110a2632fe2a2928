package dsl

import (
	"log/slog"
)

type serializerBuilder struct {
	name    string
	parents []*Schema
	decls   []fieldDecl
	logger  *slog.Logger
}

type fieldDecl struct {
	name       string
	field      *Field
	required   bool
	def        any
	hasDefault bool
}

type fieldStep struct {
	*serializerBuilder
	idx int
}

// Serializer starts the definition of a named schema. Fields validate and
// serialize in the order of the Field calls, after any inherited fields.
func Serializer(name string) *serializerBuilder {
	return &serializerBuilder{name: name}
}

// Extends inherits the fields of parents. Inherited fields come first, in
// the order the parents are listed, each parent keeping its own order.
func (b *serializerBuilder) Extends(parents ...*Schema) *serializerBuilder {
	b.parents = append(b.parents, parents...)
	return b
}

// Field declares a required field. Use Optional on the returned step to
// relax it.
func (b *serializerBuilder) Field(name string, f *Field) *fieldStep {
	b.decls = append(b.decls, fieldDecl{name: name, field: f, required: true})
	return &fieldStep{serializerBuilder: b, idx: len(b.decls) - 1}
}

// WithLogger sets the logger used for build and validation debug records.
func (b *serializerBuilder) WithLogger(l *slog.Logger) *serializerBuilder {
	b.logger = l
	return b
}

// Optional marks the current field as not required. Absent optional
// fields are omitted from the output.
func (f *fieldStep) Optional() *fieldStep {
	f.decls[f.idx].required = false
	return f
}

// Required marks the current field as required (the default).
func (f *fieldStep) Required() *fieldStep {
	f.decls[f.idx].required = true
	return f
}

// Default records the value emitted for the absent optional field when a
// run sets Options.ApplyDefaults. Build validates it against the field and
// rejects a nil default.
func (f *fieldStep) Default(v any) *fieldStep {
	f.decls[f.idx].def = v
	f.decls[f.idx].hasDefault = true
	return f
}

// Build validates the definition and returns the immutable Schema.
func (b *serializerBuilder) Build() (*Schema, error) {
	if b.name == "" {
		return nil, configErr("schema name is empty")
	}
	var fields []*compiledField
	index := map[string]int{}
	put := func(cf *compiledField) {
		// A redeclared name keeps its first position and takes the last rule.
		if i, ok := index[cf.name]; ok {
			fields[i] = cf
			return
		}
		index[cf.name] = len(fields)
		fields = append(fields, cf)
	}
	for i, p := range b.parents {
		if p == nil {
			return nil, configErr("schema %q: parent %d is nil", b.name, i)
		}
		for _, cf := range p.fields {
			put(cf)
		}
	}
	own := make(map[string]struct{}, len(b.decls))
	for _, d := range b.decls {
		if d.name == "" {
			return nil, configErr("schema %q: field name is empty", b.name)
		}
		if d.field == nil {
			return nil, configErr("schema %q: field %q is nil", b.name, d.name)
		}
		if _, dup := own[d.name]; dup {
			return nil, configErr("schema %q: field %q declared twice", b.name, d.name)
		}
		own[d.name] = struct{}{}
		cf, err := d.field.compile(d.name, d.required, d.def, d.hasDefault)
		if err != nil {
			return nil, err
		}
		put(cf)
	}
	s := &Schema{
		name:    b.name,
		fields:  fields,
		index:   index,
		parents: append([]*Schema(nil), b.parents...),
		logger:  b.logger,
	}
	if b.logger != nil {
		b.logger.Debug("serializer built", "schema", s.name, "fields", len(fields), "parents", len(b.parents))
	}
	return s, nil
}

// MustBuild is like Build but panics on error.
func (b *serializerBuilder) MustBuild() *Schema {
	s, err := b.Build()
	if err != nil {
		panic(err)
	}
	return s
}
