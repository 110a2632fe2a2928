package dsl

import (
	"bytes"
	"errors"
	"io"
	"log/slog"
	"strings"

	j "github.com/goccy/go-json"
	"gopkg.in/yaml.v3"
)

// Definitions is the document form of a set of schemas. Schemas are built
// in list order; extends and nested schema references must name a schema
// defined earlier in the list.
type Definitions struct {
	Schemas []SchemaDef `yaml:"schemas" json:"schemas"`
}

// SchemaDef defines one schema.
type SchemaDef struct {
	Name    string     `yaml:"name" json:"name"`
	Extends []string   `yaml:"extends,omitempty" json:"extends,omitempty"`
	Fields  []FieldDef `yaml:"fields" json:"fields"`
}

// FieldDef defines one field. Options that do not apply to Type are
// rejected.
type FieldDef struct {
	Name      string `yaml:"name" json:"name"`
	Type      string `yaml:"type" json:"type"`
	Required  *bool  `yaml:"required,omitempty" json:"required,omitempty"`
	Default   any    `yaml:"default,omitempty" json:"default,omitempty"`
	MinLength *int   `yaml:"min_length,omitempty" json:"min_length,omitempty"`
	MaxLength *int   `yaml:"max_length,omitempty" json:"max_length,omitempty"`
	MinValue  *int   `yaml:"min_value,omitempty" json:"min_value,omitempty"`
	MaxValue  *int   `yaml:"max_value,omitempty" json:"max_value,omitempty"`
	Choices   []any  `yaml:"choices,omitempty" json:"choices,omitempty"`
	Schema    string `yaml:"schema,omitempty" json:"schema,omitempty"`
	Many      bool   `yaml:"many,omitempty" json:"many,omitempty"`
}

// Registry holds schemas built from Definitions, by name.
type Registry struct {
	order  []string
	byName map[string]*Schema
}

// Get returns the named schema.
func (r *Registry) Get(name string) (*Schema, bool) {
	s, ok := r.byName[name]
	return s, ok
}

// Names returns the schema names in definition order.
func (r *Registry) Names() []string { return append([]string(nil), r.order...) }

// LoadOption configures the loaders.
type LoadOption func(*loadConfig)

type loadConfig struct {
	logger *slog.Logger
}

// WithLoadLogger passes l to every schema built by the loader.
func WithLoadLogger(l *slog.Logger) LoadOption {
	return func(c *loadConfig) { c.logger = l }
}

// LoadYAML decodes a YAML definitions document. Unknown keys are errors.
func LoadYAML(data []byte, opts ...LoadOption) (*Registry, error) {
	var defs Definitions
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&defs); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, configErr("empty definitions document")
		}
		return nil, configErr("decode yaml: %v", err)
	}
	return Load(defs, opts...)
}

// LoadJSON decodes a JSON definitions document. Unknown keys are errors.
func LoadJSON(data []byte, opts ...LoadOption) (*Registry, error) {
	var defs Definitions
	dec := j.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	dec.UseNumber()
	if err := dec.Decode(&defs); err != nil {
		return nil, configErr("decode json: %v", err)
	}
	return Load(defs, opts...)
}

// Load builds every schema in defs.
func Load(defs Definitions, opts ...LoadOption) (*Registry, error) {
	var cfg loadConfig
	for _, o := range opts {
		o(&cfg)
	}
	r := &Registry{byName: make(map[string]*Schema, len(defs.Schemas))}
	for _, sd := range defs.Schemas {
		if _, dup := r.byName[sd.Name]; dup {
			return nil, configErr("schema %q defined twice", sd.Name)
		}
		s, err := r.build(sd, cfg)
		if err != nil {
			return nil, err
		}
		r.byName[sd.Name] = s
		r.order = append(r.order, sd.Name)
	}
	return r, nil
}

func (r *Registry) build(sd SchemaDef, cfg loadConfig) (*Schema, error) {
	b := Serializer(sd.Name)
	if cfg.logger != nil {
		b.WithLogger(cfg.logger)
	}
	for _, pn := range sd.Extends {
		p, ok := r.byName[pn]
		if !ok {
			return nil, configErr("schema %q: unknown parent %q", sd.Name, pn)
		}
		b.Extends(p)
	}
	for _, fd := range sd.Fields {
		f, err := r.field(sd.Name, fd)
		if err != nil {
			return nil, err
		}
		step := b.Field(fd.Name, f)
		if fd.Required != nil && !*fd.Required {
			step.Optional()
		}
		if fd.Default != nil {
			step.Default(fd.Default)
		}
	}
	return b.Build()
}

func (r *Registry) field(schema string, fd FieldDef) (*Field, error) {
	var f *Field
	switch strings.ToLower(fd.Type) {
	case "char", "string":
		f = Char()
	case "integer", "int":
		f = Integer()
	case "boolean", "bool":
		f = Boolean()
	case "url":
		f = URL()
	case "uuid":
		f = UUID()
	case "choice":
		f = Choice(fd.Choices...)
	case "nested":
		child, ok := r.byName[fd.Schema]
		if !ok {
			return nil, configErr("schema %q: field %q references unknown schema %q", schema, fd.Name, fd.Schema)
		}
		f = Nested(child)
	default:
		return nil, configErr("schema %q: field %q has unknown type %q", schema, fd.Name, fd.Type)
	}
	if len(fd.Choices) > 0 && f.kind != KindChoice {
		f.only("choices", KindChoice)
	}
	if fd.Schema != "" && f.kind != KindNested {
		f.only("schema", KindNested)
	}
	if fd.MinLength != nil {
		f.MinLength(*fd.MinLength)
	}
	if fd.MaxLength != nil {
		f.MaxLength(*fd.MaxLength)
	}
	if fd.MinValue != nil {
		f.Min(*fd.MinValue)
	}
	if fd.MaxValue != nil {
		f.Max(*fd.MaxValue)
	}
	if fd.Many {
		f.Many()
	}
	return f, nil
}
