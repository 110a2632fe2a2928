package dsl

import (
	"context"
	"fmt"
	"log/slog"

	goserializer "github.com/reoring/goserializer"
	"github.com/reoring/goserializer/i18n"
)

// Schema is an immutable, ordered set of fields. It is safe for concurrent
// use: per-record state lives in each run, never on the fields.
type Schema struct {
	name    string
	fields  []*compiledField
	index   map[string]int
	parents []*Schema
	logger  *slog.Logger
}

// FieldInfo describes one field of a built schema.
type FieldInfo struct {
	Name     string
	Kind     Kind
	Required bool
	// Schema is the child schema of a nested field.
	Schema *Schema
	Many   bool
}

func (s *Schema) Name() string { return s.name }

// Len returns the number of fields, inherited ones included.
func (s *Schema) Len() int { return len(s.fields) }

// FieldNames returns the field names in validation order.
func (s *Schema) FieldNames() []string {
	out := make([]string, len(s.fields))
	for i, f := range s.fields {
		out[i] = f.name
	}
	return out
}

// Lookup returns the description of the named field.
func (s *Schema) Lookup(name string) (FieldInfo, bool) {
	i, ok := s.index[name]
	if !ok {
		return FieldInfo{}, false
	}
	f := s.fields[i]
	return FieldInfo{Name: f.name, Kind: f.kind, Required: f.required, Schema: f.child, Many: f.many}, true
}

// Parents returns the schemas this one extends, in declaration order.
func (s *Schema) Parents() []*Schema { return append([]*Schema(nil), s.parents...) }

// Bind pairs the schema with input data for one validation call.
func (s *Schema) Bind(data any, opts ...goserializer.Options) *Instance {
	return s.BindContext(context.Background(), data, opts...)
}

// BindContext is Bind with a context carrying the logger and fail-fast flag.
func (s *Schema) BindContext(ctx context.Context, data any, opts ...goserializer.Options) *Instance {
	return &Instance{schema: s, ctx: ctx, data: data, opts: goserializer.LastOptions(opts)}
}

// Validate runs the schema over data. It returns the normalized record
// (*goserializer.Record, or []*goserializer.Record in many-mode) or a
// goserializer.ErrorList as the error.
func (s *Schema) Validate(ctx context.Context, data any, opts ...goserializer.Options) (any, error) {
	return s.BindContext(ctx, data, opts...).Data()
}

// Parse validates a single record.
func (s *Schema) Parse(ctx context.Context, data any) (*goserializer.Record, error) {
	out, err := s.Validate(ctx, data, goserializer.Options{})
	if err != nil {
		return nil, err
	}
	rec, _ := out.(*goserializer.Record)
	return rec, nil
}

// run validates data as one record or, in many-mode, as a list of records.
func (s *Schema) run(ctx context.Context, data any, opts goserializer.Options) (any, goserializer.ErrorList) {
	failFast := opts.FailFast || goserializer.IsFailFast(ctx)
	if !opts.Many {
		if data == nil {
			data = map[string]any{}
		}
		rec, errs := s.runRecord(ctx, data, -1, opts, failFast)
		if len(errs) > 0 {
			return nil, errs
		}
		return rec, nil
	}
	records, ok := goserializer.Records(data)
	if !ok {
		return nil, goserializer.ErrorList{{
			Code:    goserializer.CodeInvalidType,
			Message: i18n.T(i18n.KeySequence, map[string]string{"value": fmt.Sprint(data)}),
			Index:   -1,
		}}
	}
	var errs goserializer.ErrorList
	out := make([]*goserializer.Record, 0, len(records))
	for i, r := range records {
		rec, rerrs := s.runRecord(ctx, r, i, opts, failFast)
		if len(rerrs) > 0 {
			errs = append(errs, rerrs...)
			if failFast {
				break
			}
			continue
		}
		out = append(out, rec)
	}
	if len(errs) > 0 {
		return nil, errs
	}
	return out, nil
}

// binding holds the values bound to each field for the record being
// processed. It lives for one record only.
type binding struct {
	values map[string]any
}

func newBinding(n int) *binding { return &binding{values: make(map[string]any, n)} }

func (b *binding) bind(name string, v any) { b.values[name] = v }

func (b *binding) value(name string) any {
	if v, ok := b.values[name]; ok {
		return v
	}
	return goserializer.Missing
}

func (s *Schema) runRecord(ctx context.Context, rec any, idx int, opts goserializer.Options, failFast bool) (*goserializer.Record, goserializer.ErrorList) {
	if !goserializer.IsMapping(rec) {
		return nil, goserializer.ErrorList{{
			Code:    goserializer.CodeInvalidType,
			Message: i18n.T(i18n.KeyMapping, map[string]string{"value": fmt.Sprint(rec)}),
			Index:   idx,
		}}
	}
	b := newBinding(len(s.fields))
	out := goserializer.NewRecord(len(s.fields))
	var errs goserializer.ErrorList
	for _, f := range s.fields {
		b.bind(f.name, goserializer.Lookup(rec, f.name))
		v := b.value(f.name)
		if !f.required && goserializer.IsAbsent(v) {
			if opts.ApplyDefaults && f.hasDefault {
				out.Set(f.name, f.defaultValue())
			}
			continue
		}
		native, entry, ok := s.runField(ctx, f, v, opts, failFast)
		if !ok {
			entry.Index = idx
			errs = append(errs, entry)
			if failFast {
				return nil, errs
			}
			continue
		}
		out.Set(f.name, native)
	}
	if len(errs) > 0 {
		return nil, errs
	}
	return out, nil
}

func (s *Schema) runField(ctx context.Context, f *compiledField, v any, opts goserializer.Options, failFast bool) (any, goserializer.ErrorEntry, bool) {
	if fs := f.check(v, failFast); len(fs) > 0 {
		return nil, goserializer.ErrorEntry{Field: f.name, Failures: fs}, false
	}
	if f.kind != KindNested {
		return f.coerce(v), goserializer.ErrorEntry{}, true
	}
	childOpts := goserializer.Options{Many: f.many, FailFast: failFast, ApplyDefaults: opts.ApplyDefaults}
	native, errs := f.child.run(ctx, v, childOpts)
	if len(errs) > 0 {
		return nil, goserializer.ErrorEntry{Field: f.name, Nested: errs}, false
	}
	return native, goserializer.ErrorEntry{}, true
}

// Instance is a schema bound to one input. It is single-use and not safe
// for concurrent use.
type Instance struct {
	schema *Schema
	ctx    context.Context
	data   any
	opts   goserializer.Options
	done   bool
	result any
	errs   goserializer.ErrorList
}

func (in *Instance) exec() {
	if in.done {
		return
	}
	in.done = true
	ctx := in.ctx
	if ctx == nil {
		ctx = context.Background()
	}
	in.result, in.errs = in.schema.run(ctx, in.data, in.opts)
	log := in.schema.logger
	if log == nil {
		log = goserializer.LoggerFrom(ctx)
	}
	log.Debug("serializer run", "schema", in.schema.name, "many", in.opts.Many, "errors", len(in.errs))
}

// Data returns the normalized output, or nil and the ErrorList when any
// field of any record failed.
func (in *Instance) Data() (any, error) {
	in.exec()
	if len(in.errs) > 0 {
		return nil, in.errs
	}
	return in.result, nil
}

// Result returns the ErrorList when validation failed, otherwise the
// normalized output.
func (in *Instance) Result() any {
	in.exec()
	if len(in.errs) > 0 {
		return in.errs
	}
	return in.result
}

// Errors returns the accumulated error list (empty when valid).
func (in *Instance) Errors() goserializer.ErrorList {
	in.exec()
	return in.errs
}

// IsValid reports whether the bound data passed validation.
func (in *Instance) IsValid() bool {
	in.exec()
	return len(in.errs) == 0
}
