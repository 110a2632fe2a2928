package goserializer

// Options configures a validation run. When several are passed to a
// variadic API the last one wins.
type Options struct {
	// Many treats the input as a sequence of records.
	Many bool
	// FailFast stops at the first failing field or record-level error.
	FailFast bool
	// ApplyDefaults emits a field's declared default when an optional field
	// is absent. Off by default: absent optional fields are omitted.
	ApplyDefaults bool
}

// LastOptions returns the last element of opts, or the zero Options.
func LastOptions(opts []Options) Options {
	if len(opts) == 0 {
		return Options{}
	}
	return opts[len(opts)-1]
}
