package goserializer

import (
	"errors"
	"fmt"
	"strings"

	j "github.com/goccy/go-json"
)

// Issue codes (exported consts for IDE completion and type safety by convention)
const (
	CodeInvalidType   = "invalid_type"
	CodeRequired      = "required"
	CodeTooSmall      = "too_small"
	CodeTooBig        = "too_big"
	CodeTooShort      = "too_short"
	CodeTooLong       = "too_long"
	CodeInvalidEnum   = "invalid_enum"
	CodeInvalidFormat = "invalid_format"
	CodeParseError    = "parse_error"
	CodeDuplicateKey  = "duplicate_key"
)

// Issue represents a single validation entry.
type Issue struct {
	Path    string // JSON Pointer (for example: /2/int_field).
	Code    string // One of the codes listed above.
	Message string
	// Params carries structured parameters (e.g., {"min":1}) for observability.
	Params map[string]any
}

// Issues is a collection of validation errors that implements error.
type Issues []Issue

// Error summarizes the first few issues.
func (iss Issues) Error() string {
	if len(iss) == 0 {
		return ""
	}
	const maxShown = 3
	b := &strings.Builder{}
	n := len(iss)
	lim := n
	if lim > maxShown {
		lim = maxShown
	}
	for i := 0; i < lim; i++ {
		if i > 0 {
			b.WriteString("; ")
		}
		it := iss[i]
		fmt.Fprintf(b, "%s at %s", it.Code, it.Path)
	}
	if n > lim {
		fmt.Fprintf(b, "; ... (total %d)", n)
	}
	return b.String()
}

// AsIssues extracts Issues from an error using errors.As internally.
func AsIssues(err error) (Issues, bool) {
	if err == nil {
		return nil, false
	}
	var iss Issues
	if errors.As(err, &iss) {
		return iss, true
	}
	return nil, false
}

// Failure is one validator failure attached to a field.
type Failure struct {
	Code    string
	Message string
	Params  map[string]any
}

// ErrorEntry is one element of an ErrorList.
//
// A field entry has a non-empty Field and carries Failures and/or Nested
// (errors produced by a nested schema). A record-level entry has an empty
// Field and a Message describing the structural problem.
type ErrorEntry struct {
	Field    string
	Failures []Failure
	Nested   ErrorList
	Message  string
	Code     string // record-level code; field entries use Failures[i].Code
	// Index is the record position in many-mode, -1 otherwise.
	Index int
}

// Messages returns the human readable failure messages of the entry.
func (e ErrorEntry) Messages() []string {
	if e.Field == "" {
		return []string{e.Message}
	}
	out := make([]string, 0, len(e.Failures))
	for _, f := range e.Failures {
		out = append(out, f.Message)
	}
	return out
}

// MarshalJSON renders a field entry as {"field": [...]} and a record-level
// entry as a bare string.
func (e ErrorEntry) MarshalJSON() ([]byte, error) {
	if e.Field == "" {
		return j.Marshal(e.Message)
	}
	items := make([]any, 0, len(e.Failures)+len(e.Nested))
	for _, f := range e.Failures {
		items = append(items, f.Message)
	}
	for _, n := range e.Nested {
		items = append(items, n)
	}
	return j.Marshal(map[string]any{e.Field: items})
}

// ErrorList is the user visible error shape: an ordered sequence of
// single-key field entries and bare record-level messages.
type ErrorList []ErrorEntry

func (el ErrorList) Error() string {
	if len(el) == 0 {
		return "validation failed"
	}
	parts := make([]string, 0, len(el))
	for _, e := range el {
		if e.Field == "" {
			parts = append(parts, e.Message)
			continue
		}
		msgs := e.Messages()
		if len(e.Nested) > 0 {
			msgs = append(msgs, "("+e.Nested.Error()+")")
		}
		parts = append(parts, fmt.Sprintf("%s: %s", e.Field, strings.Join(msgs, ", ")))
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

// Has reports whether the list contains an entry for field.
func (el ErrorList) Has(field string) bool {
	for _, e := range el {
		if e.Field == field {
			return true
		}
	}
	return false
}

// Get returns every message recorded for field, across records.
func (el ErrorList) Get(field string) []string {
	var msgs []string
	for _, e := range el {
		if e.Field == field {
			msgs = append(msgs, e.Messages()...)
		}
	}
	return msgs
}

// Fields returns the distinct field names with errors in first-seen order.
func (el ErrorList) Fields() []string {
	var fields []string
	seen := make(map[string]bool)
	for _, e := range el {
		if e.Field == "" || seen[e.Field] {
			continue
		}
		seen[e.Field] = true
		fields = append(fields, e.Field)
	}
	return fields
}

// Issues flattens the list into coded, JSON Pointer located Issues.
func (el ErrorList) Issues() Issues {
	return el.issuesAt(Root())
}

func (el ErrorList) issuesAt(base PathRef) Issues {
	var out Issues
	for _, e := range el {
		p := base
		if e.Index >= 0 {
			p = p.Index(e.Index)
		}
		if e.Field == "" {
			out = append(out, p.Issue(e.Code, e.Message))
			continue
		}
		fp := p.Field(e.Field)
		for _, f := range e.Failures {
			it := fp.Issue(f.Code, f.Message)
			it.Params = f.Params
			out = append(out, it)
		}
		out = append(out, e.Nested.issuesAt(fp)...)
	}
	return out
}

// AsErrorList extracts an ErrorList from err.
func AsErrorList(err error) (ErrorList, bool) {
	if err == nil {
		return nil, false
	}
	var el ErrorList
	if errors.As(err, &el) {
		return el, true
	}
	return nil, false
}
