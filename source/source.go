// Package source decodes raw input documents into the untyped values a
// schema validates: map[string]any records, []any lists, strings, bools and
// json.Number for JSON numbers.
package source

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	j "github.com/goccy/go-json"
	"gopkg.in/yaml.v3"

	goserializer "github.com/reoring/goserializer"
)

// Format names an input encoding.
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// ParseFormat maps a name (json, yaml, yml) to a Format.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "json":
		return FormatJSON, nil
	case "yaml", "yml":
		return FormatYAML, nil
	}
	return "", fmt.Errorf("source: unknown format %q", s)
}

// FormatFromPath guesses the format from a file extension; JSON otherwise.
func FormatFromPath(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML
	}
	return FormatJSON
}

// Options controls decoding. When several are passed the last one wins.
type Options struct {
	// RejectDuplicateKeys fails JSON documents that repeat an object key.
	// YAML documents always reject duplicates.
	RejectDuplicateKeys bool
	// MaxBytes caps reader input; 0 means unlimited.
	MaxBytes int64
}

func lastOptions(opts []Options) Options {
	if len(opts) == 0 {
		return Options{}
	}
	return opts[len(opts)-1]
}

// Decode decodes b in format f.
func Decode(f Format, b []byte, opts ...Options) (any, error) {
	switch f {
	case FormatYAML:
		return YAMLBytes(b, opts...)
	case FormatJSON, "":
		return JSONBytes(b, opts...)
	}
	return nil, fmt.Errorf("source: unknown format %q", f)
}

// Read reads r fully (bounded by MaxBytes) and decodes it in format f.
func Read(f Format, r io.Reader, opts ...Options) (any, error) {
	opt := lastOptions(opts)
	if opt.MaxBytes > 0 {
		r = io.LimitReader(r, opt.MaxBytes+1)
	}
	b, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	if opt.MaxBytes > 0 && int64(len(b)) > opt.MaxBytes {
		return nil, parseIssue(fmt.Sprintf("input exceeds %d bytes", opt.MaxBytes))
	}
	return Decode(f, b, opts...)
}

// JSONBytes decodes one JSON document. Numbers are kept as json.Number so
// integer fields see the exact literal.
func JSONBytes(b []byte, opts ...Options) (any, error) {
	if lastOptions(opts).RejectDuplicateKeys {
		if iss := DuplicateKeys(b); len(iss) > 0 {
			return nil, iss
		}
	}
	dec := j.NewDecoder(bytes.NewReader(b))
	dec.UseNumber()
	var v any
	if err := dec.Decode(&v); err != nil {
		return nil, parseIssue(err.Error())
	}
	var extra any
	if err := dec.Decode(&extra); !errors.Is(err, io.EOF) {
		return nil, parseIssue("unexpected data after the JSON document")
	}
	return v, nil
}

// JSONReader is JSONBytes over a reader.
func JSONReader(r io.Reader, opts ...Options) (any, error) {
	return Read(FormatJSON, r, opts...)
}

// YAMLBytes decodes one YAML document and normalizes mappings to
// map[string]any.
func YAMLBytes(b []byte, _ ...Options) (any, error) {
	var v any
	if err := yaml.Unmarshal(b, &v); err != nil {
		return nil, parseIssue(err.Error())
	}
	return yamlNormalizeValue(v), nil
}

func parseIssue(msg string) goserializer.Issues {
	return goserializer.Issues{goserializer.IssueAt(goserializer.Root(), goserializer.CodeParseError, msg, nil)}
}

// yamlNormalizeValue converts YAML-decoded values (which may contain
// map[any]any) into JSON-like values recursively.
func yamlNormalizeValue(v any) any {
	switch t := v.(type) {
	case map[string]any:
		out := make(map[string]any, len(t))
		for k, vv := range t {
			out[k] = yamlNormalizeValue(vv)
		}
		return out
	case map[any]any:
		out := make(map[string]any, len(t))
		for k, vv := range t {
			out[fmt.Sprint(k)] = yamlNormalizeValue(vv)
		}
		return out
	case []any:
		out := make([]any, len(t))
		for i := range t {
			out[i] = yamlNormalizeValue(t[i])
		}
		return out
	default:
		return v
	}
}
