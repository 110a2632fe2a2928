// Package middleware validates HTTP request bodies against a schema and
// hands the normalized result to the next handler through the request
// context. ValidateJSON fits net/http and chi style routers; the gin and
// echo adapters live in their own modules.
package middleware

import (
	"context"
	"net/http"

	j "github.com/goccy/go-json"

	goserializer "github.com/reoring/goserializer"
	"github.com/reoring/goserializer/dsl"
	"github.com/reoring/goserializer/source"
)

type ctxKeyResult struct{}

// ContextWithResult attaches the normalized output of a validation run.
func ContextWithResult(ctx context.Context, v any) context.Context {
	return context.WithValue(ctx, ctxKeyResult{}, v)
}

// ResultFromContext returns the output stored by ValidateJSON:
// a *goserializer.Record, or []*goserializer.Record for Many.
func ResultFromContext(ctx context.Context) (any, bool) {
	v := ctx.Value(ctxKeyResult{})
	return v, v != nil
}

// RecordFromContext returns the single record stored by ValidateJSON.
func RecordFromContext(ctx context.Context) (*goserializer.Record, bool) {
	r, ok := ctx.Value(ctxKeyResult{}).(*goserializer.Record)
	return r, ok
}

// Config controls body decoding and validation.
type Config struct {
	Many          bool
	FailFast      bool
	ApplyDefaults bool
	// AllowDuplicateKeys accepts JSON bodies that repeat an object key.
	AllowDuplicateKeys bool
	// MaxBytes caps the body size; 0 means unlimited.
	MaxBytes int64
}

// DefaultConfig returns a recommended default for HTTP JSON boundaries:
// duplicate keys are errors and bodies are capped at 1 MiB.
func DefaultConfig() Config {
	return Config{MaxBytes: 1 << 20}
}

// Decode reads the JSON body of r and validates it with s. The error is an
// Issues value for undecodable bodies and an ErrorList for invalid ones.
func Decode(r *http.Request, s *dsl.Schema, cfg Config) (any, error) {
	data, err := source.Read(source.FormatJSON, r.Body, source.Options{
		RejectDuplicateKeys: !cfg.AllowDuplicateKeys,
		MaxBytes:            cfg.MaxBytes,
	})
	if err != nil {
		return nil, err
	}
	return s.Validate(r.Context(), data, goserializer.Options{
		Many:          cfg.Many,
		FailFast:      cfg.FailFast,
		ApplyDefaults: cfg.ApplyDefaults,
	})
}

// ErrorPayload shapes a Decode error for JSON responses.
func ErrorPayload(err error) map[string]any {
	if el, ok := goserializer.AsErrorList(err); ok {
		return map[string]any{"errors": el, "issues": el.Issues()}
	}
	if iss, ok := goserializer.AsIssues(err); ok {
		return map[string]any{"issues": iss}
	}
	return map[string]any{"error": err.Error()}
}

// ValidateJSON validates each request body with s. Valid requests reach
// next with the result in the context; invalid ones get a 400 with
// ErrorPayload.
func ValidateJSON(s *dsl.Schema, cfg Config) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			out, err := Decode(r, s, cfg)
			if err != nil {
				goserializer.LoggerFrom(r.Context()).Debug("request rejected", "schema", s.Name(), "error", err)
				WriteJSON(w, http.StatusBadRequest, ErrorPayload(err))
				return
			}
			next.ServeHTTP(w, r.WithContext(ContextWithResult(r.Context(), out)))
		})
	}
}

// WriteJSON writes v as a JSON response with status.
func WriteJSON(w http.ResponseWriter, status int, v any) {
	b, err := j.Marshal(v)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write(b)
}
