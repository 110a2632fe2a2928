package dsl

import (
	"errors"
	"fmt"
)

// ErrSchemaConfig reports a malformed schema definition. Build and the
// loaders wrap it with details; test with errors.Is.
var ErrSchemaConfig = errors.New("goserializer: invalid schema definition")

func configErr(format string, args ...any) error {
	return fmt.Errorf("%w: "+format, append([]any{ErrSchemaConfig}, args...)...)
}
