package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const defsYAML = `
schemas:
  - name: Base
    fields:
      - {name: char_field, type: char, max_length: 20}
  - name: Example
    extends: [Base]
    fields:
      - {name: int_field, type: integer, min_value: 2, max_value: 5}
      - {name: choice_field, type: choice, choices: [some, choices]}
      - {name: note, type: char, required: false, default: none}
`

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	p := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(p, []byte(content), 0o600))
	return p
}

func execute(t *testing.T, stdin string, args ...string) (int, string, string) {
	t.Helper()
	var out, errOut bytes.Buffer
	root := newRootCmd()
	root.SetOut(&out)
	root.SetErr(&errOut)
	root.SetIn(strings.NewReader(stdin))
	code := run(root, args)
	return code, out.String(), errOut.String()
}

func TestValidate_ValidStdin(t *testing.T) {
	defs := writeFile(t, "defs.yaml", defsYAML)
	code, out, _ := execute(t, `{"char_field":"hi","int_field":"3","choice_field":"choices"}`,
		"validate", "--defs", defs, "--schema", "Example")
	assert.Equal(t, 0, code)
	assert.JSONEq(t, `{"char_field":"hi","int_field":3,"choice_field":"choices"}`, out)
}

func TestValidate_InvalidExitsOne(t *testing.T) {
	defs := writeFile(t, "defs.yaml", defsYAML)
	code, out, _ := execute(t, `{"char_field":"hi","int_field":9,"choice_field":"nope"}`,
		"validate", "--defs", defs, "--schema", "Example")
	assert.Equal(t, 1, code)
	assert.JSONEq(t,
		`[{"int_field":["The value has to be lower than 5"]},{"choice_field":["The value is not in the list of possible choices: some, choices"]}]`,
		out)
}

func TestValidate_ManyYAMLFileWithDefaults(t *testing.T) {
	defs := writeFile(t, "defs.yaml", defsYAML)
	input := writeFile(t, "in.yaml", `
- {char_field: a, int_field: 2, choice_field: some}
- {char_field: b, int_field: "5", choice_field: choices, note: hello}
`)
	code, out, _ := execute(t, "", "validate", "--defs", defs, "--schema", "Example", "--many", "--apply-defaults", input)
	assert.Equal(t, 0, code)
	assert.JSONEq(t, `[
		{"char_field":"a","int_field":2,"choice_field":"some","note":"none"},
		{"char_field":"b","int_field":5,"choice_field":"choices","note":"hello"}
	]`, out)
}

func TestValidate_FailFastAndFormatFlag(t *testing.T) {
	defs := writeFile(t, "defs.yaml", defsYAML)
	code, out, _ := execute(t, "char_field: x\nint_field: 1\nchoice_field: nope\n",
		"validate", "--defs", defs, "--schema", "Example", "--format", "yaml", "--fail-fast")
	assert.Equal(t, 1, code)
	assert.JSONEq(t, `[{"int_field":["The value has to be greater than 2"]}]`, out)
}

func TestValidate_Errors(t *testing.T) {
	defs := writeFile(t, "defs.yaml", defsYAML)

	code, _, errOut := execute(t, `{}`, "validate", "--defs", defs, "--schema", "Nope")
	assert.Equal(t, 1, code)
	assert.Contains(t, errOut, `schema "Nope" not found`)

	code, _, errOut = execute(t, `{"a":`, "validate", "--defs", defs, "--schema", "Example")
	assert.Equal(t, 1, code)
	assert.Contains(t, errOut, "decode input")

	code, _, errOut = execute(t, `{"a":1,"a":2}`, "validate", "--defs", defs, "--schema", "Example", "--reject-duplicate-keys")
	assert.Equal(t, 1, code)
	assert.Contains(t, errOut, "duplicate_key")

	bad := writeFile(t, "bad.yaml", "schemas:\n  - name: A\n    fields: [{name: f, type: decimal}]\n")
	code, _, errOut = execute(t, `{}`, "validate", "--defs", bad, "--schema", "A")
	assert.Equal(t, 1, code)
	assert.Contains(t, errOut, "invalid schema definition")
}

func TestJSONSchemaCommand(t *testing.T) {
	defs := writeFile(t, "defs.json", `{"schemas":[{"name":"S","fields":[{"name":"n","type":"integer","min_value":1}]}]}`)
	code, out, _ := execute(t, "", "jsonschema", "--defs", defs, "--schema", "S")
	assert.Equal(t, 0, code)
	assert.JSONEq(t, `{
		"$schema":"https://json-schema.org/draft/2020-12/schema",
		"title":"S","type":"object",
		"properties":{"n":{"type":"integer","minimum":1}},
		"propertyOrder":["n"],
		"required":["n"]
	}`, out)
}

func TestSchemasCommand(t *testing.T) {
	defs := writeFile(t, "defs.yaml", defsYAML)
	code, out, _ := execute(t, "", "schemas", "--defs", defs)
	assert.Equal(t, 0, code)
	assert.Equal(t, "Base: char_field\nExample: char_field, int_field, choice_field, note\n", out)
}

func TestLogLevelDebugWritesToStderr(t *testing.T) {
	defs := writeFile(t, "defs.yaml", defsYAML)
	code, _, errOut := execute(t, `{"char_field":"x","int_field":3,"choice_field":"some"}`,
		"validate", "--defs", defs, "--schema", "Example", "--log-level", "debug")
	assert.Equal(t, 0, code)
	assert.Contains(t, errOut, "definitions loaded")
	assert.Contains(t, errOut, "serializer run")
}

func TestDefsFromEnvironment(t *testing.T) {
	defs := writeFile(t, "defs.yaml", defsYAML)
	t.Setenv("SERIALIZERS_DEFS", defs)
	code, out, _ := execute(t, "", "schemas")
	assert.Equal(t, 0, code)
	assert.Contains(t, out, "Example: char_field, int_field, choice_field, note")

	code, _, errOut := execute(t, "", "schemas", "--defs", filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Equal(t, 1, code)
	assert.Contains(t, errOut, "read definitions")
}
