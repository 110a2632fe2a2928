package source_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	goserializer "github.com/reoring/goserializer"
	"github.com/reoring/goserializer/source"
)

func TestJSONBytes_KeepsNumbersExact(t *testing.T) {
	v, err := source.JSONBytes([]byte(`{"int_field": 3, "big": 9007199254740993, "s": "x"}`))
	require.NoError(t, err)
	m, ok := v.(map[string]any)
	require.True(t, ok)

	n, ok := m["big"].(interface{ String() string })
	require.True(t, ok, "expected a json.Number-like value, got %T", m["big"])
	assert.Equal(t, "9007199254740993", n.String())
	assert.Equal(t, "x", m["s"])
}

func TestJSONBytes_Errors(t *testing.T) {
	t.Run("syntax", func(t *testing.T) {
		_, err := source.JSONBytes([]byte(`{"a":`))
		iss, ok := goserializer.AsIssues(err)
		require.True(t, ok)
		assert.Equal(t, goserializer.CodeParseError, iss[0].Code)
	})

	t.Run("trailing data", func(t *testing.T) {
		_, err := source.JSONBytes([]byte(`{"a":1} {"b":2}`))
		assert.Error(t, err)
	})
}

func TestDuplicateKeys(t *testing.T) {
	iss := source.DuplicateKeys([]byte(`{"a":1,"b":{"c":1,"c":2},"l":[{"x":1,"x":2}],"a":3}`))
	require.Len(t, iss, 3)
	assert.Equal(t, "/b/c", iss[0].Path)
	assert.Equal(t, "/l/0/x", iss[1].Path)
	assert.Equal(t, "/a", iss[2].Path)
	for _, it := range iss {
		assert.Equal(t, goserializer.CodeDuplicateKey, it.Code)
	}

	assert.Empty(t, source.DuplicateKeys([]byte(`[{"a":1},{"a":2}]`)))
}

func TestJSONBytes_RejectDuplicateKeys(t *testing.T) {
	doc := []byte(`{"a":1,"a":2}`)

	_, err := source.JSONBytes(doc)
	assert.NoError(t, err)

	_, err = source.JSONBytes(doc, source.Options{RejectDuplicateKeys: true})
	iss, ok := goserializer.AsIssues(err)
	require.True(t, ok)
	assert.Equal(t, goserializer.CodeDuplicateKey, iss[0].Code)
}

func TestYAMLBytes_Normalizes(t *testing.T) {
	v, err := source.YAMLBytes([]byte("- int_field: 3\n  flag: true\n- 1: one\n"))
	require.NoError(t, err)
	list, ok := v.([]any)
	require.True(t, ok)
	require.Len(t, list, 2)

	first := list[0].(map[string]any)
	assert.Equal(t, 3, first["int_field"])
	assert.Equal(t, true, first["flag"])

	second := list[1].(map[string]any)
	assert.Equal(t, "one", second["1"])
}

func TestRead_MaxBytes(t *testing.T) {
	_, err := source.Read(source.FormatJSON, strings.NewReader(`{"a":"0123456789"}`), source.Options{MaxBytes: 5})
	assert.Error(t, err)

	v, err := source.JSONReader(strings.NewReader(`[1]`), source.Options{MaxBytes: 5})
	require.NoError(t, err)
	assert.Len(t, v, 1)
}

func TestFormats(t *testing.T) {
	assert.Equal(t, source.FormatYAML, source.FormatFromPath("in.yml"))
	assert.Equal(t, source.FormatJSON, source.FormatFromPath("in.json"))
	assert.Equal(t, source.FormatJSON, source.FormatFromPath("-"))

	f, err := source.ParseFormat("YAML")
	require.NoError(t, err)
	assert.Equal(t, source.FormatYAML, f)

	_, err = source.ParseFormat("toml")
	assert.Error(t, err)
}
