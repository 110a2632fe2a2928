package goserializer_test

import (
	"context"
	"errors"
	"fmt"
	"testing"

	j "github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	goserializer "github.com/reoring/goserializer"
	g "github.com/reoring/goserializer/dsl"
)

func sampleList() goserializer.ErrorList {
	return goserializer.ErrorList{
		{Field: "int_field", Index: 0, Failures: []goserializer.Failure{
			{Code: goserializer.CodeTooBig, Message: "The value has to be lower than 5", Params: map[string]any{"max": 5}},
		}},
		{Field: "address", Index: 1, Nested: goserializer.ErrorList{
			{Field: "zip", Index: -1, Failures: []goserializer.Failure{
				{Code: goserializer.CodeRequired, Message: "This value is required."},
			}},
		}},
		{Index: 2, Code: goserializer.CodeInvalidType, Message: "The field value '3' has to be a dictionary"},
	}
}

func TestErrorList_JSONShape(t *testing.T) {
	b, err := j.Marshal(sampleList())
	require.NoError(t, err)
	assert.JSONEq(t, `[
		{"int_field": ["The value has to be lower than 5"]},
		{"address": [{"zip": ["This value is required."]}]},
		"The field value '3' has to be a dictionary"
	]`, string(b))
}

func TestErrorList_Issues(t *testing.T) {
	iss := sampleList().Issues()
	require.Len(t, iss, 3)

	assert.Equal(t, "/0/int_field", iss[0].Path)
	assert.Equal(t, goserializer.CodeTooBig, iss[0].Code)
	assert.Equal(t, 5, iss[0].Params["max"])

	assert.Equal(t, "/1/address/zip", iss[1].Path)
	assert.Equal(t, goserializer.CodeRequired, iss[1].Code)

	assert.Equal(t, "/2", iss[2].Path)
	assert.Equal(t, goserializer.CodeInvalidType, iss[2].Code)

	assert.Equal(t, "too_big at /0/int_field; required at /1/address/zip; invalid_type at /2", iss.Error())
}

func TestErrorList_Accessors(t *testing.T) {
	el := sampleList()
	assert.True(t, el.Has("address"))
	assert.False(t, el.Has("zip"))
	assert.Equal(t, []string{"int_field", "address"}, el.Fields())
	assert.Equal(t, []string{"The value has to be lower than 5"}, el.Get("int_field"))
	assert.Equal(t,
		"validation failed: int_field: The value has to be lower than 5; address: (validation failed: zip: This value is required.); The field value '3' has to be a dictionary",
		el.Error())
}

// TestErrorModel_AsErrorList_AsIssues exercises errors.As based extraction
// through wrapping.
func TestErrorModel_AsErrorList_AsIssues(t *testing.T) {
	s := g.Serializer("S").Field("n", g.Integer().Max(1)).MustBuild()
	_, err := s.Validate(context.Background(), map[string]any{"n": 3})
	require.Error(t, err)

	wrapped := fmt.Errorf("import row: %w", err)
	el, ok := goserializer.AsErrorList(wrapped)
	require.True(t, ok)
	assert.Equal(t, []string{"n"}, el.Fields())

	var target goserializer.ErrorList
	assert.True(t, errors.As(wrapped, &target))

	_, ok = goserializer.AsErrorList(nil)
	assert.False(t, ok)

	iss := goserializer.Issues{goserializer.Root().Field("n").Issue(goserializer.CodeTooBig, "too big", "max", 1)}
	got, ok := goserializer.AsIssues(fmt.Errorf("wrap: %w", iss))
	require.True(t, ok)
	assert.Equal(t, "/n", got[0].Path)
	assert.Equal(t, map[string]any{"max": 1}, got[0].Params)
}

func TestIssues_ErrorTruncates(t *testing.T) {
	var iss goserializer.Issues
	for i := 0; i < 5; i++ {
		iss = append(iss, goserializer.Root().Index(i).Issue(goserializer.CodeRequired, "missing"))
	}
	assert.Equal(t, "required at /0; required at /1; required at /2; ... (total 5)", iss.Error())
	assert.Equal(t, "", goserializer.Issues(nil).Error())
}
