package source_test

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/viant/protodef/source"
)

func TestCanonicalID(t *testing.T) {
	tests := []struct {
		input  string
		expect string
	}{
		{input: "1", expect: "1"},
		{input: "01", expect: "1"},
		{input: " 7 ", expect: "7"},
		{input: "0", expect: "0"},
		{input: "", expect: ""},
		{input: "0x10", expect: "0x10"},
		{input: "system", expect: "system"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.expect, source.CanonicalID(tt.input), tt.input)
	}
}

func TestID(t *testing.T) {
	tests := []struct {
		description string
		value       interface{}
		expect      string
		wantErr     bool
	}{
		{description: "string", value: "02", expect: "2"},
		{description: "json number", value: json.Number("12"), expect: "12"},
		{description: "json number with fraction digits", value: json.Number("1.0"), expect: "1"},
		{description: "json number with exponent", value: json.Number("2e0"), expect: "2"},
		{description: "json number fraction", value: json.Number("1.5"), wantErr: true},
		{description: "json number invalid", value: json.Number("x"), wantErr: true},
		{description: "float", value: float64(3), expect: "3"},
		{description: "int", value: 4, expect: "4"},
		{description: "nil", value: nil, expect: ""},
		{description: "fraction", value: 1.5, wantErr: true},
		{description: "bool", value: true, wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.description, func(t *testing.T) {
			actual, err := source.ID(tt.value)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, tt.expect, actual)
		})
	}
}

func TestAPI_Validate(t *testing.T) {
	valid := func() *source.API {
		return &source.API{Groups: []*source.Group{
			{ID: "1", Name: "system",
				Commands: []*source.Entity{{ID: "0", Name: "reset", Params: []*source.Param{{Name: "dfu", Type: "uint8"}}}},
				Events:   []*source.Entity{{ID: "0", Name: "boot"}},
			},
		}}
	}

	tests := []struct {
		description string
		mutate      func(api *source.API)
		path        string
		field       string
	}{
		{description: "valid"},
		{description: "group id", mutate: func(api *source.API) { api.Groups[0].ID = "" }, path: "groups[0]", field: "id"},
		{description: "group name", mutate: func(api *source.API) { api.Groups[0].Name = "" }, path: "groups[0]", field: "name"},
		{description: "command id", mutate: func(api *source.API) { api.Groups[0].Commands[0].ID = "" }, path: "groups[0].commands[0]", field: "id"},
		{description: "event name", mutate: func(api *source.API) { api.Groups[0].Events[0].Name = "" }, path: "groups[0].events[0]", field: "name"},
		{description: "param type", mutate: func(api *source.API) { api.Groups[0].Commands[0].Params[0].Type = "" }, path: "groups[0].commands[0].params[0]", field: "type"},
		{description: "return name", mutate: func(api *source.API) {
			api.Groups[0].Commands[0].HasReturns = true
			api.Groups[0].Commands[0].Returns = []*source.Param{{Type: "uint16"}}
		}, path: "groups[0].commands[0].returns[0]", field: "name"},
	}
	for _, tt := range tests {
		t.Run(tt.description, func(t *testing.T) {
			api := valid()
			if tt.mutate != nil {
				tt.mutate(api)
			}
			err := api.Validate()
			if tt.field == "" {
				assert.NoError(t, err)
				return
			}
			assert.True(t, errors.Is(err, source.ErrMalformed))
			var malformed *source.MalformedError
			if assert.True(t, errors.As(err, &malformed)) {
				assert.Equal(t, tt.path, malformed.Path)
				assert.Equal(t, tt.field, malformed.Field)
			}
		})
	}
}

func TestSignature(t *testing.T) {
	assert.Equal(t, "", source.Signature(nil))
	assert.Equal(t, "uint8 a, uint16 b", source.Signature([]*source.Param{{Name: "a", Type: "uint8"}, {Name: "b", Type: "uint16"}}))
}
