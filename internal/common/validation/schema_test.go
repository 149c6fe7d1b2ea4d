package validation

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMessageRequestSchema(t *testing.T) {
	v, err := NewValidator(MessageRequestSchema)
	require.NoError(t, err)

	tests := []struct {
		name  string
		body  string
		valid bool
		field string
		code  string
	}{
		{name: "message", body: `{"message":"hello"}`, valid: true},
		{name: "missing message", body: `{}`, code: "REQUIRED"},
		{name: "empty message", body: `{"message":""}`, field: "message", code: "STRING_GTE"},
		{name: "wrong type", body: `{"message":42}`, field: "message", code: "INVALID_TYPE"},
		{name: "extra field", body: `{"message":"hi","role":"admin"}`, field: "(root)", code: "ADDITIONAL_PROPERTY_NOT_ALLOWED"},
		{name: "too long", body: `{"message":"` + strings.Repeat("a", 4001) + `"}`, field: "message", code: "STRING_LTE"},
		{name: "malformed", body: `{"message":`, field: "(root)", code: "INVALID_JSON"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := v.ValidateBytes([]byte(tt.body))
			assert.Equal(t, tt.valid, result.Valid, result.GetErrorMessages())
			if tt.valid {
				assert.Empty(t, result.Errors)
				return
			}
			require.NotEmpty(t, result.Errors)
			var codes []string
			for _, e := range result.Errors {
				codes = append(codes, e.Code)
			}
			assert.Contains(t, codes, tt.code)
			if tt.field != "" {
				assert.True(t, result.HasErrors(tt.field), result.GetErrorMessages())
			}
		})
	}
}

func TestValidateInput(t *testing.T) {
	v := MustValidator(MessageRequestSchema)

	assert.True(t, v.ValidateInput(map[string]interface{}{"message": "player"}).Valid)
	assert.False(t, v.ValidateInput(map[string]interface{}{"message": true}).Valid)
}

func TestNewValidator_BadSchema(t *testing.T) {
	_, err := NewValidator(`{"type": 12}`)
	assert.Error(t, err)
	assert.Panics(t, func() { MustValidator(`not json`) })
}
