package validator

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestV10_Var(t *testing.T) {
	v, err := NewV10()
	require.NoError(t, err)

	tests := []struct {
		name    string
		field   any
		tag     string
		wantErr bool
	}{
		{name: "required ok", field: "jane", tag: "required"},
		{name: "required empty", field: "", tag: "required", wantErr: true},
		{name: "email ok", field: "jane.doe@mail.example.com", tag: "simple_email"},
		{name: "email with plus", field: "jane+1@mail.com", tag: "simple_email", wantErr: true},
		{name: "email long tld", field: "jane@mail.company", tag: "simple_email", wantErr: true},
		{name: "email without at", field: "jane.mail.com", tag: "simple_email", wantErr: true},
		{name: "max ok", field: "abc", tag: "max=3"},
		{name: "max counts runes", field: "héé", tag: "max=3"},
		{name: "max exceeded", field: "abcd", tag: "max=3", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := v.Var(tt.field, tt.tag)
			if tt.wantErr {
				var verr FieldErrors
				require.ErrorAs(t, err, &verr)
				assert.NotEmpty(t, verr)
				return
			}
			assert.NoError(t, err)
		})
	}
}

func TestV10_Validate(t *testing.T) {
	v, err := NewV10()
	require.NoError(t, err)

	type payload struct {
		FullName string `validate:"required"`
		Email    string `validate:"required,simple_email"`
	}

	err = v.Validate(payload{Email: "nope"})

	var verr FieldErrors
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "FullName is a required field", verr["fullName"])
	assert.Equal(t, "Email format incorrect", verr["email"])
	assert.Equal(t, "email: Email format incorrect; fullName: FullName is a required field", verr.Error())

	assert.NoError(t, v.Validate(payload{FullName: "Jane", Email: "jane@mail.com"}))
}
