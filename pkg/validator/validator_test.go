package validator

import (
	"bytes"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testStruct struct {
	FirstName string `json:"first_name" validate:"required"`
	Email     string `json:"email" validate:"required,email"`
	Type      string `json:"type" validate:"omitempty,oneof=credit_card paypal"`
	Nickname  string `json:"-" validate:"omitempty,min=3"`
}

func TestValidate_Success(t *testing.T) {
	err := Validate(testStruct{FirstName: "Ada", Email: "ada@example.com"})
	assert.NoError(t, err)
}

func TestValidate_UsesJSONTagNames(t *testing.T) {
	err := Validate(testStruct{})

	var valErr *ValidationError
	require.ErrorAs(t, err, &valErr)

	fields := valErr.Fields()
	assert.Equal(t, "is required", fields["first_name"])
	assert.Equal(t, "is required", fields["email"])
}

func TestValidate_EmailFormat(t *testing.T) {
	err := Validate(testStruct{FirstName: "Ada", Email: "nope"})

	var valErr *ValidationError
	require.ErrorAs(t, err, &valErr)
	assert.Equal(t, "must be a valid email address", valErr.Fields()["email"])
}

func TestValidate_OneOf(t *testing.T) {
	err := Validate(testStruct{FirstName: "Ada", Email: "ada@example.com", Type: "cash"})

	var valErr *ValidationError
	require.ErrorAs(t, err, &valErr)
	assert.Equal(t, "must be one of: credit_card paypal", valErr.Fields()["type"])
}

func TestValidate_DashJSONTagFallsBackToFieldName(t *testing.T) {
	err := Validate(testStruct{FirstName: "Ada", Email: "ada@example.com", Nickname: "ab"})

	var valErr *ValidationError
	require.ErrorAs(t, err, &valErr)
	assert.Contains(t, valErr.Fields(), "Nickname")
}

func TestValidationError_ErrorString(t *testing.T) {
	err := Validate(testStruct{Email: "ada@example.com"})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "first_name")
	assert.Contains(t, err.Error(), "is required")
}

func TestValidateVar(t *testing.T) {
	msg, ok := ValidateVar("email", "ada@example.com", "required,email")
	assert.True(t, ok)
	assert.Empty(t, msg)

	msg, ok = ValidateVar("email", "nope", "required,email")
	assert.False(t, ok)
	assert.Equal(t, "must be a valid email address", msg)
}

func TestDecodeAndValidate_Success(t *testing.T) {
	body := bytes.NewBufferString(`{"first_name":"Ada","email":"ada@example.com"}`)
	req := httptest.NewRequest("POST", "/", body)

	var dst testStruct
	require.NoError(t, DecodeAndValidate(req, &dst))
	assert.Equal(t, "Ada", dst.FirstName)
}

func TestDecodeAndValidate_BadJSON(t *testing.T) {
	req := httptest.NewRequest("POST", "/", bytes.NewBufferString(`{not json`))

	var dst testStruct
	err := DecodeAndValidate(req, &dst)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "decode request body")
}

func TestDecodeAndValidate_ValidationFailure(t *testing.T) {
	req := httptest.NewRequest("POST", "/", bytes.NewBufferString(`{"email":"bad"}`))

	var dst testStruct
	err := DecodeAndValidate(req, &dst)

	var valErr *ValidationError
	require.ErrorAs(t, err, &valErr)
	assert.Contains(t, valErr.Fields(), "first_name")
	assert.Contains(t, valErr.Fields(), "email")
}
