package validation

import (
	stderrors "errors"
	"strings"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"engagement-admin-backend/internal/common/errors"
)

func TestValidatePassword(t *testing.T) {
	assert.Nil(t, ValidatePassword("abc123", "abc123"))

	err := ValidatePassword("abc123", "abc124")
	require.NotNil(t, err)
	assert.Equal(t, errors.ErrCodeValidation, err.Code)
	assert.Equal(t, "confirmPassword", err.Details["field"])

	assert.NotNil(t, ValidatePassword("abc", "abc"))
	assert.NotNil(t, ValidatePassword(strings.Repeat("a", 73), strings.Repeat("a", 73)))
}

func TestValidateEmail(t *testing.T) {
	assert.Nil(t, ValidateEmail("admin@example.com"))
	assert.NotNil(t, ValidateEmail(""))
	assert.NotNil(t, ValidateEmail("not-an-email"))
}

func TestValidateLink(t *testing.T) {
	assert.Nil(t, ValidateLink("https://t.me/channel"))
	assert.NotNil(t, ValidateLink("t.me channel"))
	assert.NotNil(t, ValidateLink(" "))
}

func TestValidateName(t *testing.T) {
	assert.Nil(t, ValidateName("fname", "Ada"))
	assert.NotNil(t, ValidateName("fname", "   "))
	assert.NotNil(t, ValidateName("lname", strings.Repeat("x", MaxNameLength+1)))
}

func TestFromBinding(t *testing.T) {
	type body struct {
		Email string `validate:"required,email"`
		Title string `validate:"required"`
	}
	err := validator.New().Struct(body{Email: "nope"})
	require.Error(t, err)

	appErr := FromBinding(err)
	assert.Equal(t, errors.ErrCodeValidation, appErr.Code)
	fields := appErr.Details["fields"].(map[string]string)
	assert.Contains(t, fields, "Email")
	assert.Contains(t, fields, "Title")

	assert.Equal(t, errors.ErrCodeBadRequest, FromBinding(stderrors.New("unexpected EOF")).Code)
}
