package validator

import (
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateUsername(t *testing.T) {
	valid := []string{"alice", "bob.smith", "user@host", "a+b", "x-y", "under_score", "Mee", "me2"}
	for _, username := range valid {
		assert.NoError(t, ValidateUsername(username), "username %q", username)
	}

	invalid := []string{"has space", "semi;colon", "слэш/", "a!b", "me", "ME", "mE"}
	for _, username := range invalid {
		assert.Error(t, ValidateUsername(username), "username %q", username)
	}
}

func TestValidateSlug(t *testing.T) {
	valid := []string{"sci-fi", "drama", "top_10", "Movies2024"}
	for _, slug := range valid {
		assert.NoError(t, ValidateSlug(slug), "slug %q", slug)
	}

	invalid := []string{"with space", "dot.dot", "slash/slash", "at@sign"}
	for _, slug := range invalid {
		assert.Error(t, ValidateSlug(slug), "slug %q", slug)
	}
}

func TestFormatValidationError(t *testing.T) {
	type form struct {
		Email string `validate:"required,email"`
		Score int    `validate:"omitempty,gte=1,lte=10"`
	}

	v := validator.New()

	err := v.Struct(form{})
	require.Error(t, err)
	assert.Contains(t, FormatValidationError(err), "Email is required")

	err = v.Struct(form{Email: "not-an-email", Score: 11})
	require.Error(t, err)
	msg := FormatValidationError(err)
	assert.Contains(t, msg, "Email must be a valid email address")
	assert.Contains(t, msg, "Score must be at most 10")
}
