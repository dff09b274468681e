package validation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"yatube/internal/core/apperror"
)

type sample struct {
	Title string `form:"title" validate:"required,max=5"`
	Slug  string `form:"slug" validate:"required,slug"`
	Email string `form:"email" validate:"omitempty,email"`
}

func TestStructReportsFormFieldNames(t *testing.T) {
	err := Struct(sample{Title: "too long title", Slug: "bad slug!", Email: "nope"})
	require.Error(t, err)

	v, ok := apperror.AsValidation(err)
	require.True(t, ok)
	assert.Contains(t, v.Fields["title"], "at most 5")
	assert.Contains(t, v.Fields["slug"], "valid slug")
	assert.Contains(t, v.Fields["email"], "email")
}

func TestStructAcceptsValidInput(t *testing.T) {
	assert.NoError(t, Struct(sample{Title: "ok", Slug: "my-post_1"}))
}

func TestRequiredMessage(t *testing.T) {
	v, ok := apperror.AsValidation(Struct(sample{Slug: "a"}))
	require.True(t, ok)
	assert.Equal(t, "This field is required.", v.Fields["title"])
}
