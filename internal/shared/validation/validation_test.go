package validation

import (
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sampleRequest struct {
	Title  string `json:"title" binding:"required" validate:"required,notblank"`
	Status string `json:"status" validate:"omitempty,color"`
}

func newValidator(t *testing.T) *validator.Validate {
	t.Helper()
	v := validator.New()
	err := Register(v, map[string]StringCheck{
		"color": func(s string) bool { return s == "red" || s == "blue" },
	})
	require.NoError(t, err)
	return v
}

func TestRegister_NotBlank(t *testing.T) {
	v := newValidator(t)

	assert.NoError(t, v.Struct(sampleRequest{Title: "Printer jam"}))

	err := v.Struct(sampleRequest{Title: "   "})
	require.Error(t, err)
	fieldErr := err.(validator.ValidationErrors)[0]
	assert.Equal(t, "notblank", fieldErr.Tag())
	assert.Equal(t, "title", fieldErr.Field())
}

func TestRegister_CustomTag(t *testing.T) {
	v := newValidator(t)

	assert.NoError(t, v.Struct(sampleRequest{Title: "x", Status: "red"}))
	assert.NoError(t, v.Struct(sampleRequest{Title: "x"}))

	err := v.Struct(sampleRequest{Title: "x", Status: "green"})
	require.Error(t, err)
	assert.Equal(t, "color", err.(validator.ValidationErrors)[0].Tag())
}
