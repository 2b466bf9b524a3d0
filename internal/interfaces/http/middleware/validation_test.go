package middleware

import (
	"testing"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSetupValidator(t *testing.T) {
	SetupValidator()

	v, ok := binding.Validator.Engine().(*validator.Validate)
	require.True(t, ok)

	type monthRef struct {
		Period string `json:"period" validate:"period"`
	}

	assert.NoError(t, v.Struct(monthRef{Period: "2024-06"}))
	assert.Error(t, v.Struct(monthRef{Period: "June 2024"}))
	assert.Error(t, v.Struct(monthRef{Period: "2024-13"}))
}

func TestValidatorReportsWireFieldNames(t *testing.T) {
	SetupValidator()

	v, ok := binding.Validator.Engine().(*validator.Validate)
	require.True(t, ok)

	type payload struct {
		TaxID string `json:"tax_id" validate:"required"`
	}

	err := v.Struct(payload{})
	require.Error(t, err)

	verrs, ok := err.(validator.ValidationErrors)
	require.True(t, ok)
	require.Len(t, verrs, 1)
	assert.Equal(t, "tax_id", verrs[0].Field())
}
