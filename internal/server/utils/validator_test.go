package utils

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sample struct {
	Values map[string]float64 `json:"values" validate:"required,dive,finite"`
}

func TestValidateStruct_Valid(t *testing.T) {
	errs := ValidateStruct(sample{Values: map[string]float64{"lat": 1.5, "slp": 1013}})

	assert.Empty(t, errs)
}

func TestValidateStruct_Required(t *testing.T) {
	errs := ValidateStruct(sample{})

	require.Len(t, errs, 1)
	assert.Equal(t, "values", errs[0].Field)
	assert.Equal(t, "required", errs[0].Tag)
	assert.Equal(t, "values is required", errs[0].Message)
}

func TestValidateStruct_NonFinite(t *testing.T) {
	errs := ValidateStruct(sample{Values: map[string]float64{"slp": math.NaN()}})

	require.Len(t, errs, 1)
	assert.Equal(t, "finite", errs[0].Tag)
	assert.Equal(t, "values[slp]", errs[0].Field)
	assert.Equal(t, "values[slp] must be a finite number", errs[0].Message)
}

func TestSummary(t *testing.T) {
	errs := []ValidationError{{Message: "a is required"}, {Message: "b must be a finite number"}}

	assert.Equal(t, "a is required; b must be a finite number", Summary(errs))
}
