package speeds

import (
	"github.com/stretchr/testify/assert"
	"testing"
)

func createValidator(t *testing.T) Validator {
	table := createTable(t, map[int]int{
		31: 1100,
		33: 1200,
		35: 1500,
	})
	return NewValidator(table, 6200)
}

func TestValidator_Bounds(t *testing.T) {
	// GIVEN
	validator := createValidator(t)

	// THEN
	assert.Equal(t, 1100, validator.MinSpeed)
	assert.Equal(t, 6200, validator.MaxSpeed)

	assert.False(t, validator.IsValid(1099))
	assert.True(t, validator.IsValid(1100))
	assert.True(t, validator.IsValid(3000))
	assert.True(t, validator.IsValid(6200))
	assert.False(t, validator.IsValid(6201))
}

func TestValidator_Validate_BelowMin(t *testing.T) {
	// GIVEN
	validator := createValidator(t)

	// WHEN
	err := validator.Validate(1099)

	// THEN
	var rangeErr *OutOfRangeError
	assert.ErrorAs(t, err, &rangeErr)
	assert.Equal(t, 1099, rangeErr.Speed)
	assert.EqualError(t, err, "fan speed 1099 is out of range [1100..6200]")
}

func TestValidator_Validate_AboveMax(t *testing.T) {
	// GIVEN
	validator := createValidator(t)

	// WHEN
	err := validator.Validate(6201)

	// THEN
	var rangeErr *OutOfRangeError
	assert.ErrorAs(t, err, &rangeErr)
}

func TestValidator_ValidateHex(t *testing.T) {
	// GIVEN
	validator := createValidator(t)

	// THEN
	assert.NoError(t, validator.ValidateHex("1770"))
	assert.NoError(t, validator.ValidateHex("60e0"))

	var rangeErr *OutOfRangeError
	assert.ErrorAs(t, validator.ValidateHex(Encode(6201)), &rangeErr)
	assert.ErrorAs(t, validator.ValidateHex(Encode(1099)), &rangeErr)

	var formatErr *FormatError
	assert.ErrorAs(t, validator.ValidateHex("zz"), &formatErr)
}
