package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidatePasswordStrength(t *testing.T) {
	assert.NoError(t, ValidatePasswordStrength("Abcdef12"))
	assert.NoError(t, ValidatePasswordStrength("LongEnoughPass"))

	err := ValidatePasswordStrength("Ab1")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "at least 8 characters")

	err = ValidatePasswordStrength("alllowercase1")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "uppercase")

	err = ValidatePasswordStrength("ALLUPPERCASE1")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "lowercase")
}
