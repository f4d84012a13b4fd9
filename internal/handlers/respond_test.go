package handlers

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBoolFlag(t *testing.T) {
	assert.True(t, boolFlag("true"))
	assert.True(t, boolFlag("TRUE"))
	assert.True(t, boolFlag("True"))

	assert.False(t, boolFlag("false"))
	assert.False(t, boolFlag("FALSE"))
	assert.False(t, boolFlag(""))
	assert.False(t, boolFlag("1"))
	assert.False(t, boolFlag("yes"))
	assert.False(t, boolFlag("garbage"))
}
