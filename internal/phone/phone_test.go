package phone

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeAcceptedShapes(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"local", "0501234567", "233501234567"},
		{"international", "+233501234567", "233501234567"},
		{"local with spaces", "050 123 4567", "233501234567"},
		{"local with dashes", "050-123-4567", "233501234567"},
		{"international with separators", "+233 50-123-4567", "233501234567"},
		{"surrounding whitespace", "  0501234567 ", "233501234567"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Normalize(tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestNormalizeRejected(t *testing.T) {
	tests := []struct {
		name    string
		in      string
		wantMsg string
	}{
		{"empty", "", "Phone number is required."},
		{"blank", "   ", "Phone number is required."},
		{"too short local", "050123456", "exactly 10 digits"},
		{"too long local", "05012345678", "exactly 10 digits"},
		{"already canonical", "233501234567", "exactly 10 digits"},
		{"letters", "05o123456a", "invalid characters: a, o"},
		{"multibyte character counted once", "050123456é", "invalid characters: é"},
		{"missing leading zero", "5012345678", "must start with 0"},
		{"international too short", "+23350123456", "exactly 9 digits"},
		{"international too long", "+2335012345678", "exactly 9 digits"},
		{"international letters", "+233soixante9", "exactly 9 digits"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Normalize(tt.in)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantMsg)
		})
	}
}

func TestNormalizeIdentifier(t *testing.T) {
	got, err := NormalizeIdentifier("  Jane.Doe@Example.COM ")
	require.NoError(t, err)
	assert.Equal(t, "jane.doe@example.com", got)

	got, err = NormalizeIdentifier("+233501234567")
	require.NoError(t, err)
	assert.Equal(t, "233501234567", got)

	_, err = NormalizeIdentifier("12345")
	assert.Error(t, err)
}

func TestIsEmail(t *testing.T) {
	assert.True(t, IsEmail("a@x.com"))
	assert.False(t, IsEmail("0501234567"))
}
