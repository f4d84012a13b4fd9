package utils

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret"

func TestGenerateTokenPairRoundTrip(t *testing.T) {
	userID := uuid.New()

	pair, err := GenerateTokenPair(testSecret, userID, time.Minute, time.Hour)
	require.NoError(t, err)
	require.NotEmpty(t, pair.Access)
	require.NotEmpty(t, pair.Refresh)
	assert.NotEqual(t, pair.Access, pair.Refresh)

	parsed, err := ParseAccessToken(testSecret, pair.Access)
	require.NoError(t, err)
	assert.Equal(t, userID, parsed)
}

func TestParseAccessTokenRejectsRefresh(t *testing.T) {
	pair, err := GenerateTokenPair(testSecret, uuid.New(), time.Minute, time.Hour)
	require.NoError(t, err)

	_, err = ParseAccessToken(testSecret, pair.Refresh)
	assert.Error(t, err)
}

func TestParseAccessTokenRejectsExpired(t *testing.T) {
	pair, err := GenerateTokenPair(testSecret, uuid.New(), -time.Minute, time.Hour)
	require.NoError(t, err)

	_, err = ParseAccessToken(testSecret, pair.Access)
	assert.Error(t, err)
}

func TestParseAccessTokenRejectsWrongSecret(t *testing.T) {
	pair, err := GenerateTokenPair(testSecret, uuid.New(), time.Minute, time.Hour)
	require.NoError(t, err)

	_, err = ParseAccessToken("other-secret", pair.Access)
	assert.Error(t, err)
}
