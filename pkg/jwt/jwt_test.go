package jwt

import (
	"testing"
	"yatube/backend/internal/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	config.AppConfig = &config.Config{JWTSecret: "test-secret"}
}

func TestGenerateAndParse(t *testing.T) {
	token, err := GenerateToken(42)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	userID, err := ParseUserID(token)
	require.NoError(t, err)
	assert.Equal(t, uint(42), userID)
}

func TestParseRejectsGarbage(t *testing.T) {
	_, err := ParseUserID("not-a-token")
	assert.Error(t, err)
}

func TestParseRejectsWrongSecret(t *testing.T) {
	token, err := GenerateToken(42)
	require.NoError(t, err)

	config.AppConfig.JWTSecret = "another-secret"
	defer func() { config.AppConfig.JWTSecret = "test-secret" }()

	_, err = ParseUserID(token)
	assert.Error(t, err)
}
