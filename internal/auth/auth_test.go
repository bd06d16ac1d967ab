package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEnvProvider_GetToken_Success(t *testing.T) {
	expectedToken := "ghp_test_token_123"
	t.Setenv(TokenEnvVar, expectedToken)

	provider := &EnvProvider{}
	token, err := provider.GetToken()

	require.NoError(t, err)
	assert.Equal(t, expectedToken, token)
}

func TestEnvProvider_GetToken_Missing(t *testing.T) {
	t.Setenv(TokenEnvVar, "")

	provider := &EnvProvider{}
	token, err := provider.GetToken()

	assert.Error(t, err)
	assert.Empty(t, token)
	assert.Contains(t, err.Error(), "GITHUB_TOKEN")
}

func TestStaticProvider(t *testing.T) {
	provider := &StaticProvider{Token: "fixed"}
	token, err := provider.GetToken()
	require.NoError(t, err)
	assert.Equal(t, "fixed", token)

	empty := &StaticProvider{}
	_, err = empty.GetToken()
	assert.Error(t, err)
}

func TestGetToken_ActionableError(t *testing.T) {
	t.Setenv(TokenEnvVar, "")

	_, err := GetToken()
	require.Error(t, err)
	// The startup error tells the operator exactly what to set.
	assert.Contains(t, err.Error(), "GITHUB_TOKEN")
	assert.Contains(t, err.Error(), "personal access token")
}

func TestGetToken_FromEnv(t *testing.T) {
	t.Setenv(TokenEnvVar, "ghp_env_token")

	token, err := GetToken()
	require.NoError(t, err)
	assert.Equal(t, "ghp_env_token", token)
}
