// Package auth provides GitHub authentication token management.
// The adapter authenticates with a bearer token supplied through the
// environment; the process refuses to start without one.
package auth

import (
	"errors"
	"fmt"
	"os"
)

// TokenEnvVar is the environment variable carrying the bearer token.
const TokenEnvVar = "GITHUB_TOKEN"

// TokenProvider defines the interface for obtaining a GitHub
// authentication token. Tests substitute a static provider.
type TokenProvider interface {
	GetToken() (string, error)
}

// EnvProvider obtains tokens from the GITHUB_TOKEN environment variable.
type EnvProvider struct{}

// GetToken reads the GITHUB_TOKEN environment variable.
// Returns an error if the variable is not set or is empty.
func (e *EnvProvider) GetToken() (string, error) {
	token := os.Getenv(TokenEnvVar)
	if token == "" {
		return "", errors.New("GITHUB_TOKEN environment variable not set or empty")
	}
	return token, nil
}

// StaticProvider returns a fixed token. Used in tests.
type StaticProvider struct {
	Token string
}

// GetToken returns the fixed token, or an error if it is empty.
func (s *StaticProvider) GetToken() (string, error) {
	if s.Token == "" {
		return "", errors.New("static token is empty")
	}
	return s.Token, nil
}

// GetToken is the main entry point for token retrieval. It reads the
// environment and returns an actionable error when the token is absent,
// so startup can fail immediately.
func GetToken() (string, error) {
	provider := &EnvProvider{}
	token, err := provider.GetToken()
	if err != nil {
		return "", fmt.Errorf(
			"failed to obtain GitHub token: %w.\n"+
				"Set the GITHUB_TOKEN environment variable to a personal access token\n"+
				"with project and repository scopes", err)
	}
	return token, nil
}
