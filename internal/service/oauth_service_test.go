package service

import (
	"context"
	"net/url"
	"testing"

	"ai-chat-be/internal/config"
	"ai-chat-be/internal/repository/memory"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func oauthTestConfig() *config.Config {
	return &config.Config{
		OAuth: config.OAuthConfig{
			GoogleClientID:     "client-id",
			GoogleClientSecret: "client-secret",
			GoogleRedirectURL:  "http://localhost:3000/api/auth/google/callback",
			JWTSecret:          "test-secret",
		},
	}
}

func TestOAuthServiceGetLoginURL(t *testing.T) {
	states := memory.NewOAuthStateRepository()
	svc := NewOAuthService(oauthTestConfig(), states, nopLogger{})

	t.Run("issues a consumable state", func(t *testing.T) {
		loginURL, err := svc.GetLoginURL("google")
		require.NoError(t, err)

		parsed, err := url.Parse(loginURL)
		require.NoError(t, err)

		state := parsed.Query().Get("state")
		require.NotEmpty(t, state)
		assert.Equal(t, "client-id", parsed.Query().Get("client_id"))

		assert.True(t, states.Consume(state))
	})

	t.Run("rejects unknown providers", func(t *testing.T) {
		_, err := svc.GetLoginURL("facebook")
		assert.Error(t, err)
	})
}

func TestOAuthServiceCallbackState(t *testing.T) {
	states := memory.NewOAuthStateRepository()
	svc := NewOAuthService(oauthTestConfig(), states, nopLogger{})

	t.Run("rejects a state that was never issued", func(t *testing.T) {
		_, err := svc.HandleCallback(context.Background(), "google", "forged", "code")
		assert.ErrorContains(t, err, "state")
	})

	t.Run("rejects unknown providers", func(t *testing.T) {
		_, err := svc.HandleCallback(context.Background(), "facebook", "state", "code")
		assert.ErrorContains(t, err, "unsupported provider")
	})
}
