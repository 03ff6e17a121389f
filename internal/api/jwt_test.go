package api

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Roma7-7-7/recall-journal/internal/config"
)

func TestJWTProcessor_RoundTrip(t *testing.T) {
	t.Parallel()

	proc := NewJWTProcessor(config.JWT{
		Issuer:   "recall-journal-test",
		Audience: []string{"recall-journal-web"},
		Secret:   "test-secret",
	}, time.Hour)

	token, err := proc.ToAccessToken("alice")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	userID, err := proc.ParseAccessToken(token)
	require.NoError(t, err)
	assert.Equal(t, "alice", userID)
}

func TestJWTProcessor_ParseAccessToken_Rejects(t *testing.T) {
	t.Parallel()

	conf := config.JWT{
		Issuer:   "recall-journal-test",
		Audience: []string{"recall-journal-web"},
		Secret:   "test-secret",
	}

	t.Run("wrong secret", func(t *testing.T) {
		t.Parallel()

		token, err := NewJWTProcessor(conf, time.Hour).ToAccessToken("alice")
		require.NoError(t, err)

		other := conf
		other.Secret = "other-secret"
		_, err = NewJWTProcessor(other, time.Hour).ParseAccessToken(token)
		assert.Error(t, err)
	})

	t.Run("wrong issuer", func(t *testing.T) {
		t.Parallel()

		other := conf
		other.Issuer = "someone-else"
		token, err := NewJWTProcessor(other, time.Hour).ToAccessToken("alice")
		require.NoError(t, err)

		_, err = NewJWTProcessor(conf, time.Hour).ParseAccessToken(token)
		assert.Error(t, err)
	})

	t.Run("expired", func(t *testing.T) {
		t.Parallel()

		token, err := NewJWTProcessor(conf, -time.Minute).ToAccessToken("alice")
		require.NoError(t, err)

		_, err = NewJWTProcessor(conf, time.Hour).ParseAccessToken(token)
		assert.Error(t, err)
	})

	t.Run("garbage", func(t *testing.T) {
		t.Parallel()

		_, err := NewJWTProcessor(conf, time.Hour).ParseAccessToken("not-a-token")
		assert.Error(t, err)
	})
}
