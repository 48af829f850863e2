package auth

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testKey = "707172737475767778797a7b7c7d7e7f808182838485868788898a8b8c8d8e8f"

func TestIssueAndVerify(t *testing.T) {
	tokens, err := NewTokens(testKey, "identity", "bookswap")
	require.NoError(t, err)

	userID, err := tokens.Verify(tokens.Issue(42, time.Hour))
	require.NoError(t, err)
	assert.Equal(t, int64(42), userID)
}

func TestVerifyRejects(t *testing.T) {
	tokens, err := NewTokens(testKey, "identity", "bookswap")
	require.NoError(t, err)
	otherKey := strings.Repeat("ab", 32)
	foreign, err := NewTokens(otherKey, "identity", "bookswap")
	require.NoError(t, err)
	wrongAudience, err := NewTokens(testKey, "identity", "elsewhere")
	require.NoError(t, err)

	tests := map[string]string{
		"expired":        tokens.Issue(42, -time.Minute),
		"foreign key":    foreign.Issue(42, time.Hour),
		"wrong audience": wrongAudience.Issue(42, time.Hour),
		"garbage":        "v4.local.not-a-token",
	}
	for name, token := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := tokens.Verify(token)
			assert.ErrorIs(t, err, ErrInvalidToken)
		})
	}
}

func TestNewTokensKeyLength(t *testing.T) {
	_, err := NewTokens("abcd", "", "")
	assert.Error(t, err)
	_, err = NewTokens(strings.Repeat("zz", 32), "", "")
	assert.Error(t, err)
}
