package main

import (
	"bytes"
	"strings"
	"testing"

	"github.com/emzola/bookswap/internal/auth"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testKey = "707172737475767778797a7b7c7d7e7f808182838485868788898a8b8c8d8e8f"

func TestTokenCommand(t *testing.T) {
	t.Setenv("AUTHKEY", testKey)
	t.Setenv("AUTHISSUER", "bookswap-test")

	var out bytes.Buffer
	root := newRootCmd()
	root.SetOut(&out)
	root.SetArgs([]string{"token", "--config", "missing.yaml", "--user-id", "42", "--ttl", "1h"})
	require.NoError(t, root.Execute())

	tokens, err := auth.NewTokens(testKey, "bookswap-test", "")
	require.NoError(t, err)
	userID, err := tokens.Verify(strings.TrimSpace(out.String()))
	require.NoError(t, err)
	assert.Equal(t, int64(42), userID)
}

func TestTokenCommandRequiresUser(t *testing.T) {
	root := newRootCmd()
	root.SetOut(&bytes.Buffer{})
	root.SetArgs([]string{"token"})
	err := root.Execute()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "--user-id")
}
