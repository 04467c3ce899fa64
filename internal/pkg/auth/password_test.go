package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashAndCheckPassword(t *testing.T) {
	hashed, err := HashPassword("correct-horse-battery")
	require.NoError(t, err)
	require.NotEqual(t, "correct-horse-battery", hashed)

	assert.True(t, CheckPassword(hashed, "correct-horse-battery"))
	assert.False(t, CheckPassword(hashed, "wrong-password"))
	assert.False(t, CheckPassword("not-a-hash", "correct-horse-battery"))
}
