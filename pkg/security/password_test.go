package security

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBcryptHasherRoundtrip(t *testing.T) {
	hasher := NewBcryptHasher(4)

	hash, err := hasher.Hash("correct-horse")
	require.NoError(t, err)
	assert.NotEqual(t, "correct-horse", hash)

	assert.NoError(t, hasher.Compare(hash, "correct-horse"))
	assert.Error(t, hasher.Compare(hash, "wrong-horse"))
}

func TestBcryptHasherRejectsShortPassword(t *testing.T) {
	hasher := NewBcryptHasher(4)

	_, err := hasher.Hash("short")
	assert.Error(t, err)
}

func TestGeneratePassword(t *testing.T) {
	pw, err := GeneratePassword(GeneratedPasswordLen)
	require.NoError(t, err)
	assert.Len(t, pw, GeneratedPasswordLen)

	for _, r := range pw {
		assert.True(t, strings.ContainsRune(passwordAlphabet, r), "unexpected character %q", r)
	}

	other, err := GeneratePassword(GeneratedPasswordLen)
	require.NoError(t, err)
	assert.NotEqual(t, pw, other)
}

func TestGeneratePasswordDefaultsLength(t *testing.T) {
	pw, err := GeneratePassword(0)
	require.NoError(t, err)
	assert.Len(t, pw, GeneratedPasswordLen)
}
