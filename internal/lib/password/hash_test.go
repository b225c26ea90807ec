package password

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetHashAndCompareHash(t *testing.T) {
	hash, err := GetHash("costa2026")
	require.NoError(t, err)
	require.NotEmpty(t, hash)
	assert.NotEqual(t, "costa2026", hash)

	assert.NoError(t, CompareHash(hash, "costa2026"))
	assert.Error(t, CompareHash(hash, "wrong-password"))
}

func TestGetHash_DifferentSalts(t *testing.T) {
	first, err := GetHash("costa2026")
	require.NoError(t, err)
	second, err := GetHash("costa2026")
	require.NoError(t, err)

	// одинаковые пароли дают разные хэши из-за соли
	assert.NotEqual(t, first, second)
}

func TestCompareHash_InvalidHash(t *testing.T) {
	assert.Error(t, CompareHash("not-a-bcrypt-hash", "costa2026"))
}
