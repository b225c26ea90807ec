package session

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStore_CreateGetDelete(t *testing.T) {
	store := NewStore()

	token := store.Create("admin")
	require.NotEmpty(t, token)

	username, ok := store.Get(token)
	assert.True(t, ok)
	assert.Equal(t, "admin", username)

	store.Delete(token)
	_, ok = store.Get(token)
	assert.False(t, ok)
}

func TestStore_TokensAreUnique(t *testing.T) {
	store := NewStore()

	first := store.Create("admin")
	second := store.Create("admin")
	assert.NotEqual(t, first, second)

	// обе сессии активны независимо друг от друга
	store.Delete(first)
	_, ok := store.Get(second)
	assert.True(t, ok)
}

func TestStore_GetUnknownToken(t *testing.T) {
	store := NewStore()

	_, ok := store.Get("no-such-token")
	assert.False(t, ok)

	// удаление неизвестного токена не паникует
	store.Delete("no-such-token")
}
