// Package session реализует реестр активных сессий в памяти процесса.
//
// Сессия живет от успешного входа до явного выхода либо перезапуска процесса
// и нигде не персистится. Токен — непрозрачная uuid-строка, привязанная
// к имени пользователя.
package session

import (
	"sync"

	"github.com/google/uuid"
)

// Store хранит активные сессии: токен -> имя пользователя.
type Store struct {
	mu       sync.RWMutex
	sessions map[string]string
}

// NewStore создает пустой реестр сессий.
func NewStore() *Store {
	return &Store{
		sessions: make(map[string]string),
	}
}

// Create регистрирует новую сессию для пользователя и возвращает ее токен.
func (s *Store) Create(username string) string {
	token := uuid.NewString()
	s.mu.Lock()
	s.sessions[token] = username
	s.mu.Unlock()
	return token
}

// Get возвращает имя пользователя активной сессии по токену.
func (s *Store) Get(token string) (string, bool) {
	s.mu.RLock()
	username, ok := s.sessions[token]
	s.mu.RUnlock()
	return username, ok
}

// Delete завершает сессию по токену. Неизвестный токен игнорируется.
func (s *Store) Delete(token string) {
	s.mu.Lock()
	delete(s.sessions, token)
	s.mu.Unlock()
}
