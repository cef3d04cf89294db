// Package memory хранит игровые сессии в памяти процесса.
// Персистентность между запусками сознательно не поддерживается:
// сессия - одноразовое состояние одной игры.
package memory

import (
	"sync"

	"github.com/yourusername/trivia-game/internal/domain/entity"
	apperrors "github.com/yourusername/trivia-game/internal/pkg/errors"
)

// SessionRepo реализует repository.SessionRepository
type SessionRepo struct {
	mu       sync.RWMutex
	sessions map[string]*entity.GameSession
}

// NewSessionRepo создает пустое хранилище сессий
func NewSessionRepo() *SessionRepo {
	return &SessionRepo{
		sessions: make(map[string]*entity.GameSession),
	}
}

// Save сохраняет сессию, замещая предыдущую версию целиком
func (r *SessionRepo) Save(session *entity.GameSession) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.sessions[session.ID] = session
	return nil
}

// GetByID возвращает сессию по идентификатору
func (r *SessionRepo) GetByID(id string) (*entity.GameSession, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	session, ok := r.sessions[id]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	return session, nil
}

// Delete удаляет сессию; отсутствие сессии - не ошибка
func (r *SessionRepo) Delete(id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.sessions, id)
	return nil
}
