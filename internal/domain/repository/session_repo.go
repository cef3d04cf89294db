package repository

import (
	"github.com/yourusername/trivia-game/internal/domain/entity"
)

// SessionRepository определяет методы для хранения игровых сессий.
// Сессии живут только в памяти процесса: персистентность между
// запусками сознательно не поддерживается.
type SessionRepository interface {
	Save(session *entity.GameSession) error
	GetByID(id string) (*entity.GameSession, error)
	Delete(id string) error
}
