package repository

import (
	"context"

	"github.com/yourusername/trivia-game/internal/domain/entity"
)

// Category представляет категорию вопросов внешнего API
type Category struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

// QuestionProvider определяет методы для получения вопросов из внешнего API.
// Реализация отвечает за построение запроса, валидацию статуса ответа
// и нормализацию вопросов; частичный список при отказе не возвращается.
type QuestionProvider interface {
	// FetchQuestions выполняет один исходящий запрос и возвращает
	// нормализованные вопросы в порядке ответа API либо типизированный отказ
	// (*apperrors.UpstreamError).
	FetchQuestions(ctx context.Context, settings entity.GameSettings) ([]entity.Question, error)

	// FetchCategories возвращает каталог категорий внешнего API
	FetchCategories(ctx context.Context) ([]Category, error)
}
