package service

import (
	"context"
	"errors"
	"log"
	"time"

	"github.com/yourusername/trivia-game/internal/domain/entity"
	"github.com/yourusername/trivia-game/internal/domain/repository"
	apperrors "github.com/yourusername/trivia-game/internal/pkg/errors"
)

// categoriesCacheKey - ключ кеша каталога категорий
const categoriesCacheKey = "trivia:categories"

// TriviaService предоставляет доступ к вопросам и категориям внешнего API
type TriviaService struct {
	provider  repository.QuestionProvider
	cacheRepo repository.CacheRepository // может быть nil - тогда без кеша
	cacheTTL  time.Duration
}

// NewTriviaService создает новый сервис вопросов.
// cacheRepo опционален: при nil каталог категорий запрашивается напрямую.
func NewTriviaService(
	provider repository.QuestionProvider,
	cacheRepo repository.CacheRepository,
	cacheTTL time.Duration,
) *TriviaService {
	return &TriviaService{
		provider:  provider,
		cacheRepo: cacheRepo,
		cacheTTL:  cacheTTL,
	}
}

// GetQuestions возвращает нормализованные вопросы под настройки игры.
// Один вызов - один исходящий запрос, без автоматических ретраев;
// отказ передается вызывающему как есть.
func (s *TriviaService) GetQuestions(ctx context.Context, settings entity.GameSettings) ([]entity.Question, error) {
	return s.provider.FetchQuestions(ctx, settings)
}

// GetCategories возвращает каталог категорий, кешируя его по схеме cache-aside
func (s *TriviaService) GetCategories(ctx context.Context) ([]repository.Category, error) {
	if s.cacheRepo != nil {
		var cached []repository.Category
		err := s.cacheRepo.GetJSON(categoriesCacheKey, &cached)
		if err == nil && len(cached) > 0 {
			return cached, nil
		}
		if err != nil && !errors.Is(err, apperrors.ErrNotFound) {
			// Проблема кеша не блокирует запрос к внешнему API
			log.Printf("[TriviaService] Ошибка чтения кеша категорий: %v", err)
		}
	}

	categories, err := s.provider.FetchCategories(ctx)
	if err != nil {
		return nil, err
	}

	if s.cacheRepo != nil {
		if err := s.cacheRepo.SetJSON(categoriesCacheKey, categories, s.cacheTTL); err != nil {
			log.Printf("[TriviaService] Ошибка записи кеша категорий: %v", err)
		}
	}

	return categories, nil
}
