package service

import (
	"context"
	"fmt"
	"log"

	"github.com/google/uuid"

	"github.com/yourusername/trivia-game/internal/domain/entity"
	"github.com/yourusername/trivia-game/internal/domain/repository"
	apperrors "github.com/yourusername/trivia-game/internal/pkg/errors"
)

// AnswerResult - результат обработки одного ответа
type AnswerResult struct {
	// Ignored - повторная отправка для уже оцененного вопроса:
	// состояние не изменилось, очки не начислены. Не ошибка.
	Ignored bool

	Correct       bool
	Points        int
	CorrectAnswer string

	Score          int
	CorrectAnswers int

	// Won - условие победы выполнено (70% вопросов, округление вверх)
	Won bool

	// Celebrate - победа достигнута именно этим ответом; срабатывает
	// один раз за сессию
	Celebrate bool
}

// GameService управляет жизненным циклом игровых сессий и подсчетом очков
type GameService struct {
	triviaService *TriviaService
	sessionRepo   repository.SessionRepository
}

// NewGameService создает новый игровой сервис
func NewGameService(triviaService *TriviaService, sessionRepo repository.SessionRepository) *GameService {
	return &GameService{
		triviaService: triviaService,
		sessionRepo:   sessionRepo,
	}
}

// StartGame получает вопросы под настройки и создает свежую сессию
// с обнуленными счетчиками. При отказе внешнего API сессия не создается.
func (s *GameService) StartGame(ctx context.Context, settings entity.GameSettings) (*entity.GameSession, error) {
	settings.Normalize()
	if !settings.Validate() {
		return nil, fmt.Errorf("%w: invalid game settings", apperrors.ErrValidation)
	}

	questions, err := s.triviaService.GetQuestions(ctx, settings)
	if err != nil {
		return nil, err
	}

	session := entity.NewGameSession(uuid.NewString(), settings, questions)
	if err := s.sessionRepo.Save(session); err != nil {
		return nil, err
	}

	log.Printf("[GameService] Создана сессия %s: %d вопросов, сложность %s",
		session.ID, len(questions), settings.Difficulty)
	return session, nil
}

// GetSession возвращает сессию по идентификатору
func (s *GameService) GetSession(id string) (*entity.GameSession, error) {
	return s.sessionRepo.GetByID(id)
}

// SubmitAnswer обрабатывает ответ на вопрос questionIndex.
//
// Повторная отправка для уже оцененного вопроса - NoOp (Ignored), не ошибка.
// Обновление выполняется над копией сессии: ссылки на прежнее состояние
// у вызывающего кода остаются наблюдаемо неизменными.
func (s *GameService) SubmitAnswer(sessionID string, questionIndex int, chosenAnswer string) (*entity.GameSession, *AnswerResult, error) {
	session, err := s.sessionRepo.GetByID(sessionID)
	if err != nil {
		return nil, nil, err
	}

	if session.IsFinished() {
		return nil, nil, apperrors.ErrSessionFinished
	}
	if questionIndex < 0 || questionIndex >= len(session.Questions) {
		return nil, nil, fmt.Errorf("%w: question index %d out of range", apperrors.ErrValidation, questionIndex)
	}

	// Защита от двойного учета: вопрос оценивается не более одного раза
	if session.IsAnswered(questionIndex) {
		return session, &AnswerResult{
			Ignored:        true,
			Score:          session.Score,
			CorrectAnswers: session.CorrectAnswers,
			Won:            entity.HasWon(session.CorrectAnswers, len(session.Questions)),
		}, nil
	}

	next := session.Clone()
	next.MarkAnswered(questionIndex)

	question := next.Questions[questionIndex]
	correct := question.IsCorrect(chosenAnswer)
	points := question.PointValue()

	if correct {
		next.Score += points
		next.CorrectAnswers++
	}

	// Сложность вне easy|medium|hard молча выпадает из разбивки по сложности,
	// но категория учитывается всегда
	next.QuestionBreakdown.Record(question.Difficulty, correct)
	next.CategoryBreakdown.Record(question.Category, correct)

	won := entity.HasWon(next.CorrectAnswers, len(next.Questions))
	celebrate := won && !next.Celebrated
	if celebrate {
		next.Celebrated = true
		log.Printf("[GameService] Сессия %s достигла условия победы: %d правильных из %d",
			next.ID, next.CorrectAnswers, len(next.Questions))
	}

	if err := s.sessionRepo.Save(next); err != nil {
		return nil, nil, err
	}

	return next, &AnswerResult{
		Correct:        correct,
		Points:         points,
		CorrectAnswer:  question.CorrectAnswer,
		Score:          next.Score,
		CorrectAnswers: next.CorrectAnswers,
		Won:            won,
		Celebrate:      celebrate,
	}, nil
}

// NextQuestion переводит сессию к следующему вопросу либо на экран результатов
func (s *GameService) NextQuestion(sessionID string) (*entity.GameSession, error) {
	session, err := s.sessionRepo.GetByID(sessionID)
	if err != nil {
		return nil, err
	}
	if session.IsFinished() {
		return nil, apperrors.ErrSessionFinished
	}

	next := session.Clone()
	if next.CurrentQuestion+1 < len(next.Questions) {
		next.CurrentQuestion++
	} else {
		next.Screen = entity.ScreenResults
	}

	if err := s.sessionRepo.Save(next); err != nil {
		return nil, err
	}
	return next, nil
}

// FinishGame переводит сессию на экран результатов (досрочное завершение)
func (s *GameService) FinishGame(sessionID string) (*entity.GameSession, error) {
	session, err := s.sessionRepo.GetByID(sessionID)
	if err != nil {
		return nil, err
	}

	next := session.Clone()
	next.Screen = entity.ScreenResults

	if err := s.sessionRepo.Save(next); err != nil {
		return nil, err
	}
	return next, nil
}

// Restart полностью заменяет сессию новой с теми же настройками:
// свежие вопросы, обнуленные счетчики, пустой набор отвеченных вопросов.
// Старое состояние не переиспользуется.
func (s *GameService) Restart(ctx context.Context, sessionID string) (*entity.GameSession, error) {
	old, err := s.sessionRepo.GetByID(sessionID)
	if err != nil {
		return nil, err
	}

	questions, err := s.triviaService.GetQuestions(ctx, old.Settings)
	if err != nil {
		return nil, err
	}

	fresh := entity.NewGameSession(old.ID, old.Settings, questions)
	if err := s.sessionRepo.Save(fresh); err != nil {
		return nil, err
	}

	log.Printf("[GameService] Сессия %s перезапущена", sessionID)
	return fresh, nil
}

// DeleteSession удаляет сессию
func (s *GameService) DeleteSession(sessionID string) error {
	return s.sessionRepo.Delete(sessionID)
}
