package handler

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/yourusername/trivia-game/internal/domain/entity"
	"github.com/yourusername/trivia-game/internal/handler/dto"
	"github.com/yourusername/trivia-game/internal/middleware"
	apperrors "github.com/yourusername/trivia-game/internal/pkg/errors"
	"github.com/yourusername/trivia-game/internal/repository/memory"
	"github.com/yourusername/trivia-game/internal/service"
)

// newGameRouter собирает роутер игровых сессий поверх мока провайдера
func newGameRouter(provider *MockProviderForTriviaHandler) *gin.Engine {
	gin.SetMode(gin.TestMode)
	triviaService := service.NewTriviaService(provider, nil, 0)
	gameService := service.NewGameService(triviaService, memory.NewSessionRepo())
	h := NewGameHandler(gameService)

	router := gin.New()
	games := router.Group("/api/games")
	games.POST("", h.StartGame)
	gameWithID := games.Group("/:id")
	gameWithID.Use(middleware.ExtractSessionID("id", "sessionID"))
	{
		gameWithID.GET("", h.GetGame)
		gameWithID.POST("/answers", h.SubmitAnswer)
		gameWithID.POST("/next", h.NextQuestion)
		gameWithID.POST("/finish", h.FinishGame)
		gameWithID.GET("/results", h.GetResults)
		gameWithID.POST("/restart", h.RestartGame)
		gameWithID.DELETE("", h.DeleteGame)
	}
	return router
}

// gameQuestions возвращает вопросы с различимыми правильными ответами
func gameQuestions(count int, difficulty string) []entity.Question {
	questions := make([]entity.Question, count)
	for i := range questions {
		questions[i] = entity.Question{
			ID:            fmt.Sprintf("q_1_%d", i),
			Category:      "History",
			Difficulty:    difficulty,
			Question:      fmt.Sprintf("Question %d", i),
			CorrectAnswer: fmt.Sprintf("right-%d", i),
			AllAnswers:    []string{fmt.Sprintf("right-%d", i), "w1", "w2", "w3"},
		}
	}
	return questions
}

// doJSON выполняет запрос с JSON-телом и разбирает JSON-ответ
func doJSON(t *testing.T, router *gin.Engine, method, path string, reqBody, respBody interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if reqBody != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(reqBody))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	if respBody != nil && w.Code < 300 {
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), respBody))
	}
	return w
}

// startTestGame - хелпер: создает игру через API и возвращает ее состояние
func startTestGame(t *testing.T, router *gin.Engine) dto.GameSessionResponse {
	t.Helper()
	var session dto.GameSessionResponse
	w := doJSON(t, router, http.MethodPost, "/api/games",
		gin.H{"amount": 5, "difficulty": "easy"}, &session)
	require.Equal(t, http.StatusCreated, w.Code)
	return session
}

func TestGameHandler_StartGame(t *testing.T) {
	// Arrange
	provider := new(MockProviderForTriviaHandler)
	provider.On("FetchQuestions", mock.Anything, mock.Anything).Return(gameQuestions(5, entity.DifficultyEasy), nil)
	router := newGameRouter(provider)

	// Act
	session := startTestGame(t, router)

	// Assert
	assert.NotEmpty(t, session.ID)
	assert.Equal(t, entity.ScreenQuiz, session.Screen)
	assert.Equal(t, 5, session.TotalQuestions)
	assert.Equal(t, 0, session.Score)
	require.NotNil(t, session.Question, "на экране викторины отдается текущий вопрос")
	assert.Equal(t, "Question 0", session.Question.Question)
	assert.Len(t, session.Question.AllAnswers, 4)
}

func TestGameHandler_StartGame_NoQuestionsAvailable(t *testing.T) {
	// Отказ внешнего API - ошибка шлюза, а не пустая викторина
	provider := new(MockProviderForTriviaHandler)
	provider.On("FetchQuestions", mock.Anything, mock.Anything).
		Return(nil, apperrors.NewRejectedError(1))
	router := newGameRouter(provider)

	w := doJSON(t, router, http.MethodPost, "/api/games", gin.H{"amount": 5, "difficulty": "hard", "category": "18"}, nil)

	require.Equal(t, http.StatusBadRequest, w.Code)
	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "No questions available for the selected settings", body["error"])
	assert.Equal(t, float64(1), body["code"])
}

func TestGameHandler_StartGame_InvalidBody(t *testing.T) {
	router := newGameRouter(new(MockProviderForTriviaHandler))

	w := doJSON(t, router, http.MethodPost, "/api/games", gin.H{"amount": 3}, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code, "amount вне [5,20] отклоняется биндингом")

	w = doJSON(t, router, http.MethodPost, "/api/games", gin.H{"difficulty": "impossible"}, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestGameHandler_SubmitAnswer_FullFlow(t *testing.T) {
	// Разыгрываем игру целиком через HTTP: ответы, переходы, результаты
	provider := new(MockProviderForTriviaHandler)
	provider.On("FetchQuestions", mock.Anything, mock.Anything).Return(gameQuestions(5, entity.DifficultyEasy), nil)
	router := newGameRouter(provider)
	session := startTestGame(t, router)

	base := "/api/games/" + session.ID

	// Вопрос 0: правильный ответ
	var answer dto.AnswerResponse
	w := doJSON(t, router, http.MethodPost, base+"/answers",
		gin.H{"question_index": 0, "answer": "right-0"}, &answer)
	require.Equal(t, http.StatusOK, w.Code)
	assert.True(t, answer.Correct)
	assert.Equal(t, 10, answer.Points)
	assert.Equal(t, 10, answer.Score)

	// Повторная отправка того же вопроса: ignored, состояние не изменилось
	w = doJSON(t, router, http.MethodPost, base+"/answers",
		gin.H{"question_index": 0, "answer": "w1"}, &answer)
	require.Equal(t, http.StatusOK, w.Code)
	assert.True(t, answer.Ignored)
	assert.Equal(t, 10, answer.Score)

	// Вопрос 1: неправильный ответ
	w = doJSON(t, router, http.MethodPost, base+"/answers",
		gin.H{"question_index": 1, "answer": "w1"}, &answer)
	require.Equal(t, http.StatusOK, w.Code)
	assert.False(t, answer.Correct)
	assert.Equal(t, "right-1", answer.CorrectAnswer)
	assert.Equal(t, 10, answer.Score)

	// Переход к следующему вопросу
	var state dto.GameSessionResponse
	w = doJSON(t, router, http.MethodPost, base+"/next", nil, &state)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 1, state.CurrentQuestion)

	// Досрочное завершение и итоговая сводка
	w = doJSON(t, router, http.MethodPost, base+"/finish", nil, &state)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, entity.ScreenResults, state.Screen)

	var results dto.ResultsResponse
	w = doJSON(t, router, http.MethodGet, base+"/results", nil, &results)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 10, results.Score)
	assert.Equal(t, 1, results.CorrectAnswers)
	assert.Equal(t, 5, results.TotalQuestions)
	assert.Equal(t, 4, results.WinThreshold)
	assert.False(t, results.Won)
	assert.Equal(t, entity.BreakdownCounter{Correct: 1, Total: 2}, results.QuestionBreakdown[entity.DifficultyEasy])
	assert.Equal(t, entity.BreakdownCounter{Correct: 1, Total: 2}, results.CategoryBreakdown["History"])

	// Сессия завершена: дальнейшие ответы отклоняются
	w = doJSON(t, router, http.MethodPost, base+"/answers",
		gin.H{"question_index": 2, "answer": "right-2"}, nil)
	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestGameHandler_SubmitAnswer_CelebrateOnWin(t *testing.T) {
	provider := new(MockProviderForTriviaHandler)
	provider.On("FetchQuestions", mock.Anything, mock.Anything).Return(gameQuestions(5, entity.DifficultyEasy), nil)
	router := newGameRouter(provider)
	session := startTestGame(t, router)
	base := "/api/games/" + session.ID

	// Порог для 5 вопросов: 4 правильных
	var answer dto.AnswerResponse
	for i := 0; i < 4; i++ {
		w := doJSON(t, router, http.MethodPost, base+"/answers",
			gin.H{"question_index": i, "answer": fmt.Sprintf("right-%d", i)}, &answer)
		require.Equal(t, http.StatusOK, w.Code)
	}

	assert.True(t, answer.Won)
	assert.True(t, answer.Celebrate, "победа показывается на достигшем ответе")

	// Пятый правильный ответ: условие победы истинно, но без повторного показа
	w := doJSON(t, router, http.MethodPost, base+"/answers",
		gin.H{"question_index": 4, "answer": "right-4"}, &answer)
	require.Equal(t, http.StatusOK, w.Code)
	assert.True(t, answer.Won)
	assert.False(t, answer.Celebrate)
}

func TestGameHandler_RestartGame(t *testing.T) {
	provider := new(MockProviderForTriviaHandler)
	provider.On("FetchQuestions", mock.Anything, mock.Anything).Return(gameQuestions(5, entity.DifficultyEasy), nil)
	router := newGameRouter(provider)
	session := startTestGame(t, router)
	base := "/api/games/" + session.ID

	var answer dto.AnswerResponse
	w := doJSON(t, router, http.MethodPost, base+"/answers",
		gin.H{"question_index": 0, "answer": "right-0"}, &answer)
	require.Equal(t, http.StatusOK, w.Code)

	// Рестарт: состояние заменено целиком
	var fresh dto.GameSessionResponse
	w = doJSON(t, router, http.MethodPost, base+"/restart", nil, &fresh)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, session.ID, fresh.ID)
	assert.Equal(t, 0, fresh.Score)
	assert.Equal(t, 0, fresh.CorrectAnswers)
	assert.Equal(t, entity.ScreenQuiz, fresh.Screen)

	// Тот же индекс снова оценивается (набор отвеченных очищен)
	w = doJSON(t, router, http.MethodPost, base+"/answers",
		gin.H{"question_index": 0, "answer": "right-0"}, &answer)
	require.Equal(t, http.StatusOK, w.Code)
	assert.False(t, answer.Ignored)
	assert.True(t, answer.Correct)
}

func TestGameHandler_SessionNotFound(t *testing.T) {
	router := newGameRouter(new(MockProviderForTriviaHandler))

	w := doJSON(t, router, http.MethodGet, "/api/games/3b241101-e2bb-4255-8caf-4136c566a962", nil, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestGameHandler_InvalidSessionID(t *testing.T) {
	router := newGameRouter(new(MockProviderForTriviaHandler))

	w := doJSON(t, router, http.MethodGet, "/api/games/not-a-uuid", nil, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestGameHandler_DeleteGame(t *testing.T) {
	provider := new(MockProviderForTriviaHandler)
	provider.On("FetchQuestions", mock.Anything, mock.Anything).Return(gameQuestions(5, entity.DifficultyEasy), nil)
	router := newGameRouter(provider)
	session := startTestGame(t, router)

	w := doJSON(t, router, http.MethodDelete, "/api/games/"+session.ID, nil, nil)
	assert.Equal(t, http.StatusNoContent, w.Code)

	w = doJSON(t, router, http.MethodGet, "/api/games/"+session.ID, nil, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}
