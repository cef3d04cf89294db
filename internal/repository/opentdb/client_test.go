package opentdb

import (
	"context"
	"errors"
	"math/rand"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yourusername/trivia-game/internal/domain/entity"
	apperrors "github.com/yourusername/trivia-game/internal/pkg/errors"
)

// newTestClient поднимает httptest-сервер с заданным обработчиком
// и возвращает клиента, направленного на него
func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	normalizer := NewNormalizerWithSource(rand.New(rand.NewSource(1)), func() time.Time {
		return time.UnixMilli(1700000000000)
	})
	return NewClient(server.URL, 5*time.Second, normalizer)
}

func TestClient_BuildQuestionsURL(t *testing.T) {
	client := NewClient("https://opentdb.com", time.Second, nil)

	testCases := []struct {
		name     string
		settings entity.GameSettings
		expected string
	}{
		{
			"все параметры",
			entity.GameSettings{Amount: 5, Difficulty: entity.DifficultyHard, Category: "18", Type: "multiple"},
			"https://opentdb.com/api.php?amount=5&category=18&difficulty=hard&type=multiple",
		},
		{
			"random сложность опускается",
			entity.GameSettings{Amount: 10, Difficulty: entity.DifficultyRandom},
			"https://opentdb.com/api.php?amount=10",
		},
		{
			"пустая сложность опускается",
			entity.GameSettings{Amount: 10},
			"https://opentdb.com/api.php?amount=10",
		},
		{
			"пустая категория опускается",
			entity.GameSettings{Amount: 5, Difficulty: entity.DifficultyEasy, Category: ""},
			"https://opentdb.com/api.php?amount=5&difficulty=easy",
		},
		{
			"нулевой amount заменяется значением по умолчанию",
			entity.GameSettings{},
			"https://opentdb.com/api.php?amount=10",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, client.buildQuestionsURL(tc.settings))
		})
	}
}

func TestClient_FetchQuestions_Success(t *testing.T) {
	// Arrange
	var gotQuery string
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.RawQuery
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{
			"response_code": 0,
			"results": [
				{"category":"Science: Computers","type":"multiple","difficulty":"easy",
				 "question":"What does &quot;Go&quot; compile to?",
				 "correct_answer":"Machine code",
				 "incorrect_answers":["Bytecode","JavaScript","C"]},
				{"category":"History","type":"multiple","difficulty":"easy",
				 "question":"Second question",
				 "correct_answer":"A",
				 "incorrect_answers":["B","C","D"]}
			]
		}`))
	})

	// Act
	questions, err := client.FetchQuestions(context.Background(),
		entity.GameSettings{Amount: 5, Difficulty: entity.DifficultyEasy})

	// Assert
	require.NoError(t, err)
	assert.Equal(t, "amount=5&difficulty=easy", gotQuery)
	require.Len(t, questions, 2)

	first := questions[0]
	assert.Equal(t, "q_1700000000000_0", first.ID)
	assert.Equal(t, `What does "Go" compile to?`, first.Question)
	assert.Equal(t, "easy", first.Difficulty)
	assert.Len(t, first.AllAnswers, 4)
	assert.Contains(t, first.AllAnswers, "Machine code")

	assert.Equal(t, "q_1700000000000_1", questions[1].ID)
}

func TestClient_FetchQuestions_UpstreamRejected(t *testing.T) {
	// Внешний API вернул ненулевой статус (например, мало вопросов под фильтры)
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"response_code": 1, "results": []}`))
	})

	questions, err := client.FetchQuestions(context.Background(), entity.GameSettings{Amount: 5})

	assert.Nil(t, questions, "при отказе частичный список не возвращается")
	var upstreamErr *apperrors.UpstreamError
	require.True(t, errors.As(err, &upstreamErr))
	assert.Equal(t, apperrors.KindRejected, upstreamErr.Kind)
	assert.Equal(t, 1, upstreamErr.Code)
}

func TestClient_FetchQuestions_MalformedPayload(t *testing.T) {
	// Успешный статус без результатов - отказ, а не пустая викторина
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"response_code": 0}`))
	})

	questions, err := client.FetchQuestions(context.Background(), entity.GameSettings{Amount: 5})

	assert.Nil(t, questions)
	var upstreamErr *apperrors.UpstreamError
	require.True(t, errors.As(err, &upstreamErr))
	assert.Equal(t, apperrors.KindMalformed, upstreamErr.Kind)
}

func TestClient_FetchQuestions_TransportFailure(t *testing.T) {
	// Сервер закрыт до запроса - сетевая ошибка
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	server.Close()
	client := NewClient(server.URL, time.Second, nil)

	_, err := client.FetchQuestions(context.Background(), entity.GameSettings{Amount: 5})

	var upstreamErr *apperrors.UpstreamError
	require.True(t, errors.As(err, &upstreamErr))
	assert.Equal(t, apperrors.KindTransport, upstreamErr.Kind)
}

func TestClient_FetchQuestions_InvalidJSON(t *testing.T) {
	// Ошибка разбора до чтения статуса - тоже транспортный отказ
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`not json at all`))
	})

	_, err := client.FetchQuestions(context.Background(), entity.GameSettings{Amount: 5})

	var upstreamErr *apperrors.UpstreamError
	require.True(t, errors.As(err, &upstreamErr))
	assert.Equal(t, apperrors.KindTransport, upstreamErr.Kind)
}

func TestClient_FetchCategories(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api_category.php", r.URL.Path)
		w.Write([]byte(`{"trivia_categories":[{"id":9,"name":"General Knowledge"},{"id":18,"name":"Science: Computers"}]}`))
	})

	categories, err := client.FetchCategories(context.Background())

	require.NoError(t, err)
	require.Len(t, categories, 2)
	assert.Equal(t, 9, categories[0].ID)
	assert.Equal(t, "General Knowledge", categories[0].Name)
}
