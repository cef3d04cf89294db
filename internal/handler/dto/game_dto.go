package dto

import (
	"github.com/yourusername/trivia-game/internal/domain/entity"
	"github.com/yourusername/trivia-game/internal/service"
)

// QuestionResponse представляет вопрос в формате для ответа клиенту.
// Правильный ответ клиенту не отдается: проверка выполняется на сервере.
type QuestionResponse struct {
	ID         string   `json:"id"`
	Category   string   `json:"category"`
	Type       string   `json:"type,omitempty"`
	Difficulty string   `json:"difficulty"`
	Question   string   `json:"question"`
	AllAnswers []string `json:"all_answers"`
}

// GameSessionResponse представляет состояние сессии для клиента
type GameSessionResponse struct {
	ID              string              `json:"id"`
	Screen          string              `json:"screen"`
	Settings        entity.GameSettings `json:"settings"`
	TotalQuestions  int                 `json:"total_questions"`
	CurrentQuestion int                 `json:"current_question"`
	Score           int                 `json:"score"`
	CorrectAnswers  int                 `json:"correct_answers"`
	Question        *QuestionResponse   `json:"question,omitempty"`
}

// AnswerResponse представляет результат обработки ответа
type AnswerResponse struct {
	Ignored        bool   `json:"ignored"`
	Correct        bool   `json:"correct"`
	Points         int    `json:"points"`
	CorrectAnswer  string `json:"correct_answer,omitempty"`
	Score          int    `json:"score"`
	CorrectAnswers int    `json:"correct_answers"`
	Won            bool   `json:"won"`
	Celebrate      bool   `json:"celebrate"`
}

// ResultsResponse представляет итоговую сводку игры
type ResultsResponse struct {
	Score             int                       `json:"score"`
	CorrectAnswers    int                       `json:"correct_answers"`
	TotalQuestions    int                       `json:"total_questions"`
	Won               bool                      `json:"won"`
	WinThreshold      int                       `json:"win_threshold"`
	QuestionBreakdown entity.QuestionBreakdown `json:"question_breakdown"`
	CategoryBreakdown entity.CategoryBreakdown `json:"category_breakdown"`
}

// NewQuestionResponse создает DTO для вопроса
func NewQuestionResponse(q *entity.Question) *QuestionResponse {
	return &QuestionResponse{
		ID:         q.ID,
		Category:   q.Category,
		Type:       q.Type,
		Difficulty: q.Difficulty,
		Question:   q.Question,
		AllAnswers: q.AllAnswers,
	}
}

// NewGameSessionResponse создает DTO для сессии.
// Текущий вопрос включается только на экране викторины.
func NewGameSessionResponse(s *entity.GameSession) *GameSessionResponse {
	resp := &GameSessionResponse{
		ID:              s.ID,
		Screen:          s.Screen,
		Settings:        s.Settings,
		TotalQuestions:  len(s.Questions),
		CurrentQuestion: s.CurrentQuestion,
		Score:           s.Score,
		CorrectAnswers:  s.CorrectAnswers,
	}
	if s.Screen == entity.ScreenQuiz && s.CurrentQuestion < len(s.Questions) {
		resp.Question = NewQuestionResponse(&s.Questions[s.CurrentQuestion])
	}
	return resp
}

// NewAnswerResponse создает DTO для результата ответа
func NewAnswerResponse(r *service.AnswerResult) *AnswerResponse {
	return &AnswerResponse{
		Ignored:        r.Ignored,
		Correct:        r.Correct,
		Points:         r.Points,
		CorrectAnswer:  r.CorrectAnswer,
		Score:          r.Score,
		CorrectAnswers: r.CorrectAnswers,
		Won:            r.Won,
		Celebrate:      r.Celebrate,
	}
}

// NewResultsResponse создает DTO итоговой сводки
func NewResultsResponse(s *entity.GameSession) *ResultsResponse {
	total := len(s.Questions)
	return &ResultsResponse{
		Score:             s.Score,
		CorrectAnswers:    s.CorrectAnswers,
		TotalQuestions:    total,
		Won:               entity.HasWon(s.CorrectAnswers, total),
		WinThreshold:      entity.WinThreshold(total),
		QuestionBreakdown: s.QuestionBreakdown,
		CategoryBreakdown: s.CategoryBreakdown,
	}
}
