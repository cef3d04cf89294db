package entity

import (
	"math"
	"time"
)

// Константы экранов игровой сессии
const (
	ScreenSetup   = "setup"
	ScreenQuiz    = "quiz"
	ScreenResults = "results"
)

// Пределы количества вопросов в одной игре
const (
	MinAmount     = 5
	MaxAmount     = 20
	DefaultAmount = 10
)

// winRatio - доля правильных ответов для победы
const winRatio = 0.7

// GameSettings представляет настройки игры, выбранные на экране setup
type GameSettings struct {
	// Amount - количество вопросов, [5, 20]
	Amount int `json:"amount"`

	// Difficulty - easy|medium|hard|random; random означает "все сложности"
	Difficulty string `json:"difficulty"`

	// Category - непрозрачный идентификатор категории внешнего API; пусто = любая
	Category string `json:"category"`

	// Type - multiple|boolean; пусто = любой
	Type string `json:"type"`
}

// Normalize подставляет значения по умолчанию для незаполненных полей
func (s *GameSettings) Normalize() {
	if s.Amount == 0 {
		s.Amount = DefaultAmount
	}
	if s.Difficulty == "" {
		s.Difficulty = DifficultyRandom
	}
}

// Validate проверяет настройки игры
func (s *GameSettings) Validate() bool {
	if s.Amount < MinAmount || s.Amount > MaxAmount {
		return false
	}
	switch s.Difficulty {
	case DifficultyEasy, DifficultyMedium, DifficultyHard, DifficultyRandom:
	default:
		return false
	}
	switch s.Type {
	case "", "multiple", "boolean":
	default:
		return false
	}
	return true
}

// BreakdownCounter - счетчики правильных ответов и всего отвеченных
type BreakdownCounter struct {
	Correct int `json:"correct"`
	Total   int `json:"total"`
}

// QuestionBreakdown - счетчики по сложности. После инициализации
// присутствуют все три сложности, даже с нулями.
type QuestionBreakdown map[string]BreakdownCounter

// NewQuestionBreakdown создает разбивку с тремя обнуленными счетчиками
func NewQuestionBreakdown() QuestionBreakdown {
	return QuestionBreakdown{
		DifficultyEasy:   {},
		DifficultyMedium: {},
		DifficultyHard:   {},
	}
}

// Record учитывает отвеченный вопрос. Сложность вне easy|medium|hard
// молча не учитывается: корзины для нее нет, и заводить ее нельзя,
// пока внешний API гарантирует только три значения.
func (b QuestionBreakdown) Record(difficulty string, correct bool) {
	counter, ok := b[difficulty]
	if !ok {
		return
	}
	counter.Total++
	if correct {
		counter.Correct++
	}
	b[difficulty] = counter
}

// Clone возвращает независимую копию разбивки
func (b QuestionBreakdown) Clone() QuestionBreakdown {
	clone := make(QuestionBreakdown, len(b))
	for k, v := range b {
		clone[k] = v
	}
	return clone
}

// CategoryBreakdown - счетчики по категориям. Ключи появляются лениво,
// при первом отвеченном вопросе категории.
type CategoryBreakdown map[string]BreakdownCounter

// Record учитывает отвеченный вопрос категории, создавая счетчик при первом обращении
func (b CategoryBreakdown) Record(category string, correct bool) {
	counter := b[category]
	counter.Total++
	if correct {
		counter.Correct++
	}
	b[category] = counter
}

// Clone возвращает независимую копию разбивки
func (b CategoryBreakdown) Clone() CategoryBreakdown {
	clone := make(CategoryBreakdown, len(b))
	for k, v := range b {
		clone[k] = v
	}
	return clone
}

// GameSession представляет состояние одной игровой сессии.
// Сессия живет только в памяти процесса и полностью заменяется при рестарте.
type GameSession struct {
	ID       string       `json:"id"`
	Screen   string       `json:"screen"`
	Settings GameSettings `json:"settings"`

	Questions       []Question `json:"questions"`
	CurrentQuestion int        `json:"current_question"`

	Score          int `json:"score"`
	CorrectAnswers int `json:"correct_answers"`

	QuestionBreakdown QuestionBreakdown `json:"question_breakdown"`
	CategoryBreakdown CategoryBreakdown `json:"category_breakdown"`

	// answered - индексы уже оцененных вопросов; защита от двойного учета
	answered map[int]bool

	// Celebrated - одноразовый флаг "победа уже показана"
	Celebrated bool `json:"celebrated"`

	CreatedAt time.Time `json:"created_at"`
}

// NewGameSession создает свежую сессию с обнуленными счетчиками
func NewGameSession(id string, settings GameSettings, questions []Question) *GameSession {
	return &GameSession{
		ID:                id,
		Screen:            ScreenQuiz,
		Settings:          settings,
		Questions:         questions,
		QuestionBreakdown: NewQuestionBreakdown(),
		CategoryBreakdown: CategoryBreakdown{},
		answered:          make(map[int]bool),
		CreatedAt:         time.Now(),
	}
}

// IsAnswered проверяет, оценивался ли уже вопрос с этим индексом
func (s *GameSession) IsAnswered(index int) bool {
	return s.answered[index]
}

// AnsweredCount возвращает количество оцененных вопросов
func (s *GameSession) AnsweredCount() int {
	return len(s.answered)
}

// IsFinished проверяет, показывает ли сессия результаты
func (s *GameSession) IsFinished() bool {
	return s.Screen == ScreenResults
}

// Clone возвращает независимую копию сессии. Дисциплина immutable-update:
// SubmitAnswer изменяет копию, поэтому старые ссылки у вызывающего кода
// остаются наблюдаемо неизменными.
func (s *GameSession) Clone() *GameSession {
	clone := *s
	clone.Questions = append([]Question(nil), s.Questions...)
	clone.QuestionBreakdown = s.QuestionBreakdown.Clone()
	clone.CategoryBreakdown = s.CategoryBreakdown.Clone()
	clone.answered = make(map[int]bool, len(s.answered))
	for k, v := range s.answered {
		clone.answered[k] = v
	}
	return &clone
}

// MarkAnswered помечает вопрос оцененным
func (s *GameSession) MarkAnswered(index int) {
	s.answered[index] = true
}

// WinThreshold возвращает порог победы: 70% от числа вопросов, округление вверх
func WinThreshold(totalQuestions int) int {
	return int(math.Ceil(float64(totalQuestions) * winRatio))
}

// HasWon проверяет условие победы. Для пустой викторины порог равен нулю,
// так что условие тривиально выполнено.
func HasWon(correctAnswers, totalQuestions int) bool {
	return correctAnswers >= WinThreshold(totalQuestions)
}
