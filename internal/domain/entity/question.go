package entity

// Константы сложности вопроса
const (
	DifficultyEasy   = "easy"
	DifficultyMedium = "medium"
	DifficultyHard   = "hard"

	// DifficultyRandom - сентинел настроек игры: смешать все сложности.
	// Внешнему API не передается.
	DifficultyRandom = "random"
)

// Очки за правильный ответ по сложности
const (
	PointsEasy   = 10
	PointsMedium = 20
	PointsHard   = 30
)

// RawQuestion представляет вопрос в том виде, в котором его отдает внешний API.
// Текстовые поля могут содержать HTML-сущности. Неизменяем после получения.
type RawQuestion struct {
	Category         string   `json:"category"`
	Type             string   `json:"type"`
	Difficulty       string   `json:"difficulty"`
	Question         string   `json:"question"`
	CorrectAnswer    string   `json:"correct_answer"`
	IncorrectAnswers []string `json:"incorrect_answers"`
}

// Question представляет нормализованный вопрос викторины:
// декодированные тексты и перемешанный список вариантов ответа.
type Question struct {
	// ID уникален в пределах одной выборки: q_<millis выборки>_<порядковый номер>
	ID               string   `json:"id"`
	Category         string   `json:"category"`
	Type             string   `json:"type"`
	Difficulty       string   `json:"difficulty"`
	Question         string   `json:"question"`
	CorrectAnswer    string   `json:"correct_answer"`
	IncorrectAnswers []string `json:"incorrect_answers"`

	// AllAnswers - перестановка {correct_answer} ∪ incorrect_answers,
	// длина всегда len(incorrect_answers)+1.
	AllAnswers []string `json:"all_answers"`
}

// IsCorrect проверяет ответ точным сравнением строк (после декодирования)
func (q *Question) IsCorrect(answer string) bool {
	return answer == q.CorrectAnswer
}

// PointValue возвращает очки за правильный ответ на вопрос.
// Для сложности вне трех известных значений возвращает очки easy -
// поведение зафиксировано, см. QuestionBreakdown.Record.
func (q *Question) PointValue() int {
	switch q.Difficulty {
	case DifficultyEasy:
		return PointsEasy
	case DifficultyMedium:
		return PointsMedium
	case DifficultyHard:
		return PointsHard
	default:
		return PointsEasy
	}
}

// AnswerCount возвращает количество вариантов ответа
func (q *Question) AnswerCount() int {
	return len(q.AllAnswers)
}
