package opentdb

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/yourusername/trivia-game/internal/domain/entity"
	"github.com/yourusername/trivia-game/internal/pkg/htmlentity"
)

// Normalizer превращает сырой вопрос внешнего API в нормализованный:
// декодированные тексты, уникальный в пределах выборки идентификатор
// и перемешанный список вариантов ответа.
//
// Источник случайности и часы инъектируются, чтобы тесты были
// детерминированными и не зависели от реального времени.
type Normalizer struct {
	rng *rand.Rand
	now func() time.Time
}

// NewNormalizer создает нормализатор с источником случайности по умолчанию
func NewNormalizer() *Normalizer {
	return &Normalizer{
		rng: rand.New(rand.NewSource(time.Now().UnixNano())),
		now: time.Now,
	}
}

// NewNormalizerWithSource создает нормализатор с заданным источником
// случайности и часами (для тестов)
func NewNormalizerWithSource(rng *rand.Rand, now func() time.Time) *Normalizer {
	return &Normalizer{rng: rng, now: now}
}

// BatchTimestamp возвращает отметку времени выборки в миллисекундах.
// Одна отметка на весь ответ API; уникальность ID внутри выборки
// обеспечивает порядковый номер.
func (n *Normalizer) BatchTimestamp() int64 {
	return n.now().UnixMilli()
}

// Normalize нормализует один вопрос. ordinal - индекс вопроса в ответе API,
// batchMillis - отметка времени выборки.
func (n *Normalizer) Normalize(raw entity.RawQuestion, ordinal int, batchMillis int64) entity.Question {
	correct := htmlentity.Decode(raw.CorrectAnswer)
	incorrect := htmlentity.DecodeAll(raw.IncorrectAnswers)

	// Перестановка {correct} ∪ incorrect: каждый элемент ровно один раз,
	// исходный порядок не сохраняется
	all := make([]string, 0, len(incorrect)+1)
	all = append(all, correct)
	all = append(all, incorrect...)
	n.rng.Shuffle(len(all), func(i, j int) {
		all[i], all[j] = all[j], all[i]
	})

	return entity.Question{
		ID:               fmt.Sprintf("q_%d_%d", batchMillis, ordinal),
		Category:         raw.Category,
		Type:             raw.Type,
		Difficulty:       raw.Difficulty,
		Question:         htmlentity.Decode(raw.Question),
		CorrectAnswer:    correct,
		IncorrectAnswers: incorrect,
		AllAnswers:       all,
	}
}

// NormalizeBatch нормализует все вопросы выборки в порядке ответа API
func (n *Normalizer) NormalizeBatch(raws []entity.RawQuestion) []entity.Question {
	batchMillis := n.BatchTimestamp()
	questions := make([]entity.Question, len(raws))
	for i, raw := range raws {
		questions[i] = n.Normalize(raw, i, batchMillis)
	}
	return questions
}
