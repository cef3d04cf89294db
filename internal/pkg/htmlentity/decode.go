// Package htmlentity декодирует HTML-сущности в текстах вопросов.
// Внешний API вопросов отдает текст с экранированными символами
// (&quot;, &#039; и т.д.); здесь они приводятся к читаемому виду.
package htmlentity

import "regexp"

// entities - фиксированная таблица именованных и числовых сущностей,
// встречающихся в текстах внешнего API.
var entities = map[string]string{
	"&#039;":   "'",
	"&quot;":   "\"",
	"&amp;":    "&",
	"&lt;":     "<",
	"&gt;":     ">",
	"&nbsp;":   " ",
	"&copy;":   "©",
	"&reg;":    "®",
	"&trade;":  "™",
	"&hellip;": "…",
	"&ndash;":  "–",
	"&mdash;":  "—",
	"&lsquo;":  "‘",
	"&rsquo;":  "’",
	"&ldquo;":  "“",
	"&rdquo;":  "”",
	"&#40;":    "(",
	"&#41;":    ")",
	"&#44;":    ",",
	"&#58;":    ":",
	"&#59;":    ";",
}

// tokenPattern - амперсанд, опциональная решетка, word-символы, точка с запятой.
var tokenPattern = regexp.MustCompile(`&#?\w+;`)

// Decode заменяет известные HTML-сущности на соответствующие символы.
// Неизвестные токены остаются без изменений - это не ошибка.
// Функция идемпотентна на уже декодированном тексте: без токенов текст не меняется.
func Decode(text string) string {
	return tokenPattern.ReplaceAllStringFunc(text, func(match string) string {
		if decoded, ok := entities[match]; ok {
			return decoded
		}
		return match
	})
}

// DecodeAll декодирует каждый элемент среза, не модифицируя исходный.
func DecodeAll(texts []string) []string {
	if texts == nil {
		return nil
	}
	decoded := make([]string, len(texts))
	for i, t := range texts {
		decoded[i] = Decode(t)
	}
	return decoded
}
