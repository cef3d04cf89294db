// Package opentdb реализует шлюз к внешнему API вопросов (Open Trivia Database).
package opentdb

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/yourusername/trivia-game/internal/domain/entity"
	"github.com/yourusername/trivia-game/internal/domain/repository"
	apperrors "github.com/yourusername/trivia-game/internal/pkg/errors"
)

// responseCodeSuccess - единственный успешный статус внешнего API
const responseCodeSuccess = 0

// apiResponse - форма ответа <base>/api.php
type apiResponse struct {
	ResponseCode int                  `json:"response_code"`
	Results      []entity.RawQuestion `json:"results"`
}

// categoryResponse - форма ответа <base>/api_category.php
type categoryResponse struct {
	TriviaCategories []repository.Category `json:"trivia_categories"`
}

// Client реализует repository.QuestionProvider поверх Open Trivia Database
type Client struct {
	baseURL    string
	httpClient *http.Client
	normalizer *Normalizer
}

// NewClient создает шлюз к внешнему API вопросов
func NewClient(baseURL string, timeout time.Duration, normalizer *Normalizer) *Client {
	if normalizer == nil {
		normalizer = NewNormalizer()
	}
	return &Client{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: timeout},
		normalizer: normalizer,
	}
}

// buildQuestionsURL строит URL запроса вопросов.
// amount обязателен (по умолчанию 10); difficulty опускается для random
// ("смешать все сложности" - внешнему API не передается); category
// опускается для пустой строки; type опускается, если не задан.
func (c *Client) buildQuestionsURL(settings entity.GameSettings) string {
	params := url.Values{}

	amount := settings.Amount
	if amount == 0 {
		amount = entity.DefaultAmount
	}
	params.Set("amount", strconv.Itoa(amount))

	if settings.Difficulty != "" && settings.Difficulty != entity.DifficultyRandom {
		params.Set("difficulty", settings.Difficulty)
	}
	if settings.Category != "" {
		params.Set("category", settings.Category)
	}
	if settings.Type != "" {
		params.Set("type", settings.Type)
	}

	return c.baseURL + "/api.php?" + params.Encode()
}

// FetchQuestions выполняет один запрос к внешнему API и возвращает
// нормализованные вопросы либо типизированный отказ. Частичный список
// при отказе не возвращается.
func (c *Client) FetchQuestions(ctx context.Context, settings entity.GameSettings) ([]entity.Question, error) {
	apiURL := c.buildQuestionsURL(settings)
	log.Printf("[OpenTDB] Запрос вопросов: %s", apiURL)

	var payload apiResponse
	if err := c.getJSON(ctx, apiURL, &payload); err != nil {
		return nil, err
	}

	if payload.ResponseCode != responseCodeSuccess {
		log.Printf("[OpenTDB] Внешний API отклонил запрос, response_code=%d", payload.ResponseCode)
		return nil, apperrors.NewRejectedError(payload.ResponseCode)
	}

	// Успешный статус без результатов - отказ, а не пустая викторина
	if len(payload.Results) == 0 {
		log.Printf("[OpenTDB] Успешный статус без результатов - трактуем как отказ")
		return nil, apperrors.NewMalformedError()
	}

	return c.normalizer.NormalizeBatch(payload.Results), nil
}

// FetchCategories возвращает каталог категорий внешнего API
func (c *Client) FetchCategories(ctx context.Context) ([]repository.Category, error) {
	var payload categoryResponse
	if err := c.getJSON(ctx, c.baseURL+"/api_category.php", &payload); err != nil {
		return nil, err
	}
	if len(payload.TriviaCategories) == 0 {
		return nil, apperrors.NewMalformedError()
	}
	return payload.TriviaCategories, nil
}

// getJSON выполняет GET и декодирует JSON-тело.
// Любая ошибка до чтения статуса - транспортный отказ.
func (c *Client) getJSON(ctx context.Context, apiURL string, dest interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, apiURL, nil)
	if err != nil {
		return apperrors.NewTransportError(err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		log.Printf("[OpenTDB] Транспортная ошибка: %v", err)
		return apperrors.NewTransportError(err)
	}
	defer resp.Body.Close()

	if err := json.NewDecoder(resp.Body).Decode(dest); err != nil {
		log.Printf("[OpenTDB] Ошибка разбора ответа: %v", err)
		return apperrors.NewTransportError(err)
	}
	return nil
}
