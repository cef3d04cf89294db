package handler

import (
	"errors"
	"log"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/yourusername/trivia-game/internal/domain/entity"
	apperrors "github.com/yourusername/trivia-game/internal/pkg/errors"
	"github.com/yourusername/trivia-game/internal/service"
)

// TriviaHandler обрабатывает запросы к внешнему API вопросов
type TriviaHandler struct {
	triviaService *service.TriviaService
}

// NewTriviaHandler создает новый обработчик вопросов
func NewTriviaHandler(triviaService *service.TriviaService) *TriviaHandler {
	return &TriviaHandler{triviaService: triviaService}
}

// GetQuestions проксирует запрос вопросов к внешнему API.
// Query-параметры: amount (по умолчанию 10), difficulty (easy|medium|hard|random),
// category (числовой идентификатор), type (multiple|boolean).
// Ответы: 200 {questions}, 400 {error, code} при отказе внешнего API,
// 500 {error} при любой другой ошибке (сеть, некорректный JSON).
func (h *TriviaHandler) GetQuestions(c *gin.Context) {
	amountStr := c.DefaultQuery("amount", "10")
	amount, err := strconv.Atoi(amountStr)
	if err != nil || amount <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid amount"})
		return
	}

	settings := entity.GameSettings{
		Amount:     amount,
		Difficulty: c.Query("difficulty"),
		Category:   c.Query("category"),
		Type:       c.Query("type"),
	}

	questions, err := h.triviaService.GetQuestions(c.Request.Context(), settings)
	if err != nil {
		h.handleTriviaError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"questions": questions})
}

// GetCategories возвращает каталог категорий внешнего API
func (h *TriviaHandler) GetCategories(c *gin.Context) {
	categories, err := h.triviaService.GetCategories(c.Request.Context())
	if err != nil {
		h.handleTriviaError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"categories": categories})
}

// handleTriviaError преобразует типизированный отказ шлюза в HTTP-статус
func (h *TriviaHandler) handleTriviaError(c *gin.Context, err error) {
	var upstreamErr *apperrors.UpstreamError
	if errors.As(err, &upstreamErr) {
		if upstreamErr.Kind == apperrors.KindRejected {
			c.JSON(http.StatusBadRequest, gin.H{
				"error": "Failed to get questions",
				"code":  upstreamErr.Code,
			})
			return
		}
		// Транспортная ошибка или ответ без результатов
		log.Printf("[TriviaHandler] Отказ внешнего API: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Server error"})
		return
	}

	log.Printf("[TriviaHandler] Внутренняя ошибка: %v", err)
	c.JSON(http.StatusInternalServerError, gin.H{"error": "Server error"})
}
