package handler

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yourusername/trivia-game/internal/domain/entity"
	"github.com/yourusername/trivia-game/internal/handler/dto"
	apperrors "github.com/yourusername/trivia-game/internal/pkg/errors"
	"github.com/yourusername/trivia-game/internal/service"
)

// GameHandler обрабатывает запросы игровых сессий
type GameHandler struct {
	gameService *service.GameService
}

// NewGameHandler создает новый обработчик игровых сессий
func NewGameHandler(gameService *service.GameService) *GameHandler {
	return &GameHandler{gameService: gameService}
}

// StartGameRequest представляет запрос на создание игры
type StartGameRequest struct {
	Amount     int    `json:"amount" binding:"omitempty,min=5,max=20"`
	Difficulty string `json:"difficulty" binding:"omitempty,oneof=easy medium hard random"`
	Category   string `json:"category"`
	Type       string `json:"type" binding:"omitempty,oneof=multiple boolean"`
}

// SubmitAnswerRequest представляет отправку ответа на вопрос
type SubmitAnswerRequest struct {
	QuestionIndex *int   `json:"question_index" binding:"required"`
	Answer        string `json:"answer"`
}

// StartGame создает новую игровую сессию
func (h *GameHandler) StartGame(c *gin.Context) {
	var req StartGameRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	settings := entity.GameSettings{
		Amount:     req.Amount,
		Difficulty: req.Difficulty,
		Category:   req.Category,
		Type:       req.Type,
	}

	session, err := h.gameService.StartGame(c.Request.Context(), settings)
	if err != nil {
		h.handleGameError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.NewGameSessionResponse(session))
}

// GetGame возвращает текущее состояние сессии
func (h *GameHandler) GetGame(c *gin.Context) {
	sessionID := c.MustGet("sessionID").(string) // Получаем из контекста

	session, err := h.gameService.GetSession(sessionID)
	if err != nil {
		h.handleGameError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.NewGameSessionResponse(session))
}

// SubmitAnswer обрабатывает ответ на вопрос.
// Повторная отправка для уже оцененного вопроса возвращает ignored=true
// без изменения состояния.
func (h *GameHandler) SubmitAnswer(c *gin.Context) {
	sessionID := c.MustGet("sessionID").(string)

	var req SubmitAnswerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	_, result, err := h.gameService.SubmitAnswer(sessionID, *req.QuestionIndex, req.Answer)
	if err != nil {
		h.handleGameError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.NewAnswerResponse(result))
}

// NextQuestion переводит сессию к следующему вопросу либо на экран результатов
func (h *GameHandler) NextQuestion(c *gin.Context) {
	sessionID := c.MustGet("sessionID").(string)

	session, err := h.gameService.NextQuestion(sessionID)
	if err != nil {
		h.handleGameError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.NewGameSessionResponse(session))
}

// FinishGame досрочно завершает игру (например, "Finish as Winner")
func (h *GameHandler) FinishGame(c *gin.Context) {
	sessionID := c.MustGet("sessionID").(string)

	session, err := h.gameService.FinishGame(sessionID)
	if err != nil {
		h.handleGameError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.NewGameSessionResponse(session))
}

// GetResults возвращает итоговую сводку с разбивками по сложности и категориям
func (h *GameHandler) GetResults(c *gin.Context) {
	sessionID := c.MustGet("sessionID").(string)

	session, err := h.gameService.GetSession(sessionID)
	if err != nil {
		h.handleGameError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.NewResultsResponse(session))
}

// RestartGame полностью заменяет сессию новой с теми же настройками
func (h *GameHandler) RestartGame(c *gin.Context) {
	sessionID := c.MustGet("sessionID").(string)

	session, err := h.gameService.Restart(c.Request.Context(), sessionID)
	if err != nil {
		h.handleGameError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.NewGameSessionResponse(session))
}

// DeleteGame удаляет сессию
func (h *GameHandler) DeleteGame(c *gin.Context) {
	sessionID := c.MustGet("sessionID").(string)

	if err := h.gameService.DeleteSession(sessionID); err != nil {
		h.handleGameError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// handleGameError преобразует ошибки сервисов в HTTP-статусы
func (h *GameHandler) handleGameError(c *gin.Context, err error) {
	var upstreamErr *apperrors.UpstreamError
	if errors.As(err, &upstreamErr) {
		// Отказ внешнего API при создании/рестарте игры: клиент показывает
		// "нет доступных вопросов" и предлагает вернуться к настройкам
		switch upstreamErr.Kind {
		case apperrors.KindRejected:
			c.JSON(http.StatusBadRequest, gin.H{
				"error": "No questions available for the selected settings",
				"code":  upstreamErr.Code,
			})
		default:
			c.JSON(http.StatusBadGateway, gin.H{"error": "Trivia API unavailable"})
		}
		return
	}

	if errors.Is(err, apperrors.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	} else if errors.Is(err, apperrors.ErrSessionFinished) {
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	} else if errors.Is(err, apperrors.ErrConflict) {
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	} else if errors.Is(err, apperrors.ErrValidation) {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
	} else {
		log.Printf("ERROR: Internal server error in GameHandler: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
	}
}
