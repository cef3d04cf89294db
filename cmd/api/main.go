package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"github.com/yourusername/trivia-game/internal/config"
	"github.com/yourusername/trivia-game/internal/domain/repository"
	"github.com/yourusername/trivia-game/internal/handler"
	"github.com/yourusername/trivia-game/internal/middleware"
	"github.com/yourusername/trivia-game/internal/repository/memory"
	"github.com/yourusername/trivia-game/internal/repository/opentdb"
	redisRepo "github.com/yourusername/trivia-game/internal/repository/redis"
	"github.com/yourusername/trivia-game/internal/service"
	"github.com/yourusername/trivia-game/pkg/database"
)

func main() {
	// Загружаем .env (не страшно, если файла нет)
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using system env")
	}

	// Загружаем конфигурацию
	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		configPath = "config/config.yaml"
	}
	log.Printf("Загрузка конфигурации из %s", configPath)

	cfg, err := config.Load(configPath)
	if err != nil {
		log.Printf("Failed to load config: %v", err)
		os.Exit(1)
	}

	// Redis опционален: без него каталог категорий работает без кеша
	var cacheRepo repository.CacheRepository
	if cfg.Redis.Enabled() {
		redisClient, err := database.NewUniversalRedisClient(cfg.Redis)
		if err != nil {
			log.Printf("Failed to connect to Redis: %v. Кеш категорий будет неактивен.", err)
		} else {
			log.Println("Successfully connected to Redis")
			repo, err := redisRepo.NewCacheRepo(redisClient)
			if err != nil {
				log.Printf("Failed to initialize CacheRepo: %v", err)
				os.Exit(1)
			}
			cacheRepo = repo
		}
	}

	// Инициализируем шлюз внешнего API вопросов
	triviaClient := opentdb.NewClient(
		cfg.Trivia.BaseURL,
		time.Duration(cfg.Trivia.TimeoutSec)*time.Second,
		opentdb.NewNormalizer(),
	)

	// Инициализируем хранилище сессий (в памяти процесса)
	sessionRepo := memory.NewSessionRepo()

	// Инициализируем сервисы
	triviaService := service.NewTriviaService(
		triviaClient,
		cacheRepo,
		time.Duration(cfg.Trivia.CategoryCacheTTLHrs)*time.Hour,
	)
	gameService := service.NewGameService(triviaService, sessionRepo)

	// Инициализируем обработчики
	triviaHandler := handler.NewTriviaHandler(triviaService)
	gameHandler := handler.NewGameHandler(gameService)

	// Инициализируем роутер Gin
	router := gin.Default()

	// Настройка доверенных прокси для корректной работы c.ClientIP()
	isProduction := gin.Mode() == gin.ReleaseMode
	if isProduction {
		if err := router.SetTrustedProxies(nil); err != nil {
			log.Printf("Warning: failed to set trusted proxies: %v", err)
		}
	} else {
		if err := router.SetTrustedProxies([]string{"127.0.0.1", "::1"}); err != nil {
			log.Printf("Warning: failed to set trusted proxies: %v", err)
		}
	}

	// Настройка CORS
	allowOrigins := cfg.CORS.AllowOrigins
	if len(allowOrigins) == 0 {
		allowOrigins = []string{"http://localhost:5173", "http://localhost:3000"}
	}
	router.Use(cors.New(cors.Config{
		AllowOrigins:  allowOrigins,
		AllowMethods:  []string{"GET", "POST", "DELETE", "OPTIONS"},
		AllowHeaders:  []string{"Origin", "Content-Type", "Accept"},
		ExposeHeaders: []string{"Content-Length"},
		MaxAge:        12 * time.Hour,
	}))

	// Настраиваем маршруты API
	api := router.Group("/api")
	{
		// Прокси к внешнему API вопросов
		api.GET("/trivia", triviaHandler.GetQuestions)
		api.GET("/trivia/categories", triviaHandler.GetCategories)

		// Игровые сессии
		games := api.Group("/games")
		{
			games.POST("", gameHandler.StartGame)

			// Группа маршрутов, требующих идентификатор сессии
			gameWithID := games.Group("/:id")
			gameWithID.Use(middleware.ExtractSessionID("id", "sessionID")) // Применяем middleware
			{
				gameWithID.GET("", gameHandler.GetGame)
				gameWithID.POST("/answers", gameHandler.SubmitAnswer)
				gameWithID.POST("/next", gameHandler.NextQuestion)
				gameWithID.POST("/finish", gameHandler.FinishGame)
				gameWithID.GET("/results", gameHandler.GetResults)
				gameWithID.POST("/restart", gameHandler.RestartGame)
				gameWithID.DELETE("", gameHandler.DeleteGame)
			}
		}
	}

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	// Настраиваем HTTP сервер с тайм-аутами для защиты от slow client attacks
	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      router,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
	}

	// Запускаем сервер в горутине
	go func() {
		log.Printf("Starting server on port %s", cfg.Server.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Printf("Failed to start server: %v", err)
		}
	}()

	log.Printf("Server started on port %s", cfg.Server.Port)

	// Ждем сигнал остановки
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down server...")

	// Создаем контекст с таймаутом для graceful shutdown сервера
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("Server forced to shutdown: %v", err)
		os.Exit(1)
	}

	log.Println("Server exited properly")
}
