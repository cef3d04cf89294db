package config

import (
	"fmt"
	"log"
	"os"

	"github.com/spf13/viper"
)

// Config хранит все настройки приложения
type Config struct {
	Server ServerConfig
	Trivia TriviaConfig
	Redis  RedisConfig
	CORS   CORSConfig
}

// ServerConfig содержит настройки HTTP сервера
type ServerConfig struct {
	Port         string
	ReadTimeout  int
	WriteTimeout int
}

// TriviaConfig содержит настройки внешнего API вопросов
type TriviaConfig struct {
	// BaseURL: базовый адрес внешнего API (без завершающего слеша)
	BaseURL string `mapstructure:"base_url"`

	// TimeoutSec: тайм-аут исходящего запроса в секундах
	TimeoutSec int `mapstructure:"timeout_sec"`

	// CategoryCacheTTLHrs: время жизни кеша каталога категорий в часах
	CategoryCacheTTLHrs int `mapstructure:"category_cache_ttl_hrs"`
}

// RedisConfig содержит унифицированные настройки подключения к Redis.
// Redis опционален: без адреса каталог категорий работает без кеша.
type RedisConfig struct {
	// Mode: Режим работы Redis ("single", "sentinel", "cluster"). По умолчанию "single".
	Mode string `mapstructure:"mode"`

	// Addrs: Список адресов Redis (хост:порт). Используется для всех режимов.
	Addrs []string `mapstructure:"addrs"`

	// Addr: Альтернативный адрес для режима 'single'.
	Addr string `mapstructure:"addr"`

	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`

	// MasterName: Имя мастер-сервера Redis (только для режима "sentinel")
	MasterName string `mapstructure:"master_name"`

	// MaxRetries: Максимальное количество попыток переподключения. По умолчанию 0 (без ретраев).
	MaxRetries int `mapstructure:"max_retries"`

	// MinRetryBackoff: Минимальный интервал между попытками (в миллисекундах).
	MinRetryBackoff int `mapstructure:"min_retry_backoff"`

	// MaxRetryBackoff: Максимальный интервал между попытками (в миллисекундах).
	MaxRetryBackoff int `mapstructure:"max_retry_backoff"`
}

// CORSConfig содержит настройки CORS
type CORSConfig struct {
	AllowOrigins []string `mapstructure:"allow_origins"`
}

// Enabled сообщает, сконфигурирован ли Redis
func (r *RedisConfig) Enabled() bool {
	return len(r.Addrs) > 0 || r.Addr != ""
}

// Load загружает конфигурацию из файла и переменных окружения
func Load(configPath string) (*Config, error) {
	vip := viper.New() // Новый экземпляр Viper, чтобы избежать глобального состояния

	// 1. Значения по умолчанию
	vip.SetDefault("server.port", "8080")
	vip.SetDefault("server.readtimeout", 10)
	vip.SetDefault("server.writetimeout", 10)
	vip.SetDefault("trivia.base_url", "https://opentdb.com")
	vip.SetDefault("trivia.timeout_sec", 10)
	vip.SetDefault("trivia.category_cache_ttl_hrs", 24)

	// 2. Привязываем переменные окружения ЯВНО
	vip.BindEnv("server.port", "SERVER_PORT")
	vip.BindEnv("server.readtimeout", "SERVER_READTIMEOUT")
	vip.BindEnv("server.writetimeout", "SERVER_WRITETIMEOUT")

	vip.BindEnv("trivia.base_url", "TRIVIA_BASE_URL")
	vip.BindEnv("trivia.timeout_sec", "TRIVIA_TIMEOUT_SEC")
	vip.BindEnv("trivia.category_cache_ttl_hrs", "TRIVIA_CATEGORY_CACHE_TTL_HRS")

	vip.BindEnv("redis.mode", "REDIS_MODE")
	vip.BindEnv("redis.addrs", "REDIS_ADDRS")
	vip.BindEnv("redis.addr", "REDIS_ADDR")
	vip.BindEnv("redis.password", "REDIS_PASSWORD")
	vip.BindEnv("redis.db", "REDIS_DB")
	vip.BindEnv("redis.master_name", "REDIS_MASTER_NAME")

	vip.BindEnv("cors.allow_origins", "CORS_ALLOW_ORIGINS")

	// 3. Путь к файлу конфигурации (не страшно, если файла нет - есть BindEnv)
	if configPath != "" {
		vip.SetConfigFile(configPath)
		if err := vip.ReadInConfig(); err != nil {
			if _, ok := err.(viper.ConfigFileNotFoundError); ok {
				log.Printf("Файл конфигурации '%s' не найден, используются переменные окружения/умолчания.", configPath)
			} else {
				log.Printf("Предупреждение: не удалось прочитать файл конфигурации '%s': %v", configPath, err)
			}
		}
	}

	// 4. Анмаршалим конфигурацию (Viper объединит файл и привязанные env vars)
	var cfg Config
	if err := vip.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	// 5. Логирование конфигурации (только в debug режиме)
	if os.Getenv("GIN_MODE") != "release" {
		log.Printf("--- Загруженные значения конфигурации ---")
		log.Printf("Server Port: %s", cfg.Server.Port)
		log.Printf("Trivia Base URL: %s", cfg.Trivia.BaseURL)
		log.Printf("Trivia Timeout (sec): %d", cfg.Trivia.TimeoutSec)
		log.Printf("Redis Enabled: %t", cfg.Redis.Enabled())
		log.Printf("Redis Addr: %s", cfg.Redis.Addr)
		log.Printf("Redis Mode: %s", cfg.Redis.Mode)
		log.Printf("CORS Allow Origins: %v", cfg.CORS.AllowOrigins)
		log.Printf("-----------------------------------------")
	}

	// 6. Проверка обязательных параметров
	if cfg.Trivia.BaseURL == "" {
		return nil, fmt.Errorf("trivia base URL is required in config (check TRIVIA_BASE_URL env var)")
	}
	if cfg.Server.Port == "" {
		return nil, fmt.Errorf("server port is required in config (check SERVER_PORT env var)")
	}

	return &cfg, nil
}
