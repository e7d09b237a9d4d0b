package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Переменные окружения, которые переопределяют значения конфигурации.
const (
	EnvToken    = "TME_TOKEN"
	EnvBaseURL  = "TME_BASE_URL"
	EnvPages    = "TME_PAGES"
	EnvLogLevel = "LOG_LEVEL"
)

// Config представляет конфигурацию утилиты tmenews.
// Токен не хранится в файле и читается только из окружения.
type Config struct {
	Logger LoggerConfig `json:"logger"`
	Source SourceConfig `json:"source"`
	App    AppConfig    `json:"app"`
	Token  string       `json:"-"`
}

// LoggerConfig содержит настройки системы логирования.
// Пустые File и ErrorFile означают вывод в stderr.
type LoggerConfig struct {
	Level     string `json:"level"`
	File      string `json:"file"`
	ErrorFile string `json:"error_file"`
}

// SourceConfig описывает источник новостей: адрес ленты, заголовки и теги cookie.
type SourceConfig struct {
	BaseURL   string   `json:"base_url"`
	FeedPath  string   `json:"feed_path"`
	UserAgent string   `json:"user_agent"`
	Timeout   string   `json:"timeout"`
	Tags      []string `json:"tags"`
}

// AppConfig содержит настройки поведения приложения.
type AppConfig struct {
	DefaultPages int `json:"default_pages"`
}

// FeedURL возвращает полный адрес ленты без параметров запроса.
func (s *SourceConfig) FeedURL() string {
	return strings.TrimRight(s.BaseURL, "/") + s.FeedPath
}

// RequestTimeout возвращает таймаут HTTP-клиента. Вызывать после Validate.
func (s *SourceConfig) RequestTimeout() time.Duration {
	d, _ := time.ParseDuration(s.Timeout)
	return d
}

// New создает экземпляр Config со значениями по умолчанию.
func New() *Config {
	return &Config{
		Logger: LoggerConfig{
			Level: "warn",
		},
		Source: SourceConfig{
			BaseURL:  "https://themarketear.com",
			FeedPath: "/newsfeed",
			UserAgent: "Mozilla/5.0 (X11; Linux x86_64) AppleWebKit/537.36 " +
				"(KHTML, like Gecko) Chrome/145.0.0.0 Safari/537.36",
			Timeout: "30s",
			Tags:    []string{"newsfeed"},
		},
		App: AppConfig{
			DefaultPages: 5,
		},
	}
}

// Load собирает конфигурацию: значения по умолчанию, затем JSON-файл
// (если путь задан), затем .env и переменные окружения.
// Отсутствующий файл по пустому пути не считается ошибкой.
func Load(configPath string) (*Config, error) {
	cfg := New()
	if configPath != "" {
		fileData, err := os.ReadFile(configPath)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file %s: %w", configPath, err)
		}
		if err := json.Unmarshal(fileData, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse JSON from file %s: %w", configPath, err)
		}
	}
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("failed to load .env: %w", err)
	}
	if err := cfg.applyEnv(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// applyEnv переопределяет поля значениями из окружения.
func (c *Config) applyEnv() error {
	c.Token = strings.TrimSpace(os.Getenv(EnvToken))
	if v := os.Getenv(EnvBaseURL); v != "" {
		c.Source.BaseURL = v
	}
	if v := os.Getenv(EnvLogLevel); v != "" {
		c.Logger.Level = v
	}
	if v := os.Getenv(EnvPages); v != "" {
		pages, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("invalid %s value %q: %w", EnvPages, v, err)
		}
		c.App.DefaultPages = pages
	}
	return nil
}

// Validate проверяет корректность конфигурации.
// Наличие токена здесь не проверяется: это делает сценарий загрузки,
// чтобы вернуть ConfigurationError до первого запроса.
func (c *Config) Validate() error {
	u, err := url.ParseRequestURI(c.Source.BaseURL)
	if err != nil || u.Host == "" {
		return fmt.Errorf("invalid source.base_url: %q", c.Source.BaseURL)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("unsupported source.base_url scheme: %s", u.Scheme)
	}
	if !strings.HasPrefix(c.Source.FeedPath, "/") {
		return fmt.Errorf("source.feed_path must start with '/': %q", c.Source.FeedPath)
	}
	timeout, err := time.ParseDuration(c.Source.Timeout)
	if err != nil {
		return fmt.Errorf("invalid source.timeout: %w", err)
	}
	if timeout <= 0 {
		return fmt.Errorf("source.timeout must be positive")
	}
	if len(c.Source.Tags) == 0 {
		return fmt.Errorf("source.tags must not be empty")
	}
	switch c.Logger.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("unknown logger.level: %q", c.Logger.Level)
	}
	return nil
}
