// Пакет config — загрузка и валидация конфигурации портфолио
// из переменных окружения (префикс PF_).
package config

import (
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
)

// Версия приложения, задаётся при сборке через -ldflags.
var Version = "dev"

// Провайдеры отправки писем.
const (
	// MailProviderLog — письма только пишутся в лог (локальная разработка)
	MailProviderLog = "log"
	// MailProviderEmailJS — отправка через EmailJS REST API
	MailProviderEmailJS = "emailjs"
)

// Config содержит все параметры конфигурации сервиса.
type Config struct {
	// --- Сервер ---

	// Порт HTTP-сервера
	Port int `env:"PF_PORT" envDefault:"8080"`
	// Уровень логирования (debug, info, warn, error)
	LogLevel slog.Level
	// Формат логов (json, text)
	LogFormat string `env:"PF_LOG_FORMAT" envDefault:"json"`
	// TrustProxy — брать адрес клиента из X-Forwarded-For / X-Real-IP
	TrustProxy bool `env:"PF_TRUST_PROXY" envDefault:"false"`
	// CookieSecure — флаг Secure для cookie языка (включать за HTTPS)
	CookieSecure bool `env:"PF_COOKIE_SECURE" envDefault:"false"`

	// --- HTTP Server Timeouts ---

	// Таймаут чтения HTTP-сервера
	HTTPReadTimeout time.Duration `env:"PF_HTTP_READ_TIMEOUT" envDefault:"30s"`
	// Таймаут записи HTTP-сервера
	HTTPWriteTimeout time.Duration `env:"PF_HTTP_WRITE_TIMEOUT" envDefault:"60s"`
	// Таймаут простоя HTTP-сервера
	HTTPIdleTimeout time.Duration `env:"PF_HTTP_IDLE_TIMEOUT" envDefault:"120s"`

	// --- Graceful shutdown ---

	// Таймаут graceful shutdown
	ShutdownTimeout time.Duration `env:"PF_SHUTDOWN_TIMEOUT" envDefault:"5s"`

	// --- Каталог ---

	// CatalogDir — директория с projects.yaml и profile.yaml (пусто — встроенный каталог)
	CatalogDir string `env:"PF_CATALOG_DIR"`

	// --- Почта ---

	// MailProvider — log или emailjs
	MailProvider string `env:"PF_MAIL_PROVIDER" envDefault:"log"`
	// MailTimeout — таймаут отправки письма
	MailTimeout time.Duration `env:"PF_MAIL_TIMEOUT" envDefault:"10s"`
	// MailCACertPath — CA-сертификат почтового сервиса (пусто — системный пул)
	MailCACertPath string `env:"PF_MAIL_CA_CERT"`
	// EmailJSURL — базовый URL EmailJS API
	EmailJSURL string `env:"PF_EMAILJS_URL" envDefault:"https://api.emailjs.com"`
	// EmailJSServiceID — service_id
	EmailJSServiceID string `env:"PF_EMAILJS_SERVICE_ID"`
	// EmailJSTemplateID — template_id
	EmailJSTemplateID string `env:"PF_EMAILJS_TEMPLATE_ID"`
	// EmailJSPublicKey — публичный ключ (user_id)
	EmailJSPublicKey string `env:"PF_EMAILJS_PUBLIC_KEY"`
	// EmailJSPrivateKey — приватный ключ (accessToken), опционально
	EmailJSPrivateKey string `env:"PF_EMAILJS_PRIVATE_KEY"` //nolint:gosec // G101: имя переменной, не секрет

	// --- Ограничение частоты формы ---

	// ContactInterval — средний интервал между отправками одного клиента (0 — без ограничения)
	ContactInterval time.Duration `env:"PF_CONTACT_INTERVAL" envDefault:"1m"`
	// ContactBurst — сколько отправок подряд допускается
	ContactBurst int `env:"PF_CONTACT_BURST" envDefault:"3"`
	// RateLimitClients — максимальное количество отслеживаемых клиентов
	RateLimitClients int `env:"PF_RATE_LIMIT_CLIENTS" envDefault:"10000"`

	// --- topologymetrics ---

	// DephealthEnabled — мониторинг почтового сервиса (только для emailjs)
	DephealthEnabled bool `env:"PF_DEPHEALTH_ENABLED" envDefault:"true"`
	// DephealthGroup — имя группы в метриках
	DephealthGroup string `env:"PF_DEPHEALTH_GROUP" envDefault:"portfolio"`
	// DephealthCheckInterval — интервал проверки
	DephealthCheckInterval time.Duration `env:"PF_DEPHEALTH_CHECK_INTERVAL" envDefault:"60s"`
	// DephealthMailHealthPath — путь проверки почтового сервиса
	DephealthMailHealthPath string `env:"PF_DEPHEALTH_MAIL_HEALTH_PATH" envDefault:"/"`
	// DephealthIsEntry — лейбл isentry=yes
	DephealthIsEntry bool `env:"DEPHEALTH_ISENTRY" envDefault:"false"`
}

// rawEnv — значения, которые требуют разбора после env.Parse.
type rawEnv struct {
	LogLevel string `env:"PF_LOG_LEVEL" envDefault:"info"`
}

// Load загружает конфигурацию из переменных окружения.
// Возвращает ошибку, если значения некорректны или не хватает
// обязательных параметров выбранного почтового провайдера.
func Load() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("переменные окружения: %w", err)
	}

	var raw rawEnv
	if err := env.Parse(&raw); err != nil {
		return nil, fmt.Errorf("переменные окружения: %w", err)
	}

	var err error
	cfg.LogLevel, err = parseLogLevel(raw.LogLevel)
	if err != nil {
		return nil, fmt.Errorf("PF_LOG_LEVEL: %w", err)
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// validate проверяет значения после разбора.
func (c *Config) validate() error {
	if c.Port < 1 || c.Port > 65535 {
		return fmt.Errorf("PF_PORT: значение %d вне диапазона 1-65535", c.Port)
	}

	if c.LogFormat != "json" && c.LogFormat != "text" {
		return fmt.Errorf("PF_LOG_FORMAT: недопустимый формат %q, допустимые: json, text", c.LogFormat)
	}

	timeouts := []struct {
		name string
		val  time.Duration
	}{
		{"PF_HTTP_READ_TIMEOUT", c.HTTPReadTimeout},
		{"PF_HTTP_WRITE_TIMEOUT", c.HTTPWriteTimeout},
		{"PF_HTTP_IDLE_TIMEOUT", c.HTTPIdleTimeout},
		{"PF_SHUTDOWN_TIMEOUT", c.ShutdownTimeout},
		{"PF_MAIL_TIMEOUT", c.MailTimeout},
	}
	for _, tt := range timeouts {
		if tt.val <= 0 {
			return fmt.Errorf("%s: значение должно быть > 0", tt.name)
		}
	}

	c.MailProvider = strings.ToLower(strings.TrimSpace(c.MailProvider))
	switch c.MailProvider {
	case MailProviderLog:
	case MailProviderEmailJS:
		var missing []string
		if c.EmailJSServiceID == "" {
			missing = append(missing, "PF_EMAILJS_SERVICE_ID")
		}
		if c.EmailJSTemplateID == "" {
			missing = append(missing, "PF_EMAILJS_TEMPLATE_ID")
		}
		if c.EmailJSPublicKey == "" {
			missing = append(missing, "PF_EMAILJS_PUBLIC_KEY")
		}
		if len(missing) > 0 {
			return fmt.Errorf("PF_MAIL_PROVIDER=emailjs: не заданы %s", strings.Join(missing, ", "))
		}
		c.EmailJSURL = strings.TrimRight(c.EmailJSURL, "/")
	default:
		return fmt.Errorf("PF_MAIL_PROVIDER: недопустимый провайдер %q, допустимые: log, emailjs", c.MailProvider)
	}

	if c.ContactInterval < 0 {
		return fmt.Errorf("PF_CONTACT_INTERVAL: значение должно быть >= 0")
	}
	if c.ContactBurst < 1 {
		return fmt.Errorf("PF_CONTACT_BURST: значение должно быть >= 1")
	}
	if c.RateLimitClients < 1 {
		return fmt.Errorf("PF_RATE_LIMIT_CLIENTS: значение должно быть >= 1")
	}
	if c.DephealthCheckInterval <= 0 {
		return fmt.Errorf("PF_DEPHEALTH_CHECK_INTERVAL: значение должно быть > 0")
	}

	return nil
}

// DephealthActive — нужно ли мониторить почтовый сервис.
func (c *Config) DephealthActive() bool {
	return c.DephealthEnabled && c.MailProvider == MailProviderEmailJS
}

// SetupLogger настраивает глобальный slog-логгер на основе конфигурации.
func SetupLogger(cfg *Config) *slog.Logger {
	opts := &slog.HandlerOptions{
		Level: cfg.LogLevel,
	}

	var handler slog.Handler
	if cfg.LogFormat == "json" {
		handler = slog.NewJSONHandler(os.Stdout, opts)
	} else {
		handler = slog.NewTextHandler(os.Stdout, opts)
	}

	logger := slog.New(handler)
	slog.SetDefault(logger)
	return logger
}

// parseLogLevel преобразует строку уровня логирования в slog.Level.
func parseLogLevel(level string) (slog.Level, error) {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug, nil
	case "info":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return slog.LevelInfo, fmt.Errorf("недопустимый уровень %q, допустимые: debug, info, warn, error", level)
	}
}
