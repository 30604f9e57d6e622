// dephealth.go — интеграция с topologymetrics SDK для мониторинга зависимостей.
//
// Портфолио мониторит одну внешнюю зависимость — почтовый сервис формы
// обратной связи (HTTP checker). Зависимость некритичная: без почты сайт
// продолжает показывать каталог, недоступна только отправка формы.
//
// Метрики доступны на /metrics вместе с остальными Prometheus-метриками:
//   - app_dependency_health — состояние зависимости (1 = ok, 0 = fail)
//   - app_dependency_latency_seconds — задержка проверки
//   - app_dependency_status — категория статуса
//   - app_dependency_status_detail — детальный статус
package service

import (
	"context"
	"log/slog"
	"net/url"
	"time"

	"github.com/BigKAA/topologymetrics/sdk-go/dephealth"
	_ "github.com/BigKAA/topologymetrics/sdk-go/dephealth/checks/httpcheck" // регистрация HTTP checker factory
	"github.com/prometheus/client_golang/prometheus"
)

// MailDependency — имя зависимости почтового сервиса в метриках.
const MailDependency = "mail-provider"

// DephealthService — сервис мониторинга зависимостей через topologymetrics.
type DephealthService struct {
	dh     *dephealth.DepHealth
	logger *slog.Logger
}

// DephealthConfig — параметры мониторинга.
type DephealthConfig struct {
	// ServiceID — имя вершины графа текущего приложения
	ServiceID string
	// Group — имя группы в метриках
	Group string
	// MailURL — базовый URL почтового сервиса
	MailURL string
	// MailHealthPath — путь проверки почтового сервиса
	MailHealthPath string
	// CheckInterval — интервал проверки
	CheckInterval time.Duration
	// IsEntry — добавить лейбл isentry=yes ко всем зависимостям
	IsEntry bool
}

// NewDephealthService создаёт сервис мониторинга зависимостей.
// Метрики регистрируются в глобальном Prometheus registry.
func NewDephealthService(cfg DephealthConfig, logger *slog.Logger) (*DephealthService, error) {
	return newDephealthService(cfg, logger)
}

// NewDephealthServiceWithRegisterer создаёт сервис с указанным Prometheus registerer.
// Используется в тестах для изоляции метрик.
func NewDephealthServiceWithRegisterer(
	cfg DephealthConfig,
	logger *slog.Logger,
	registerer prometheus.Registerer,
) (*DephealthService, error) {
	return newDephealthService(cfg, logger, dephealth.WithRegisterer(registerer))
}

// newDephealthService — внутренний конструктор.
func newDephealthService(
	cfg DephealthConfig,
	logger *slog.Logger,
	extraOpts ...dephealth.Option,
) (*DephealthService, error) {
	healthPath := cfg.MailHealthPath
	if healthPath == "" {
		healthPath = "/"
	}

	mailDepOpts := []dephealth.DependencyOption{
		dephealth.FromURL(cfg.MailURL),
		dephealth.WithHTTPHealthPath(healthPath),
		dephealth.CheckInterval(cfg.CheckInterval),
		dephealth.Critical(false),
	}
	if cfg.IsEntry {
		mailDepOpts = append(mailDepOpts, dephealth.WithLabel("isentry", "yes"))
	}

	// TLS определяем по схеме URL
	if parsed, err := url.Parse(cfg.MailURL); err == nil && parsed.Scheme == "https" {
		mailDepOpts = append(mailDepOpts, dephealth.WithHTTPTLSSkipVerify(false))
	}

	opts := make([]dephealth.Option, 0, 2+len(extraOpts))
	opts = append(opts,
		dephealth.WithLogger(logger),
		dephealth.HTTP(MailDependency, mailDepOpts...),
	)
	opts = append(opts, extraOpts...)

	dh, err := dephealth.New(cfg.ServiceID, cfg.Group, opts...)
	if err != nil {
		return nil, err
	}

	return &DephealthService{
		dh:     dh,
		logger: logger.With(slog.String("component", "dephealth")),
	}, nil
}

// Start запускает периодическую проверку зависимостей.
func (ds *DephealthService) Start(ctx context.Context) error {
	ds.logger.Info("Мониторинг зависимостей запущен (почтовый сервис)")
	return ds.dh.Start(ctx)
}

// Stop останавливает мониторинг зависимостей.
func (ds *DephealthService) Stop() {
	ds.dh.Stop()
	ds.logger.Info("Мониторинг зависимостей остановлен")
}

// Health возвращает текущее состояние зависимостей.
// Ключ — имя зависимости, значение — true если ok.
func (ds *DephealthService) Health() map[string]bool {
	return ds.dh.Health()
}

// MailChecker — readiness почтового сервиса для /health/ready.
// Без мониторинга (провайдер log или dephealth выключен) — всегда ok.
// Недоступный почтовый сервис — degraded: каталог работает, форма нет.
type MailChecker struct {
	provider  string
	dephealth *DephealthService
}

// NewMailChecker создаёт проверку почтового сервиса. ds может быть nil.
func NewMailChecker(provider string, ds *DephealthService) *MailChecker {
	return &MailChecker{provider: provider, dephealth: ds}
}

// CheckReady возвращает статус ("ok", "degraded") и сообщение.
func (c *MailChecker) CheckReady() (status, message string) {
	if c.dephealth == nil {
		return "ok", "провайдер: " + c.provider
	}

	health := c.dephealth.Health()
	if len(health) == 0 {
		return "ok", "провайдер: " + c.provider + ", проверка ещё не выполнялась"
	}
	for name, ok := range health {
		if !ok {
			return "degraded", "провайдер: " + c.provider + ", недоступен: " + name
		}
	}
	return "ok", "провайдер: " + c.provider
}
