// emailjs.go — клиент EmailJS REST API (POST /api/v1.0/email/send).
package mailer

import (
	"bytes"
	"context"
	"crypto/tls"
	"crypto/x509"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"strings"
	"time"
)

// DefaultEmailJSURL — публичный endpoint EmailJS.
const DefaultEmailJSURL = "https://api.emailjs.com"

// sendPath — путь метода отправки письма по шаблону.
const sendPath = "/api/v1.0/email/send"

// maxErrorBody — сколько байт тела ошибки попадает в текст ошибки.
const maxErrorBody = 512

// successBody — тело ответа EmailJS на принятое письмо.
const successBody = "OK"

// EmailJSConfig — параметры учётной записи EmailJS.
type EmailJSConfig struct {
	// BaseURL — базовый URL API (по умолчанию DefaultEmailJSURL)
	BaseURL string
	// ServiceID — идентификатор почтового сервиса в EmailJS
	ServiceID string
	// TemplateID — идентификатор шаблона письма
	TemplateID string
	// PublicKey — публичный ключ (user_id)
	PublicKey string
	// PrivateKey — приватный ключ (accessToken), опционально
	PrivateKey string //nolint:gosec // G101: поле структуры, не содержит секрет напрямую
	// CACertPath — путь к CA-сертификату (пустая строка — системный пул)
	CACertPath string
	// Timeout — таймаут HTTP-запроса
	Timeout time.Duration
}

// sendRequest — тело запроса EmailJS.
type sendRequest struct {
	ServiceID      string            `json:"service_id"`
	TemplateID     string            `json:"template_id"`
	UserID         string            `json:"user_id"`
	AccessToken    string            `json:"accessToken,omitempty"` //nolint:gosec // G117: JSON-маппинг API EmailJS
	TemplateParams map[string]string `json:"template_params"`
}

// EmailJSClient — HTTP-клиент EmailJS.
type EmailJSClient struct {
	httpClient *http.Client
	cfg        EmailJSConfig
	baseURL    string
	logger     *slog.Logger
}

var _ Sender = (*EmailJSClient)(nil)

// NewEmailJSClient создаёт клиент EmailJS.
func NewEmailJSClient(cfg EmailJSConfig, logger *slog.Logger) (*EmailJSClient, error) {
	if cfg.ServiceID == "" || cfg.TemplateID == "" || cfg.PublicKey == "" {
		return nil, fmt.Errorf("EmailJS: service_id, template_id и public_key обязательны")
	}

	httpClient := &http.Client{Timeout: cfg.Timeout}

	if cfg.CACertPath != "" {
		tlsConfig, err := buildTLSConfig(cfg.CACertPath)
		if err != nil {
			return nil, fmt.Errorf("загрузка CA-сертификата EmailJS: %w", err)
		}
		httpClient.Transport = &http.Transport{
			TLSClientConfig: tlsConfig,
		}
		logger.Info("CA-сертификат почтового сервиса добавлен в пул доверия",
			slog.String("ca_cert", cfg.CACertPath),
		)
	}

	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = DefaultEmailJSURL
	}

	return &EmailJSClient{
		httpClient: httpClient,
		cfg:        cfg,
		baseURL:    strings.TrimRight(baseURL, "/"),
		logger:     logger.With(slog.String("component", "emailjs_client")),
	}, nil
}

// BaseURL — базовый URL API (для мониторинга зависимости).
func (c *EmailJSClient) BaseURL() string {
	return c.baseURL
}

// Send отправляет письмо через шаблон EmailJS.
// Успех — HTTP 200 с телом "OK"; любой другой ответ — ErrRejected.
func (c *EmailJSClient) Send(ctx context.Context, msg Message) error {
	body, err := json.Marshal(sendRequest{
		ServiceID:   c.cfg.ServiceID,
		TemplateID:  c.cfg.TemplateID,
		UserID:      c.cfg.PublicKey,
		AccessToken: c.cfg.PrivateKey,
		TemplateParams: map[string]string{
			"from_name":  msg.FromName,
			"from_email": msg.FromEmail,
			"subject":    msg.Subject,
			"message":    msg.Text,
			"to_email":   msg.ToEmail,
			"to_name":    msg.ToName,
		},
	})
	if err != nil {
		return fmt.Errorf("кодирование запроса EmailJS: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+sendPath, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("создание запроса EmailJS: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req) //nolint:gosec // G704: URL из конфигурации
	if err != nil {
		return fmt.Errorf("запрос к EmailJS: %w", err)
	}
	defer resp.Body.Close()

	respBody, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
	text := strings.TrimSpace(string(respBody))
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("%w: статус %d: %s", ErrRejected, resp.StatusCode, text)
	}
	if text != successBody {
		return fmt.Errorf("%w: неожиданный ответ %q", ErrRejected, text)
	}

	c.logger.Debug("Письмо принято EmailJS")
	return nil
}

// buildTLSConfig создаёт TLS-конфигурацию с кастомным CA-сертификатом.
func buildTLSConfig(caCertPath string) (*tls.Config, error) {
	caCert, err := os.ReadFile(caCertPath)
	if err != nil {
		return nil, fmt.Errorf("чтение CA-сертификата: %w", err)
	}

	caCertPool, err := x509.SystemCertPool()
	if err != nil {
		caCertPool = x509.NewCertPool()
	}
	if !caCertPool.AppendCertsFromPEM(caCert) {
		return nil, fmt.Errorf("в %s нет PEM-сертификатов", caCertPath)
	}

	return &tls.Config{
		RootCAs:    caCertPool,
		MinVersion: tls.VersionTLS12,
	}, nil
}
