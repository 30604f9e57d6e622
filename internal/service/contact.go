// contact.go — сервис формы обратной связи: проверка полей, ограничение
// частоты и однократная отправка через почтовый сервис.
package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"regexp"
	"sort"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/bigkaa/portfolio/internal/domain/model"
	"github.com/bigkaa/portfolio/internal/mailer"
)

// Ошибки отправки формы.
var (
	// ErrDeliveryFailed — почтовый сервис не принял сообщение.
	// Причина не детализируется: пользователю показывается одно сообщение.
	ErrDeliveryFailed = errors.New("не удалось отправить сообщение")
	// ErrRateLimited — клиент превысил частоту отправок.
	ErrRateLimited = errors.New("слишком много отправок")
)

// Ограничения полей формы.
const (
	// MinMessageLength — минимальная длина сообщения (в символах, без крайних пробелов)
	MinMessageLength = 10
	// MaxMessageLength — максимальная длина сообщения
	MaxMessageLength = 5000
	// MaxFieldLength — максимальная длина имени, адреса и темы
	MaxFieldLength = 200
)

// Ключи i18n для ошибок полей.
const (
	ErrKeyNameRequired    = "contact.error.name_required"
	ErrKeyEmailRequired   = "contact.error.email_required"
	ErrKeyEmailInvalid    = "contact.error.email_invalid"
	ErrKeySubjectRequired = "contact.error.subject_required"
	ErrKeyMessageRequired = "contact.error.message_required"
	ErrKeyMessageShort    = "contact.error.message_short"
	ErrKeyMessageLong     = "contact.error.message_long"
	ErrKeyFieldTooLong    = "contact.error.field_too_long"
)

// emailPattern — минимальная проверка формата адреса: local@domain.tld без пробелов.
var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// Prometheus-метрики формы.
var (
	contactSubmissionsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "pf_contact_submissions_total",
		Help: "Количество отправок формы обратной связи по результату.",
	}, []string{"outcome"})
	contactDeliveryDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "pf_contact_delivery_duration_seconds",
		Help:    "Длительность отправки письма почтовому сервису.",
		Buckets: prometheus.DefBuckets,
	})
)

// ValidationError — ошибки полей формы.
// Fields: имя поля (name, email, subject, message) → ключ i18n.
type ValidationError struct {
	Fields map[string]string
}

// Error реализует интерфейс error.
func (e *ValidationError) Error() string {
	names := make([]string, 0, len(e.Fields))
	for name := range e.Fields {
		names = append(names, name)
	}
	sort.Strings(names)
	return "невалидные поля формы: " + strings.Join(names, ", ")
}

// ValidateContact проверяет форму. Возвращает nil, если форма корректна.
// Значения сравниваются без крайних пробелов.
func ValidateContact(form model.ContactForm) *ValidationError {
	fields := make(map[string]string)

	name := strings.TrimSpace(form.Name)
	switch {
	case name == "":
		fields["name"] = ErrKeyNameRequired
	case utf8.RuneCountInString(name) > MaxFieldLength:
		fields["name"] = ErrKeyFieldTooLong
	}

	email := strings.TrimSpace(form.Email)
	switch {
	case email == "":
		fields["email"] = ErrKeyEmailRequired
	case utf8.RuneCountInString(email) > MaxFieldLength:
		fields["email"] = ErrKeyFieldTooLong
	case !emailPattern.MatchString(email):
		fields["email"] = ErrKeyEmailInvalid
	}

	subject := strings.TrimSpace(form.Subject)
	switch {
	case subject == "":
		fields["subject"] = ErrKeySubjectRequired
	case utf8.RuneCountInString(subject) > MaxFieldLength:
		fields["subject"] = ErrKeyFieldTooLong
	}

	message := strings.TrimSpace(form.Message)
	n := utf8.RuneCountInString(message)
	switch {
	case n == 0:
		fields["message"] = ErrKeyMessageRequired
	case n < MinMessageLength:
		fields["message"] = ErrKeyMessageShort
	case n > MaxMessageLength:
		fields["message"] = ErrKeyMessageLong
	}

	if len(fields) == 0 {
		return nil
	}
	return &ValidationError{Fields: fields}
}

// Recipient — получатель писем с формы.
type Recipient struct {
	Name  string
	Email string
}

// ContactService — сервис формы обратной связи.
type ContactService struct {
	sender    mailer.Sender
	limiter   *RateLimiter
	recipient Recipient
	timeout   time.Duration
	logger    *slog.Logger
}

// NewContactService создаёт сервис формы.
// limiter может быть nil (без ограничения частоты).
// timeout — верхняя граница отправки поверх контекста запроса (0 — без границы).
func NewContactService(
	sender mailer.Sender,
	limiter *RateLimiter,
	recipient Recipient,
	timeout time.Duration,
	logger *slog.Logger,
) *ContactService {
	return &ContactService{
		sender:    sender,
		limiter:   limiter,
		recipient: recipient,
		timeout:   timeout,
		logger:    logger.With(slog.String("component", "contact_service")),
	}
}

// Submit проверяет форму и отправляет письмо ровно один раз.
// clientKey — ключ клиента для лимитера (обычно IP).
// Возвращает идентификатор отправки, *ValidationError, ErrRateLimited
// или ErrDeliveryFailed.
func (s *ContactService) Submit(ctx context.Context, clientKey string, form model.ContactForm) (string, error) {
	if verr := ValidateContact(form); verr != nil {
		contactSubmissionsTotal.WithLabelValues("invalid").Inc()
		return "", verr
	}

	if !s.limiter.Allow(clientKey) {
		contactSubmissionsTotal.WithLabelValues("limited").Inc()
		s.logger.Warn("Отправка формы отклонена лимитером",
			slog.String("client", clientKey),
		)
		return "", ErrRateLimited
	}

	id := uuid.NewString()
	msg := mailer.Message{
		FromName:  strings.TrimSpace(form.Name),
		FromEmail: strings.TrimSpace(form.Email),
		Subject:   strings.TrimSpace(form.Subject),
		Text:      strings.TrimSpace(form.Message),
		ToEmail:   s.recipient.Email,
		ToName:    s.recipient.Name,
	}

	sendCtx := ctx
	if s.timeout > 0 {
		var cancel context.CancelFunc
		sendCtx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}

	start := time.Now()
	err := s.sender.Send(sendCtx, msg)
	contactDeliveryDuration.Observe(time.Since(start).Seconds())

	if err != nil {
		contactSubmissionsTotal.WithLabelValues("failed").Inc()
		s.logger.Error("Ошибка отправки письма",
			slog.String("submission_id", id),
			slog.String("error", err.Error()),
		)
		return "", fmt.Errorf("%w: %w", ErrDeliveryFailed, err)
	}

	contactSubmissionsTotal.WithLabelValues("sent").Inc()
	s.logger.Info("Сообщение с формы отправлено",
		slog.String("submission_id", id),
		slog.Duration("duration", time.Since(start)),
	)
	return id, nil
}
