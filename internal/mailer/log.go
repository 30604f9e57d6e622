package mailer

import (
	"context"
	"log/slog"
	"unicode/utf8"
)

// LogSender — отправитель для локальной разработки: только пишет письмо в лог.
type LogSender struct {
	logger *slog.Logger
}

var _ Sender = (*LogSender)(nil)

// NewLogSender создаёт отправитель-заглушку.
func NewLogSender(logger *slog.Logger) *LogSender {
	return &LogSender{logger: logger.With(slog.String("component", "log_mailer"))}
}

// Send логирует письмо и всегда возвращает nil (если контекст не отменён).
func (s *LogSender) Send(ctx context.Context, msg Message) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.logger.Info("Письмо не отправлено (провайдер log)",
		slog.String("from_name", msg.FromName),
		slog.String("from_email", msg.FromEmail),
		slog.String("to_email", msg.ToEmail),
		slog.String("subject", msg.Subject),
		slog.Int("message_length", utf8.RuneCountInString(msg.Text)),
	)
	return nil
}
