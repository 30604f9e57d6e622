// logging.go — журнал HTTP-запросов сайта и API через slog.
// Каждая строка журнала содержит шаблон маршрута chi, адрес клиента
// (тот же, что видит лимитер формы), язык посетителя и request_id.
package middleware

import (
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/bigkaa/portfolio/internal/ui/i18n"
)

// statusRecorder запоминает статус и размер ответа для журнала.
type statusRecorder struct {
	http.ResponseWriter
	status int
	bytes  int64
}

func (sr *statusRecorder) WriteHeader(code int) {
	sr.status = code
	sr.ResponseWriter.WriteHeader(code)
}

func (sr *statusRecorder) Write(b []byte) (int, error) {
	n, err := sr.ResponseWriter.Write(b)
	sr.bytes += int64(n)
	return n, err
}

// Unwrap нужен http.ResponseController.
func (sr *statusRecorder) Unwrap() http.ResponseWriter {
	return sr.ResponseWriter
}

// logLevel — уровень записи по статусу: 5xx — ERROR, 4xx — WARN, иначе INFO.
// 429 от формы обратной связи — штатная ситуация, пишется как INFO.
func logLevel(status int) slog.Level {
	switch {
	case status >= http.StatusInternalServerError:
		return slog.LevelError
	case status == http.StatusTooManyRequests:
		return slog.LevelInfo
	case status >= http.StatusBadRequest:
		return slog.LevelWarn
	default:
		return slog.LevelInfo
	}
}

// routePattern возвращает шаблон маршрута chi (/projects/{id}); до
// маршрутизации или для 404 — пустую строку.
func routePattern(r *http.Request) string {
	if rctx := chi.RouteContext(r.Context()); rctx != nil {
		return rctx.RoutePattern()
	}
	return ""
}

// RequestLogger возвращает middleware журнала запросов.
// Язык определяется теми же правилами, что у страниц и API, но только для
// страниц и /api: статика и служебные endpoints языка не имеют.
func RequestLogger(logger *slog.Logger) func(http.Handler) http.Handler {
	logger = logger.With(slog.String("component", "http"))

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}

			next.ServeHTTP(rec, r)

			attrs := []slog.Attr{
				slog.String("method", r.Method),
				slog.String("path", r.URL.Path),
				slog.String("route", routePattern(r)),
				slog.Int("status", rec.status),
				slog.Duration("duration", time.Since(start)),
				slog.Int64("bytes", rec.bytes),
				slog.String("client_ip", ClientIP(r)),
				slog.String("request_id", RequestIDFromContext(r.Context())),
			}
			if hasLanguage(r.URL.Path) {
				lang, _ := i18n.Detect(r)
				attrs = append(attrs, slog.String("lang", lang))
			}

			logger.LogAttrs(r.Context(), logLevel(rec.status), "HTTP запрос", attrs...)
		})
	}
}

// hasLanguage — путь отдаётся на языке посетителя.
func hasLanguage(path string) bool {
	return !strings.HasPrefix(path, "/static/") &&
		!strings.HasPrefix(path, "/health/") &&
		path != "/metrics"
}
