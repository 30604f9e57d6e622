package middleware

import (
	"bytes"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"

	"github.com/bigkaa/portfolio/internal/ui/i18n"
)

func TestNormalizePath(t *testing.T) {
	tests := []struct {
		path string
		want string
	}{
		{"/", "/"},
		{"/projects", "/projects"},
		{"/projects/3", "/projects/{id}"},
		{"/api/v1/projects", "/api/v1/projects"},
		{"/api/v1/projects/42", "/api/v1/projects/{id}"},
		{"/static/css/site.css", "/static/*"},
		{"/health/ready", "/health/ready"},
		{"/wp-admin/login.php", "other"},
	}
	for _, tt := range tests {
		if got := normalizePath(tt.path); got != tt.want {
			t.Errorf("normalizePath(%q) = %q, ожидался %q", tt.path, got, tt.want)
		}
	}
}

func TestRequestID(t *testing.T) {
	var seen string
	h := RequestID()(http.HandlerFunc(func(_ http.ResponseWriter, r *http.Request) {
		seen = RequestIDFromContext(r.Context())
	}))

	// Без заголовка — генерируется новый UUID
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	if _, err := uuid.Parse(seen); err != nil {
		t.Fatalf("request_id %q не UUID: %v", seen, err)
	}
	if rec.Header().Get(RequestIDHeader) != seen {
		t.Errorf("заголовок %s = %q, ожидался %q", RequestIDHeader, rec.Header().Get(RequestIDHeader), seen)
	}

	// Корректный входящий UUID сохраняется
	incoming := uuid.NewString()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(RequestIDHeader, incoming)
	h.ServeHTTP(httptest.NewRecorder(), req)
	if seen != incoming {
		t.Errorf("request_id = %q, ожидался входящий %q", seen, incoming)
	}

	// Произвольная строка заменяется
	req = httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(RequestIDHeader, "<script>")
	h.ServeHTTP(httptest.NewRecorder(), req)
	if seen == "<script>" {
		t.Error("некорректный X-Request-ID не заменён")
	}
}

func TestRequestLogger_Level(t *testing.T) {
	tests := []struct {
		status int
		level  string
	}{
		{http.StatusOK, "INFO"},
		{http.StatusNotFound, "WARN"},
		{http.StatusTooManyRequests, "INFO"},
		{http.StatusBadGateway, "ERROR"},
	}

	for _, tt := range tests {
		var buf bytes.Buffer
		logger := slog.New(slog.NewJSONHandler(&buf, nil))

		h := RequestLogger(logger)(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(tt.status)
		}))
		h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/projects", nil))

		if !strings.Contains(buf.String(), `"level":"`+tt.level+`"`) {
			t.Errorf("статус %d: лог %s, ожидался уровень %s", tt.status, buf.String(), tt.level)
		}
	}
}

func TestRequestLogger_Attrs(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewJSONHandler(&buf, nil))

	h := RequestLogger(logger)(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte("ok"))
	}))

	req := httptest.NewRequest(http.MethodGet, "/projects?lang=zh", nil)
	req.RemoteAddr = "203.0.113.7:5555"
	h.ServeHTTP(httptest.NewRecorder(), req)

	line := buf.String()
	for _, want := range []string{`"client_ip":"203.0.113.7"`, `"lang":"zh"`, `"bytes":2`, `"component":"http"`} {
		if !strings.Contains(line, want) {
			t.Errorf("лог %s не содержит %s", line, want)
		}
	}

	// У статики язык не пишется
	buf.Reset()
	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/static/css/site.css", nil))
	if strings.Contains(buf.String(), `"lang"`) {
		t.Errorf("лог статики содержит язык: %s", buf.String())
	}
}

func TestClientIP(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.RemoteAddr = "203.0.113.7:5555"
	if got := ClientIP(req); got != "203.0.113.7" {
		t.Errorf("ClientIP() = %q", got)
	}

	req.RemoteAddr = "203.0.113.7"
	if got := ClientIP(req); got != "203.0.113.7" {
		t.Errorf("ClientIP() без порта = %q", got)
	}
}

func TestLanguage_NoCookie(t *testing.T) {
	var lang string
	h := Language()(http.HandlerFunc(func(_ http.ResponseWriter, r *http.Request) {
		lang = i18n.LangFromContext(r.Context())
	}))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/projects?lang=zh", nil))

	if lang != "zh" {
		t.Errorf("язык = %q, ожидался zh", lang)
	}
	if len(rec.Result().Cookies()) != 0 {
		t.Error("API не должен устанавливать cookie языка")
	}
}
