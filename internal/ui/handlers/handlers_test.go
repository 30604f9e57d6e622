package handlers

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bigkaa/portfolio/internal/catalog"
	"github.com/bigkaa/portfolio/internal/mailer"
	"github.com/bigkaa/portfolio/internal/repository"
	"github.com/bigkaa/portfolio/internal/service"
	"github.com/bigkaa/portfolio/internal/ui/i18n"
)

func init() {
	b := i18n.Init(slog.Default())
	if err := i18n.LoadFromEmbedFS(b, slog.Default()); err != nil {
		panic(err)
	}
	nowFunc = func() time.Time { return time.Date(2026, 1, 2, 0, 0, 0, 0, time.UTC) }
}

// senderFunc — mailer.Sender из функции.
type senderFunc func(ctx context.Context, msg mailer.Message) error

func (f senderFunc) Send(ctx context.Context, msg mailer.Message) error { return f(ctx, msg) }

func newTestRouter(t *testing.T, sender mailer.Sender, limiter *service.RateLimiter) http.Handler {
	t.Helper()
	cat, err := catalog.LoadEmbedded()
	require.NoError(t, err)

	repo := repository.NewCatalogRepository(cat)
	projects := service.NewProjectService(repo, repo, slog.Default())
	contact := service.NewContactService(sender, limiter, service.Recipient{Email: "owner@example.com"}, time.Second, slog.Default())

	site := NewSiteHandler(projects, slog.Default())
	contactHandler := NewContactHandler(contact, projects, slog.Default())

	r := chi.NewRouter()
	r.Use(i18n.Middleware(false))
	r.Get("/", site.HandleHome)
	r.Get("/projects", site.HandleProjects)
	r.Get("/projects/{id}", site.HandleProject)
	r.Get("/contact", contactHandler.HandleContact)
	r.Post("/contact", contactHandler.HandleSubmit)
	r.Post("/set-language", SetLanguage(false))
	r.NotFound(site.HandleNotFound)
	return r
}

func okSender() mailer.Sender {
	return senderFunc(func(context.Context, mailer.Message) error { return nil })
}

func get(t *testing.T, h http.Handler, target string, lang string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, target, nil)
	if lang != "" {
		req.AddCookie(&http.Cookie{Name: i18n.LangCookieName, Value: lang})
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestHome(t *testing.T) {
	h := newTestRouter(t, okSender(), nil)

	rec := get(t, h, "/", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "text/html; charset=utf-8", rec.Header().Get("Content-Type"))

	body := rec.Body.String()
	assert.Contains(t, body, "Wei Yang")
	assert.Contains(t, body, "Full Stack Developer")
	assert.Equal(t, service.FeaturedCount, strings.Count(body, `<article class="card">`))
	assert.Contains(t, body, "© 2026 Wei Yang.")
	assert.Contains(t, body, `href="/?lang=zh"`)
}

func TestProjects_All(t *testing.T) {
	h := newTestRouter(t, okSender(), nil)

	rec := get(t, h, "/projects", "")
	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, "Showing 6 of 6 projects")
	assert.Equal(t, 6, strings.Count(body, `<article class="card">`))
	assert.Contains(t, body, `<option value="" selected>All</option>`)
}

func TestProjects_Filter(t *testing.T) {
	h := newTestRouter(t, okSender(), nil)

	rec := get(t, h, "/projects?category="+url.QueryEscape("Backend"), "")
	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.NotContains(t, body, "Showing 6 of 6 projects")
	assert.Contains(t, body, `<option value="Backend" selected>`)

	rec = get(t, h, "/projects?q=zzzz-no-match", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Showing 0 of 6 projects")
	assert.Contains(t, rec.Body.String(), "No projects found")
}

func TestProjects_Localized(t *testing.T) {
	h := newTestRouter(t, okSender(), nil)

	rec := get(t, h, "/projects", "zh")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `<html lang="zh">`)
	assert.Contains(t, rec.Body.String(), "显示 6 / 6 个项目")
}

func TestProject_Detail(t *testing.T) {
	h := newTestRouter(t, okSender(), nil)

	rec := get(t, h, "/projects/1", "")
	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, "E-Commerce Platform")
	assert.Contains(t, body, "Image 1 of 3")
	// Первый проект: ссылки «назад» нет, «вперёд» — на проект 2
	assert.NotContains(t, body, "Previous Project")
	assert.Contains(t, body, `href="/projects/2"`)
	// Галерея замыкается: с первого изображения назад — на последнее
	assert.Contains(t, body, `href="/projects/1?image=2"`)
}

func TestProject_ImageWrap(t *testing.T) {
	h := newTestRouter(t, okSender(), nil)

	rec := get(t, h, "/projects/1?image=5", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Image 3 of 3")

	rec = get(t, h, "/projects/1?image=-1", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Image 3 of 3")
}

func TestProject_LastHasNoNext(t *testing.T) {
	h := newTestRouter(t, okSender(), nil)

	rec := get(t, h, "/projects/6", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Previous Project")
	assert.NotContains(t, rec.Body.String(), "Next Project")
}

func TestProject_NotFound(t *testing.T) {
	h := newTestRouter(t, okSender(), nil)

	for _, target := range []string{"/projects/999", "/projects/abc"} {
		rec := get(t, h, target, "")
		assert.Equal(t, http.StatusNotFound, rec.Code, target)
		assert.Contains(t, rec.Body.String(), "Project Not Found", target)
	}
}

func TestNotFoundPage(t *testing.T) {
	h := newTestRouter(t, okSender(), nil)

	rec := get(t, h, "/no-such-page", "ms")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, rec.Body.String(), "Halaman Tidak Dijumpai")
}

func postForm(t *testing.T, h http.Handler, values url.Values) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/contact", strings.NewReader(values.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.RemoteAddr = "192.0.2.1:1234"
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func validValues() url.Values {
	return url.Values{
		"name":    {"Alice"},
		"email":   {"alice@example.com"},
		"subject": {"Hello"},
		"message": {"Let's build something great."},
	}
}

func TestContact_Page(t *testing.T) {
	h := newTestRouter(t, okSender(), nil)

	rec := get(t, h, "/contact", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "mailto:")
	assert.NotContains(t, rec.Body.String(), "alert-success")

	rec = get(t, h, "/contact?sent=1", "")
	assert.Contains(t, rec.Body.String(), "Thank you!")
}

func TestContact_SubmitSuccess(t *testing.T) {
	var got mailer.Message
	calls := 0
	h := newTestRouter(t, senderFunc(func(_ context.Context, msg mailer.Message) error {
		calls++
		got = msg
		return nil
	}), nil)

	rec := postForm(t, h, validValues())
	require.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/contact?sent=1", rec.Header().Get("Location"))
	assert.Equal(t, 1, calls)
	assert.Equal(t, "alice@example.com", got.FromEmail)
	assert.Equal(t, "owner@example.com", got.ToEmail)
}

func TestContact_SubmitInvalid(t *testing.T) {
	calls := 0
	h := newTestRouter(t, senderFunc(func(context.Context, mailer.Message) error {
		calls++
		return nil
	}), nil)

	values := validValues()
	values.Set("email", "not-an-email")
	values.Set("message", "short")

	rec := postForm(t, h, values)
	require.Equal(t, http.StatusBadRequest, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, "Please enter a valid email address.")
	assert.Contains(t, body, "at least 10 characters")
	assert.Contains(t, body, `value="Alice"`)
	assert.Equal(t, 0, calls, "невалидная форма не должна отправляться")
}

func TestContact_SubmitDeliveryFailed(t *testing.T) {
	h := newTestRouter(t, senderFunc(func(context.Context, mailer.Message) error {
		return errors.New("connection refused")
	}), nil)

	rec := postForm(t, h, validValues())
	require.Equal(t, http.StatusBadGateway, rec.Code)
	assert.Contains(t, rec.Body.String(), "Sorry, there was an error sending your message.")
	assert.Contains(t, rec.Body.String(), "Let&#39;s build something great.")
}

func TestContact_SubmitRateLimited(t *testing.T) {
	limiter := service.NewRateLimiter(time.Hour, 1, 10)
	h := newTestRouter(t, okSender(), limiter)

	rec := postForm(t, h, validValues())
	require.Equal(t, http.StatusSeeOther, rec.Code)

	rec = postForm(t, h, validValues())
	require.Equal(t, http.StatusTooManyRequests, rec.Code)
	assert.Contains(t, rec.Body.String(), "Too many messages.")
}

func TestSetLanguage(t *testing.T) {
	h := newTestRouter(t, okSender(), nil)

	req := httptest.NewRequest(http.MethodPost, "/set-language", strings.NewReader("lang=zh"))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("Referer", "https://example.com/projects?q=go")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	require.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/projects?q=go", rec.Header().Get("Location"))

	cookies := rec.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, i18n.LangCookieName, cookies[0].Name)
	assert.Equal(t, "zh", cookies[0].Value)
}

func TestBackURL(t *testing.T) {
	tests := []struct {
		referer string
		want    string
	}{
		{"", "/"},
		{"https://example.com/contact", "/contact"},
		{"/projects/2?image=1", "/projects/2?image=1"},
		{"//evil.example.com/x", "/x"},
		{"https://example.com//evil.example.com", "/"},
		{"javascript:alert(1)", "/"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, backURL(tt.referer), tt.referer)
	}
}
