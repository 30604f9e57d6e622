package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bigkaa/portfolio/internal/api/middleware"
	"github.com/bigkaa/portfolio/internal/api/openapi"
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
}

// senderFunc — mailer.Sender из функции.
type senderFunc func(ctx context.Context, msg mailer.Message) error

func (f senderFunc) Send(ctx context.Context, msg mailer.Message) error { return f(ctx, msg) }

func okSender() mailer.Sender {
	return senderFunc(func(context.Context, mailer.Message) error { return nil })
}

// newTestAPI собирает /api/v1 так же, как сервер: язык, валидация по контракту, обработчики.
func newTestAPI(t *testing.T, sender mailer.Sender, limiter *service.RateLimiter) http.Handler {
	t.Helper()
	cat, err := catalog.LoadEmbedded()
	require.NoError(t, err)

	repo := repository.NewCatalogRepository(cat)
	projects := service.NewProjectService(repo, repo, slog.Default())
	contact := service.NewContactService(sender, limiter, service.Recipient{Email: "owner@example.com"}, time.Second, slog.Default())

	doc, err := openapi.Load(context.Background())
	require.NoError(t, err)
	validator, err := openapi.NewValidator(doc, slog.Default())
	require.NoError(t, err)

	api := NewAPIHandler(NewHealthHandler(cat, service.NewMailChecker("log", nil)), projects, contact, slog.Default())

	r := chi.NewRouter()
	r.Route("/api/v1", func(r chi.Router) {
		r.Use(middleware.Language())
		r.Use(validator.Middleware())
		api.Routes(r)
	})
	return r
}

func doRequest(h http.Handler, method, target, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, target, nil)
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

// errorResponse — тело ответа ошибки.
type errorResponse struct {
	Error struct {
		Code    string            `json:"code"`
		Message string            `json:"message"`
		Fields  map[string]string `json:"fields"`
	} `json:"error"`
}

func decodeError(t *testing.T, rec *httptest.ResponseRecorder) errorResponse {
	t.Helper()
	var resp errorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	return resp
}

// --- GET /api/v1/projects ---

func TestListProjects_All(t *testing.T) {
	h := newTestAPI(t, okSender(), nil)

	rec := doRequest(h, http.MethodGet, "/api/v1/projects", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	var resp projectListResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, 6, resp.Total)
	assert.Equal(t, 6, resp.Shown)
	assert.Len(t, resp.Items, 6)
	assert.Nil(t, resp.Category)
	assert.Equal(t, []string{"Web Development", "Backend", "Mobile"}, resp.Categories)
	assert.Equal(t, 1, resp.Items[0].ID)
	assert.Equal(t, "/projects/1", resp.Items[0].URL)
}

func TestListProjects_Filter(t *testing.T) {
	h := newTestAPI(t, okSender(), nil)

	rec := doRequest(h, http.MethodGet, "/api/v1/projects?category=Backend&q=api", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var resp projectListResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, 6, resp.Total)
	assert.Equal(t, resp.Shown, len(resp.Items))
	require.NotNil(t, resp.Category)
	assert.Equal(t, "Backend", *resp.Category)
	assert.Equal(t, "api", resp.Query)
	for _, p := range resp.Items {
		assert.Equal(t, "Backend", p.Category)
	}
}

func TestListProjects_EmptyCategoryMeansAll(t *testing.T) {
	h := newTestAPI(t, okSender(), nil)

	rec := doRequest(h, http.MethodGet, "/api/v1/projects?category=", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var resp projectListResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, 6, resp.Shown)
	assert.Nil(t, resp.Category)
}

func TestListProjects_NoMatches(t *testing.T) {
	h := newTestAPI(t, okSender(), nil)

	rec := doRequest(h, http.MethodGet, "/api/v1/projects?q=zzzz-nothing", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var resp projectListResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, 0, resp.Shown)
	assert.NotNil(t, resp.Items)
	assert.Contains(t, rec.Body.String(), `"items":[]`)
}

func TestListProjects_Localized(t *testing.T) {
	h := newTestAPI(t, okSender(), nil)

	rec := doRequest(h, http.MethodGet, "/api/v1/projects?lang=zh", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var resp projectListResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "电子商务平台", resp.Items[0].Title)
	assert.Empty(t, rec.Header().Values("Set-Cookie"), "API не должен сохранять язык в cookie")
}

func TestListProjects_UnknownLang(t *testing.T) {
	h := newTestAPI(t, okSender(), nil)

	rec := doRequest(h, http.MethodGet, "/api/v1/projects?lang=fr", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "VALIDATION_ERROR", decodeError(t, rec).Error.Code)
}

// --- GET /api/v1/projects/{id} ---

func TestGetProject(t *testing.T) {
	h := newTestAPI(t, okSender(), nil)

	rec := doRequest(h, http.MethodGet, "/api/v1/projects/2", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var resp projectDetailResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, 2, resp.Project.ID)
	assert.Equal(t, "Task Management API", resp.Project.Title)
	assert.NotEmpty(t, resp.Project.Images)
	require.NotNil(t, resp.PrevID)
	require.NotNil(t, resp.NextID)
	assert.Equal(t, 1, *resp.PrevID)
	assert.Equal(t, 3, *resp.NextID)
}

func TestGetProject_Edges(t *testing.T) {
	h := newTestAPI(t, okSender(), nil)

	rec := doRequest(h, http.MethodGet, "/api/v1/projects/1", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"prev_id":null`)

	rec = doRequest(h, http.MethodGet, "/api/v1/projects/6", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"next_id":null`)
}

func TestGetProject_NotFound(t *testing.T) {
	h := newTestAPI(t, okSender(), nil)

	rec := doRequest(h, http.MethodGet, "/api/v1/projects/999?lang=ms", "")
	require.Equal(t, http.StatusNotFound, rec.Code)

	resp := decodeError(t, rec)
	assert.Equal(t, "NOT_FOUND", resp.Error.Code)
	assert.Equal(t, "Projek tidak dijumpai.", resp.Error.Message)
}

func TestGetProject_InvalidID(t *testing.T) {
	h := newTestAPI(t, okSender(), nil)

	for _, id := range []string{"abc", "0", "-3"} {
		rec := doRequest(h, http.MethodGet, "/api/v1/projects/"+id, "")
		assert.Equal(t, http.StatusBadRequest, rec.Code, "id=%s", id)
	}
}

// --- Контракт ---

func TestAPI_UnknownPathAndMethod(t *testing.T) {
	h := newTestAPI(t, okSender(), nil)

	rec := doRequest(h, http.MethodGet, "/api/v1/unknown", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "NOT_FOUND", decodeError(t, rec).Error.Code)

	rec = doRequest(h, http.MethodDelete, "/api/v1/projects", "")
	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
	assert.Equal(t, "METHOD_NOT_ALLOWED", decodeError(t, rec).Error.Code)
}

// --- GET /api/v1/profile ---

func TestGetProfile(t *testing.T) {
	h := newTestAPI(t, okSender(), nil)

	rec := doRequest(h, http.MethodGet, "/api/v1/profile", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var resp map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "Wei Yang", resp["name"])
	assert.Equal(t, "hello@weiyang.example.com", resp["email"])
	assert.NotEmpty(t, resp["roles"])
	assert.NotEmpty(t, resp["bio"])
}

// --- POST /api/v1/contact ---

const validContact = `{"name":"Alice","email":"alice@example.com","subject":"Hello","message":"I would like to discuss a project."}`

func TestSubmitContact_Accepted(t *testing.T) {
	var got mailer.Message
	calls := 0
	sender := senderFunc(func(_ context.Context, msg mailer.Message) error {
		calls++
		got = msg
		return nil
	})
	h := newTestAPI(t, sender, nil)

	rec := doRequest(h, http.MethodPost, "/api/v1/contact", validContact)
	require.Equal(t, http.StatusAccepted, rec.Code)

	var resp contactAcceptedResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "sent", resp.Status)
	assert.NotEmpty(t, resp.ID)
	assert.Equal(t, 1, calls)
	assert.Equal(t, "alice@example.com", got.FromEmail)
	assert.Equal(t, "owner@example.com", got.ToEmail)
}

func TestSubmitContact_InvalidFields(t *testing.T) {
	calls := 0
	sender := senderFunc(func(context.Context, mailer.Message) error {
		calls++
		return nil
	})
	h := newTestAPI(t, sender, nil)

	rec := doRequest(h, http.MethodPost, "/api/v1/contact?lang=en", `{"name":"","email":"not-an-email","subject":"Hi","message":"short"}`)
	require.Equal(t, http.StatusBadRequest, rec.Code)

	resp := decodeError(t, rec)
	assert.Equal(t, "VALIDATION_ERROR", resp.Error.Code)
	assert.Equal(t, "Please enter your name.", resp.Error.Fields["name"])
	assert.Contains(t, resp.Error.Fields, "email")
	assert.Contains(t, resp.Error.Fields, "message")
	assert.NotContains(t, resp.Error.Fields, "subject")
	assert.Equal(t, 0, calls, "невалидная форма не должна отправляться")
}

func TestSubmitContact_BadBody(t *testing.T) {
	h := newTestAPI(t, okSender(), nil)

	rec := doRequest(h, http.MethodPost, "/api/v1/contact", `{"name":`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = doRequest(h, http.MethodPost, "/api/v1/contact", `{"name":"A","extra":true}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestSubmitContact_RateLimited(t *testing.T) {
	h := newTestAPI(t, okSender(), service.NewRateLimiter(time.Hour, 1, 100))

	rec := doRequest(h, http.MethodPost, "/api/v1/contact", validContact)
	require.Equal(t, http.StatusAccepted, rec.Code)

	rec = doRequest(h, http.MethodPost, "/api/v1/contact", validContact)
	require.Equal(t, http.StatusTooManyRequests, rec.Code)
	assert.Equal(t, "TOO_MANY_REQUESTS", decodeError(t, rec).Error.Code)
}

func TestSubmitContact_DeliveryFailed(t *testing.T) {
	sender := senderFunc(func(context.Context, mailer.Message) error {
		return errors.New("connection refused")
	})
	h := newTestAPI(t, sender, nil)

	rec := doRequest(h, http.MethodPost, "/api/v1/contact", validContact)
	require.Equal(t, http.StatusBadGateway, rec.Code)
	assert.Equal(t, "MAIL_UNAVAILABLE", decodeError(t, rec).Error.Code)
}
