// projects.go — обработчики GET /api/v1/projects и GET /api/v1/projects/{id}.
// Текстовые поля проектов возвращаются на языке запроса.
package handlers

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/oapi-codegen/runtime"

	apierrors "github.com/bigkaa/portfolio/internal/api/errors"
	"github.com/bigkaa/portfolio/internal/domain/model"
	"github.com/bigkaa/portfolio/internal/repository"
	"github.com/bigkaa/portfolio/internal/service"
	"github.com/bigkaa/portfolio/internal/ui/i18n"
)

// ListProjectsParams — query-параметры GET /api/v1/projects.
type ListProjectsParams struct {
	// Q — поисковая строка
	Q *string
	// Category — категория (nil или пустая строка — все категории)
	Category *string
}

// projectResponse — проект в ответах API.
type projectResponse struct {
	ID           int      `json:"id"`
	Title        string   `json:"title"`
	Description  string   `json:"description"`
	Category     string   `json:"category"`
	Technologies []string `json:"technologies"`
	Thumbnail    string   `json:"thumbnail"`
	Images       []string `json:"images"`
	Duration     string   `json:"duration,omitempty"`
	Link         string   `json:"link,omitempty"`
	GitHub       string   `json:"github,omitempty"`
	URL          string   `json:"url"`
}

// projectListResponse — ответ GET /api/v1/projects.
type projectListResponse struct {
	Items      []projectResponse `json:"items"`
	Shown      int               `json:"shown"`
	Total      int               `json:"total"`
	Categories []string          `json:"categories"`
	Query      string            `json:"query"`
	Category   *string           `json:"category,omitempty"`
}

// projectDetailResponse — ответ GET /api/v1/projects/{id}.
type projectDetailResponse struct {
	Project projectResponse `json:"project"`
	PrevID  *int            `json:"prev_id"`
	NextID  *int            `json:"next_id"`
}

// ListProjects — поиск и фильтрация каталога.
func (h *APIHandler) ListProjects(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var params ListProjectsParams
	if err := runtime.BindQueryParameter("form", true, false, "q", r.URL.Query(), &params.Q); err != nil {
		apierrors.ValidationError(w, i18n.T(ctx, "api.error.validation"))
		return
	}
	if err := runtime.BindQueryParameter("form", true, false, "category", r.URL.Query(), &params.Category); err != nil {
		apierrors.ValidationError(w, i18n.T(ctx, "api.error.validation"))
		return
	}

	search := repository.SearchParams{}
	if params.Q != nil {
		search.Query = *params.Q
	}
	if params.Category != nil && *params.Category != "" {
		search.Category = params.Category
	}

	result, err := h.projects.Search(ctx, search)
	if err != nil {
		h.logger.Error("Ошибка поиска проектов",
			slog.String("error", err.Error()),
		)
		apierrors.InternalError(w, i18n.T(ctx, "api.error.internal"))
		return
	}

	lang := i18n.LangFromContext(ctx)
	items := make([]projectResponse, 0, len(result.Items))
	for i := range result.Items {
		items = append(items, toProjectResponse(&result.Items[i], lang))
	}

	writeJSON(w, http.StatusOK, projectListResponse{
		Items:      items,
		Shown:      result.Shown,
		Total:      result.Total,
		Categories: result.Categories,
		Query:      result.Query,
		Category:   search.Category,
	})
}

// GetProject — проект по ID с соседями в порядке каталога.
func (h *APIHandler) GetProject(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var id int
	err := runtime.BindStyledParameterWithOptions("simple", "id", chi.URLParam(r, "id"), &id, runtime.BindStyledParameterOptions{
		ParamLocation: runtime.ParamLocationPath,
		Explode:       false,
		Required:      true,
	})
	if err != nil {
		apierrors.ValidationError(w, i18n.T(ctx, "api.error.validation"))
		return
	}

	view, err := h.projects.GetProject(ctx, id)
	if err != nil {
		if errors.Is(err, service.ErrNotFound) {
			apierrors.NotFound(w, i18n.T(ctx, "api.error.not_found"))
			return
		}
		h.logger.Error("Ошибка получения проекта",
			slog.Int("id", id),
			slog.String("error", err.Error()),
		)
		apierrors.InternalError(w, i18n.T(ctx, "api.error.internal"))
		return
	}

	lang := i18n.LangFromContext(ctx)
	resp := projectDetailResponse{Project: toProjectResponse(view.Project, lang)}
	if view.Prev != nil {
		resp.PrevID = &view.Prev.ID
	}
	if view.Next != nil {
		resp.NextID = &view.Next.ID
	}

	writeJSON(w, http.StatusOK, resp)
}

// toProjectResponse преобразует проект в ответ API на языке lang.
func toProjectResponse(p *model.Project, lang string) projectResponse {
	return projectResponse{
		ID:           p.ID,
		Title:        p.LocalizedTitle(lang),
		Description:  p.LocalizedDescription(lang),
		Category:     p.Category,
		Technologies: p.Technologies,
		Thumbnail:    p.Thumbnail,
		Images:       p.Images,
		Duration:     p.Duration,
		Link:         p.Link,
		GitHub:       p.GitHub,
		URL:          fmt.Sprintf("/projects/%d", p.ID),
	}
}
