// site.go — обработчики страниц каталога: главная, галерея, детальный просмотр.
package handlers

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/bigkaa/portfolio/internal/domain/model"
	"github.com/bigkaa/portfolio/internal/repository"
	"github.com/bigkaa/portfolio/internal/service"
	"github.com/bigkaa/portfolio/internal/ui/i18n"
	"github.com/bigkaa/portfolio/internal/ui/pages"
)

// ImageParam — query-параметр номера изображения на детальной странице.
const ImageParam = "image"

// SiteHandler — обработчик страниц каталога.
type SiteHandler struct {
	projects *service.ProjectService
	logger   *slog.Logger
}

// NewSiteHandler создаёт новый SiteHandler.
func NewSiteHandler(projects *service.ProjectService, logger *slog.Logger) *SiteHandler {
	return &SiteHandler{
		projects: projects,
		logger:   logger.With(slog.String("component", "ui.site")),
	}
}

// HandleHome обрабатывает GET / — главная страница.
func (h *SiteHandler) HandleHome(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	lang := i18n.LangFromContext(ctx)
	profile := h.projects.Profile(ctx)

	featured := h.projects.Featured(ctx, service.FeaturedCount)

	data := pages.HomeData{
		Layout:    newLayout(r, profile, "title.home", "home"),
		Name:      profile.Name,
		Roles:     profile.Roles,
		Bio:       profile.LocalizedBio(lang),
		Focus:     profile.Focus,
		Skills:    profile.Skills,
		ResumeURL: profile.ResumeURL,
		Featured:  projectCards(featured, lang),
	}

	render(w, r, h.logger, http.StatusOK, pages.Home(data))
}

// HandleProjects обрабатывает GET /projects — галерея с поиском и фильтром.
// category="" (пункт «Все») — без фильтра по категории.
func (h *SiteHandler) HandleProjects(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	lang := i18n.LangFromContext(ctx)
	profile := h.projects.Profile(ctx)

	params := repository.SearchParams{Query: r.URL.Query().Get("q")}
	if c := r.URL.Query().Get("category"); c != "" {
		params.Category = &c
	}

	result, err := h.projects.Search(ctx, params)
	if err != nil {
		h.logger.Error("Ошибка поиска проектов",
			slog.String("error", err.Error()),
			slog.String("query", params.Query),
		)
		h.renderError(w, r, profile)
		return
	}

	data := pages.ProjectsData{
		Layout:     newLayout(r, profile, "title.projects", "projects"),
		Query:      result.Query,
		Category:   result.Category.Name(),
		AllActive:  result.Category.IsAll(),
		Categories: result.Categories,
		Items:      projectCards(result.Items, lang),
		Shown:      result.Shown,
		Total:      result.Total,
	}

	render(w, r, h.logger, http.StatusOK, pages.Projects(data))
}

// HandleProject обрабатывает GET /projects/{id} — детальная страница проекта.
// ?image=N выбирает изображение галереи; N нормализуется по модулю количества.
func (h *SiteHandler) HandleProject(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	lang := i18n.LangFromContext(ctx)
	profile := h.projects.Profile(ctx)

	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		h.renderProjectNotFound(w, r, profile)
		return
	}

	view, err := h.projects.GetProject(ctx, id)
	if err != nil {
		if errors.Is(err, service.ErrNotFound) {
			h.renderProjectNotFound(w, r, profile)
			return
		}
		h.logger.Error("Ошибка получения проекта",
			slog.String("error", err.Error()),
			slog.Int("id", id),
		)
		h.renderError(w, r, profile)
		return
	}

	p := view.Project
	image, _ := strconv.Atoi(r.URL.Query().Get(ImageParam))

	layout := newLayout(r, profile, "title.projects", "projects")
	layout.Title = p.LocalizedTitle(lang)

	data := pages.ProjectData{
		Layout: layout,
		Project: pages.ProjectDetail{
			ID:           p.ID,
			Title:        p.LocalizedTitle(lang),
			Description:  p.LocalizedDescription(lang),
			Category:     p.Category,
			Technologies: p.Technologies,
			Duration:     p.Duration,
			Link:         p.Link,
			GitHub:       p.GitHub,
		},
		Image: imageView(p, image),
		Prev:  navLink(view.Prev, lang),
		Next:  navLink(view.Next, lang),
	}

	render(w, r, h.logger, http.StatusOK, pages.Project(data))
}

// HandleNotFound — страница 404 для неизвестных путей.
func (h *SiteHandler) HandleNotFound(w http.ResponseWriter, r *http.Request) {
	profile := h.projects.Profile(r.Context())
	render(w, r, h.logger, http.StatusNotFound, pages.NotFound(pages.MessageData{
		Layout:    newLayout(r, profile, "title.not_found", ""),
		Heading:   "notfound.page_title",
		Text:      "notfound.page_text",
		BackURL:   "/",
		BackLabel: "notfound.home",
	}))
}

func (h *SiteHandler) renderProjectNotFound(w http.ResponseWriter, r *http.Request, profile model.Profile) {
	render(w, r, h.logger, http.StatusNotFound, pages.NotFound(pages.MessageData{
		Layout:    newLayout(r, profile, "title.not_found", "projects"),
		Heading:   "notfound.project_title",
		Text:      "notfound.project_text",
		BackURL:   "/projects",
		BackLabel: "project.back",
	}))
}

func (h *SiteHandler) renderError(w http.ResponseWriter, r *http.Request, profile model.Profile) {
	render(w, r, h.logger, http.StatusInternalServerError, pages.Error(pages.MessageData{
		Layout:    newLayout(r, profile, "title.error", ""),
		Heading:   "error.title",
		Text:      "error.text",
		BackURL:   "/",
		BackLabel: "notfound.home",
	}))
}

// projectURL — ссылка на детальную страницу проекта.
func projectURL(id int) string {
	return fmt.Sprintf("/projects/%d", id)
}

// imageURL — ссылка на детальную страницу с выбранным изображением.
func imageURL(id, image int) string {
	return fmt.Sprintf("/projects/%d?%s=%d", id, ImageParam, image)
}

// projectCards преобразует проекты в карточки на языке lang.
func projectCards(projects []model.Project, lang string) []pages.ProjectCard {
	cards := make([]pages.ProjectCard, 0, len(projects))
	for i := range projects {
		p := &projects[i]
		cards = append(cards, pages.ProjectCard{
			ID:           p.ID,
			URL:          projectURL(p.ID),
			Title:        p.LocalizedTitle(lang),
			Description:  p.LocalizedDescription(lang),
			Category:     p.Category,
			Technologies: p.Technologies,
			Thumbnail:    p.Thumbnail,
		})
	}
	return cards
}

// imageView собирает состояние галереи для изображения с индексом i.
// Переходы «назад/вперёд» замыкаются по кругу.
func imageView(p *model.Project, i int) pages.ImageView {
	current := p.ImageIndex(i)

	thumbs := make([]pages.ImageThumb, 0, len(p.Images))
	for n, url := range p.Images {
		thumbs = append(thumbs, pages.ImageThumb{
			URL:     url,
			Link:    imageURL(p.ID, n),
			Number:  n + 1,
			Current: n == current,
		})
	}

	return pages.ImageView{
		URL:     p.Image(current),
		Number:  current + 1,
		Count:   len(p.Images),
		PrevURL: imageURL(p.ID, p.PrevImage(current)),
		NextURL: imageURL(p.ID, p.NextImage(current)),
		Thumbs:  thumbs,
	}
}

// navLink — ссылка на соседний проект (nil — соседа нет).
func navLink(p *model.Project, lang string) *pages.NavLink {
	if p == nil {
		return nil
	}
	return &pages.NavLink{URL: projectURL(p.ID), Title: p.LocalizedTitle(lang)}
}
