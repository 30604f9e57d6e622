// Пакет handlers — HTTP-обработчики публичного сайта.
package handlers

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/a-h/templ"

	"github.com/bigkaa/portfolio/internal/domain/model"
	"github.com/bigkaa/portfolio/internal/ui/i18n"
	"github.com/bigkaa/portfolio/internal/ui/pages"
)

// nowFunc — текущее время (подменяется в тестах).
var nowFunc = time.Now

// newLayout собирает общие данные каркаса страницы.
// Ссылки переключателя языка сохраняют текущий путь и query-параметры.
func newLayout(r *http.Request, profile model.Profile, title, active string) pages.Layout {
	lang := i18n.LangFromContext(r.Context())

	options := make([]pages.LangOption, 0, len(i18n.Languages))
	for _, l := range i18n.Languages {
		q := r.URL.Query()
		q.Set(i18n.LangQueryParam, l.Code)
		options = append(options, pages.LangOption{
			Code:    l.Code,
			Name:    l.Name,
			URL:     r.URL.Path + "?" + q.Encode(),
			Current: l.Code == lang,
		})
	}

	return pages.Layout{
		Lang:      lang,
		Title:     title,
		Active:    active,
		Languages: options,
		OwnerName: profile.Name,
		Social:    profile.Social,
		Year:      nowFunc().Year(),
	}
}

// render отправляет HTML-страницу с указанным статусом.
func render(w http.ResponseWriter, r *http.Request, logger *slog.Logger, status int, page templ.Component) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)

	if err := page.Render(r.Context(), w); err != nil {
		logger.Error("Ошибка рендеринга страницы",
			slog.String("error", err.Error()),
			slog.String("path", r.URL.Path),
		)
	}
}
