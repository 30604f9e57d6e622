package middleware

import (
	"net/http"

	"github.com/bigkaa/portfolio/internal/ui/i18n"
)

// Language — определение языка ответов JSON API.
// Порядок тот же, что у страниц (?lang= → cookie → Accept-Language),
// но выбор языка не сохраняется в cookie.
func Language() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			lang, _ := i18n.Detect(r)
			next.ServeHTTP(w, r.WithContext(i18n.WithLang(r.Context(), lang)))
		})
	}
}
