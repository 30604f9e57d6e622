// language.go — обработчик переключения языка.
package handlers

import (
	"net/http"
	"net/url"

	"github.com/bigkaa/portfolio/internal/ui/i18n"
)

// SetLanguage возвращает обработчик POST /set-language.
// Устанавливает cookie "lang" и перенаправляет обратно.
// Параметр lang: "en", "zh" или "ms" (из формы или query); иначе — "en".
func SetLanguage(secureCookie bool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		lang, ok := i18n.Normalize(r.FormValue("lang"))
		if !ok {
			lang = i18n.DefaultLang
		}

		i18n.SetLangCookie(w, lang, secureCookie)

		http.Redirect(w, r, backURL(r.Header.Get("Referer")), http.StatusSeeOther)
	}
}

// backURL возвращает путь из Referer (без схемы и хоста) или "/".
// Внешние адреса не используются для redirect.
func backURL(referer string) string {
	u, err := url.Parse(referer)
	if err != nil || u.Path == "" || u.Path[0] != '/' {
		return "/"
	}
	back := u.EscapedPath()
	if len(back) > 1 && back[1] == '/' {
		// "//host" — protocol-relative адрес
		return "/"
	}
	if u.RawQuery != "" {
		back += "?" + u.RawQuery
	}
	return back
}
