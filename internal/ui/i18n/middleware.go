// middleware.go — HTTP middleware для определения языка пользователя.
// Приоритет: ?lang= → cookie "lang" → заголовок Accept-Language → default "en".
package i18n

import (
	"net/http"
	"time"
)

// LangCookieName — имя cookie для хранения выбранного языка.
const LangCookieName = "lang"

// LangQueryParam — query-параметр явного выбора языка.
const LangQueryParam = "lang"

// cookieMaxAge — срок хранения выбора языка.
const cookieMaxAge = 365 * 24 * time.Hour

// Middleware создаёт HTTP middleware для определения языка и помещения его в контекст.
// Язык из ?lang= сохраняется в cookie, чтобы выбор переживал переходы по ссылкам.
func Middleware(secureCookie bool) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			lang, fromQuery := Detect(r)
			if fromQuery {
				SetLangCookie(w, lang, secureCookie)
			}
			ctx := WithLang(r.Context(), lang)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// SetLangCookie сохраняет выбранный язык в cookie на 1 год.
func SetLangCookie(w http.ResponseWriter, lang string, secure bool) {
	http.SetCookie(w, &http.Cookie{
		Name:     LangCookieName,
		Value:    lang,
		Path:     "/",
		MaxAge:   int(cookieMaxAge.Seconds()),
		Expires:  time.Now().Add(cookieMaxAge),
		HttpOnly: false, // JS читает для UI-логики
		Secure:   secure,
		SameSite: http.SameSiteLaxMode,
	})
}

// Detect определяет язык из запроса.
// Второе значение — язык задан явно через query-параметр.
func Detect(r *http.Request) (string, bool) {
	// 1. ?lang= (явный выбор, например ссылка из переключателя)
	if lang, ok := Normalize(r.URL.Query().Get(LangQueryParam)); ok {
		return lang, true
	}

	// 2. Cookie "lang" (пользователь выбрал язык ранее)
	if cookie, err := r.Cookie(LangCookieName); err == nil {
		if lang, ok := Normalize(cookie.Value); ok {
			return lang, false
		}
	}

	// 3. Accept-Language заголовок
	if accept := r.Header.Get("Accept-Language"); accept != "" {
		return MatchLanguage(accept), false
	}

	// 4. Default
	return DefaultLang, false
}
