// Пакет static — встроенные статические ресурсы сайта.
// Содержит CSS, JS (эффект печатной машинки, клавиатурная навигация галереи)
// и изображения проектов.
// Файлы встраиваются в бинарник через //go:embed и раздаются через HTTP.
package static

import (
	"embed"
	"io/fs"
	"net/http"
)

// content — встроенная файловая система со всеми статическими ресурсами.
// Включает поддиректории css/, js/ и img/.
//
//go:embed css js img
var content embed.FS

// FileSystem возвращает http.FileSystem для обработки запросов к /static/*.
// Файлы доступны по путям вида /static/css/site.css, /static/img/projects/... и т.д.
func FileSystem() http.FileSystem {
	return http.FS(content)
}

// FS возвращает fs.FS для прямого доступа к встроенным файлам.
func FS() fs.FS {
	return content
}
