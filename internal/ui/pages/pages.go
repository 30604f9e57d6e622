// Пакет pages — HTML-страницы публичного сайта.
// Шаблоны html/template встроены в бинарник и отдаются как templ.Component,
// поэтому обработчики рендерят страницы единообразно: page.Render(ctx, w).
package pages

import (
	"embed"
	"fmt"
	"html/template"
	"io/fs"

	"github.com/a-h/templ"

	"github.com/bigkaa/portfolio/internal/ui/i18n"
)

//go:embed templates/*.html
var templateFS embed.FS

// Имена страниц (файлы templates/<name>.html).
const (
	pageHome     = "home"
	pageProjects = "projects"
	pageProject  = "project"
	pageContact  = "contact"
	pageNotFound = "notfound"
	pageError    = "error"
)

// funcs — функции, доступные в шаблонах.
var funcs = template.FuncMap{
	// t — перевод ключа: {{t .Lang "nav.home"}}
	"t": func(lang, key string) string {
		if b := i18n.GetBundle(); b != nil {
			return b.Translate(lang, key)
		}
		return key
	},
	// tf — перевод с подстановкой аргументов
	"tf": func(lang, key string, args ...any) string {
		if b := i18n.GetBundle(); b != nil {
			return b.Translatef(lang, key, args...)
		}
		return key
	},
	// fieldData — данные поля формы контактов
	"fieldData": func(data ContactData, name, inputType, value string) FieldData {
		return FieldData{
			Lang:  data.Lang,
			Name:  name,
			Label: "contact.field." + name,
			Type:  inputType,
			Value: value,
			Error: data.Errors[name],
		}
	},
}

// templates — разобранные страницы: layout + содержимое страницы.
var templates = mustParse(templateFS)

func mustParse(fsys fs.FS) map[string]*template.Template {
	base := template.Must(template.New("layout.html").Funcs(funcs).ParseFS(fsys, "templates/layout.html"))

	out := make(map[string]*template.Template)
	for _, name := range []string{pageHome, pageProjects, pageProject, pageContact, pageNotFound, pageError} {
		t := template.Must(template.Must(base.Clone()).ParseFS(fsys, fmt.Sprintf("templates/%s.html", name)))
		out[name] = t
	}
	return out
}

// render возвращает компонент страницы name с данными data.
func render(name string, data any) templ.Component {
	return templ.FromGoHTML(templates[name], data)
}

// Home — главная страница.
func Home(data HomeData) templ.Component {
	return render(pageHome, data)
}

// Projects — галерея проектов с поиском и фильтром по категории.
func Projects(data ProjectsData) templ.Component {
	return render(pageProjects, data)
}

// Project — детальная страница проекта.
func Project(data ProjectData) templ.Component {
	return render(pageProject, data)
}

// Contact — страница контактов с формой.
func Contact(data ContactData) templ.Component {
	return render(pageContact, data)
}

// NotFound — страница «не найдено» (проект или произвольный путь).
func NotFound(data MessageData) templ.Component {
	return render(pageNotFound, data)
}

// Error — страница внутренней ошибки.
func Error(data MessageData) templ.Component {
	return render(pageError, data)
}
