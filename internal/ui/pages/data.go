package pages

import (
	"github.com/bigkaa/portfolio/internal/domain/model"
)

// Layout — общие данные каркаса страницы (шапка, подвал, переключатель языка).
type Layout struct {
	// Lang — текущий язык
	Lang string
	// Title — ключ i18n заголовка страницы
	Title string
	// Active — активный пункт навигации (home, projects, contact)
	Active string
	// Languages — варианты переключателя языка
	Languages []LangOption
	// OwnerName — имя владельца (логотип, подвал)
	OwnerName string
	// Social — ссылки на соцсети (подвал)
	Social model.SocialLinks
	// Year — текущий год для копирайта
	Year int
}

// LangOption — пункт переключателя языка.
type LangOption struct {
	Code    string
	Name    string
	URL     string
	Current bool
}

// ProjectCard — карточка проекта в галерее и на главной.
type ProjectCard struct {
	ID           int
	URL          string
	Title        string
	Description  string
	Category     string
	Technologies []string
	Thumbnail    string
}

// HomeData — данные главной страницы.
type HomeData struct {
	Layout
	Name      string
	Roles     []string
	Bio       string
	Focus     []string
	Skills    []model.Skill
	ResumeURL string
	Featured  []ProjectCard
}

// ProjectsData — данные страницы галереи.
type ProjectsData struct {
	Layout
	Query string
	// Category — выбранная категория (при AllActive не используется)
	Category  string
	AllActive bool
	// Categories — категории каталога в порядке первого появления
	Categories []string
	Items      []ProjectCard
	Shown      int
	Total      int
}

// ProjectDetail — проект для детальной страницы (локализованный).
type ProjectDetail struct {
	ID           int
	Title        string
	Description  string
	Category     string
	Technologies []string
	Duration     string
	Link         string
	GitHub       string
}

// ImageView — текущее изображение галереи детальной страницы.
type ImageView struct {
	// URL — адрес изображения
	URL string
	// Number — номер изображения (с 1)
	Number int
	// Count — всего изображений
	Count int
	// PrevURL, NextURL — ссылки на соседние изображения (по кругу)
	PrevURL string
	NextURL string
	// Thumbs — миниатюры для выбора изображения
	Thumbs []ImageThumb
}

// ImageThumb — миниатюра изображения в галерее.
type ImageThumb struct {
	URL     string
	Link    string
	Number  int
	Current bool
}

// NavLink — ссылка на соседний проект.
type NavLink struct {
	URL   string
	Title string
}

// ProjectData — данные детальной страницы проекта.
type ProjectData struct {
	Layout
	Project ProjectDetail
	Image   ImageView
	Prev    *NavLink
	Next    *NavLink
}

// ContactInfo — контактные данные владельца.
type ContactInfo struct {
	Email    string
	Phone    string
	Location string
	Social   model.SocialLinks
}

// ContactData — данные страницы контактов.
type ContactData struct {
	Layout
	Info ContactInfo
	// Form — введённые значения (сохраняются при ошибке)
	Form model.ContactForm
	// Errors — поле → ключ i18n ошибки
	Errors map[string]string
	// Status — результат отправки: "", sent, failed, limited
	Status string
}

// MessageData — данные страниц «не найдено» и «ошибка».
type MessageData struct {
	Layout
	// Heading, Text — ключи i18n
	Heading string
	Text    string
	// BackURL, BackLabel — ссылка возврата (BackLabel — ключ i18n)
	BackURL   string
	BackLabel string
}

// FieldData — поле формы контактов.
type FieldData struct {
	Lang  string
	Name  string
	Label string
	Type  string
	Value string
	// Error — ключ i18n ошибки (пусто — поле корректно)
	Error string
}
