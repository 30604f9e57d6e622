// Пакет model — доменные модели портфолио.
// Project — запись каталога проектов (read-only, загружается один раз при старте).
package model

// Project — проект из каталога портфолио.
// Каталог неизменяем на всё время жизни процесса.
type Project struct {
	// ID — уникальный положительный идентификатор (ключ сортировки и ссылок)
	ID int `yaml:"id" json:"id"`
	// Title — заголовок на языке по умолчанию
	Title string `yaml:"title" json:"title"`
	// Description — описание на языке по умолчанию
	Description string `yaml:"description" json:"description"`
	// TitleByLocale — переопределения заголовка по коду языка (опционально)
	TitleByLocale map[string]string `yaml:"title_i18n,omitempty" json:"title_i18n,omitempty"`
	// DescriptionByLocale — переопределения описания по коду языка (опционально)
	DescriptionByLocale map[string]string `yaml:"description_i18n,omitempty" json:"description_i18n,omitempty"`
	// Category — категория, фильтруется точным совпадением
	Category string `yaml:"category" json:"category"`
	// Technologies — стек технологий (участвует в поиске по подстроке)
	Technologies []string `yaml:"technologies" json:"technologies"`
	// Thumbnail — URL превью для галереи
	Thumbnail string `yaml:"thumbnail" json:"thumbnail"`
	// Images — URL изображений для детального просмотра (не пустой)
	Images []string `yaml:"images" json:"images"`
	// Duration — срок работы над проектом (только для отображения)
	Duration string `yaml:"duration" json:"duration"`
	// Link — ссылка на живую версию (опционально)
	Link string `yaml:"link,omitempty" json:"link,omitempty"`
	// GitHub — ссылка на репозиторий
	GitHub string `yaml:"github" json:"github"`
}

// LocalizedTitle возвращает заголовок для указанного языка.
func (p *Project) LocalizedTitle(locale string) string {
	return Localize(p.TitleByLocale, locale, p.Title)
}

// LocalizedDescription возвращает описание для указанного языка.
func (p *Project) LocalizedDescription(locale string) string {
	return Localize(p.DescriptionByLocale, locale, p.Description)
}

// Localize возвращает table[locale], если значение есть и не пустое,
// иначе — значение по умолчанию.
func Localize(table map[string]string, locale, fallback string) string {
	if s, ok := table[locale]; ok && s != "" {
		return s
	}
	return fallback
}

// ImageIndex нормализует индекс изображения по модулю len(Images).
// Отрицательные индексы отсчитываются с конца.
// Для проекта без изображений возвращает 0.
func (p *Project) ImageIndex(i int) int {
	n := len(p.Images)
	if n == 0 {
		return 0
	}
	return ((i % n) + n) % n
}

// NextImage — индекс следующего изображения (с переходом на первое).
func (p *Project) NextImage(i int) int {
	return p.ImageIndex(p.ImageIndex(i) + 1)
}

// PrevImage — индекс предыдущего изображения (с переходом на последнее).
func (p *Project) PrevImage(i int) int {
	return p.ImageIndex(p.ImageIndex(i) - 1)
}

// Image возвращает URL изображения по нормализованному индексу.
func (p *Project) Image(i int) string {
	if len(p.Images) == 0 {
		return ""
	}
	return p.Images[p.ImageIndex(i)]
}
