// Пакет filter — движок фильтрации каталога проектов.
// Чистая функция: (каталог, поисковая строка, категория) → упорядоченная
// подпоследовательность каталога. Без состояния и побочных эффектов.
package filter

import (
	"strings"

	"golang.org/x/text/cases"

	"github.com/bigkaa/portfolio/internal/domain/model"
)

// Category — выбранная категория или маркер «все категории».
// Маркер нельзя получить из строки: Only("") и Only("All") — обычные категории.
type Category struct {
	name string
	all  bool
}

// All возвращает маркер «без фильтра по категории».
func All() Category {
	return Category{all: true}
}

// Only возвращает фильтр по конкретной категории (точное совпадение).
func Only(name string) Category {
	return Category{name: name}
}

// IsAll сообщает, является ли значение маркером «все категории».
func (c Category) IsAll() bool {
	return c.all
}

// Name — имя категории. Для маркера All — пустая строка.
func (c Category) Name() string {
	return c.name
}

// String — представление для логов.
func (c Category) String() string {
	if c.all {
		return "<all>"
	}
	return c.name
}

// Matches проверяет категорию записи.
func (c Category) Matches(category string) bool {
	return c.all || c.name == category
}

// Apply возвращает проекты каталога, удовлетворяющие запросу и категории,
// в исходном порядке. Пустой query совпадает со всеми записями.
// Результат никогда не nil; пустой срез — валидный результат «ничего не найдено».
func Apply(catalog []model.Project, query string, category Category) []model.Project {
	folder := cases.Fold()
	needle := folder.String(query)

	result := make([]model.Project, 0, len(catalog))
	for i := range catalog {
		p := &catalog[i]
		if !category.Matches(p.Category) {
			continue
		}
		if needle != "" && !matchText(folder, p, needle) {
			continue
		}
		result = append(result, *p)
	}
	return result
}

// matchText — регистронезависимый поиск подстроки в title, description и technologies.
func matchText(folder cases.Caser, p *model.Project, needle string) bool {
	if strings.Contains(folder.String(p.Title), needle) {
		return true
	}
	if strings.Contains(folder.String(p.Description), needle) {
		return true
	}
	for _, tech := range p.Technologies {
		if strings.Contains(folder.String(tech), needle) {
			return true
		}
	}
	return false
}

// Categories возвращает различные категории каталога в порядке первого появления.
func Categories(catalog []model.Project) []string {
	seen := make(map[string]struct{}, len(catalog))
	var out []string
	for i := range catalog {
		c := catalog[i].Category
		if _, ok := seen[c]; ok {
			continue
		}
		seen[c] = struct{}{}
		out = append(out, c)
	}
	return out
}
