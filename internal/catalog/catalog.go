// Пакет catalog — загрузка каталога проектов и профиля владельца.
// Данные встраиваются в бинарник (data/*.yaml) либо читаются из внешней
// директории. Каждый файл проверяется JSON Schema, затем семантически.
// Загруженный каталог неизменяем.
package catalog

import (
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/bigkaa/portfolio/internal/domain/model"
)

//go:embed data/*.yaml
var dataFS embed.FS

const (
	// ProjectsFile — файл каталога проектов
	ProjectsFile = "projects.yaml"
	// ProfileFile — файл профиля владельца
	ProfileFile = "profile.yaml"
)

// ErrInvalid — каталог не прошёл проверку (схема или семантика).
var ErrInvalid = errors.New("невалидный каталог")

// Catalog — загруженные данные портфолио.
type Catalog struct {
	// Projects — проекты в порядке файла
	Projects []model.Project
	// Profile — сведения о владельце
	Profile model.Profile
	// Source — откуда загружен каталог ("embedded" или путь к директории)
	Source string
}

// LoadEmbedded загружает каталог, встроенный в бинарник.
func LoadEmbedded() (*Catalog, error) {
	sub, err := fs.Sub(dataFS, "data")
	if err != nil {
		return nil, fmt.Errorf("встроенные данные каталога: %w", err)
	}
	c, err := Load(sub)
	if err != nil {
		return nil, err
	}
	c.Source = "embedded"
	return c, nil
}

// LoadDir загружает каталог из директории dir (projects.yaml, profile.yaml).
func LoadDir(dir string) (*Catalog, error) {
	info, err := os.Stat(dir)
	if err != nil {
		return nil, fmt.Errorf("директория каталога: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("директория каталога: %s не является директорией", dir)
	}
	c, err := Load(os.DirFS(dir))
	if err != nil {
		return nil, err
	}
	c.Source = dir
	return c, nil
}

// Load читает и проверяет каталог из произвольной файловой системы.
func Load(fsys fs.FS) (*Catalog, error) {
	var doc struct {
		Projects []model.Project `yaml:"projects"`
	}
	if err := decodeFile(fsys, ProjectsFile, projectsSchema, &doc); err != nil {
		return nil, err
	}

	var profile model.Profile
	if err := decodeFile(fsys, ProfileFile, profileSchema, &profile); err != nil {
		return nil, err
	}

	if err := Validate(doc.Projects); err != nil {
		return nil, err
	}
	if doc.Projects == nil {
		doc.Projects = []model.Project{}
	}

	return &Catalog{Projects: doc.Projects, Profile: profile}, nil
}

// Validate проверяет семантические инварианты каталога:
// ID уникальны и положительны, категория не пуста, у проекта есть изображения.
func Validate(projects []model.Project) error {
	seen := make(map[int]struct{}, len(projects))
	for i := range projects {
		p := &projects[i]
		if p.ID <= 0 {
			return fmt.Errorf("%w: проект #%d: id должен быть положительным, получено %d", ErrInvalid, i, p.ID)
		}
		if _, dup := seen[p.ID]; dup {
			return fmt.Errorf("%w: проект #%d: повторяющийся id %d", ErrInvalid, i, p.ID)
		}
		seen[p.ID] = struct{}{}
		if p.Category == "" {
			return fmt.Errorf("%w: проект %d: пустая категория", ErrInvalid, p.ID)
		}
		if len(p.Images) == 0 {
			return fmt.Errorf("%w: проект %d: нет изображений", ErrInvalid, p.ID)
		}
	}
	return nil
}

// decodeFile читает YAML-файл, проверяет его схемой и декодирует в dst.
func decodeFile(fsys fs.FS, name, schemaName string, dst any) error {
	data, err := fs.ReadFile(fsys, name)
	if err != nil {
		return fmt.Errorf("чтение %s: %w", name, err)
	}

	var raw any
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("разбор %s: %w", name, err)
	}
	if err := validateSchema(schemaName, raw); err != nil {
		return fmt.Errorf("%w: %s: %v", ErrInvalid, name, err)
	}

	if err := yaml.Unmarshal(data, dst); err != nil {
		return fmt.Errorf("декодирование %s: %w", name, err)
	}
	return nil
}

// CheckReady — readiness каталога: загружен и откуда.
func (c *Catalog) CheckReady() (status, message string) {
	if c == nil {
		return "fail", "каталог не загружен"
	}
	return "ok", fmt.Sprintf("источник: %s, проектов: %d", c.Source, len(c.Projects))
}
