package repository

import (
	"context"

	"github.com/bigkaa/portfolio/internal/catalog"
	"github.com/bigkaa/portfolio/internal/domain/filter"
	"github.com/bigkaa/portfolio/internal/domain/model"
)

// SearchParams — параметры поиска проектов.
type SearchParams struct {
	// Query — поисковая строка (пусто = без текстового фильтра)
	Query string
	// Category — категория (nil = все категории)
	Category *string
}

// FilterCategory возвращает категорию движка фильтрации.
// nil означает «все категории»; любая строка, включая пустую, — конкретную.
func (p SearchParams) FilterCategory() filter.Category {
	if p.Category == nil {
		return filter.All()
	}
	return filter.Only(*p.Category)
}

// ProjectRepository — read-only доступ к каталогу проектов.
type ProjectRepository interface {
	// All возвращает все проекты в порядке каталога.
	All(ctx context.Context) []model.Project
	// GetByID возвращает проект по ID или ErrNotFound.
	GetByID(ctx context.Context, id int) (*model.Project, error)
	// Search фильтрует каталог.
	// Возвращает: найденные проекты, размер каталога, ошибка.
	Search(ctx context.Context, params SearchParams) ([]model.Project, int, error)
	// Categories возвращает различные категории в порядке первого появления.
	Categories(ctx context.Context) []string
	// Neighbours возвращает соседние проекты в порядке каталога.
	// nil — соседа нет (первый или последний проект).
	Neighbours(ctx context.Context, id int) (prev, next *model.Project, err error)
}

// ProfileRepository — доступ к профилю владельца.
type ProfileRepository interface {
	// Profile возвращает профиль владельца.
	Profile(ctx context.Context) model.Profile
}

// CatalogRepository — реализация ProjectRepository и ProfileRepository поверх неизменяемого каталога.
type CatalogRepository struct {
	projects   []model.Project
	profile    model.Profile
	index      map[int]int // id → позиция в projects
	categories []string
}

var (
	_ ProjectRepository = (*CatalogRepository)(nil)
	_ ProfileRepository = (*CatalogRepository)(nil)
)

// NewCatalogRepository создаёт репозиторий поверх загруженного каталога.
// Каталог уже проверен загрузчиком (уникальные положительные ID).
func NewCatalogRepository(c *catalog.Catalog) *CatalogRepository {
	index := make(map[int]int, len(c.Projects))
	for i := range c.Projects {
		index[c.Projects[i].ID] = i
	}
	return &CatalogRepository{
		projects:   c.Projects,
		profile:    c.Profile,
		index:      index,
		categories: filter.Categories(c.Projects),
	}
}

// All возвращает копию среза проектов.
func (r *CatalogRepository) All(_ context.Context) []model.Project {
	out := make([]model.Project, len(r.projects))
	copy(out, r.projects)
	return out
}

// GetByID возвращает проект по ID или ErrNotFound.
func (r *CatalogRepository) GetByID(_ context.Context, id int) (*model.Project, error) {
	i, ok := r.index[id]
	if !ok {
		return nil, ErrNotFound
	}
	p := r.projects[i]
	return &p, nil
}

// Search применяет движок фильтрации к каталогу.
func (r *CatalogRepository) Search(ctx context.Context, params SearchParams) ([]model.Project, int, error) {
	if err := ctx.Err(); err != nil {
		return nil, 0, err
	}
	return filter.Apply(r.projects, params.Query, params.FilterCategory()), len(r.projects), nil
}

// Categories возвращает копию списка категорий.
func (r *CatalogRepository) Categories(_ context.Context) []string {
	out := make([]string, len(r.categories))
	copy(out, r.categories)
	return out
}

// Neighbours возвращает предыдущий и следующий проекты относительно id.
func (r *CatalogRepository) Neighbours(_ context.Context, id int) (prev, next *model.Project, err error) {
	i, ok := r.index[id]
	if !ok {
		return nil, nil, ErrNotFound
	}
	if i > 0 {
		p := r.projects[i-1]
		prev = &p
	}
	if i < len(r.projects)-1 {
		n := r.projects[i+1]
		next = &n
	}
	return prev, next, nil
}

// Profile возвращает профиль владельца.
func (r *CatalogRepository) Profile(_ context.Context) model.Profile {
	return r.profile
}
