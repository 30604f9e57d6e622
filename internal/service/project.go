// project.go — сервис каталога проектов: поиск с подсчётом, детальный просмотр.
// Координирует repository, движок фильтрации и Prometheus-метрики.
package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/bigkaa/portfolio/internal/domain/filter"
	"github.com/bigkaa/portfolio/internal/domain/model"
	"github.com/bigkaa/portfolio/internal/repository"
)

// Ошибки сервисного слоя.
var (
	// ErrNotFound — проект не найден.
	ErrNotFound = errors.New("проект не найден")
)

// Prometheus-метрики поиска.
var (
	searchTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "pf_project_search_total",
		Help: "Общее количество поисковых запросов по каталогу.",
	}, []string{"result"})
	searchDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "pf_project_search_duration_seconds",
		Help:    "Длительность фильтрации каталога.",
		Buckets: []float64{.00001, .00005, .0001, .0005, .001, .005, .01},
	})
)

// FeaturedCount — сколько проектов показывать на главной странице.
const FeaturedCount = 3

// SearchResult — результат фильтрации каталога.
type SearchResult struct {
	// Items — найденные проекты в порядке каталога
	Items []model.Project
	// Shown — количество найденных (X в «показано X из Y»)
	Shown int
	// Total — размер каталога (Y)
	Total int
	// Categories — все категории каталога в порядке первого появления
	Categories []string
	// Query — исходная поисковая строка
	Query string
	// Category — применённая категория (или маркер All)
	Category filter.Category
}

// IsEmpty — ничего не найдено.
func (r *SearchResult) IsEmpty() bool {
	return r.Shown == 0
}

// ProjectView — проект с соседями для навигации «предыдущий/следующий».
type ProjectView struct {
	// Project — запрошенный проект
	Project *model.Project
	// Prev — предыдущий проект каталога (nil — нет)
	Prev *model.Project
	// Next — следующий проект каталога (nil — нет)
	Next *model.Project
}

// ProjectService — сервис каталога проектов.
type ProjectService struct {
	projects repository.ProjectRepository
	profiles repository.ProfileRepository
	logger   *slog.Logger
}

// NewProjectService создаёт сервис каталога.
func NewProjectService(
	projects repository.ProjectRepository,
	profiles repository.ProfileRepository,
	logger *slog.Logger,
) *ProjectService {
	return &ProjectService{
		projects: projects,
		profiles: profiles,
		logger:   logger.With(slog.String("component", "project_service")),
	}
}

// Search фильтрует каталог и считает результаты.
// Обновляет Prometheus-метрики (search_total, search_duration_seconds).
func (s *ProjectService) Search(ctx context.Context, params repository.SearchParams) (*SearchResult, error) {
	start := time.Now()

	items, total, err := s.projects.Search(ctx, params)
	if err != nil {
		return nil, fmt.Errorf("поиск проектов: %w", err)
	}

	duration := time.Since(start)
	searchDuration.Observe(duration.Seconds())
	if len(items) == 0 {
		searchTotal.WithLabelValues("empty").Inc()
	} else {
		searchTotal.WithLabelValues("found").Inc()
	}

	category := params.FilterCategory()
	s.logger.Debug("Поиск выполнен",
		slog.String("query", params.Query),
		slog.String("category", category.String()),
		slog.Int("shown", len(items)),
		slog.Int("total", total),
		slog.Duration("duration", duration),
	)

	return &SearchResult{
		Items:      items,
		Shown:      len(items),
		Total:      total,
		Categories: s.projects.Categories(ctx),
		Query:      params.Query,
		Category:   category,
	}, nil
}

// GetProject возвращает проект с соседями или ErrNotFound.
func (s *ProjectService) GetProject(ctx context.Context, id int) (*ProjectView, error) {
	project, err := s.projects.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("получение проекта: %w", err)
	}

	prev, next, err := s.projects.Neighbours(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("соседи проекта %d: %w", id, err)
	}

	return &ProjectView{Project: project, Prev: prev, Next: next}, nil
}

// Featured возвращает первые n проектов каталога для главной страницы.
func (s *ProjectService) Featured(ctx context.Context, n int) []model.Project {
	all := s.projects.All(ctx)
	if n >= 0 && n < len(all) {
		all = all[:n]
	}
	return all
}

// Profile возвращает профиль владельца.
func (s *ProjectService) Profile(ctx context.Context) model.Profile {
	return s.profiles.Profile(ctx)
}

// Total — размер каталога.
func (s *ProjectService) Total(ctx context.Context) int {
	return len(s.projects.All(ctx))
}
