// Пакет server — HTTP-сервер портфолио с graceful shutdown.
// Один процесс обслуживает страницы сайта, статику, JSON API, health и metrics.
package server

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	apierrors "github.com/bigkaa/portfolio/internal/api/errors"
	"github.com/bigkaa/portfolio/internal/api/handlers"
	"github.com/bigkaa/portfolio/internal/api/middleware"
	"github.com/bigkaa/portfolio/internal/api/openapi"
	"github.com/bigkaa/portfolio/internal/config"
	"github.com/bigkaa/portfolio/internal/ui/i18n"
	uihandlers "github.com/bigkaa/portfolio/internal/ui/handlers"
	"github.com/bigkaa/portfolio/internal/ui/static"
)

// Handlers — обработчики, которые сервер монтирует на маршруты.
type Handlers struct {
	// API — JSON API и health endpoints
	API *handlers.APIHandler
	// Validator — проверка запросов /api/v1 по OpenAPI контракту (nil — без проверки)
	Validator *openapi.Validator
	// Site — страницы каталога
	Site *uihandlers.SiteHandler
	// Contact — страница и форма обратной связи
	Contact *uihandlers.ContactHandler
}

// Server — HTTP-сервер портфолио.
type Server struct {
	httpServer *http.Server
	logger     *slog.Logger
	cfg        *config.Config
}

// New создаёт новый HTTP-сервер с настроенными routes и middleware.
func New(cfg *config.Config, logger *slog.Logger, h Handlers) *Server {
	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      NewRouter(cfg, logger, h),
		ReadTimeout:  cfg.HTTPReadTimeout,
		WriteTimeout: cfg.HTTPWriteTimeout,
		IdleTimeout:  cfg.HTTPIdleTimeout,
	}

	return &Server{
		httpServer: srv,
		logger:     logger,
		cfg:        cfg,
	}
}

// NewRouter собирает chi-маршрутизатор:
//
//	/                    — главная
//	/projects            — каталог (поиск, фильтр по категории)
//	/projects/{id}       — детальный просмотр (?image=N)
//	/contact             — форма обратной связи (GET, POST)
//	/set-language        — смена языка (POST)
//	/static/*            — встроенная статика
//	/api/v1/*            — JSON API
//	/health/live, /health/ready, /metrics
func NewRouter(cfg *config.Config, logger *slog.Logger, h Handlers) http.Handler {
	router := chi.NewRouter()

	// Глобальные middleware (применяются ко ВСЕМ маршрутам)
	router.Use(middleware.RequestID())
	if cfg.TrustProxy {
		router.Use(chimw.RealIP)
	}
	router.Use(middleware.MetricsMiddleware())
	router.Use(middleware.RequestLogger(logger))
	router.Use(chimw.Recoverer)

	// Health и metrics — без определения языка
	router.Get("/health/live", h.API.HealthLive)
	router.Get("/health/ready", h.API.HealthReady)
	router.Get("/metrics", h.API.GetMetrics)

	router.Handle("/static/*", http.StripPrefix("/static", http.FileServer(static.FileSystem())))

	router.Route("/api/v1", func(r chi.Router) {
		r.Use(middleware.Language())

		// OpenAPI документ — вне валидатора, в контракте его нет
		r.Method(http.MethodGet, "/openapi.yaml", openapi.Handler())

		r.Group(func(r chi.Router) {
			if h.Validator != nil {
				r.Use(h.Validator.Middleware())
			}
			h.API.Routes(r)
		})

		r.NotFound(func(w http.ResponseWriter, r *http.Request) {
			apierrors.NotFound(w, i18n.T(r.Context(), "api.error.not_found"))
		})
		r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
			apierrors.MethodNotAllowed(w, i18n.T(r.Context(), "api.error.bad_request"))
		})
	})

	// Страницы сайта: язык из ?lang= сохраняется в cookie
	router.Group(func(r chi.Router) {
		r.Use(i18n.Middleware(cfg.CookieSecure))

		r.Get("/", h.Site.HandleHome)
		r.Get("/projects", h.Site.HandleProjects)
		r.Get("/projects/{id}", h.Site.HandleProject)
		r.Get("/contact", h.Contact.HandleContact)
		r.Post("/contact", h.Contact.HandleSubmit)
		r.Post("/set-language", uihandlers.SetLanguage(cfg.CookieSecure))
	})

	// Неизвестные пути — страница 404 на языке посетителя
	router.With(i18n.Middleware(cfg.CookieSecure)).NotFound(h.Site.HandleNotFound)

	return router
}

// Run запускает сервер и ожидает сигнала завершения (SIGINT, SIGTERM).
// При получении сигнала выполняется graceful shutdown.
func (s *Server) Run() error {
	// Канал для ошибок сервера
	errCh := make(chan error, 1)

	go func() {
		s.logger.Info("HTTP-сервер запущен",
			slog.String("addr", s.httpServer.Addr),
		)

		err := s.httpServer.ListenAndServe()
		if err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
		close(errCh)
	}()

	// Ожидание сигнала завершения
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-quit:
		s.logger.Info("Получен сигнал завершения", slog.String("signal", sig.String()))
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("ошибка HTTP-сервера: %w", err)
		}
	}

	// Graceful shutdown
	ctx, cancel := context.WithTimeout(context.Background(), s.cfg.ShutdownTimeout)
	defer cancel()

	s.logger.Info("Выполняется graceful shutdown...")
	if err := s.httpServer.Shutdown(ctx); err != nil {
		return fmt.Errorf("ошибка при graceful shutdown: %w", err)
	}

	s.logger.Info("HTTP-сервер остановлен")
	return nil
}
