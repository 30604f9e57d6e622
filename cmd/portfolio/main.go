// Точка входа портфолио — сайт-визитка с каталогом проектов.
// Загружает конфигурацию (переменные окружения и .env), переводы, каталог
// проектов, создаёт почтовый отправитель формы обратной связи, сервисный слой,
// страницы и JSON API, запускает topologymetrics и HTTP-сервер с graceful shutdown.
package main

import (
	"context"
	"log/slog"
	"os"

	_ "github.com/joho/godotenv/autoload"

	"github.com/bigkaa/portfolio/internal/api/handlers"
	"github.com/bigkaa/portfolio/internal/api/openapi"
	"github.com/bigkaa/portfolio/internal/catalog"
	"github.com/bigkaa/portfolio/internal/config"
	"github.com/bigkaa/portfolio/internal/mailer"
	"github.com/bigkaa/portfolio/internal/repository"
	"github.com/bigkaa/portfolio/internal/server"
	"github.com/bigkaa/portfolio/internal/service"
	"github.com/bigkaa/portfolio/internal/ui/i18n"
	uihandlers "github.com/bigkaa/portfolio/internal/ui/handlers"
)

func main() {
	// 1. Загрузка конфигурации из переменных окружения
	cfg, err := config.Load()
	if err != nil {
		slog.Error("Ошибка загрузки конфигурации", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// 2. Настройка логирования
	logger := config.SetupLogger(cfg)
	logger.Info("Портфолио запускается",
		slog.String("version", config.Version),
		slog.Int("port", cfg.Port),
	)

	// 3. Переводы интерфейса
	bundle := i18n.Init(logger)
	if err := i18n.LoadFromEmbedFS(bundle, logger); err != nil {
		logger.Error("Ошибка загрузки переводов", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// 4. Каталог проектов и профиль
	var cat *catalog.Catalog
	if cfg.CatalogDir != "" {
		cat, err = catalog.LoadDir(cfg.CatalogDir)
	} else {
		cat, err = catalog.LoadEmbedded()
	}
	if err != nil {
		logger.Error("Ошибка загрузки каталога", slog.String("error", err.Error()))
		os.Exit(1)
	}
	logger.Info("Каталог загружен",
		slog.String("source", cat.Source),
		slog.Int("projects", len(cat.Projects)),
	)

	// 5. Почтовый отправитель формы обратной связи
	var sender mailer.Sender
	switch cfg.MailProvider {
	case config.MailProviderEmailJS:
		client, clientErr := mailer.NewEmailJSClient(mailer.EmailJSConfig{
			BaseURL:    cfg.EmailJSURL,
			ServiceID:  cfg.EmailJSServiceID,
			TemplateID: cfg.EmailJSTemplateID,
			PublicKey:  cfg.EmailJSPublicKey,
			PrivateKey: cfg.EmailJSPrivateKey,
			CACertPath: cfg.MailCACertPath,
			Timeout:    cfg.MailTimeout,
		}, logger)
		if clientErr != nil {
			logger.Error("Ошибка создания EmailJS клиента", slog.String("error", clientErr.Error()))
			os.Exit(1)
		}
		sender = client
	default:
		logger.Warn("PF_MAIL_PROVIDER=log: письма с формы только пишутся в лог")
		sender = mailer.NewLogSender(logger)
	}

	// 6. Services
	repo := repository.NewCatalogRepository(cat)
	projectSvc := service.NewProjectService(repo, repo, logger)

	limiter := service.NewRateLimiter(cfg.ContactInterval, cfg.ContactBurst, cfg.RateLimitClients)
	recipient := service.Recipient{
		Name:  cat.Profile.Name,
		Email: cat.Profile.Email,
	}
	contactSvc := service.NewContactService(sender, limiter, recipient, cfg.MailTimeout, logger)

	// 7. topologymetrics — мониторинг почтового сервиса (только emailjs)
	ctx := context.Background()
	var dephealthSvc *service.DephealthService
	if cfg.DephealthActive() {
		if os.Getenv("PF_DEPHEALTH_GROUP") == "" {
			logger.Warn("PF_DEPHEALTH_GROUP не задана, используется значение по умолчанию",
				slog.String("default", cfg.DephealthGroup),
			)
		}

		var dephealthErr error
		dephealthSvc, dephealthErr = service.NewDephealthService(service.DephealthConfig{
			ServiceID:      "portfolio",
			Group:          cfg.DephealthGroup,
			MailURL:        cfg.EmailJSURL,
			MailHealthPath: cfg.DephealthMailHealthPath,
			CheckInterval:  cfg.DephealthCheckInterval,
			IsEntry:        cfg.DephealthIsEntry,
		}, logger)
		if dephealthErr != nil {
			logger.Warn("topologymetrics недоступен, запуск без мониторинга зависимостей",
				slog.String("error", dephealthErr.Error()),
			)
			dephealthSvc = nil
		} else if startErr := dephealthSvc.Start(ctx); startErr != nil {
			logger.Warn("Ошибка запуска topologymetrics",
				slog.String("error", startErr.Error()),
			)
			dephealthSvc = nil
		} else {
			logger.Info("topologymetrics запущен",
				slog.String("group", cfg.DephealthGroup),
				slog.String("check_interval", cfg.DephealthCheckInterval.String()),
			)
		}
	}

	// 8. Readiness checkers (каталог + почтовый сервис)
	healthHandler := handlers.NewHealthHandler(cat, service.NewMailChecker(cfg.MailProvider, dephealthSvc))

	// 9. OpenAPI контракт JSON API
	doc, err := openapi.Load(ctx)
	if err != nil {
		logger.Error("Ошибка загрузки OpenAPI документа", slog.String("error", err.Error()))
		os.Exit(1)
	}
	validator, err := openapi.NewValidator(doc, logger)
	if err != nil {
		logger.Error("Ошибка создания OpenAPI валидатора", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// 10. Handlers
	h := server.Handlers{
		API:       handlers.NewAPIHandler(healthHandler, projectSvc, contactSvc, logger),
		Validator: validator,
		Site:      uihandlers.NewSiteHandler(projectSvc, logger),
		Contact:   uihandlers.NewContactHandler(contactSvc, projectSvc, logger),
	}

	// 11. Создание и запуск HTTP-сервера
	srv := server.New(cfg, logger, h)
	if err := srv.Run(); err != nil {
		logger.Error("Ошибка сервера", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// 12. Graceful shutdown фоновых задач
	if dephealthSvc != nil {
		dephealthSvc.Stop()
	}

	logger.Info("Портфолио остановлено")
}
