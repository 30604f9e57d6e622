// loader.go — загрузка каталогов переводов из embed.FS.
package i18n

import (
	"fmt"
	"log/slog"
)

// LoadFromEmbedFS загружает все каталоги переводов из встроенной файловой системы.
// Ожидаемые файлы: locales/en.json, locales/zh.json, locales/ms.json.
// Ключи, отсутствующие в переводе, логируются (будет показан английский текст).
func LoadFromEmbedFS(bundle *Bundle, logger *slog.Logger) error {
	for _, l := range Languages {
		path := fmt.Sprintf("locales/%s.json", l.Code)
		data, err := LocaleFS.ReadFile(path)
		if err != nil {
			return fmt.Errorf("i18n: не удалось прочитать %s: %w", path, err)
		}

		if err := bundle.LoadMessages(l.Code, data); err != nil {
			return err
		}
	}

	for _, l := range Languages {
		if missing := bundle.MissingKeys(l.Code); len(missing) > 0 {
			logger.Warn("i18n: в каталоге нет ключей, используется английский",
				slog.String("lang", l.Code),
				slog.Int("missing", len(missing)),
			)
		}
	}

	logger.Info("i18n каталоги загружены", slog.Int("languages", len(Languages)))
	return nil
}
