// schema.go — проверка файлов каталога по встроенным JSON Schema.
package catalog

import (
	"bytes"
	"embed"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

//go:embed schema/*.json
var schemaFS embed.FS

const (
	projectsSchema = "projects.schema.json"
	profileSchema  = "profile.schema.json"

	schemaBaseURL = "https://portfolio.local/schema/"
)

var (
	schemasOnce sync.Once
	schemas     map[string]*jsonschema.Schema
	schemasErr  error
)

// compiledSchemas компилирует встроенные схемы один раз за процесс.
func compiledSchemas() (map[string]*jsonschema.Schema, error) {
	schemasOnce.Do(func() {
		c := jsonschema.NewCompiler()
		c.Draft = jsonschema.Draft2020

		names := []string{projectsSchema, profileSchema}
		for _, name := range names {
			data, err := schemaFS.ReadFile("schema/" + name)
			if err != nil {
				schemasErr = fmt.Errorf("чтение схемы %s: %w", name, err)
				return
			}
			if err := c.AddResource(schemaBaseURL+name, bytes.NewReader(data)); err != nil {
				schemasErr = fmt.Errorf("загрузка схемы %s: %w", name, err)
				return
			}
		}

		schemas = make(map[string]*jsonschema.Schema, len(names))
		for _, name := range names {
			s, err := c.Compile(schemaBaseURL + name)
			if err != nil {
				schemasErr = fmt.Errorf("компиляция схемы %s: %w", name, err)
				return
			}
			schemas[name] = s
		}
	})
	return schemas, schemasErr
}

// validateSchema проверяет документ, разобранный из YAML, схемой name.
// Документ предварительно приводится к JSON-типам (числа — float64).
func validateSchema(name string, doc any) error {
	all, err := compiledSchemas()
	if err != nil {
		return err
	}
	s, ok := all[name]
	if !ok {
		return fmt.Errorf("неизвестная схема %s", name)
	}

	data, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("преобразование в JSON: %w", err)
	}
	var v any
	if err := json.Unmarshal(data, &v); err != nil {
		return fmt.Errorf("преобразование в JSON: %w", err)
	}
	return s.Validate(v)
}
