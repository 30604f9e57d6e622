// Пакет repository — слой доступа к каталогу портфолио.
// Каталог загружается один раз при старте и больше не меняется,
// поэтому реализация — in-memory, без блокировок.
package repository

import (
	"errors"
)

// Ошибки слоя репозиториев.
var (
	// ErrNotFound — запись не найдена.
	ErrNotFound = errors.New("запись не найдена")
)
