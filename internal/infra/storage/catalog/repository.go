package catalog

import (
	"errors"

	"github.com/lib/pq"
)

// Код ошибки PostgreSQL для unique_violation
const pqUniqueViolation = "23505"

// Repository репозиторий каталога: локации и слоты парковки
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория каталога
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// isUniqueViolation определяет нарушение уникального ограничения
func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return string(pqErr.Code) == pqUniqueViolation
	}
	return false
}
