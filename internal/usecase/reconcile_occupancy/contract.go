package reconcile_occupancy

import (
	"context"

	"github.com/m04kA/SMC-ParkingService/internal/domain"
)

// CatalogRepository интерфейс репозитория каталога
type CatalogRepository interface {
	GetLocationForUpdate(ctx context.Context, id int64) (*domain.Location, error)
	CountHeldSlots(ctx context.Context, locationID int64) (domain.CountByClass, error)
	UpdateOccupancy(ctx context.Context, locationID int64, occupancy domain.CountByClass) error
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
