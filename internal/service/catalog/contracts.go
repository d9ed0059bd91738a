package catalog

import (
	"context"

	"github.com/m04kA/SMC-ParkingService/internal/domain"
)

// CatalogRepository интерфейс репозитория каталога
type CatalogRepository interface {
	CreateLocation(ctx context.Context, location *domain.Location) (*domain.Location, error)
	GetLocation(ctx context.Context, id int64) (*domain.Location, error)
	GetLocationForUpdate(ctx context.Context, id int64) (*domain.Location, error)
	ListLocations(ctx context.Context, includeInactive bool) ([]*domain.Location, error)
	UpdateLocation(ctx context.Context, location *domain.Location) error
	DeleteLocation(ctx context.Context, id int64) error
	CountSlotsByLocation(ctx context.Context, locationID int64) (int, error)

	CreateSlot(ctx context.Context, slot *domain.Slot) (*domain.Slot, error)
	GetSlot(ctx context.Context, id int64) (*domain.Slot, error)
	GetSlotForUpdate(ctx context.Context, id int64) (*domain.Slot, error)
	ListSlots(ctx context.Context, filter domain.SlotFilter) ([]*domain.Slot, error)
	UpdateSlot(ctx context.Context, slot *domain.Slot) error
	DeleteSlot(ctx context.Context, id int64) error
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
