package create_booking

import (
	"context"
	"time"

	"github.com/m04kA/SMC-ParkingService/internal/domain"
)

// CatalogRepository интерфейс репозитория каталога
type CatalogRepository interface {
	GetSlotForUpdate(ctx context.Context, id int64) (*domain.Slot, error)
	GetLocationForUpdate(ctx context.Context, id int64) (*domain.Location, error)
	UpdateSlotStatus(ctx context.Context, id int64, status domain.SlotStatus) error
	UpdateOccupancy(ctx context.Context, locationID int64, occupancy domain.CountByClass) error
}

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	Create(ctx context.Context, booking *domain.Booking) (*domain.Booking, error)
}

// AvailabilityChecker интерфейс проверки доступности слота
type AvailabilityChecker interface {
	IsAvailable(ctx context.Context, slotID int64, start, end time.Time) (bool, error)
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
