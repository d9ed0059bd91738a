package availability

import (
	"context"
	"errors"
	"fmt"
	"time"

	catalogRepo "github.com/m04kA/SMC-ParkingService/internal/infra/storage/catalog"
)

// Service проверка доступности слота на временной интервал.
//
// Репозитории читают executor из контекста, поэтому при вызове внутри
// сериализуемой транзакции (usecase создания бронирования) проверка и
// последующая запись образуют одну атомарную единицу.
type Service struct {
	catalogRepo CatalogRepository
	bookingRepo BookingRepository
	logger      Logger
}

// NewService создает новый экземпляр сервиса проверки доступности
func NewService(catalogRepo CatalogRepository, bookingRepo BookingRepository, logger Logger) *Service {
	return &Service{
		catalogRepo: catalogRepo,
		bookingRepo: bookingRepo,
		logger:      logger,
	}
}

// IsAvailable проверяет, свободен ли слот на интервал [start, end).
//
// Слот недоступен, если он на обслуживании, деактивирован, либо существует
// блокирующее (pending/active) бронирование с пересекающимся окном.
// Граничащие интервалы пересечением не считаются.
func (s *Service) IsAvailable(ctx context.Context, slotID int64, start, end time.Time) (bool, error) {
	slot, err := s.catalogRepo.GetSlot(ctx, slotID)
	if err != nil {
		if errors.Is(err, catalogRepo.ErrSlotNotFound) {
			return false, ErrSlotNotFound
		}
		return false, fmt.Errorf("%w: IsAvailable - get slot: %v", ErrInternal, err)
	}

	if !slot.IsBookable() {
		s.logger.Info("IsAvailable: slot id=%d not bookable (status=%s, active=%t)",
			slotID, slot.Status, slot.IsActive)
		return false, nil
	}

	overlapping, err := s.bookingRepo.ListOverlapping(ctx, slotID, start, end)
	if err != nil {
		return false, fmt.Errorf("%w: IsAvailable - list overlapping bookings: %v", ErrInternal, err)
	}

	if len(overlapping) > 0 {
		s.logger.Info("IsAvailable: slot id=%d has %d overlapping booking(s) in [%s, %s)",
			slotID, len(overlapping), start.Format(time.RFC3339), end.Format(time.RFC3339))
		return false, nil
	}

	return true, nil
}
