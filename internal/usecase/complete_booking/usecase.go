package complete_booking

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-ParkingService/internal/domain"
	bookingRepo "github.com/m04kA/SMC-ParkingService/internal/infra/storage/booking"
	catalogRepo "github.com/m04kA/SMC-ParkingService/internal/infra/storage/catalog"
	"github.com/m04kA/SMC-ParkingService/pkg/txmanager"
)

// UseCase use case завершения бронирования
type UseCase struct {
	catalogRepo  CatalogRepository
	bookingRepo  BookingRepository
	txManager    TransactionManager
	timeProvider TimeProvider
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	catalogRepo CatalogRepository,
	bookingRepo BookingRepository,
	txManager TransactionManager,
	logger Logger,
) *UseCase {
	return &UseCase{
		catalogRepo:  catalogRepo,
		bookingRepo:  bookingRepo,
		txManager:    txManager,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// Execute выполняет use case завершения бронирования.
//
// Бронирование блокируется по строке (FOR UPDATE): два конкурирующих
// complete/cancel по одному бронированию сериализуются, occupancy
// освобождается ровно один раз. Запись статуса, освобождение слота и
// декремент occupancy атомарны.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CompleteBooking: booking=%d, actor=%d (role=%s)",
		req.BookingID, req.Actor.UserID, req.Actor.Role)

	if req.BookingID <= 0 {
		return nil, fmt.Errorf("%w: bookingID must be positive", ErrInvalidInput)
	}
	if req.Actor.UserID <= 0 {
		return nil, fmt.Errorf("%w: actor is required", ErrInvalidInput)
	}

	var result *domain.Booking

	err := uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// 1. Блокируем бронирование
		booking, err := uc.bookingRepo.GetByIDForUpdate(txCtx, req.BookingID)
		if err != nil {
			if errors.Is(err, bookingRepo.ErrBookingNotFound) {
				uc.logger.Warn("CompleteBooking: booking id=%d not found", req.BookingID)
				return ErrBookingNotFound
			}
			uc.logger.Error("CompleteBooking: failed to get booking id=%d: %v", req.BookingID, err)
			return fmt.Errorf("%w: failed to get booking: %v", ErrInternal, err)
		}

		// 2. Завершить может владелец или администратор
		if !req.Actor.MayManage(booking) {
			uc.logger.Warn("CompleteBooking: actor=%d forbidden for booking id=%d (owner=%d)",
				req.Actor.UserID, booking.ID, booking.UserID)
			return ErrForbidden
		}

		// 3. Переход статуса через lifecycle-машину.
		// Повторный complete по завершённому бронированию падает здесь,
		// не трогая слот и occupancy.
		if err := booking.Transition(domain.StatusCompleted); err != nil {
			uc.logger.Warn("CompleteBooking: booking id=%d cannot be completed, status=%s",
				booking.ID, booking.Status)
			return ErrInvalidStateTransition
		}

		// 4. Фиксируем статус и фактическое время окончания
		now := uc.timeProvider.Now()
		booking.EndTime = now
		if err := uc.bookingRepo.UpdateStatus(txCtx, booking.ID, domain.StatusCompleted, &now); err != nil {
			uc.logger.Error("CompleteBooking: failed to update booking id=%d: %v", booking.ID, err)
			return fmt.Errorf("%w: failed to update booking: %v", ErrInternal, err)
		}

		// 5. Освобождаем слот и occupancy
		if err := uc.releaseSlot(txCtx, booking); err != nil {
			return err
		}

		result = booking
		return nil
	})

	if err != nil {
		if errors.Is(err, txmanager.ErrSerializationFailure) {
			uc.logger.Warn("CompleteBooking: serialization conflict on booking id=%d", req.BookingID)
			return nil, ErrConflict
		}
		return nil, err
	}

	uc.logger.Info("CompleteBooking: successfully completed booking id=%d", result.ID)
	return toResponse(result), nil
}

// releaseSlot возвращает слот в available и декрементирует occupancy локации.
// Декремент ограничен нулём: внешний дрейф счетчиков не должен уводить
// occupancy в минус.
func (uc *UseCase) releaseSlot(ctx context.Context, booking *domain.Booking) error {
	slot, err := uc.catalogRepo.GetSlotForUpdate(ctx, booking.SlotID)
	if err != nil {
		if errors.Is(err, catalogRepo.ErrSlotNotFound) {
			// Слот исчез из каталога: бронирование всё равно завершаем,
			// реконсилятор выправит счетчики
			uc.logger.Warn("CompleteBooking: slot id=%d for booking id=%d no longer exists",
				booking.SlotID, booking.ID)
			return nil
		}
		uc.logger.Error("CompleteBooking: failed to get slot id=%d: %v", booking.SlotID, err)
		return fmt.Errorf("%w: failed to get slot: %v", ErrInternal, err)
	}

	// Слот всегда возвращается в available, из какого бы held-статуса
	// (reserved или occupied) он ни выходил
	if err := uc.catalogRepo.UpdateSlotStatus(ctx, slot.ID, domain.SlotAvailable); err != nil {
		uc.logger.Error("CompleteBooking: failed to release slot id=%d: %v", slot.ID, err)
		return fmt.Errorf("%w: failed to release slot: %v", ErrInternal, err)
	}

	location, err := uc.catalogRepo.GetLocationForUpdate(ctx, booking.LocationID)
	if err != nil {
		uc.logger.Error("CompleteBooking: failed to get location id=%d: %v", booking.LocationID, err)
		return fmt.Errorf("%w: failed to get location: %v", ErrInternal, err)
	}

	occupancy := location.Occupancy
	if occupancy.Get(booking.VehicleClass) > 0 {
		occupancy.Add(booking.VehicleClass, -1)
	} else {
		uc.logger.Warn("CompleteBooking: occupancy for location id=%d class=%s already zero (drift?)",
			location.ID, booking.VehicleClass)
	}

	if err := uc.catalogRepo.UpdateOccupancy(ctx, location.ID, occupancy); err != nil {
		uc.logger.Error("CompleteBooking: failed to update occupancy for location id=%d: %v", location.ID, err)
		return fmt.Errorf("%w: failed to update occupancy: %v", ErrInternal, err)
	}

	return nil
}
