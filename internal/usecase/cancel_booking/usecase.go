package cancel_booking

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-ParkingService/internal/domain"
	bookingRepo "github.com/m04kA/SMC-ParkingService/internal/infra/storage/booking"
	catalogRepo "github.com/m04kA/SMC-ParkingService/internal/infra/storage/catalog"
	"github.com/m04kA/SMC-ParkingService/pkg/txmanager"
)

// UseCase use case отмены бронирования
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

// Execute выполняет use case отмены бронирования.
// Отменить можно только pending/active бронирование; отмена по уже
// терминальному бронированию возвращает ErrInvalidStateTransition
// и не трогает слот и occupancy. Семантика освобождения идентична
// завершению: слот в available, occupancy -1 с ограничением нулём.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CancelBooking: booking=%d, actor=%d (role=%s)",
		req.BookingID, req.Actor.UserID, req.Actor.Role)

	if req.BookingID <= 0 {
		return nil, fmt.Errorf("%w: bookingID must be positive", ErrInvalidInput)
	}
	if req.Actor.UserID <= 0 {
		return nil, fmt.Errorf("%w: actor is required", ErrInvalidInput)
	}
	if req.Reason != nil && len(*req.Reason) > domain.MaxCancellationReasonLength {
		return nil, fmt.Errorf("%w: cancellation reason is too long", ErrInvalidInput)
	}

	var result *domain.Booking

	err := uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// 1. Блокируем бронирование
		booking, err := uc.bookingRepo.GetByIDForUpdate(txCtx, req.BookingID)
		if err != nil {
			if errors.Is(err, bookingRepo.ErrBookingNotFound) {
				uc.logger.Warn("CancelBooking: booking id=%d not found", req.BookingID)
				return ErrBookingNotFound
			}
			uc.logger.Error("CancelBooking: failed to get booking id=%d: %v", req.BookingID, err)
			return fmt.Errorf("%w: failed to get booking: %v", ErrInternal, err)
		}

		// 2. Отменить может владелец или администратор
		if !req.Actor.MayManage(booking) {
			uc.logger.Warn("CancelBooking: actor=%d forbidden for booking id=%d (owner=%d)",
				req.Actor.UserID, booking.ID, booking.UserID)
			return ErrForbidden
		}

		// 3. Переход статуса через lifecycle-машину
		if err := booking.Transition(domain.StatusCancelled); err != nil {
			uc.logger.Warn("CancelBooking: booking id=%d cannot be cancelled, status=%s",
				booking.ID, booking.Status)
			return ErrInvalidStateTransition
		}

		// 4. Фиксируем отмену с причиной и фактическим временем окончания
		now := uc.timeProvider.Now()
		booking.EndTime = now
		booking.CancellationReason = req.Reason
		booking.CancelledAt = &now
		if err := uc.bookingRepo.Cancel(txCtx, booking.ID, req.Reason, now); err != nil {
			uc.logger.Error("CancelBooking: failed to cancel booking id=%d: %v", booking.ID, err)
			return fmt.Errorf("%w: failed to cancel booking: %v", ErrInternal, err)
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
			uc.logger.Warn("CancelBooking: serialization conflict on booking id=%d", req.BookingID)
			return nil, ErrConflict
		}
		return nil, err
	}

	uc.logger.Info("CancelBooking: successfully cancelled booking id=%d", result.ID)
	return toResponse(result), nil
}

// releaseSlot возвращает слот в available и декрементирует occupancy локации
// с ограничением нулём
func (uc *UseCase) releaseSlot(ctx context.Context, booking *domain.Booking) error {
	slot, err := uc.catalogRepo.GetSlotForUpdate(ctx, booking.SlotID)
	if err != nil {
		if errors.Is(err, catalogRepo.ErrSlotNotFound) {
			uc.logger.Warn("CancelBooking: slot id=%d for booking id=%d no longer exists",
				booking.SlotID, booking.ID)
			return nil
		}
		uc.logger.Error("CancelBooking: failed to get slot id=%d: %v", booking.SlotID, err)
		return fmt.Errorf("%w: failed to get slot: %v", ErrInternal, err)
	}

	if err := uc.catalogRepo.UpdateSlotStatus(ctx, slot.ID, domain.SlotAvailable); err != nil {
		uc.logger.Error("CancelBooking: failed to release slot id=%d: %v", slot.ID, err)
		return fmt.Errorf("%w: failed to release slot: %v", ErrInternal, err)
	}

	location, err := uc.catalogRepo.GetLocationForUpdate(ctx, booking.LocationID)
	if err != nil {
		uc.logger.Error("CancelBooking: failed to get location id=%d: %v", booking.LocationID, err)
		return fmt.Errorf("%w: failed to get location: %v", ErrInternal, err)
	}

	occupancy := location.Occupancy
	if occupancy.Get(booking.VehicleClass) > 0 {
		occupancy.Add(booking.VehicleClass, -1)
	} else {
		uc.logger.Warn("CancelBooking: occupancy for location id=%d class=%s already zero (drift?)",
			location.ID, booking.VehicleClass)
	}

	if err := uc.catalogRepo.UpdateOccupancy(ctx, location.ID, occupancy); err != nil {
		uc.logger.Error("CancelBooking: failed to update occupancy for location id=%d: %v", location.ID, err)
		return fmt.Errorf("%w: failed to update occupancy: %v", ErrInternal, err)
	}

	return nil
}
