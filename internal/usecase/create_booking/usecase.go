package create_booking

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/m04kA/SMC-ParkingService/internal/domain"
	availabilitySvc "github.com/m04kA/SMC-ParkingService/internal/service/availability"
	catalogRepo "github.com/m04kA/SMC-ParkingService/internal/infra/storage/catalog"
	"github.com/m04kA/SMC-ParkingService/pkg/txmanager"
)

// UseCase use case создания бронирования
type UseCase struct {
	catalogRepo  CatalogRepository
	bookingRepo  BookingRepository
	availability AvailabilityChecker
	txManager    TransactionManager
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	catalogRepo CatalogRepository,
	bookingRepo BookingRepository,
	availability AvailabilityChecker,
	txManager TransactionManager,
	logger Logger,
) *UseCase {
	return &UseCase{
		catalogRepo:  catalogRepo,
		bookingRepo:  bookingRepo,
		availability: availability,
		txManager:    txManager,
		logger:       logger,
	}
}

// Execute выполняет use case создания бронирования.
//
// Проверка доступности и запись (бронирование + статус слота + occupancy
// локации) выполняются одной сериализуемой транзакцией с блокировкой строки
// слота: из двух конкурирующих запросов, увидевших "свободно", выигрывает
// ровно один, проигравший получает ErrSlotNotAvailable либо ErrConflict.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CreateBooking: user=%d, slot=%d, class=%s, window=[%s, %s)",
		req.UserID, req.SlotID, req.VehicleClass, req.StartTime, req.EndTime)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CreateBooking: validation failed: %v", err)
		return nil, err
	}

	var result *domain.Booking

	// 2. Все операции с БД в сериализуемой транзакции
	err := uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// 2.1. Блокируем строку слота (FOR UPDATE): конкурирующие create
		// по тому же слоту сериализуются на этой блокировке
		slot, err := uc.catalogRepo.GetSlotForUpdate(txCtx, req.SlotID)
		if err != nil {
			if errors.Is(err, catalogRepo.ErrSlotNotFound) {
				uc.logger.Warn("CreateBooking: slot id=%d not found", req.SlotID)
				return ErrSlotNotFound
			}
			uc.logger.Error("CreateBooking: failed to get slot id=%d: %v", req.SlotID, err)
			return fmt.Errorf("%w: failed to get slot: %v", ErrInternal, err)
		}

		// Деактивированный слот неотличим от отсутствующего для клиента
		if !slot.IsActive {
			uc.logger.Warn("CreateBooking: slot id=%d is inactive", req.SlotID)
			return ErrSlotNotFound
		}

		// 2.2. Класс ТС должен совпадать с классом слота
		if slot.Class != req.VehicleClass {
			uc.logger.Warn("CreateBooking: class mismatch for slot id=%d: slot=%s, vehicle=%s",
				req.SlotID, slot.Class, req.VehicleClass)
			return ErrClassMismatch
		}

		// 2.3. Проверяем доступность (обслуживание + пересечения окон)
		available, err := uc.availability.IsAvailable(txCtx, req.SlotID, req.StartTime, req.EndTime)
		if err != nil {
			if errors.Is(err, availabilitySvc.ErrSlotNotFound) {
				return ErrSlotNotFound
			}
			uc.logger.Error("CreateBooking: availability check failed for slot id=%d: %v", req.SlotID, err)
			return fmt.Errorf("%w: availability check: %v", ErrInternal, err)
		}
		if !available {
			uc.logger.Warn("CreateBooking: slot id=%d not available for [%s, %s)",
				req.SlotID, req.StartTime, req.EndTime)
			return ErrSlotNotAvailable
		}

		// 2.4. Блокируем локацию для согласованного инкремента occupancy
		location, err := uc.catalogRepo.GetLocationForUpdate(txCtx, slot.LocationID)
		if err != nil {
			uc.logger.Error("CreateBooking: failed to get location id=%d: %v", slot.LocationID, err)
			return fmt.Errorf("%w: failed to get location: %v", ErrInternal, err)
		}

		// Occupancy не может превысить capacity. Переполнение означает дрейф
		// счетчиков, слот при этом для клиента просто занят.
		if !location.HasCapacityFor(req.VehicleClass) {
			uc.logger.Warn("CreateBooking: location id=%d is at capacity for class=%s (occupancy drift?)",
				location.ID, req.VehicleClass)
			return ErrSlotNotAvailable
		}

		// 2.5. Создаем бронирование сразу в статусе active
		booking := &domain.Booking{
			UserID:        req.UserID,
			SlotID:        slot.ID,
			LocationID:    slot.LocationID,
			VehicleClass:  req.VehicleClass,
			VehicleNumber: strings.TrimSpace(req.VehicleNumber),
			StartTime:     req.StartTime,
			EndTime:       req.EndTime,
			Status:        domain.StatusActive,
		}

		created, err := uc.bookingRepo.Create(txCtx, booking)
		if err != nil {
			uc.logger.Error("CreateBooking: failed to create booking: %v", err)
			return fmt.Errorf("%w: failed to create booking: %v", ErrInternal, err)
		}

		// 2.6. Слот переходит в reserved
		if err := uc.catalogRepo.UpdateSlotStatus(txCtx, slot.ID, domain.SlotReserved); err != nil {
			uc.logger.Error("CreateBooking: failed to reserve slot id=%d: %v", slot.ID, err)
			return fmt.Errorf("%w: failed to reserve slot: %v", ErrInternal, err)
		}

		// 2.7. Инкремент occupancy локации по классу
		occupancy := location.Occupancy
		occupancy.Add(req.VehicleClass, 1)
		if err := uc.catalogRepo.UpdateOccupancy(txCtx, location.ID, occupancy); err != nil {
			uc.logger.Error("CreateBooking: failed to update occupancy for location id=%d: %v", location.ID, err)
			return fmt.Errorf("%w: failed to update occupancy: %v", ErrInternal, err)
		}

		result = created
		return nil
	})

	if err != nil {
		// Проигрыш гонки сериализации - retryable
		if errors.Is(err, txmanager.ErrSerializationFailure) {
			uc.logger.Warn("CreateBooking: serialization conflict on slot id=%d", req.SlotID)
			return nil, ErrConflict
		}
		return nil, err
	}

	uc.logger.Info("CreateBooking: successfully created booking id=%d (slot=%d, user=%d)",
		result.ID, result.SlotID, result.UserID)

	return toResponse(result), nil
}
