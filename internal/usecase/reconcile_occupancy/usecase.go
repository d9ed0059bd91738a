package reconcile_occupancy

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-ParkingService/internal/domain"
	catalogRepo "github.com/m04kA/SMC-ParkingService/internal/infra/storage/catalog"
)

// UseCase use case реконсиляции occupancy локации.
//
// Корректирующая идемпотентная операция вне горячего пути бронирования:
// пересчитывает occupancy по слотам в статусах reserved/occupied и
// перезаписывает счетчики локации при дрейфе (например, после частичного
// сбоя). Повторный запуск по согласованной локации ничего не меняет.
type UseCase struct {
	catalogRepo CatalogRepository
	txManager   TransactionManager
	logger      Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(catalogRepo CatalogRepository, txManager TransactionManager, logger Logger) *UseCase {
	return &UseCase{
		catalogRepo: catalogRepo,
		txManager:   txManager,
		logger:      logger,
	}
}

// Execute выполняет реконсиляцию occupancy локации
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("ReconcileOccupancy: location=%d", req.LocationID)

	if req.LocationID <= 0 {
		return nil, fmt.Errorf("%w: locationID must be positive", ErrInvalidInput)
	}

	var response *Response

	err := uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// 1. Блокируем локацию, чтобы пересчет не гонялся с бронированиями
		location, err := uc.catalogRepo.GetLocationForUpdate(txCtx, req.LocationID)
		if err != nil {
			if errors.Is(err, catalogRepo.ErrLocationNotFound) {
				uc.logger.Warn("ReconcileOccupancy: location id=%d not found", req.LocationID)
				return ErrLocationNotFound
			}
			uc.logger.Error("ReconcileOccupancy: failed to get location id=%d: %v", req.LocationID, err)
			return fmt.Errorf("%w: failed to get location: %v", ErrInternal, err)
		}

		// 2. Пересчитываем занятость по слотам
		counted, err := uc.catalogRepo.CountHeldSlots(txCtx, req.LocationID)
		if err != nil {
			uc.logger.Error("ReconcileOccupancy: failed to count held slots for location id=%d: %v",
				req.LocationID, err)
			return fmt.Errorf("%w: failed to count held slots: %v", ErrInternal, err)
		}

		// 3. Сравниваем по классам
		results := make([]ClassResult, 0, len(domain.VehicleClasses))
		drifted := false
		for _, class := range domain.VehicleClasses {
			previous := location.Occupancy.Get(class)
			current := counted.Get(class)
			classDrifted := previous != current
			if classDrifted {
				drifted = true
				uc.logger.Warn("ReconcileOccupancy: drift at location id=%d class=%s: stored=%d, counted=%d",
					req.LocationID, class, previous, current)
			}
			results = append(results, ClassResult{
				Class:    string(class),
				Previous: previous,
				Counted:  current,
				Drifted:  classDrifted,
			})
		}

		// 4. Перезаписываем счетчики только при расхождении
		if drifted {
			if err := uc.catalogRepo.UpdateOccupancy(txCtx, req.LocationID, counted); err != nil {
				uc.logger.Error("ReconcileOccupancy: failed to update occupancy for location id=%d: %v",
					req.LocationID, err)
				return fmt.Errorf("%w: failed to update occupancy: %v", ErrInternal, err)
			}
		}

		response = &Response{
			LocationID: req.LocationID,
			Corrected:  drifted,
			Results:    results,
		}
		return nil
	})

	if err != nil {
		return nil, err
	}

	if response.Corrected {
		uc.logger.Info("ReconcileOccupancy: corrected occupancy for location id=%d", req.LocationID)
	} else {
		uc.logger.Info("ReconcileOccupancy: location id=%d occupancy consistent", req.LocationID)
	}

	return response, nil
}
