package catalog

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-ParkingService/internal/domain"
	catalogRepo "github.com/m04kA/SMC-ParkingService/internal/infra/storage/catalog"
	"github.com/m04kA/SMC-ParkingService/internal/service/catalog/models"
)

// Service сервис администрирования каталога локаций и слотов
type Service struct {
	repo      CatalogRepository
	txManager TransactionManager
	logger    Logger
}

// NewService создает новый экземпляр сервиса каталога
func NewService(repo CatalogRepository, txManager TransactionManager, logger Logger) *Service {
	return &Service{
		repo:      repo,
		txManager: txManager,
		logger:    logger,
	}
}

// CreateLocation создает новую локацию с нулевой occupancy.
// Доступно только администраторам.
func (s *Service) CreateLocation(ctx context.Context, req *models.CreateLocationRequest) (*models.LocationResponse, error) {
	s.logger.Info("CreateLocation: creating location name=%q zone=%q", req.Name, req.Zone)

	if err := validateLocationName(req.Name); err != nil {
		s.logger.Warn("CreateLocation: validation failed: %v", err)
		return nil, err
	}
	if err := validateDescription(req.Description); err != nil {
		s.logger.Warn("CreateLocation: validation failed: %v", err)
		return nil, err
	}
	locType, err := parseLocationType(req.Type)
	if err != nil {
		s.logger.Warn("CreateLocation: validation failed: %v", err)
		return nil, err
	}
	if err := validateCapacity(req.Capacity); err != nil {
		s.logger.Warn("CreateLocation: validation failed: %v", err)
		return nil, err
	}

	location := &domain.Location{
		Name:        req.Name,
		Description: req.Description,
		Zone:        req.Zone,
		Type:        locType,
		Capacity:    req.Capacity,
		Occupancy:   domain.CountByClass{},
		IsActive:    true,
	}

	created, err := s.repo.CreateLocation(ctx, location)
	if err != nil {
		if errors.Is(err, catalogRepo.ErrDuplicate) {
			s.logger.Warn("CreateLocation: location name=%q already exists", req.Name)
			return nil, ErrDuplicate
		}
		s.logger.Error("CreateLocation: repository error: %v", err)
		return nil, fmt.Errorf("%w: CreateLocation - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("CreateLocation: successfully created location id=%d", created.ID)
	return models.FromDomainLocation(created), nil
}

// GetLocation получает локацию по ID.
// Публичный метод - доступен всем.
func (s *Service) GetLocation(ctx context.Context, id int64) (*models.LocationResponse, error) {
	location, err := s.repo.GetLocation(ctx, id)
	if err != nil {
		if errors.Is(err, catalogRepo.ErrLocationNotFound) {
			s.logger.Warn("GetLocation: location id=%d not found", id)
			return nil, ErrLocationNotFound
		}
		s.logger.Error("GetLocation: repository error for location id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: GetLocation - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainLocation(location), nil
}

// ListLocations возвращает список локаций.
// Публичный метод; неактивные локации видны только администраторам.
func (s *Service) ListLocations(ctx context.Context, includeInactive bool) (*models.LocationListResponse, error) {
	locations, err := s.repo.ListLocations(ctx, includeInactive)
	if err != nil {
		s.logger.Error("ListLocations: repository error: %v", err)
		return nil, fmt.Errorf("%w: ListLocations - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainLocationList(locations), nil
}

// UpdateLocation обновляет локацию.
// Уменьшение capacity ниже текущей occupancy по любому классу запрещено:
// активные бронирования не должны оказаться за пределами вместимости.
func (s *Service) UpdateLocation(ctx context.Context, req *models.UpdateLocationRequest) (*models.LocationResponse, error) {
	s.logger.Info("UpdateLocation: updating location id=%d", req.ID)

	if req.Name != nil {
		if err := validateLocationName(*req.Name); err != nil {
			s.logger.Warn("UpdateLocation: validation failed: %v", err)
			return nil, err
		}
	}
	if req.Description != nil {
		if err := validateDescription(*req.Description); err != nil {
			s.logger.Warn("UpdateLocation: validation failed: %v", err)
			return nil, err
		}
	}
	if req.Capacity != nil {
		if err := validateCapacity(*req.Capacity); err != nil {
			s.logger.Warn("UpdateLocation: validation failed: %v", err)
			return nil, err
		}
	}

	var updated *domain.Location
	err := s.txManager.DoSerializable(ctx, func(ctx context.Context) error {
		location, err := s.repo.GetLocationForUpdate(ctx, req.ID)
		if err != nil {
			if errors.Is(err, catalogRepo.ErrLocationNotFound) {
				return ErrLocationNotFound
			}
			return fmt.Errorf("%w: UpdateLocation - get location: %v", ErrInternal, err)
		}

		if req.Name != nil {
			location.Name = *req.Name
		}
		if req.Description != nil {
			location.Description = *req.Description
		}
		if req.Zone != nil {
			location.Zone = *req.Zone
		}
		if req.Type != nil {
			locType, err := parseLocationType(*req.Type)
			if err != nil {
				return err
			}
			location.Type = locType
		}
		if req.Capacity != nil {
			if !location.CapacityFits(*req.Capacity) {
				s.logger.Warn("UpdateLocation: capacity shrink below occupancy for location id=%d", req.ID)
				return ErrCapacityViolation
			}
			location.Capacity = *req.Capacity
		}
		if req.IsActive != nil {
			location.IsActive = *req.IsActive
		}

		if err := s.repo.UpdateLocation(ctx, location); err != nil {
			if errors.Is(err, catalogRepo.ErrDuplicate) {
				return ErrDuplicate
			}
			return fmt.Errorf("%w: UpdateLocation - repository error: %v", ErrInternal, err)
		}

		updated = location
		return nil
	})
	if err != nil {
		if isServiceError(err) {
			return nil, err
		}
		s.logger.Error("UpdateLocation: transaction failed for location id=%d: %v", req.ID, err)
		return nil, fmt.Errorf("%w: UpdateLocation - transaction failed: %v", ErrInternal, err)
	}

	s.logger.Info("UpdateLocation: successfully updated location id=%d", req.ID)
	return models.FromDomainLocation(updated), nil
}

// DeleteLocation удаляет локацию.
// Локация с привязанными слотами не удаляется: сначала нужно убрать слоты.
func (s *Service) DeleteLocation(ctx context.Context, id int64) error {
	s.logger.Info("DeleteLocation: deleting location id=%d", id)

	err := s.txManager.DoSerializable(ctx, func(ctx context.Context) error {
		if _, err := s.repo.GetLocationForUpdate(ctx, id); err != nil {
			if errors.Is(err, catalogRepo.ErrLocationNotFound) {
				return ErrLocationNotFound
			}
			return fmt.Errorf("%w: DeleteLocation - get location: %v", ErrInternal, err)
		}

		count, err := s.repo.CountSlotsByLocation(ctx, id)
		if err != nil {
			return fmt.Errorf("%w: DeleteLocation - count slots: %v", ErrInternal, err)
		}
		if count > 0 {
			s.logger.Warn("DeleteLocation: location id=%d still has %d slots", id, count)
			return ErrLocationHasSlots
		}

		if err := s.repo.DeleteLocation(ctx, id); err != nil {
			return fmt.Errorf("%w: DeleteLocation - repository error: %v", ErrInternal, err)
		}
		return nil
	})
	if err != nil {
		if isServiceError(err) {
			return err
		}
		s.logger.Error("DeleteLocation: transaction failed for location id=%d: %v", id, err)
		return fmt.Errorf("%w: DeleteLocation - transaction failed: %v", ErrInternal, err)
	}

	s.logger.Info("DeleteLocation: successfully deleted location id=%d", id)
	return nil
}

// CreateSlot создает новый слот и увеличивает capacity локации
// по классу слота. Слот создается в статусе available.
func (s *Service) CreateSlot(ctx context.Context, req *models.CreateSlotRequest) (*models.SlotResponse, error) {
	s.logger.Info("CreateSlot: creating slot number=%q for location id=%d", req.Number, req.LocationID)

	if err := validateSlotNumber(req.Number); err != nil {
		s.logger.Warn("CreateSlot: validation failed: %v", err)
		return nil, err
	}
	class, err := domain.ParseVehicleClass(req.Class)
	if err != nil {
		s.logger.Warn("CreateSlot: validation failed: %v", err)
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	var created *domain.Slot
	err = s.txManager.DoSerializable(ctx, func(ctx context.Context) error {
		location, err := s.repo.GetLocationForUpdate(ctx, req.LocationID)
		if err != nil {
			if errors.Is(err, catalogRepo.ErrLocationNotFound) {
				return ErrLocationNotFound
			}
			return fmt.Errorf("%w: CreateSlot - get location: %v", ErrInternal, err)
		}

		slot := &domain.Slot{
			LocationID: req.LocationID,
			Number:     req.Number,
			Class:      class,
			Status:     domain.SlotAvailable,
			Position:   domain.Position{X: req.PositionX, Y: req.PositionY},
			IsActive:   true,
		}

		created, err = s.repo.CreateSlot(ctx, slot)
		if err != nil {
			if errors.Is(err, catalogRepo.ErrDuplicate) {
				return ErrDuplicate
			}
			return fmt.Errorf("%w: CreateSlot - repository error: %v", ErrInternal, err)
		}

		location.Capacity.Add(class, 1)
		if err := s.repo.UpdateLocation(ctx, location); err != nil {
			return fmt.Errorf("%w: CreateSlot - update location capacity: %v", ErrInternal, err)
		}
		return nil
	})
	if err != nil {
		if isServiceError(err) {
			return nil, err
		}
		s.logger.Error("CreateSlot: transaction failed: %v", err)
		return nil, fmt.Errorf("%w: CreateSlot - transaction failed: %v", ErrInternal, err)
	}

	s.logger.Info("CreateSlot: successfully created slot id=%d in location id=%d", created.ID, req.LocationID)
	return models.FromDomainSlot(created), nil
}

// GetSlot получает слот по ID.
// Публичный метод - доступен всем.
func (s *Service) GetSlot(ctx context.Context, id int64) (*models.SlotResponse, error) {
	slot, err := s.repo.GetSlot(ctx, id)
	if err != nil {
		if errors.Is(err, catalogRepo.ErrSlotNotFound) {
			s.logger.Warn("GetSlot: slot id=%d not found", id)
			return nil, ErrSlotNotFound
		}
		s.logger.Error("GetSlot: repository error for slot id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: GetSlot - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainSlot(slot), nil
}

// ListSlots возвращает список слотов по фильтру.
// Публичный метод - доступен всем.
func (s *Service) ListSlots(ctx context.Context, req *models.ListSlotsRequest) (*models.SlotListResponse, error) {
	filter, err := req.ToDomainFilter()
	if err != nil {
		s.logger.Warn("ListSlots: invalid filter: %v", err)
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	slots, err := s.repo.ListSlots(ctx, filter)
	if err != nil {
		s.logger.Error("ListSlots: repository error: %v", err)
		return nil, fmt.Errorf("%w: ListSlots - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainSlotList(slots), nil
}

// UpdateSlot обновляет слот.
// Админ может выставлять только статусы available и maintenance:
// reserved и occupied управляются жизненным циклом бронирований.
// Смена класса допускается только для свободного слота и переносит
// единицу capacity локации между классами.
func (s *Service) UpdateSlot(ctx context.Context, req *models.UpdateSlotRequest) (*models.SlotResponse, error) {
	s.logger.Info("UpdateSlot: updating slot id=%d", req.ID)

	if req.Number != nil {
		if err := validateSlotNumber(*req.Number); err != nil {
			s.logger.Warn("UpdateSlot: validation failed: %v", err)
			return nil, err
		}
	}

	var updated *domain.Slot
	err := s.txManager.DoSerializable(ctx, func(ctx context.Context) error {
		slot, err := s.repo.GetSlotForUpdate(ctx, req.ID)
		if err != nil {
			if errors.Is(err, catalogRepo.ErrSlotNotFound) {
				return ErrSlotNotFound
			}
			return fmt.Errorf("%w: UpdateSlot - get slot: %v", ErrInternal, err)
		}

		if req.Number != nil {
			slot.Number = *req.Number
		}
		if req.PositionX != nil {
			slot.Position.X = *req.PositionX
		}
		if req.PositionY != nil {
			slot.Position.Y = *req.PositionY
		}
		if req.IsActive != nil {
			slot.IsActive = *req.IsActive
		}

		if req.Status != nil {
			status, err := domain.ParseSlotStatus(*req.Status)
			if err != nil {
				return fmt.Errorf("%w: %v", ErrInvalidInput, err)
			}
			if status != domain.SlotAvailable && status != domain.SlotMaintenance {
				s.logger.Warn("UpdateSlot: status %q not settable by admin for slot id=%d", status, req.ID)
				return ErrInvalidSlotStatus
			}
			if slot.IsHeld() {
				s.logger.Warn("UpdateSlot: slot id=%d is held by a booking, status change rejected", req.ID)
				return ErrSlotInUse
			}
			slot.Status = status
		}

		if req.Class != nil && domain.VehicleClass(*req.Class) != slot.Class {
			newClass, err := domain.ParseVehicleClass(*req.Class)
			if err != nil {
				return fmt.Errorf("%w: %v", ErrInvalidInput, err)
			}
			if slot.IsHeld() {
				s.logger.Warn("UpdateSlot: slot id=%d is held by a booking, class change rejected", req.ID)
				return ErrSlotInUse
			}

			location, err := s.repo.GetLocationForUpdate(ctx, slot.LocationID)
			if err != nil {
				return fmt.Errorf("%w: UpdateSlot - get location: %v", ErrInternal, err)
			}
			// Переносим единицу capacity со старого класса на новый.
			// Перенос не может уронить capacity класса ниже occupancy.
			location.Capacity.Add(slot.Class, -1)
			location.Capacity.Add(newClass, 1)
			if !location.CapacityFits(location.Capacity) {
				return ErrCapacityViolation
			}
			if err := s.repo.UpdateLocation(ctx, location); err != nil {
				return fmt.Errorf("%w: UpdateSlot - update location capacity: %v", ErrInternal, err)
			}
			slot.Class = newClass
		}

		if req.Sensor != nil {
			var detected *domain.VehicleClass
			if req.Sensor.DetectedClass != nil {
				class, err := domain.ParseVehicleClass(*req.Sensor.DetectedClass)
				if err != nil {
					return fmt.Errorf("%w: %v", ErrInvalidInput, err)
				}
				detected = &class
			}
			slot.Sensor.IsOccupied = req.Sensor.IsOccupied
			slot.Sensor.Confidence = req.Sensor.Confidence
			slot.Sensor.DetectedClass = detected
		}

		if err := s.repo.UpdateSlot(ctx, slot); err != nil {
			if errors.Is(err, catalogRepo.ErrDuplicate) {
				return ErrDuplicate
			}
			return fmt.Errorf("%w: UpdateSlot - repository error: %v", ErrInternal, err)
		}

		updated = slot
		return nil
	})
	if err != nil {
		if isServiceError(err) {
			return nil, err
		}
		s.logger.Error("UpdateSlot: transaction failed for slot id=%d: %v", req.ID, err)
		return nil, fmt.Errorf("%w: UpdateSlot - transaction failed: %v", ErrInternal, err)
	}

	s.logger.Info("UpdateSlot: successfully updated slot id=%d", req.ID)
	return models.FromDomainSlot(updated), nil
}

// DeleteSlot удаляет слот и уменьшает capacity локации по его классу.
// Слот, удерживаемый бронированием, не удаляется. Удаление, роняющее
// capacity ниже occupancy, отклоняется.
func (s *Service) DeleteSlot(ctx context.Context, id int64) error {
	s.logger.Info("DeleteSlot: deleting slot id=%d", id)

	err := s.txManager.DoSerializable(ctx, func(ctx context.Context) error {
		slot, err := s.repo.GetSlotForUpdate(ctx, id)
		if err != nil {
			if errors.Is(err, catalogRepo.ErrSlotNotFound) {
				return ErrSlotNotFound
			}
			return fmt.Errorf("%w: DeleteSlot - get slot: %v", ErrInternal, err)
		}

		if slot.IsHeld() {
			s.logger.Warn("DeleteSlot: slot id=%d is held by a booking", id)
			return ErrSlotInUse
		}

		location, err := s.repo.GetLocationForUpdate(ctx, slot.LocationID)
		if err != nil {
			return fmt.Errorf("%w: DeleteSlot - get location: %v", ErrInternal, err)
		}

		location.Capacity.Add(slot.Class, -1)
		if !location.CapacityFits(location.Capacity) {
			s.logger.Warn("DeleteSlot: removing slot id=%d would drop capacity below occupancy", id)
			return ErrCapacityViolation
		}

		if err := s.repo.DeleteSlot(ctx, id); err != nil {
			return fmt.Errorf("%w: DeleteSlot - repository error: %v", ErrInternal, err)
		}
		if err := s.repo.UpdateLocation(ctx, location); err != nil {
			return fmt.Errorf("%w: DeleteSlot - update location capacity: %v", ErrInternal, err)
		}
		return nil
	})
	if err != nil {
		if isServiceError(err) {
			return err
		}
		s.logger.Error("DeleteSlot: transaction failed for slot id=%d: %v", id, err)
		return fmt.Errorf("%w: DeleteSlot - transaction failed: %v", ErrInternal, err)
	}

	s.logger.Info("DeleteSlot: successfully deleted slot id=%d", id)
	return nil
}

// isServiceError возвращает true для бизнес-ошибок сервиса,
// которые не нужно оборачивать в ErrInternal
func isServiceError(err error) bool {
	return errors.Is(err, ErrLocationNotFound) ||
		errors.Is(err, ErrSlotNotFound) ||
		errors.Is(err, ErrDuplicate) ||
		errors.Is(err, ErrCapacityViolation) ||
		errors.Is(err, ErrLocationHasSlots) ||
		errors.Is(err, ErrSlotInUse) ||
		errors.Is(err, ErrInvalidSlotStatus) ||
		errors.Is(err, ErrInvalidInput)
}
