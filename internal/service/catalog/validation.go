package catalog

import (
	"fmt"
	"strings"

	"github.com/m04kA/SMC-ParkingService/internal/domain"
)

// validateLocationName проверяет имя локации
func validateLocationName(name string) error {
	if strings.TrimSpace(name) == "" {
		return fmt.Errorf("%w: location name is required", ErrInvalidInput)
	}
	if len(name) > domain.MaxNameLength {
		return fmt.Errorf("%w: location name exceeds %d characters", ErrInvalidInput, domain.MaxNameLength)
	}
	return nil
}

// validateDescription проверяет описание локации
func validateDescription(description string) error {
	if len(description) > domain.MaxDescriptionLength {
		return fmt.Errorf("%w: description exceeds %d characters", ErrInvalidInput, domain.MaxDescriptionLength)
	}
	return nil
}

// validateSlotNumber проверяет номер слота
func validateSlotNumber(number string) error {
	if strings.TrimSpace(number) == "" {
		return fmt.Errorf("%w: slot number is required", ErrInvalidInput)
	}
	if len(number) > domain.MaxNameLength {
		return fmt.Errorf("%w: slot number exceeds %d characters", ErrInvalidInput, domain.MaxNameLength)
	}
	return nil
}

// validateCapacity проверяет, что capacity неотрицательна по всем классам
func validateCapacity(capacity domain.CountByClass) error {
	for _, class := range domain.VehicleClasses {
		if capacity.Get(class) < 0 {
			return fmt.Errorf("%w: capacity for class %s is negative", ErrInvalidInput, class)
		}
	}
	return nil
}

// parseLocationType проверяет и конвертирует тип локации
func parseLocationType(value string) (domain.LocationType, error) {
	switch domain.LocationType(value) {
	case domain.LocationIndoor, domain.LocationOutdoor:
		return domain.LocationType(value), nil
	default:
		return "", fmt.Errorf("%w: unknown location type %q", ErrInvalidInput, value)
	}
}
