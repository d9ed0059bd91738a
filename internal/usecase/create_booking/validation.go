package create_booking

import (
	"fmt"
	"strings"

	"github.com/m04kA/SMC-ParkingService/internal/domain"
)

// validateRequest валидирует входные данные запроса.
// Начало окна в прошлом допустимо: walk-up бронирование начинается "сейчас",
// и к моменту записи start уже может оказаться позади.
func validateRequest(req *Request) error {
	if req.UserID <= 0 {
		return fmt.Errorf("%w: userID must be positive", ErrInvalidInput)
	}

	if req.SlotID <= 0 {
		return fmt.Errorf("%w: slotID must be positive", ErrInvalidInput)
	}

	if _, err := domain.ParseVehicleClass(string(req.VehicleClass)); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	number := strings.TrimSpace(req.VehicleNumber)
	if number == "" {
		return fmt.Errorf("%w: vehicleNumber is required", ErrInvalidInput)
	}
	if len(number) > domain.MaxVehicleNumberLength {
		return fmt.Errorf("%w: vehicleNumber is too long", ErrInvalidInput)
	}

	if req.StartTime.IsZero() || req.EndTime.IsZero() {
		return fmt.Errorf("%w: startTime and endTime are required", ErrInvalidInput)
	}

	if !req.EndTime.After(req.StartTime) {
		return ErrInvalidTimeRange
	}

	return nil
}
