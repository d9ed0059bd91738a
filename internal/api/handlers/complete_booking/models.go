package complete_booking

import (
	"time"

	completeBooking "github.com/m04kA/SMC-ParkingService/internal/usecase/complete_booking"
)

// BookingResponse HTTP response model
type BookingResponse struct {
	ID            int64  `json:"id"`
	UserID        int64  `json:"userId"`
	SlotID        int64  `json:"slotId"`
	LocationID    int64  `json:"locationId"`
	VehicleClass  string `json:"vehicleClass"`
	VehicleNumber string `json:"vehicleNumber"`
	StartTime     string `json:"startTime"`
	EndTime       string `json:"endTime"`
	Status        string `json:"status"`
	CreatedAt     string `json:"createdAt"`
	UpdatedAt     string `json:"updatedAt"`
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *completeBooking.Response) *BookingResponse {
	return &BookingResponse{
		ID:            resp.ID,
		UserID:        resp.UserID,
		SlotID:        resp.SlotID,
		LocationID:    resp.LocationID,
		VehicleClass:  resp.VehicleClass,
		VehicleNumber: resp.VehicleNumber,
		StartTime:     resp.StartTime.Format(time.RFC3339),
		EndTime:       resp.EndTime.Format(time.RFC3339),
		Status:        resp.Status,
		CreatedAt:     resp.CreatedAt.Format(time.RFC3339),
		UpdatedAt:     resp.UpdatedAt.Format(time.RFC3339),
	}
}
