package get_booking

import (
	"time"

	"github.com/m04kA/SMC-ParkingService/internal/service/bookings/models"
)

// BookingResponse HTTP response model
type BookingResponse struct {
	ID                 int64   `json:"id"`
	UserID             int64   `json:"userId"`
	SlotID             int64   `json:"slotId"`
	LocationID         int64   `json:"locationId"`
	VehicleClass       string  `json:"vehicleClass"`
	VehicleNumber      string  `json:"vehicleNumber"`
	StartTime          string  `json:"startTime"`
	EndTime            string  `json:"endTime"`
	Status             string  `json:"status"`
	CancellationReason *string `json:"cancellationReason,omitempty"`
	CancelledAt        *string `json:"cancelledAt,omitempty"`
	CreatedAt          string  `json:"createdAt"`
	UpdatedAt          string  `json:"updatedAt"`
}

// FromServiceResponse конвертирует ответ сервиса в HTTP response
func FromServiceResponse(resp *models.BookingResponse) *BookingResponse {
	var cancelledAt *string
	if resp.CancelledAt != nil {
		v := resp.CancelledAt.Format(time.RFC3339)
		cancelledAt = &v
	}

	return &BookingResponse{
		ID:                 resp.ID,
		UserID:             resp.UserID,
		SlotID:             resp.SlotID,
		LocationID:         resp.LocationID,
		VehicleClass:       resp.VehicleClass,
		VehicleNumber:      resp.VehicleNumber,
		StartTime:          resp.StartTime.Format(time.RFC3339),
		EndTime:            resp.EndTime.Format(time.RFC3339),
		Status:             resp.Status,
		CancellationReason: resp.CancellationReason,
		CancelledAt:        cancelledAt,
		CreatedAt:          resp.CreatedAt.Format(time.RFC3339),
		UpdatedAt:          resp.UpdatedAt.Format(time.RFC3339),
	}
}
