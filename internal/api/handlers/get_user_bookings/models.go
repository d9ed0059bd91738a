package get_user_bookings

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

// BookingListResponse HTTP response model со списком бронирований
type BookingListResponse struct {
	Bookings []BookingResponse `json:"bookings"`
	Total    int               `json:"total"`
}

// FromServiceResponse конвертирует ответ сервиса в HTTP response
func FromServiceResponse(resp *models.BookingListResponse) *BookingListResponse {
	result := make([]BookingResponse, len(resp.Bookings))
	for i, b := range resp.Bookings {
		var cancelledAt *string
		if b.CancelledAt != nil {
			v := b.CancelledAt.Format(time.RFC3339)
			cancelledAt = &v
		}

		result[i] = BookingResponse{
			ID:                 b.ID,
			UserID:             b.UserID,
			SlotID:             b.SlotID,
			LocationID:         b.LocationID,
			VehicleClass:       b.VehicleClass,
			VehicleNumber:      b.VehicleNumber,
			StartTime:          b.StartTime.Format(time.RFC3339),
			EndTime:            b.EndTime.Format(time.RFC3339),
			Status:             b.Status,
			CancellationReason: b.CancellationReason,
			CancelledAt:        cancelledAt,
			CreatedAt:          b.CreatedAt.Format(time.RFC3339),
			UpdatedAt:          b.UpdatedAt.Format(time.RFC3339),
		}
	}

	return &BookingListResponse{
		Bookings: result,
		Total:    resp.Total,
	}
}
