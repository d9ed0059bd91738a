package cancel_booking

import (
	"time"

	"github.com/m04kA/SMC-ParkingService/internal/domain"
)

// Request модель запроса на отмену бронирования
type Request struct {
	BookingID int64
	Actor     domain.Actor
	Reason    *string // Причина отмены (опционально)
}

// Response модель ответа с отменённым бронированием
type Response struct {
	ID                 int64
	UserID             int64
	SlotID             int64
	LocationID         int64
	VehicleClass       string
	VehicleNumber      string
	StartTime          time.Time
	EndTime            time.Time
	Status             string
	CancellationReason *string
	CancelledAt        *time.Time
	CreatedAt          time.Time
	UpdatedAt          time.Time
}

func toResponse(b *domain.Booking) *Response {
	return &Response{
		ID:                 b.ID,
		UserID:             b.UserID,
		SlotID:             b.SlotID,
		LocationID:         b.LocationID,
		VehicleClass:       string(b.VehicleClass),
		VehicleNumber:      b.VehicleNumber,
		StartTime:          b.StartTime,
		EndTime:            b.EndTime,
		Status:             string(b.Status),
		CancellationReason: b.CancellationReason,
		CancelledAt:        b.CancelledAt,
		CreatedAt:          b.CreatedAt,
		UpdatedAt:          b.UpdatedAt,
	}
}
