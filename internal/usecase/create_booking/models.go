package create_booking

import (
	"time"

	"github.com/m04kA/SMC-ParkingService/internal/domain"
)

// Request модель запроса на создание бронирования
type Request struct {
	UserID        int64               // ID пользователя (из auth-заголовка)
	SlotID        int64               // ID слота
	VehicleClass  domain.VehicleClass // Класс ТС
	VehicleNumber string              // Госномер ТС
	StartTime     time.Time           // Начало окна бронирования
	EndTime       time.Time           // Конец окна (полуоткрытый интервал)
}

// Response модель ответа с созданным бронированием
type Response struct {
	ID            int64
	UserID        int64
	SlotID        int64
	LocationID    int64 // Денормализовано из слота
	VehicleClass  string
	VehicleNumber string
	StartTime     time.Time
	EndTime       time.Time
	Status        string
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

func toResponse(b *domain.Booking) *Response {
	return &Response{
		ID:            b.ID,
		UserID:        b.UserID,
		SlotID:        b.SlotID,
		LocationID:    b.LocationID,
		VehicleClass:  string(b.VehicleClass),
		VehicleNumber: b.VehicleNumber,
		StartTime:     b.StartTime,
		EndTime:       b.EndTime,
		Status:        string(b.Status),
		CreatedAt:     b.CreatedAt,
		UpdatedAt:     b.UpdatedAt,
	}
}
