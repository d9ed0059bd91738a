package list_slots

import (
	"time"

	"github.com/m04kA/SMC-ParkingService/internal/service/catalog/models"
)

// SensorResponse advisory-поля сенсора
type SensorResponse struct {
	IsOccupied    bool    `json:"isOccupied"`
	Confidence    float64 `json:"confidence"`
	DetectedClass *string `json:"detectedClass,omitempty"`
	LastUpdated   *string `json:"lastUpdated,omitempty"`
}

// SlotResponse HTTP response model
type SlotResponse struct {
	ID         int64          `json:"id"`
	LocationID int64          `json:"locationId"`
	Number     string         `json:"number"`
	Class      string         `json:"class"`
	Status     string         `json:"status"`
	PositionX  int            `json:"positionX"`
	PositionY  int            `json:"positionY"`
	SensorData SensorResponse `json:"sensorData"`
	IsActive   bool           `json:"isActive"`
	CreatedAt  string         `json:"createdAt"`
	UpdatedAt  string         `json:"updatedAt"`
}

// SlotListResponse HTTP response model со списком слотов
type SlotListResponse struct {
	Slots []SlotResponse `json:"slots"`
	Total int            `json:"total"`
}

// FromServiceResponse конвертирует ответ сервиса в HTTP response
func FromServiceResponse(resp *models.SlotListResponse) *SlotListResponse {
	result := make([]SlotResponse, len(resp.Slots))
	for i, s := range resp.Slots {
		var lastUpdated *string
		if s.SensorData.LastUpdated != nil {
			v := s.SensorData.LastUpdated.Format(time.RFC3339)
			lastUpdated = &v
		}

		result[i] = SlotResponse{
			ID:         s.ID,
			LocationID: s.LocationID,
			Number:     s.Number,
			Class:      s.Class,
			Status:     s.Status,
			PositionX:  s.PositionX,
			PositionY:  s.PositionY,
			SensorData: SensorResponse{
				IsOccupied:    s.SensorData.IsOccupied,
				Confidence:    s.SensorData.Confidence,
				DetectedClass: s.SensorData.DetectedClass,
				LastUpdated:   lastUpdated,
			},
			IsActive:  s.IsActive,
			CreatedAt: s.CreatedAt.Format(time.RFC3339),
			UpdatedAt: s.UpdatedAt.Format(time.RFC3339),
		}
	}

	return &SlotListResponse{
		Slots: result,
		Total: resp.Total,
	}
}
