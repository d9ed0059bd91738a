package get_slot

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

// FromServiceResponse конвертирует ответ сервиса в HTTP response
func FromServiceResponse(resp *models.SlotResponse) *SlotResponse {
	var lastUpdated *string
	if resp.SensorData.LastUpdated != nil {
		v := resp.SensorData.LastUpdated.Format(time.RFC3339)
		lastUpdated = &v
	}

	return &SlotResponse{
		ID:         resp.ID,
		LocationID: resp.LocationID,
		Number:     resp.Number,
		Class:      resp.Class,
		Status:     resp.Status,
		PositionX:  resp.PositionX,
		PositionY:  resp.PositionY,
		SensorData: SensorResponse{
			IsOccupied:    resp.SensorData.IsOccupied,
			Confidence:    resp.SensorData.Confidence,
			DetectedClass: resp.SensorData.DetectedClass,
			LastUpdated:   lastUpdated,
		},
		IsActive:  resp.IsActive,
		CreatedAt: resp.CreatedAt.Format(time.RFC3339),
		UpdatedAt: resp.UpdatedAt.Format(time.RFC3339),
	}
}
