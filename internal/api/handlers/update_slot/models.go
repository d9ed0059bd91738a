package update_slot

import (
	"time"

	"github.com/m04kA/SMC-ParkingService/internal/service/catalog/models"
)

// SensorUpdate обновление advisory-полей сенсора
type SensorUpdate struct {
	IsOccupied    bool    `json:"isOccupied"`
	Confidence    float64 `json:"confidence"`
	DetectedClass *string `json:"detectedClass,omitempty"`
}

// UpdateSlotRequest HTTP request model, отсутствующие поля не изменяются
type UpdateSlotRequest struct {
	Number    *string       `json:"number,omitempty"`
	Class     *string       `json:"class,omitempty"`
	Status    *string       `json:"status,omitempty"` // available | maintenance
	PositionX *int          `json:"positionX,omitempty"`
	PositionY *int          `json:"positionY,omitempty"`
	Sensor    *SensorUpdate `json:"sensor,omitempty"`
	IsActive  *bool         `json:"isActive,omitempty"`
}

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

// ToServiceRequest конвертирует HTTP запрос в модель сервиса
func (r *UpdateSlotRequest) ToServiceRequest(slotID int64) *models.UpdateSlotRequest {
	req := &models.UpdateSlotRequest{
		ID:        slotID,
		Number:    r.Number,
		Class:     r.Class,
		Status:    r.Status,
		PositionX: r.PositionX,
		PositionY: r.PositionY,
		IsActive:  r.IsActive,
	}
	if r.Sensor != nil {
		req.Sensor = &models.SensorUpdate{
			IsOccupied:    r.Sensor.IsOccupied,
			Confidence:    r.Sensor.Confidence,
			DetectedClass: r.Sensor.DetectedClass,
		}
	}
	return req
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
