package models

import (
	"time"

	"github.com/m04kA/SMC-ParkingService/internal/domain"
)

// CreateLocationRequest запрос на создание локации
type CreateLocationRequest struct {
	Name        string
	Description string
	Zone        string
	Type        string // indoor | outdoor
	Capacity    domain.CountByClass
}

// UpdateLocationRequest запрос на обновление локации.
// Nil-поля не изменяются.
type UpdateLocationRequest struct {
	ID          int64
	Name        *string
	Description *string
	Zone        *string
	Type        *string
	Capacity    *domain.CountByClass
	IsActive    *bool
}

// LocationResponse модель локации для чтения
type LocationResponse struct {
	ID           int64
	Name         string
	Description  string
	Zone         string
	Type         string
	Capacity     domain.CountByClass
	Occupancy    domain.CountByClass
	Availability domain.CountByClass
	IsActive     bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// LocationListResponse список локаций
type LocationListResponse struct {
	Locations []LocationResponse
	Total     int
}

// CreateSlotRequest запрос на создание слота
type CreateSlotRequest struct {
	LocationID int64
	Number     string
	Class      string
	PositionX  int
	PositionY  int
}

// UpdateSlotRequest запрос на обновление слота.
// Nil-поля не изменяются. Status принимает только available/maintenance.
type UpdateSlotRequest struct {
	ID        int64
	Number    *string
	Class     *string
	Status    *string
	PositionX *int
	PositionY *int
	Sensor    *SensorUpdate
	IsActive  *bool
}

// SensorUpdate обновление advisory-полей сенсора слота
type SensorUpdate struct {
	IsOccupied    bool
	Confidence    float64
	DetectedClass *string
}

// SlotResponse модель слота для чтения
type SlotResponse struct {
	ID            int64
	LocationID    int64
	Number        string
	Class         string
	Status        string
	PositionX     int
	PositionY     int
	SensorData    SensorResponse
	IsActive      bool
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// SensorResponse advisory-поля сенсора
type SensorResponse struct {
	IsOccupied    bool
	Confidence    float64
	DetectedClass *string
	LastUpdated   *time.Time
}

// SlotListResponse список слотов
type SlotListResponse struct {
	Slots []SlotResponse
	Total int
}

// ListSlotsRequest запрос списка слотов
type ListSlotsRequest struct {
	LocationID *int64
	Class      *string
	Status     *string
}

// ToDomainFilter конвертирует запрос в domain-фильтр
func (r *ListSlotsRequest) ToDomainFilter() (domain.SlotFilter, error) {
	filter := domain.SlotFilter{LocationID: r.LocationID}

	if r.Class != nil {
		class, err := domain.ParseVehicleClass(*r.Class)
		if err != nil {
			return domain.SlotFilter{}, err
		}
		filter.Class = &class
	}
	if r.Status != nil {
		status, err := domain.ParseSlotStatus(*r.Status)
		if err != nil {
			return domain.SlotFilter{}, err
		}
		filter.Status = &status
	}

	return filter, nil
}

// FromDomainLocation конвертирует доменную модель локации в ответ
func FromDomainLocation(l *domain.Location) *LocationResponse {
	return &LocationResponse{
		ID:           l.ID,
		Name:         l.Name,
		Description:  l.Description,
		Zone:         l.Zone,
		Type:         string(l.Type),
		Capacity:     l.Capacity,
		Occupancy:    l.Occupancy,
		Availability: l.Availability(),
		IsActive:     l.IsActive,
		CreatedAt:    l.CreatedAt,
		UpdatedAt:    l.UpdatedAt,
	}
}

// FromDomainLocationList конвертирует список локаций в ответ
func FromDomainLocationList(locations []*domain.Location) *LocationListResponse {
	result := make([]LocationResponse, len(locations))
	for i, l := range locations {
		result[i] = *FromDomainLocation(l)
	}
	return &LocationListResponse{
		Locations: result,
		Total:     len(result),
	}
}

// FromDomainSlot конвертирует доменную модель слота в ответ
func FromDomainSlot(s *domain.Slot) *SlotResponse {
	var detectedClass *string
	if s.Sensor.DetectedClass != nil {
		v := string(*s.Sensor.DetectedClass)
		detectedClass = &v
	}

	return &SlotResponse{
		ID:         s.ID,
		LocationID: s.LocationID,
		Number:     s.Number,
		Class:      string(s.Class),
		Status:     string(s.Status),
		PositionX:  s.Position.X,
		PositionY:  s.Position.Y,
		SensorData: SensorResponse{
			IsOccupied:    s.Sensor.IsOccupied,
			Confidence:    s.Sensor.Confidence,
			DetectedClass: detectedClass,
			LastUpdated:   s.Sensor.LastUpdated,
		},
		IsActive:  s.IsActive,
		CreatedAt: s.CreatedAt,
		UpdatedAt: s.UpdatedAt,
	}
}

// FromDomainSlotList конвертирует список слотов в ответ
func FromDomainSlotList(slots []*domain.Slot) *SlotListResponse {
	result := make([]SlotResponse, len(slots))
	for i, s := range slots {
		result[i] = *FromDomainSlot(s)
	}
	return &SlotListResponse{
		Slots: result,
		Total: len(result),
	}
}
