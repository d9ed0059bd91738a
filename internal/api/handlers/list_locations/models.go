package list_locations

import (
	"time"

	"github.com/m04kA/SMC-ParkingService/internal/domain"
	"github.com/m04kA/SMC-ParkingService/internal/service/catalog/models"
)

// CountByClass счетчики по классам ТС
type CountByClass struct {
	TwoWheeler  int `json:"twoWheeler"`
	FourWheeler int `json:"fourWheeler"`
	Bus         int `json:"bus"`
}

// LocationResponse HTTP response model
type LocationResponse struct {
	ID           int64        `json:"id"`
	Name         string       `json:"name"`
	Description  string       `json:"description"`
	Zone         string       `json:"zone"`
	Type         string       `json:"type"`
	Capacity     CountByClass `json:"capacity"`
	Occupancy    CountByClass `json:"occupancy"`
	Availability CountByClass `json:"availability"`
	IsActive     bool         `json:"isActive"`
	CreatedAt    string       `json:"createdAt"`
	UpdatedAt    string       `json:"updatedAt"`
}

// LocationListResponse HTTP response model со списком локаций
type LocationListResponse struct {
	Locations []LocationResponse `json:"locations"`
	Total     int                `json:"total"`
}

// FromServiceResponse конвертирует ответ сервиса в HTTP response
func FromServiceResponse(resp *models.LocationListResponse) *LocationListResponse {
	result := make([]LocationResponse, len(resp.Locations))
	for i, l := range resp.Locations {
		result[i] = LocationResponse{
			ID:           l.ID,
			Name:         l.Name,
			Description:  l.Description,
			Zone:         l.Zone,
			Type:         l.Type,
			Capacity:     fromCount(l.Capacity),
			Occupancy:    fromCount(l.Occupancy),
			Availability: fromCount(l.Availability),
			IsActive:     l.IsActive,
			CreatedAt:    l.CreatedAt.Format(time.RFC3339),
			UpdatedAt:    l.UpdatedAt.Format(time.RFC3339),
		}
	}

	return &LocationListResponse{
		Locations: result,
		Total:     resp.Total,
	}
}

func fromCount(c domain.CountByClass) CountByClass {
	return CountByClass{
		TwoWheeler:  c.TwoWheeler,
		FourWheeler: c.FourWheeler,
		Bus:         c.Bus,
	}
}
