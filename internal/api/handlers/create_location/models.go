package create_location

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

// CreateLocationRequest HTTP request model
type CreateLocationRequest struct {
	Name        string       `json:"name"`
	Description string       `json:"description"`
	Zone        string       `json:"zone"`
	Type        string       `json:"type"` // indoor | outdoor
	Capacity    CountByClass `json:"capacity"`
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

// ToServiceRequest конвертирует HTTP запрос в модель сервиса
func (r *CreateLocationRequest) ToServiceRequest() *models.CreateLocationRequest {
	return &models.CreateLocationRequest{
		Name:        r.Name,
		Description: r.Description,
		Zone:        r.Zone,
		Type:        r.Type,
		Capacity: domain.CountByClass{
			TwoWheeler:  r.Capacity.TwoWheeler,
			FourWheeler: r.Capacity.FourWheeler,
			Bus:         r.Capacity.Bus,
		},
	}
}

// FromServiceResponse конвертирует ответ сервиса в HTTP response
func FromServiceResponse(resp *models.LocationResponse) *LocationResponse {
	return &LocationResponse{
		ID:           resp.ID,
		Name:         resp.Name,
		Description:  resp.Description,
		Zone:         resp.Zone,
		Type:         resp.Type,
		Capacity:     fromCount(resp.Capacity),
		Occupancy:    fromCount(resp.Occupancy),
		Availability: fromCount(resp.Availability),
		IsActive:     resp.IsActive,
		CreatedAt:    resp.CreatedAt.Format(time.RFC3339),
		UpdatedAt:    resp.UpdatedAt.Format(time.RFC3339),
	}
}

func fromCount(c domain.CountByClass) CountByClass {
	return CountByClass{
		TwoWheeler:  c.TwoWheeler,
		FourWheeler: c.FourWheeler,
		Bus:         c.Bus,
	}
}
