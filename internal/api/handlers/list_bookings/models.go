package list_bookings

import (
	"net/url"
	"strconv"
	"time"

	"github.com/m04kA/SMC-ParkingService/internal/domain"
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

// ParseQuery собирает запрос сервиса из query-параметров
func ParseQuery(values url.Values, actor domain.Actor) (*models.ListBookingsRequest, error) {
	req := &models.ListBookingsRequest{Actor: actor}

	if raw := values.Get("userId"); raw != "" {
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return nil, err
		}
		req.UserID = &id
	}
	if raw := values.Get("locationId"); raw != "" {
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return nil, err
		}
		req.LocationID = &id
	}
	if raw := values.Get("slotId"); raw != "" {
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return nil, err
		}
		req.SlotID = &id
	}
	if raw := values.Get("status"); raw != "" {
		req.Status = &raw
	}
	if raw := values.Get("startDate"); raw != "" {
		t, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			return nil, err
		}
		req.StartDate = &t
	}
	if raw := values.Get("endDate"); raw != "" {
		t, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			return nil, err
		}
		req.EndDate = &t
	}
	if raw := values.Get("includeInactive"); raw != "" {
		include, err := strconv.ParseBool(raw)
		if err != nil {
			return nil, err
		}
		req.IncludeInactive = include
	}

	return req, nil
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
