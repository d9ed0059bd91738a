package models

import (
	"fmt"
	"time"

	"github.com/m04kA/SMC-ParkingService/internal/domain"
)

// BookingResponse модель бронирования для чтения
type BookingResponse struct {
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

// BookingListResponse список бронирований
type BookingListResponse struct {
	Bookings []BookingResponse
	Total    int
}

// GetUserBookingsRequest запрос истории бронирований пользователя
type GetUserBookingsRequest struct {
	UserID int64
	Actor  domain.Actor
	Status *string // Фильтр по статусу (опционально)
}

// ListBookingsRequest запрос списка бронирований с фильтрацией
type ListBookingsRequest struct {
	Actor           domain.Actor
	UserID          *int64
	LocationID      *int64
	SlotID          *int64
	Status          *string
	StartDate       *time.Time
	EndDate         *time.Time
	IncludeInactive bool
}

// ToDomainFilter конвертирует запрос в domain-фильтр
func (r *ListBookingsRequest) ToDomainFilter() (domain.BookingFilter, error) {
	filter := domain.BookingFilter{
		UserID:          r.UserID,
		LocationID:      r.LocationID,
		SlotID:          r.SlotID,
		StartDate:       r.StartDate,
		EndDate:         r.EndDate,
		IncludeInactive: r.IncludeInactive,
	}

	if r.Status != nil {
		status, err := ToDomainBookingStatus(*r.Status)
		if err != nil {
			return domain.BookingFilter{}, err
		}
		filter.Status = &status
	}

	return filter, nil
}

// ToDomainBookingStatus валидирует и конвертирует строковый статус
func ToDomainBookingStatus(s string) (domain.BookingStatus, error) {
	switch domain.BookingStatus(s) {
	case domain.StatusPending, domain.StatusActive, domain.StatusCompleted, domain.StatusCancelled:
		return domain.BookingStatus(s), nil
	default:
		return "", fmt.Errorf("unknown booking status %q", s)
	}
}

// FromDomainBooking конвертирует доменную модель в ответ
func FromDomainBooking(b *domain.Booking) *BookingResponse {
	return &BookingResponse{
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

// FromDomainBookingList конвертирует список доменных моделей в ответ
func FromDomainBookingList(bookings []*domain.Booking) *BookingListResponse {
	result := make([]BookingResponse, len(bookings))
	for i, b := range bookings {
		result[i] = *FromDomainBooking(b)
	}
	return &BookingListResponse{
		Bookings: result,
		Total:    len(result),
	}
}
