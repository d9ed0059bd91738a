package complete_booking

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-ParkingService/internal/domain"
	bookingRepo "github.com/m04kA/SMC-ParkingService/internal/infra/storage/booking"
	catalogRepo "github.com/m04kA/SMC-ParkingService/internal/infra/storage/catalog"
	"github.com/m04kA/SMC-ParkingService/pkg/txmanager"
)

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

type fakeStore struct {
	slots     map[int64]*domain.Slot
	locations map[int64]*domain.Location
	bookings  map[int64]*domain.Booking
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		slots:     make(map[int64]*domain.Slot),
		locations: make(map[int64]*domain.Location),
		bookings:  make(map[int64]*domain.Booking),
	}
}

func (s *fakeStore) GetSlotForUpdate(_ context.Context, id int64) (*domain.Slot, error) {
	slot, ok := s.slots[id]
	if !ok {
		return nil, catalogRepo.ErrSlotNotFound
	}
	copied := *slot
	return &copied, nil
}

func (s *fakeStore) GetLocationForUpdate(_ context.Context, id int64) (*domain.Location, error) {
	location, ok := s.locations[id]
	if !ok {
		return nil, catalogRepo.ErrLocationNotFound
	}
	copied := *location
	return &copied, nil
}

func (s *fakeStore) UpdateSlotStatus(_ context.Context, id int64, status domain.SlotStatus) error {
	s.slots[id].Status = status
	return nil
}

func (s *fakeStore) UpdateOccupancy(_ context.Context, locationID int64, occupancy domain.CountByClass) error {
	s.locations[locationID].Occupancy = occupancy
	return nil
}

func (s *fakeStore) GetByIDForUpdate(_ context.Context, id int64) (*domain.Booking, error) {
	booking, ok := s.bookings[id]
	if !ok {
		return nil, bookingRepo.ErrBookingNotFound
	}
	copied := *booking
	return &copied, nil
}

func (s *fakeStore) UpdateStatus(_ context.Context, id int64, status domain.BookingStatus, endTime *time.Time) error {
	s.bookings[id].Status = status
	if endTime != nil {
		s.bookings[id].EndTime = *endTime
	}
	return nil
}

type fakeTxManager struct {
	err error
}

func (m *fakeTxManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	if m.err != nil {
		return m.err
	}
	return fn(ctx)
}

type fixedTime struct {
	now time.Time
}

func (t fixedTime) Now() time.Time { return t.now }

func seedActiveBooking(store *fakeStore) {
	start := time.Date(2026, 9, 1, 10, 0, 0, 0, time.UTC)
	store.locations[1] = &domain.Location{
		ID:        1,
		Capacity:  domain.CountByClass{FourWheeler: 10},
		Occupancy: domain.CountByClass{FourWheeler: 1},
		IsActive:  true,
	}
	store.slots[5] = &domain.Slot{
		ID:         5,
		LocationID: 1,
		Class:      domain.ClassFourWheeler,
		Status:     domain.SlotReserved,
		IsActive:   true,
	}
	store.bookings[9] = &domain.Booking{
		ID:           9,
		UserID:       42,
		SlotID:       5,
		LocationID:   1,
		VehicleClass: domain.ClassFourWheeler,
		StartTime:    start,
		EndTime:      start.Add(2 * time.Hour),
		Status:       domain.StatusActive,
	}
}

func newTestUseCase(store *fakeStore, txErr error, now time.Time) *UseCase {
	uc := NewUseCase(store, store, &fakeTxManager{err: txErr}, nopLogger{})
	uc.timeProvider = fixedTime{now: now}
	return uc
}

func TestCompleteBooking_Success(t *testing.T) {
	store := newFakeStore()
	seedActiveBooking(store)
	now := time.Date(2026, 9, 1, 11, 30, 0, 0, time.UTC)
	uc := newTestUseCase(store, nil, now)

	resp, err := uc.Execute(context.Background(), &Request{
		BookingID: 9,
		Actor:     domain.Actor{UserID: 42, Role: domain.RoleUser},
	})
	require.NoError(t, err)

	assert.Equal(t, string(domain.StatusCompleted), resp.Status)
	// Фактическое время окончания перезаписывается моментом завершения
	assert.Equal(t, now, resp.EndTime)

	assert.Equal(t, domain.StatusCompleted, store.bookings[9].Status)
	assert.Equal(t, domain.SlotAvailable, store.slots[5].Status)
	assert.Equal(t, 0, store.locations[1].Occupancy.FourWheeler)
}

func TestCompleteBooking_AdminMayComplete(t *testing.T) {
	store := newFakeStore()
	seedActiveBooking(store)
	uc := newTestUseCase(store, nil, time.Now())

	_, err := uc.Execute(context.Background(), &Request{
		BookingID: 9,
		Actor:     domain.Actor{UserID: 1, Role: domain.RoleAdmin},
	})
	require.NoError(t, err)
}

func TestCompleteBooking_Forbidden(t *testing.T) {
	store := newFakeStore()
	seedActiveBooking(store)
	uc := newTestUseCase(store, nil, time.Now())

	_, err := uc.Execute(context.Background(), &Request{
		BookingID: 9,
		Actor:     domain.Actor{UserID: 99, Role: domain.RoleUser},
	})
	assert.ErrorIs(t, err, ErrForbidden)
	// Побочных эффектов нет
	assert.Equal(t, domain.StatusActive, store.bookings[9].Status)
	assert.Equal(t, domain.SlotReserved, store.slots[5].Status)
}

func TestCompleteBooking_NotFound(t *testing.T) {
	store := newFakeStore()
	uc := newTestUseCase(store, nil, time.Now())

	_, err := uc.Execute(context.Background(), &Request{
		BookingID: 404,
		Actor:     domain.Actor{UserID: 42, Role: domain.RoleUser},
	})
	assert.ErrorIs(t, err, ErrBookingNotFound)
}

func TestCompleteBooking_AlreadyCompleted(t *testing.T) {
	store := newFakeStore()
	seedActiveBooking(store)
	store.bookings[9].Status = domain.StatusCompleted
	uc := newTestUseCase(store, nil, time.Now())

	_, err := uc.Execute(context.Background(), &Request{
		BookingID: 9,
		Actor:     domain.Actor{UserID: 42, Role: domain.RoleUser},
	})
	assert.ErrorIs(t, err, ErrInvalidStateTransition)
	// Повторное завершение не трогает слот и occupancy
	assert.Equal(t, domain.SlotReserved, store.slots[5].Status)
	assert.Equal(t, 1, store.locations[1].Occupancy.FourWheeler)
}

func TestCompleteBooking_CancelledBooking(t *testing.T) {
	store := newFakeStore()
	seedActiveBooking(store)
	store.bookings[9].Status = domain.StatusCancelled
	uc := newTestUseCase(store, nil, time.Now())

	_, err := uc.Execute(context.Background(), &Request{
		BookingID: 9,
		Actor:     domain.Actor{UserID: 42, Role: domain.RoleUser},
	})
	assert.ErrorIs(t, err, ErrInvalidStateTransition)
}

func TestCompleteBooking_OccupancyClampedAtZero(t *testing.T) {
	store := newFakeStore()
	seedActiveBooking(store)
	// Дрейф: occupancy уже ноль, декремент не должен увести её в минус
	store.locations[1].Occupancy.FourWheeler = 0
	uc := newTestUseCase(store, nil, time.Now())

	_, err := uc.Execute(context.Background(), &Request{
		BookingID: 9,
		Actor:     domain.Actor{UserID: 42, Role: domain.RoleUser},
	})
	require.NoError(t, err)
	assert.Equal(t, 0, store.locations[1].Occupancy.FourWheeler)
}

func TestCompleteBooking_MissingSlotTolerated(t *testing.T) {
	store := newFakeStore()
	seedActiveBooking(store)
	delete(store.slots, 5)
	uc := newTestUseCase(store, nil, time.Now())

	_, err := uc.Execute(context.Background(), &Request{
		BookingID: 9,
		Actor:     domain.Actor{UserID: 42, Role: domain.RoleUser},
	})
	require.NoError(t, err)
	assert.Equal(t, domain.StatusCompleted, store.bookings[9].Status)
}

func TestCompleteBooking_SerializationConflict(t *testing.T) {
	store := newFakeStore()
	seedActiveBooking(store)
	uc := newTestUseCase(store, txmanager.ErrSerializationFailure, time.Now())

	_, err := uc.Execute(context.Background(), &Request{
		BookingID: 9,
		Actor:     domain.Actor{UserID: 42, Role: domain.RoleUser},
	})
	assert.ErrorIs(t, err, ErrConflict)
}
