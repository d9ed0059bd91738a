package cancel_booking

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-ParkingService/internal/domain"
	bookingRepo "github.com/m04kA/SMC-ParkingService/internal/infra/storage/booking"
	catalogRepo "github.com/m04kA/SMC-ParkingService/internal/infra/storage/catalog"
	"github.com/m04kA/SMC-ParkingService/pkg/ptr"
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

func (s *fakeStore) Cancel(_ context.Context, id int64, reason *string, endTime time.Time) error {
	b := s.bookings[id]
	b.Status = domain.StatusCancelled
	b.CancellationReason = reason
	b.CancelledAt = &endTime
	b.EndTime = endTime
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
		Capacity:  domain.CountByClass{TwoWheeler: 5},
		Occupancy: domain.CountByClass{TwoWheeler: 1},
		IsActive:  true,
	}
	store.slots[3] = &domain.Slot{
		ID:         3,
		LocationID: 1,
		Class:      domain.ClassTwoWheeler,
		Status:     domain.SlotReserved,
		IsActive:   true,
	}
	store.bookings[7] = &domain.Booking{
		ID:           7,
		UserID:       42,
		SlotID:       3,
		LocationID:   1,
		VehicleClass: domain.ClassTwoWheeler,
		StartTime:    start,
		EndTime:      start.Add(3 * time.Hour),
		Status:       domain.StatusActive,
	}
}

func newTestUseCase(store *fakeStore, txErr error, now time.Time) *UseCase {
	uc := NewUseCase(store, store, &fakeTxManager{err: txErr}, nopLogger{})
	uc.timeProvider = fixedTime{now: now}
	return uc
}

func TestCancelBooking_Success(t *testing.T) {
	store := newFakeStore()
	seedActiveBooking(store)
	now := time.Date(2026, 9, 1, 10, 20, 0, 0, time.UTC)
	uc := newTestUseCase(store, nil, now)

	reason := ptr.Ptr("changed plans")
	resp, err := uc.Execute(context.Background(), &Request{
		BookingID: 7,
		Actor:     domain.Actor{UserID: 42, Role: domain.RoleUser},
		Reason:    reason,
	})
	require.NoError(t, err)

	assert.Equal(t, string(domain.StatusCancelled), resp.Status)
	require.NotNil(t, resp.CancellationReason)
	assert.Equal(t, "changed plans", *resp.CancellationReason)
	require.NotNil(t, resp.CancelledAt)
	assert.Equal(t, now, *resp.CancelledAt)
	assert.Equal(t, now, resp.EndTime)

	assert.Equal(t, domain.StatusCancelled, store.bookings[7].Status)
	assert.Equal(t, domain.SlotAvailable, store.slots[3].Status)
	assert.Equal(t, 0, store.locations[1].Occupancy.TwoWheeler)
}

func TestCancelBooking_WithoutReason(t *testing.T) {
	store := newFakeStore()
	seedActiveBooking(store)
	uc := newTestUseCase(store, nil, time.Now())

	resp, err := uc.Execute(context.Background(), &Request{
		BookingID: 7,
		Actor:     domain.Actor{UserID: 42, Role: domain.RoleUser},
	})
	require.NoError(t, err)
	assert.Nil(t, resp.CancellationReason)
}

func TestCancelBooking_PendingBooking(t *testing.T) {
	store := newFakeStore()
	seedActiveBooking(store)
	store.bookings[7].Status = domain.StatusPending
	uc := newTestUseCase(store, nil, time.Now())

	resp, err := uc.Execute(context.Background(), &Request{
		BookingID: 7,
		Actor:     domain.Actor{UserID: 42, Role: domain.RoleUser},
	})
	require.NoError(t, err)
	assert.Equal(t, string(domain.StatusCancelled), resp.Status)
}

func TestCancelBooking_Forbidden(t *testing.T) {
	store := newFakeStore()
	seedActiveBooking(store)
	uc := newTestUseCase(store, nil, time.Now())

	_, err := uc.Execute(context.Background(), &Request{
		BookingID: 7,
		Actor:     domain.Actor{UserID: 99, Role: domain.RoleUser},
	})
	assert.ErrorIs(t, err, ErrForbidden)
	assert.Equal(t, domain.StatusActive, store.bookings[7].Status)
}

func TestCancelBooking_NotFound(t *testing.T) {
	store := newFakeStore()
	uc := newTestUseCase(store, nil, time.Now())

	_, err := uc.Execute(context.Background(), &Request{
		BookingID: 404,
		Actor:     domain.Actor{UserID: 42, Role: domain.RoleUser},
	})
	assert.ErrorIs(t, err, ErrBookingNotFound)
}

func TestCancelBooking_TerminalBooking(t *testing.T) {
	store := newFakeStore()
	seedActiveBooking(store)
	store.bookings[7].Status = domain.StatusCompleted
	uc := newTestUseCase(store, nil, time.Now())

	_, err := uc.Execute(context.Background(), &Request{
		BookingID: 7,
		Actor:     domain.Actor{UserID: 42, Role: domain.RoleUser},
	})
	assert.ErrorIs(t, err, ErrInvalidStateTransition)
	// Повторная отмена не трогает слот и occupancy
	assert.Equal(t, domain.SlotReserved, store.slots[3].Status)
	assert.Equal(t, 1, store.locations[1].Occupancy.TwoWheeler)
}

func TestCancelBooking_OccupancyClampedAtZero(t *testing.T) {
	store := newFakeStore()
	seedActiveBooking(store)
	store.locations[1].Occupancy.TwoWheeler = 0
	uc := newTestUseCase(store, nil, time.Now())

	_, err := uc.Execute(context.Background(), &Request{
		BookingID: 7,
		Actor:     domain.Actor{UserID: 42, Role: domain.RoleUser},
	})
	require.NoError(t, err)
	assert.Equal(t, 0, store.locations[1].Occupancy.TwoWheeler)
}

func TestCancelBooking_SerializationConflict(t *testing.T) {
	store := newFakeStore()
	seedActiveBooking(store)
	uc := newTestUseCase(store, txmanager.ErrSerializationFailure, time.Now())

	_, err := uc.Execute(context.Background(), &Request{
		BookingID: 7,
		Actor:     domain.Actor{UserID: 42, Role: domain.RoleUser},
	})
	assert.ErrorIs(t, err, ErrConflict)
}

func TestCancelBooking_ReasonTooLong(t *testing.T) {
	store := newFakeStore()
	seedActiveBooking(store)
	uc := newTestUseCase(store, nil, time.Now())

	long := make([]byte, domain.MaxCancellationReasonLength+1)
	for i := range long {
		long[i] = 'x'
	}
	reason := string(long)

	_, err := uc.Execute(context.Background(), &Request{
		BookingID: 7,
		Actor:     domain.Actor{UserID: 42, Role: domain.RoleUser},
		Reason:    &reason,
	})
	assert.ErrorIs(t, err, ErrInvalidInput)
}
