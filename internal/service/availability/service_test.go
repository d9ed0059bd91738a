package availability

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-ParkingService/internal/domain"
	catalogRepo "github.com/m04kA/SMC-ParkingService/internal/infra/storage/catalog"
)

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

type fakeCatalog struct {
	slots map[int64]*domain.Slot
}

func (f *fakeCatalog) GetSlot(_ context.Context, id int64) (*domain.Slot, error) {
	slot, ok := f.slots[id]
	if !ok {
		return nil, catalogRepo.ErrSlotNotFound
	}
	return slot, nil
}

type fakeBookings struct {
	bookings []*domain.Booking
}

func (f *fakeBookings) ListOverlapping(_ context.Context, slotID int64, start, end time.Time) ([]*domain.Booking, error) {
	var result []*domain.Booking
	for _, b := range f.bookings {
		if b.SlotID == slotID && b.IsBlocking() && b.Overlaps(start, end) {
			result = append(result, b)
		}
	}
	return result, nil
}

func at(hour, minute int) time.Time {
	return time.Date(2026, 3, 14, hour, minute, 0, 0, time.UTC)
}

func newTestService(slot *domain.Slot, bookings ...*domain.Booking) *Service {
	catalog := &fakeCatalog{slots: map[int64]*domain.Slot{}}
	if slot != nil {
		catalog.slots[slot.ID] = slot
	}
	return NewService(catalog, &fakeBookings{bookings: bookings}, nopLogger{})
}

func TestIsAvailable_FreeSlot(t *testing.T) {
	slot := &domain.Slot{ID: 5, Status: domain.SlotAvailable, IsActive: true}
	svc := newTestService(slot)

	ok, err := svc.IsAvailable(context.Background(), 5, at(10, 0), at(11, 0))
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestIsAvailable_SlotNotFound(t *testing.T) {
	svc := newTestService(nil)

	_, err := svc.IsAvailable(context.Background(), 404, at(10, 0), at(11, 0))
	assert.ErrorIs(t, err, ErrSlotNotFound)
}

func TestIsAvailable_NotBookable(t *testing.T) {
	cases := []struct {
		name string
		slot *domain.Slot
	}{
		{"maintenance", &domain.Slot{ID: 5, Status: domain.SlotMaintenance, IsActive: true}},
		{"inactive", &domain.Slot{ID: 5, Status: domain.SlotAvailable, IsActive: false}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			svc := newTestService(tc.slot)

			ok, err := svc.IsAvailable(context.Background(), 5, at(10, 0), at(11, 0))
			require.NoError(t, err)
			assert.False(t, ok)
		})
	}
}

func TestIsAvailable_OverlappingBooking(t *testing.T) {
	slot := &domain.Slot{ID: 5, Status: domain.SlotReserved, IsActive: true}
	booking := &domain.Booking{
		ID:        1,
		SlotID:    5,
		Status:    domain.StatusActive,
		StartTime: at(10, 0),
		EndTime:   at(11, 0),
	}
	svc := newTestService(slot, booking)

	ok, err := svc.IsAvailable(context.Background(), 5, at(10, 30), at(11, 30))
	require.NoError(t, err)
	assert.False(t, ok)

	// Граничащее окно не пересекается
	ok, err = svc.IsAvailable(context.Background(), 5, at(11, 0), at(12, 0))
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestIsAvailable_CancelledBookingIgnored(t *testing.T) {
	slot := &domain.Slot{ID: 5, Status: domain.SlotAvailable, IsActive: true}
	booking := &domain.Booking{
		ID:        1,
		SlotID:    5,
		Status:    domain.StatusCancelled,
		StartTime: at(10, 0),
		EndTime:   at(11, 0),
	}
	svc := newTestService(slot, booking)

	ok, err := svc.IsAvailable(context.Background(), 5, at(10, 0), at(11, 0))
	require.NoError(t, err)
	assert.True(t, ok)
}
