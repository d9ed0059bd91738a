package create_booking

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-ParkingService/internal/domain"
	catalogRepo "github.com/m04kA/SMC-ParkingService/internal/infra/storage/catalog"
	availabilitySvc "github.com/m04kA/SMC-ParkingService/internal/service/availability"
	"github.com/m04kA/SMC-ParkingService/pkg/txmanager"
)

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

// fakeStore in-memory хранилище слотов, локаций и бронирований
type fakeStore struct {
	slots     map[int64]*domain.Slot
	locations map[int64]*domain.Location
	bookings  map[int64]*domain.Booking
	nextID    int64

	slotStatusUpdates map[int64]domain.SlotStatus
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		slots:             make(map[int64]*domain.Slot),
		locations:         make(map[int64]*domain.Location),
		bookings:          make(map[int64]*domain.Booking),
		nextID:            1,
		slotStatusUpdates: make(map[int64]domain.SlotStatus),
	}
}

func (s *fakeStore) GetSlot(_ context.Context, id int64) (*domain.Slot, error) {
	slot, ok := s.slots[id]
	if !ok {
		return nil, catalogRepo.ErrSlotNotFound
	}
	copied := *slot
	return &copied, nil
}

func (s *fakeStore) GetSlotForUpdate(ctx context.Context, id int64) (*domain.Slot, error) {
	return s.GetSlot(ctx, id)
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
	s.slotStatusUpdates[id] = status
	return nil
}

func (s *fakeStore) UpdateOccupancy(_ context.Context, locationID int64, occupancy domain.CountByClass) error {
	s.locations[locationID].Occupancy = occupancy
	return nil
}

func (s *fakeStore) Create(_ context.Context, booking *domain.Booking) (*domain.Booking, error) {
	copied := *booking
	copied.ID = s.nextID
	s.nextID++
	copied.CreatedAt = time.Now()
	copied.UpdatedAt = copied.CreatedAt
	s.bookings[copied.ID] = &copied
	return &copied, nil
}

func (s *fakeStore) ListOverlapping(_ context.Context, slotID int64, start, end time.Time) ([]*domain.Booking, error) {
	var result []*domain.Booking
	for _, b := range s.bookings {
		if b.SlotID == slotID && b.IsBlocking() && b.Overlaps(start, end) {
			result = append(result, b)
		}
	}
	return result, nil
}

// fakeTxManager выполняет callback без транзакции
type fakeTxManager struct {
	err error
}

func (m *fakeTxManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	if m.err != nil {
		return m.err
	}
	return fn(ctx)
}

func newTestUseCase(store *fakeStore, txErr error) *UseCase {
	availability := availabilitySvc.NewService(store, store, nopLogger{})
	return NewUseCase(store, store, availability, &fakeTxManager{err: txErr}, nopLogger{})
}

func seedSlot(store *fakeStore) {
	store.locations[1] = &domain.Location{
		ID:       1,
		Name:     "Central Garage",
		Type:     domain.LocationIndoor,
		Capacity: domain.CountByClass{FourWheeler: 10},
		IsActive: true,
	}
	store.slots[5] = &domain.Slot{
		ID:         5,
		LocationID: 1,
		Number:     "A-5",
		Class:      domain.ClassFourWheeler,
		Status:     domain.SlotAvailable,
		IsActive:   true,
	}
}

func validRequest() *Request {
	start := time.Date(2026, 9, 1, 10, 0, 0, 0, time.UTC)
	return &Request{
		UserID:        42,
		SlotID:        5,
		VehicleClass:  domain.ClassFourWheeler,
		VehicleNumber: "A123BC",
		StartTime:     start,
		EndTime:       start.Add(1 * time.Hour),
	}
}

func TestCreateBooking_Success(t *testing.T) {
	store := newFakeStore()
	seedSlot(store)
	uc := newTestUseCase(store, nil)

	resp, err := uc.Execute(context.Background(), validRequest())
	require.NoError(t, err)

	assert.Equal(t, int64(1), resp.ID)
	assert.Equal(t, int64(42), resp.UserID)
	assert.Equal(t, int64(5), resp.SlotID)
	assert.Equal(t, int64(1), resp.LocationID)
	assert.Equal(t, string(domain.StatusActive), resp.Status)

	// Слот зарезервирован, occupancy локации увеличена
	assert.Equal(t, domain.SlotReserved, store.slots[5].Status)
	assert.Equal(t, 1, store.locations[1].Occupancy.FourWheeler)
}

func TestCreateBooking_SlotNotFound(t *testing.T) {
	store := newFakeStore()
	uc := newTestUseCase(store, nil)

	_, err := uc.Execute(context.Background(), validRequest())
	assert.ErrorIs(t, err, ErrSlotNotFound)
}

func TestCreateBooking_InactiveSlot(t *testing.T) {
	store := newFakeStore()
	seedSlot(store)
	store.slots[5].IsActive = false
	uc := newTestUseCase(store, nil)

	_, err := uc.Execute(context.Background(), validRequest())
	assert.ErrorIs(t, err, ErrSlotNotFound)
}

func TestCreateBooking_ClassMismatch(t *testing.T) {
	store := newFakeStore()
	seedSlot(store)
	uc := newTestUseCase(store, nil)

	req := validRequest()
	req.VehicleClass = domain.ClassBus

	_, err := uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrClassMismatch)
}

func TestCreateBooking_InvalidTimeRange(t *testing.T) {
	store := newFakeStore()
	seedSlot(store)
	uc := newTestUseCase(store, nil)

	req := validRequest()
	req.EndTime = req.StartTime

	_, err := uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrInvalidTimeRange)

	req.EndTime = req.StartTime.Add(-time.Hour)
	_, err = uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrInvalidTimeRange)
}

func TestCreateBooking_MaintenanceSlot(t *testing.T) {
	store := newFakeStore()
	seedSlot(store)
	store.slots[5].Status = domain.SlotMaintenance
	uc := newTestUseCase(store, nil)

	_, err := uc.Execute(context.Background(), validRequest())
	assert.ErrorIs(t, err, ErrSlotNotAvailable)
}

func TestCreateBooking_OverlapRejected(t *testing.T) {
	store := newFakeStore()
	seedSlot(store)
	uc := newTestUseCase(store, nil)

	_, err := uc.Execute(context.Background(), validRequest())
	require.NoError(t, err)

	// Окно внутри существующего [10:00, 11:00)
	req := validRequest()
	req.UserID = 43
	req.StartTime = time.Date(2026, 9, 1, 10, 30, 0, 0, time.UTC)
	req.EndTime = time.Date(2026, 9, 1, 10, 45, 0, 0, time.UTC)

	_, err = uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrSlotNotAvailable)
}

func TestCreateBooking_AdjacentWindowsAllowed(t *testing.T) {
	store := newFakeStore()
	seedSlot(store)
	uc := newTestUseCase(store, nil)

	_, err := uc.Execute(context.Background(), validRequest())
	require.NoError(t, err)

	// [11:00, 12:00) граничит с [10:00, 11:00) - пересечения нет
	req := validRequest()
	req.UserID = 43
	req.StartTime = time.Date(2026, 9, 1, 11, 0, 0, 0, time.UTC)
	req.EndTime = time.Date(2026, 9, 1, 12, 0, 0, 0, time.UTC)

	resp, err := uc.Execute(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, int64(2), resp.ID)
	assert.Equal(t, 2, store.locations[1].Occupancy.FourWheeler)
}

func TestCreateBooking_CapacityFull(t *testing.T) {
	store := newFakeStore()
	seedSlot(store)
	// Дрейф: occupancy уже на пределе capacity
	store.locations[1].Occupancy.FourWheeler = 10
	uc := newTestUseCase(store, nil)

	_, err := uc.Execute(context.Background(), validRequest())
	assert.ErrorIs(t, err, ErrSlotNotAvailable)
}

func TestCreateBooking_SerializationConflict(t *testing.T) {
	store := newFakeStore()
	seedSlot(store)
	uc := newTestUseCase(store, txmanager.ErrSerializationFailure)

	_, err := uc.Execute(context.Background(), validRequest())
	assert.ErrorIs(t, err, ErrConflict)
}

func TestCreateBooking_Validation(t *testing.T) {
	store := newFakeStore()
	seedSlot(store)
	uc := newTestUseCase(store, nil)

	tests := []struct {
		name   string
		mutate func(*Request)
	}{
		{"zero user", func(r *Request) { r.UserID = 0 }},
		{"zero slot", func(r *Request) { r.SlotID = 0 }},
		{"unknown class", func(r *Request) { r.VehicleClass = "truck" }},
		{"empty vehicle number", func(r *Request) { r.VehicleNumber = "   " }},
		{"zero start time", func(r *Request) { r.StartTime = time.Time{} }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := validRequest()
			tt.mutate(req)
			_, err := uc.Execute(context.Background(), req)
			assert.ErrorIs(t, err, ErrInvalidInput)
		})
	}
}
