package catalog

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-ParkingService/internal/domain"
	catalogRepo "github.com/m04kA/SMC-ParkingService/internal/infra/storage/catalog"
	"github.com/m04kA/SMC-ParkingService/internal/service/catalog/models"
	"github.com/m04kA/SMC-ParkingService/pkg/ptr"
)

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

type fakeTxManager struct{}

func (fakeTxManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type fakeRepo struct {
	locations map[int64]*domain.Location
	slots     map[int64]*domain.Slot
	nextID    int64

	duplicateOnCreate bool
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{
		locations: make(map[int64]*domain.Location),
		slots:     make(map[int64]*domain.Slot),
		nextID:    100,
	}
}

func (r *fakeRepo) CreateLocation(_ context.Context, location *domain.Location) (*domain.Location, error) {
	if r.duplicateOnCreate {
		return nil, catalogRepo.ErrDuplicate
	}
	r.nextID++
	location.ID = r.nextID
	r.locations[location.ID] = location
	return location, nil
}

func (r *fakeRepo) GetLocation(_ context.Context, id int64) (*domain.Location, error) {
	location, ok := r.locations[id]
	if !ok {
		return nil, catalogRepo.ErrLocationNotFound
	}
	return location, nil
}

func (r *fakeRepo) GetLocationForUpdate(ctx context.Context, id int64) (*domain.Location, error) {
	return r.GetLocation(ctx, id)
}

func (r *fakeRepo) ListLocations(_ context.Context, includeInactive bool) ([]*domain.Location, error) {
	var result []*domain.Location
	for _, l := range r.locations {
		if !includeInactive && !l.IsActive {
			continue
		}
		result = append(result, l)
	}
	return result, nil
}

func (r *fakeRepo) UpdateLocation(_ context.Context, location *domain.Location) error {
	if _, ok := r.locations[location.ID]; !ok {
		return catalogRepo.ErrLocationNotFound
	}
	r.locations[location.ID] = location
	return nil
}

func (r *fakeRepo) DeleteLocation(_ context.Context, id int64) error {
	delete(r.locations, id)
	return nil
}

func (r *fakeRepo) CountSlotsByLocation(_ context.Context, locationID int64) (int, error) {
	count := 0
	for _, s := range r.slots {
		if s.LocationID == locationID {
			count++
		}
	}
	return count, nil
}

func (r *fakeRepo) CreateSlot(_ context.Context, slot *domain.Slot) (*domain.Slot, error) {
	if r.duplicateOnCreate {
		return nil, catalogRepo.ErrDuplicate
	}
	r.nextID++
	slot.ID = r.nextID
	r.slots[slot.ID] = slot
	return slot, nil
}

func (r *fakeRepo) GetSlot(_ context.Context, id int64) (*domain.Slot, error) {
	slot, ok := r.slots[id]
	if !ok {
		return nil, catalogRepo.ErrSlotNotFound
	}
	return slot, nil
}

func (r *fakeRepo) GetSlotForUpdate(ctx context.Context, id int64) (*domain.Slot, error) {
	return r.GetSlot(ctx, id)
}

func (r *fakeRepo) ListSlots(_ context.Context, filter domain.SlotFilter) ([]*domain.Slot, error) {
	var result []*domain.Slot
	for _, s := range r.slots {
		if filter.LocationID != nil && s.LocationID != *filter.LocationID {
			continue
		}
		if filter.Class != nil && s.Class != *filter.Class {
			continue
		}
		if filter.Status != nil && s.Status != *filter.Status {
			continue
		}
		result = append(result, s)
	}
	return result, nil
}

func (r *fakeRepo) UpdateSlot(_ context.Context, slot *domain.Slot) error {
	if _, ok := r.slots[slot.ID]; !ok {
		return catalogRepo.ErrSlotNotFound
	}
	r.slots[slot.ID] = slot
	return nil
}

func (r *fakeRepo) DeleteSlot(_ context.Context, id int64) error {
	delete(r.slots, id)
	return nil
}

func newTestService(repo *fakeRepo) *Service {
	return NewService(repo, fakeTxManager{}, nopLogger{})
}

func seedLocation(repo *fakeRepo) *domain.Location {
	location := &domain.Location{
		ID:       1,
		Name:     "Crystal Mall P1",
		Zone:     "north",
		Type:     domain.LocationIndoor,
		Capacity: domain.CountByClass{FourWheeler: 10, TwoWheeler: 4},
		IsActive: true,
	}
	repo.locations[location.ID] = location
	return location
}

func seedSlot(repo *fakeRepo, status domain.SlotStatus) *domain.Slot {
	slot := &domain.Slot{
		ID:         5,
		LocationID: 1,
		Number:     "A-5",
		Class:      domain.ClassFourWheeler,
		Status:     status,
		IsActive:   true,
	}
	repo.slots[slot.ID] = slot
	return slot
}

func TestCreateLocation_Success(t *testing.T) {
	repo := newFakeRepo()
	svc := newTestService(repo)

	resp, err := svc.CreateLocation(context.Background(), &models.CreateLocationRequest{
		Name:     "Riverside Garage",
		Zone:     "east",
		Type:     "outdoor",
		Capacity: domain.CountByClass{FourWheeler: 20},
	})
	require.NoError(t, err)
	assert.True(t, resp.IsActive)
	assert.Equal(t, domain.CountByClass{}, resp.Occupancy)
	assert.Equal(t, 20, resp.Availability.FourWheeler)
}

func TestCreateLocation_Validation(t *testing.T) {
	repo := newFakeRepo()
	svc := newTestService(repo)

	cases := []struct {
		name string
		req  models.CreateLocationRequest
	}{
		{"empty name", models.CreateLocationRequest{Type: "indoor"}},
		{"unknown type", models.CreateLocationRequest{Name: "Lot", Type: "underwater"}},
		{"negative capacity", models.CreateLocationRequest{Name: "Lot", Type: "indoor", Capacity: domain.CountByClass{Bus: -1}}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.CreateLocation(context.Background(), &tc.req)
			assert.ErrorIs(t, err, ErrInvalidInput)
		})
	}
}

func TestCreateLocation_Duplicate(t *testing.T) {
	repo := newFakeRepo()
	repo.duplicateOnCreate = true
	svc := newTestService(repo)

	_, err := svc.CreateLocation(context.Background(), &models.CreateLocationRequest{
		Name: "Crystal Mall P1",
		Type: "indoor",
	})
	assert.ErrorIs(t, err, ErrDuplicate)
}

func TestUpdateLocation_CapacityShrink(t *testing.T) {
	repo := newFakeRepo()
	location := seedLocation(repo)
	location.Occupancy = domain.CountByClass{FourWheeler: 6}
	svc := newTestService(repo)

	// Сжатие до occupancy допустимо
	resp, err := svc.UpdateLocation(context.Background(), &models.UpdateLocationRequest{
		ID:       1,
		Capacity: &domain.CountByClass{FourWheeler: 6, TwoWheeler: 4},
	})
	require.NoError(t, err)
	assert.Equal(t, 6, resp.Capacity.FourWheeler)

	// Ниже occupancy - нет
	_, err = svc.UpdateLocation(context.Background(), &models.UpdateLocationRequest{
		ID:       1,
		Capacity: &domain.CountByClass{FourWheeler: 5, TwoWheeler: 4},
	})
	assert.ErrorIs(t, err, ErrCapacityViolation)
}

func TestUpdateLocation_NotFound(t *testing.T) {
	repo := newFakeRepo()
	svc := newTestService(repo)

	_, err := svc.UpdateLocation(context.Background(), &models.UpdateLocationRequest{ID: 404})
	assert.ErrorIs(t, err, ErrLocationNotFound)
}

func TestDeleteLocation_BlockedBySlots(t *testing.T) {
	repo := newFakeRepo()
	seedLocation(repo)
	seedSlot(repo, domain.SlotAvailable)
	svc := newTestService(repo)

	err := svc.DeleteLocation(context.Background(), 1)
	assert.ErrorIs(t, err, ErrLocationHasSlots)
	assert.Contains(t, repo.locations, int64(1))
}

func TestDeleteLocation_Success(t *testing.T) {
	repo := newFakeRepo()
	seedLocation(repo)
	svc := newTestService(repo)

	err := svc.DeleteLocation(context.Background(), 1)
	require.NoError(t, err)
	assert.NotContains(t, repo.locations, int64(1))
}

func TestCreateSlot_BumpsCapacity(t *testing.T) {
	repo := newFakeRepo()
	seedLocation(repo)
	svc := newTestService(repo)

	resp, err := svc.CreateSlot(context.Background(), &models.CreateSlotRequest{
		LocationID: 1,
		Number:     "B-1",
		Class:      "bus",
	})
	require.NoError(t, err)
	assert.Equal(t, string(domain.SlotAvailable), resp.Status)
	assert.Equal(t, 1, repo.locations[1].Capacity.Bus)
}

func TestCreateSlot_LocationNotFound(t *testing.T) {
	repo := newFakeRepo()
	svc := newTestService(repo)

	_, err := svc.CreateSlot(context.Background(), &models.CreateSlotRequest{
		LocationID: 404,
		Number:     "B-1",
		Class:      "bus",
	})
	assert.ErrorIs(t, err, ErrLocationNotFound)
}

func TestUpdateSlot_AdminStatusRules(t *testing.T) {
	repo := newFakeRepo()
	seedLocation(repo)
	seedSlot(repo, domain.SlotAvailable)
	svc := newTestService(repo)

	// available -> maintenance разрешено
	resp, err := svc.UpdateSlot(context.Background(), &models.UpdateSlotRequest{
		ID:     5,
		Status: ptr.Ptr("maintenance"),
	})
	require.NoError(t, err)
	assert.Equal(t, string(domain.SlotMaintenance), resp.Status)

	// reserved - статус жизненного цикла бронирования
	_, err = svc.UpdateSlot(context.Background(), &models.UpdateSlotRequest{
		ID:     5,
		Status: ptr.Ptr("reserved"),
	})
	assert.ErrorIs(t, err, ErrInvalidSlotStatus)
}

func TestUpdateSlot_HeldSlotStatusChange(t *testing.T) {
	repo := newFakeRepo()
	seedLocation(repo)
	seedSlot(repo, domain.SlotReserved)
	svc := newTestService(repo)

	_, err := svc.UpdateSlot(context.Background(), &models.UpdateSlotRequest{
		ID:     5,
		Status: ptr.Ptr("maintenance"),
	})
	assert.ErrorIs(t, err, ErrSlotInUse)
}

func TestUpdateSlot_ClassChangeMovesCapacity(t *testing.T) {
	repo := newFakeRepo()
	seedLocation(repo)
	seedSlot(repo, domain.SlotAvailable)
	svc := newTestService(repo)

	resp, err := svc.UpdateSlot(context.Background(), &models.UpdateSlotRequest{
		ID:    5,
		Class: ptr.Ptr("two_wheeler"),
	})
	require.NoError(t, err)
	assert.Equal(t, "two_wheeler", resp.Class)
	assert.Equal(t, 9, repo.locations[1].Capacity.FourWheeler)
	assert.Equal(t, 5, repo.locations[1].Capacity.TwoWheeler)
}

func TestUpdateSlot_ClassChangeCapacityViolation(t *testing.T) {
	repo := newFakeRepo()
	location := seedLocation(repo)
	location.Capacity = domain.CountByClass{FourWheeler: 3}
	location.Occupancy = domain.CountByClass{FourWheeler: 3}
	seedSlot(repo, domain.SlotAvailable)
	svc := newTestService(repo)

	// Перенос единицы capacity уронил бы four_wheeler ниже occupancy
	_, err := svc.UpdateSlot(context.Background(), &models.UpdateSlotRequest{
		ID:    5,
		Class: ptr.Ptr("two_wheeler"),
	})
	assert.ErrorIs(t, err, ErrCapacityViolation)
}

func TestUpdateSlot_HeldSlotClassChange(t *testing.T) {
	repo := newFakeRepo()
	seedLocation(repo)
	seedSlot(repo, domain.SlotOccupied)
	svc := newTestService(repo)

	_, err := svc.UpdateSlot(context.Background(), &models.UpdateSlotRequest{
		ID:    5,
		Class: ptr.Ptr("two_wheeler"),
	})
	assert.ErrorIs(t, err, ErrSlotInUse)
}

func TestDeleteSlot_Success(t *testing.T) {
	repo := newFakeRepo()
	seedLocation(repo)
	seedSlot(repo, domain.SlotAvailable)
	svc := newTestService(repo)

	err := svc.DeleteSlot(context.Background(), 5)
	require.NoError(t, err)
	assert.NotContains(t, repo.slots, int64(5))
	assert.Equal(t, 9, repo.locations[1].Capacity.FourWheeler)
}

func TestDeleteSlot_Held(t *testing.T) {
	repo := newFakeRepo()
	seedLocation(repo)
	seedSlot(repo, domain.SlotReserved)
	svc := newTestService(repo)

	err := svc.DeleteSlot(context.Background(), 5)
	assert.ErrorIs(t, err, ErrSlotInUse)
	assert.Contains(t, repo.slots, int64(5))
}

func TestDeleteSlot_CapacityFloor(t *testing.T) {
	repo := newFakeRepo()
	location := seedLocation(repo)
	location.Capacity = domain.CountByClass{FourWheeler: 3}
	location.Occupancy = domain.CountByClass{FourWheeler: 3}
	seedSlot(repo, domain.SlotAvailable)
	svc := newTestService(repo)

	err := svc.DeleteSlot(context.Background(), 5)
	assert.ErrorIs(t, err, ErrCapacityViolation)
	assert.Contains(t, repo.slots, int64(5))
}

func TestGetSlot_NotFound(t *testing.T) {
	repo := newFakeRepo()
	svc := newTestService(repo)

	_, err := svc.GetSlot(context.Background(), 404)
	assert.ErrorIs(t, err, ErrSlotNotFound)
}

func TestListSlots_Filter(t *testing.T) {
	repo := newFakeRepo()
	seedLocation(repo)
	seedSlot(repo, domain.SlotAvailable)
	repo.slots[6] = &domain.Slot{ID: 6, LocationID: 1, Number: "M-1", Class: domain.ClassTwoWheeler, Status: domain.SlotAvailable, IsActive: true}
	svc := newTestService(repo)

	resp, err := svc.ListSlots(context.Background(), &models.ListSlotsRequest{
		LocationID: ptr.Ptr(int64(1)),
		Class:      ptr.Ptr("two_wheeler"),
	})
	require.NoError(t, err)
	require.Equal(t, 1, resp.Total)
	assert.Equal(t, "M-1", resp.Slots[0].Number)

	_, err = svc.ListSlots(context.Background(), &models.ListSlotsRequest{
		Class: ptr.Ptr("rollerblade"),
	})
	assert.ErrorIs(t, err, ErrInvalidInput)
}
