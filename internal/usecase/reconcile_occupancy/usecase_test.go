package reconcile_occupancy

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-ParkingService/internal/domain"
	catalogRepo "github.com/m04kA/SMC-ParkingService/internal/infra/storage/catalog"
)

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

type fakeStore struct {
	locations map[int64]*domain.Location
	held      map[int64]domain.CountByClass

	occupancyWrites int
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		locations: make(map[int64]*domain.Location),
		held:      make(map[int64]domain.CountByClass),
	}
}

func (s *fakeStore) GetLocationForUpdate(_ context.Context, id int64) (*domain.Location, error) {
	location, ok := s.locations[id]
	if !ok {
		return nil, catalogRepo.ErrLocationNotFound
	}
	copied := *location
	return &copied, nil
}

func (s *fakeStore) CountHeldSlots(_ context.Context, locationID int64) (domain.CountByClass, error) {
	return s.held[locationID], nil
}

func (s *fakeStore) UpdateOccupancy(_ context.Context, locationID int64, occupancy domain.CountByClass) error {
	s.locations[locationID].Occupancy = occupancy
	s.occupancyWrites++
	return nil
}

type fakeTxManager struct{}

func (fakeTxManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

func TestReconcileOccupancy_DriftCorrected(t *testing.T) {
	store := newFakeStore()
	store.locations[1] = &domain.Location{
		ID:        1,
		Occupancy: domain.CountByClass{TwoWheeler: 5, FourWheeler: 2},
	}
	// Фактически заняты другие количества
	store.held[1] = domain.CountByClass{TwoWheeler: 3, FourWheeler: 2, Bus: 1}

	uc := NewUseCase(store, fakeTxManager{}, nopLogger{})
	resp, err := uc.Execute(context.Background(), &Request{LocationID: 1})
	require.NoError(t, err)

	assert.True(t, resp.Corrected)
	assert.Equal(t, domain.CountByClass{TwoWheeler: 3, FourWheeler: 2, Bus: 1}, store.locations[1].Occupancy)

	require.Len(t, resp.Results, 3)
	byClass := make(map[string]ClassResult)
	for _, r := range resp.Results {
		byClass[r.Class] = r
	}
	assert.True(t, byClass[string(domain.ClassTwoWheeler)].Drifted)
	assert.Equal(t, 5, byClass[string(domain.ClassTwoWheeler)].Previous)
	assert.Equal(t, 3, byClass[string(domain.ClassTwoWheeler)].Counted)
	assert.False(t, byClass[string(domain.ClassFourWheeler)].Drifted)
	assert.True(t, byClass[string(domain.ClassBus)].Drifted)
}

func TestReconcileOccupancy_ConsistentNoWrite(t *testing.T) {
	store := newFakeStore()
	store.locations[1] = &domain.Location{
		ID:        1,
		Occupancy: domain.CountByClass{FourWheeler: 4},
	}
	store.held[1] = domain.CountByClass{FourWheeler: 4}

	uc := NewUseCase(store, fakeTxManager{}, nopLogger{})
	resp, err := uc.Execute(context.Background(), &Request{LocationID: 1})
	require.NoError(t, err)

	assert.False(t, resp.Corrected)
	assert.Zero(t, store.occupancyWrites)
}

func TestReconcileOccupancy_Idempotent(t *testing.T) {
	store := newFakeStore()
	store.locations[1] = &domain.Location{
		ID:        1,
		Occupancy: domain.CountByClass{Bus: 9},
	}
	store.held[1] = domain.CountByClass{Bus: 1}

	uc := NewUseCase(store, fakeTxManager{}, nopLogger{})

	resp, err := uc.Execute(context.Background(), &Request{LocationID: 1})
	require.NoError(t, err)
	assert.True(t, resp.Corrected)

	// Повторный запуск не находит дрейфа
	resp, err = uc.Execute(context.Background(), &Request{LocationID: 1})
	require.NoError(t, err)
	assert.False(t, resp.Corrected)
	assert.Equal(t, 1, store.occupancyWrites)
}

func TestReconcileOccupancy_LocationNotFound(t *testing.T) {
	store := newFakeStore()
	uc := NewUseCase(store, fakeTxManager{}, nopLogger{})

	_, err := uc.Execute(context.Background(), &Request{LocationID: 404})
	assert.ErrorIs(t, err, ErrLocationNotFound)
}

func TestReconcileOccupancy_InvalidInput(t *testing.T) {
	store := newFakeStore()
	uc := NewUseCase(store, fakeTxManager{}, nopLogger{})

	_, err := uc.Execute(context.Background(), &Request{LocationID: 0})
	assert.ErrorIs(t, err, ErrInvalidInput)
}
