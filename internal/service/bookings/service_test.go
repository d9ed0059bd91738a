package bookings

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-ParkingService/internal/domain"
	bookingRepo "github.com/m04kA/SMC-ParkingService/internal/infra/storage/booking"
	"github.com/m04kA/SMC-ParkingService/internal/service/bookings/models"
	"github.com/m04kA/SMC-ParkingService/pkg/ptr"
)

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

type fakeRepo struct {
	bookings map[int64]*domain.Booking

	lastFilter domain.BookingFilter
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{bookings: make(map[int64]*domain.Booking)}
}

func (r *fakeRepo) GetByID(_ context.Context, id int64) (*domain.Booking, error) {
	booking, ok := r.bookings[id]
	if !ok {
		return nil, bookingRepo.ErrBookingNotFound
	}
	return booking, nil
}

func (r *fakeRepo) GetByUserID(_ context.Context, userID int64, status *domain.BookingStatus) ([]*domain.Booking, error) {
	var result []*domain.Booking
	for _, b := range r.bookings {
		if b.UserID != userID {
			continue
		}
		if status != nil && b.Status != *status {
			continue
		}
		result = append(result, b)
	}
	return result, nil
}

func (r *fakeRepo) GetWithFilter(_ context.Context, filter domain.BookingFilter) ([]*domain.Booking, error) {
	r.lastFilter = filter
	var result []*domain.Booking
	for _, b := range r.bookings {
		if filter.UserID != nil && b.UserID != *filter.UserID {
			continue
		}
		result = append(result, b)
	}
	return result, nil
}

func seed(repo *fakeRepo) {
	repo.bookings[1] = &domain.Booking{ID: 1, UserID: 42, Status: domain.StatusActive}
	repo.bookings[2] = &domain.Booking{ID: 2, UserID: 42, Status: domain.StatusCompleted}
	repo.bookings[3] = &domain.Booking{ID: 3, UserID: 99, Status: domain.StatusActive}
}

func TestGetByID_OwnerAndAdmin(t *testing.T) {
	repo := newFakeRepo()
	seed(repo)
	svc := NewService(repo, nopLogger{})

	resp, err := svc.GetByID(context.Background(), 1, domain.Actor{UserID: 42, Role: domain.RoleUser})
	require.NoError(t, err)
	assert.Equal(t, int64(1), resp.ID)

	_, err = svc.GetByID(context.Background(), 1, domain.Actor{UserID: 7, Role: domain.RoleAdmin})
	require.NoError(t, err)
}

func TestGetByID_Forbidden(t *testing.T) {
	repo := newFakeRepo()
	seed(repo)
	svc := NewService(repo, nopLogger{})

	_, err := svc.GetByID(context.Background(), 1, domain.Actor{UserID: 99, Role: domain.RoleUser})
	assert.ErrorIs(t, err, ErrForbidden)
}

func TestGetByID_NotFound(t *testing.T) {
	repo := newFakeRepo()
	svc := NewService(repo, nopLogger{})

	_, err := svc.GetByID(context.Background(), 404, domain.Actor{UserID: 42, Role: domain.RoleUser})
	assert.ErrorIs(t, err, ErrBookingNotFound)
}

func TestGetUserBookings_OwnHistory(t *testing.T) {
	repo := newFakeRepo()
	seed(repo)
	svc := NewService(repo, nopLogger{})

	resp, err := svc.GetUserBookings(context.Background(), &models.GetUserBookingsRequest{
		UserID: 42,
		Actor:  domain.Actor{UserID: 42, Role: domain.RoleUser},
	})
	require.NoError(t, err)
	assert.Equal(t, 2, resp.Total)
}

func TestGetUserBookings_StatusFilter(t *testing.T) {
	repo := newFakeRepo()
	seed(repo)
	svc := NewService(repo, nopLogger{})

	resp, err := svc.GetUserBookings(context.Background(), &models.GetUserBookingsRequest{
		UserID: 42,
		Actor:  domain.Actor{UserID: 42, Role: domain.RoleUser},
		Status: ptr.Ptr("completed"),
	})
	require.NoError(t, err)
	assert.Equal(t, 1, resp.Total)

	_, err = svc.GetUserBookings(context.Background(), &models.GetUserBookingsRequest{
		UserID: 42,
		Actor:  domain.Actor{UserID: 42, Role: domain.RoleUser},
		Status: ptr.Ptr("bogus"),
	})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestGetUserBookings_InvalidUserID(t *testing.T) {
	repo := newFakeRepo()
	svc := NewService(repo, nopLogger{})

	_, err := svc.GetUserBookings(context.Background(), &models.GetUserBookingsRequest{
		UserID: 0,
		Actor:  domain.Actor{UserID: 42, Role: domain.RoleUser},
	})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestGetUserBookings_ForeignHistory(t *testing.T) {
	repo := newFakeRepo()
	seed(repo)
	svc := NewService(repo, nopLogger{})

	// Чужая история запрещена обычному пользователю
	_, err := svc.GetUserBookings(context.Background(), &models.GetUserBookingsRequest{
		UserID: 99,
		Actor:  domain.Actor{UserID: 42, Role: domain.RoleUser},
	})
	assert.ErrorIs(t, err, ErrForbidden)

	// Администратору доступна
	resp, err := svc.GetUserBookings(context.Background(), &models.GetUserBookingsRequest{
		UserID: 99,
		Actor:  domain.Actor{UserID: 1, Role: domain.RoleAdmin},
	})
	require.NoError(t, err)
	assert.Equal(t, 1, resp.Total)
}

func TestListBookings_NonAdminPinnedToOwn(t *testing.T) {
	repo := newFakeRepo()
	seed(repo)
	svc := NewService(repo, nopLogger{})

	// Не-админ просит чужие бронирования - фильтр принудительно сужается до своих
	resp, err := svc.ListBookings(context.Background(), &models.ListBookingsRequest{
		Actor:  domain.Actor{UserID: 42, Role: domain.RoleUser},
		UserID: ptr.Ptr(int64(99)),
	})
	require.NoError(t, err)
	assert.Equal(t, 2, resp.Total)
	require.NotNil(t, repo.lastFilter.UserID)
	assert.Equal(t, int64(42), *repo.lastFilter.UserID)
}

func TestListBookings_InvalidStatus(t *testing.T) {
	repo := newFakeRepo()
	svc := NewService(repo, nopLogger{})

	_, err := svc.ListBookings(context.Background(), &models.ListBookingsRequest{
		Actor:  domain.Actor{UserID: 1, Role: domain.RoleAdmin},
		Status: ptr.Ptr("expired"),
	})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestListBookings_AdminSeesAll(t *testing.T) {
	repo := newFakeRepo()
	seed(repo)
	svc := NewService(repo, nopLogger{})

	resp, err := svc.ListBookings(context.Background(), &models.ListBookingsRequest{
		Actor: domain.Actor{UserID: 1, Role: domain.RoleAdmin},
	})
	require.NoError(t, err)
	assert.Equal(t, 3, resp.Total)
	assert.Nil(t, repo.lastFilter.UserID)
}
