package reconcile_occupancy

import (
	"context"

	reconcileOccupancy "github.com/m04kA/SMC-ParkingService/internal/usecase/reconcile_occupancy"
)

type ReconcileOccupancyUseCase interface {
	Execute(ctx context.Context, req *reconcileOccupancy.Request) (*reconcileOccupancy.Response, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
