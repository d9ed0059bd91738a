package reconcile_occupancy

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-ParkingService/internal/api/handlers"
	reconcileOccupancy "github.com/m04kA/SMC-ParkingService/internal/usecase/reconcile_occupancy"
)

const (
	msgInvalidLocationID = "некорректный ID локации"
	msgNotFound          = "локация не найдена"
)

type Handler struct {
	useCase ReconcileOccupancyUseCase
	logger  Logger
}

func NewHandler(useCase ReconcileOccupancyUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/locations/{locationId}/reconcile
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	locationID, err := strconv.ParseInt(vars["locationId"], 10, 64)
	if err != nil {
		h.logger.Warn("POST /locations/{id}/reconcile - Invalid location ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidLocationID)
		return
	}

	result, err := h.useCase.Execute(r.Context(), &reconcileOccupancy.Request{
		LocationID: locationID,
	})
	if err != nil {
		switch {
		case errors.Is(err, reconcileOccupancy.ErrLocationNotFound):
			h.logger.Warn("POST /locations/{id}/reconcile - Location not found: location_id=%d", locationID)
			handlers.RespondNotFound(w, msgNotFound)

		default:
			h.logger.Error("POST /locations/{id}/reconcile - Failed to reconcile: location_id=%d, error=%v",
				locationID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /locations/{id}/reconcile - Reconciliation finished: location_id=%d, corrected=%t",
		locationID, result.Corrected)
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
