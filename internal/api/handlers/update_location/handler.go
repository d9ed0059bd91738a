package update_location

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-ParkingService/internal/api/handlers"
	"github.com/m04kA/SMC-ParkingService/internal/service/catalog"
)

const (
	msgInvalidLocationID  = "некорректный ID локации"
	msgInvalidRequestBody = "некорректное тело запроса"
	msgNotFound           = "локация не найдена"
	msgDuplicate          = "локация с таким именем уже существует"
	msgCapacityViolation  = "вместимость не может быть меньше текущей занятости"
	msgInvalidInput       = "некорректные входные данные"
)

type Handler struct {
	service CatalogService
	logger  Logger
}

func NewHandler(service CatalogService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle PUT /api/v1/locations/{locationId}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	locationID, err := strconv.ParseInt(vars["locationId"], 10, 64)
	if err != nil {
		h.logger.Warn("PUT /locations/{id} - Invalid location ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidLocationID)
		return
	}

	var req UpdateLocationRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PUT /locations/{id} - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.service.UpdateLocation(r.Context(), req.ToServiceRequest(locationID))
	if err != nil {
		switch {
		case errors.Is(err, catalog.ErrLocationNotFound):
			h.logger.Warn("PUT /locations/{id} - Location not found: location_id=%d", locationID)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, catalog.ErrDuplicate):
			h.logger.Warn("PUT /locations/{id} - Duplicate name: location_id=%d", locationID)
			handlers.RespondConflict(w, msgDuplicate)

		case errors.Is(err, catalog.ErrCapacityViolation):
			h.logger.Warn("PUT /locations/{id} - Capacity below occupancy: location_id=%d", locationID)
			handlers.RespondUnprocessable(w, msgCapacityViolation)

		case errors.Is(err, catalog.ErrInvalidInput):
			h.logger.Warn("PUT /locations/{id} - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		default:
			h.logger.Error("PUT /locations/{id} - Failed to update location: location_id=%d, error=%v",
				locationID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PUT /locations/{id} - Location updated successfully: location_id=%d", locationID)
	handlers.RespondJSON(w, http.StatusOK, FromServiceResponse(result))
}
