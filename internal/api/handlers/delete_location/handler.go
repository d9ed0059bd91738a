package delete_location

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-ParkingService/internal/api/handlers"
	"github.com/m04kA/SMC-ParkingService/internal/service/catalog"
)

const (
	msgInvalidLocationID = "некорректный ID локации"
	msgNotFound          = "локация не найдена"
	msgHasSlots          = "локация содержит слоты, сначала удалите их"
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

// Handle DELETE /api/v1/locations/{locationId}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	locationID, err := strconv.ParseInt(vars["locationId"], 10, 64)
	if err != nil {
		h.logger.Warn("DELETE /locations/{id} - Invalid location ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidLocationID)
		return
	}

	if err := h.service.DeleteLocation(r.Context(), locationID); err != nil {
		switch {
		case errors.Is(err, catalog.ErrLocationNotFound):
			h.logger.Warn("DELETE /locations/{id} - Location not found: location_id=%d", locationID)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, catalog.ErrLocationHasSlots):
			h.logger.Warn("DELETE /locations/{id} - Location still has slots: location_id=%d", locationID)
			handlers.RespondConflict(w, msgHasSlots)

		default:
			h.logger.Error("DELETE /locations/{id} - Failed to delete location: location_id=%d, error=%v",
				locationID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("DELETE /locations/{id} - Location deleted successfully: location_id=%d", locationID)
	handlers.RespondJSON(w, http.StatusNoContent, nil)
}
