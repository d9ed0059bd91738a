package list_locations

import (
	"net/http"
	"strconv"

	"github.com/m04kA/SMC-ParkingService/internal/api/handlers"
	"github.com/m04kA/SMC-ParkingService/internal/api/middleware"
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

// Handle GET /api/v1/locations?includeInactive=true
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	// Неактивные локации видны только администраторам
	includeInactive := false
	if raw := r.URL.Query().Get("includeInactive"); raw != "" {
		if v, err := strconv.ParseBool(raw); err == nil {
			actor, ok := middleware.GetActor(r.Context())
			includeInactive = v && ok && actor.IsAdmin()
		}
	}

	result, err := h.service.ListLocations(r.Context(), includeInactive)
	if err != nil {
		h.logger.Error("GET /locations - Failed to list locations: %v", err)
		handlers.RespondInternalError(w)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, FromServiceResponse(result))
}
