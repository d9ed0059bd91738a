package update_slot

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-ParkingService/internal/api/handlers"
	"github.com/m04kA/SMC-ParkingService/internal/service/catalog"
)

const (
	msgInvalidSlotID      = "некорректный ID слота"
	msgInvalidRequestBody = "некорректное тело запроса"
	msgNotFound           = "слот не найден"
	msgDuplicate          = "слот с таким номером уже существует в локации"
	msgSlotInUse          = "слот занят бронированием"
	msgInvalidSlotStatus  = "статус reserved/occupied управляется только бронированиями"
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

// Handle PUT /api/v1/slots/{slotId}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	slotID, err := strconv.ParseInt(vars["slotId"], 10, 64)
	if err != nil {
		h.logger.Warn("PUT /slots/{id} - Invalid slot ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidSlotID)
		return
	}

	var req UpdateSlotRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PUT /slots/{id} - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.service.UpdateSlot(r.Context(), req.ToServiceRequest(slotID))
	if err != nil {
		switch {
		case errors.Is(err, catalog.ErrSlotNotFound):
			h.logger.Warn("PUT /slots/{id} - Slot not found: slot_id=%d", slotID)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, catalog.ErrDuplicate):
			h.logger.Warn("PUT /slots/{id} - Duplicate number: slot_id=%d", slotID)
			handlers.RespondConflict(w, msgDuplicate)

		case errors.Is(err, catalog.ErrSlotInUse):
			h.logger.Warn("PUT /slots/{id} - Slot held by a booking: slot_id=%d", slotID)
			handlers.RespondConflict(w, msgSlotInUse)

		case errors.Is(err, catalog.ErrInvalidSlotStatus):
			h.logger.Warn("PUT /slots/{id} - Status not settable by admin: slot_id=%d", slotID)
			handlers.RespondUnprocessable(w, msgInvalidSlotStatus)

		case errors.Is(err, catalog.ErrCapacityViolation):
			h.logger.Warn("PUT /slots/{id} - Capacity below occupancy: slot_id=%d", slotID)
			handlers.RespondUnprocessable(w, msgCapacityViolation)

		case errors.Is(err, catalog.ErrInvalidInput):
			h.logger.Warn("PUT /slots/{id} - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		default:
			h.logger.Error("PUT /slots/{id} - Failed to update slot: slot_id=%d, error=%v", slotID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PUT /slots/{id} - Slot updated successfully: slot_id=%d", slotID)
	handlers.RespondJSON(w, http.StatusOK, FromServiceResponse(result))
}
