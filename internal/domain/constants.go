package domain

// Roles supplied by the auth collaborator via request headers
const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

// Business validation constants
const (
	MaxNameLength          = 50
	MaxDescriptionLength   = 500
	MaxVehicleNumberLength = 20
	MaxCancellationReasonLength = 500
)

// BlockingStatuses подтверждённые статусы, удерживающие слот.
// Используется в запросе пересечений при проверке доступности.
var BlockingStatuses = []BookingStatus{
	StatusPending,
	StatusActive,
}

// TerminalStatuses финальные статусы бронирования
var TerminalStatuses = []BookingStatus{
	StatusCompleted,
	StatusCancelled,
}

// HeldSlotStatuses статусы слота, занятые бронированием.
// По ним реконсилятор пересчитывает occupancy локации.
var HeldSlotStatuses = []SlotStatus{
	SlotReserved,
	SlotOccupied,
}
