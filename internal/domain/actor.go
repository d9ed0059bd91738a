package domain

// Actor identifies the caller of a boundary operation.
// Identity and role are verified by the external auth collaborator
// and passed in via request headers.
type Actor struct {
	UserID int64
	Role   string
}

// IsAdmin returns true if the actor has administrative rights
func (a Actor) IsAdmin() bool {
	return a.Role == RoleAdmin
}

// Owns returns true if the actor owns the given booking
func (a Actor) Owns(b *Booking) bool {
	return a.UserID == b.UserID
}

// MayManage returns true if the actor may complete or cancel the booking
func (a Actor) MayManage(b *Booking) bool {
	return a.IsAdmin() || a.Owns(b)
}
